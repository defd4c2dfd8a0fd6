package models

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
)

// TermName is the two-letter code of an academic term.
type TermName string

const (
	Spring TermName = "SP"
	Summer TermName = "SM"
	Fall   TermName = "FA"
)

var termOrdinals = map[TermName]int{Spring: 1, Summer: 2, Fall: 3}

var termFullNames = map[TermName]string{Spring: "Spring", Summer: "Summer", Fall: "Fall"}

var termNumericCodes = map[TermName]int{Spring: 10, Summer: 60, Fall: 90}

// ParseTermName validates a term code.
func ParseTermName(code string) (TermName, error) {
	name := TermName(code)
	if _, ok := termOrdinals[name]; !ok {
		return "", fmt.Errorf("invalid term name %q", code)
	}
	return name, nil
}

// FullName is the display name of the term, like "Fall".
func (n TermName) FullName() string {
	return termFullNames[n]
}

// TermKey identifies an academic term by name and four-digit year.
type TermKey struct {
	Name TermName
	Year int
}

func NewTermKey(name TermName, year int) TermKey {
	return TermKey{Name: name, Year: year}
}

// TermKeyFromShortYear expands a two-digit year: above 80 is 19xx, otherwise 20xx.
func TermKeyFromShortYear(name TermName, shortYear int) TermKey {
	if shortYear > 80 {
		return TermKey{Name: name, Year: 1900 + shortYear}
	}
	return TermKey{Name: name, Year: 2000 + shortYear}
}

// TermKeyFromNumeric decodes year*100 + code, where code 10 is Spring, 60 is Summer and
// anything else is Fall.
func TermKeyFromNumeric(numeric int) TermKey {
	year := numeric / 100
	switch numeric % 100 {
	case 10:
		return TermKey{Name: Spring, Year: year}
	case 60:
		return TermKey{Name: Summer, Year: year}
	default:
		return TermKey{Name: Fall, Year: year}
	}
}

// ParseTermKey accepts "FA24" (short years expand as in TermKeyFromShortYear), a bare four-digit year ("2017", Spring assumed) or a bare
// two-digit year below 40 ("17", Spring assumed).
func ParseTermKey(s string) (TermKey, error) {
	switch len(s) {
	case 4:
		if name, err := ParseTermName(s[:2]); err == nil {
			yy, err := strconv.Atoi(s[2:])
			if err != nil || yy < 0 {
				return TermKey{}, fmt.Errorf("invalid term year in %q", s)
			}
			return TermKeyFromShortYear(name, yy), nil
		}
		year, err := strconv.Atoi(s)
		if err != nil || year <= 2000 || year >= 3000 {
			return TermKey{}, fmt.Errorf("invalid term %q", s)
		}
		return TermKey{Name: Spring, Year: year}, nil
	case 2:
		yy, err := strconv.Atoi(s)
		if err != nil || yy < 0 || yy >= 40 {
			return TermKey{}, fmt.Errorf("invalid term %q", s)
		}
		return TermKey{Name: Spring, Year: 2000 + yy}, nil
	}
	return TermKey{}, fmt.Errorf("invalid term %q", s)
}

// ShortYear is the year modulo 100.
func (k TermKey) ShortYear() int {
	return k.Year % 100
}

// Numeric is year*100 plus the term code (10, 60 or 90).
func (k TermKey) Numeric() int {
	return k.Year*100 + termNumericCodes[k.Name]
}

// Compare orders terms chronologically.
func (k TermKey) Compare(o TermKey) int {
	if r := cmp.Compare(k.Year, o.Year); r != 0 {
		return r
	}
	return cmp.Compare(termOrdinals[k.Name], termOrdinals[o.Name])
}

// Add steps n terms forward (or backward when n is negative).
func (k TermKey) Add(n int) TermKey {
	idx := k.Year*3 + termOrdinals[k.Name] - 1 + n
	names := [...]TermName{Spring, Summer, Fall}
	year := idx / 3
	pos := idx % 3
	if pos < 0 {
		pos += 3
		year--
	}
	return TermKey{Name: names[pos], Year: year}
}

// String is the short form, like "FA24".
func (k TermKey) String() string {
	return fmt.Sprintf("%s%02d", k.Name, k.ShortYear())
}

// LongString is the display form, like "Fall, 2024".
func (k TermKey) LongString() string {
	return fmt.Sprintf("%s, %d", k.Name.FullName(), k.Year)
}

func (k TermKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *TermKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTermKey(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func compareTermKey(a, b TermKey) int {
	return a.Compare(b)
}
