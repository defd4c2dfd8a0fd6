package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowDateTime(t *testing.T) {
	want := time.Date(2024, 9, 15, 13, 45, 30, 0, time.UTC)
	cet := time.FixedZone("CET", 3600)

	testCases := []struct {
		name string
		in   any
		want *time.Time
	}{
		{"nil", nil, nil},
		{"time value keeps wall clock", time.Date(2024, 9, 15, 13, 45, 30, 0, cet), &want},
		{"sqlite string", "2024-09-15 13:45:30 +0000 UTC", &want},
		{"iso string", "2024-09-15T13:45:30", &want},
		{"bytes", []byte("2024-09-15 13:45:30"), &want},
		{"blank", "  ", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Row{"ts": tc.in}.DateTime("ts")
			require.NoError(t, err)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tc.want.Equal(*got), "got %s", got)
		})
	}

	_, err := Row{"ts": "yesterday"}.DateTime("ts")
	assert.Error(t, err)
}

func TestRowDateDropsTime(t *testing.T) {
	got, err := Row{"d": "2024-09-15 23:59:59"}.Date("d")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC), *got)
}

func TestRowInt(t *testing.T) {
	for _, in := range []any{int64(42), int32(42), 42, float64(42), "42", []byte(" 42 "), "42.0"} {
		got, err := Row{"n": in}.Int("n")
		require.NoError(t, err, "%T", in)
		assert.Equal(t, 42, *got)
	}

	got, err := Row{}.Int("n")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = Row{"n": "forty"}.Int("n")
	assert.Error(t, err)
}

func TestRowStringTrimsPadding(t *testing.T) {
	assert.Equal(t, "FA", *Row{"term": "FA   "}.String("term"))
	assert.Equal(t, "88", *Row{"term_yr": int64(88)}.String("term_yr"))
	assert.Nil(t, Row{"term": nil}.String("term"))
	assert.True(t, Row{"term": nil}.Has("term"))
	assert.False(t, Row{}.Has("term"))
}

func TestMapperKeepsFirstError(t *testing.T) {
	m := NewMapper("milestone", Row{"pace": "x", "ms_date": "never"})
	m.Int("pace")
	m.Date("ms_date")
	m.Require("ms_type")

	var me *MappingError
	require.ErrorAs(t, m.Err(), &me)
	assert.Equal(t, "milestone", me.Table)
	assert.Equal(t, "pace", me.Column)
	assert.ErrorIs(t, m.Err(), ErrMapping)
}

func TestDialectForProduct(t *testing.T) {
	d, err := DialectForProduct(ProductInformix)
	require.NoError(t, err)
	assert.Equal(t, DialectLegacy, d)

	d, err = DialectForProduct(ProductPostgreSQL)
	require.NoError(t, err)
	assert.Equal(t, DialectModern, d)

	_, err = DialectForProduct("oracle")
	var ud *UnsupportedDialectError
	require.ErrorAs(t, err, &ud)
	assert.Equal(t, "oracle", ud.Product)
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}
