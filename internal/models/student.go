package models

import (
	"github.com/shrimpsizemoose/pacekeeper/internal/nullsafe"
)

// Student holds the identifying and pacing fields of a student. ExtensionDays and
// CanvasID exist only in deployments whose schema carries those columns.
type Student struct {
	StuID           *string `json:"stu_id" validate:"required"`
	LastName        *string `json:"last_name,omitempty"`
	FirstName       *string `json:"first_name,omitempty"`
	MiddleInitial   *string `json:"middle_initial,omitempty"`
	PrefName        *string `json:"pref_name,omitempty"`
	PacingStructure *string `json:"pacing_structure,omitempty"`
	ExtensionDays   *int    `json:"extension_days,omitempty"`
	CanvasID        *string `json:"canvas_id,omitempty"`
}

func (r *Student) Validate() error {
	return Validate(r)
}

func (r *Student) String() string {
	var l line
	return l.str("stu_id", r.StuID).
		str("last_name", r.LastName).
		str("first_name", r.FirstName).
		str("middle_initial", r.MiddleInitial).
		str("pref_name", r.PrefName).
		str("pacing_structure", r.PacingStructure).
		num("extension_days", r.ExtensionDays).
		str("canvas_id", r.CanvasID).
		String()
}

func (r *Student) Hash() uint64 {
	return hashOf(r.String())
}

func (r *Student) Equal(o *Student) bool {
	return nullsafe.Equal(r.StuID, o.StuID) &&
		nullsafe.Equal(r.LastName, o.LastName) &&
		nullsafe.Equal(r.FirstName, o.FirstName) &&
		nullsafe.Equal(r.MiddleInitial, o.MiddleInitial) &&
		nullsafe.Equal(r.PrefName, o.PrefName) &&
		nullsafe.Equal(r.PacingStructure, o.PacingStructure) &&
		nullsafe.Equal(r.ExtensionDays, o.ExtensionDays) &&
		nullsafe.Equal(r.CanvasID, o.CanvasID)
}

var studentOrder = nullsafe.Order[*Student]().
	Then(nullsafe.ByFold(func(r *Student) *string { return r.LastName })).
	Then(nullsafe.ByFold(func(r *Student) *string { return r.FirstName })).
	Then(nullsafe.ByFold(func(r *Student) *string { return r.MiddleInitial })).
	Then(nullsafe.ByFold(func(r *Student) *string { return r.PrefName })).
	Then(nullsafe.By(func(r *Student) *string { return r.StuID }))

// Compare orders by last, first, middle initial and preferred name ignoring case, then
// by ID.
func (r *Student) Compare(o *Student) int {
	return studentOrder.Compare(r, o)
}
