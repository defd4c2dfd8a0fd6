package models

import (
	"time"

	"github.com/shrimpsizemoose/pacekeeper/internal/nullsafe"
)

// Term is one academic term. ActiveIndex is 0 for the active term, positive for future
// terms and negative for past ones.
type Term struct {
	Term             *TermKey   `json:"term" validate:"required"`
	StartDate        *time.Time `json:"start_date" validate:"required"`
	EndDate          *time.Time `json:"end_date" validate:"required"`
	AcademicYear     *string    `json:"academic_year" validate:"required"`
	ActiveIndex      *int       `json:"active_index" validate:"required"`
	DropDeadline     *time.Time `json:"drop_deadline,omitempty"`
	WithdrawDeadline *time.Time `json:"withdraw_deadline,omitempty"`
	IncDeadline      *time.Time `json:"inc_deadline,omitempty"`
}

func (r *Term) Validate() error {
	return Validate(r)
}

func (r *Term) String() string {
	var l line
	return l.term("term", r.Term).
		date("start_date", r.StartDate).
		date("end_date", r.EndDate).
		str("academic_year", r.AcademicYear).
		num("active_index", r.ActiveIndex).
		date("drop_deadline", r.DropDeadline).
		date("withdraw_deadline", r.WithdrawDeadline).
		date("inc_deadline", r.IncDeadline).
		String()
}

func (r *Term) Hash() uint64 {
	return hashOf(r.String())
}

func (r *Term) Equal(o *Term) bool {
	return nullsafe.Equal(r.Term, o.Term) &&
		nullsafe.EqualTime(r.StartDate, o.StartDate) &&
		nullsafe.EqualTime(r.EndDate, o.EndDate) &&
		nullsafe.Equal(r.AcademicYear, o.AcademicYear) &&
		nullsafe.Equal(r.ActiveIndex, o.ActiveIndex) &&
		nullsafe.EqualTime(r.DropDeadline, o.DropDeadline) &&
		nullsafe.EqualTime(r.WithdrawDeadline, o.WithdrawDeadline) &&
		nullsafe.EqualTime(r.IncDeadline, o.IncDeadline)
}

var termOrder = nullsafe.Order[*Term]().
	Then(nullsafe.ByFunc(func(r *Term) *TermKey { return r.Term }, compareTermKey))

// Compare orders terms chronologically.
func (r *Term) Compare(o *Term) int {
	return termOrder.Compare(r, o)
}

// TermWeek is one numbered week of a term's calendar.
type TermWeek struct {
	Term      *TermKey   `json:"term" validate:"required"`
	WeekNbr   *int       `json:"week_nbr" validate:"required"`
	StartDate *time.Time `json:"start_date" validate:"required"`
	EndDate   *time.Time `json:"end_date" validate:"required"`
}

func (r *TermWeek) Validate() error {
	return Validate(r)
}

func (r *TermWeek) String() string {
	var l line
	return l.term("term", r.Term).
		num("week_nbr", r.WeekNbr).
		date("start_date", r.StartDate).
		date("end_date", r.EndDate).
		String()
}

func (r *TermWeek) Hash() uint64 {
	return hashOf(r.String())
}

func (r *TermWeek) Equal(o *TermWeek) bool {
	return nullsafe.Equal(r.Term, o.Term) &&
		nullsafe.Equal(r.WeekNbr, o.WeekNbr) &&
		nullsafe.EqualTime(r.StartDate, o.StartDate) &&
		nullsafe.EqualTime(r.EndDate, o.EndDate)
}

var termWeekOrder = nullsafe.Order[*TermWeek]().
	Then(nullsafe.ByFunc(func(r *TermWeek) *TermKey { return r.Term }, compareTermKey)).
	Then(nullsafe.By(func(r *TermWeek) *int { return r.WeekNbr }))

func (r *TermWeek) Compare(o *TermWeek) int {
	return termWeekOrder.Compare(r, o)
}

// PaceTrackRule assigns a pace track to students matching Criteria.
type PaceTrackRule struct {
	Term      *TermKey `json:"term" validate:"required"`
	Subterm   *string  `json:"subterm" validate:"required"`
	Pace      *int     `json:"pace" validate:"required"`
	PaceTrack *string  `json:"pace_track" validate:"required"`
	Criteria  *string  `json:"criteria" validate:"required"`
}

func (r *PaceTrackRule) Validate() error {
	return Validate(r)
}

func (r *PaceTrackRule) String() string {
	var l line
	return l.term("term", r.Term).
		str("subterm", r.Subterm).
		num("pace", r.Pace).
		str("pace_track", r.PaceTrack).
		str("criteria", r.Criteria).
		String()
}

func (r *PaceTrackRule) Hash() uint64 {
	return hashOf(r.String())
}

func (r *PaceTrackRule) Equal(o *PaceTrackRule) bool {
	return nullsafe.Equal(r.Term, o.Term) &&
		nullsafe.Equal(r.Subterm, o.Subterm) &&
		nullsafe.Equal(r.Pace, o.Pace) &&
		nullsafe.Equal(r.PaceTrack, o.PaceTrack) &&
		nullsafe.Equal(r.Criteria, o.Criteria)
}

var paceTrackRuleOrder = nullsafe.Order[*PaceTrackRule]().
	Then(nullsafe.ByFunc(func(r *PaceTrackRule) *TermKey { return r.Term }, compareTermKey)).
	Then(nullsafe.By(func(r *PaceTrackRule) *string { return r.Subterm })).
	Then(nullsafe.By(func(r *PaceTrackRule) *int { return r.Pace })).
	Then(nullsafe.By(func(r *PaceTrackRule) *string { return r.PaceTrack })).
	Then(nullsafe.By(func(r *PaceTrackRule) *string { return r.Criteria }))

func (r *PaceTrackRule) Compare(o *PaceTrackRule) int {
	return paceTrackRuleOrder.Compare(r, o)
}

// DefaultFreeExtensionDays is granted by every pacing structure until the value is
// stored per structure.
const DefaultFreeExtensionDays = 2

// PacingStructure is a named set of pacing rules in a term.
type PacingStructure struct {
	Term            *TermKey `json:"term" validate:"required"`
	PacingStructure *string  `json:"pacing_structure" validate:"required"`
	DefPaceTrack    *string  `json:"def_pace_track,omitempty"`
	RequireLicensed *string  `json:"require_licensed,omitempty"`
	MaxCourses      *int     `json:"max_courses,omitempty"`
	NbrOpenAllowed  *int     `json:"nbr_open_allowed,omitempty"`
	PacingName      *string  `json:"pacing_name,omitempty"`
}

// FreeExtensionDays is the number of days of free extension students may request.
func (r *PacingStructure) FreeExtensionDays() int {
	return DefaultFreeExtensionDays
}

func (r *PacingStructure) Validate() error {
	return Validate(r)
}

func (r *PacingStructure) String() string {
	var l line
	return l.term("term", r.Term).
		str("pacing_structure", r.PacingStructure).
		str("def_pace_track", r.DefPaceTrack).
		str("require_licensed", r.RequireLicensed).
		num("max_courses", r.MaxCourses).
		num("nbr_open_allowed", r.NbrOpenAllowed).
		str("pacing_name", r.PacingName).
		String()
}

func (r *PacingStructure) Hash() uint64 {
	return hashOf(r.String())
}

func (r *PacingStructure) Equal(o *PacingStructure) bool {
	return nullsafe.Equal(r.Term, o.Term) &&
		nullsafe.Equal(r.PacingStructure, o.PacingStructure) &&
		nullsafe.Equal(r.DefPaceTrack, o.DefPaceTrack) &&
		nullsafe.Equal(r.RequireLicensed, o.RequireLicensed) &&
		nullsafe.Equal(r.MaxCourses, o.MaxCourses) &&
		nullsafe.Equal(r.NbrOpenAllowed, o.NbrOpenAllowed) &&
		nullsafe.Equal(r.PacingName, o.PacingName)
}

var pacingStructureOrder = nullsafe.Order[*PacingStructure]().
	Then(nullsafe.ByFunc(func(r *PacingStructure) *TermKey { return r.Term }, compareTermKey)).
	Then(nullsafe.By(func(r *PacingStructure) *string { return r.PacingStructure }))

func (r *PacingStructure) Compare(o *PacingStructure) int {
	return pacingStructureOrder.Compare(r, o)
}
