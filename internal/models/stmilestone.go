package models

import (
	"strings"
	"time"

	"github.com/shrimpsizemoose/pacekeeper/internal/nullsafe"
)

// DefaultF1Attempts is the attempt count given to a final+1 deadline moved along with
// its final exam.
const DefaultF1Attempts = 1

// StudentMilestone is a student's materialized override of one term milestone.
type StudentMilestone struct {
	Term           *TermKey   `json:"term" validate:"required"`
	StuID          *string    `json:"stu_id" validate:"required"`
	PaceTrack      *string    `json:"pace_track" validate:"required"`
	MsNbr          *int       `json:"ms_nbr" validate:"required"`
	MsType         *string    `json:"ms_type" validate:"required"`
	MsDate         *time.Time `json:"ms_date,omitempty"`
	NbrAtmptsAllow *int       `json:"nbr_atmpts_allow,omitempty"`
}

// Overrides reports whether the row replaces the given term milestone.
func (r *StudentMilestone) Overrides(ms *Milestone) bool {
	return nullsafe.Equal(r.MsNbr, ms.MsNbr) && nullsafe.Equal(r.MsType, ms.MsType)
}

func (r *StudentMilestone) Validate() error {
	return Validate(r)
}

func (r *StudentMilestone) String() string {
	var l line
	return l.term("term", r.Term).
		str("stu_id", r.StuID).
		str("pace_track", r.PaceTrack).
		num("ms_nbr", r.MsNbr).
		str("ms_type", r.MsType).
		date("ms_date", r.MsDate).
		num("nbr_atmpts_allow", r.NbrAtmptsAllow).
		String()
}

func (r *StudentMilestone) Hash() uint64 {
	return hashOf(r.String())
}

func (r *StudentMilestone) Equal(o *StudentMilestone) bool {
	return nullsafe.Equal(r.Term, o.Term) &&
		nullsafe.Equal(r.StuID, o.StuID) &&
		nullsafe.Equal(r.PaceTrack, o.PaceTrack) &&
		nullsafe.Equal(r.MsNbr, o.MsNbr) &&
		nullsafe.Equal(r.MsType, o.MsType) &&
		nullsafe.EqualTime(r.MsDate, o.MsDate) &&
		nullsafe.Equal(r.NbrAtmptsAllow, o.NbrAtmptsAllow)
}

var studentMilestoneOrder = nullsafe.Order[*StudentMilestone]().
	Then(nullsafe.ByFunc(func(r *StudentMilestone) *TermKey { return r.Term }, compareTermKey)).
	Then(nullsafe.By(func(r *StudentMilestone) *string { return r.PaceTrack })).
	Then(nullsafe.By(func(r *StudentMilestone) *int { return r.MsNbr })).
	Then(nullsafe.ByTime(func(r *StudentMilestone) *time.Time { return r.MsDate })).
	Then(nullsafe.By(func(r *StudentMilestone) *string { return r.MsType })).
	Then(nullsafe.By(func(r *StudentMilestone) *string { return r.StuID }))

// Compare orders by term, pace track, number, date, type and student.
func (r *StudentMilestone) Compare(o *StudentMilestone) int {
	return studentMilestoneOrder.Compare(r, o)
}

// PaceAppeal is a deadline appeal from the ledger that predates MilestoneAppeal. It has a
// date but no time and no appeal type.
type PaceAppeal struct {
	Term           *TermKey   `json:"term" validate:"required"`
	StuID          *string    `json:"stu_id" validate:"required"`
	AppealDt       *time.Time `json:"appeal_dt" validate:"required"`
	ReliefGiven    *string    `json:"relief_given,omitempty"`
	Pace           *int       `json:"pace" validate:"required"`
	PaceTrack      *string    `json:"pace_track" validate:"required"`
	MsNbr          *int       `json:"ms_nbr" validate:"required"`
	MsType         *string    `json:"ms_type" validate:"required"`
	MsDate         *time.Time `json:"ms_date,omitempty"`
	NewDeadlineDt  *time.Time `json:"new_deadline_dt,omitempty"`
	NbrAtmptsAllow *int       `json:"nbr_atmpts_allow,omitempty"`
	Circumstances  *string    `json:"circumstances,omitempty"`
	Comment        *string    `json:"comment,omitempty"`
	Interviewer    *string    `json:"interviewer" validate:"required"`
}

// InferAppealType guesses the appeal type of an old pace appeal from its circumstances.
func InferAppealType(circumstances *string) string {
	if circumstances == nil || *circumstances == "" {
		return AppealOther
	}
	c := strings.ToLower(*circumstances)
	switch {
	case strings.Contains(c, "sdc"), strings.Contains(c, "rds"):
		return AppealAccommodation
	case strings.Contains(c, "university excused"), strings.Contains(c, "university-excused"):
		return AppealExcused
	case strings.Contains(c, "family emergency"):
		return AppealFamilyEmergency
	case strings.Contains(c, "medical"), strings.Contains(c, "doctor"), strings.Contains(c, "hospital"):
		return AppealMedical
	}
	return AppealOther
}

// AsAppeal converts the row into the MilestoneAppeal it would be today, stamped at noon
// of the appeal date. The result is for replay only and must not be written back.
func (r *PaceAppeal) AsAppeal() MilestoneAppeal {
	var at *time.Time
	if r.AppealDt != nil {
		noon := DateOf(*r.AppealDt).Add(12 * time.Hour)
		at = &noon
	}
	typ := InferAppealType(r.Circumstances)
	return MilestoneAppeal{
		StuID:           r.StuID,
		Term:            r.Term,
		AppealDateTime:  at,
		AppealType:      &typ,
		Pace:            r.Pace,
		PaceTrack:       r.PaceTrack,
		MsNbr:           r.MsNbr,
		MsType:          r.MsType,
		PriorMsDt:       r.MsDate,
		NewMsDt:         r.NewDeadlineDt,
		AttemptsAllowed: r.NbrAtmptsAllow,
		Circumstances:   r.Circumstances,
		Comment:         r.Comment,
		Interviewer:     r.Interviewer,
	}
}

func (r *PaceAppeal) Validate() error {
	return Validate(r)
}

func (r *PaceAppeal) String() string {
	var l line
	return l.term("term", r.Term).
		str("stu_id", r.StuID).
		date("appeal_dt", r.AppealDt).
		str("relief_given", r.ReliefGiven).
		num("pace", r.Pace).
		str("pace_track", r.PaceTrack).
		num("ms_nbr", r.MsNbr).
		str("ms_type", r.MsType).
		date("ms_date", r.MsDate).
		date("new_deadline_dt", r.NewDeadlineDt).
		num("nbr_atmpts_allow", r.NbrAtmptsAllow).
		str("circumstances", r.Circumstances).
		str("comment", r.Comment).
		str("interviewer", r.Interviewer).
		String()
}

func (r *PaceAppeal) Hash() uint64 {
	return hashOf(r.String())
}

func (r *PaceAppeal) Equal(o *PaceAppeal) bool {
	return nullsafe.Equal(r.Term, o.Term) &&
		nullsafe.Equal(r.StuID, o.StuID) &&
		nullsafe.EqualTime(r.AppealDt, o.AppealDt) &&
		nullsafe.Equal(r.ReliefGiven, o.ReliefGiven) &&
		nullsafe.Equal(r.Pace, o.Pace) &&
		nullsafe.Equal(r.PaceTrack, o.PaceTrack) &&
		nullsafe.Equal(r.MsNbr, o.MsNbr) &&
		nullsafe.Equal(r.MsType, o.MsType) &&
		nullsafe.EqualTime(r.MsDate, o.MsDate) &&
		nullsafe.EqualTime(r.NewDeadlineDt, o.NewDeadlineDt) &&
		nullsafe.Equal(r.NbrAtmptsAllow, o.NbrAtmptsAllow) &&
		nullsafe.Equal(r.Circumstances, o.Circumstances) &&
		nullsafe.Equal(r.Comment, o.Comment) &&
		nullsafe.Equal(r.Interviewer, o.Interviewer)
}

var paceAppealOrder = nullsafe.Order[*PaceAppeal]().
	Then(nullsafe.ByTime(func(r *PaceAppeal) *time.Time { return r.AppealDt })).
	Then(nullsafe.By(func(r *PaceAppeal) *string { return r.StuID })).
	Then(nullsafe.By(func(r *PaceAppeal) *int { return r.MsNbr })).
	Then(nullsafe.ByFunc(func(r *PaceAppeal) *string { return r.MsType }, CompareAppealMsTypes))

// Compare orders by appeal date, student, number and the appeal type order.
func (r *PaceAppeal) Compare(o *PaceAppeal) int {
	return paceAppealOrder.Compare(r, o)
}
