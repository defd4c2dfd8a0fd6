package models

import (
	"github.com/shrimpsizemoose/pacekeeper/internal/nullsafe"
)

// StuUnitMastery is a student's mastery standing in one unit of a course.
type StuUnitMastery struct {
	StuID    *string `json:"stu_id" validate:"required"`
	CourseID *string `json:"course_id" validate:"required"`
	Unit     *int    `json:"unit" validate:"required"`
	Score    *int    `json:"score" validate:"required"`
	SrStatus *string `json:"sr_status,omitempty"`
	S1Status *string `json:"s1_status,omitempty"`
	S2Status *string `json:"s2_status,omitempty"`
	S3Status *string `json:"s3_status,omitempty"`
}

func (r *StuUnitMastery) Validate() error {
	return Validate(r)
}

func (r *StuUnitMastery) String() string {
	var l line
	return l.str("stu_id", r.StuID).
		str("course_id", r.CourseID).
		num("unit", r.Unit).
		num("score", r.Score).
		str("sr_status", r.SrStatus).
		str("s1_status", r.S1Status).
		str("s2_status", r.S2Status).
		str("s3_status", r.S3Status).
		String()
}

func (r *StuUnitMastery) Hash() uint64 {
	return hashOf(r.String())
}

func (r *StuUnitMastery) Equal(o *StuUnitMastery) bool {
	return nullsafe.Equal(r.StuID, o.StuID) &&
		nullsafe.Equal(r.CourseID, o.CourseID) &&
		nullsafe.Equal(r.Unit, o.Unit) &&
		nullsafe.Equal(r.Score, o.Score) &&
		nullsafe.Equal(r.SrStatus, o.SrStatus) &&
		nullsafe.Equal(r.S1Status, o.S1Status) &&
		nullsafe.Equal(r.S2Status, o.S2Status) &&
		nullsafe.Equal(r.S3Status, o.S3Status)
}

var stuUnitMasteryOrder = nullsafe.Order[*StuUnitMastery]().
	Then(nullsafe.By(func(r *StuUnitMastery) *string { return r.StuID })).
	Then(nullsafe.By(func(r *StuUnitMastery) *string { return r.CourseID })).
	Then(nullsafe.By(func(r *StuUnitMastery) *int { return r.Unit }))

func (r *StuUnitMastery) Compare(o *StuUnitMastery) int {
	return stuUnitMasteryOrder.Compare(r, o)
}

// StuCourseMastery summarizes a student's mastery across a course.
type StuCourseMastery struct {
	StuID         *string `json:"stu_id" validate:"required"`
	CourseID      *string `json:"course_id" validate:"required"`
	Score         *int    `json:"score" validate:"required"`
	NbrMasteredH1 *int    `json:"nbr_mastered_h1" validate:"required"`
	NbrMasteredH2 *int    `json:"nbr_mastered_h2" validate:"required"`
	NbrEligible   *int    `json:"nbr_eligible" validate:"required"`
}

func (r *StuCourseMastery) Validate() error {
	return Validate(r)
}

func (r *StuCourseMastery) String() string {
	var l line
	return l.str("stu_id", r.StuID).
		str("course_id", r.CourseID).
		num("score", r.Score).
		num("nbr_mastered_h1", r.NbrMasteredH1).
		num("nbr_mastered_h2", r.NbrMasteredH2).
		num("nbr_eligible", r.NbrEligible).
		String()
}

func (r *StuCourseMastery) Hash() uint64 {
	return hashOf(r.String())
}

func (r *StuCourseMastery) Equal(o *StuCourseMastery) bool {
	return nullsafe.Equal(r.StuID, o.StuID) &&
		nullsafe.Equal(r.CourseID, o.CourseID) &&
		nullsafe.Equal(r.Score, o.Score) &&
		nullsafe.Equal(r.NbrMasteredH1, o.NbrMasteredH1) &&
		nullsafe.Equal(r.NbrMasteredH2, o.NbrMasteredH2) &&
		nullsafe.Equal(r.NbrEligible, o.NbrEligible)
}

var stuCourseMasteryOrder = nullsafe.Order[*StuCourseMastery]().
	Then(nullsafe.By(func(r *StuCourseMastery) *string { return r.StuID })).
	Then(nullsafe.By(func(r *StuCourseMastery) *string { return r.CourseID }))

func (r *StuCourseMastery) Compare(o *StuCourseMastery) int {
	return stuCourseMasteryOrder.Compare(r, o)
}

// ReportPerms grants a student a permission level on a report.
type ReportPerms struct {
	StuID     *string `json:"stu_id" validate:"required"`
	RptID     *string `json:"rpt_id" validate:"required"`
	PermLevel *int    `json:"perm_level" validate:"required"`
}

func (r *ReportPerms) Validate() error {
	return Validate(r)
}

func (r *ReportPerms) String() string {
	var l line
	return l.str("stu_id", r.StuID).
		str("rpt_id", r.RptID).
		num("perm_level", r.PermLevel).
		String()
}

func (r *ReportPerms) Hash() uint64 {
	return hashOf(r.String())
}

func (r *ReportPerms) Equal(o *ReportPerms) bool {
	return nullsafe.Equal(r.StuID, o.StuID) &&
		nullsafe.Equal(r.RptID, o.RptID) &&
		nullsafe.Equal(r.PermLevel, o.PermLevel)
}

var reportPermsOrder = nullsafe.Order[*ReportPerms]().
	Then(nullsafe.By(func(r *ReportPerms) *string { return r.RptID })).
	Then(nullsafe.By(func(r *ReportPerms) *string { return r.StuID }))

func (r *ReportPerms) Compare(o *ReportPerms) int {
	return reportPermsOrder.Compare(r, o)
}
