package models

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shrimpsizemoose/pacekeeper/internal/nullsafe"
)

// Milestone type codes.
const (
	MsTypeUnitSkills   = "US"
	MsTypeSkillsReview = "SR"
	MsTypeHomework1    = "H1"
	MsTypeHomework2    = "H2"
	MsTypeHomework3    = "H3"
	MsTypeHomework4    = "H4"
	MsTypeHomework5    = "H5"
	MsTypeReviewExam   = "RE"
	MsTypeUnitExam     = "UE"
	MsTypeFinalExam    = "FE"
	MsTypeFinalPlusOne = "F1"
	MsTypeStandard     = "ST"
	MsTypeExam         = "EX"
	MsTypeExam1        = "E1"
	MsTypeMastery      = "MA"
)

// MilestoneTypeOrder is the order used when sorting milestones. Codes that are not
// listed compare as strings.
var MilestoneTypeOrder = []string{MsTypeReviewExam, MsTypeFinalExam, MsTypeFinalPlusOne}

var milestoneTypeNames = map[string]string{
	MsTypeReviewExam:   "Review Exam",
	MsTypeUnitExam:     "Unit Exam",
	MsTypeFinalExam:    "Final Exam",
	MsTypeFinalPlusOne: "Final +1",
	MsTypeSkillsReview: "Skills Review",
	MsTypeHomework1:    "Homework 1",
	MsTypeHomework2:    "Homework 2",
	MsTypeHomework3:    "Homework 3",
	MsTypeHomework4:    "Homework 4",
	MsTypeHomework5:    "Homework 5",
	MsTypeMastery:      "Mastery",
}

// MilestoneTypeName is the display name of a milestone type code, or the code itself.
func MilestoneTypeName(code string) string {
	if name, ok := milestoneTypeNames[code]; ok {
		return name
	}
	if n, ok := touchpointNumber(code); ok {
		return fmt.Sprintf("Touchpoint %s", n)
	}
	return code
}

// touchpoint codes look like T1R1 .. T5F1
func touchpointNumber(code string) (string, bool) {
	if len(code) != 4 || code[0] != 'T' || code[1] < '1' || code[1] > '5' {
		return "", false
	}
	switch code[2:] {
	case "R1", "R2", "R3", "R4", "R5", "F1":
		return code[1:], true
	}
	return "", false
}

// CompareMilestoneTypes orders two type codes by MilestoneTypeOrder; when either code is
// not listed the codes compare as strings.
func CompareMilestoneTypes(a, b string) int {
	ia := slices.Index(MilestoneTypeOrder, a)
	ib := slices.Index(MilestoneTypeOrder, b)
	if ia < 0 || ib < 0 {
		return strings.Compare(a, b)
	}
	return ia - ib
}

// LegacyMsNbr encodes pace, course index and unit as 432 for pace 4, index 3, unit 2.
func LegacyMsNbr(pace, index, unit int) int {
	return pace*100 + index*10 + unit
}

// StandardMsNbr encodes pace, index, unit and objective as 4321.
func StandardMsNbr(pace, index, unit, objective int) int {
	return pace*1000 + index*100 + unit*10 + objective
}

// MsNbrParts decodes a milestone number. Objective is 0 for legacy numbers.
type MsNbrParts struct {
	Pace      int
	Index     int
	Unit      int
	Objective int
	Standard  bool
}

func DecodeMsNbr(nbr int) MsNbrParts {
	if nbr >= 1000 {
		return MsNbrParts{
			Pace:      nbr / 1000,
			Index:     (nbr / 100) % 10,
			Unit:      (nbr / 10) % 10,
			Objective: nbr % 10,
			Standard:  true,
		}
	}
	return MsNbrParts{
		Pace:  nbr / 100,
		Index: (nbr / 10) % 10,
		Unit:  nbr % 10,
	}
}

// Milestone is a deadline in a term's pacing schedule.
type Milestone struct {
	Term           *TermKey   `json:"term" validate:"required"`
	Pace           *int       `json:"pace" validate:"required"`
	PaceTrack      *string    `json:"pace_track" validate:"required"`
	MsNbr          *int       `json:"ms_nbr" validate:"required"`
	MsType         *string    `json:"ms_type" validate:"required"`
	MsDate         *time.Time `json:"ms_date" validate:"required"`
	NbrAtmptsAllow *int       `json:"nbr_atmpts_allow,omitempty"`
}

// Index is the course index encoded in the milestone number.
func (r *Milestone) Index() int {
	if r.MsNbr == nil {
		return 0
	}
	return (*r.MsNbr / 10) % 10
}

// Unit is the unit encoded in the milestone number.
func (r *Milestone) Unit() int {
	if r.MsNbr == nil {
		return 0
	}
	return *r.MsNbr % 10
}

func (r *Milestone) Validate() error {
	return Validate(r)
}

func (r *Milestone) String() string {
	var l line
	return l.term("term", r.Term).
		num("pace", r.Pace).
		str("pace_track", r.PaceTrack).
		num("ms_nbr", r.MsNbr).
		str("ms_type", r.MsType).
		date("ms_date", r.MsDate).
		num("nbr_atmpts_allow", r.NbrAtmptsAllow).
		String()
}

func (r *Milestone) Hash() uint64 {
	return hashOf(r.String())
}

func (r *Milestone) Equal(o *Milestone) bool {
	return nullsafe.Equal(r.Term, o.Term) &&
		nullsafe.Equal(r.Pace, o.Pace) &&
		nullsafe.Equal(r.PaceTrack, o.PaceTrack) &&
		nullsafe.Equal(r.MsNbr, o.MsNbr) &&
		nullsafe.Equal(r.MsType, o.MsType) &&
		nullsafe.EqualTime(r.MsDate, o.MsDate) &&
		nullsafe.Equal(r.NbrAtmptsAllow, o.NbrAtmptsAllow)
}

var milestoneOrder = nullsafe.Order[*Milestone]().
	Then(nullsafe.ByFunc(func(r *Milestone) *TermKey { return r.Term }, compareTermKey)).
	Then(nullsafe.By(func(r *Milestone) *string { return r.PaceTrack })).
	Then(nullsafe.By(func(r *Milestone) *int { return r.MsNbr })).
	Then(nullsafe.ByTime(func(r *Milestone) *time.Time { return r.MsDate })).
	Then(nullsafe.ByFunc(func(r *Milestone) *string { return r.MsType }, CompareMilestoneTypes))

// Compare orders by term, pace track, number, date and then type order.
func (r *Milestone) Compare(o *Milestone) int {
	return milestoneOrder.Compare(r, o)
}

// StuStandardMilestone is a student's own deadline for a standards-based milestone.
type StuStandardMilestone struct {
	StuID     *string    `json:"stu_id" validate:"required"`
	PaceTrack *string    `json:"pace_track" validate:"required"`
	Pace      *int       `json:"pace" validate:"required"`
	PaceIndex *int       `json:"pace_index" validate:"required"`
	Unit      *int       `json:"unit" validate:"required"`
	Objective *int       `json:"objective" validate:"required"`
	MsType    *string    `json:"ms_type" validate:"required"`
	MsDate    *time.Time `json:"ms_date,omitempty"`
}

// MsNbr is the standards milestone number appeals use to target this deadline.
func (r *StuStandardMilestone) MsNbr() (int, bool) {
	if r.Pace == nil || r.PaceIndex == nil || r.Unit == nil || r.Objective == nil {
		return 0, false
	}
	return StandardMsNbr(*r.Pace, *r.PaceIndex, *r.Unit, *r.Objective), true
}

func (r *StuStandardMilestone) Validate() error {
	return Validate(r)
}

func (r *StuStandardMilestone) String() string {
	var l line
	return l.str("stu_id", r.StuID).
		str("pace_track", r.PaceTrack).
		num("pace", r.Pace).
		num("pace_index", r.PaceIndex).
		num("unit", r.Unit).
		num("objective", r.Objective).
		str("ms_type", r.MsType).
		date("ms_date", r.MsDate).
		String()
}

func (r *StuStandardMilestone) Hash() uint64 {
	return hashOf(r.String())
}

func (r *StuStandardMilestone) Equal(o *StuStandardMilestone) bool {
	return nullsafe.Equal(r.StuID, o.StuID) &&
		nullsafe.Equal(r.PaceTrack, o.PaceTrack) &&
		nullsafe.Equal(r.Pace, o.Pace) &&
		nullsafe.Equal(r.PaceIndex, o.PaceIndex) &&
		nullsafe.Equal(r.Unit, o.Unit) &&
		nullsafe.Equal(r.Objective, o.Objective) &&
		nullsafe.Equal(r.MsType, o.MsType) &&
		nullsafe.EqualTime(r.MsDate, o.MsDate)
}

var stuStandardMilestoneOrder = nullsafe.Order[*StuStandardMilestone]().
	Then(nullsafe.By(func(r *StuStandardMilestone) *string { return r.StuID })).
	Then(nullsafe.By(func(r *StuStandardMilestone) *string { return r.PaceTrack })).
	Then(nullsafe.By(func(r *StuStandardMilestone) *int { return r.Pace })).
	Then(nullsafe.By(func(r *StuStandardMilestone) *int { return r.PaceIndex })).
	Then(nullsafe.By(func(r *StuStandardMilestone) *int { return r.Unit })).
	Then(nullsafe.By(func(r *StuStandardMilestone) *int { return r.Objective })).
	Then(nullsafe.ByFunc(func(r *StuStandardMilestone) *string { return r.MsType }, CompareMilestoneTypes))

func (r *StuStandardMilestone) Compare(o *StuStandardMilestone) int {
	return stuStandardMilestoneOrder.Compare(r, o)
}
