package models

import (
	"strings"
	"time"

	"github.com/shrimpsizemoose/pacekeeper/internal/nullsafe"
)

// Appeal type codes.
const (
	AppealAccommodation      = "ACC"
	AppealExcused            = "EXC"
	AppealCloseToFinishing   = "FIN"
	AppealMedical            = "MED"
	AppealFamilyEmergency    = "FAM"
	AppealRequestedExtension = "REQ"
	AppealAutomaticExtension = "AUT"
	AppealOther              = "OTH"
)

var appealTypeNames = map[string]string{
	AppealAccommodation:      "Accommodation",
	AppealExcused:            "University-excused absence",
	AppealCloseToFinishing:   "Close to finishing",
	AppealMedical:            "Medical",
	AppealFamilyEmergency:    "Family emergency",
	AppealRequestedExtension: "Requested free extension",
	AppealAutomaticExtension: "Automatic free extension",
	AppealOther:              "Other",
}

// AppealTypeName is the display name of an appeal type, or the code itself.
func AppealTypeName(code string) string {
	if name, ok := appealTypeNames[code]; ok {
		return name
	}
	return code
}

// IsAppealType reports whether code is a known appeal type.
func IsAppealType(code string) bool {
	_, ok := appealTypeNames[code]
	return ok
}

// CompareAppealMsTypes is the milestone type order used between appeals: FE sorts just
// before F1, and every other pair compares as strings. It is kept apart from
// CompareMilestoneTypes on purpose.
func CompareAppealMsTypes(a, b string) int {
	if a == MsTypeFinalExam && b == MsTypeFinalPlusOne {
		return -1
	}
	if a == MsTypeFinalPlusOne && b == MsTypeFinalExam {
		return 1
	}
	return strings.Compare(a, b)
}

// MilestoneAppeal is one entry in the append-only ledger of deadline adjustments. When
// Pace, PaceTrack, MsNbr and MsType are nil the entry is a student-level note.
type MilestoneAppeal struct {
	StuID           *string    `json:"stu_id" validate:"required"`
	Term            *TermKey   `json:"term" validate:"required"`
	AppealDateTime  *time.Time `json:"appeal_date_time" validate:"required"`
	AppealType      *string    `json:"appeal_type" validate:"required"`
	Pace            *int       `json:"pace,omitempty"`
	PaceTrack       *string    `json:"pace_track,omitempty"`
	MsNbr           *int       `json:"ms_nbr,omitempty"`
	MsType          *string    `json:"ms_type,omitempty"`
	PriorMsDt       *time.Time `json:"prior_ms_dt,omitempty"`
	NewMsDt         *time.Time `json:"new_ms_dt,omitempty"`
	AttemptsAllowed *int       `json:"attempts_allowed,omitempty"`
	Circumstances   *string    `json:"circumstances,omitempty"`
	Comment         *string    `json:"comment,omitempty"`
	Interviewer     *string    `json:"interviewer" validate:"required"`
}

// IsTestStudent reports whether the appeal belongs to a test account (IDs starting "99").
func (r *MilestoneAppeal) IsTestStudent() bool {
	return r.StuID != nil && strings.HasPrefix(*r.StuID, "99")
}

// TargetsMilestone reports whether the appeal adjusts a specific milestone.
func (r *MilestoneAppeal) TargetsMilestone() bool {
	return r.Pace != nil && r.PaceTrack != nil && r.MsNbr != nil && r.MsType != nil
}

func (r *MilestoneAppeal) Validate() error {
	return Validate(r)
}

func (r *MilestoneAppeal) String() string {
	var l line
	return l.str("stu_id", r.StuID).
		term("term", r.Term).
		stamp("appeal_date_time", r.AppealDateTime).
		str("appeal_type", r.AppealType).
		num("pace", r.Pace).
		str("pace_track", r.PaceTrack).
		num("ms_nbr", r.MsNbr).
		str("ms_type", r.MsType).
		date("prior_ms_dt", r.PriorMsDt).
		date("new_ms_dt", r.NewMsDt).
		num("attempts_allowed", r.AttemptsAllowed).
		str("circumstances", r.Circumstances).
		str("comment", r.Comment).
		str("interviewer", r.Interviewer).
		String()
}

func (r *MilestoneAppeal) Hash() uint64 {
	return hashOf(r.String())
}

func (r *MilestoneAppeal) Equal(o *MilestoneAppeal) bool {
	return nullsafe.Equal(r.StuID, o.StuID) &&
		nullsafe.Equal(r.Term, o.Term) &&
		nullsafe.EqualTime(r.AppealDateTime, o.AppealDateTime) &&
		nullsafe.Equal(r.AppealType, o.AppealType) &&
		nullsafe.Equal(r.Pace, o.Pace) &&
		nullsafe.Equal(r.PaceTrack, o.PaceTrack) &&
		nullsafe.Equal(r.MsNbr, o.MsNbr) &&
		nullsafe.Equal(r.MsType, o.MsType) &&
		nullsafe.EqualTime(r.PriorMsDt, o.PriorMsDt) &&
		nullsafe.EqualTime(r.NewMsDt, o.NewMsDt) &&
		nullsafe.Equal(r.AttemptsAllowed, o.AttemptsAllowed) &&
		nullsafe.Equal(r.Circumstances, o.Circumstances) &&
		nullsafe.Equal(r.Comment, o.Comment) &&
		nullsafe.Equal(r.Interviewer, o.Interviewer)
}

var appealOrder = nullsafe.Order[*MilestoneAppeal]().
	Then(nullsafe.ByTime(func(r *MilestoneAppeal) *time.Time { return r.AppealDateTime })).
	Then(nullsafe.By(func(r *MilestoneAppeal) *string { return r.StuID })).
	Then(nullsafe.By(func(r *MilestoneAppeal) *int { return r.MsNbr })).
	Then(nullsafe.ByFunc(func(r *MilestoneAppeal) *string { return r.MsType }, CompareAppealMsTypes))

// Compare orders appeals by timestamp, then student, milestone number and appeal type
// order.
func (r *MilestoneAppeal) Compare(o *MilestoneAppeal) int {
	return appealOrder.Compare(r, o)
}
