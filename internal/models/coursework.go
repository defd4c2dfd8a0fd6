package models

import (
	"time"

	"github.com/shrimpsizemoose/pacekeeper/internal/nullsafe"
)

// Assignment is a homework set attached to a course unit and objective. It is active
// while WhenPulled is nil.
type Assignment struct {
	AssignmentID   *string    `json:"assignment_id" validate:"required"`
	AssignmentType *string    `json:"assignment_type" validate:"required"`
	CourseID       *string    `json:"course_id" validate:"required"`
	Unit           *int       `json:"unit" validate:"required"`
	Objective      *string    `json:"objective" validate:"required"`
	TreeRef        *string    `json:"tree_ref,omitempty"`
	Title          *string    `json:"title,omitempty"`
	WhenActive     *time.Time `json:"when_active,omitempty"`
	WhenPulled     *time.Time `json:"when_pulled,omitempty"`
}

func (r *Assignment) Validate() error {
	return Validate(r)
}

func (r *Assignment) String() string {
	var l line
	return l.str("assignment_id", r.AssignmentID).
		str("assignment_type", r.AssignmentType).
		str("course_id", r.CourseID).
		num("unit", r.Unit).
		str("objective", r.Objective).
		str("tree_ref", r.TreeRef).
		str("title", r.Title).
		stamp("when_active", r.WhenActive).
		stamp("when_pulled", r.WhenPulled).
		String()
}

func (r *Assignment) Hash() uint64 {
	return hashOf(r.String())
}

func (r *Assignment) Equal(o *Assignment) bool {
	return nullsafe.Equal(r.AssignmentID, o.AssignmentID) &&
		nullsafe.Equal(r.AssignmentType, o.AssignmentType) &&
		nullsafe.Equal(r.CourseID, o.CourseID) &&
		nullsafe.Equal(r.Unit, o.Unit) &&
		nullsafe.Equal(r.Objective, o.Objective) &&
		nullsafe.Equal(r.TreeRef, o.TreeRef) &&
		nullsafe.Equal(r.Title, o.Title) &&
		nullsafe.EqualTime(r.WhenActive, o.WhenActive) &&
		nullsafe.EqualTime(r.WhenPulled, o.WhenPulled)
}

var assignmentOrder = nullsafe.Order[*Assignment]().
	Then(nullsafe.By(func(r *Assignment) *string { return r.CourseID })).
	Then(nullsafe.By(func(r *Assignment) *int { return r.Unit })).
	Then(nullsafe.By(func(r *Assignment) *string { return r.Objective })).
	Then(nullsafe.By(func(r *Assignment) *string { return r.AssignmentType })).
	Then(nullsafe.By(func(r *Assignment) *string { return r.AssignmentID }))

func (r *Assignment) Compare(o *Assignment) int {
	return assignmentOrder.Compare(r, o)
}

// MasteryExam is an exam that demonstrates mastery of a unit objective.
type MasteryExam struct {
	ExamID      *string    `json:"exam_id" validate:"required"`
	ExamType    *string    `json:"exam_type" validate:"required"`
	CourseID    *string    `json:"course_id" validate:"required"`
	Unit        *int       `json:"unit" validate:"required"`
	Objective   *int       `json:"objective" validate:"required"`
	TreeRef     *string    `json:"tree_ref,omitempty"`
	Title       *string    `json:"title,omitempty"`
	ButtonLabel *string    `json:"button_label,omitempty"`
	WhenActive  *time.Time `json:"when_active,omitempty"`
	WhenPulled  *time.Time `json:"when_pulled,omitempty"`
}

func (r *MasteryExam) Validate() error {
	return Validate(r)
}

func (r *MasteryExam) String() string {
	var l line
	return l.str("exam_id", r.ExamID).
		str("exam_type", r.ExamType).
		str("course_id", r.CourseID).
		num("unit", r.Unit).
		num("objective", r.Objective).
		str("tree_ref", r.TreeRef).
		str("title", r.Title).
		str("button_label", r.ButtonLabel).
		stamp("when_active", r.WhenActive).
		stamp("when_pulled", r.WhenPulled).
		String()
}

func (r *MasteryExam) Hash() uint64 {
	return hashOf(r.String())
}

func (r *MasteryExam) Equal(o *MasteryExam) bool {
	return nullsafe.Equal(r.ExamID, o.ExamID) &&
		nullsafe.Equal(r.ExamType, o.ExamType) &&
		nullsafe.Equal(r.CourseID, o.CourseID) &&
		nullsafe.Equal(r.Unit, o.Unit) &&
		nullsafe.Equal(r.Objective, o.Objective) &&
		nullsafe.Equal(r.TreeRef, o.TreeRef) &&
		nullsafe.Equal(r.Title, o.Title) &&
		nullsafe.Equal(r.ButtonLabel, o.ButtonLabel) &&
		nullsafe.EqualTime(r.WhenActive, o.WhenActive) &&
		nullsafe.EqualTime(r.WhenPulled, o.WhenPulled)
}

var masteryExamOrder = nullsafe.Order[*MasteryExam]().
	Then(nullsafe.By(func(r *MasteryExam) *string { return r.CourseID })).
	Then(nullsafe.By(func(r *MasteryExam) *int { return r.Unit })).
	Then(nullsafe.By(func(r *MasteryExam) *int { return r.Objective })).
	Then(nullsafe.By(func(r *MasteryExam) *string { return r.ExamType })).
	Then(nullsafe.By(func(r *MasteryExam) *string { return r.ExamID }))

func (r *MasteryExam) Compare(o *MasteryExam) int {
	return masteryExamOrder.Compare(r, o)
}

// MasteryAttempt is one student sitting of a mastery exam.
type MasteryAttempt struct {
	SerialNbr     *int       `json:"serial_nbr" validate:"required"`
	ExamID        *string    `json:"exam_id" validate:"required"`
	StuID         *string    `json:"stu_id" validate:"required"`
	WhenStarted   *time.Time `json:"when_started" validate:"required"`
	WhenFinished  *time.Time `json:"when_finished" validate:"required"`
	ExamScore     *int       `json:"exam_score" validate:"required"`
	MasteryScore  *int       `json:"mastery_score,omitempty"`
	Passed        *string    `json:"passed" validate:"required"`
	IsFirstPassed *string    `json:"is_first_passed,omitempty"`
	ExamSource    *string    `json:"exam_source,omitempty"`
}

func (r *MasteryAttempt) Validate() error {
	return Validate(r)
}

func (r *MasteryAttempt) String() string {
	var l line
	return l.num("serial_nbr", r.SerialNbr).
		str("exam_id", r.ExamID).
		str("stu_id", r.StuID).
		stamp("when_started", r.WhenStarted).
		stamp("when_finished", r.WhenFinished).
		num("exam_score", r.ExamScore).
		num("mastery_score", r.MasteryScore).
		str("passed", r.Passed).
		str("is_first_passed", r.IsFirstPassed).
		str("exam_source", r.ExamSource).
		String()
}

func (r *MasteryAttempt) Hash() uint64 {
	return hashOf(r.String())
}

func (r *MasteryAttempt) Equal(o *MasteryAttempt) bool {
	return nullsafe.Equal(r.SerialNbr, o.SerialNbr) &&
		nullsafe.Equal(r.ExamID, o.ExamID) &&
		nullsafe.Equal(r.StuID, o.StuID) &&
		nullsafe.EqualTime(r.WhenStarted, o.WhenStarted) &&
		nullsafe.EqualTime(r.WhenFinished, o.WhenFinished) &&
		nullsafe.Equal(r.ExamScore, o.ExamScore) &&
		nullsafe.Equal(r.MasteryScore, o.MasteryScore) &&
		nullsafe.Equal(r.Passed, o.Passed) &&
		nullsafe.Equal(r.IsFirstPassed, o.IsFirstPassed) &&
		nullsafe.Equal(r.ExamSource, o.ExamSource)
}

var masteryAttemptOrder = nullsafe.Order[*MasteryAttempt]().
	Then(nullsafe.By(func(r *MasteryAttempt) *string { return r.StuID })).
	Then(nullsafe.ByTime(func(r *MasteryAttempt) *time.Time { return r.WhenStarted })).
	Then(nullsafe.By(func(r *MasteryAttempt) *int { return r.SerialNbr })).
	Then(nullsafe.By(func(r *MasteryAttempt) *string { return r.ExamID }))

func (r *MasteryAttempt) Compare(o *MasteryAttempt) int {
	return masteryAttemptOrder.Compare(r, o)
}

// MasteryAttemptQa records whether one question of an attempt was answered correctly.
type MasteryAttemptQa struct {
	SerialNbr   *int    `json:"serial_nbr" validate:"required"`
	ExamID      *string `json:"exam_id" validate:"required"`
	QuestionNbr *int    `json:"question_nbr" validate:"required"`
	Correct     *string `json:"correct" validate:"required"`
}

func (r *MasteryAttemptQa) Validate() error {
	return Validate(r)
}

func (r *MasteryAttemptQa) String() string {
	var l line
	return l.num("serial_nbr", r.SerialNbr).
		str("exam_id", r.ExamID).
		num("question_nbr", r.QuestionNbr).
		str("correct", r.Correct).
		String()
}

func (r *MasteryAttemptQa) Hash() uint64 {
	return hashOf(r.String())
}

func (r *MasteryAttemptQa) Equal(o *MasteryAttemptQa) bool {
	return nullsafe.Equal(r.SerialNbr, o.SerialNbr) &&
		nullsafe.Equal(r.ExamID, o.ExamID) &&
		nullsafe.Equal(r.QuestionNbr, o.QuestionNbr) &&
		nullsafe.Equal(r.Correct, o.Correct)
}

var masteryAttemptQaOrder = nullsafe.Order[*MasteryAttemptQa]().
	Then(nullsafe.By(func(r *MasteryAttemptQa) *int { return r.SerialNbr })).
	Then(nullsafe.By(func(r *MasteryAttemptQa) *string { return r.ExamID })).
	Then(nullsafe.By(func(r *MasteryAttemptQa) *int { return r.QuestionNbr }))

func (r *MasteryAttemptQa) Compare(o *MasteryAttemptQa) int {
	return masteryAttemptQaOrder.Compare(r, o)
}
