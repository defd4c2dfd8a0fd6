// Package logic declares the per-entity operations both schema layouts implement. Callers
// hold a *Logic obtained from the resolver and never branch on dialect.
package logic

import (
	"context"
	"time"

	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

// RecLogic is the contract shared by every entity.
type RecLogic[T any] interface {
	// Insert fails with store.ErrRequiredField before building SQL when a required field
	// is nil.
	Insert(ctx context.Context, c store.Cache, rec *T) (bool, error)
	// Delete removes the row with the record's primary key.
	Delete(ctx context.Context, c store.Cache, rec *T) (bool, error)
	QueryAll(ctx context.Context, c store.Cache) ([]T, error)
	FromRow(row store.Row) (*T, error)
}

type TermLogic interface {
	RecLogic[models.Term]
	Query(ctx context.Context, c store.Cache, term models.TermKey) (*models.Term, error)
	QueryByIndex(ctx context.Context, c store.Cache, index int) (*models.Term, error)
	QueryActive(ctx context.Context, c store.Cache) (*models.Term, error)
	QueryNext(ctx context.Context, c store.Cache) (*models.Term, error)
	QueryPrior(ctx context.Context, c store.Cache) (*models.Term, error)
	// FutureTerms returns terms with a positive active index, nearest first.
	FutureTerms(ctx context.Context, c store.Cache) ([]models.Term, error)
}

type TermWeekLogic interface {
	RecLogic[models.TermWeek]
	QueryByTerm(ctx context.Context, c store.Cache, term models.TermKey) ([]models.TermWeek, error)
	Query(ctx context.Context, c store.Cache, term models.TermKey, weekNbr int) (*models.TermWeek, error)
}

type PaceTrackRuleLogic interface {
	RecLogic[models.PaceTrackRule]
	QueryByTerm(ctx context.Context, c store.Cache, term models.TermKey) ([]models.PaceTrackRule, error)
}

type PacingStructureLogic interface {
	RecLogic[models.PacingStructure]
	Query(ctx context.Context, c store.Cache, term models.TermKey, pacingStructure string) (*models.PacingStructure, error)
}

type AssignmentLogic interface {
	RecLogic[models.Assignment]
	Query(ctx context.Context, c store.Cache, assignmentID string) (*models.Assignment, error)
	// QueryActiveByCourse returns unpulled assignments ordered by unit and objective;
	// assignmentType filters when non-nil.
	QueryActiveByCourse(ctx context.Context, c store.Cache, courseID string, assignmentType *string) ([]models.Assignment, error)
}

type MasteryExamLogic interface {
	RecLogic[models.MasteryExam]
	Query(ctx context.Context, c store.Cache, examID string) (*models.MasteryExam, error)
	QueryActiveByCourse(ctx context.Context, c store.Cache, courseID string) ([]models.MasteryExam, error)
	QueryActiveByCourseUnit(ctx context.Context, c store.Cache, courseID string, unit int) ([]models.MasteryExam, error)
	QueryActiveByCourseUnitObjective(ctx context.Context, c store.Cache, courseID string, unit, objective int) ([]models.MasteryExam, error)
	QueryActive(ctx context.Context, c store.Cache, courseID string, unit, objective int, examType string) (*models.MasteryExam, error)
}

type MasteryAttemptLogic interface {
	RecLogic[models.MasteryAttempt]
	Query(ctx context.Context, c store.Cache, serialNbr int, examID string) (*models.MasteryAttempt, error)
	QueryByStudent(ctx context.Context, c store.Cache, stuID string) ([]models.MasteryAttempt, error)
	QueryByExam(ctx context.Context, c store.Cache, examID string) ([]models.MasteryAttempt, error)
	QueryByStudentExam(ctx context.Context, c store.Cache, stuID, examID string, passedOnly bool) ([]models.MasteryAttempt, error)
}

type MasteryAttemptQaLogic interface {
	RecLogic[models.MasteryAttemptQa]
	UpdateCorrect(ctx context.Context, c store.Cache, rec *models.MasteryAttemptQa, correct string) (bool, error)
	QueryByAttempt(ctx context.Context, c store.Cache, serialNbr int, examID string) ([]models.MasteryAttemptQa, error)
	Query(ctx context.Context, c store.Cache, serialNbr int, examID string, questionNbr int) (*models.MasteryAttemptQa, error)
}

type StuStandardMilestoneLogic interface {
	RecLogic[models.StuStandardMilestone]
	// UpdateDate changes ms_date only, keyed on every other column.
	UpdateDate(ctx context.Context, c store.Cache, rec *models.StuStandardMilestone, newDate *time.Time) (bool, error)
	Query(ctx context.Context, c store.Cache, key *models.StuStandardMilestone) (*models.StuStandardMilestone, error)
	QueryByStudent(ctx context.Context, c store.Cache, stuID string) ([]models.StuStandardMilestone, error)
	QueryByStuPaceTrackPace(ctx context.Context, c store.Cache, stuID, paceTrack string, pace int) ([]models.StuStandardMilestone, error)
	QueryByStuPaceTrackPaceIndex(ctx context.Context, c store.Cache, stuID, paceTrack string, pace, paceIndex int) ([]models.StuStandardMilestone, error)
}

type StuUnitMasteryLogic interface {
	RecLogic[models.StuUnitMastery]
	UpdateScore(ctx context.Context, c store.Cache, rec *models.StuUnitMastery, score int) (bool, error)
	UpdateSrStatus(ctx context.Context, c store.Cache, rec *models.StuUnitMastery, status *string) (bool, error)
	UpdateS1Status(ctx context.Context, c store.Cache, rec *models.StuUnitMastery, status *string) (bool, error)
	UpdateS2Status(ctx context.Context, c store.Cache, rec *models.StuUnitMastery, status *string) (bool, error)
	UpdateS3Status(ctx context.Context, c store.Cache, rec *models.StuUnitMastery, status *string) (bool, error)
	Query(ctx context.Context, c store.Cache, stuID, courseID string, unit int) (*models.StuUnitMastery, error)
	QueryByStudent(ctx context.Context, c store.Cache, stuID string) ([]models.StuUnitMastery, error)
	QueryByStudentCourse(ctx context.Context, c store.Cache, stuID, courseID string) ([]models.StuUnitMastery, error)
}

type StuCourseMasteryLogic interface {
	RecLogic[models.StuCourseMastery]
	UpdateMastery(ctx context.Context, c store.Cache, rec *models.StuCourseMastery, h1, h2, eligible int) (bool, error)
	UpdateScore(ctx context.Context, c store.Cache, rec *models.StuCourseMastery, score int) (bool, error)
	Query(ctx context.Context, c store.Cache, stuID, courseID string) (*models.StuCourseMastery, error)
	QueryByStudent(ctx context.Context, c store.Cache, stuID string) ([]models.StuCourseMastery, error)
}

type ReportPermsLogic interface {
	RecLogic[models.ReportPerms]
	UpdatePermLevel(ctx context.Context, c store.Cache, rec *models.ReportPerms, level int) (bool, error)
	Query(ctx context.Context, c store.Cache, stuID, rptID string) (*models.ReportPerms, error)
	QueryByStuID(ctx context.Context, c store.Cache, stuID string) ([]models.ReportPerms, error)
	QueryByRptID(ctx context.Context, c store.Cache, rptID string) ([]models.ReportPerms, error)
}

type MilestoneLogic interface {
	RecLogic[models.Milestone]
	QueryByTerm(ctx context.Context, c store.Cache, term models.TermKey) ([]models.Milestone, error)
	QueryByTermPaceTrack(ctx context.Context, c store.Cache, term models.TermKey, pace int, paceTrack string) ([]models.Milestone, error)
	// UpdateMsDate changes ms_date only, keyed on term, pace, track, number and type.
	UpdateMsDate(ctx context.Context, c store.Cache, rec *models.Milestone, newDate time.Time) (bool, error)
}

// MilestoneAppealLogic has no update: the ledger is append-only. Delete exists for
// maintenance only.
type MilestoneAppealLogic interface {
	RecLogic[models.MilestoneAppeal]
	// QueryByStudent returns the student's appeals in every term, oldest first.
	QueryByStudent(ctx context.Context, c store.Cache, stuID string) ([]models.MilestoneAppeal, error)
	// QueryByStudentTerm returns the student's appeals in one term, oldest first.
	QueryByStudentTerm(ctx context.Context, c store.Cache, stuID string, term models.TermKey) ([]models.MilestoneAppeal, error)
	// QueryByTerm returns every appeal recorded in a term, oldest first.
	QueryByTerm(ctx context.Context, c store.Cache, term models.TermKey) ([]models.MilestoneAppeal, error)
	// QueryByScope returns appeals for one milestone of a student, oldest first.
	QueryByScope(ctx context.Context, c store.Cache, scope AppealScope) ([]models.MilestoneAppeal, error)
}

// AppealScope identifies one milestone of one student in one term.
type AppealScope struct {
	Term      models.TermKey
	StuID     string
	PaceTrack string
	Pace      int
	MsNbr     int
	MsType    string
}

type StudentMilestoneLogic interface {
	RecLogic[models.StudentMilestone]
	// UpdateDate changes ms_date and nbr_atmpts_allow, keyed on the rest.
	UpdateDate(ctx context.Context, c store.Cache, rec *models.StudentMilestone, newDate *time.Time, attempts *int) (bool, error)
	Query(ctx context.Context, c store.Cache, key *models.StudentMilestone) (*models.StudentMilestone, error)
	QueryByStudentTerm(ctx context.Context, c store.Cache, stuID string, term models.TermKey) ([]models.StudentMilestone, error)
	QueryByStudentTermTrack(ctx context.Context, c store.Cache, stuID string, term models.TermKey, paceTrack string) ([]models.StudentMilestone, error)
}

// PaceAppealLogic reads the older appeal ledger. New appeals go to MilestoneAppeal.
type PaceAppealLogic interface {
	RecLogic[models.PaceAppeal]
	QueryByStudent(ctx context.Context, c store.Cache, stuID string) ([]models.PaceAppeal, error)
	QueryByStudentTerm(ctx context.Context, c store.Cache, stuID string, term models.TermKey) ([]models.PaceAppeal, error)
}

type StudentLogic interface {
	RecLogic[models.Student]
	Query(ctx context.Context, c store.Cache, stuID string) (*models.Student, error)
}

// Logic bundles one dialect's strategy for every entity.
type Logic struct {
	Dialect              store.Dialect
	Term                 TermLogic
	TermWeek             TermWeekLogic
	PaceTrackRule        PaceTrackRuleLogic
	PacingStructure      PacingStructureLogic
	Assignment           AssignmentLogic
	MasteryExam          MasteryExamLogic
	MasteryAttempt       MasteryAttemptLogic
	MasteryAttemptQa     MasteryAttemptQaLogic
	StuStandardMilestone StuStandardMilestoneLogic
	StuUnitMastery       StuUnitMasteryLogic
	StuCourseMastery     StuCourseMasteryLogic
	ReportPerms          ReportPermsLogic
	Milestone            MilestoneLogic
	MilestoneAppeal      MilestoneAppealLogic
	StudentMilestone     StudentMilestoneLogic
	PaceAppeal           PaceAppealLogic
	Student              StudentLogic
}
