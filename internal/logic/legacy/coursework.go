package legacy

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

// Assignments live in the homework table.
type assignmentLogic struct {
	*store.Table[models.Assignment]
}

func newAssignmentLogic() *assignmentLogic {
	t := table[models.Assignment]("Assignment", "homework")
	t.Order = []string{"version"}
	t.Columns = []string{"version", "course", "unit", "objective", "title", "tree_ref", "hw_type",
		"active_dt", "pull_dt"}
	t.Values = func(r *models.Assignment) []any {
		return []any{store.Val(r.AssignmentID), store.Val(r.CourseID), store.Val(r.Unit),
			store.Val(r.Objective), store.Val(r.Title), store.Val(r.TreeRef),
			store.Val(r.AssignmentType), date(r.WhenActive), date(r.WhenPulled)}
	}
	t.Key = func(r *models.Assignment) squirrel.Eq {
		return squirrel.Eq{"version": store.Val(r.AssignmentID)}
	}
	t.Map = func(row store.Row) (*models.Assignment, error) {
		m := store.NewMapper("homework", row)
		rec := &models.Assignment{
			AssignmentID:   m.String("version"),
			AssignmentType: m.String("hw_type"),
			CourseID:       m.String("course"),
			Unit:           m.Int("unit"),
			Objective:      m.String("objective"),
			TreeRef:        m.String("tree_ref"),
			Title:          m.String("title"),
			WhenActive:     m.Date("active_dt"),
			WhenPulled:     m.Date("pull_dt"),
		}
		m.Require("version", "hw_type", "course", "unit", "objective")
		return done(rec, m)
	}
	return &assignmentLogic{Table: t}
}

func (l *assignmentLogic) Query(ctx context.Context, c store.Cache, assignmentID string) (*models.Assignment, error) {
	return l.One(ctx, c, squirrel.Eq{"version": assignmentID})
}

func (l *assignmentLogic) QueryActiveByCourse(ctx context.Context, c store.Cache, courseID string, assignmentType *string) ([]models.Assignment, error) {
	where := squirrel.Eq{"course": courseID, "pull_dt": nil}
	if assignmentType != nil {
		where["hw_type"] = *assignmentType
	}
	return l.Select(ctx, c, where, "unit", "objective")
}

type masteryExamLogic struct {
	*store.Table[models.MasteryExam]
}

func newMasteryExamLogic() *masteryExamLogic {
	t := table[models.MasteryExam]("MasteryExam", "mastery_exam")
	t.Order = []string{"exam_id"}
	t.Columns = []string{"exam_id", "exam_type", "course_id", "unit", "objective", "tree_ref", "title",
		"button_label", "when_active", "when_pulled"}
	t.Values = func(r *models.MasteryExam) []any {
		return []any{store.Val(r.ExamID), store.Val(r.ExamType), store.Val(r.CourseID),
			store.Val(r.Unit), store.Val(r.Objective), store.Val(r.TreeRef), store.Val(r.Title),
			store.Val(r.ButtonLabel), date(r.WhenActive), date(r.WhenPulled)}
	}
	t.Key = func(r *models.MasteryExam) squirrel.Eq {
		return squirrel.Eq{"exam_id": store.Val(r.ExamID)}
	}
	t.Map = func(row store.Row) (*models.MasteryExam, error) {
		m := store.NewMapper("mastery_exam", row)
		rec := &models.MasteryExam{
			ExamID:      m.String("exam_id"),
			ExamType:    m.String("exam_type"),
			CourseID:    m.String("course_id"),
			Unit:        m.Int("unit"),
			Objective:   m.Int("objective"),
			TreeRef:     m.String("tree_ref"),
			Title:       m.String("title"),
			ButtonLabel: m.String("button_label"),
			WhenActive:  m.Date("when_active"),
			WhenPulled:  m.Date("when_pulled"),
		}
		m.Require("exam_id", "exam_type", "course_id", "unit", "objective")
		return done(rec, m)
	}
	return &masteryExamLogic{Table: t}
}

func (l *masteryExamLogic) Query(ctx context.Context, c store.Cache, examID string) (*models.MasteryExam, error) {
	return l.One(ctx, c, squirrel.Eq{"exam_id": examID})
}

func (l *masteryExamLogic) QueryActiveByCourse(ctx context.Context, c store.Cache, courseID string) ([]models.MasteryExam, error) {
	return l.Select(ctx, c, squirrel.Eq{"course_id": courseID, "when_pulled": nil}, "unit", "objective")
}

func (l *masteryExamLogic) QueryActiveByCourseUnit(ctx context.Context, c store.Cache, courseID string, unit int) ([]models.MasteryExam, error) {
	return l.Select(ctx, c, squirrel.Eq{"course_id": courseID, "unit": unit, "when_pulled": nil}, "objective")
}

func (l *masteryExamLogic) QueryActiveByCourseUnitObjective(ctx context.Context, c store.Cache, courseID string, unit, objective int) ([]models.MasteryExam, error) {
	return l.Select(ctx, c, squirrel.Eq{
		"course_id":   courseID,
		"unit":        unit,
		"objective":   objective,
		"when_pulled": nil,
	})
}

func (l *masteryExamLogic) QueryActive(ctx context.Context, c store.Cache, courseID string, unit, objective int, examType string) (*models.MasteryExam, error) {
	return l.One(ctx, c, squirrel.Eq{
		"course_id":   courseID,
		"unit":        unit,
		"objective":   objective,
		"exam_type":   examType,
		"when_pulled": nil,
	})
}

// attemptOrder lists attempts by start time.
var attemptOrder = []string{"when_started", "serial_nbr", "exam_id"}

type masteryAttemptLogic struct {
	*store.Table[models.MasteryAttempt]
}

func newMasteryAttemptLogic() *masteryAttemptLogic {
	t := table[models.MasteryAttempt]("MasteryAttempt", "mastery_attempt")
	t.Order = []string{"serial_nbr", "exam_id"}
	t.Columns = []string{"serial_nbr", "exam_id", "stu_id", "when_started", "when_finished",
		"exam_score", "mastery_score", "passed", "is_first_passed", "exam_source"}
	t.Values = func(r *models.MasteryAttempt) []any {
		return []any{store.Val(r.SerialNbr), store.Val(r.ExamID), store.Val(r.StuID),
			stamp(r.WhenStarted), stamp(r.WhenFinished), store.Val(r.ExamScore),
			store.Val(r.MasteryScore), store.Val(r.Passed), store.Val(r.IsFirstPassed),
			store.Val(r.ExamSource)}
	}
	t.Key = func(r *models.MasteryAttempt) squirrel.Eq {
		return squirrel.Eq{"serial_nbr": store.Val(r.SerialNbr), "exam_id": store.Val(r.ExamID)}
	}
	t.Map = func(row store.Row) (*models.MasteryAttempt, error) {
		m := store.NewMapper("mastery_attempt", row)
		rec := &models.MasteryAttempt{
			SerialNbr:     m.Int("serial_nbr"),
			ExamID:        m.String("exam_id"),
			StuID:         m.String("stu_id"),
			WhenStarted:   m.DateTime("when_started"),
			WhenFinished:  m.DateTime("when_finished"),
			ExamScore:     m.Int("exam_score"),
			MasteryScore:  m.Int("mastery_score"),
			Passed:        m.String("passed"),
			IsFirstPassed: m.String("is_first_passed"),
			ExamSource:    m.String("exam_source"),
		}
		m.Require("serial_nbr", "exam_id", "stu_id", "when_started", "when_finished", "exam_score", "passed")
		return done(rec, m)
	}
	return &masteryAttemptLogic{Table: t}
}

func (l *masteryAttemptLogic) Query(ctx context.Context, c store.Cache, serialNbr int, examID string) (*models.MasteryAttempt, error) {
	return l.One(ctx, c, squirrel.Eq{"serial_nbr": serialNbr, "exam_id": examID})
}

func (l *masteryAttemptLogic) QueryByStudent(ctx context.Context, c store.Cache, stuID string) ([]models.MasteryAttempt, error) {
	return l.Select(ctx, c, squirrel.Eq{"stu_id": stuID}, attemptOrder...)
}

func (l *masteryAttemptLogic) QueryByExam(ctx context.Context, c store.Cache, examID string) ([]models.MasteryAttempt, error) {
	return l.Select(ctx, c, squirrel.Eq{"exam_id": examID}, attemptOrder...)
}

func (l *masteryAttemptLogic) QueryByStudentExam(ctx context.Context, c store.Cache, stuID, examID string, passedOnly bool) ([]models.MasteryAttempt, error) {
	where := squirrel.Eq{"stu_id": stuID, "exam_id": examID}
	if passedOnly {
		where["passed"] = "Y"
	}
	return l.Select(ctx, c, where, attemptOrder...)
}

type masteryAttemptQaLogic struct {
	*store.Table[models.MasteryAttemptQa]
}

func newMasteryAttemptQaLogic() *masteryAttemptQaLogic {
	t := table[models.MasteryAttemptQa]("MasteryAttemptQa", "mastery_attempt_qa")
	t.Order = []string{"serial_nbr", "exam_id", "question_nbr"}
	t.Columns = []string{"serial_nbr", "exam_id", "question_nbr", "correct"}
	t.Values = func(r *models.MasteryAttemptQa) []any {
		return []any{store.Val(r.SerialNbr), store.Val(r.ExamID), store.Val(r.QuestionNbr), store.Val(r.Correct)}
	}
	t.Key = func(r *models.MasteryAttemptQa) squirrel.Eq {
		return squirrel.Eq{
			"serial_nbr":   store.Val(r.SerialNbr),
			"exam_id":      store.Val(r.ExamID),
			"question_nbr": store.Val(r.QuestionNbr),
		}
	}
	t.Map = func(row store.Row) (*models.MasteryAttemptQa, error) {
		m := store.NewMapper("mastery_attempt_qa", row)
		rec := &models.MasteryAttemptQa{
			SerialNbr:   m.Int("serial_nbr"),
			ExamID:      m.String("exam_id"),
			QuestionNbr: m.Int("question_nbr"),
			Correct:     m.String("correct"),
		}
		m.Require("serial_nbr", "exam_id", "question_nbr", "correct")
		return done(rec, m)
	}
	return &masteryAttemptQaLogic{Table: t}
}

func (l *masteryAttemptQaLogic) UpdateCorrect(ctx context.Context, c store.Cache, rec *models.MasteryAttemptQa, correct string) (bool, error) {
	return l.Update(ctx, c, map[string]any{"correct": correct}, l.Key(rec))
}

func (l *masteryAttemptQaLogic) QueryByAttempt(ctx context.Context, c store.Cache, serialNbr int, examID string) ([]models.MasteryAttemptQa, error) {
	return l.Select(ctx, c, squirrel.Eq{"serial_nbr": serialNbr, "exam_id": examID}, "question_nbr")
}

func (l *masteryAttemptQaLogic) Query(ctx context.Context, c store.Cache, serialNbr int, examID string, questionNbr int) (*models.MasteryAttemptQa, error) {
	return l.One(ctx, c, squirrel.Eq{"serial_nbr": serialNbr, "exam_id": examID, "question_nbr": questionNbr})
}
