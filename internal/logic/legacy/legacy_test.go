package legacy

import (
	"context"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/pacekeeper/internal/logic"
	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/nullsafe"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
	"github.com/shrimpsizemoose/pacekeeper/internal/store/sqlite"
)

var fa24 = models.NewTermKey(models.Fall, 2024)

func setupTestDB(t *testing.T, caps store.Capabilities) (*sqlite.SQLiteStore, *logic.Logic) {
	t.Helper()
	s, err := sqlite.NewSQLiteStore(":memory:")
	require.NoError(t, err, "Failed to create store")
	require.NoError(t, s.ApplyMigrations(context.Background()), "Failed to apply migrations")
	t.Cleanup(func() {
		require.NoError(t, s.Close(), "Failed to close database")
	})
	return s, New(caps)
}

// spyCache records statements and answers every one with an empty result.
type spyCache struct {
	statements []string
	args       [][]any
}

func (c *spyCache) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	c.statements = append(c.statements, query)
	c.args = append(c.args, args)
	return 1, nil
}

func (c *spyCache) Query(ctx context.Context, query string, args ...any) ([]store.Row, error) {
	c.statements = append(c.statements, query)
	c.args = append(c.args, args)
	return nil, nil
}

func (c *spyCache) SchemaPrefix(slot store.Schema) string {
	return "ignored"
}

func TestMain(m *testing.M) {
	log.Println("Starting legacy logic tests...")
	code := m.Run()
	log.Println("Finished legacy logic tests")
	os.Exit(code)
}

func term(key models.TermKey, index int, start, end time.Time) *models.Term {
	return &models.Term{
		Term:         &key,
		StartDate:    &start,
		EndDate:      &end,
		AcademicYear: nullsafe.Ptr("2425"),
		ActiveIndex:  &index,
	}
}

func TestTermLogic(t *testing.T) {
	s, l := setupTestDB(t, store.Capabilities{})
	ctx := context.Background()

	sp25 := models.NewTermKey(models.Spring, 2025)
	sm25 := models.NewTermKey(models.Summer, 2025)
	sm24 := models.NewTermKey(models.Summer, 2024)
	for _, rec := range []*models.Term{
		term(fa24, 0, models.Date(2024, time.August, 26), time.Date(2024, 12, 13, 17, 0, 0, 0, time.UTC)),
		term(sm25, 2, models.Date(2025, time.June, 2), models.Date(2025, time.August, 8)),
		term(sp25, 1, models.Date(2025, time.January, 21), models.Date(2025, time.May, 9)),
		term(sm24, -1, models.Date(2024, time.June, 3), models.Date(2024, time.August, 9)),
	} {
		ok, err := l.Term.Insert(ctx, s, rec)
		require.NoError(t, err)
		require.True(t, ok)
	}

	t.Run("active", func(t *testing.T) {
		active, err := l.Term.QueryActive(ctx, s)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, fa24, *active.Term)
		assert.Equal(t, models.Date(2024, time.December, 13), *active.EndDate, "date columns drop the time")
	})

	t.Run("neighbours", func(t *testing.T) {
		next, err := l.Term.QueryNext(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, sp25, *next.Term)

		prior, err := l.Term.QueryPrior(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, sm24, *prior.Term)

		future, err := l.Term.FutureTerms(ctx, s)
		require.NoError(t, err)
		require.Len(t, future, 2)
		assert.Equal(t, sp25, *future[0].Term)
		assert.Equal(t, sm25, *future[1].Term)
	})

	t.Run("active flag column", func(t *testing.T) {
		rows, err := s.Query(ctx, "SELECT term, term_yr, active FROM term WHERE active_index = 0")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "FA", *rows[0].String("term"))
		assert.Equal(t, "24", *rows[0].String("term_yr"))
		assert.Equal(t, "Y", *rows[0].String("active"))
	})

	t.Run("by key and delete", func(t *testing.T) {
		got, err := l.Term.Query(ctx, s, sm25)
		require.NoError(t, err)
		require.NotNil(t, got)

		ok, err := l.Term.Delete(ctx, s, got)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err = l.Term.Query(ctx, s, sm25)
		require.NoError(t, err)
		assert.Nil(t, got)

		all, err := l.Term.QueryAll(ctx, s)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("duplicate key fails", func(t *testing.T) {
		_, err := l.Term.Insert(ctx, s, term(fa24, 0, models.Date(2024, time.August, 26), models.Date(2024, time.December, 13)))
		assert.Error(t, err)
	})
}

func TestActiveFlag(t *testing.T) {
	for index, want := range map[int]string{0: "Y", 1: "X", 2: "2", 3: "3", -1: "P", -2: "N", 7: "N"} {
		assert.Equal(t, want, activeFlag(&index))
	}
	assert.Equal(t, "N", activeFlag(nil))
}

func TestFromRowTermYear(t *testing.T) {
	l := New(store.Capabilities{})

	rec, err := l.Term.FromRow(store.Row{
		"term": "SP", "term_yr": int64(95), "start_dt": "1995-01-20", "end_dt": "1995-05-10",
		"academic_yr": "9495", "active_index": int64(-60),
	})
	require.NoError(t, err)
	assert.Equal(t, models.NewTermKey(models.Spring, 1995), *rec.Term)

	rec, err = l.Term.FromRow(store.Row{
		"term": "SP", "term_yr": int64(5), "start_dt": "2005-01-20", "end_dt": "2005-05-10",
		"academic_yr": "0405", "active_index": int64(-20),
	})
	require.NoError(t, err)
	assert.Equal(t, 2005, rec.Term.Year)

	_, err = l.Term.FromRow(store.Row{"term": "XX", "term_yr": int64(24)})
	assert.ErrorIs(t, err, store.ErrMapping)

	_, err = l.Term.FromRow(store.Row{"term": "FA", "term_yr": int64(24), "start_dt": "2024-08-26"})
	assert.ErrorIs(t, err, store.ErrMapping)
}

func TestRequiredFieldSendsNoSQL(t *testing.T) {
	l := New(store.Capabilities{})
	spy := &spyCache{}
	ctx := context.Background()

	_, err := l.Milestone.Insert(ctx, spy, &models.Milestone{Term: &fa24, Pace: nullsafe.Ptr(2)})
	assert.ErrorIs(t, err, store.ErrRequiredField)

	_, err = l.MilestoneAppeal.Insert(ctx, spy, &models.MilestoneAppeal{StuID: nullsafe.Ptr("888001234")})
	assert.ErrorIs(t, err, store.ErrRequiredField)

	assert.Empty(t, spy.statements)
}

func TestLegacyTablesAreUnqualified(t *testing.T) {
	l := New(store.Capabilities{})
	spy := &spyCache{}

	_, err := l.ReportPerms.QueryByStuID(context.Background(), spy, "888001234")
	require.NoError(t, err)
	require.Len(t, spy.statements, 1)
	assert.Equal(t, "SELECT stu_id, rpt_id, perm_level FROM report_perms WHERE stu_id = ?", spy.statements[0])
}

func TestStudentCapabilities(t *testing.T) {
	ctx := context.Background()
	stu := &models.Student{
		StuID:         nullsafe.Ptr("888001234"),
		LastName:      nullsafe.Ptr("Rivera"),
		ExtensionDays: nullsafe.Ptr(3),
		CanvasID:      nullsafe.Ptr("c-1234"),
	}

	t.Run("without optional columns", func(t *testing.T) {
		spy := &spyCache{}
		_, err := New(store.Capabilities{}).Student.Insert(ctx, spy, stu)
		require.NoError(t, err)
		assert.NotContains(t, spy.statements[0], "extension_days")
		assert.NotContains(t, spy.statements[0], "canvas_id")
	})

	t.Run("with optional columns", func(t *testing.T) {
		s, l := setupTestDB(t, store.Capabilities{StudentExtensionDays: true, StudentCanvasID: true})
		ok, err := l.Student.Insert(ctx, s, stu)
		require.NoError(t, err)
		require.True(t, ok)

		got, err := l.Student.Query(ctx, s, "888001234")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, stu.Equal(got))

		plain, err := New(store.Capabilities{}).Student.Query(ctx, s, "888001234")
		require.NoError(t, err)
		assert.Nil(t, plain.ExtensionDays)
		assert.Nil(t, plain.CanvasID)
	})
}

func TestMilestoneLogic(t *testing.T) {
	s, l := setupTestDB(t, store.Capabilities{})
	ctx := context.Background()

	ms := &models.Milestone{
		Term:      &fa24,
		Pace:      nullsafe.Ptr(3),
		PaceTrack: nullsafe.Ptr("B"),
		MsNbr:     nullsafe.Ptr(325),
		MsType:    nullsafe.Ptr(models.MsTypeFinalExam),
		MsDate:    nullsafe.Ptr(models.Date(2024, time.December, 10)),
	}
	ok, err := l.Milestone.Insert(ctx, s, ms)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = l.Milestone.UpdateMsDate(ctx, s, ms, time.Date(2024, 12, 11, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := l.Milestone.QueryByTermPaceTrack(ctx, s, fa24, 3, "B")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.Date(2024, time.December, 11), *got[0].MsDate)
	assert.Equal(t, 2, got[0].Index())
	assert.Equal(t, 5, got[0].Unit())

	none, err := l.Milestone.QueryByTerm(ctx, s, models.NewTermKey(models.Spring, 2025))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMilestoneAppealLogic(t *testing.T) {
	s, l := setupTestDB(t, store.Capabilities{})
	ctx := context.Background()

	at := time.Date(2024, 9, 10, 14, 30, 0, 0, time.UTC)
	appeal := func(stu string, at time.Time, newDt *time.Time) *models.MilestoneAppeal {
		return &models.MilestoneAppeal{
			StuID:          &stu,
			Term:           &fa24,
			AppealDateTime: &at,
			AppealType:     nullsafe.Ptr(models.AppealMedical),
			Pace:           nullsafe.Ptr(2),
			PaceTrack:      nullsafe.Ptr("A"),
			MsNbr:          nullsafe.Ptr(212),
			MsType:         nullsafe.Ptr(models.MsTypeReviewExam),
			NewMsDt:        newDt,
			Interviewer:    nullsafe.Ptr("advisor"),
		}
	}

	later := appeal("888001234", at.Add(time.Hour), nullsafe.Ptr(models.Date(2024, time.October, 4)))
	earlier := appeal("888001234", at, nullsafe.Ptr(models.Date(2024, time.October, 1)))
	for _, a := range []*models.MilestoneAppeal{later, earlier} {
		ok, err := l.MilestoneAppeal.Insert(ctx, s, a)
		require.NoError(t, err)
		require.True(t, ok)
	}

	t.Run("test student is skipped", func(t *testing.T) {
		ok, err := l.MilestoneAppeal.Insert(ctx, s, appeal("991234567", at, nil))
		require.NoError(t, err)
		assert.False(t, ok)

		all, err := l.MilestoneAppeal.QueryAll(ctx, s)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("test student skipped before validation", func(t *testing.T) {
		spy := &spyCache{}
		ok, err := l.MilestoneAppeal.Insert(ctx, spy, &models.MilestoneAppeal{StuID: nullsafe.Ptr("99")})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, spy.statements)
	})

	t.Run("oldest first", func(t *testing.T) {
		got, err := l.MilestoneAppeal.QueryByStudent(ctx, s, "888001234")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, earlier.Equal(&got[0]), "got %s", got[0].String())
		assert.True(t, later.Equal(&got[1]))
	})

	t.Run("scope", func(t *testing.T) {
		got, err := l.MilestoneAppeal.QueryByScope(ctx, s, logic.AppealScope{
			Term: fa24, StuID: "888001234", PaceTrack: "A", Pace: 2, MsNbr: 212, MsType: models.MsTypeReviewExam,
		})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = l.MilestoneAppeal.QueryByScope(ctx, s, logic.AppealScope{
			Term: fa24, StuID: "888001234", PaceTrack: "A", Pace: 2, MsNbr: 213, MsType: models.MsTypeReviewExam,
		})
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = l.MilestoneAppeal.QueryByScope(ctx, s, logic.AppealScope{
			Term: models.NewTermKey(models.Spring, 2024), StuID: "888001234", PaceTrack: "A", Pace: 2, MsNbr: 212,
			MsType: models.MsTypeReviewExam,
		})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("by term", func(t *testing.T) {
		sp24 := models.NewTermKey(models.Spring, 2024)
		other := appeal("888005555", at.Add(-time.Hour), nil)
		other.Term = &sp24
		ok, err := l.MilestoneAppeal.Insert(ctx, s, other)
		require.NoError(t, err)
		require.True(t, ok)

		got, err := l.MilestoneAppeal.QueryByTerm(ctx, s, fa24)
		require.NoError(t, err)
		assert.Len(t, got, 2)

		got, err = l.MilestoneAppeal.QueryByStudentTerm(ctx, s, "888005555", fa24)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = l.MilestoneAppeal.QueryByStudentTerm(ctx, s, "888005555", sp24)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, other.Equal(&got[0]))
	})
}

func TestStudentMilestoneLogic(t *testing.T) {
	s, l := setupTestDB(t, store.Capabilities{})
	ctx := context.Background()

	row := &models.StudentMilestone{
		Term:           &fa24,
		StuID:          nullsafe.Ptr("888001234"),
		PaceTrack:      nullsafe.Ptr("A"),
		MsNbr:          nullsafe.Ptr(215),
		MsType:         nullsafe.Ptr(models.MsTypeFinalExam),
		MsDate:         nullsafe.Ptr(models.Date(2024, time.December, 9)),
		NbrAtmptsAllow: nullsafe.Ptr(2),
	}
	ok, err := l.StudentMilestone.Insert(ctx, s, row)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := l.StudentMilestone.Query(ctx, s, row)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, row.Equal(got), "got %s", got.String())

	ok, err = l.StudentMilestone.UpdateDate(ctx, s, row, nullsafe.Ptr(models.Date(2024, time.December, 11)), nullsafe.Ptr(1))
	require.NoError(t, err)
	assert.True(t, ok)

	rows, err := l.StudentMilestone.QueryByStudentTermTrack(ctx, s, "888001234", fa24, "A")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.Date(2024, time.December, 11), *rows[0].MsDate)
	assert.Equal(t, 1, *rows[0].NbrAtmptsAllow)

	rows, err = l.StudentMilestone.QueryByStudentTerm(ctx, s, "888001234", models.NewTermKey(models.Spring, 2025))
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = l.StudentMilestone.Insert(ctx, s, &models.StudentMilestone{Term: &fa24, StuID: nullsafe.Ptr("888001234")})
	assert.ErrorIs(t, err, store.ErrRequiredField)
}

func TestPaceAppealLogic(t *testing.T) {
	s, l := setupTestDB(t, store.Capabilities{})
	ctx := context.Background()

	old := &models.PaceAppeal{
		Term:          &fa24,
		StuID:         nullsafe.Ptr("888001234"),
		AppealDt:      nullsafe.Ptr(models.Date(2024, time.September, 12)),
		Pace:          nullsafe.Ptr(2),
		PaceTrack:     nullsafe.Ptr("A"),
		MsNbr:         nullsafe.Ptr(211),
		MsType:        nullsafe.Ptr(models.MsTypeReviewExam),
		MsDate:        nullsafe.Ptr(models.Date(2024, time.September, 13)),
		NewDeadlineDt: nullsafe.Ptr(models.Date(2024, time.September, 17)),
		Circumstances: nullsafe.Ptr("Doctor's note"),
		Interviewer:   nullsafe.Ptr("advisor"),
	}
	ok, err := l.PaceAppeal.Insert(ctx, s, old)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := l.PaceAppeal.QueryByStudentTerm(ctx, s, "888001234", fa24)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, old.Equal(&got[0]), "got %s", got[0].String())

	got, err = l.PaceAppeal.QueryByStudentTerm(ctx, s, "888001234", models.NewTermKey(models.Spring, 2024))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = l.PaceAppeal.QueryByStudent(ctx, s, "888001234")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCourseworkLogic(t *testing.T) {
	s, l := setupTestDB(t, store.Capabilities{})
	ctx := context.Background()

	for _, a := range []*models.Assignment{
		{AssignmentID: nullsafe.Ptr("H1.1"), AssignmentType: nullsafe.Ptr("HW"), CourseID: nullsafe.Ptr("M 117"),
			Unit: nullsafe.Ptr(1), Objective: nullsafe.Ptr("1")},
		{AssignmentID: nullsafe.Ptr("H1.2"), AssignmentType: nullsafe.Ptr("HW"), CourseID: nullsafe.Ptr("M 117"),
			Unit: nullsafe.Ptr(1), Objective: nullsafe.Ptr("2"), WhenPulled: nullsafe.Ptr(models.Date(2024, time.May, 1))},
		{AssignmentID: nullsafe.Ptr("SR1"), AssignmentType: nullsafe.Ptr("SR"), CourseID: nullsafe.Ptr("M 117"),
			Unit: nullsafe.Ptr(1), Objective: nullsafe.Ptr("0")},
	} {
		ok, err := l.Assignment.Insert(ctx, s, a)
		require.NoError(t, err)
		require.True(t, ok)
	}

	active, err := l.Assignment.QueryActiveByCourse(ctx, s, "M 117", nil)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	hw, err := l.Assignment.QueryActiveByCourse(ctx, s, "M 117", nullsafe.Ptr("HW"))
	require.NoError(t, err)
	require.Len(t, hw, 1)
	assert.Equal(t, "H1.1", *hw[0].AssignmentID)

	started := time.Date(2024, 9, 12, 10, 15, 0, 0, time.UTC)
	for i, passed := range []string{"N", "Y"} {
		ok, err := l.MasteryAttempt.Insert(ctx, s, &models.MasteryAttempt{
			SerialNbr:    nullsafe.Ptr(100 + i),
			ExamID:       nullsafe.Ptr("17111"),
			StuID:        nullsafe.Ptr("888001234"),
			WhenStarted:  nullsafe.Ptr(started.Add(time.Duration(i) * time.Hour)),
			WhenFinished: nullsafe.Ptr(started.Add(time.Duration(i)*time.Hour + 40*time.Minute)),
			ExamScore:    nullsafe.Ptr(3 + i),
			Passed:       &passed,
		})
		require.NoError(t, err)
		require.True(t, ok)
	}

	passed, err := l.MasteryAttempt.QueryByStudentExam(ctx, s, "888001234", "17111", true)
	require.NoError(t, err)
	require.Len(t, passed, 1)
	assert.Equal(t, started.Add(time.Hour), *passed[0].WhenStarted, "timestamps keep the time")

	all, err := l.MasteryAttempt.QueryByStudentExam(ctx, s, "888001234", "17111", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	qa := &models.MasteryAttemptQa{SerialNbr: nullsafe.Ptr(101), ExamID: nullsafe.Ptr("17111"),
		QuestionNbr: nullsafe.Ptr(1), Correct: nullsafe.Ptr("N")}
	_, err = l.MasteryAttemptQa.Insert(ctx, s, qa)
	require.NoError(t, err)
	ok, err := l.MasteryAttemptQa.UpdateCorrect(ctx, s, qa, "Y")
	require.NoError(t, err)
	assert.True(t, ok)
	got, err := l.MasteryAttemptQa.Query(ctx, s, 101, "17111", 1)
	require.NoError(t, err)
	assert.Equal(t, "Y", *got.Correct)
}

func TestMasteryLogic(t *testing.T) {
	s, l := setupTestDB(t, store.Capabilities{})
	ctx := context.Background()

	unit := &models.StuUnitMastery{StuID: nullsafe.Ptr("888001234"), CourseID: nullsafe.Ptr("M 125"),
		Unit: nullsafe.Ptr(2), Score: nullsafe.Ptr(0)}
	_, err := l.StuUnitMastery.Insert(ctx, s, unit)
	require.NoError(t, err)

	_, err = l.StuUnitMastery.UpdateScore(ctx, s, unit, 6)
	require.NoError(t, err)
	_, err = l.StuUnitMastery.UpdateS2Status(ctx, s, unit, nullsafe.Ptr("M"))
	require.NoError(t, err)

	got, err := l.StuUnitMastery.Query(ctx, s, "888001234", "M 125", 2)
	require.NoError(t, err)
	assert.Equal(t, 6, *got.Score)
	assert.Equal(t, "M", *got.S2Status)
	assert.Nil(t, got.S1Status)

	_, err = l.StuUnitMastery.UpdateS2Status(ctx, s, unit, nil)
	require.NoError(t, err)
	got, err = l.StuUnitMastery.Query(ctx, s, "888001234", "M 125", 2)
	require.NoError(t, err)
	assert.Nil(t, got.S2Status)

	perms := &models.ReportPerms{StuID: nullsafe.Ptr("888001234"), RptID: nullsafe.Ptr("PROGRESS"), PermLevel: nullsafe.Ptr(1)}
	_, err = l.ReportPerms.Insert(ctx, s, perms)
	require.NoError(t, err)
	_, err = l.ReportPerms.UpdatePermLevel(ctx, s, perms, 3)
	require.NoError(t, err)
	byRpt, err := l.ReportPerms.QueryByRptID(ctx, s, "PROGRESS")
	require.NoError(t, err)
	require.Len(t, byRpt, 1)
	assert.Equal(t, 3, *byRpt[0].PermLevel)
	assert.True(t, strings.HasPrefix(byRpt[0].String(), "stu_id=888001234"))
}

func TestMasteryAttemptsInStartOrder(t *testing.T) {
	s, l := setupTestDB(t, store.Capabilities{})
	ctx := context.Background()

	day := time.Date(2024, 9, 12, 0, 0, 0, 0, time.UTC)
	for serial, hour := range map[int]int{100: 15, 101: 9, 102: 12} {
		ok, err := l.MasteryAttempt.Insert(ctx, s, &models.MasteryAttempt{
			SerialNbr:    nullsafe.Ptr(serial),
			ExamID:       nullsafe.Ptr("17111"),
			StuID:        nullsafe.Ptr("888001234"),
			WhenStarted:  nullsafe.Ptr(day.Add(time.Duration(hour) * time.Hour)),
			WhenFinished: nullsafe.Ptr(day.Add(time.Duration(hour)*time.Hour + 30*time.Minute)),
			ExamScore:    nullsafe.Ptr(4),
			Passed:       nullsafe.Ptr("Y"),
		})
		require.NoError(t, err)
		require.True(t, ok)
	}

	serials := func(recs []models.MasteryAttempt) []int {
		out := make([]int, 0, len(recs))
		for _, r := range recs {
			out = append(out, *r.SerialNbr)
		}
		return out
	}

	byStudent, err := l.MasteryAttempt.QueryByStudent(ctx, s, "888001234")
	require.NoError(t, err)
	assert.Equal(t, []int{101, 102, 100}, serials(byStudent))

	byExam, err := l.MasteryAttempt.QueryByExam(ctx, s, "17111")
	require.NoError(t, err)
	assert.Equal(t, []int{101, 102, 100}, serials(byExam))

	passed, err := l.MasteryAttempt.QueryByStudentExam(ctx, s, "888001234", "17111", true)
	require.NoError(t, err)
	assert.Equal(t, []int{101, 102, 100}, serials(passed))
}

func TestQueryAllInTermOrder(t *testing.T) {
	s, l := setupTestDB(t, store.Capabilities{})
	ctx := context.Background()

	sp25 := models.NewTermKey(models.Spring, 2025)
	sm99 := models.NewTermKey(models.Summer, 1999)
	fa05 := models.NewTermKey(models.Fall, 2005)
	for _, rec := range []*models.Term{
		term(sp25, 1, models.Date(2025, time.January, 21), models.Date(2025, time.May, 9)),
		term(fa24, 0, models.Date(2024, time.August, 26), models.Date(2024, time.December, 13)),
		term(sm99, -3, models.Date(1999, time.June, 1), models.Date(1999, time.August, 6)),
		term(fa05, -2, models.Date(2005, time.August, 22), models.Date(2005, time.December, 16)),
	} {
		_, err := l.Term.Insert(ctx, s, rec)
		require.NoError(t, err)
	}

	all, err := l.Term.QueryAll(ctx, s)
	require.NoError(t, err)
	require.Len(t, all, 4)
	var got []models.TermKey
	for _, rec := range all {
		got = append(got, *rec.Term)
	}
	assert.Equal(t, []models.TermKey{sm99, fa05, fa24, sp25}, got)
}
