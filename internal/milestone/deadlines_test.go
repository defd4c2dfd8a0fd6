package milestone

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/pacekeeper/internal/logic"
	"github.com/shrimpsizemoose/pacekeeper/internal/logic/legacy"
	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/nullsafe"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
	"github.com/shrimpsizemoose/pacekeeper/internal/store/sqlite"
)

var fa24 = models.NewTermKey(models.Fall, 2024)

type testData struct {
	store     *sqlite.SQLiteStore
	logic     *logic.Logic
	deadlines *Deadlines
}

// setupTestData seeds an active fall term, one student with three accommodation days on
// pacing structure A, and the pace 2 track A milestones of course index 1.
func setupTestData(t *testing.T) (*testData, func()) {
	ctx := context.Background()
	s, err := sqlite.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations(ctx))

	l := legacy.New(store.Capabilities{StudentExtensionDays: true})

	insert := func(ok bool, err error) {
		t.Helper()
		require.NoError(t, err)
		require.True(t, ok)
	}

	insert(l.Term.Insert(ctx, s, &models.Term{
		Term:         &fa24,
		StartDate:    nullsafe.Ptr(day(time.August, 26)),
		EndDate:      nullsafe.Ptr(day(time.December, 13)),
		AcademicYear: nullsafe.Ptr("2425"),
		ActiveIndex:  nullsafe.Ptr(0),
	}))
	insert(l.PacingStructure.Insert(ctx, s, &models.PacingStructure{
		Term:            &fa24,
		PacingStructure: nullsafe.Ptr("A"),
	}))
	for _, stu := range []string{"888001234", "990000001"} {
		insert(l.Student.Insert(ctx, s, &models.Student{
			StuID:           nullsafe.Ptr(stu),
			PacingStructure: nullsafe.Ptr("A"),
			ExtensionDays:   nullsafe.Ptr(3),
		}))
	}

	ms := func(unit int, msType string, date time.Time, attempts *int) {
		insert(l.Milestone.Insert(ctx, s, &models.Milestone{
			Term:           &fa24,
			Pace:           nullsafe.Ptr(2),
			PaceTrack:      nullsafe.Ptr("A"),
			MsNbr:          nullsafe.Ptr(models.LegacyMsNbr(2, 1, unit)),
			MsType:         &msType,
			MsDate:         &date,
			NbrAtmptsAllow: attempts,
		}))
	}
	ms(1, models.MsTypeReviewExam, day(time.September, 13), nil)
	ms(2, models.MsTypeReviewExam, day(time.September, 27), nil)
	ms(3, models.MsTypeReviewExam, day(time.October, 11), nil)
	ms(4, models.MsTypeReviewExam, day(time.October, 25), nil)
	ms(5, models.MsTypeFinalExam, day(time.December, 12), nil)
	ms(5, models.MsTypeFinalPlusOne, day(time.December, 13), nullsafe.Ptr(1))

	d := NewDeadlines(s, l)
	clock := time.Date(2024, 9, 10, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	cleanup := func() {
		require.NoError(t, s.Close())
	}
	return &testData{store: s, logic: l, deadlines: d}, cleanup
}

func (td *testData) appeal(t *testing.T, a models.MilestoneAppeal) {
	t.Helper()
	td.appealIn(t, fa24, a)
}

func (td *testData) appealIn(t *testing.T, term models.TermKey, a models.MilestoneAppeal) {
	t.Helper()
	a.Term = &term
	ok, err := td.logic.MilestoneAppeal.Insert(context.Background(), td.store, &a)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestResolveLegacy(t *testing.T) {
	td, cleanup := setupTestData(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("stored dates without appeals", func(t *testing.T) {
		r, err := td.deadlines.ResolveLegacy(ctx, fa24, "888001234", "A", 2, 1)
		require.NoError(t, err)
		assert.Equal(t, day(time.September, 13), *r.RE[0])
		assert.Equal(t, day(time.October, 25), *r.Date(4, models.MsTypeReviewExam))
		assert.Equal(t, day(time.December, 12), *r.FE)
		assert.Equal(t, 1, *r.F1Attempts)
		assert.Nil(t, r.Date(5, models.MsTypeReviewExam))
	})

	t.Run("appeals override", func(t *testing.T) {
		at := time.Date(2024, 9, 5, 12, 0, 0, 0, time.UTC)
		re2 := ledgerEntry(at, models.MsTypeReviewExam, nullsafe.Ptr(day(time.October, 1)))
		re2.MsNbr = nullsafe.Ptr(212)
		td.appeal(t, re2)

		f1 := ledgerEntry(at.Add(time.Hour), models.MsTypeFinalPlusOne, nil)
		f1.AttemptsAllowed = nullsafe.Ptr(4)
		td.appeal(t, f1)

		// another course index of the same pace is ignored
		other := ledgerEntry(at.Add(2*time.Hour), models.MsTypeReviewExam, nullsafe.Ptr(day(time.November, 1)))
		other.MsNbr = nullsafe.Ptr(222)
		td.appeal(t, other)

		r, err := td.deadlines.ResolveLegacy(ctx, fa24, "888001234", "A", 2, 1)
		require.NoError(t, err)
		assert.Equal(t, day(time.October, 1), *r.RE[1])
		assert.Equal(t, day(time.September, 13), *r.RE[0])
		assert.Equal(t, 4, *r.F1Attempts)

		course, err := td.deadlines.AppealsForCourse(ctx, fa24, "888001234", "A", 2, 1)
		require.NoError(t, err)
		assert.Len(t, course, 2)
	})

	t.Run("missing milestones", func(t *testing.T) {
		_, err := td.deadlines.ResolveLegacy(ctx, fa24, "888001234", "A", 2, 2)
		assert.ErrorIs(t, err, ErrIncompleteMilestones)

		_, err = td.deadlines.ResolveLegacy(ctx, fa24, "888001234", "B", 2, 1)
		assert.ErrorIs(t, err, ErrIncompleteMilestones)
	})

	t.Run("bad index", func(t *testing.T) {
		_, err := td.deadlines.ResolveLegacy(ctx, fa24, "888001234", "A", 2, 3)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})
}

func TestApplyExtension(t *testing.T) {
	ctx := context.Background()
	re2 := Target{StuID: "888001234", PaceTrack: "A", Pace: 2, Index: 1, Unit: 2, MsType: models.MsTypeReviewExam}

	t.Run("accommodation once per milestone", func(t *testing.T) {
		td, cleanup := setupTestData(t)
		defer cleanup()

		avail, err := td.deadlines.AccommodationDaysAvailable(ctx, re2)
		require.NoError(t, err)
		assert.Equal(t, 3, avail)

		added, err := td.deadlines.ApplyExtension(ctx, re2, models.AppealAccommodation)
		require.NoError(t, err)
		assert.Equal(t, 3, added)

		r, err := td.deadlines.ResolveLegacy(ctx, fa24, "888001234", "A", 2, 1)
		require.NoError(t, err)
		assert.Equal(t, day(time.September, 30), *r.RE[1])

		avail, err = td.deadlines.AccommodationDaysAvailable(ctx, re2)
		require.NoError(t, err)
		assert.Equal(t, 0, avail)

		added, err = td.deadlines.ApplyExtension(ctx, re2, models.AppealAccommodation)
		require.NoError(t, err)
		assert.Equal(t, 0, added)

		// free days are tracked separately
		added, err = td.deadlines.ApplyExtension(ctx, re2, models.AppealRequestedExtension)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultFreeExtensionDays, added)

		r, err = td.deadlines.ResolveLegacy(ctx, fa24, "888001234", "A", 2, 1)
		require.NoError(t, err)
		assert.Equal(t, day(time.October, 2), *r.RE[1])

		appeals, err := td.logic.MilestoneAppeal.QueryByStudent(ctx, td.store, "888001234")
		require.NoError(t, err)
		require.Len(t, appeals, 2)
		assert.Equal(t, day(time.September, 27), *appeals[0].PriorMsDt)
		assert.Equal(t, extensionInterviewer, *appeals[0].Interviewer)
		assert.Equal(t, 212, *appeals[1].MsNbr)
	})

	t.Run("capped at end of term", func(t *testing.T) {
		td, cleanup := setupTestData(t)
		defer cleanup()

		fe := Target{StuID: "888001234", PaceTrack: "A", Pace: 2, Index: 1, Unit: 5, MsType: models.MsTypeFinalExam}
		added, err := td.deadlines.ApplyExtension(ctx, fe, models.AppealAccommodation)
		require.NoError(t, err)
		assert.Equal(t, 1, added)

		appeals, err := td.logic.MilestoneAppeal.QueryByStudent(ctx, td.store, "888001234")
		require.NoError(t, err)
		require.Len(t, appeals, 1)
		assert.Equal(t, day(time.December, 13), *appeals[0].NewMsDt)
		require.NotNil(t, appeals[0].Comment)
		assert.Contains(t, *appeals[0].Comment, "Only able to add 1 days")

		f1 := Target{StuID: "888001234", PaceTrack: "A", Pace: 2, Index: 1, Unit: 5, MsType: models.MsTypeFinalPlusOne}
		added, err = td.deadlines.ApplyExtension(ctx, f1, models.AppealAccommodation)
		require.NoError(t, err)
		assert.Equal(t, 0, added, "already on the last day of term")
	})

	t.Run("standards milestone", func(t *testing.T) {
		td, cleanup := setupTestData(t)
		defer cleanup()

		ssm := &models.StuStandardMilestone{
			StuID:     nullsafe.Ptr("888001234"),
			PaceTrack: nullsafe.Ptr("A"),
			Pace:      nullsafe.Ptr(2),
			PaceIndex: nullsafe.Ptr(1),
			Unit:      nullsafe.Ptr(3),
			Objective: nullsafe.Ptr(2),
			MsType:    nullsafe.Ptr(models.MsTypeStandard),
			MsDate:    nullsafe.Ptr(day(time.October, 4)),
		}
		ok, err := td.logic.StuStandardMilestone.Insert(ctx, td.store, ssm)
		require.NoError(t, err)
		require.True(t, ok)

		target := Target{StuID: "888001234", PaceTrack: "A", Pace: 2, Index: 1, Unit: 3, Objective: 2, MsType: models.MsTypeStandard}
		assert.Equal(t, 2132, target.MsNbr())

		added, err := td.deadlines.ApplyExtension(ctx, target, models.AppealRequestedExtension)
		require.NoError(t, err)
		assert.Equal(t, 2, added)

		stored, err := td.logic.StuStandardMilestone.Query(ctx, td.store, ssm)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, day(time.October, 6), *stored.MsDate)

		effective, err := td.deadlines.Effective(ctx, fa24, ssm)
		require.NoError(t, err)
		assert.Equal(t, day(time.October, 6), *effective)
	})

	t.Run("test students are not recorded", func(t *testing.T) {
		td, cleanup := setupTestData(t)
		defer cleanup()

		target := re2
		target.StuID = "990000001"
		added, err := td.deadlines.ApplyExtension(ctx, target, models.AppealAccommodation)
		require.NoError(t, err)
		assert.Equal(t, 0, added)

		appeals, err := td.logic.MilestoneAppeal.QueryByStudent(ctx, td.store, "990000001")
		require.NoError(t, err)
		assert.Empty(t, appeals)
	})

	t.Run("invalid requests", func(t *testing.T) {
		td, cleanup := setupTestData(t)
		defer cleanup()

		_, err := td.deadlines.ApplyExtension(ctx, re2, models.AppealMedical)
		assert.ErrorIs(t, err, ErrInvalidTarget)

		bad := re2
		bad.Unit = 6
		_, err = td.deadlines.ApplyExtension(ctx, bad, models.AppealAccommodation)
		assert.True(t, errors.Is(err, ErrInvalidTarget))

		unknown := re2
		unknown.StuID = "888009999"
		avail, err := td.deadlines.AccommodationDaysAvailable(ctx, unknown)
		require.NoError(t, err)
		assert.Equal(t, -1, avail)
		avail, err = td.deadlines.FreeDaysAvailable(ctx, unknown)
		require.NoError(t, err)
		assert.Equal(t, -1, avail)
	})
}

func standardMilestone(unit, objective int, msType string, date time.Time) *models.StuStandardMilestone {
	return &models.StuStandardMilestone{
		StuID:     nullsafe.Ptr("888001234"),
		PaceTrack: nullsafe.Ptr("A"),
		Pace:      nullsafe.Ptr(2),
		PaceIndex: nullsafe.Ptr(1),
		Unit:      &unit,
		Objective: &objective,
		MsType:    &msType,
		MsDate:    &date,
	}
}

func TestEffectiveLatestAppealWins(t *testing.T) {
	td, cleanup := setupTestData(t)
	defer cleanup()
	ctx := context.Background()

	ssm := standardMilestone(3, 2, models.MsTypeStandard, day(time.September, 1))
	_, err := td.logic.StuStandardMilestone.Insert(ctx, td.store, ssm)
	require.NoError(t, err)

	t0 := time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC)
	for _, a := range []struct {
		at    time.Time
		newDt time.Time
	}{
		{at: t0.Add(2 * time.Hour), newDt: day(time.September, 15)},
		{at: t0, newDt: day(time.September, 8)},
	} {
		entry := ledgerEntry(a.at, models.MsTypeStandard, &a.newDt)
		entry.MsNbr = nullsafe.Ptr(2132)
		td.appeal(t, entry)
	}

	effective, err := td.deadlines.Effective(ctx, fa24, ssm)
	require.NoError(t, err)
	assert.Equal(t, day(time.September, 15), *effective)

	t.Run("other terms are ignored", func(t *testing.T) {
		sp25 := models.NewTermKey(models.Spring, 2025)
		entry := ledgerEntry(t0.Add(4*time.Hour), models.MsTypeStandard, nullsafe.Ptr(models.Date(2025, time.March, 1)))
		entry.MsNbr = nullsafe.Ptr(2132)
		td.appealIn(t, sp25, entry)

		effective, err := td.deadlines.Effective(ctx, fa24, ssm)
		require.NoError(t, err)
		assert.Equal(t, day(time.September, 15), *effective)

		effective, err = td.deadlines.Effective(ctx, sp25, ssm)
		require.NoError(t, err)
		assert.Equal(t, models.Date(2025, time.March, 1), *effective)
	})
}

func TestAppealsAreScopedToTerm(t *testing.T) {
	td, cleanup := setupTestData(t)
	defer cleanup()
	ctx := context.Background()
	sp24 := models.NewTermKey(models.Spring, 2024)

	re1 := ledgerEntry(time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC), models.MsTypeReviewExam,
		nullsafe.Ptr(models.Date(2024, time.March, 1)))
	re1.MsNbr = nullsafe.Ptr(211)
	re1.AppealType = nullsafe.Ptr(models.AppealMedical)
	td.appealIn(t, sp24, re1)

	r, err := td.deadlines.ResolveLegacy(ctx, fa24, "888001234", "A", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, day(time.September, 13), *r.RE[0])

	course, err := td.deadlines.AppealsForCourse(ctx, fa24, "888001234", "A", 2, 1)
	require.NoError(t, err)
	assert.Empty(t, course)

	course, err = td.deadlines.AppealsForCourse(ctx, sp24, "888001234", "A", 2, 1)
	require.NoError(t, err)
	assert.Len(t, course, 1)

	t.Run("extensions from another term are not counted", func(t *testing.T) {
		acc := ledgerEntry(time.Date(2024, 2, 21, 12, 0, 0, 0, time.UTC), models.MsTypeReviewExam,
			nullsafe.Ptr(models.Date(2024, time.March, 4)))
		acc.MsNbr = nullsafe.Ptr(212)
		td.appealIn(t, sp24, acc)

		re2 := Target{StuID: "888001234", PaceTrack: "A", Pace: 2, Index: 1, Unit: 2, MsType: models.MsTypeReviewExam}
		avail, err := td.deadlines.AccommodationDaysAvailable(ctx, re2)
		require.NoError(t, err)
		assert.Equal(t, 3, avail)
	})
}

func TestResolveLegacyStudentMilestones(t *testing.T) {
	ctx := context.Background()

	t.Run("student row replaces appeals", func(t *testing.T) {
		td, cleanup := setupTestData(t)
		defer cleanup()

		entry := ledgerEntry(time.Date(2024, 9, 5, 12, 0, 0, 0, time.UTC), models.MsTypeReviewExam,
			nullsafe.Ptr(day(time.September, 20)))
		entry.MsNbr = nullsafe.Ptr(211)
		td.appeal(t, entry)

		ok, err := td.logic.StudentMilestone.Insert(ctx, td.store, &models.StudentMilestone{
			Term:      &fa24,
			StuID:     nullsafe.Ptr("888001234"),
			PaceTrack: nullsafe.Ptr("A"),
			MsNbr:     nullsafe.Ptr(211),
			MsType:    nullsafe.Ptr(models.MsTypeReviewExam),
			MsDate:    nullsafe.Ptr(day(time.October, 1)),
		})
		require.NoError(t, err)
		require.True(t, ok)

		r, err := td.deadlines.ResolveLegacy(ctx, fa24, "888001234", "A", 2, 1)
		require.NoError(t, err)
		assert.Equal(t, day(time.October, 1), *r.RE[0])
		assert.Equal(t, day(time.September, 27), *r.RE[1])
		assert.Equal(t, 1, *r.F1Attempts)
	})

	t.Run("pace appeals are replayed", func(t *testing.T) {
		td, cleanup := setupTestData(t)
		defer cleanup()

		ok, err := td.logic.PaceAppeal.Insert(ctx, td.store, &models.PaceAppeal{
			Term:          &fa24,
			StuID:         nullsafe.Ptr("888001234"),
			AppealDt:      nullsafe.Ptr(day(time.September, 12)),
			Pace:          nullsafe.Ptr(2),
			PaceTrack:     nullsafe.Ptr("A"),
			MsNbr:         nullsafe.Ptr(211),
			MsType:        nullsafe.Ptr(models.MsTypeReviewExam),
			MsDate:        nullsafe.Ptr(day(time.September, 13)),
			NewDeadlineDt: nullsafe.Ptr(day(time.September, 17)),
			Circumstances: nullsafe.Ptr("In hospital"),
			Interviewer:   nullsafe.Ptr("advisor"),
		})
		require.NoError(t, err)
		require.True(t, ok)

		r, err := td.deadlines.ResolveLegacy(ctx, fa24, "888001234", "A", 2, 1)
		require.NoError(t, err)
		assert.Equal(t, day(time.September, 17), *r.RE[0])

		course, err := td.deadlines.AppealsForCourse(ctx, fa24, "888001234", "A", 2, 1)
		require.NoError(t, err)
		require.Len(t, course, 1)
		assert.Equal(t, models.AppealMedical, *course[0].AppealType)

		// a later appeal in the current ledger wins
		entry := ledgerEntry(time.Date(2024, 9, 14, 9, 0, 0, 0, time.UTC), models.MsTypeReviewExam,
			nullsafe.Ptr(day(time.September, 19)))
		entry.MsNbr = nullsafe.Ptr(211)
		td.appeal(t, entry)

		r, err = td.deadlines.ResolveLegacy(ctx, fa24, "888001234", "A", 2, 1)
		require.NoError(t, err)
		assert.Equal(t, day(time.September, 19), *r.RE[0])
	})

	t.Run("final exam extension moves final+1", func(t *testing.T) {
		td, cleanup := setupTestData(t)
		defer cleanup()

		base := func(msType string) *models.Milestone {
			return &models.Milestone{
				Term:      &fa24,
				Pace:      nullsafe.Ptr(2),
				PaceTrack: nullsafe.Ptr("A"),
				MsNbr:     nullsafe.Ptr(215),
				MsType:    &msType,
			}
		}
		_, err := td.logic.Milestone.UpdateMsDate(ctx, td.store, base(models.MsTypeFinalExam), day(time.December, 11))
		require.NoError(t, err)
		_, err = td.logic.Milestone.UpdateMsDate(ctx, td.store, base(models.MsTypeFinalPlusOne), day(time.December, 12))
		require.NoError(t, err)

		fe := Target{StuID: "888001234", PaceTrack: "A", Pace: 2, Index: 1, Unit: 5, MsType: models.MsTypeFinalExam}
		added, err := td.deadlines.ApplyExtension(ctx, fe, models.AppealAccommodation)
		require.NoError(t, err)
		assert.Equal(t, 2, added)

		f1, err := td.logic.StudentMilestone.Query(ctx, td.store, &models.StudentMilestone{
			Term:      &fa24,
			StuID:     nullsafe.Ptr("888001234"),
			PaceTrack: nullsafe.Ptr("A"),
			MsNbr:     nullsafe.Ptr(215),
			MsType:    nullsafe.Ptr(models.MsTypeFinalPlusOne),
		})
		require.NoError(t, err)
		require.NotNil(t, f1)
		assert.Equal(t, day(time.December, 13), *f1.MsDate)
		assert.Equal(t, models.DefaultF1Attempts, *f1.NbrAtmptsAllow)

		r, err := td.deadlines.ResolveLegacy(ctx, fa24, "888001234", "A", 2, 1)
		require.NoError(t, err)
		assert.Equal(t, day(time.December, 13), *r.FE)
		assert.Equal(t, day(time.December, 13), *r.F1)
	})
}

func TestResolveStandard(t *testing.T) {
	td, cleanup := setupTestData(t)
	defer cleanup()
	ctx := context.Background()

	for _, ssm := range []*models.StuStandardMilestone{
		standardMilestone(1, 1, models.MsTypeMastery, day(time.October, 4)),
		standardMilestone(2, 3, models.MsTypeMastery, day(time.October, 18)),
		standardMilestone(2, 2, models.MsTypeStandard, day(time.October, 16)),
	} {
		ok, err := td.logic.StuStandardMilestone.Insert(ctx, td.store, ssm)
		require.NoError(t, err)
		require.True(t, ok)
	}
	entry := ledgerEntry(time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC), models.MsTypeMastery,
		nullsafe.Ptr(day(time.October, 8)))
	entry.MsNbr = nullsafe.Ptr(2111)
	td.appeal(t, entry)

	r, err := td.deadlines.ResolveStandard(ctx, fa24, "888001234", "A", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, day(time.October, 8), *r.Date(1, 1))
	assert.Equal(t, day(time.October, 18), *r.Date(2, 3))
	assert.Nil(t, r.Date(2, 2))
	assert.Nil(t, r.Date(9, 1))

	_, err = td.deadlines.ResolveStandard(ctx, fa24, "888001234", "A", 2, 2)
	assert.ErrorIs(t, err, ErrIncompleteMilestones)
}
