package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrimpsizemoose/pacekeeper/internal/nullsafe"
)

func TestInferAppealType(t *testing.T) {
	testCases := []struct {
		in   *string
		want string
	}{
		{nil, AppealOther},
		{nullsafe.Ptr(""), AppealOther},
		{nullsafe.Ptr("SDC letter on file"), AppealAccommodation},
		{nullsafe.Ptr("per RDS"), AppealAccommodation},
		{nullsafe.Ptr("University Excused: band trip"), AppealExcused},
		{nullsafe.Ptr("university-excused absence"), AppealExcused},
		{nullsafe.Ptr("Family emergency"), AppealFamilyEmergency},
		{nullsafe.Ptr("doctor's note"), AppealMedical},
		{nullsafe.Ptr("In HOSPITAL for a week"), AppealMedical},
		{nullsafe.Ptr("Medical"), AppealMedical},
		{nullsafe.Ptr("car broke down"), AppealOther},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, InferAppealType(tc.in))
	}
}

func TestPaceAppealAsAppeal(t *testing.T) {
	fa24 := NewTermKey(Fall, 2024)
	old := &PaceAppeal{
		Term:           &fa24,
		StuID:          nullsafe.Ptr("888001234"),
		AppealDt:       nullsafe.Ptr(time.Date(2024, 9, 12, 17, 45, 0, 0, time.UTC)),
		Pace:           nullsafe.Ptr(2),
		PaceTrack:      nullsafe.Ptr("A"),
		MsNbr:          nullsafe.Ptr(211),
		MsType:         nullsafe.Ptr(MsTypeReviewExam),
		MsDate:         nullsafe.Ptr(Date(2024, time.September, 13)),
		NewDeadlineDt:  nullsafe.Ptr(Date(2024, time.September, 17)),
		NbrAtmptsAllow: nullsafe.Ptr(2),
		Circumstances:  nullsafe.Ptr("SDC"),
		Interviewer:    nullsafe.Ptr("advisor"),
	}

	a := old.AsAppeal()
	require.NotNil(t, a.AppealDateTime)
	assert.Equal(t, time.Date(2024, 9, 12, 12, 0, 0, 0, time.UTC), *a.AppealDateTime)
	assert.Equal(t, AppealAccommodation, *a.AppealType)
	assert.Equal(t, Date(2024, time.September, 13), *a.PriorMsDt)
	assert.Equal(t, Date(2024, time.September, 17), *a.NewMsDt)
	assert.Equal(t, 2, *a.AttemptsAllowed)
	assert.Equal(t, old.Term, a.Term)
	assert.NoError(t, a.Validate())

	t.Run("no date", func(t *testing.T) {
		old := &PaceAppeal{StuID: nullsafe.Ptr("888001234")}
		a := old.AsAppeal()
		assert.Nil(t, a.AppealDateTime)
		assert.Equal(t, AppealOther, *a.AppealType)
	})
}

func TestStudentMilestoneOverrides(t *testing.T) {
	fa24 := NewTermKey(Fall, 2024)
	ms := &Milestone{Term: &fa24, MsNbr: nullsafe.Ptr(215), MsType: nullsafe.Ptr(MsTypeFinalExam)}

	row := &StudentMilestone{Term: &fa24, MsNbr: nullsafe.Ptr(215), MsType: nullsafe.Ptr(MsTypeFinalExam)}
	assert.True(t, row.Overrides(ms))

	row.MsType = nullsafe.Ptr(MsTypeFinalPlusOne)
	assert.False(t, row.Overrides(ms))

	a := &StudentMilestone{Term: &fa24, StuID: nullsafe.Ptr("1"), PaceTrack: nullsafe.Ptr("A"), MsNbr: nullsafe.Ptr(211),
		MsType: nullsafe.Ptr(MsTypeReviewExam), MsDate: nullsafe.Ptr(Date(2024, time.September, 13))}
	b := *a
	b.MsNbr = nullsafe.Ptr(212)
	assert.Negative(t, a.Compare(&b))
	assert.True(t, a.Equal(a))
	assert.Equal(t, a.Hash(), (&StudentMilestone{Term: &fa24, StuID: nullsafe.Ptr("1"), PaceTrack: nullsafe.Ptr("A"),
		MsNbr: nullsafe.Ptr(211), MsType: nullsafe.Ptr(MsTypeReviewExam), MsDate: nullsafe.Ptr(Date(2024, time.September, 13))}).Hash())
}
