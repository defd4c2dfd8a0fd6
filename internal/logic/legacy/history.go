package legacy

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

type studentMilestoneLogic struct {
	*store.Table[models.StudentMilestone]
}

func newStudentMilestoneLogic() *studentMilestoneLogic {
	t := table[models.StudentMilestone]("StudentMilestone", "stmilestone")
	t.Order = append([]string{"stu_id"}, byTerm("pace_track", "ms_nbr", "ms_type")...)
	t.Columns = []string{"stu_id", "term", "term_yr", "pace_track", "ms_nbr", "ms_type", "ms_date", "nbr_atmpts_allow"}
	t.Values = func(r *models.StudentMilestone) []any {
		code, yr := termCols(r.Term)
		return []any{store.Val(r.StuID), code, yr, store.Val(r.PaceTrack), store.Val(r.MsNbr),
			store.Val(r.MsType), date(r.MsDate), store.Val(r.NbrAtmptsAllow)}
	}
	t.Key = func(r *models.StudentMilestone) squirrel.Eq {
		eq := termEq(r.Term)
		eq["stu_id"] = store.Val(r.StuID)
		eq["pace_track"] = store.Val(r.PaceTrack)
		eq["ms_nbr"] = store.Val(r.MsNbr)
		eq["ms_type"] = store.Val(r.MsType)
		return eq
	}
	t.Map = func(row store.Row) (*models.StudentMilestone, error) {
		m := store.NewMapper("stmilestone", row)
		rec := &models.StudentMilestone{
			Term:           readTermKey(m),
			StuID:          m.String("stu_id"),
			PaceTrack:      m.String("pace_track"),
			MsNbr:          m.Int("ms_nbr"),
			MsType:         m.String("ms_type"),
			MsDate:         m.Date("ms_date"),
			NbrAtmptsAllow: m.Int("nbr_atmpts_allow"),
		}
		m.Require("stu_id", "pace_track", "ms_nbr", "ms_type")
		return done(rec, m)
	}
	return &studentMilestoneLogic{Table: t}
}

func (l *studentMilestoneLogic) UpdateDate(ctx context.Context, c store.Cache, rec *models.StudentMilestone, newDate *time.Time, attempts *int) (bool, error) {
	return l.Update(ctx, c, map[string]any{
		"ms_date":          date(newDate),
		"nbr_atmpts_allow": store.Val(attempts),
	}, l.Key(rec))
}

func (l *studentMilestoneLogic) Query(ctx context.Context, c store.Cache, key *models.StudentMilestone) (*models.StudentMilestone, error) {
	return l.One(ctx, c, l.Key(key))
}

func (l *studentMilestoneLogic) QueryByStudentTerm(ctx context.Context, c store.Cache, stuID string, term models.TermKey) ([]models.StudentMilestone, error) {
	eq := termEq(&term)
	eq["stu_id"] = stuID
	return l.Select(ctx, c, eq, "pace_track", "ms_nbr", "ms_type")
}

func (l *studentMilestoneLogic) QueryByStudentTermTrack(ctx context.Context, c store.Cache, stuID string, term models.TermKey, paceTrack string) ([]models.StudentMilestone, error) {
	eq := termEq(&term)
	eq["stu_id"] = stuID
	eq["pace_track"] = paceTrack
	return l.Select(ctx, c, eq, "ms_nbr", "ms_type")
}

type paceAppealLogic struct {
	*store.Table[models.PaceAppeal]
}

func newPaceAppealLogic() *paceAppealLogic {
	t := table[models.PaceAppeal]("PaceAppeal", "pace_appeals")
	t.Order = []string{"stu_id", "appeal_dt", "ms_nbr", "ms_type"}
	t.Columns = []string{"stu_id", "term", "term_yr", "appeal_dt", "relief_given", "pace", "pace_track", "ms_nbr",
		"ms_type", "ms_date", "new_deadline_dt", "nbr_atmpts_allow", "circumstances", "comment", "interviewer"}
	t.Values = func(r *models.PaceAppeal) []any {
		code, yr := termCols(r.Term)
		return []any{store.Val(r.StuID), code, yr, date(r.AppealDt), store.Val(r.ReliefGiven),
			store.Val(r.Pace), store.Val(r.PaceTrack), store.Val(r.MsNbr), store.Val(r.MsType),
			date(r.MsDate), date(r.NewDeadlineDt), store.Val(r.NbrAtmptsAllow),
			store.Val(r.Circumstances), store.Val(r.Comment), store.Val(r.Interviewer)}
	}
	t.Key = func(r *models.PaceAppeal) squirrel.Eq {
		eq := termEq(r.Term)
		eq["stu_id"] = store.Val(r.StuID)
		eq["appeal_dt"] = date(r.AppealDt)
		eq["pace"] = store.Val(r.Pace)
		eq["pace_track"] = store.Val(r.PaceTrack)
		eq["ms_nbr"] = store.Val(r.MsNbr)
		eq["ms_type"] = store.Val(r.MsType)
		return eq
	}
	t.Map = func(row store.Row) (*models.PaceAppeal, error) {
		m := store.NewMapper("pace_appeals", row)
		rec := &models.PaceAppeal{
			Term:           readTermKey(m),
			StuID:          m.String("stu_id"),
			AppealDt:       m.Date("appeal_dt"),
			ReliefGiven:    m.String("relief_given"),
			Pace:           m.Int("pace"),
			PaceTrack:      m.String("pace_track"),
			MsNbr:          m.Int("ms_nbr"),
			MsType:         m.String("ms_type"),
			MsDate:         m.Date("ms_date"),
			NewDeadlineDt:  m.Date("new_deadline_dt"),
			NbrAtmptsAllow: m.Int("nbr_atmpts_allow"),
			Circumstances:  m.String("circumstances"),
			Comment:        m.String("comment"),
			Interviewer:    m.String("interviewer"),
		}
		m.Require("stu_id", "appeal_dt", "interviewer")
		return done(rec, m)
	}
	return &paceAppealLogic{Table: t}
}

func (l *paceAppealLogic) QueryByStudent(ctx context.Context, c store.Cache, stuID string) ([]models.PaceAppeal, error) {
	return l.Select(ctx, c, squirrel.Eq{"stu_id": stuID}, "appeal_dt", "ms_nbr", "ms_type")
}

func (l *paceAppealLogic) QueryByStudentTerm(ctx context.Context, c store.Cache, stuID string, term models.TermKey) ([]models.PaceAppeal, error) {
	eq := termEq(&term)
	eq["stu_id"] = stuID
	return l.Select(ctx, c, eq, "appeal_dt", "ms_nbr", "ms_type")
}
