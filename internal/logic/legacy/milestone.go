package legacy

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/shrimpsizemoose/pacekeeper/internal/logic"
	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

type milestoneLogic struct {
	*store.Table[models.Milestone]
}

func newMilestoneLogic() *milestoneLogic {
	t := table[models.Milestone]("Milestone", "milestone")
	t.Order = byTerm("pace", "pace_track", "ms_nbr", "ms_type")
	t.Columns = []string{"term", "term_yr", "pace", "pace_track", "ms_nbr", "ms_type", "ms_date", "nbr_atmpts_allow"}
	t.Values = func(r *models.Milestone) []any {
		code, yr := termCols(r.Term)
		return []any{code, yr, store.Val(r.Pace), store.Val(r.PaceTrack), store.Val(r.MsNbr),
			store.Val(r.MsType), date(r.MsDate), store.Val(r.NbrAtmptsAllow)}
	}
	t.Key = func(r *models.Milestone) squirrel.Eq {
		eq := termEq(r.Term)
		eq["pace"] = store.Val(r.Pace)
		eq["pace_track"] = store.Val(r.PaceTrack)
		eq["ms_nbr"] = store.Val(r.MsNbr)
		eq["ms_type"] = store.Val(r.MsType)
		return eq
	}
	t.Map = func(row store.Row) (*models.Milestone, error) {
		m := store.NewMapper("milestone", row)
		rec := &models.Milestone{
			Term:           readTermKey(m),
			Pace:           m.Int("pace"),
			PaceTrack:      m.String("pace_track"),
			MsNbr:          m.Int("ms_nbr"),
			MsType:         m.String("ms_type"),
			MsDate:         m.Date("ms_date"),
			NbrAtmptsAllow: m.Int("nbr_atmpts_allow"),
		}
		m.Require("pace", "pace_track", "ms_nbr", "ms_type", "ms_date")
		return done(rec, m)
	}
	return &milestoneLogic{Table: t}
}

func (l *milestoneLogic) QueryByTerm(ctx context.Context, c store.Cache, term models.TermKey) ([]models.Milestone, error) {
	return l.Select(ctx, c, termEq(&term), "pace_track", "ms_nbr")
}

func (l *milestoneLogic) QueryByTermPaceTrack(ctx context.Context, c store.Cache, term models.TermKey, pace int, paceTrack string) ([]models.Milestone, error) {
	eq := termEq(&term)
	eq["pace"] = pace
	eq["pace_track"] = paceTrack
	return l.Select(ctx, c, eq, "ms_nbr")
}

func (l *milestoneLogic) UpdateMsDate(ctx context.Context, c store.Cache, rec *models.Milestone, newDate time.Time) (bool, error) {
	return l.Update(ctx, c, map[string]any{"ms_date": models.DateOf(newDate)}, l.Key(rec))
}

type stuStandardMilestoneLogic struct {
	*store.Table[models.StuStandardMilestone]
}

func newStuStandardMilestoneLogic() *stuStandardMilestoneLogic {
	t := table[models.StuStandardMilestone]("StuStandardMilestone", "stu_std_milestone")
	t.Order = []string{"stu_id", "pace_track", "pace", "pace_index", "unit", "objective", "ms_type"}
	t.Columns = []string{"stu_id", "pace_track", "pace", "pace_index", "unit", "objective", "ms_type", "ms_date"}
	t.Values = func(r *models.StuStandardMilestone) []any {
		return []any{store.Val(r.StuID), store.Val(r.PaceTrack), store.Val(r.Pace), store.Val(r.PaceIndex),
			store.Val(r.Unit), store.Val(r.Objective), store.Val(r.MsType), date(r.MsDate)}
	}
	t.Key = stuStandardMilestoneKey
	t.Map = func(row store.Row) (*models.StuStandardMilestone, error) {
		m := store.NewMapper("stu_std_milestone", row)
		rec := &models.StuStandardMilestone{
			StuID:     m.String("stu_id"),
			PaceTrack: m.String("pace_track"),
			Pace:      m.Int("pace"),
			PaceIndex: m.Int("pace_index"),
			Unit:      m.Int("unit"),
			Objective: m.Int("objective"),
			MsType:    m.String("ms_type"),
			MsDate:    m.Date("ms_date"),
		}
		m.Require("stu_id", "pace_track", "pace", "pace_index", "unit", "objective", "ms_type")
		return done(rec, m)
	}
	return &stuStandardMilestoneLogic{Table: t}
}

func stuStandardMilestoneKey(r *models.StuStandardMilestone) squirrel.Eq {
	return squirrel.Eq{
		"stu_id":     store.Val(r.StuID),
		"pace_track": store.Val(r.PaceTrack),
		"pace":       store.Val(r.Pace),
		"pace_index": store.Val(r.PaceIndex),
		"unit":       store.Val(r.Unit),
		"objective":  store.Val(r.Objective),
		"ms_type":    store.Val(r.MsType),
	}
}

func (l *stuStandardMilestoneLogic) UpdateDate(ctx context.Context, c store.Cache, rec *models.StuStandardMilestone, newDate *time.Time) (bool, error) {
	return l.Update(ctx, c, map[string]any{"ms_date": date(newDate)}, l.Key(rec))
}

func (l *stuStandardMilestoneLogic) Query(ctx context.Context, c store.Cache, key *models.StuStandardMilestone) (*models.StuStandardMilestone, error) {
	return l.One(ctx, c, l.Key(key))
}

func (l *stuStandardMilestoneLogic) QueryByStudent(ctx context.Context, c store.Cache, stuID string) ([]models.StuStandardMilestone, error) {
	return l.Select(ctx, c, squirrel.Eq{"stu_id": stuID}, "pace_track", "pace", "pace_index", "unit", "objective")
}

func (l *stuStandardMilestoneLogic) QueryByStuPaceTrackPace(ctx context.Context, c store.Cache, stuID, paceTrack string, pace int) ([]models.StuStandardMilestone, error) {
	return l.Select(ctx, c, squirrel.Eq{"stu_id": stuID, "pace_track": paceTrack, "pace": pace},
		"pace_index", "unit", "objective")
}

func (l *stuStandardMilestoneLogic) QueryByStuPaceTrackPaceIndex(ctx context.Context, c store.Cache, stuID, paceTrack string, pace, paceIndex int) ([]models.StuStandardMilestone, error) {
	return l.Select(ctx, c, squirrel.Eq{"stu_id": stuID, "pace_track": paceTrack, "pace": pace, "pace_index": paceIndex},
		"unit", "objective")
}

type milestoneAppealLogic struct {
	*store.Table[models.MilestoneAppeal]
}

func newMilestoneAppealLogic() *milestoneAppealLogic {
	t := table[models.MilestoneAppeal]("MilestoneAppeal", "milestone_appeal")
	t.Order = append([]string{"stu_id"}, byTerm("appeal_date_time")...)
	t.Columns = []string{"stu_id", "term", "term_yr", "appeal_date_time", "appeal_type", "pace", "pace_track",
		"ms_nbr", "ms_type", "prior_ms_dt", "new_ms_dt", "attempts_allowed", "circumstances", "comment",
		"interviewer"}
	t.Values = func(r *models.MilestoneAppeal) []any {
		code, yr := termCols(r.Term)
		return []any{store.Val(r.StuID), code, yr, stamp(r.AppealDateTime), store.Val(r.AppealType),
			store.Val(r.Pace), store.Val(r.PaceTrack), store.Val(r.MsNbr), store.Val(r.MsType),
			date(r.PriorMsDt), date(r.NewMsDt), store.Val(r.AttemptsAllowed),
			store.Val(r.Circumstances), store.Val(r.Comment), store.Val(r.Interviewer)}
	}
	t.Key = func(r *models.MilestoneAppeal) squirrel.Eq {
		eq := termEq(r.Term)
		eq["stu_id"] = store.Val(r.StuID)
		eq["appeal_date_time"] = stamp(r.AppealDateTime)
		return eq
	}
	t.Map = func(row store.Row) (*models.MilestoneAppeal, error) {
		m := store.NewMapper("milestone_appeal", row)
		rec := &models.MilestoneAppeal{
			StuID:           m.String("stu_id"),
			Term:            readTermKey(m),
			AppealDateTime:  m.DateTime("appeal_date_time"),
			AppealType:      m.String("appeal_type"),
			Pace:            m.Int("pace"),
			PaceTrack:       m.String("pace_track"),
			MsNbr:           m.Int("ms_nbr"),
			MsType:          m.String("ms_type"),
			PriorMsDt:       m.Date("prior_ms_dt"),
			NewMsDt:         m.Date("new_ms_dt"),
			AttemptsAllowed: m.Int("attempts_allowed"),
			Circumstances:   m.String("circumstances"),
			Comment:         m.String("comment"),
			Interviewer:     m.String("interviewer"),
		}
		m.Require("stu_id", "appeal_date_time", "appeal_type", "interviewer")
		return done(rec, m)
	}
	return &milestoneAppealLogic{Table: t}
}

// Insert skips test students (IDs starting "99") without touching the database.
func (l *milestoneAppealLogic) Insert(ctx context.Context, c store.Cache, rec *models.MilestoneAppeal) (bool, error) {
	if rec.IsTestStudent() {
		return false, nil
	}
	return l.Table.Insert(ctx, c, rec)
}

func (l *milestoneAppealLogic) QueryByStudent(ctx context.Context, c store.Cache, stuID string) ([]models.MilestoneAppeal, error) {
	return l.Select(ctx, c, squirrel.Eq{"stu_id": stuID}, "appeal_date_time ASC")
}

func (l *milestoneAppealLogic) QueryByScope(ctx context.Context, c store.Cache, scope logic.AppealScope) ([]models.MilestoneAppeal, error) {
	eq := termEq(&scope.Term)
	eq["stu_id"] = scope.StuID
	eq["pace_track"] = scope.PaceTrack
	eq["pace"] = scope.Pace
	eq["ms_nbr"] = scope.MsNbr
	eq["ms_type"] = scope.MsType
	return l.Select(ctx, c, eq, "appeal_date_time ASC")
}

func (l *milestoneAppealLogic) QueryByStudentTerm(ctx context.Context, c store.Cache, stuID string, term models.TermKey) ([]models.MilestoneAppeal, error) {
	eq := termEq(&term)
	eq["stu_id"] = stuID
	return l.Select(ctx, c, eq, "appeal_date_time ASC")
}

func (l *milestoneAppealLogic) QueryByTerm(ctx context.Context, c store.Cache, term models.TermKey) ([]models.MilestoneAppeal, error) {
	return l.Select(ctx, c, termEq(&term), "appeal_date_time ASC", "stu_id")
}
