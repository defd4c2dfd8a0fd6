package modern

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

type termLogic struct {
	*store.Table[models.Term]
}

func newTermLogic() *termLogic {
	t := table[models.Term]("Term", store.SchemaMain, "term")
	t.Order = byTerm()
	t.Columns = []string{"term", "start_date", "end_date", "academic_year", "active_index",
		"drop_deadline", "withdraw_deadline", "inc_deadline"}
	t.Values = func(r *models.Term) []any {
		return []any{termVal(r.Term), date(r.StartDate), date(r.EndDate), store.Val(r.AcademicYear),
			store.Val(r.ActiveIndex), date(r.DropDeadline), date(r.WithdrawDeadline), date(r.IncDeadline)}
	}
	t.Key = func(r *models.Term) squirrel.Eq { return termEq(r.Term) }
	t.Map = func(row store.Row) (*models.Term, error) {
		m := store.NewMapper("term", row)
		rec := &models.Term{
			Term:             readTermKey(m),
			StartDate:        m.Date("start_date"),
			EndDate:          m.Date("end_date"),
			AcademicYear:     m.String("academic_year"),
			ActiveIndex:      m.Int("active_index"),
			DropDeadline:     m.Date("drop_deadline"),
			WithdrawDeadline: m.Date("withdraw_deadline"),
			IncDeadline:      m.Date("inc_deadline"),
		}
		m.Require("start_date", "end_date", "academic_year", "active_index")
		return done(rec, m)
	}
	return &termLogic{Table: t}
}

func (l *termLogic) Query(ctx context.Context, c store.Cache, term models.TermKey) (*models.Term, error) {
	return l.One(ctx, c, termEq(&term))
}

func (l *termLogic) QueryByIndex(ctx context.Context, c store.Cache, index int) (*models.Term, error) {
	return l.One(ctx, c, squirrel.Eq{"active_index": index})
}

func (l *termLogic) QueryActive(ctx context.Context, c store.Cache) (*models.Term, error) {
	return l.QueryByIndex(ctx, c, 0)
}

func (l *termLogic) QueryNext(ctx context.Context, c store.Cache) (*models.Term, error) {
	return l.QueryByIndex(ctx, c, 1)
}

func (l *termLogic) QueryPrior(ctx context.Context, c store.Cache) (*models.Term, error) {
	return l.QueryByIndex(ctx, c, -1)
}

func (l *termLogic) FutureTerms(ctx context.Context, c store.Cache) ([]models.Term, error) {
	return l.Select(ctx, c, squirrel.Gt{"active_index": 0}, "active_index")
}

type termWeekLogic struct {
	*store.Table[models.TermWeek]
}

func newTermWeekLogic() *termWeekLogic {
	t := table[models.TermWeek]("TermWeek", store.SchemaTerm, "term_week")
	t.Order = byTerm("week_nbr")
	t.Columns = []string{"term", "week_nbr", "start_date", "end_date"}
	t.Values = func(r *models.TermWeek) []any {
		return []any{termVal(r.Term), store.Val(r.WeekNbr), date(r.StartDate), date(r.EndDate)}
	}
	t.Key = func(r *models.TermWeek) squirrel.Eq {
		return squirrel.Eq{"term": termVal(r.Term), "week_nbr": store.Val(r.WeekNbr)}
	}
	t.Map = func(row store.Row) (*models.TermWeek, error) {
		m := store.NewMapper("term_week", row)
		rec := &models.TermWeek{
			Term:      readTermKey(m),
			WeekNbr:   m.Int("week_nbr"),
			StartDate: m.Date("start_date"),
			EndDate:   m.Date("end_date"),
		}
		m.Require("week_nbr", "start_date", "end_date")
		return done(rec, m)
	}
	return &termWeekLogic{Table: t}
}

func (l *termWeekLogic) QueryByTerm(ctx context.Context, c store.Cache, term models.TermKey) ([]models.TermWeek, error) {
	return l.Select(ctx, c, termEq(&term), "week_nbr")
}

func (l *termWeekLogic) Query(ctx context.Context, c store.Cache, term models.TermKey, weekNbr int) (*models.TermWeek, error) {
	return l.One(ctx, c, squirrel.Eq{"term": term.Numeric(), "week_nbr": weekNbr})
}

type paceTrackRuleLogic struct {
	*store.Table[models.PaceTrackRule]
}

func newPaceTrackRuleLogic() *paceTrackRuleLogic {
	t := table[models.PaceTrackRule]("PaceTrackRule", store.SchemaTerm, "pace_track_rule")
	t.Order = byTerm("subterm", "pace", "pace_track")
	t.Columns = []string{"term", "subterm", "pace", "pace_track", "criteria"}
	t.Values = func(r *models.PaceTrackRule) []any {
		return []any{termVal(r.Term), store.Val(r.Subterm), store.Val(r.Pace), store.Val(r.PaceTrack), store.Val(r.Criteria)}
	}
	t.Key = func(r *models.PaceTrackRule) squirrel.Eq {
		return squirrel.Eq{
			"term":       termVal(r.Term),
			"subterm":    store.Val(r.Subterm),
			"pace":       store.Val(r.Pace),
			"pace_track": store.Val(r.PaceTrack),
			"criteria":   store.Val(r.Criteria),
		}
	}
	t.Map = func(row store.Row) (*models.PaceTrackRule, error) {
		m := store.NewMapper("pace_track_rule", row)
		rec := &models.PaceTrackRule{
			Term:      readTermKey(m),
			Subterm:   m.String("subterm"),
			Pace:      m.Int("pace"),
			PaceTrack: m.String("pace_track"),
			Criteria:  m.String("criteria"),
		}
		m.Require("subterm", "pace", "pace_track", "criteria")
		return done(rec, m)
	}
	return &paceTrackRuleLogic{Table: t}
}

func (l *paceTrackRuleLogic) QueryByTerm(ctx context.Context, c store.Cache, term models.TermKey) ([]models.PaceTrackRule, error) {
	return l.Select(ctx, c, termEq(&term), "pace", "pace_track")
}

type pacingStructureLogic struct {
	*store.Table[models.PacingStructure]
}

func newPacingStructureLogic() *pacingStructureLogic {
	t := table[models.PacingStructure]("PacingStructure", store.SchemaTerm, "pacing_structure")
	t.Order = byTerm("pacing_structure")
	t.Columns = []string{"term", "pacing_structure", "def_pace_track", "require_licensed", "max_courses",
		"nbr_open_allowed", "pacing_name"}
	t.Values = func(r *models.PacingStructure) []any {
		return []any{termVal(r.Term), store.Val(r.PacingStructure), store.Val(r.DefPaceTrack),
			store.Val(r.RequireLicensed), store.Val(r.MaxCourses), store.Val(r.NbrOpenAllowed),
			store.Val(r.PacingName)}
	}
	t.Key = func(r *models.PacingStructure) squirrel.Eq {
		return squirrel.Eq{"term": termVal(r.Term), "pacing_structure": store.Val(r.PacingStructure)}
	}
	t.Map = func(row store.Row) (*models.PacingStructure, error) {
		m := store.NewMapper("pacing_structure", row)
		rec := &models.PacingStructure{
			Term:            readTermKey(m),
			PacingStructure: m.String("pacing_structure"),
			DefPaceTrack:    m.String("def_pace_track"),
			RequireLicensed: m.String("require_licensed"),
			MaxCourses:      m.Int("max_courses"),
			NbrOpenAllowed:  m.Int("nbr_open_allowed"),
			PacingName:      m.String("pacing_name"),
		}
		m.Require("pacing_structure")
		return done(rec, m)
	}
	return &pacingStructureLogic{Table: t}
}

func (l *pacingStructureLogic) Query(ctx context.Context, c store.Cache, term models.TermKey, pacingStructure string) (*models.PacingStructure, error) {
	return l.One(ctx, c, squirrel.Eq{"term": term.Numeric(), "pacing_structure": pacingStructure})
}
