package modern

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

type studentLogic struct {
	*store.Table[models.Student]
}

func newStudentLogic() *studentLogic {
	t := table[models.Student]("Student", store.SchemaMain, "student")
	t.Order = []string{"stu_id"}
	t.Columns = []string{"stu_id", "last_name", "first_name", "middle_initial", "pref_name", "pacing_structure",
		"extension_days", "canvas_id"}
	t.Values = func(r *models.Student) []any {
		return []any{store.Val(r.StuID), store.Val(r.LastName), store.Val(r.FirstName),
			store.Val(r.MiddleInitial), store.Val(r.PrefName), store.Val(r.PacingStructure),
			store.Val(r.ExtensionDays), store.Val(r.CanvasID)}
	}
	t.Key = func(r *models.Student) squirrel.Eq {
		return squirrel.Eq{"stu_id": store.Val(r.StuID)}
	}
	t.Map = func(row store.Row) (*models.Student, error) {
		m := store.NewMapper("student", row)
		rec := &models.Student{
			StuID:           m.String("stu_id"),
			LastName:        m.String("last_name"),
			FirstName:       m.String("first_name"),
			MiddleInitial:   m.String("middle_initial"),
			PrefName:        m.String("pref_name"),
			PacingStructure: m.String("pacing_structure"),
			ExtensionDays:   m.Int("extension_days"),
			CanvasID:        m.String("canvas_id"),
		}
		m.Require("stu_id")
		return done(rec, m)
	}
	return &studentLogic{Table: t}
}

func (l *studentLogic) Query(ctx context.Context, c store.Cache, stuID string) (*models.Student, error) {
	return l.One(ctx, c, squirrel.Eq{"stu_id": stuID})
}
