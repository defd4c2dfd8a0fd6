package modern

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

type stuUnitMasteryLogic struct {
	*store.Table[models.StuUnitMastery]
}

func newStuUnitMasteryLogic() *stuUnitMasteryLogic {
	t := table[models.StuUnitMastery]("StuUnitMastery", store.SchemaTerm, "stu_unit_mastery")
	t.Order = []string{"stu_id", "course_id", "unit"}
	t.Columns = []string{"stu_id", "course_id", "unit", "score", "sr_status", "s1_status", "s2_status", "s3_status"}
	t.Values = func(r *models.StuUnitMastery) []any {
		return []any{store.Val(r.StuID), store.Val(r.CourseID), store.Val(r.Unit), store.Val(r.Score),
			store.Val(r.SrStatus), store.Val(r.S1Status), store.Val(r.S2Status), store.Val(r.S3Status)}
	}
	t.Key = func(r *models.StuUnitMastery) squirrel.Eq {
		return squirrel.Eq{"stu_id": store.Val(r.StuID), "course_id": store.Val(r.CourseID), "unit": store.Val(r.Unit)}
	}
	t.Map = func(row store.Row) (*models.StuUnitMastery, error) {
		m := store.NewMapper("stu_unit_mastery", row)
		rec := &models.StuUnitMastery{
			StuID:    m.String("stu_id"),
			CourseID: m.String("course_id"),
			Unit:     m.Int("unit"),
			Score:    m.Int("score"),
			SrStatus: m.String("sr_status"),
			S1Status: m.String("s1_status"),
			S2Status: m.String("s2_status"),
			S3Status: m.String("s3_status"),
		}
		m.Require("stu_id", "course_id", "unit", "score")
		return done(rec, m)
	}
	return &stuUnitMasteryLogic{Table: t}
}

func (l *stuUnitMasteryLogic) set(ctx context.Context, c store.Cache, rec *models.StuUnitMastery, col string, v any) (bool, error) {
	return l.Update(ctx, c, map[string]any{col: v}, l.Key(rec))
}

func (l *stuUnitMasteryLogic) UpdateScore(ctx context.Context, c store.Cache, rec *models.StuUnitMastery, score int) (bool, error) {
	return l.set(ctx, c, rec, "score", score)
}

func (l *stuUnitMasteryLogic) UpdateSrStatus(ctx context.Context, c store.Cache, rec *models.StuUnitMastery, status *string) (bool, error) {
	return l.set(ctx, c, rec, "sr_status", store.Val(status))
}

func (l *stuUnitMasteryLogic) UpdateS1Status(ctx context.Context, c store.Cache, rec *models.StuUnitMastery, status *string) (bool, error) {
	return l.set(ctx, c, rec, "s1_status", store.Val(status))
}

func (l *stuUnitMasteryLogic) UpdateS2Status(ctx context.Context, c store.Cache, rec *models.StuUnitMastery, status *string) (bool, error) {
	return l.set(ctx, c, rec, "s2_status", store.Val(status))
}

func (l *stuUnitMasteryLogic) UpdateS3Status(ctx context.Context, c store.Cache, rec *models.StuUnitMastery, status *string) (bool, error) {
	return l.set(ctx, c, rec, "s3_status", store.Val(status))
}

func (l *stuUnitMasteryLogic) Query(ctx context.Context, c store.Cache, stuID, courseID string, unit int) (*models.StuUnitMastery, error) {
	return l.One(ctx, c, squirrel.Eq{"stu_id": stuID, "course_id": courseID, "unit": unit})
}

func (l *stuUnitMasteryLogic) QueryByStudent(ctx context.Context, c store.Cache, stuID string) ([]models.StuUnitMastery, error) {
	return l.Select(ctx, c, squirrel.Eq{"stu_id": stuID}, "course_id", "unit")
}

func (l *stuUnitMasteryLogic) QueryByStudentCourse(ctx context.Context, c store.Cache, stuID, courseID string) ([]models.StuUnitMastery, error) {
	return l.Select(ctx, c, squirrel.Eq{"stu_id": stuID, "course_id": courseID}, "unit")
}

type stuCourseMasteryLogic struct {
	*store.Table[models.StuCourseMastery]
}

func newStuCourseMasteryLogic() *stuCourseMasteryLogic {
	t := table[models.StuCourseMastery]("StuCourseMastery", store.SchemaTerm, "stu_course_mastery")
	t.Order = []string{"stu_id", "course_id"}
	t.Columns = []string{"stu_id", "course_id", "score", "nbr_mastered_h1", "nbr_mastered_h2", "nbr_eligible"}
	t.Values = func(r *models.StuCourseMastery) []any {
		return []any{store.Val(r.StuID), store.Val(r.CourseID), store.Val(r.Score),
			store.Val(r.NbrMasteredH1), store.Val(r.NbrMasteredH2), store.Val(r.NbrEligible)}
	}
	t.Key = func(r *models.StuCourseMastery) squirrel.Eq {
		return squirrel.Eq{"stu_id": store.Val(r.StuID), "course_id": store.Val(r.CourseID)}
	}
	t.Map = func(row store.Row) (*models.StuCourseMastery, error) {
		m := store.NewMapper("stu_course_mastery", row)
		rec := &models.StuCourseMastery{
			StuID:         m.String("stu_id"),
			CourseID:      m.String("course_id"),
			Score:         m.Int("score"),
			NbrMasteredH1: m.Int("nbr_mastered_h1"),
			NbrMasteredH2: m.Int("nbr_mastered_h2"),
			NbrEligible:   m.Int("nbr_eligible"),
		}
		m.Require("stu_id", "course_id", "score", "nbr_mastered_h1", "nbr_mastered_h2", "nbr_eligible")
		return done(rec, m)
	}
	return &stuCourseMasteryLogic{Table: t}
}

func (l *stuCourseMasteryLogic) UpdateMastery(ctx context.Context, c store.Cache, rec *models.StuCourseMastery, h1, h2, eligible int) (bool, error) {
	return l.Update(ctx, c, map[string]any{
		"nbr_mastered_h1": h1,
		"nbr_mastered_h2": h2,
		"nbr_eligible":    eligible,
	}, l.Key(rec))
}

func (l *stuCourseMasteryLogic) UpdateScore(ctx context.Context, c store.Cache, rec *models.StuCourseMastery, score int) (bool, error) {
	return l.Update(ctx, c, map[string]any{"score": score}, l.Key(rec))
}

func (l *stuCourseMasteryLogic) Query(ctx context.Context, c store.Cache, stuID, courseID string) (*models.StuCourseMastery, error) {
	return l.One(ctx, c, squirrel.Eq{"stu_id": stuID, "course_id": courseID})
}

func (l *stuCourseMasteryLogic) QueryByStudent(ctx context.Context, c store.Cache, stuID string) ([]models.StuCourseMastery, error) {
	return l.Select(ctx, c, squirrel.Eq{"stu_id": stuID}, "course_id")
}

type reportPermsLogic struct {
	*store.Table[models.ReportPerms]
}

func newReportPermsLogic() *reportPermsLogic {
	t := table[models.ReportPerms]("ReportPerms", store.SchemaMain, "report_perms")
	t.Order = []string{"stu_id", "rpt_id"}
	t.Columns = []string{"stu_id", "rpt_id", "perm_level"}
	t.Values = func(r *models.ReportPerms) []any {
		return []any{store.Val(r.StuID), store.Val(r.RptID), store.Val(r.PermLevel)}
	}
	t.Key = func(r *models.ReportPerms) squirrel.Eq {
		return squirrel.Eq{"stu_id": store.Val(r.StuID), "rpt_id": store.Val(r.RptID)}
	}
	t.Map = func(row store.Row) (*models.ReportPerms, error) {
		m := store.NewMapper("report_perms", row)
		rec := &models.ReportPerms{
			StuID:     m.String("stu_id"),
			RptID:     m.String("rpt_id"),
			PermLevel: m.Int("perm_level"),
		}
		m.Require("stu_id", "rpt_id", "perm_level")
		return done(rec, m)
	}
	return &reportPermsLogic{Table: t}
}

func (l *reportPermsLogic) UpdatePermLevel(ctx context.Context, c store.Cache, rec *models.ReportPerms, level int) (bool, error) {
	return l.Update(ctx, c, map[string]any{"perm_level": level}, l.Key(rec))
}

func (l *reportPermsLogic) Query(ctx context.Context, c store.Cache, stuID, rptID string) (*models.ReportPerms, error) {
	return l.One(ctx, c, squirrel.Eq{"stu_id": stuID, "rpt_id": rptID})
}

func (l *reportPermsLogic) QueryByStuID(ctx context.Context, c store.Cache, stuID string) ([]models.ReportPerms, error) {
	return l.Select(ctx, c, squirrel.Eq{"stu_id": stuID}, "rpt_id")
}

func (l *reportPermsLogic) QueryByRptID(ctx context.Context, c store.Cache, rptID string) ([]models.ReportPerms, error) {
	return l.Select(ctx, c, squirrel.Eq{"rpt_id": rptID}, "stu_id")
}
