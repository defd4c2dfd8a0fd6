// Package legacy implements entity logic for the flat legacy schema: unqualified table
// names, a two-column term key (term code and two-digit year) and date-only columns.
package legacy

import (
	"slices"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/shrimpsizemoose/pacekeeper/internal/logic"
	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

// New returns the legacy strategy for every entity. caps gates the student columns that
// not every deployment has.
func New(caps store.Capabilities) *logic.Logic {
	return &logic.Logic{
		Dialect:              store.DialectLegacy,
		Term:                 newTermLogic(),
		TermWeek:             newTermWeekLogic(),
		PaceTrackRule:        newPaceTrackRuleLogic(),
		PacingStructure:      newPacingStructureLogic(),
		Assignment:           newAssignmentLogic(),
		MasteryExam:          newMasteryExamLogic(),
		MasteryAttempt:       newMasteryAttemptLogic(),
		MasteryAttemptQa:     newMasteryAttemptQaLogic(),
		StuStandardMilestone: newStuStandardMilestoneLogic(),
		StuUnitMastery:       newStuUnitMasteryLogic(),
		StuCourseMastery:     newStuCourseMasteryLogic(),
		ReportPerms:          newReportPermsLogic(),
		Milestone:            newMilestoneLogic(),
		MilestoneAppeal:      newMilestoneAppealLogic(),
		StudentMilestone:     newStudentMilestoneLogic(),
		PaceAppeal:           newPaceAppealLogic(),
		Student:              newStudentLogic(caps),
	}
}

func table[T any](entity, name string) *store.Table[T] {
	return &store.Table[T]{Entity: entity, Name: name, Format: squirrel.Question}
}

// termCols splits a term key into the term code and two-digit year columns.
func termCols(k *models.TermKey) (any, any) {
	if k == nil {
		return nil, nil
	}
	return string(k.Name), k.ShortYear()
}

func termEq(k *models.TermKey) squirrel.Eq {
	code, yr := termCols(k)
	return squirrel.Eq{"term": code, "term_yr": yr}
}

// termOrder sorts the two-column key chronologically, expanding short years the same way
// models.TermKeyFromShortYear does.
var termOrder = []string{
	"CASE WHEN term_yr > 80 THEN term_yr + 1900 ELSE term_yr + 2000 END",
	"CASE term WHEN 'SP' THEN 1 WHEN 'SM' THEN 2 ELSE 3 END",
}

// byTerm orders by term, earliest first, then by cols.
func byTerm(cols ...string) []string {
	return append(slices.Clone(termOrder), cols...)
}

func readTermKey(m *store.Mapper) *models.TermKey {
	code := m.String("term")
	yr := m.Int("term_yr")
	if code == nil || yr == nil {
		m.Fail("term", "missing term code or year")
		return nil
	}
	name, err := models.ParseTermName(*code)
	if err != nil {
		m.Fail("term", err.Error())
		return nil
	}
	k := models.TermKeyFromShortYear(name, *yr)
	return &k
}

// date truncates to the date-only precision of legacy columns.
func date(t *time.Time) any {
	if t == nil {
		return nil
	}
	return models.DateOf(*t)
}

func stamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func done[T any](rec *T, m *store.Mapper) (*T, error) {
	if err := m.Err(); err != nil {
		return nil, err
	}
	return rec, nil
}
