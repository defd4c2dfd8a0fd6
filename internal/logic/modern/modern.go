// Package modern implements entity logic for the normalized schema: tables qualified
// with the prefix of their schema slot, a numeric term column and timestamp columns.
package modern

import (
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/shrimpsizemoose/pacekeeper/internal/logic"
	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

// New returns the modern strategy for every entity. The modern student table always has
// the extension and canvas columns; caps is accepted so both dialects build alike.
func New(caps store.Capabilities) *logic.Logic {
	return &logic.Logic{
		Dialect:              store.DialectModern,
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
		Student:              newStudentLogic(),
	}
}

func table[T any](entity string, slot store.Schema, name string) *store.Table[T] {
	return &store.Table[T]{Entity: entity, Name: name, Slot: slot, Format: squirrel.Dollar}
}

// termVal encodes a term key as year*100 + 10, 60 or 90.
func termVal(k *models.TermKey) any {
	if k == nil {
		return nil
	}
	return k.Numeric()
}

func termEq(k *models.TermKey) squirrel.Eq {
	return squirrel.Eq{"term": termVal(k)}
}

// byTerm orders by the numeric term, earliest first, then by cols.
func byTerm(cols ...string) []string {
	return append([]string{"term"}, cols...)
}

func readTermKey(m *store.Mapper) *models.TermKey {
	n := m.Int("term")
	if n == nil {
		m.Fail("term", "missing term")
		return nil
	}
	if *n < 100 {
		m.Fail("term", "invalid numeric term")
		return nil
	}
	k := models.TermKeyFromNumeric(*n)
	return &k
}

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
