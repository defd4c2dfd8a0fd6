package milestone

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pacekeeper/internal/logic"
	"github.com/shrimpsizemoose/pacekeeper/internal/metrics"
	"github.com/shrimpsizemoose/pacekeeper/internal/models"
	"github.com/shrimpsizemoose/pacekeeper/internal/nullsafe"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

var (
	ErrInvalidTarget        = errors.New("invalid milestone target")
	ErrIncompleteMilestones = errors.New("incomplete milestones")
	ErrNoActiveTerm         = errors.New("no active term")
)

const (
	extensionCircumstances = "Requested extension via website"
	extensionInterviewer   = "websites"
)

// Target names one milestone of one student. Objective is 0 for legacy milestones and
// 1..3 for standards milestones.
type Target struct {
	StuID     string
	PaceTrack string
	Pace      int
	Index     int
	Unit      int
	Objective int
	MsType    string
}

func (t Target) Standard() bool {
	return t.Objective > 0
}

// MsNbr is the milestone number appeals carry for this target.
func (t Target) MsNbr() int {
	if t.Standard() {
		return models.StandardMsNbr(t.Pace, t.Index, t.Unit, t.Objective)
	}
	return models.LegacyMsNbr(t.Pace, t.Index, t.Unit)
}

func (t Target) validate() error {
	if t.StuID == "" || t.PaceTrack == "" {
		return fmt.Errorf("%w: student and pace track are required", ErrInvalidTarget)
	}
	if err := checkPaceIndex(t.Pace, t.Index); err != nil {
		return err
	}
	maxUnit := 5
	if t.Standard() {
		maxUnit = 8
		if t.Objective > 3 {
			return fmt.Errorf("%w: objective %d", ErrInvalidTarget, t.Objective)
		}
	}
	if t.Unit < 1 || t.Unit > maxUnit {
		return fmt.Errorf("%w: unit %d", ErrInvalidTarget, t.Unit)
	}
	return nil
}

// matches reports whether a ledger entry targets t.
func (t Target) matches(a *models.MilestoneAppeal) bool {
	return a.PaceTrack != nil && *a.PaceTrack == t.PaceTrack &&
		a.Pace != nil && *a.Pace == t.Pace &&
		a.MsType != nil && *a.MsType == t.MsType &&
		a.MsNbr != nil && *a.MsNbr == t.MsNbr()
}

func checkPaceIndex(pace, index int) error {
	if pace < 1 || pace > 5 {
		return fmt.Errorf("%w: pace %d", ErrInvalidTarget, pace)
	}
	if index < 1 || index > pace {
		return fmt.Errorf("%w: course index %d for pace %d", ErrInvalidTarget, index, pace)
	}
	return nil
}

// Deadlines answers effective-deadline questions for one cache and logic bundle.
type Deadlines struct {
	cache store.Cache
	logic *logic.Logic
	now   func() time.Time
}

func NewDeadlines(c store.Cache, l *logic.Logic) *Deadlines {
	return &Deadlines{cache: c, logic: l, now: time.Now}
}

// ActiveTerm returns the active term, or ErrNoActiveTerm.
func (d *Deadlines) ActiveTerm(ctx context.Context) (*models.Term, error) {
	active, err := d.logic.Term.QueryActive(ctx, d.cache)
	if err != nil {
		return nil, fmt.Errorf("failed to load active term: %w", err)
	}
	if active == nil || active.Term == nil {
		return nil, ErrNoActiveTerm
	}
	return active, nil
}

// Effective is the student's current deadline for a standards milestone in a term: its
// stored date overridden by the term's appeals that target it.
func (d *Deadlines) Effective(ctx context.Context, term models.TermKey, ssm *models.StuStandardMilestone) (*time.Time, error) {
	nbr, ok := ssm.MsNbr()
	if !ok || ssm.StuID == nil || ssm.PaceTrack == nil || ssm.MsType == nil {
		return nil, fmt.Errorf("%w: incomplete student milestone %s", ErrInvalidTarget, ssm)
	}
	appeals, err := d.logic.MilestoneAppeal.QueryByScope(ctx, d.cache, logic.AppealScope{
		Term:      term,
		StuID:     *ssm.StuID,
		PaceTrack: *ssm.PaceTrack,
		Pace:      *ssm.Pace,
		MsNbr:     nbr,
		MsType:    *ssm.MsType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load appeals: %w", err)
	}
	return Replay(ssm.MsDate, appeals), nil
}

// ResolvedLegacy holds a student's effective deadlines for one legacy course.
type ResolvedLegacy struct {
	RE         [4]*time.Time
	FE         *time.Time
	F1         *time.Time
	F1Attempts *int
}

// Date returns the resolved deadline for a unit and type, or nil.
func (r *ResolvedLegacy) Date(unit int, msType string) *time.Time {
	switch {
	case msType == models.MsTypeReviewExam && unit >= 1 && unit <= 4:
		return r.RE[unit-1]
	case msType == models.MsTypeFinalExam && unit == 5:
		return r.FE
	case msType == models.MsTypeFinalPlusOne && unit == 5:
		return r.F1
	}
	return nil
}

// ResolvedStandard holds a student's effective mastery deadlines for one standards course,
// indexed by unit and objective. Missing milestones stay nil.
type ResolvedStandard struct {
	MA [8][3]*time.Time
}

// Date returns the resolved deadline for a unit and objective, or nil.
func (r *ResolvedStandard) Date(unit, objective int) *time.Time {
	if unit < 1 || unit > 8 || objective < 1 || objective > 3 {
		return nil
	}
	return r.MA[unit-1][objective-1]
}

// ResolveStandard loads the student's mastery milestones for a standards course index and
// overrides each with the term's appeals.
func (d *Deadlines) ResolveStandard(ctx context.Context, term models.TermKey, stuID, paceTrack string, pace, index int) (*ResolvedStandard, error) {
	if err := checkPaceIndex(pace, index); err != nil {
		return nil, err
	}
	rows, err := d.logic.StuStandardMilestone.QueryByStuPaceTrackPaceIndex(ctx, d.cache, stuID, paceTrack, pace, index)
	if err != nil {
		return nil, fmt.Errorf("failed to load student milestones: %w", err)
	}
	appeals, err := d.logic.MilestoneAppeal.QueryByStudentTerm(ctx, d.cache, stuID, term)
	if err != nil {
		return nil, fmt.Errorf("failed to load appeals: %w", err)
	}

	out := &ResolvedStandard{}
	found := false
	for i := range rows {
		ssm := &rows[i]
		if ssm.MsType == nil || *ssm.MsType != models.MsTypeMastery || ssm.Unit == nil || ssm.Objective == nil {
			continue
		}
		unit, obj := *ssm.Unit, *ssm.Objective
		if unit < 1 || unit > 8 || obj < 1 || obj > 3 {
			continue
		}
		t := Target{StuID: stuID, PaceTrack: paceTrack, Pace: pace, Index: index, Unit: unit, Objective: obj, MsType: models.MsTypeMastery}
		var matching []models.MilestoneAppeal
		for j := range appeals {
			if t.matches(&appeals[j]) {
				matching = append(matching, appeals[j])
			}
		}
		out.MA[unit-1][obj-1] = Replay(ssm.MsDate, matching)
		found = true
	}
	if !found {
		return nil, fmt.Errorf("%w: no mastery milestones for %s pace %d track %s index %d",
			ErrIncompleteMilestones, stuID, pace, paceTrack, index)
	}
	return out, nil
}

// ResolveLegacy finds the term's review, final and final+1 milestones for a course index.
// A student milestone row for the term replaces its milestone outright. Otherwise the
// milestone is overridden by the student's appeals in the term.
func (d *Deadlines) ResolveLegacy(ctx context.Context, term models.TermKey, stuID, paceTrack string, pace, index int) (*ResolvedLegacy, error) {
	if err := checkPaceIndex(pace, index); err != nil {
		return nil, err
	}

	milestones, err := d.logic.Milestone.QueryByTermPaceTrack(ctx, d.cache, term, pace, paceTrack)
	if err != nil {
		return nil, fmt.Errorf("failed to load milestones: %w", err)
	}
	if len(milestones) == 0 {
		return nil, fmt.Errorf("%w: none defined for pace %d track %s in %s",
			ErrIncompleteMilestones, pace, paceTrack, term.LongString())
	}

	var re [4]*models.Milestone
	var fe, f1 *models.Milestone
	for i := range milestones {
		ms := &milestones[i]
		if ms.Index() != index || ms.MsType == nil {
			continue
		}
		unit := ms.Unit()
		switch {
		case *ms.MsType == models.MsTypeReviewExam && unit >= 1 && unit <= 4:
			re[unit-1] = ms
		case *ms.MsType == models.MsTypeFinalExam && unit == 5:
			fe = ms
		case *ms.MsType == models.MsTypeFinalPlusOne && unit == 5:
			f1 = ms
		}
	}
	if re[0] == nil || re[1] == nil || re[2] == nil || re[3] == nil || fe == nil || f1 == nil {
		return nil, fmt.Errorf("%w: pace %d track %s index %d in %s",
			ErrIncompleteMilestones, pace, paceTrack, index, term.LongString())
	}

	appeals, err := d.AppealsForCourse(ctx, term, stuID, paceTrack, pace, index)
	if err != nil {
		return nil, err
	}
	overrides, err := d.logic.StudentMilestone.QueryByStudentTermTrack(ctx, d.cache, stuID, term, paceTrack)
	if err != nil {
		return nil, fmt.Errorf("failed to load student milestones: %w", err)
	}

	out := &ResolvedLegacy{}
	for i, ms := range re {
		out.RE[i], _ = resolveOne(ms, overrides, appeals)
	}
	out.FE, _ = resolveOne(fe, overrides, appeals)
	out.F1, out.F1Attempts = resolveOne(f1, overrides, appeals)
	return out, nil
}

// resolveOne returns the date and attempts of one term milestone for a student.
func resolveOne(ms *models.Milestone, overrides []models.StudentMilestone, appeals []models.MilestoneAppeal) (*time.Time, *int) {
	for i := range overrides {
		o := &overrides[i]
		if !o.Overrides(ms) {
			continue
		}
		n := o.NbrAtmptsAllow
		if n == nil {
			n = ms.NbrAtmptsAllow
		}
		if o.MsDate == nil {
			return nil, n
		}
		day := models.DateOf(*o.MsDate)
		return &day, n
	}
	matching := forMilestone(appeals, ms)
	return Replay(ms.MsDate, matching), attempts(ms.NbrAtmptsAllow, matching)
}

func forMilestone(appeals []models.MilestoneAppeal, ms *models.Milestone) []models.MilestoneAppeal {
	var out []models.MilestoneAppeal
	for _, a := range appeals {
		if a.MsNbr != nil && a.MsType != nil && *a.MsNbr == *ms.MsNbr && *a.MsType == *ms.MsType {
			out = append(out, a)
		}
	}
	return out
}

// AppealsForCourse returns the student's appeals in a term, pace track and pace whose
// milestone number decodes to the course index, in ledger order. Rows of the older pace
// appeal ledger are merged in as appeals.
func (d *Deadlines) AppealsForCourse(ctx context.Context, term models.TermKey, stuID, paceTrack string, pace, index int) ([]models.MilestoneAppeal, error) {
	if err := checkPaceIndex(pace, index); err != nil {
		return nil, err
	}
	all, err := d.logic.MilestoneAppeal.QueryByStudentTerm(ctx, d.cache, stuID, term)
	if err != nil {
		return nil, fmt.Errorf("failed to load appeals: %w", err)
	}
	old, err := d.logic.PaceAppeal.QueryByStudentTerm(ctx, d.cache, stuID, term)
	if err != nil {
		return nil, fmt.Errorf("failed to load pace appeals: %w", err)
	}
	for i := range old {
		all = append(all, old[i].AsAppeal())
	}

	var matching []models.MilestoneAppeal
	for _, a := range all {
		if a.PaceTrack == nil || *a.PaceTrack != paceTrack || a.Pace == nil || *a.Pace != pace || a.MsNbr == nil {
			continue
		}
		if models.DecodeMsNbr(*a.MsNbr).Index == index {
			matching = append(matching, a)
		}
	}
	return Sorted(matching), nil
}

// AccommodationDaysAvailable is the number of accommodation days the student may still
// apply to the target: the student's extension days, 0 when an accommodation appeal
// already targets it, or -1 when the student has no accommodation on record.
func (d *Deadlines) AccommodationDaysAvailable(ctx context.Context, t Target) (int, error) {
	if err := t.validate(); err != nil {
		return 0, err
	}
	stu, err := d.logic.Student.Query(ctx, d.cache, t.StuID)
	if err != nil {
		return 0, fmt.Errorf("failed to load student: %w", err)
	}
	if stu == nil || stu.ExtensionDays == nil || *stu.ExtensionDays == 0 {
		return -1, nil
	}
	active, err := d.ActiveTerm(ctx)
	if errors.Is(err, ErrNoActiveTerm) {
		return -1, nil
	}
	if err != nil {
		return 0, err
	}

	used, err := d.used(ctx, *active.Term, t, models.AppealAccommodation)
	if err != nil || used {
		return 0, err
	}
	return *stu.ExtensionDays, nil
}

// FreeDaysAvailable is the number of free extension days the student may still apply to
// the target: the pacing structure's allowance, 0 when a requested or automatic
// extension already targets it, or -1 when the pacing structure cannot be found.
func (d *Deadlines) FreeDaysAvailable(ctx context.Context, t Target) (int, error) {
	if err := t.validate(); err != nil {
		return 0, err
	}
	stu, err := d.logic.Student.Query(ctx, d.cache, t.StuID)
	if err != nil {
		return 0, fmt.Errorf("failed to load student: %w", err)
	}
	active, err := d.ActiveTerm(ctx)
	if errors.Is(err, ErrNoActiveTerm) {
		return -1, nil
	}
	if err != nil {
		return 0, err
	}
	if stu == nil || stu.PacingStructure == nil {
		return -1, nil
	}
	pacing, err := d.logic.PacingStructure.Query(ctx, d.cache, *active.Term, *stu.PacingStructure)
	if err != nil {
		return 0, fmt.Errorf("failed to load pacing structure: %w", err)
	}
	if pacing == nil {
		return -1, nil
	}

	used, err := d.used(ctx, *active.Term, t, models.AppealRequestedExtension, models.AppealAutomaticExtension)
	if err != nil || used {
		return 0, err
	}
	return pacing.FreeExtensionDays(), nil
}

// used reports whether an appeal of one of the given types already targets t in the term.
func (d *Deadlines) used(ctx context.Context, term models.TermKey, t Target, appealTypes ...string) (bool, error) {
	all, err := d.logic.MilestoneAppeal.QueryByStudentTerm(ctx, d.cache, t.StuID, term)
	if err != nil {
		return false, fmt.Errorf("failed to load appeals: %w", err)
	}
	for i := range all {
		a := &all[i]
		if a.AppealType == nil || !t.matches(a) {
			continue
		}
		for _, typ := range appealTypes {
			if *a.AppealType == typ {
				return true, nil
			}
		}
	}
	return false, nil
}

// ApplyExtension records an accommodation (ACC) or free (REQ) extension for the target
// and returns the number of days granted. A non-positive result means nothing was
// available and nothing was written. The new deadline never runs past the end of the
// active term.
func (d *Deadlines) ApplyExtension(ctx context.Context, t Target, appealType string) (int, error) {
	var days int
	var err error
	switch appealType {
	case models.AppealAccommodation:
		days, err = d.AccommodationDaysAvailable(ctx, t)
	case models.AppealRequestedExtension:
		days, err = d.FreeDaysAvailable(ctx, t)
	default:
		return 0, fmt.Errorf("%w: appeal type %q is not an extension", ErrInvalidTarget, appealType)
	}
	if err != nil || days <= 0 {
		return days, err
	}

	active, err := d.ActiveTerm(ctx)
	if err != nil {
		return 0, err
	}

	var ssm *models.StuStandardMilestone
	var current, f1 *time.Time
	if t.Standard() {
		ssm, err = d.logic.StuStandardMilestone.Query(ctx, d.cache, &models.StuStandardMilestone{
			StuID:     &t.StuID,
			PaceTrack: &t.PaceTrack,
			Pace:      &t.Pace,
			PaceIndex: &t.Index,
			Unit:      &t.Unit,
			Objective: &t.Objective,
			MsType:    &t.MsType,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to load student milestone: %w", err)
		}
		if ssm == nil {
			return 0, fmt.Errorf("%w: no student milestone for %d %s", ErrIncompleteMilestones, t.MsNbr(), t.MsType)
		}
		if current, err = d.Effective(ctx, *active.Term, ssm); err != nil {
			return 0, err
		}
	} else {
		resolved, err := d.ResolveLegacy(ctx, *active.Term, t.StuID, t.PaceTrack, t.Pace, t.Index)
		if err != nil {
			return 0, err
		}
		current = resolved.Date(t.Unit, t.MsType)
		f1 = resolved.F1
	}
	if current == nil {
		return 0, fmt.Errorf("%w: no deadline for %d %s", ErrIncompleteMilestones, t.MsNbr(), t.MsType)
	}

	added := days
	newDate := current.AddDate(0, 0, days)
	if active.EndDate != nil && newDate.After(*active.EndDate) {
		newDate = models.DateOf(*active.EndDate)
		added = int(newDate.Sub(*current).Hours() / 24)
		if added <= 0 {
			return 0, nil
		}
	}

	now := d.now().UTC()
	nbr := t.MsNbr()
	appeal := &models.MilestoneAppeal{
		StuID:          &t.StuID,
		Term:           active.Term,
		AppealDateTime: &now,
		AppealType:     &appealType,
		Pace:           &t.Pace,
		PaceTrack:      &t.PaceTrack,
		MsNbr:          &nbr,
		MsType:         &t.MsType,
		PriorMsDt:      current,
		NewMsDt:        &newDate,
		Circumstances:  nullsafe.Ptr(extensionCircumstances),
		Interviewer:    nullsafe.Ptr(extensionInterviewer),
	}
	if added < days {
		appeal.Comment = nullsafe.Ptr(fmt.Sprintf("Only able to add %d days before end of term, student was allowed %d", added, days))
	}

	ok, err := d.logic.MilestoneAppeal.Insert(ctx, d.cache, appeal)
	if err != nil {
		return 0, fmt.Errorf("failed to record extension: %w", err)
	}
	if !ok {
		logger.Info.Printf("Extension for %s on %d %s was not recorded", t.StuID, nbr, t.MsType)
		return 0, nil
	}
	metrics.AppealsRecorded.WithLabelValues(appealType).Inc()

	if ssm != nil {
		if _, err := d.logic.StuStandardMilestone.UpdateDate(ctx, d.cache, ssm, &newDate); err != nil {
			return added, fmt.Errorf("failed to update student milestone: %w", err)
		}
		return added, nil
	}

	if err := d.saveStudentMilestone(ctx, *active.Term, t.StuID, t.PaceTrack, nbr, t.MsType, newDate, nil); err != nil {
		return added, err
	}
	if t.MsType == models.MsTypeFinalExam {
		// final+1 follows the final exam by a day
		next := newDate.AddDate(0, 0, 1)
		if active.EndDate != nil && next.After(*active.EndDate) {
			next = models.DateOf(*active.EndDate)
		}
		if f1 == nil || next.After(*f1) {
			n := models.DefaultF1Attempts
			if err := d.saveStudentMilestone(ctx, *active.Term, t.StuID, t.PaceTrack, nbr, models.MsTypeFinalPlusOne, next, &n); err != nil {
				return added, err
			}
		}
	}
	return added, nil
}

// saveStudentMilestone writes the student's own date for a term milestone, updating the
// row when one exists. attempts nil keeps the stored count.
func (d *Deadlines) saveStudentMilestone(ctx context.Context, term models.TermKey, stuID, paceTrack string, msNbr int, msType string, date time.Time, attempts *int) error {
	key := &models.StudentMilestone{
		Term:      &term,
		StuID:     &stuID,
		PaceTrack: &paceTrack,
		MsNbr:     &msNbr,
		MsType:    &msType,
	}
	existing, err := d.logic.StudentMilestone.Query(ctx, d.cache, key)
	if err != nil {
		return fmt.Errorf("failed to load student milestone: %w", err)
	}
	if existing != nil {
		if attempts == nil {
			attempts = existing.NbrAtmptsAllow
		}
		if _, err := d.logic.StudentMilestone.UpdateDate(ctx, d.cache, existing, &date, attempts); err != nil {
			return fmt.Errorf("failed to update student milestone: %w", err)
		}
		return nil
	}
	key.MsDate = &date
	key.NbrAtmptsAllow = attempts
	if _, err := d.logic.StudentMilestone.Insert(ctx, d.cache, key); err != nil {
		return fmt.Errorf("failed to record student milestone: %w", err)
	}
	return nil
}
