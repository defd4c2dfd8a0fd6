package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pacekeeper/internal/logic"
	"github.com/shrimpsizemoose/pacekeeper/internal/milestone"
	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

// LedgerExporter dumps the active term's appeal ledger to xlsx files.
type LedgerExporter struct {
	cache     store.Cache
	logic     *logic.Logic
	outputDir string
	scheduler *gocron.Scheduler
	now       func() time.Time
}

func NewLedgerExporter(c store.Cache, l *logic.Logic, outputDir string) *LedgerExporter {
	return &LedgerExporter{
		cache:     c,
		logic:     l,
		outputDir: outputDir,
		now:       time.Now,
	}
}

// Export writes appeals_<term>_<date>.xlsx and returns its path.
func (e *LedgerExporter) Export(ctx context.Context) (string, error) {
	term, err := e.logic.Term.QueryActive(ctx, e.cache)
	if err != nil {
		return "", fmt.Errorf("failed to load active term: %w", err)
	}
	if term == nil || term.Term == nil {
		return "", milestone.ErrNoActiveTerm
	}

	appeals, err := e.logic.MilestoneAppeal.QueryByTerm(ctx, e.cache, *term.Term)
	if err != nil {
		return "", fmt.Errorf("failed to load appeals: %w", err)
	}

	f, err := BuildLedgerWorkbook(milestone.Sorted(appeals))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", e.outputDir, err)
	}
	name := fmt.Sprintf("appeals_%s_%s.xlsx", term.Term.String(), e.now().UTC().Format("2006-01-02"))
	path := filepath.Join(e.outputDir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}

	logger.Info.Printf("Exported %d appeals for %s to %s", len(appeals), term.Term.LongString(), path)
	return path, nil
}

// Schedule runs Export on a cron expression until Stop is called.
func (e *LedgerExporter) Schedule(expr string) error {
	scheduler := gocron.NewScheduler(time.UTC)
	_, err := scheduler.Cron(expr).Do(func() {
		if _, err := e.Export(context.Background()); err != nil {
			logger.Error.Printf("Ledger export failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule ledger export: %w", err)
	}

	scheduler.StartAsync()
	e.scheduler = scheduler
	return nil
}

func (e *LedgerExporter) Stop() {
	if e.scheduler != nil {
		e.scheduler.Stop()
	}
}
