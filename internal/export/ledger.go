package export

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shrimpsizemoose/pacekeeper/internal/models"
)

const (
	LedgerSheet  = "Appeals"
	SummarySheet = "Summary"
)

var ledgerHeader = []string{
	"Student", "Term", "Appeal time", "Appeal type", "Pace", "Track", "Milestone", "Type",
	"Prior date", "New date", "Attempts", "Circumstances", "Comment", "Interviewer",
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func day(p *time.Time) string {
	if p == nil {
		return ""
	}
	return p.Format("2006-01-02")
}

func ledgerRow(a *models.MilestoneAppeal) []string {
	term := ""
	if a.Term != nil {
		term = a.Term.String()
	}
	stamp := ""
	if a.AppealDateTime != nil {
		stamp = a.AppealDateTime.Format("2006-01-02 15:04:05")
	}
	msType := str(a.MsType)
	if msType != "" {
		msType = models.MilestoneTypeName(msType)
	}
	return []string{
		str(a.StuID), term, stamp, models.AppealTypeName(str(a.AppealType)), num(a.Pace),
		str(a.PaceTrack), num(a.MsNbr), msType, day(a.PriorMsDt), day(a.NewMsDt),
		num(a.AttemptsAllowed), str(a.Circumstances), str(a.Comment), str(a.Interviewer),
	}
}

// BuildLedgerWorkbook writes appeals, already in ledger order, to an Appeals sheet and
// a per-type count to a Summary sheet.
func BuildLedgerWorkbook(appeals []models.MilestoneAppeal) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", LedgerSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	rows := make([][]string, 0, len(appeals))
	counts := make(map[string]int)
	for i := range appeals {
		rows = append(rows, ledgerRow(&appeals[i]))
		counts[str(appeals[i].AppealType)]++
	}
	if err := writeSheet(f, LedgerSheet, ledgerHeader, rows); err != nil {
		return nil, err
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	summary := make([][]string, 0, len(types))
	for _, t := range types {
		summary = append(summary, []string{t, models.AppealTypeName(t), strconv.Itoa(counts[t])})
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	if err := writeSheet(f, SummarySheet, []string{"Code", "Appeal type", "Count"}, summary); err != nil {
		return nil, err
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string) error {
	for c, h := range header {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheet, cell, val); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	end, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", end, bold)
	}
	_ = f.AutoFilter(sheet, "A1:"+end, nil)

	// width heuristic: header and the first 50 rows
	for c := range header {
		width := len(header[c])
		for r := 0; r < min(50, len(rows)); r++ {
			if l := len(rows[r][c]); l > width {
				width = l
			}
		}
		w := float64(width) * 0.9
		if w < 12 {
			w = 12
		}
		if w > 40 {
			w = 40
		}
		col, _ := excelize.ColumnNumberToName(c + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}
	return nil
}
