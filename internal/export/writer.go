// Package export renders a finished report into an accounting workbook that
// downstream integrations (or a bookkeeper) can import.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/expensewire/report-actions/internal/models"
	"github.com/expensewire/report-actions/internal/report"
)

const sheetName = "Report"

// Writer produces one .xlsx workbook per exported report
type Writer struct {
	outputDir string
	logger    *zap.Logger
}

// NewWriter creates a new workbook writer
func NewWriter(outputDir string, logger *zap.Logger) (*Writer, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &Writer{
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

// centsToDisplay renders an integer-cent amount as a two-decimal string
func centsToDisplay(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// WriteReport writes the report and its transactions to a workbook and
// returns the output path.
func (w *Writer) WriteReport(rpt *models.Report, transactions []models.Transaction) (string, error) {
	if rpt == nil {
		return "", fmt.Errorf("cannot export nil report")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	breakdown := report.GetMoneyRequestSpendBreakdown(rpt)

	w.setCell(f, "A1", "Report ID")
	w.setCell(f, "B1", rpt.ID)
	w.setCell(f, "A2", "State")
	w.setCell(f, "B2", string(rpt.State))
	w.setCell(f, "A3", "Currency")
	w.setCell(f, "B3", rpt.Currency)
	w.setCell(f, "A4", "Reimbursable total")
	w.setCell(f, "B4", centsToDisplay(breakdown.ReimbursableSpend))
	w.setCell(f, "A5", "Non-reimbursable total")
	w.setCell(f, "B5", centsToDisplay(breakdown.NonReimbursableSpend))
	w.setCell(f, "A6", "Exported at")
	w.setCell(f, "B6", time.Now().UTC().Format(time.RFC3339))

	headerRow := 8
	w.setCell(f, fmt.Sprintf("A%d", headerRow), "Transaction ID")
	w.setCell(f, fmt.Sprintf("B%d", headerRow), "Amount")
	w.setCell(f, fmt.Sprintf("C%d", headerRow), "Currency")
	w.setCell(f, fmt.Sprintf("D%d", headerRow), "On hold")

	for i, tx := range transactions {
		row := headerRow + 1 + i
		w.setCell(f, fmt.Sprintf("A%d", row), tx.ID)
		w.setCell(f, fmt.Sprintf("B%d", row), centsToDisplay(report.TransactionAmount(tx)))
		w.setCell(f, fmt.Sprintf("C%d", row), tx.Currency)
		w.setCell(f, fmt.Sprintf("D%d", row), fmt.Sprintf("%t", tx.OnHold))
	}

	outputPath := filepath.Join(w.outputDir, fmt.Sprintf("report_%s.xlsx", rpt.ID))
	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("Workbook written",
		zap.String("report_id", rpt.ID),
		zap.String("output_path", outputPath),
		zap.Int("transactions", len(transactions)))
	return outputPath, nil
}

func (w *Writer) setCell(f *excelize.File, cell, value string) {
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		w.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
