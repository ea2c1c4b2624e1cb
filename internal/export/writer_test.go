package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/expensewire/report-actions/internal/models"
)

func TestWriteReportProducesWorkbook(t *testing.T) {
	dir := t.TempDir()
	writer, err := NewWriter(dir, zap.NewNop())
	require.NoError(t, err)

	rpt := &models.Report{
		ID:                   "r1",
		Type:                 models.ReportTypeExpense,
		State:                models.ReportStateReimbursed,
		TotalSpend:           12550,
		NonReimbursableSpend: 550,
		Currency:             "USD",
	}
	transactions := []models.Transaction{
		{ID: "t1", ReportID: "r1", Amount: 10000, Currency: "USD"},
		{ID: "t2", ReportID: "r1", Amount: 3000, ModifiedAmount: 2550, Currency: "USD", OnHold: true},
	}

	path, err := writer.WriteReport(rpt, transactions)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_r1.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("Report", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "r1", cell("B1"))
	assert.Equal(t, "REIMBURSED", cell("B2"))
	assert.Equal(t, "120.00", cell("B4")) // reimbursable = total minus non-reimbursable
	assert.Equal(t, "5.50", cell("B5"))

	assert.Equal(t, "t1", cell("A9"))
	assert.Equal(t, "100.00", cell("B9"))
	assert.Equal(t, "t2", cell("A10"))
	assert.Equal(t, "25.50", cell("B10")) // modified amount wins
	assert.Equal(t, "true", cell("D10"))
}

func TestWriteReportRejectsNilReport(t *testing.T) {
	writer, err := NewWriter(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	_, err = writer.WriteReport(nil, nil)
	assert.Error(t, err)
}
