package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"expenseshare/internal/expense"
)

const (
	detailSheet  = "Balance Sheet"
	overallSheet = "Overall Expenses"

	timeLayout = "2006-01-02 15:04:05"
)

// Builder projects a user's shares and the full expense history into a
// two-sheet spreadsheet artifact. No aggregation happens here; it is a
// purely presentational projection.
type Builder struct {
	dir string
}

// NewBuilder creates a builder writing artifacts into dir. The directory
// is created if missing.
func NewBuilder(dir string) (*Builder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &Builder{dir: dir}, nil
}

// Build writes the artifact and returns its path. Every invocation gets
// a unique filename, so concurrent builds never race on a shared path.
func (b *Builder) Build(shares []*expense.LedgerRow, expenses []*expense.Expense) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", detailSheet); err != nil {
		return "", fmt.Errorf("failed to set up detail sheet: %w", err)
	}

	detailHeaders := []string{"User Name", "Expense Description", "Total Amount", "Exact Amount", "Percentage", "Is Settled", "Date Created"}
	if err := writeHeaders(f, detailSheet, detailHeaders); err != nil {
		return "", err
	}
	f.SetColWidth(detailSheet, "A", "G", 20)

	for i, row := range shares {
		line := i + 2
		f.SetCellValue(detailSheet, fmt.Sprintf("A%d", line), row.UserName)
		f.SetCellValue(detailSheet, fmt.Sprintf("B%d", line), descriptionOrNA(row.Description))
		f.SetCellValue(detailSheet, fmt.Sprintf("C%d", line), row.ExpenseTotal)
		f.SetCellValue(detailSheet, fmt.Sprintf("D%d", line), row.ExactAmount)
		f.SetCellValue(detailSheet, fmt.Sprintf("E%d", line), row.Percentage)
		f.SetCellValue(detailSheet, fmt.Sprintf("F%d", line), yesNo(row.Settled))
		f.SetCellValue(detailSheet, fmt.Sprintf("G%d", line), row.CreatedAt.Format(timeLayout))
	}

	if _, err := f.NewSheet(overallSheet); err != nil {
		return "", fmt.Errorf("failed to create overall sheet: %w", err)
	}

	overallHeaders := []string{"Paid By", "Expense Description", "Total Amount", "Date Created"}
	if err := writeHeaders(f, overallSheet, overallHeaders); err != nil {
		return "", err
	}
	f.SetColWidth(overallSheet, "A", "D", 20)

	for i, e := range expenses {
		line := i + 2
		f.SetCellValue(overallSheet, fmt.Sprintf("A%d", line), e.PayerName)
		f.SetCellValue(overallSheet, fmt.Sprintf("B%d", line), descriptionOrNA(e.Description))
		f.SetCellValue(overallSheet, fmt.Sprintf("C%d", line), e.TotalAmount)
		f.SetCellValue(overallSheet, fmt.Sprintf("D%d", line), e.CreatedAt.Format(timeLayout))
	}

	path := filepath.Join(b.dir, fmt.Sprintf("balance-sheet-%s.xlsx", uuid.NewString()))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to write report artifact: %w", err)
	}

	return path, nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	return nil
}

func descriptionOrNA(description *string) string {
	if description == nil || *description == "" {
		return "N/A"
	}
	return *description
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
