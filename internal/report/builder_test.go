package report

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"expenseshare/internal/expense"
)

func strp(s string) *string { return &s }

func TestBuildWritesBothSheets(t *testing.T) {
	builder, err := NewBuilder(t.TempDir())
	if err != nil {
		t.Fatalf("NewBuilder returned error: %v", err)
	}

	created := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	shares := []*expense.LedgerRow{
		{
			UserName:     "Alice",
			Description:  strp("Dinner"),
			ExpenseTotal: 300,
			ExactAmount:  100,
			Percentage:   33.333333,
			Settled:      false,
			CreatedAt:    created,
		},
		{
			UserName:     "Alice",
			Description:  nil, // renders as N/A
			ExpenseTotal: 80,
			ExactAmount:  40,
			Percentage:   50,
			Settled:      true,
			CreatedAt:    created,
		},
	}
	expenses := []*expense.Expense{
		{PayerName: "Bob", Description: strp("Dinner"), TotalAmount: 300, CreatedAt: created},
		{PayerName: "Alice", Description: nil, TotalAmount: 80, CreatedAt: created},
	}

	path, err := builder.Build(shares, expenses)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("artifact does not open as a spreadsheet: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 2 {
		t.Fatalf("sheet list = %v, want two sheets", got)
	}

	header, err := f.GetCellValue("Balance Sheet", "A1")
	if err != nil || header != "User Name" {
		t.Errorf("detail header A1 = %q (err %v), want \"User Name\"", header, err)
	}
	name, _ := f.GetCellValue("Balance Sheet", "A2")
	if name != "Alice" {
		t.Errorf("detail A2 = %q, want Alice", name)
	}
	na, _ := f.GetCellValue("Balance Sheet", "B3")
	if na != "N/A" {
		t.Errorf("missing description renders as %q, want N/A", na)
	}
	settled, _ := f.GetCellValue("Balance Sheet", "F3")
	if settled != "Yes" {
		t.Errorf("settled cell = %q, want Yes", settled)
	}

	paidBy, _ := f.GetCellValue("Overall Expenses", "A2")
	if paidBy != "Bob" {
		t.Errorf("overall A2 = %q, want Bob", paidBy)
	}
	overallHeader, _ := f.GetCellValue("Overall Expenses", "D1")
	if overallHeader != "Date Created" {
		t.Errorf("overall D1 = %q, want \"Date Created\"", overallHeader)
	}
}

func TestBuildUsesUniquePaths(t *testing.T) {
	builder, err := NewBuilder(t.TempDir())
	if err != nil {
		t.Fatalf("NewBuilder returned error: %v", err)
	}

	first, err := builder.Build(nil, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	second, err := builder.Build(nil, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if first == second {
		t.Errorf("two builds share the path %s; concurrent downloads would race", first)
	}
}

func TestBuildEmptyHistory(t *testing.T) {
	builder, err := NewBuilder(t.TempDir())
	if err != nil {
		t.Fatalf("NewBuilder returned error: %v", err)
	}

	path, err := builder.Build(nil, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("empty artifact does not open: %v", err)
	}
	defer f.Close()

	// Headers are present even with no data rows
	header, _ := f.GetCellValue("Balance Sheet", "G1")
	if header != "Date Created" {
		t.Errorf("detail G1 = %q, want \"Date Created\"", header)
	}
}
