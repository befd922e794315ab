package testutil

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/reorder/pkg/domain/entities"
	"github.com/vsinha/reorder/pkg/infrastructure/repositories/memory"
)

// ReorderTitle is the decorative first row written above the header
const ReorderTitle = "RO ITEM LIST - AVERAGE CONSUMPTION"

// WriteWorkbook writes an .xlsx file with a title row, the header on the
// second row and the given data rows, and returns its path
func WriteWorkbook(tb testing.TB, dir, name string, header []string, rows [][]interface{}) string {
	tb.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", ReorderTitle); err != nil {
		tb.Fatalf("failed to write title: %v", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A2", &headerRow); err != nil {
		tb.Fatalf("failed to write header: %v", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			tb.Fatalf("failed to address row %d: %v", i, err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			tb.Fatalf("failed to write row %d: %v", i, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		tb.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

// WriteCSV writes a CSV file with a title row and header on the second row
func WriteCSV(tb testing.TB, dir, name string, header []string, rows [][]string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		tb.Fatalf("failed to create CSV: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	records := append([][]string{{ReorderTitle}, header}, rows...)
	if err := w.WriteAll(records); err != nil {
		tb.Fatalf("failed to write CSV: %v", err)
	}
	return path
}

// ScenarioRows is the mixed input used across the pipeline tests: a
// duplicate key, a non-numeric value, a blank code and a negative average
func ScenarioRows() [][]interface{} {
	return [][]interface{}{
		{"A1", 5},
		{"A1", 999},
		{"B2", "bad"},
		{nil, 4},
		{"C3", -12.5},
	}
}

// BuildReferenceRepository returns a memory repository seeded with
// code/value pairs given as strings
func BuildReferenceRepository(pairs map[string]string) *memory.ReferenceRepository {
	repo := memory.NewReferenceRepository(len(pairs))

	records := make([]entities.ReferenceRecord, 0, len(pairs))
	for code, value := range pairs {
		records = append(records, entities.ReferenceRecord{
			ItemCode:   entities.ItemCode(code),
			AvgConsume: decimal.RequireFromString(value),
		})
	}

	if err := repo.AppendAll(context.Background(), records); err != nil {
		panic(err)
	}
	return repo
}
