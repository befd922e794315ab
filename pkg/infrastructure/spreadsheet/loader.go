package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/vsinha/reorder/pkg/domain/entities"
)

// DefaultHeaderRow is the zero-based row holding column names. The first
// row of the reference workbooks is a decorative title.
const DefaultHeaderRow = 1

// Loader reads the first sheet of a spreadsheet file into a RawSheet
type Loader struct {
	headerRow int
}

// NewLoader creates a loader using the default header row
func NewLoader() *Loader {
	return &Loader{headerRow: DefaultHeaderRow}
}

// NewLoaderWithHeaderRow creates a loader reading column names from headerRow
func NewLoaderWithHeaderRow(headerRow int) (*Loader, error) {
	if headerRow < 0 {
		return nil, fmt.Errorf("header row cannot be negative, got %d", headerRow)
	}
	return &Loader{headerRow: headerRow}, nil
}

// Load reads filename, dispatching on its extension
func (l *Loader) Load(filename string) (*entities.RawSheet, error) {
	var (
		rows [][]string
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(filename)
	case ".xls":
		rows, err = readXLS(filename)
	case ".csv":
		rows, err = readCSV(filename)
	default:
		return nil, fmt.Errorf("unsupported input file type %q: %s", ext, filename)
	}
	if err != nil {
		return nil, err
	}

	return l.split(filename, rows)
}

// split separates the header row from the data rows. Rows above the
// header are ignored.
func (l *Loader) split(filename string, rows [][]string) (*entities.RawSheet, error) {
	if len(rows) <= l.headerRow {
		return nil, fmt.Errorf("%s must have a header on row %d, found %d rows", filename, l.headerRow+1, len(rows))
	}

	header := make([]string, len(rows[l.headerRow]))
	copy(header, rows[l.headerRow])

	return &entities.RawSheet{
		Columns: header,
		Rows:    rows[l.headerRow+1:],
	}, nil
}

func readXLSX(filename string) ([][]string, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filename, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", filename)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheets[0], filename, err)
	}
	return rows, nil
}

func readXLS(filename string) ([][]string, error) {
	wb, err := xls.Open(filename, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filename, err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("workbook %s has no sheets", filename)
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for c := row.FirstCol(); c < row.LastCol(); c++ {
			cells[c] = row.Col(c)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// xlsRow returns nil for a row the sheet holds no record for.
// WorkSheet.Row dereferences the missing row and panics.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func readCSV(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", filename, err)
	}
	return records, nil
}
