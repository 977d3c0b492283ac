package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pgtadash/domain/table"
	"pgtadash/internal/logging"

	"github.com/xuri/excelize/v2"
)

// Reader handles reading Excel and CSV files into a table.Table
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string // Excel worksheet name; "" selects the first sheet
	log      *logging.Logger
}

// NewReader creates a reader that handles both Excel and CSV files
func NewReader(filePath, sheet string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType, sheet: sheet, log: logging.Default}
}

// Read reads the source file into a table
func (r *Reader) Read() (*table.Table, error) {
	r.log.Debug("[Reader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

// readExcel reads the configured worksheet (first sheet by default)
func (r *Reader) readExcel() (*table.Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, fmt.Errorf("Excel file has no worksheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	r.log.Debug("[Reader] sheet %q read in %.2fms (%d rows)", sheet,
		float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 1 {
		return nil, fmt.Errorf("Excel sheet %q must have at least a header row", sheet)
	}

	return r.buildTable(rows)
}

// readCSV reads CSV data
func (r *Reader) readCSV() (*table.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}

	if len(rows) < 1 {
		return nil, fmt.Errorf("CSV file must have at least a header row")
	}

	return r.buildTable(rows)
}

// buildTable converts raw string rows into a table, trimming headers and cells
func (r *Reader) buildTable(rows [][]string) (*table.Table, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]table.Row, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(table.Row, len(headers))

		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}

		dataRows = append(dataRows, rowData)
	}

	r.log.Debug("[Reader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &table.Table{Columns: headers, Rows: dataRows}, nil
}
