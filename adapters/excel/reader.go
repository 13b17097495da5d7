package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gofit/internal/errors"
	"gofit/internal/gof"

	"github.com/op/go-logging"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is read from workbooks unless another sheet is chosen.
const DefaultSheet = "Sheet1"

// DataReader reads sample columns from Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	log      *logging.Logger
}

// NewDataReader creates a reader; files ending in .csv are read as CSV,
// anything else as an Excel workbook.
func NewDataReader(filePath string, log *logging.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType, sheet: DefaultSheet, log: log}
}

// WithSheet selects the workbook sheet to read.
func (r *DataReader) WithSheet(sheet string) *DataReader {
	if sheet != "" {
		r.sheet = sheet
	}
	return r
}

// ReadTable reads the header row and data rows of the file.
func (r *DataReader) ReadTable() (*Table, error) {
	r.log.Debugf("reading %s file %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.InvalidInput(fmt.Sprintf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath))
	}

	var (
		rows [][]string
		err  error
	)
	start := time.Now()
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}
	r.log.Debugf("%s read in %.2fms (%d rows)", r.filePath, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s file must have a header row and at least one data row", strings.ToUpper(r.fileType)))
	}
	return processRows(rows), nil
}

// ReadColumn reads the named column (the first one when column is empty) as
// sample values. Blank cells are skipped; any other non-numeric cell is an
// input error naming its row.
func (r *DataReader) ReadColumn(column string) ([]float64, error) {
	table, err := r.ReadTable()
	if err != nil {
		return nil, err
	}
	idx := table.Column(column)
	if idx < 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("column %q not found in %s", column, r.filePath))
	}

	var values []float64
	for i, row := range table.Rows {
		if idx >= len(row) || row[idx] == "" {
			continue
		}
		v, err := gof.ParseValue(row[idx])
		if err != nil {
			// Data rows start on line 2.
			return nil, errors.Wrapf(err, "%s row %d", r.filePath, i+2)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, errors.InvalidInput(fmt.Sprintf("column %q of %s holds no values", table.Headers[idx], r.filePath))
	}

	r.log.Infof("read %d values from column %q of %s", len(values), table.Headers[idx], r.filePath)
	return values, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to open Excel file")
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, errors.Wrapf(errors.InvalidInput(err.Error()), "failed to read sheet %s", r.sheet)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to read CSV file")
	}
	return rows, nil
}

// processRows trims every cell and splits off the header row
func processRows(rows [][]string) *Table {
	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.TrimSpace(cell)
		}
		data = append(data, cells)
	}
	return &Table{Headers: headers, Rows: data}
}
