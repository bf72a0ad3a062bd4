package table

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/labelmint/labelmint/pkg/errors"
)

// ReadFile loads a tabular file, dispatching on the extension:
// .txt and .tsv are read tab-delimited, .csv comma-delimited, and
// .xlsx/.xlsm as spreadsheets (first sheet).
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".tsv":
		return ReadDelimited(f, '\t')
	case ".csv":
		return ReadDelimited(f, ',')
	case ".xlsx", ".xlsm":
		return ReadXLSX(f)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported file type: %s", filepath.Ext(path))
	}
}

// ReadDelimited parses delimited text into a Table. The first record is the
// header; header names are whitespace-trimmed. Blank cells become null.
func ReadDelimited(r io.Reader, comma rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // settlement reports pad unevenly

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read delimited input")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeParse, "input has no header row")
	}

	return fromRecords(records), nil
}

// ReadXLSX parses the first sheet of a spreadsheet into a Table.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "open spreadsheet")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New(errors.ErrCodeParse, "spreadsheet has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read sheet %s", sheets[0])
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeParse, "sheet %s has no header row", sheets[0])
	}

	return fromRecords(records), nil
}

// fromRecords builds a Table from raw string records. The header row is
// trimmed and rows shorter than the header are padded with nulls.
func fromRecords(records [][]string) *Table {
	header := records[0]
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(cols))
		for i, col := range cols {
			if col == "" {
				continue
			}
			if i >= len(rec) || strings.TrimSpace(rec[i]) == "" {
				row[col] = nil
				continue
			}
			row[col] = rec[i]
		}
		rows = append(rows, row)
	}

	return &Table{Columns: cols, Rows: rows}
}
