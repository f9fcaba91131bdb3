package spreadsheet

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/bizdash/import-service/internal/application/importing"
)

// Reader decodes the first worksheet of an xlsx workbook, or a csv file,
// into raw rows. The header row is dropped and rows with a blank first cell
// are skipped.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) ReadRows(ctx context.Context, fileName string, src io.Reader) ([]importing.RawRow, error) {
	var (
		rows []importing.RawRow
		err  error
	)
	if strings.EqualFold(filepath.Ext(fileName), ".csv") {
		rows, err = readCSV(src)
	} else {
		rows, err = readWorkbook(src)
	}
	if err != nil {
		return nil, &importing.ParseError{File: fileName, Err: err}
	}
	return rows, nil
}

func readWorkbook(src io.Reader) ([]importing.RawRow, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.Wrap(err, "open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := sheets[0]

	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %s", sheet)
	}

	out := make([]importing.RawRow, 0, len(cells))
	for i := importing.HeaderRows; i < len(cells); i++ {
		record := cells[i]
		if blankRecord(record) {
			continue
		}
		row := make(importing.RawRow, len(record))
		for col, value := range record {
			row[col] = cellValue(f, sheet, col+1, i+1, value)
		}
		out = append(out, row)
	}
	return out, nil
}

// cellValue keeps text cells as strings and turns everything else that
// parses as a number into float64, so date serials reach the normalizer as
// numbers.
func cellValue(f *excelize.File, sheet string, col, row int, raw string) any {
	if raw == "" {
		return nil
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	kind, err := f.GetCellType(sheet, name)
	if err != nil {
		return raw
	}
	switch kind {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeBool, excelize.CellTypeError:
		return raw
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return n
	}
	return raw
}

func readCSV(src io.Reader) ([]importing.RawRow, error) {
	br := stripUTF8BOM(bufio.NewReader(src))
	r := csv.NewReader(br)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}

	out := make([]importing.RawRow, 0, len(records))
	for i := importing.HeaderRows; i < len(records); i++ {
		record := records[i]
		if blankRecord(record) {
			continue
		}
		row := make(importing.RawRow, len(record))
		for col, value := range record {
			if value != "" {
				row[col] = value
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// blankRecord reports a row with no content in any cell. A row that only
// lacks its first column is kept so the validator can report it.
func blankRecord(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}
