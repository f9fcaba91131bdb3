package spreadsheet

import (
	"io"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/bizdash/import-service/internal/application/importing"
)

// TemplateWriter renders the downloadable import template: a styled header
// row followed by one example row.
type TemplateWriter struct{}

func NewTemplateWriter() *TemplateWriter {
	return &TemplateWriter{}
}

func (w *TemplateWriter) WriteTemplate(out io.Writer, sheet string, columns []importing.Column) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}

	headers := make([]any, len(columns))
	examples := make([]any, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
		examples[i] = col.Example
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return errors.Wrap(err, "write header")
	}
	if err := f.SetSheetRow(sheet, "A2", &examples); err != nil {
		return errors.Wrap(err, "write example row")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return errors.Wrap(err, "create header style")
	}

	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return errors.Wrap(err, "resolve last column")
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return errors.Wrap(err, "style header")
	}

	for i, col := range columns {
		if col.Width <= 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return errors.Wrap(err, "resolve column")
		}
		if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return errors.Wrapf(err, "set width of column %s", name)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errors.Wrap(err, "freeze header")
	}

	if _, err := f.WriteTo(out); err != nil {
		return errors.Wrap(err, "write template")
	}
	return nil
}
