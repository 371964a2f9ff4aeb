package workbook

import (
	"slices"

	"github.com/xuri/excelize/v2"
)

// tableStyle is the built-in style applied to every sheet table.
const tableStyle = "TableStyleMedium2"

// styles are the cell styles registered in a workbook.
type styles struct {
	header int
	wrap   int
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return styles{}, err
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return styles{}, err
	}
	return styles{header: header, wrap: wrap}, nil
}

// format sizes the columns of v, wraps long text columns and turns the
// sheet into a table. Empty sheets get a blank data row so the table is valid.
func (s styles) format(f *excelize.File, v view, widths []int, rows int) error {
	last, err := excelize.ColumnNumberToName(len(v.columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(v.name, "A1", last+"1", s.header); err != nil {
		return err
	}

	for i, c := range v.columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(min(max(widths[i]+2, minWidth), maxWidth))
		if slices.Contains(wrapped, c.header) {
			width = wideWidth
			if rows > 0 {
				top, _ := excelize.CoordinatesToCellName(i+1, 2)
				bottom, _ := excelize.CoordinatesToCellName(i+1, rows+1)
				if err := f.SetCellStyle(v.name, top, bottom, s.wrap); err != nil {
					return err
				}
			}
		}
		if err := f.SetColWidth(v.name, name, name, width); err != nil {
			return err
		}
	}

	stripes := true
	end, err := excelize.CoordinatesToCellName(len(v.columns), max(rows+1, 2))
	if err != nil {
		return err
	}
	return f.AddTable(v.name, &excelize.Table{
		Range:          "A1:" + end,
		Name:           tableName(v.name),
		StyleName:      tableStyle,
		ShowRowStripes: &stripes,
	})
}
