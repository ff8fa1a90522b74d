package render

import (
	"io"
	"strings"

	"github.com/rodaine/table"
)

// PrintTable writes the board to w as an aligned text table.
func PrintTable(w io.Writer, instructions []RenderInstruction) {
	headers := make([]interface{}, len(Headers))
	for i, h := range Headers {
		headers[i] = h
	}
	tbl := table.New(headers...).WithWriter(w)

	for _, row := range Apply(nil, instructions) {
		vals := make([]interface{}, 0, len(row))
		for _, cell := range row {
			vals = append(vals, cellText(cell))
		}
		tbl.AddRow(vals...)
	}

	tbl.Print()
}

func cellText(c Cell) string {
	if c.Column != ColumnSubsequent {
		return c.Text
	}
	if len(c.Items) == 0 {
		return "-"
	}
	return strings.Join(c.Items, "; ")
}
