// Package render converts display rows into backend-neutral table
// instructions and provides the HTML and terminal backends.
package render

import "bus-arrival-server/models"

// Op is a table mutation.
type Op string

const (
	OpClearRows Op = "clear_rows"
	OpInsertRow Op = "insert_row"
)

// Column identifies a board column.
type Column string

const (
	ColumnNumber      Column = "number"
	ColumnOperator    Column = "operator"
	ColumnDestination Column = "destination"
	ColumnNext        Column = "next"
	ColumnSubsequent  Column = "subsequent"
)

// Headers are the column titles in display order.
var Headers = []string{"Bus Number", "Operator", "Destination Stop Code", "Next Arrival", "Subsequent Arrivals"}

// Cell is one table cell. Items is set only for the subsequent arrivals list.
type Cell struct {
	Column Column   `json:"column"`
	Text   string   `json:"text"`
	Items  []string `json:"items,omitempty"`
}

// RenderInstruction is one step a rendering backend applies in order.
type RenderInstruction struct {
	Op    Op     `json:"op"`
	Cells []Cell `json:"cells,omitempty"`
}

// RenderRows clears the data rows and then inserts one row per display row.
func RenderRows(rows []models.DisplayRow) []RenderInstruction {
	out := make([]RenderInstruction, 0, len(rows)+1)
	out = append(out, RenderInstruction{Op: OpClearRows})
	for _, row := range rows {
		items := make([]string, 0, len(row.Subsequent))
		for _, s := range row.Subsequent {
			items = append(items, s.Text)
		}
		out = append(out, RenderInstruction{
			Op: OpInsertRow,
			Cells: []Cell{
				{Column: ColumnNumber, Text: row.Number},
				{Column: ColumnOperator, Text: row.Operator},
				{Column: ColumnDestination, Text: row.DestinationCode},
				{Column: ColumnNext, Text: row.NextDisplay},
				{Column: ColumnSubsequent, Items: items},
			},
		})
	}
	return out
}

// Apply replays instructions onto an existing set of table rows.
func Apply(rows [][]Cell, instructions []RenderInstruction) [][]Cell {
	for _, in := range instructions {
		switch in.Op {
		case OpClearRows:
			rows = rows[:0]
		case OpInsertRow:
			rows = append(rows, in.Cells)
		}
	}
	return rows
}
