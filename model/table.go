package model

import (
	"fmt"
	"strings"
)

// Cell represents a single cell of a parsed table grid. Cells are produced
// by an upstream layout parser and are immutable once the owning table has
// been built.
type Cell struct {
	Text string

	// Row and Col are the 0-indexed start offsets of the cell.
	Row int
	Col int

	// RowSpan and ColSpan support merged cells. A span of 1 means the cell
	// occupies a single grid position.
	RowSpan int
	ColSpan int

	// IsRowHeader marks cells that act as headers for their row (typically
	// column 0). IsColHeader marks cells in header rows at the top of the
	// table.
	IsRowHeader bool
	IsColHeader bool
}

// Table represents one table of cells as delivered by the layout parser,
// plus its position in the source document. The grid index is built during
// construction; after that the table is read-only.
type Table struct {
	Cells   []Cell
	Page    int    // 1-indexed page number
	Index   int    // table index within the document
	Caption string // optional caption text, may be empty

	numRows int
	numCols int
	grid    [][]*Cell
}

// NewTable creates an empty table with the given dimensions. Cells are added
// with AddCell; spanning cells occupy every grid position they cover.
func NewTable(page, index, rows, cols int) *Table {
	t := &Table{
		Page:    page,
		Index:   index,
		numRows: rows,
		numCols: cols,
		grid:    make([][]*Cell, rows),
	}
	for i := range t.grid {
		t.grid[i] = make([]*Cell, cols)
	}
	return t
}

// NewTableFromRows builds a table from a slice of cell texts. The table is
// sized to the widest row, so ragged input keeps every cell; short rows
// leave trailing positions empty. The first headerRows rows are flagged as
// column headers and column 0 of every data row is flagged as a row header.
// This is the common shape produced by grid-based layout parsers.
func NewTableFromRows(page, index int, rows [][]string, headerRows int) *Table {
	numRows := len(rows)
	numCols := 0
	for _, row := range rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}
	t := NewTable(page, index, numRows, numCols)
	for r, row := range rows {
		for c, text := range row {
			t.AddCell(Cell{
				Text:        text,
				Row:         r,
				Col:         c,
				RowSpan:     1,
				ColSpan:     1,
				IsColHeader: r < headerRows,
				IsRowHeader: r >= headerRows && c == 0,
			})
		}
	}
	return t
}

// AddCell adds a cell to the table and indexes it into the grid. Spanning
// cells are indexed at every position they cover. Returns an error if the
// cell lies outside the table bounds.
func (t *Table) AddCell(c Cell) error {
	if c.RowSpan < 1 {
		c.RowSpan = 1
	}
	if c.ColSpan < 1 {
		c.ColSpan = 1
	}
	if c.Row < 0 || c.Row+c.RowSpan > t.numRows {
		return fmt.Errorf("cell row %d (span %d) out of bounds", c.Row, c.RowSpan)
	}
	if c.Col < 0 || c.Col+c.ColSpan > t.numCols {
		return fmt.Errorf("cell col %d (span %d) out of bounds", c.Col, c.ColSpan)
	}
	t.Cells = append(t.Cells, c)
	stored := &t.Cells[len(t.Cells)-1]
	for r := c.Row; r < c.Row+c.RowSpan; r++ {
		for col := c.Col; col < c.Col+c.ColSpan; col++ {
			t.grid[r][col] = stored
		}
	}
	return nil
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return t.numRows
}

// ColCount returns the number of columns.
func (t *Table) ColCount() int {
	return t.numCols
}

// At returns the cell covering the given grid position, or nil if the
// position is out of bounds or empty. Spanning cells are returned for every
// position they cover.
func (t *Table) At(row, col int) *Cell {
	if row < 0 || row >= t.numRows || col < 0 || col >= t.numCols {
		return nil
	}
	return t.grid[row][col]
}

// TextAt returns the trimmed text at the given position, or "" for empty
// positions.
func (t *Table) TextAt(row, col int) string {
	c := t.At(row, col)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text)
}

// HeaderRowCount returns the number of leading rows flagged as column
// headers. Counting stops at the first row with no header-flagged cell, so
// header rows buried below data rows are not counted.
func (t *Table) HeaderRowCount() int {
	count := 0
	for r := 0; r < t.numRows; r++ {
		if !t.IsHeaderRow(r) {
			break
		}
		count++
	}
	return count
}

// IsHeaderRow reports whether any cell in the row carries the column-header
// flag.
func (t *Table) IsHeaderRow(row int) bool {
	if row < 0 || row >= t.numRows {
		return false
	}
	for c := 0; c < t.numCols; c++ {
		if cell := t.grid[row][c]; cell != nil && cell.IsColHeader {
			return true
		}
	}
	return false
}

// AspectRatio returns rows divided by columns. Wide tables (few rows, many
// columns) score below 1; tall tables score above 1.
func (t *Table) AspectRatio() float64 {
	if t.numCols == 0 {
		return 0
	}
	return float64(t.numRows) / float64(t.numCols)
}

// GetText returns the table content as tab-separated rows, primarily for
// debugging and log output.
func (t *Table) GetText() string {
	var sb strings.Builder
	for r := 0; r < t.numRows; r++ {
		for c := 0; c < t.numCols; c++ {
			sb.WriteString(t.TextAt(r, c))
			if c < t.numCols-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
