package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type cellPos struct{ row, col int }

// tableMatrix accumulates the cells of one table and draws it as a grid
// table once complete.
type tableMatrix struct {
	rows     [][]string
	curRow   int
	colspan  map[cellPos]int
	rowspan  map[cellPos]int
	reserved map[cellPos]bool // slots covered by a rowspan from above
}

func newTableMatrix() *tableMatrix {
	return &tableMatrix{
		colspan:  make(map[cellPos]int),
		rowspan:  make(map[cellPos]int),
		reserved: make(map[cellPos]bool),
	}
}

func (t *tableMatrix) ensureRow(r int) {
	for len(t.rows) <= r {
		t.rows = append(t.rows, nil)
	}
}

func (t *tableMatrix) startRow() {
	t.ensureRow(t.curRow)
}

func (t *tableMatrix) endRow() {
	t.fillReserved(t.curRow)
	t.curRow++
}

// fillReserved appends placeholders for rowspan slots at the end of row r.
func (t *tableMatrix) fillReserved(r int) {
	for t.reserved[cellPos{r, len(t.rows[r])}] {
		t.rows[r] = append(t.rows[r], "")
	}
}

// addCell places text in the next free slot of the current row. Spanning
// cells reserve the slots they cover with empty placeholders.
func (t *tableMatrix) addCell(text string, moreCols, moreRows int) {
	r := t.curRow
	t.ensureRow(r)
	t.fillReserved(r)
	col := len(t.rows[r])
	t.rows[r] = append(t.rows[r], text)

	span := 1 + moreCols
	if moreCols > 0 {
		t.colspan[cellPos{r, col}] = span
		for i := 0; i < moreCols; i++ {
			t.rows[r] = append(t.rows[r], "")
		}
	}
	if moreRows > 0 {
		for j := 0; j < span; j++ {
			t.rowspan[cellPos{r, col + j}] = 1 + moreRows
		}
		for i := 1; i <= moreRows; i++ {
			for j := 0; j < span; j++ {
				t.reserved[cellPos{r + i, col + j}] = true
			}
			if moreCols > 0 {
				t.colspan[cellPos{r + i, col}] = span
			}
		}
	}
}

// finish materializes rows that exist only because a rowspan reaches
// into them, then pads short rows so every row has the same column count.
func (t *tableMatrix) finish() {
	last := len(t.rows) - 1
	for pos := range t.reserved {
		if pos.row > last {
			last = pos.row
		}
	}
	t.ensureRow(last)
	cols := 0
	for r := range t.rows {
		t.fillReserved(r)
		cols = max(cols, len(t.rows[r]))
	}
	for r := range t.rows {
		for len(t.rows[r]) < cols {
			t.rows[r] = append(t.rows[r], "")
		}
	}
}

// columnWidths is 2 plus the widest cell text in each column.
func (t *tableMatrix) columnWidths() []int {
	cols := 0
	for _, row := range t.rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	widths := make([]int, cols)
	for _, row := range t.rows {
		for c, text := range row {
			if w := runewidth.StringWidth(text) + 2; w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

// inRowspan reports whether column x of row y is a continuation of a cell
// that started in an earlier row.
func (t *tableMatrix) inRowspan(y, x int) bool {
	span, start := 0, 0
	for i := 0; i < y; i++ {
		if v, ok := t.rowspan[cellPos{i, x}]; ok {
			span, start = v, i
		}
	}
	return span-(y-start) > 0
}

// render draws the grid, one string per output line.
func (t *tableMatrix) render() []string {
	t.finish()
	if len(t.rows) == 0 {
		return nil
	}
	widths := t.columnWidths()
	total := sum(widths) + len(widths) + 1

	lines := make([]string, 0, 2*len(t.rows)+1)
	for y, row := range t.rows {
		lines = append(lines, t.border(y, widths, total, true))
		var b strings.Builder
		for x := 0; x < len(row); x++ {
			b.WriteString(t.cell(y, x, widths[x]))
			if k, ok := t.colspan[cellPos{y, x}]; ok {
				end := x + k
				if end > len(widths) {
					end = len(widths)
				}
				b.WriteString(strings.Repeat(" ", sum(widths[x+1:end])+k-1))
				x += k - 1
			}
		}
		b.WriteString("|")
		lines = append(lines, b.String())
	}
	lines = append(lines, t.border(len(t.rows), widths, total, false))
	return lines
}

func (t *tableMatrix) cell(y, x, width int) string {
	if t.inRowspan(y, x) {
		return "|" + strings.Repeat(" ", width)
	}
	text := t.rows[y][x]
	pad := width - runewidth.StringWidth(text) - 2
	if pad < 0 {
		pad = 0
	}
	return "| " + text + " " + strings.Repeat(" ", pad)
}

// border draws the horizontal rule above row y. With spans set, the fill
// under a continuing rowspan is left blank.
func (t *tableMatrix) border(y int, widths []int, total int, spans bool) string {
	var b strings.Builder
	next, col := 0, 0
	for i := 0; i < total; i++ {
		corner := i == next || i == total-1
		switch {
		case spans && !corner && t.inRowspan(y, col-1):
			b.WriteByte(' ')
		case corner:
			b.WriteByte('+')
			if col != len(widths) {
				next += widths[col] + 1
				col++
			}
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
