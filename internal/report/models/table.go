package reportmodels

// Cell is one tabular value. Null marks a missing value, which is how an
// empty CSV field or a column absent from one of the merged files is read.
type Cell struct {
	Value string
	Null  bool
}

func NewCell(value string) Cell {
	if value == "" {
		return Cell{Null: true}
	}
	return Cell{Value: value}
}

func NullCell() Cell {
	return Cell{Null: true}
}

// String returns the value, or an empty string for nulls.
func (c Cell) String() string {
	if c.Null {
		return ""
	}
	return c.Value
}

type Row []Cell

// Table is a report held in memory. Every row has exactly len(Header) cells.
type Table struct {
	Source string
	Header []string
	Rows   []Row
}

func (t *Table) ColumnIndex(name string) int {
	for i, column := range t.Header {
		if column == name {
			return i
		}
	}
	return -1
}

func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Get returns the cell of row at column name, or a null cell when the
// column does not exist.
func (t *Table) Get(row Row, name string) Cell {
	i := t.ColumnIndex(name)
	if i < 0 || i >= len(row) {
		return NullCell()
	}
	return row[i]
}

func (t *Table) Set(row Row, name string, cell Cell) {
	i := t.ColumnIndex(name)
	if i < 0 || i >= len(row) {
		return
	}
	row[i] = cell
}

// AddColumn appends a column filled with cell. When the column already
// exists its values are overwritten instead.
func (t *Table) AddColumn(name string, cell Cell) {
	i := t.ColumnIndex(name)
	if i >= 0 {
		for _, row := range t.Rows {
			row[i] = cell
		}
		return
	}

	t.Header = append(t.Header, name)
	for r := range t.Rows {
		t.Rows[r] = append(t.Rows[r], cell)
	}
}

func (t *Table) Len() int {
	return len(t.Rows)
}

func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Records returns the header followed by every row, nulls as empty strings.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, append([]string(nil), t.Header...))
	for _, row := range t.Rows {
		records = append(records, row.Strings())
	}
	return records
}

func (r Row) Strings() []string {
	values := make([]string, len(r))
	for i, cell := range r {
		values[i] = cell.String()
	}
	return values
}
