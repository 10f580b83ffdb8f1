package seq

import "fmt"

// CellError reports a coordinate pair outside a matrix's bounds.
type CellError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *CellError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("seq: cell (%d, %d) outside %dx%d matrix", e.Row, e.Col, e.Rows, e.Cols)
}

// Matrix is a dense row-major grid addressed by (row, col) coordinates.
type Matrix[E any] struct {
	rows, cols int
	cells      []E
}

// NewMatrix allocates a zero-filled rows x cols matrix.
func NewMatrix[E any](rows, cols int) (*Matrix[E], error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("seq: matrix dimensions must not be negative, got %dx%d", rows, cols)
	}
	return &Matrix[E]{
		rows:  rows,
		cols:  cols,
		cells: make([]E, rows*cols),
	}, nil
}

// Rows returns the row count.
func (m *Matrix[E]) Rows() int {
	if m == nil {
		return 0
	}
	return m.rows
}

// Cols returns the column count.
func (m *Matrix[E]) Cols() int {
	if m == nil {
		return 0
	}
	return m.cols
}

// At returns the element at (row, col), failing with a CellError when either
// coordinate falls outside the grid.
func (m *Matrix[E]) At(row, col int) (E, error) {
	var zero E
	if m == nil || row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return zero, &CellError{Row: row, Col: col, Rows: m.Rows(), Cols: m.Cols()}
	}
	return m.cells[row*m.cols+col], nil
}

// Set stores value at (row, col) under the same bounds rule as At.
func (m *Matrix[E]) Set(row, col int, value E) error {
	if m == nil || row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return &CellError{Row: row, Col: col, Rows: m.Rows(), Cols: m.Cols()}
	}
	m.cells[row*m.cols+col] = value
	return nil
}
