package spectra

import "fmt"

// COO is a coordinate-format sparse accumulator used as the intermediate
// representation of the 2D and 3D aggregators. Duplicate coordinates are
// allowed and sum on densification, which is what makes it usable as a
// histogram accumulator: memory scales with the number of stored samples,
// not with rows*cols.
type COO struct {
	rows, cols int
	r, c       []int
	v          []float64
}

// NewCOO creates an empty rows x cols coordinate accumulator.
func NewCOO(rows, cols int) (*COO, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("spectra: COO dimensions must be positive, got %dx%d", rows, cols)
	}
	return &COO{rows: rows, cols: cols}, nil
}

// Dims returns the logical matrix dimensions.
func (m *COO) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// NNZ returns the number of stored entries, counting duplicates.
func (m *COO) NNZ() int {
	return len(m.v)
}

// Add stores value v at (row, col). Coordinates outside the matrix are
// rejected; duplicates accumulate.
func (m *COO) Add(row, col int, v float64) error {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return fmt.Errorf("spectra: COO coordinate (%d,%d) outside %dx%d", row, col, m.rows, m.cols)
	}
	m.r = append(m.r, row)
	m.c = append(m.c, col)
	m.v = append(m.v, v)
	return nil
}

// Dense sums all entries into a fresh [row][col] array.
func (m *COO) Dense() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
	}
	for i, v := range m.v {
		out[m.r[i]][m.c[i]] += v
	}
	return out
}

// SumRows collapses the row axis, returning per-column totals. This stays
// in sparse form and never materialises the dense matrix.
func (m *COO) SumRows() []float64 {
	out := make([]float64, m.cols)
	for i, v := range m.v {
		out[m.c[i]] += v
	}
	return out
}
