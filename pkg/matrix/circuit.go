// Package matrix assembles and solves the MNA system. It wraps the sparse
// factor/solve backend behind the 1-based stamping interface devices use;
// each analysis owns one CircuitMatrix, clears it between assembly points,
// and re-stamps.
package matrix

import (
	"errors"
	"fmt"

	"github.com/edp1096/sparse"
)

// ErrSingular reports a factor or solve failure: the assembled system is
// singular or too ill-conditioned to solve. Callers wrap it with the failing
// analysis point (frequency, time step, or "DC").
var ErrSingular = errors.New("matrix: singular matrix")

type CircuitMatrix struct {
	Size      int
	matrix    *sparse.Matrix
	rhs       []float64
	rhsImag   []float64
	solution  []float64
	isComplex bool
	config    *sparse.Configuration
}

// New creates a system of the given size (non-ground nodes plus auxiliary
// branch unknowns). Complex mode is used by the AC solver.
func New(size int, isComplex bool) (*CircuitMatrix, error) {
	if size <= 0 {
		return nil, fmt.Errorf("matrix: invalid system size %d", size)
	}

	// Translate must stay on: the first Factor reorders the matrix, and
	// re-stamping a reordered matrix needs external-to-internal index
	// translation. Without it every Clear/stamp cycle after the first
	// solve panics inside the backend.
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 isComplex,
		SeparatedComplexVectors: false,
		Expandable:              true,
		Translate:               true,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("matrix: creating %dx%d system: %w", size, size, err)
	}

	vectorSize := size + 1 // 1-based
	vectorSizeImag := size + 1
	if isComplex && !config.SeparatedComplexVectors {
		vectorSize *= 2
		vectorSizeImag = 1
	}

	return &CircuitMatrix{
		Size:      size,
		matrix:    mat,
		rhs:       make([]float64, vectorSize),
		rhsImag:   make([]float64, vectorSizeImag),
		isComplex: isComplex,
		config:    config,
	}, nil
}

// SetupElements pre-allocates every element slot so Clear/stamp cycles never
// reshuffle the internal structure between analysis points.
func (m *CircuitMatrix) SetupElements() {
	for i := 1; i <= m.Size; i++ {
		for j := 1; j <= m.Size; j++ {
			m.matrix.GetElement(int64(i), int64(j))
		}
	}
}

// AddElement accumulates into A[i,j]. Ground (index 0) and out-of-range
// indices are dropped, so device stamps can be written without row guards.
func (m *CircuitMatrix) AddElement(i, j int, value float64) {
	if i <= 0 || j <= 0 || i > m.Size || j > m.Size {
		return
	}
	m.matrix.GetElement(int64(i), int64(j)).Real += value
}

func (m *CircuitMatrix) AddComplexElement(i, j int, real, imag float64) {
	if i <= 0 || j <= 0 || i > m.Size || j > m.Size {
		return
	}
	element := m.matrix.GetElement(int64(i), int64(j))
	element.Real += real
	element.Imag += imag
}

// AddRHS accumulates into z[i].
func (m *CircuitMatrix) AddRHS(i int, value float64) {
	if i <= 0 || i > m.Size {
		return
	}
	m.rhs[i] += value
}

func (m *CircuitMatrix) AddComplexRHS(i int, real, imag float64) {
	if i <= 0 || i > m.Size {
		return
	}
	if m.config.SeparatedComplexVectors {
		m.rhs[i] += real
		m.rhsImag[i] += imag
	} else {
		m.rhs[2*i] += real
		m.rhs[2*i+1] += imag
	}
}

// Clear zeroes the matrix and RHS for the next assembly pass.
func (m *CircuitMatrix) Clear() {
	m.matrix.Clear()
	for i := range m.rhs {
		m.rhs[i] = 0
	}
	for i := range m.rhsImag {
		m.rhsImag[i] = 0
	}
}

// Solve factors and solves the assembled system. Any backend failure is
// reported as ErrSingular.
func (m *CircuitMatrix) Solve() error {
	if err := m.matrix.Factor(); err != nil {
		return fmt.Errorf("%w: factorization: %v", ErrSingular, err)
	}

	var err error
	if m.isComplex {
		m.solution, _, err = m.matrix.SolveComplex(m.rhs, m.rhsImag)
	} else {
		m.solution, err = m.matrix.Solve(m.rhs)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return nil
}

// Solution returns the real solution vector, 1-based (index 0 unused).
func (m *CircuitMatrix) Solution() []float64 {
	return m.solution
}

// ComplexSolution returns the phasor unknown at 1-based index i. The
// backend hands the complex solution back interleaved, real and imaginary
// parts at 2i and 2i+1, matching the RHS layout.
func (m *CircuitMatrix) ComplexSolution(i int) complex128 {
	if !m.isComplex || i <= 0 || i > m.Size {
		return 0
	}
	return complex(m.solution[2*i], m.solution[2*i+1])
}

// Destroy releases the backend matrix.
func (m *CircuitMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
	}
}
