// Package analysis implements the three solvers: DC operating point, AC
// frequency sweep, and transient time stepping. Each analysis is single-use:
// Setup builds a fresh node map and system layout from the snapshot, Execute
// runs to completion or fails with a typed error, and the result accessors
// are only valid after a nil Execute error.
package analysis

import (
	"errors"
	"math"

	"github.com/schemix/circuitsim/internal/consts"
	"github.com/schemix/circuitsim/pkg/schematic"
)

var (
	// ErrConvergence reports a Newton-Raphson run that exhausted its
	// iteration budget without meeting tolerance.
	ErrConvergence = errors.New("analysis: failed to converge")

	// ErrInvalidInput reports malformed analysis parameters.
	ErrInvalidInput = errors.New("analysis: invalid analysis parameters")

	// ErrUnsupported reports a component the requested analysis cannot
	// handle, such as a diode in an AC or transient run.
	ErrUnsupported = errors.New("analysis: unsupported component")
)

// Analysis is one solver run over one topology snapshot.
type Analysis interface {
	Setup(snap *schematic.Snapshot) error
	Execute() error
}

// BaseAnalysis carries the convergence options shared by the solvers.
// Zero-valued fields fall back to the engine defaults.
type BaseAnalysis struct {
	Tolerance float64 // Newton-Raphson max |dx| criterion
	MaxIter   int     // Newton-Raphson iteration budget
}

func NewBaseAnalysis() BaseAnalysis {
	return BaseAnalysis{
		Tolerance: consts.DefaultTolerance,
		MaxIter:   consts.DefaultMaxIter,
	}
}

// converged reports max |new - old| < tolerance over the 1-based vectors.
func (a *BaseAnalysis) converged(oldSol, newSol []float64) bool {
	if len(oldSol) != len(newSol) {
		return false
	}
	for i := 1; i < len(newSol); i++ {
		if math.Abs(newSol[i]-oldSol[i]) >= a.Tolerance {
			return false
		}
	}
	return true
}

// logspace returns n log-spaced points from start to stop inclusive.
func logspace(start, stop float64, n int) []float64 {
	points := make([]float64, n)
	if n == 1 {
		points[0] = start
		return points
	}
	logStart := math.Log10(start)
	logStop := math.Log10(stop)
	step := (logStop - logStart) / float64(n-1)
	for i := range points {
		points[i] = math.Pow(10, logStart+float64(i)*step)
	}
	return points
}
