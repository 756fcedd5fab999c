package analysis

import (
	"fmt"

	"github.com/schemix/circuitsim/pkg/circuit"
	"github.com/schemix/circuitsim/pkg/device"
	"github.com/schemix/circuitsim/pkg/matrix"
	"github.com/schemix/circuitsim/pkg/schematic"
)

// OperatingPoint solves the DC operating point. Linear circuits solve in a
// single pass; circuits with diodes run fixed-point Newton-Raphson,
// re-stamping the linearized system around the latest solution until the
// largest solution change drops below tolerance.
type OperatingPoint struct {
	BaseAnalysis
	ckt        *circuit.Circuit
	solution   []float64 // 1-based, valid after Execute
	iterations int
}

func NewOP() *OperatingPoint {
	return &OperatingPoint{BaseAnalysis: NewBaseAnalysis()}
}

func (op *OperatingPoint) Setup(snap *schematic.Snapshot) error {
	ckt, err := circuit.Build(snap, circuit.Static)
	if err != nil {
		return err
	}
	op.ckt = ckt
	return nil
}

func (op *OperatingPoint) Execute() error {
	if op.ckt == nil {
		return fmt.Errorf("%w: analysis not set up", ErrInvalidInput)
	}
	if op.ckt.Size() == 0 {
		return fmt.Errorf("%w: circuit has no unknowns", ErrInvalidInput)
	}

	mat, err := matrix.New(op.ckt.Size(), false)
	if err != nil {
		return err
	}
	defer mat.Destroy()
	mat.SetupElements()

	status := &device.CircuitStatus{Mode: device.OperatingPointAnalysis}

	// Linear fast path: no diodes, one solve.
	if !op.ckt.HasNonlinear() {
		if err := op.ckt.Stamp(mat, status); err != nil {
			return err
		}
		if err := mat.Solve(); err != nil {
			return fmt.Errorf("dc analysis: %w", err)
		}
		op.storeSolution(mat.Solution())
		op.iterations = 1
		return nil
	}

	var oldSolution []float64
	for iter := 0; iter < op.MaxIter; iter++ {
		mat.Clear()

		// The first iteration linearizes around zero.
		if iter > 0 {
			if err := op.ckt.UpdateNonlinearVoltages(oldSolution); err != nil {
				return err
			}
		}

		if err := op.ckt.Stamp(mat, status); err != nil {
			return err
		}
		if err := mat.Solve(); err != nil {
			return fmt.Errorf("dc analysis: %w", err)
		}

		solution := mat.Solution()
		if iter > 0 && op.converged(oldSolution, solution) {
			// Final linearization point so device reporting matches
			// the returned solution.
			if err := op.ckt.UpdateNonlinearVoltages(solution); err != nil {
				return err
			}
			op.storeSolution(solution)
			op.iterations = iter + 1
			return nil
		}

		if oldSolution == nil {
			oldSolution = make([]float64, len(solution))
		}
		copy(oldSolution, solution)
	}

	return fmt.Errorf("dc analysis: %w in %d iterations", ErrConvergence, op.MaxIter)
}

func (op *OperatingPoint) storeSolution(solution []float64) {
	op.solution = make([]float64, len(solution))
	copy(op.solution, solution)
}

// Iterations reports how many Newton-Raphson passes the run took.
func (op *OperatingPoint) Iterations() int { return op.iterations }

// Solution returns the solved vector indexed 0-based: node id minus one for
// the node rows, then one entry per voltage source branch current.
func (op *OperatingPoint) Solution() []float64 {
	if op.solution == nil {
		return nil
	}
	out := make([]float64, len(op.solution)-1)
	copy(out, op.solution[1:])
	return out
}

// VoltageAt returns the solved voltage of a terminal; ground terminals and
// unknown refs read 0.
func (op *OperatingPoint) VoltageAt(ref schematic.TerminalRef) float64 {
	node, ok := op.ckt.Node(ref)
	if !ok || node == 0 || op.solution == nil || node >= len(op.solution) {
		return 0
	}
	return op.solution[node]
}

// TerminalVoltages maps every terminal to its solved voltage, for schematic
// annotation.
func (op *OperatingPoint) TerminalVoltages() map[schematic.TerminalRef]float64 {
	out := make(map[schematic.TerminalRef]float64, len(op.ckt.NodeMap()))
	for ref := range op.ckt.NodeMap() {
		out[ref] = op.VoltageAt(ref)
	}
	return out
}

// Circuit exposes the run's node mapping for callers that annotate results.
func (op *OperatingPoint) Circuit() *circuit.Circuit { return op.ckt }
