package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/schemix/circuitsim/pkg/circuit"
	"github.com/schemix/circuitsim/pkg/device"
	"github.com/schemix/circuitsim/pkg/matrix"
	"github.com/schemix/circuitsim/pkg/schematic"
)

// TransientAnalysis steps the circuit with a fixed step and Backward-Euler
// companions for capacitors and inductors. Steps are strictly sequential:
// each one is assembled from the previous step's committed device history,
// starting cold from zero initial conditions. A singular system at any step
// aborts the run with the failing timestamp and discards everything.
type TransientAnalysis struct {
	BaseAnalysis
	ckt   *circuit.Circuit
	tStop float64
	tStep float64

	times  []float64
	result *mat.Dense // system size x len(times), valid after Execute
}

func NewTransient(tStop, tStep float64) *TransientAnalysis {
	return &TransientAnalysis{
		BaseAnalysis: NewBaseAnalysis(),
		tStop:        tStop,
		tStep:        tStep,
	}
}

func (tr *TransientAnalysis) Setup(snap *schematic.Snapshot) error {
	if tr.tStop <= 0 {
		return fmt.Errorf("%w: stop time %g must be positive", ErrInvalidInput, tr.tStop)
	}
	if tr.tStep <= 0 {
		return fmt.Errorf("%w: time step %g must be positive", ErrInvalidInput, tr.tStep)
	}
	if n := snap.Count(schematic.Diode); n > 0 {
		return fmt.Errorf("%w: %d diode(s) in a transient circuit", ErrUnsupported, n)
	}

	ckt, err := circuit.Build(snap, circuit.Transient)
	if err != nil {
		return err
	}
	tr.ckt = ckt
	return nil
}

func (tr *TransientAnalysis) Execute() error {
	if tr.ckt == nil {
		return fmt.Errorf("%w: analysis not set up", ErrInvalidInput)
	}
	size := tr.ckt.Size()
	if size == 0 {
		return fmt.Errorf("%w: circuit has no unknowns", ErrInvalidInput)
	}

	sys, err := matrix.New(size, false)
	if err != nil {
		return err
	}
	defer sys.Destroy()
	sys.SetupElements()

	times := timePoints(tr.tStop, tr.tStep)
	result := mat.NewDense(size, len(times), nil)

	for step, t := range times {
		sys.Clear()
		status := &device.CircuitStatus{
			Mode:     device.TransientAnalysis,
			Time:     t,
			TimeStep: tr.tStep,
		}
		if err := tr.ckt.Stamp(sys, status); err != nil {
			return err
		}
		if err := sys.Solve(); err != nil {
			return fmt.Errorf("transient analysis at t=%.4gs: %w", t, err)
		}

		solution := sys.Solution()
		for i := 1; i <= size; i++ {
			result.Set(i-1, step, solution[i])
		}
		tr.ckt.UpdateState(solution)
	}

	tr.times = times
	tr.result = result
	return nil
}

// timePoints returns 0, dt, 2dt, ... strictly below tStop.
func timePoints(tStop, tStep float64) []float64 {
	n := int(math.Ceil(tStop/tStep - 1e-9))
	if n < 1 {
		n = 1
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * tStep
	}
	return times
}

// Times returns the simulated time points, valid after Execute.
func (tr *TransientAnalysis) Times() []float64 { return tr.times }

// Result returns the step-by-step solutions, one column per time point;
// rows are node ids 1..n, then voltage-source branch currents, then
// inductor branch currents.
func (tr *TransientAnalysis) Result() *mat.Dense { return tr.result }

// ProbeSeries returns the voltage trace at the named VoltageProbe. A probe
// wired to ground reads zero everywhere.
func (tr *TransientAnalysis) ProbeSeries(probeID string) ([]float64, error) {
	node, err := probeNode(tr.ckt, probeID)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(tr.times))
	if node == 0 {
		return out, nil
	}
	mat.Row(out, node-1, tr.result)
	return out, nil
}

// ProbeTraces collects every probe's voltage series for multi-trace plots.
func (tr *TransientAnalysis) ProbeTraces() map[string][]float64 {
	out := make(map[string][]float64, len(tr.ckt.Probes()))
	for _, p := range tr.ckt.Probes() {
		series, err := tr.ProbeSeries(p.ID)
		if err != nil {
			continue
		}
		out[p.ID] = series
	}
	return out
}

// Probes lists the snapshot's voltage probes bound to their nodes.
func (tr *TransientAnalysis) Probes() []circuit.Probe { return tr.ckt.Probes() }
