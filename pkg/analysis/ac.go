package analysis

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/schemix/circuitsim/pkg/circuit"
	"github.com/schemix/circuitsim/pkg/device"
	"github.com/schemix/circuitsim/pkg/matrix"
	"github.com/schemix/circuitsim/pkg/schematic"
	"github.com/schemix/circuitsim/pkg/util"
)

// ACAnalysis sweeps log-spaced frequency points, assembling and solving one
// complex phasor system per point. The sweep is all-or-nothing: a singular
// system at any frequency aborts the run reporting that frequency, and no
// partial result is kept.
type ACAnalysis struct {
	BaseAnalysis
	ckt       *circuit.Circuit
	startFreq float64
	stopFreq  float64
	numPoints int

	freqs  []float64
	result *mat.CDense // system size x numPoints, valid after Execute
}

func NewAC(startFreq, stopFreq float64, numPoints int) *ACAnalysis {
	return &ACAnalysis{
		BaseAnalysis: NewBaseAnalysis(),
		startFreq:    startFreq,
		stopFreq:     stopFreq,
		numPoints:    numPoints,
	}
}

func (ac *ACAnalysis) Setup(snap *schematic.Snapshot) error {
	if ac.startFreq <= 0 {
		return fmt.Errorf("%w: start frequency %g must be positive", ErrInvalidInput, ac.startFreq)
	}
	if ac.stopFreq < ac.startFreq {
		return fmt.Errorf("%w: stop frequency %g below start %g", ErrInvalidInput, ac.stopFreq, ac.startFreq)
	}
	if ac.numPoints < 1 {
		return fmt.Errorf("%w: need at least 1 frequency point, got %d", ErrInvalidInput, ac.numPoints)
	}
	if n := snap.Count(schematic.Diode); n > 0 {
		return fmt.Errorf("%w: %d diode(s) in an AC circuit", ErrUnsupported, n)
	}

	ckt, err := circuit.Build(snap, circuit.Static)
	if err != nil {
		return err
	}
	ac.ckt = ckt
	return nil
}

func (ac *ACAnalysis) Execute() error {
	if ac.ckt == nil {
		return fmt.Errorf("%w: analysis not set up", ErrInvalidInput)
	}
	size := ac.ckt.Size()
	if size == 0 {
		return fmt.Errorf("%w: circuit has no unknowns", ErrInvalidInput)
	}

	sys, err := matrix.New(size, true)
	if err != nil {
		return err
	}
	defer sys.Destroy()
	sys.SetupElements()

	freqs := logspace(ac.startFreq, ac.stopFreq, ac.numPoints)
	result := mat.NewCDense(size, ac.numPoints, nil)

	for col, freq := range freqs {
		sys.Clear()
		status := &device.CircuitStatus{Mode: device.ACAnalysis, Frequency: freq}
		if err := ac.ckt.Stamp(sys, status); err != nil {
			return err
		}
		if err := sys.Solve(); err != nil {
			return fmt.Errorf("ac analysis at %s: %w", util.FormatFrequency(freq), err)
		}
		for i := 1; i <= size; i++ {
			result.Set(i-1, col, sys.ComplexSolution(i))
		}
	}

	ac.freqs = freqs
	ac.result = result
	return nil
}

// Frequencies returns the swept points, valid after Execute.
func (ac *ACAnalysis) Frequencies() []float64 { return ac.freqs }

// Result returns the phasor solutions, one column per frequency; row i is
// node id i+1 for the node rows, then the voltage-source branch currents.
func (ac *ACAnalysis) Result() *mat.CDense { return ac.result }

// ProbeMagnitude returns |V| over the sweep at the named VoltageProbe. A
// probe wired to ground reads zero everywhere, matching the editor's plots.
func (ac *ACAnalysis) ProbeMagnitude(probeID string) ([]float64, error) {
	node, err := probeNode(ac.ckt, probeID)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(ac.freqs))
	if node == 0 {
		return out, nil
	}
	for col := range out {
		out[col] = cmplx.Abs(ac.result.At(node-1, col))
	}
	return out, nil
}

// Probes lists the snapshot's voltage probes bound to their nodes.
func (ac *ACAnalysis) Probes() []circuit.Probe { return ac.ckt.Probes() }

func probeNode(ckt *circuit.Circuit, probeID string) (int, error) {
	for _, p := range ckt.Probes() {
		if p.ID == probeID {
			return p.Node, nil
		}
	}
	return 0, fmt.Errorf("%w: no voltage probe %q", ErrInvalidInput, probeID)
}
