package device

import (
	"math"

	"github.com/schemix/circuitsim/pkg/matrix"
)

// Capacitor is an open circuit at DC, an admittance jwC in AC, and a
// Backward-Euler companion (geq = C/dt with a history current source) in
// transient. vPrev is the branch voltage of the previous accepted step;
// zero before the first step.
type Capacitor struct {
	BaseDevice
	Capacitance float64
	vPrev       float64
}

var _ TimeDependent = (*Capacitor)(nil)

func NewCapacitor(name string, n1, n2 int, capacitance float64) *Capacitor {
	return &Capacitor{
		BaseDevice:  BaseDevice{name: name, nodes: []int{n1, n2}},
		Capacitance: capacitance,
	}
}

func (c *Capacitor) Stamp(m matrix.DeviceMatrix, status *CircuitStatus) error {
	n1, n2 := c.nodes[0], c.nodes[1]

	switch status.Mode {
	case ACAnalysis:
		omega := 2 * math.Pi * status.Frequency
		stampAdmittance(m, n1, n2, 0, omega*c.Capacitance)

	case TransientAnalysis:
		geq := c.Capacitance / status.TimeStep
		ieq := geq * c.vPrev
		stampConductance(m, n1, n2, geq)
		if n1 != 0 {
			m.AddRHS(n1, ieq)
		}
		if n2 != 0 {
			m.AddRHS(n2, -ieq)
		}
	}
	// Open at the DC operating point.
	return nil
}

func (c *Capacitor) UpdateState(solution []float64) {
	v1, v2 := 0.0, 0.0
	if c.nodes[0] != 0 {
		v1 = solution[c.nodes[0]]
	}
	if c.nodes[1] != 0 {
		v2 = solution[c.nodes[1]]
	}
	c.vPrev = v1 - v2
}
