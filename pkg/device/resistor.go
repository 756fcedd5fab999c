package device

import (
	"fmt"

	"github.com/schemix/circuitsim/pkg/matrix"
)

// Resistor stamps its conductance identically in every analysis; only the
// real/complex mode differs.
type Resistor struct {
	BaseDevice
	Resistance float64
}

func NewResistor(name string, n1, n2 int, resistance float64) *Resistor {
	return &Resistor{
		BaseDevice: BaseDevice{name: name, nodes: []int{n1, n2}},
		Resistance: resistance,
	}
}

func (r *Resistor) Stamp(m matrix.DeviceMatrix, status *CircuitStatus) error {
	if r.Resistance <= 0 {
		return fmt.Errorf("resistor %s: non-positive resistance %g", r.Name(), r.Resistance)
	}

	g := 1.0 / r.Resistance
	n1, n2 := r.nodes[0], r.nodes[1]

	if status.Mode == ACAnalysis {
		stampAdmittance(m, n1, n2, g, 0)
		return nil
	}
	stampConductance(m, n1, n2, g)
	return nil
}
