package device

import (
	"fmt"
	"math"

	"github.com/schemix/circuitsim/internal/consts"
	"github.com/schemix/circuitsim/pkg/matrix"
)

// Diode uses the exponential junction model Id = Is*(exp(vd/Vt) - 1). It is
// only valid at the DC operating point, where each Newton-Raphson iteration
// stamps the companion: conductance gd = (Is/Vt)*exp(vd/Vt) plus the current
// injection Ieq = Id - gd*vd, both evaluated at the latest guess voltage.
// Node order: anode first, cathode second.
type Diode struct {
	BaseDevice
	Is float64 // saturation current (A)
	Vt float64 // thermal voltage (V)

	vd float64 // linearization point, anode minus cathode
}

var _ Nonlinear = (*Diode)(nil)

func NewDiode(name string, nAnode, nCathode int, is, vt float64) *Diode {
	return &Diode{
		BaseDevice: BaseDevice{name: name, nodes: []int{nAnode, nCathode}},
		Is:         is,
		Vt:         vt,
	}
}

// companion evaluates the exponential model at the current guess. The
// exponent argument is limited so the first iterations of a stiff circuit
// cannot overflow the matrix; the limited model still drives Newton-Raphson
// to the same solution.
func (d *Diode) companion() (id, gd float64) {
	arg := d.vd / d.Vt
	if arg > consts.MaxExpArg {
		arg = consts.MaxExpArg
	}
	evd := math.Exp(arg)
	id = d.Is * (evd - 1.0)
	gd = (d.Is / d.Vt) * evd
	return id, gd
}

func (d *Diode) Stamp(m matrix.DeviceMatrix, status *CircuitStatus) error {
	if status.Mode != OperatingPointAnalysis {
		return fmt.Errorf("diode %s: only supported in DC analysis", d.Name())
	}

	nAnode, nCathode := d.nodes[0], d.nodes[1]
	id, gd := d.companion()
	ieq := id - gd*d.vd

	stampConductance(m, nAnode, nCathode, gd)
	if nAnode != 0 {
		m.AddRHS(nAnode, -ieq)
	}
	if nCathode != 0 {
		m.AddRHS(nCathode, ieq)
	}
	return nil
}

// UpdateVoltages moves the linearization point to the latest solution.
func (d *Diode) UpdateVoltages(solution []float64) error {
	v1, v2 := 0.0, 0.0
	if d.nodes[0] != 0 {
		v1 = solution[d.nodes[0]]
	}
	if d.nodes[1] != 0 {
		v2 = solution[d.nodes[1]]
	}
	d.vd = v1 - v2
	return nil
}

// Voltage returns the solved forward voltage after convergence.
func (d *Diode) Voltage() float64 { return d.vd }
