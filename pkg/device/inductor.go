package device

import (
	"math"

	"github.com/schemix/circuitsim/internal/consts"
	"github.com/schemix/circuitsim/pkg/matrix"
)

// Inductor stamps an admittance 1/(jwL) in AC (a near-short when omega is
// zero) and a Backward-Euler branch-current formulation in transient, where
// it owns one auxiliary unknown. It contributes nothing at the DC operating
// point.
type Inductor struct {
	BaseDevice
	Inductance float64
	branchIdx  int
	iPrev      float64
}

var (
	_ TimeDependent = (*Inductor)(nil)
	_ Branch        = (*Inductor)(nil)
)

func NewInductor(name string, n1, n2 int, inductance float64) *Inductor {
	return &Inductor{
		BaseDevice: BaseDevice{name: name, nodes: []int{n1, n2}},
		Inductance: inductance,
	}
}

func (l *Inductor) Stamp(m matrix.DeviceMatrix, status *CircuitStatus) error {
	n1, n2 := l.nodes[0], l.nodes[1]

	switch status.Mode {
	case ACAnalysis:
		omega := 2 * math.Pi * status.Frequency
		if omega > 0 {
			// y = 1/(jwL) = -j/(wL)
			stampAdmittance(m, n1, n2, 0, -1.0/(omega*l.Inductance))
		} else {
			stampAdmittance(m, n1, n2, consts.ShortAdmittance, 0)
		}

	case TransientAnalysis:
		// Branch relation: v(n1) - v(n2) - (L/dt)*i = -(L/dt)*iPrev
		bIdx := l.branchIdx
		if n1 != 0 {
			m.AddElement(n1, bIdx, 1)
			m.AddElement(bIdx, n1, 1)
		}
		if n2 != 0 {
			m.AddElement(n2, bIdx, -1)
			m.AddElement(bIdx, n2, -1)
		}
		coeff := l.Inductance / status.TimeStep
		m.AddElement(bIdx, bIdx, -coeff)
		m.AddRHS(bIdx, -coeff*l.iPrev)
	}
	return nil
}

func (l *Inductor) UpdateState(solution []float64) {
	if l.branchIdx > 0 && l.branchIdx < len(solution) {
		l.iPrev = solution[l.branchIdx]
	}
}

func (l *Inductor) BranchIndex() int { return l.branchIdx }

func (l *Inductor) SetBranchIndex(idx int) { l.branchIdx = idx }
