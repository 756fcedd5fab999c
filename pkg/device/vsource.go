package device

import (
	"math"

	"github.com/schemix/circuitsim/pkg/matrix"
)

// VoltageSource is an ideal source with one branch-current unknown in every
// formulation. Node order follows the schematic symbol: negative terminal
// first, positive terminal second. DC and transient use the DC level; AC
// uses the mag/phase phasor excitation.
type VoltageSource struct {
	BaseDevice
	DCValue   float64
	ACMag     float64
	ACPhase   float64 // degrees
	branchIdx int
}

var _ Branch = (*VoltageSource)(nil)

func NewVoltageSource(name string, nNeg, nPos int, dcValue, acMag, acPhase float64) *VoltageSource {
	return &VoltageSource{
		BaseDevice: BaseDevice{name: name, nodes: []int{nNeg, nPos}},
		DCValue:    dcValue,
		ACMag:      acMag,
		ACPhase:    acPhase,
	}
}

func (v *VoltageSource) Stamp(m matrix.DeviceMatrix, status *CircuitStatus) error {
	nNeg, nPos := v.nodes[0], v.nodes[1]
	bIdx := v.branchIdx

	if status.Mode == ACAnalysis {
		if nPos != 0 {
			m.AddComplexElement(nPos, bIdx, 1, 0)
			m.AddComplexElement(bIdx, nPos, 1, 0)
		}
		if nNeg != 0 {
			m.AddComplexElement(nNeg, bIdx, -1, 0)
			m.AddComplexElement(bIdx, nNeg, -1, 0)
		}
		phase := v.ACPhase * math.Pi / 180.0
		m.AddComplexRHS(bIdx, v.ACMag*math.Cos(phase), v.ACMag*math.Sin(phase))
		return nil
	}

	// v(pos) - v(neg) = V
	if nPos != 0 {
		m.AddElement(nPos, bIdx, 1)
		m.AddElement(bIdx, nPos, 1)
	}
	if nNeg != 0 {
		m.AddElement(nNeg, bIdx, -1)
		m.AddElement(bIdx, nNeg, -1)
	}
	m.AddRHS(bIdx, v.DCValue)
	return nil
}

func (v *VoltageSource) BranchIndex() int { return v.branchIdx }

func (v *VoltageSource) SetBranchIndex(idx int) { v.branchIdx = idx }
