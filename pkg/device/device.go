// Package device implements the per-component MNA stamps. Each component
// kind is a struct owning its stamp arithmetic; the solvers never inspect
// component types, they just run the stamp loop and use the capability
// interfaces below.
package device

import (
	"github.com/schemix/circuitsim/pkg/matrix"
)

// AnalysisMode selects which stamp a device contributes.
type AnalysisMode int

const (
	OperatingPointAnalysis AnalysisMode = iota
	ACAnalysis
	TransientAnalysis
)

// CircuitStatus carries the analysis point to the stamps.
type CircuitStatus struct {
	Mode      AnalysisMode
	Time      float64 // transient: current time
	TimeStep  float64 // transient: fixed step
	Frequency float64 // AC: current frequency (Hz)
}

// Device is a stamped circuit element.
type Device interface {
	Name() string
	Nodes() []int
	Stamp(m matrix.DeviceMatrix, status *CircuitStatus) error
}

// Nonlinear devices are re-linearized around the latest solution between
// Newton-Raphson iterations.
type Nonlinear interface {
	Device
	UpdateVoltages(solution []float64) error
}

// TimeDependent devices carry history between transient steps. UpdateState
// is called once per accepted step with the 1-based solution vector.
type TimeDependent interface {
	Device
	UpdateState(solution []float64)
}

// Branch devices own an auxiliary branch-current unknown beyond the node
// rows: voltage sources always, inductors in the transient formulation.
type Branch interface {
	Device
	BranchIndex() int
	SetBranchIndex(idx int)
}

// BaseDevice holds what every element shares: a name and its mapped node
// ids (0 = ground).
type BaseDevice struct {
	name  string
	nodes []int
}

func (d *BaseDevice) Name() string { return d.name }

func (d *BaseDevice) Nodes() []int { return d.nodes }

// stampConductance adds the symmetric conductance pattern between two nodes,
// skipping ground terms.
func stampConductance(m matrix.DeviceMatrix, n1, n2 int, g float64) {
	if n1 != 0 {
		m.AddElement(n1, n1, g)
		if n2 != 0 {
			m.AddElement(n1, n2, -g)
		}
	}
	if n2 != 0 {
		m.AddElement(n2, n2, g)
		if n1 != 0 {
			m.AddElement(n2, n1, -g)
		}
	}
}

// stampAdmittance is the complex-mode counterpart of stampConductance.
func stampAdmittance(m matrix.DeviceMatrix, n1, n2 int, re, im float64) {
	if n1 != 0 {
		m.AddComplexElement(n1, n1, re, im)
		if n2 != 0 {
			m.AddComplexElement(n1, n2, -re, -im)
		}
	}
	if n2 != 0 {
		m.AddComplexElement(n2, n2, re, im)
		if n1 != 0 {
			m.AddComplexElement(n2, n1, -re, -im)
		}
	}
}
