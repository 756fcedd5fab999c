// Package circuit maps a topology snapshot onto electrical nodes and builds
// the stamped device list for one analysis run. A Circuit is created fresh
// per run and discarded afterwards; nothing persists between runs, so an
// unchanged snapshot always reproduces the same node ids and system layout.
package circuit

import (
	"errors"
	"fmt"

	"github.com/schemix/circuitsim/pkg/device"
	"github.com/schemix/circuitsim/pkg/matrix"
	"github.com/schemix/circuitsim/pkg/schematic"
)

// ErrNoGround reports a snapshot without any Ground component. No matrix is
// assembled for such a circuit; every solver fails up front.
var ErrNoGround = errors.New("circuit: no ground in circuit")

// Formulation selects how energy-storage elements enter the system.
// Transient gives each inductor an auxiliary branch-current unknown; Static
// (DC and AC) does not.
type Formulation int

const (
	Static Formulation = iota
	Transient
)

// Probe is a VoltageProbe bound to its electrical node.
type Probe struct {
	ID   string
	Node int
}

type Circuit struct {
	snap      *schematic.Snapshot
	nodes     map[schematic.TerminalRef]int
	numNodes  int
	devices   []device.Device
	nonlinear []device.Nonlinear
	timeDep   []device.TimeDependent
	probes    []Probe
	size      int
}

// Build assigns node ids terminal-group by terminal-group, creates the
// stamped devices, and lays out the auxiliary branch rows. It fails with
// ErrNoGround before any of that if the snapshot has no Ground component.
func Build(snap *schematic.Snapshot, form Formulation) (*Circuit, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	if snap.Count(schematic.Ground) == 0 {
		return nil, ErrNoGround
	}

	c := &Circuit{snap: snap}
	c.buildNodeMap()
	if err := c.buildDevices(form); err != nil {
		return nil, err
	}
	return c, nil
}

// buildNodeMap walks every terminal once, flood-filling its wire-connected
// group. A group containing any Ground terminal becomes node 0; other groups
// take the next sequential id in discovery order. Terminal visit order is
// component slice order then slot order, which makes the mapping
// deterministic for a stable snapshot.
func (c *Circuit) buildNodeMap() {
	adjacency := make(map[schematic.TerminalRef][]schematic.TerminalRef)
	for _, w := range c.snap.Wires {
		adjacency[w.A] = append(adjacency[w.A], w.B)
		adjacency[w.B] = append(adjacency[w.B], w.A)
	}

	c.nodes = make(map[schematic.TerminalRef]int)
	visited := make(map[schematic.TerminalRef]bool)
	nextID := 1

	for ci := range c.snap.Components {
		for slot := 0; slot < c.snap.Components[ci].Kind.TerminalCount(); slot++ {
			start := schematic.TerminalRef{Component: ci, Slot: slot}
			if visited[start] {
				continue
			}

			var group []schematic.TerminalRef
			isGround := false
			queue := []schematic.TerminalRef{start}
			for len(queue) > 0 {
				t := queue[0]
				queue = queue[1:]
				if visited[t] {
					continue
				}
				visited[t] = true
				group = append(group, t)
				if c.snap.Components[t.Component].Kind == schematic.Ground {
					isGround = true
				}
				queue = append(queue, adjacency[t]...)
			}

			id := 0
			if !isGround {
				id = nextID
				nextID++
			}
			for _, t := range group {
				c.nodes[t] = id
			}
		}
	}
	c.numNodes = nextID - 1
}

// buildDevices turns components into stamped devices and assigns branch
// rows: voltage sources right after the node rows, then (transient only)
// inductors.
func (c *Circuit) buildDevices(form Formulation) error {
	numVsrc := c.snap.Count(schematic.VoltageSource)
	vsrcIdx := c.numNodes + 1
	indIdx := c.numNodes + numVsrc + 1

	for ci := range c.snap.Components {
		comp := &c.snap.Components[ci]
		n := make([]int, comp.Kind.TerminalCount())
		for slot := range n {
			n[slot] = c.nodes[schematic.TerminalRef{Component: ci, Slot: slot}]
		}

		switch comp.Kind {
		case schematic.Resistor:
			c.devices = append(c.devices, device.NewResistor(comp.ID, n[0], n[1], comp.Value))

		case schematic.Capacitor:
			capDev := device.NewCapacitor(comp.ID, n[0], n[1], comp.Value)
			c.devices = append(c.devices, capDev)
			c.timeDep = append(c.timeDep, capDev)

		case schematic.Inductor:
			ind := device.NewInductor(comp.ID, n[0], n[1], comp.Value)
			if form == Transient {
				ind.SetBranchIndex(indIdx)
				indIdx++
				c.timeDep = append(c.timeDep, ind)
			}
			c.devices = append(c.devices, ind)

		case schematic.VoltageSource:
			src := device.NewVoltageSource(comp.ID, n[0], n[1], comp.Value, comp.ACMag, comp.ACPhase)
			src.SetBranchIndex(vsrcIdx)
			vsrcIdx++
			c.devices = append(c.devices, src)

		case schematic.Diode:
			d := device.NewDiode(comp.ID, n[0], n[1], comp.Is, comp.Vt)
			c.devices = append(c.devices, d)
			c.nonlinear = append(c.nonlinear, d)

		case schematic.Ground:
			// Structural only; pins its group to node 0.

		case schematic.VoltageProbe:
			c.probes = append(c.probes, Probe{ID: comp.ID, Node: n[0]})

		default:
			return fmt.Errorf("circuit: unknown component kind %v", comp.Kind)
		}
	}

	c.size = c.numNodes + numVsrc
	if form == Transient {
		c.size += c.snap.Count(schematic.Inductor)
	}
	return nil
}

// Size is the number of system unknowns: non-ground nodes plus branch rows.
func (c *Circuit) Size() int { return c.size }

// NumNodes is the count of non-ground nodes.
func (c *Circuit) NumNodes() int { return c.numNodes }

// Node returns the electrical node of a terminal.
func (c *Circuit) Node(ref schematic.TerminalRef) (int, bool) {
	id, ok := c.nodes[ref]
	return id, ok
}

// NodeMap returns the full terminal-to-node mapping.
func (c *Circuit) NodeMap() map[schematic.TerminalRef]int { return c.nodes }

// Probes lists the VoltageProbe bindings in snapshot order.
func (c *Circuit) Probes() []Probe { return c.probes }

// Devices returns the stamped device list in snapshot order.
func (c *Circuit) Devices() []device.Device { return c.devices }

// HasNonlinear reports whether the circuit needs Newton-Raphson at DC.
func (c *Circuit) HasNonlinear() bool { return len(c.nonlinear) > 0 }

// Snapshot returns the topology this circuit was built from.
func (c *Circuit) Snapshot() *schematic.Snapshot { return c.snap }

// Stamp runs every device's stamp for the given analysis point.
func (c *Circuit) Stamp(m matrix.DeviceMatrix, status *device.CircuitStatus) error {
	for _, dev := range c.devices {
		if err := dev.Stamp(m, status); err != nil {
			return fmt.Errorf("circuit: stamping %s: %w", dev.Name(), err)
		}
	}
	return nil
}

// UpdateNonlinearVoltages moves every nonlinear device's linearization point
// to the given solution (1-based).
func (c *Circuit) UpdateNonlinearVoltages(solution []float64) error {
	for _, dev := range c.nonlinear {
		if err := dev.UpdateVoltages(solution); err != nil {
			return fmt.Errorf("circuit: updating %s: %w", dev.Name(), err)
		}
	}
	return nil
}

// UpdateState commits an accepted transient step into the device history.
func (c *Circuit) UpdateState(solution []float64) {
	for _, dev := range c.timeDep {
		dev.UpdateState(solution)
	}
}
