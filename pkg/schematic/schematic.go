// Package schematic holds the topology snapshot the analysis engine consumes:
// components, their terminals, and the wires joining terminals. The snapshot
// is plain indexed data with no back-references, so a caller can copy it and
// hand the copy to a solver while continuing to edit the original.
package schematic

import (
	"fmt"

	"github.com/schemix/circuitsim/internal/consts"
)

// Kind identifies a component type. The set is closed; every solver switches
// over it exhaustively.
type Kind int

const (
	Resistor Kind = iota
	Capacitor
	Inductor
	VoltageSource
	Diode
	Ground
	VoltageProbe
)

var kindNames = map[Kind]string{
	Resistor:      "Resistor",
	Capacitor:     "Capacitor",
	Inductor:      "Inductor",
	VoltageSource: "VoltageSource",
	Diode:         "Diode",
	Ground:        "Ground",
	VoltageProbe:  "VoltageProbe",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindByName maps the persisted type string back to a Kind.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// TerminalCount returns the fixed number of terminals for the kind.
// Two-terminal devices list them in symbol order: for a VoltageSource
// terminal 0 is the negative pin and terminal 1 the positive pin; for a
// Diode terminal 0 is the anode and terminal 1 the cathode.
func (k Kind) TerminalCount() int {
	switch k {
	case Ground, VoltageProbe:
		return 1
	default:
		return 2
	}
}

// Component is one placed schematic part. Only the parameters matching its
// kind are meaningful: Value is resistance, capacitance, inductance, or the
// source DC level; ACMag/ACPhase apply to sources; Is/Vt to diodes. Pos and
// Rotation belong to the editor and ride along untouched.
type Component struct {
	Kind     Kind
	ID       string
	Value    float64
	ACMag    float64
	ACPhase  float64 // degrees
	Is       float64
	Vt       float64
	Pos      [2]float64
	Rotation float64
}

// TerminalRef addresses one terminal as (component index, terminal slot).
type TerminalRef struct {
	Component int
	Slot      int
}

// Wire joins two terminals. Undirected.
type Wire struct {
	A, B TerminalRef
}

// Snapshot is the full topology at the moment an analysis is invoked.
// Component order is significant: node ids and branch indices are assigned
// in slice order, so an unchanged snapshot always maps identically.
type Snapshot struct {
	Components []Component
	Wires      []Wire
}

// NewComponent fills in the per-kind parameter defaults of the desktop
// editor, so a snapshot built in code behaves like one drawn on screen.
func NewComponent(kind Kind, id string) Component {
	c := Component{Kind: kind, ID: id}
	switch kind {
	case Resistor:
		c.Value = 1000
	case Capacitor:
		c.Value = 1e-6
	case Inductor:
		c.Value = 1e-3
	case VoltageSource:
		c.Value = 9
		c.ACMag = 1
	case Diode:
		c.Is = consts.DefaultDiodeIs
		c.Vt = consts.DefaultDiodeVt
	}
	return c
}

// Add appends a component and returns its index.
func (s *Snapshot) Add(c Component) int {
	s.Components = append(s.Components, c)
	return len(s.Components) - 1
}

// Find returns the index of the component with the given ID.
func (s *Snapshot) Find(id string) (int, bool) {
	for i := range s.Components {
		if s.Components[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// Terminal resolves an (ID, slot) pair into a TerminalRef.
func (s *Snapshot) Terminal(id string, slot int) (TerminalRef, error) {
	idx, ok := s.Find(id)
	if !ok {
		return TerminalRef{}, fmt.Errorf("schematic: no component %q", id)
	}
	if slot < 0 || slot >= s.Components[idx].Kind.TerminalCount() {
		return TerminalRef{}, fmt.Errorf("schematic: component %q has no terminal %d", id, slot)
	}
	return TerminalRef{Component: idx, Slot: slot}, nil
}

// Connect wires terminal slotA of component idA to slotB of idB.
func (s *Snapshot) Connect(idA string, slotA int, idB string, slotB int) error {
	a, err := s.Terminal(idA, slotA)
	if err != nil {
		return err
	}
	b, err := s.Terminal(idB, slotB)
	if err != nil {
		return err
	}
	s.Wires = append(s.Wires, Wire{A: a, B: b})
	return nil
}

// Validate checks structural consistency: unique non-empty IDs, wire
// endpoints in range, and positive element values where the stamps divide
// by them.
func (s *Snapshot) Validate() error {
	seen := make(map[string]bool, len(s.Components))
	for i, c := range s.Components {
		if c.ID == "" {
			return fmt.Errorf("schematic: component %d has empty id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("schematic: duplicate component id %q", c.ID)
		}
		seen[c.ID] = true

		switch c.Kind {
		case Resistor, Capacitor, Inductor:
			if c.Value <= 0 {
				return fmt.Errorf("schematic: %s %q requires a positive value, got %g", c.Kind, c.ID, c.Value)
			}
		case Diode:
			if c.Is <= 0 || c.Vt <= 0 {
				return fmt.Errorf("schematic: diode %q requires positive Is and Vt", c.ID)
			}
		}
	}
	for i, w := range s.Wires {
		for _, ref := range [2]TerminalRef{w.A, w.B} {
			if ref.Component < 0 || ref.Component >= len(s.Components) {
				return fmt.Errorf("schematic: wire %d references component %d out of range", i, ref.Component)
			}
			if ref.Slot < 0 || ref.Slot >= s.Components[ref.Component].Kind.TerminalCount() {
				return fmt.Errorf("schematic: wire %d references terminal %d of %q out of range",
					i, ref.Slot, s.Components[ref.Component].ID)
			}
		}
	}
	return nil
}

// Count returns the number of components of the given kind.
func (s *Snapshot) Count(kind Kind) int {
	n := 0
	for i := range s.Components {
		if s.Components[i].Kind == kind {
			n++
		}
	}
	return n
}

// Clone returns an independent deep copy, for freezing a snapshot before
// handing it to a solver.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Components: make([]Component, len(s.Components)),
		Wires:      make([]Wire, len(s.Wires)),
	}
	copy(out.Components, s.Components)
	copy(out.Wires, s.Wires)
	return out
}
