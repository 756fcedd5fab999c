package analysis

import (
	"testing"

	"github.com/schemix/circuitsim/pkg/schematic"
)

func mustConnect(t *testing.T, s *schematic.Snapshot, idA string, slotA int, idB string, slotB int) {
	t.Helper()
	if err := s.Connect(idA, slotA, idB, slotB); err != nil {
		t.Fatalf("Connect(%s.%d, %s.%d): %v", idA, slotA, idB, slotB, err)
	}
}

// dividerSnapshot wires a source driving two series resistors to ground,
// with a probe on the midpoint.
func dividerSnapshot(t *testing.T, vdc, r1, r2 float64) *schematic.Snapshot {
	t.Helper()
	s := &schematic.Snapshot{}

	v := schematic.NewComponent(schematic.VoltageSource, "V1")
	v.Value = vdc
	s.Add(v)

	ra := schematic.NewComponent(schematic.Resistor, "R1")
	ra.Value = r1
	s.Add(ra)

	rb := schematic.NewComponent(schematic.Resistor, "R2")
	rb.Value = r2
	s.Add(rb)

	s.Add(schematic.NewComponent(schematic.Ground, "GND"))
	s.Add(schematic.NewComponent(schematic.VoltageProbe, "P1"))

	mustConnect(t, s, "V1", 1, "R1", 0)
	mustConnect(t, s, "R1", 1, "R2", 0)
	mustConnect(t, s, "R2", 1, "GND", 0)
	mustConnect(t, s, "V1", 0, "GND", 0)
	mustConnect(t, s, "P1", 0, "R1", 1)
	return s
}

// rcSnapshot wires a source through a resistor into a grounded capacitor,
// with a probe across the capacitor.
func rcSnapshot(t *testing.T, vdc, r, c float64) *schematic.Snapshot {
	t.Helper()
	s := &schematic.Snapshot{}

	v := schematic.NewComponent(schematic.VoltageSource, "V1")
	v.Value = vdc
	s.Add(v)

	res := schematic.NewComponent(schematic.Resistor, "R1")
	res.Value = r
	s.Add(res)

	capc := schematic.NewComponent(schematic.Capacitor, "C1")
	capc.Value = c
	s.Add(capc)

	s.Add(schematic.NewComponent(schematic.Ground, "GND"))
	s.Add(schematic.NewComponent(schematic.VoltageProbe, "P1"))

	mustConnect(t, s, "V1", 1, "R1", 0)
	mustConnect(t, s, "R1", 1, "C1", 0)
	mustConnect(t, s, "C1", 1, "GND", 0)
	mustConnect(t, s, "V1", 0, "GND", 0)
	mustConnect(t, s, "P1", 0, "C1", 0)
	return s
}

// diodeSnapshot wires a source through a series resistor into a grounded
// diode.
func diodeSnapshot(t *testing.T, vdc, r float64) *schematic.Snapshot {
	t.Helper()
	s := &schematic.Snapshot{}

	v := schematic.NewComponent(schematic.VoltageSource, "V1")
	v.Value = vdc
	s.Add(v)

	res := schematic.NewComponent(schematic.Resistor, "R1")
	res.Value = r
	s.Add(res)

	s.Add(schematic.NewComponent(schematic.Diode, "D1"))
	s.Add(schematic.NewComponent(schematic.Ground, "GND"))

	mustConnect(t, s, "V1", 1, "R1", 0)
	mustConnect(t, s, "R1", 1, "D1", 0)
	mustConnect(t, s, "D1", 1, "GND", 0)
	mustConnect(t, s, "V1", 0, "GND", 0)
	return s
}

func probeVoltage(t *testing.T, op *OperatingPoint, id string, slot int) float64 {
	t.Helper()
	ref, err := op.Circuit().Snapshot().Terminal(id, slot)
	if err != nil {
		t.Fatalf("Terminal(%s, %d): %v", id, slot, err)
	}
	return op.VoltageAt(ref)
}
