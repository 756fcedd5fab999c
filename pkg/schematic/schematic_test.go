package schematic

import "testing"

func TestKindTerminalCount(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Resistor, 2},
		{Capacitor, 2},
		{Inductor, 2},
		{VoltageSource, 2},
		{Diode, 2},
		{Ground, 1},
		{VoltageProbe, 1},
	}
	for _, tt := range tests {
		if got := tt.kind.TerminalCount(); got != tt.want {
			t.Errorf("%s terminal count = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestKindByName(t *testing.T) {
	for _, name := range []string{"Resistor", "Capacitor", "Inductor", "VoltageSource", "Diode", "Ground", "VoltageProbe"} {
		kind, ok := KindByName(name)
		if !ok {
			t.Errorf("KindByName(%q) not found", name)
			continue
		}
		if kind.String() != name {
			t.Errorf("KindByName(%q).String() = %q", name, kind.String())
		}
	}
	if _, ok := KindByName("Transistor"); ok {
		t.Error("KindByName should reject unknown names")
	}
}

func TestNewComponentDefaults(t *testing.T) {
	r := NewComponent(Resistor, "R1")
	if r.Value != 1000 {
		t.Errorf("resistor default = %g, want 1000", r.Value)
	}
	v := NewComponent(VoltageSource, "V1")
	if v.Value != 9 || v.ACMag != 1 || v.ACPhase != 0 {
		t.Errorf("source defaults = (%g, %g, %g), want (9, 1, 0)", v.Value, v.ACMag, v.ACPhase)
	}
	d := NewComponent(Diode, "D1")
	if d.Is != 1e-14 || d.Vt != 0.02585 {
		t.Errorf("diode defaults = (%g, %g), want (1e-14, 0.02585)", d.Is, d.Vt)
	}
}

func TestConnectAndValidate(t *testing.T) {
	s := &Snapshot{}
	s.Add(NewComponent(VoltageSource, "V1"))
	s.Add(NewComponent(Resistor, "R1"))
	s.Add(NewComponent(Ground, "GND"))

	if err := s.Connect("V1", 1, "R1", 0); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := s.Connect("R1", 1, "GND", 0); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(s.Wires) != 2 {
		t.Errorf("wire count = %d, want 2", len(s.Wires))
	}
}

func TestConnectRejectsBadRefs(t *testing.T) {
	s := &Snapshot{}
	s.Add(NewComponent(Resistor, "R1"))

	if err := s.Connect("R9", 0, "R1", 0); err == nil {
		t.Error("Connect should reject an unknown component id")
	}
	if err := s.Connect("R1", 2, "R1", 0); err == nil {
		t.Error("Connect should reject an out-of-range terminal slot")
	}
}

func TestValidateRejectsDuplicateIDs(t *testing.T) {
	s := &Snapshot{}
	s.Add(NewComponent(Resistor, "R1"))
	s.Add(NewComponent(Resistor, "R1"))
	if err := s.Validate(); err == nil {
		t.Error("Validate should reject duplicate ids")
	}
}

func TestValidateRejectsNonPositiveValues(t *testing.T) {
	for _, kind := range []Kind{Resistor, Capacitor, Inductor} {
		s := &Snapshot{}
		c := NewComponent(kind, "X1")
		c.Value = 0
		s.Add(c)
		if err := s.Validate(); err == nil {
			t.Errorf("Validate should reject zero-valued %s", kind)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := &Snapshot{}
	s.Add(NewComponent(Resistor, "R1"))
	s.Add(NewComponent(Ground, "GND"))
	if err := s.Connect("R1", 1, "GND", 0); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	clone := s.Clone()
	clone.Components[0].Value = 42
	clone.Wires[0].A.Slot = 0

	if s.Components[0].Value == 42 {
		t.Error("clone shares component storage with the original")
	}
	if s.Wires[0].A.Slot == 0 {
		t.Error("clone shares wire storage with the original")
	}
}

func TestCount(t *testing.T) {
	s := &Snapshot{}
	s.Add(NewComponent(Resistor, "R1"))
	s.Add(NewComponent(Resistor, "R2"))
	s.Add(NewComponent(Ground, "GND"))
	if got := s.Count(Resistor); got != 2 {
		t.Errorf("Count(Resistor) = %d, want 2", got)
	}
	if got := s.Count(Diode); got != 0 {
		t.Errorf("Count(Diode) = %d, want 0", got)
	}
}
