package schematic

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// The persisted schematic is a JSON array. Component entries carry
// type/id/pos/rotation/properties; wire entries carry two
// [componentId, terminalIndex] endpoints. Property names come from the
// desktop editor: "value", "ac_mag", "ac_phase", "Is", "Vt".

type jsonEntry struct {
	Type       string         `json:"type"`
	ID         string         `json:"id,omitempty"`
	Pos        []float64      `json:"pos,omitempty"`
	Rotation   float64        `json:"rotation,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Start      *jsonEndpoint  `json:"start,omitempty"`
	End        *jsonEndpoint  `json:"end,omitempty"`
}

// jsonEndpoint marshals as the ["R1", 0] pair the editor writes.
type jsonEndpoint struct {
	ComponentID string
	Slot        int
}

func (e *jsonEndpoint) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("schematic: wire endpoint needs [id, terminal], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.ComponentID); err != nil {
		return fmt.Errorf("schematic: wire endpoint id: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Slot); err != nil {
		return fmt.Errorf("schematic: wire endpoint terminal: %w", err)
	}
	return nil
}

func (e jsonEndpoint) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.ComponentID, e.Slot})
}

// Decode reads the persisted schematic format into a Snapshot. Wires may
// appear before the components they reference; they are resolved after all
// components are loaded, matching the editor's two-pass load.
func Decode(r io.Reader) (*Snapshot, error) {
	var entries []jsonEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("schematic: decoding: %w", err)
	}

	snap := &Snapshot{}
	var wires []jsonEntry
	for _, entry := range entries {
		if entry.Type == "Wire" {
			wires = append(wires, entry)
			continue
		}
		kind, ok := KindByName(entry.Type)
		if !ok {
			return nil, fmt.Errorf("schematic: unknown component type %q", entry.Type)
		}
		c := NewComponent(kind, entry.ID)
		if len(entry.Pos) == 2 {
			c.Pos = [2]float64{entry.Pos[0], entry.Pos[1]}
		}
		c.Rotation = entry.Rotation
		applyProperties(&c, entry.Properties)
		snap.Add(c)
	}

	for i, w := range wires {
		if w.Start == nil || w.End == nil {
			return nil, fmt.Errorf("schematic: wire %d missing start or end", i)
		}
		if err := snap.Connect(w.Start.ComponentID, w.Start.Slot, w.End.ComponentID, w.End.Slot); err != nil {
			return nil, err
		}
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Load reads a schematic file.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schematic: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes the Snapshot back out in the persisted format.
func (s *Snapshot) Encode(w io.Writer) error {
	entries := make([]jsonEntry, 0, len(s.Components)+len(s.Wires))
	for i := range s.Components {
		c := &s.Components[i]
		entries = append(entries, jsonEntry{
			Type:       c.Kind.String(),
			ID:         c.ID,
			Pos:        []float64{c.Pos[0], c.Pos[1]},
			Rotation:   c.Rotation,
			Properties: componentProperties(c),
		})
	}
	for _, wire := range s.Wires {
		entries = append(entries, jsonEntry{
			Type:  "Wire",
			Start: &jsonEndpoint{ComponentID: s.Components[wire.A.Component].ID, Slot: wire.A.Slot},
			End:   &jsonEndpoint{ComponentID: s.Components[wire.B.Component].ID, Slot: wire.B.Slot},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("schematic: encoding: %w", err)
	}
	return nil
}

func applyProperties(c *Component, props map[string]any) {
	num := func(key string) (float64, bool) {
		v, ok := props[key]
		if !ok {
			return 0, false
		}
		f, ok := v.(float64)
		return f, ok
	}

	if v, ok := num("value"); ok {
		c.Value = v
	}
	if v, ok := num("ac_mag"); ok {
		c.ACMag = v
	}
	if v, ok := num("ac_phase"); ok {
		c.ACPhase = v
	}
	if v, ok := num("Is"); ok {
		c.Is = v
	}
	if v, ok := num("Vt"); ok {
		c.Vt = v
	}
}

func componentProperties(c *Component) map[string]any {
	props := map[string]any{"value": c.Value}
	switch c.Kind {
	case VoltageSource:
		props["ac_mag"] = c.ACMag
		props["ac_phase"] = c.ACPhase
	case Diode:
		props["Is"] = c.Is
		props["Vt"] = c.Vt
	}
	return props
}
