package plot

import (
	"bytes"
	"testing"
)

func TestBodeRendersPNG(t *testing.T) {
	freqs := []float64{1, 10, 100, 1000}
	mags := []float64{1, 0.9, 0.5, 0.1}
	p, err := Bode(freqs, mags, "lowpass")
	if err != nil {
		t.Fatalf("Bode: %v", err)
	}

	w, err := p.WriterTo(400, 300, "png")
	if err != nil {
		t.Fatalf("WriterTo: %v", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("rendered PNG is empty")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestBodeHandlesZeroMagnitude(t *testing.T) {
	// A grounded probe reads zero at every point; the dB conversion must
	// not produce infinities.
	if _, err := Bode([]float64{1, 10}, []float64{0, 0}, "flatline"); err != nil {
		t.Fatalf("Bode: %v", err)
	}
}

func TestBodeRejectsBadInput(t *testing.T) {
	if _, err := Bode([]float64{1, 2}, []float64{1}, "x"); err == nil {
		t.Error("Bode should reject mismatched lengths")
	}
	if _, err := Bode(nil, nil, "x"); err == nil {
		t.Error("Bode should reject an empty sweep")
	}
}

func TestTransientRendersPNG(t *testing.T) {
	times := []float64{0, 1e-3, 2e-3, 3e-3}
	traces := map[string][]float64{
		"P1": {0, 1, 2, 3},
		"P2": {3, 2, 1, 0},
	}
	p, err := Transient(times, traces, "step response")
	if err != nil {
		t.Fatalf("Transient: %v", err)
	}

	w, err := p.WriterTo(400, 300, "png")
	if err != nil {
		t.Fatalf("WriterTo: %v", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("rendered PNG is empty")
	}
}

func TestTransientRejectsBadInput(t *testing.T) {
	if _, err := Transient(nil, map[string][]float64{"P1": {}}, "x"); err == nil {
		t.Error("Transient should reject empty times")
	}
	if _, err := Transient([]float64{0}, nil, "x"); err == nil {
		t.Error("Transient should reject missing traces")
	}
	if _, err := Transient([]float64{0, 1}, map[string][]float64{"P1": {0}}, "x"); err == nil {
		t.Error("Transient should reject a short trace")
	}
}
