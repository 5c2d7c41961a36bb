package scene

import (
	"strings"
	"testing"
)

const sampleMTL = `
# a comment
newmtl red_plastic
Ka 0.1 0.0 0.0
Kd 0.8 0.1 0.1
Ks 0.5 0.5 0.5
Ns 96.0
d 1.0
Ni 1.45

newmtl glowing
Ke 2.0 2.0 1.5
map_Kd -o 0 0 textures/glow.png
`

func TestParseMTLFields(t *testing.T) {
	mats, err := ParseMTL(strings.NewReader(sampleMTL))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	if len(mats) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(mats))
	}

	red := mats["red_plastic"]
	if red == nil {
		t.Fatalf("missing red_plastic")
	}
	if red.Kd != [3]float64{0.8, 0.1, 0.1} {
		t.Errorf("got Kd %v, want [0.8 0.1 0.1]", red.Kd)
	}
	if red.Ns != 96.0 {
		t.Errorf("got Ns %v, want 96", red.Ns)
	}
	if red.Ni != 1.45 {
		t.Errorf("got Ni %v, want 1.45", red.Ni)
	}

	glow := mats["glowing"]
	if glow == nil {
		t.Fatalf("missing glowing")
	}
	if glow.Ke != [3]float64{2.0, 2.0, 1.5} {
		t.Errorf("got Ke %v, want [2 2 1.5]", glow.Ke)
	}
	if glow.MapKd != "textures/glow.png" {
		t.Errorf("got MapKd %q, want to tolerate -o option flags and return the trailing path", glow.MapKd)
	}
}

func TestParseMTLIgnoresDirectivesBeforeNewmtl(t *testing.T) {
	src := "Kd 1 1 1\nnewmtl only\nKd 0.5 0.5 0.5\n"
	mats, err := ParseMTL(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	if len(mats) != 1 {
		t.Fatalf("expected 1 material, got %d", len(mats))
	}
	if mats["only"].Kd != [3]float64{0.5, 0.5, 0.5} {
		t.Errorf("got %v, want [0.5 0.5 0.5]", mats["only"].Kd)
	}
}

func TestParseMTLRejectsMalformedScalar(t *testing.T) {
	src := "newmtl bad\nNs not-a-number\n"
	if _, err := ParseMTL(strings.NewReader(src)); err == nil {
		t.Errorf("expected an error for a non-numeric Ns value")
	}
}

func TestParseMTLHandlesFileWithNoTrailingNewline(t *testing.T) {
	src := "newmtl solo\nKd 0.3 0.3 0.3"
	mats, err := ParseMTL(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	if mats["solo"].Kd != [3]float64{0.3, 0.3, 0.3} {
		t.Errorf("final unterminated line must still be scanned, got %v", mats["solo"].Kd)
	}
}
