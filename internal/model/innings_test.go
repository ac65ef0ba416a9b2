package model

import (
	"math"
	"testing"
)

func TestInningsRoundTrip(t *testing.T) {
	// Every legal notation value {X.0, X.1, X.2} must survive the round trip exactly.
	for whole := 0; whole <= 70; whole++ {
		for outs := 0; outs <= 2; outs++ {
			notation := float64(whole) + float64(outs)/10
			dec := InningsFromNotation(notation)
			back := InningsToNotation(dec)
			if math.Abs(back-notation) > 1e-9 {
				t.Fatalf("round trip %v -> %v -> %v", notation, dec, back)
			}
		}
	}
}

func TestInningsFromNotation(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{4.0, 4.0},
		{4.1, 4 + 1.0/3},
		{4.2, 4 + 2.0/3},
		{-1.2, 0},
		{6.3, 6 + 2.0/3}, // illegal out digit clamps to 2
	}
	for _, c := range cases {
		if got := InningsFromNotation(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("InningsFromNotation(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInningsToNotationRoundsToNearestOut(t *testing.T) {
	// 5.66 decimal is closest to 5 innings 2 outs.
	if got := InningsToNotation(5.66); math.Abs(got-5.2) > 1e-9 {
		t.Errorf("InningsToNotation(5.66) = %v, want 5.2", got)
	}
}

func TestParseClass(t *testing.T) {
	if ParseClass(" so ") != ClassSophomore {
		t.Error("expected trimmed 'so' to parse as Sophomore")
	}
	if ParseClass("redshirt") != ClassUnknown {
		t.Error("expected unrecognized label to parse as Unknown")
	}
}

func TestClassNext(t *testing.T) {
	if ClassJunior.Next() != ClassSenior {
		t.Error("Junior should advance to Senior")
	}
	if ClassSenior.Next() != ClassUnknown {
		t.Error("Senior should graduate to Unknown")
	}
}

func TestIdentityKeyNormalization(t *testing.T) {
	a := MakeIdentityKey(" J. Smith ", "Rocky Mountain")
	b := MakeIdentityKey("j. smith", "rocky mountain ")
	if a != b {
		t.Errorf("expected normalized keys to match: %v vs %v", a, b)
	}
}
