package band

import (
	"math"
	"testing"
)

func TestClassifyBoundaries(t *testing.T) {
	th := DefaultThresholds()
	cases := map[float64]Band{
		math.Inf(-1): Quiet,
		-80:          Quiet,
		-40.0001:     Quiet,
		-40:          Quiet,
		-39.9999:     Moderate,
		-25:          Moderate,
		-20:          Moderate,
		-19.9999:     Loud,
		-10:          Loud,
		-8:           Loud,
		-7.9999:      VeryLoud,
		-1:           VeryLoud,
		0:            VeryLoud,
		3:            VeryLoud,
	}
	for db, want := range cases {
		if got := th.Classify(db); got != want {
			t.Fatalf("Classify(%f)=%s want=%s", db, got, want)
		}
	}
}

func TestClassifyIsExhaustive(t *testing.T) {
	th := DefaultThresholds()
	for db := -120.0; db <= 20.0; db += 0.25 {
		b := th.Classify(db)
		if b < Quiet || b > VeryLoud {
			t.Fatalf("Classify(%f) returned out-of-range band %d", db, b)
		}
	}
}

func TestStringAndSlug(t *testing.T) {
	labels := map[Band][2]string{
		Quiet:    {"Quiet", "quiet"},
		Moderate: {"Moderate", "moderate"},
		Loud:     {"Loud", "loud"},
		VeryLoud: {"Very Loud", "very_loud"},
	}
	for b, want := range labels {
		if b.String() != want[0] {
			t.Fatalf("String()=%q want=%q", b.String(), want[0])
		}
		if b.Slug() != want[1] {
			t.Fatalf("Slug()=%q want=%q", b.Slug(), want[1])
		}
	}
}

func TestThresholdsValid(t *testing.T) {
	if !DefaultThresholds().Valid() {
		t.Fatalf("default thresholds should be valid")
	}
	bad := Thresholds{Quiet: -10, Moderate: -20, Loud: -8}
	if bad.Valid() {
		t.Fatalf("unordered thresholds should be invalid")
	}
}

func TestAllIsOrdered(t *testing.T) {
	for i := 1; i < len(All); i++ {
		if All[i] <= All[i-1] {
			t.Fatalf("All not strictly ascending at %d", i)
		}
	}
}
