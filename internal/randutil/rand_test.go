package randutil

import "testing"

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if got, want := a.Uint64(), b.Uint64(); got != want {
			t.Fatalf("draw %d: %d != %d", i, got, want)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	if same > 1 {
		t.Errorf("%d collisions across seeds, streams should diverge", same)
	}
}

func TestNegativeSeed(t *testing.T) {
	// Negative seeds are valid; the mixer treats the bits uniformly
	r := New(-7)
	if r.Uint64() == New(-7).Uint64() {
		return
	}
	t.Error("negative seed should still be deterministic")
}
