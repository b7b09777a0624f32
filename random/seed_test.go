package random

import "testing"

func TestNewSeed_Varies(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 8; i++ {
		s, err := NewSeed()
		if err != nil {
			t.Fatalf("NewSeed: %v", err)
		}
		seen[s] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected different seeds across calls")
	}
}

func TestSeedOrNew(t *testing.T) {
	s, err := SeedOrNew(42)
	if err != nil || s != 42 {
		t.Fatalf("SeedOrNew(42) = %d, %v", s, err)
	}
	if _, err := SeedOrNew(0); err != nil {
		t.Fatalf("SeedOrNew(0): %v", err)
	}
}
