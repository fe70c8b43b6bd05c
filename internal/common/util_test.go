package common

import "testing"

func TestMakeRandHexString_Length(t *testing.T) {
	t.Parallel()

	s, err := MakeRandHexString(16)
	if err != nil {
		t.Fatalf("MakeRandHexString error: %v", err)
	}
	if len(s) != 32 {
		t.Fatalf("expected 32 hex characters, got %d", len(s))
	}
}

func TestMakeRandHexString_Unique(t *testing.T) {
	t.Parallel()

	a, err := MakeRandHexString(16)
	if err != nil {
		t.Fatalf("MakeRandHexString error: %v", err)
	}
	b, err := MakeRandHexString(16)
	if err != nil {
		t.Fatalf("MakeRandHexString error: %v", err)
	}
	if a == b {
		t.Fatalf("two random strings are equal: %q", a)
	}
}
