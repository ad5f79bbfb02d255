package rng

import (
	"testing"

	"weatherseed/internal/xxhash32"
)

func TestMixLegacyAdditive(t *testing.T) {
	got := Mix(1, 2, 3, 4, 5, true)
	if got != 15 {
		t.Fatalf("Mix legacy = %d, want 15", got)
	}
}

func TestMixNewRandomMatchesHash(t *testing.T) {
	a, b, c, d, e := int32(777), int32(12345), int32(0), int32(0), int32(0)
	got := Mix(a, b, c, d, e, false)
	// New-random mode is just the hash of the reduced inputs; recompute
	// the reduction the same way Mix does and compare against the hash
	// package directly to pin the contract between the two packages.
	want := mixNewRandomReference(a, b, c, d, e)
	if got != want {
		t.Fatalf("Mix new-random = %d, want %d", got, want)
	}
}

func TestMixReducesModM31(t *testing.T) {
	a := Mix(M31, 5, 0, 0, 0, false)
	b := Mix(0, 5, 0, 0, 0, false)
	if a != b {
		t.Fatalf("Mix should reduce operands mod M31: %d != %d", a, b)
	}
}

func TestFirstRandClampsIntMin(t *testing.T) {
	got := FirstRand(-2147483648)
	want := FirstRand(2147483647)
	if got != want {
		t.Fatalf("FirstRand(MinInt32) = %d, want saturated %d", got, want)
	}
}

func TestFirstRandNonNegative(t *testing.T) {
	for _, s := range []int32{0, 1, -1, 2147483647, -2147483647, 123456789} {
		r := FirstRand(s)
		if r < 0 || r >= M31 {
			t.Fatalf("FirstRand(%d) = %d out of [0, M31)", s, r)
		}
	}
}

func TestNextDoubleRange(t *testing.T) {
	for _, s := range []int32{0, 1, -1, 2147483647, -2147483647} {
		d := NextDouble(s)
		if d < 0 || d >= 1 {
			t.Fatalf("NextDouble(%d) = %v out of [0,1)", s, d)
		}
	}
}

func TestNextIntBoundsAndZero(t *testing.T) {
	if got := NextInt(42, 0); got != 0 {
		t.Fatalf("NextInt with n=0 = %d, want 0", got)
	}
	if got := NextInt(42, -3); got != 0 {
		t.Fatalf("NextInt with negative n = %d, want 0", got)
	}
	for _, s := range []int32{0, 1, -1, 2147483647} {
		n := NextInt(s, 8)
		if n < 0 || n >= 8 {
			t.Fatalf("NextInt(%d, 8) = %d out of [0,8)", s, n)
		}
	}
}

func mixNewRandomReference(a, b, c, d, e int32) int32 {
	ra, rb, rc, rd, re := a%M31, b%M31, c%M31, d%M31, e%M31
	return xxhash32.Ints(ra, rb, rc, rd, re)
}
