package world

import (
	"math"
	"math/rand"
	"testing"
)

// TestHash2Deterministic verifies hash2 produces identical results for same inputs
func TestHash2Deterministic(t *testing.T) {
	first := hash2(10, 30, 42)
	for i := 1; i < 100; i++ {
		if h := hash2(10, 30, 42); h != first {
			t.Errorf("hash2 not deterministic: first=%d, call %d=%d", first, i, h)
		}
	}
}

// TestHash2DifferentInputs verifies hash2 produces different values for different inputs
func TestHash2DifferentInputs(t *testing.T) {
	seed := int64(42)

	if hash2(1, 0, seed) == hash2(2, 0, seed) {
		t.Errorf("hash2 should differ for different X")
	}
	if hash2(0, 1, seed) == hash2(0, 2, seed) {
		t.Errorf("hash2 should differ for different Z")
	}
	if hash2(1, 1, 100) == hash2(1, 1, 200) {
		t.Errorf("hash2 should differ for different seed")
	}
	// Axis swap (ensures axes aren't interchangeable)
	if hash2(1, 3, seed) == hash2(3, 1, seed) {
		t.Errorf("hash2 should differ for axis swap")
	}
}

// TestValueNoise2DRange verifies valueNoise2D outputs are in [0,1]
func TestValueNoise2DRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345)) // deterministic test RNG
	seed := int64(42)

	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		if v := valueNoise2D(x, z, seed); v < 0.0 || v > 1.0 {
			t.Errorf("valueNoise2D(%f, %f, %d) = %f, expected in [0,1]", x, z, seed, v)
		}
	}
}

// TestValueNoise2DContinuity verifies smooth interpolation (no random jumps)
func TestValueNoise2DContinuity(t *testing.T) {
	v1 := valueNoise2D(1.0, 1.0, 42)
	v2 := valueNoise2D(1.01, 1.0, 42)
	if diff := math.Abs(v1 - v2); diff >= 0.1 {
		t.Errorf("valueNoise2D not continuous: %f vs %f, diff=%f >= 0.1", v1, v2, diff)
	}
}

// TestOctaveNoise2DRange verifies octaveNoise2D outputs are in [0,1]
func TestOctaveNoise2DRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		if v := octaveNoise2D(x, z, 42, 4, 0.5, 2.0); v < 0.0 || v > 1.0 {
			t.Errorf("octaveNoise2D(%f, %f) = %f, expected in [0,1]", x, z, v)
		}
	}
}
