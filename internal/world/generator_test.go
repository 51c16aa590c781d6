package world

import (
	"crypto/sha256"
	"testing"
)

func TestStandardGeneratorImplementsInterface(t *testing.T) {
	var _ TerrainGenerator = NewGenerator(123)
}

func TestFlatGeneratorImplementsInterface(t *testing.T) {
	var _ TerrainGenerator = NewFlatGenerator(10)
}

func TestFlatGeneratorHeight(t *testing.T) {
	g := NewFlatGenerator(10)
	if h := g.HeightAt(0, 0); h != 10 {
		t.Errorf("Expected height 10, got %d", h)
	}
	if h := g.HeightAt(100, -50); h != 10 {
		t.Errorf("Expected height 10, got %d", h)
	}
}

func TestFlatGeneratorPopulate(t *testing.T) {
	w := mustWorld(t, 16, 16, 16)
	NewFlatGenerator(5).Populate(w)

	if b := w.BlockAt(0, 0, 0); b != BlockBedrock {
		t.Errorf("Expected Bedrock at 0,0,0, got %v", b)
	}
	for y := 1; y < 5; y++ {
		if b := w.BlockAt(0, y, 0); b != BlockDirt {
			t.Errorf("Expected Dirt at 0,%d,0, got %v", y, b)
		}
	}
	if b := w.BlockAt(0, 5, 0); b != BlockGrass {
		t.Errorf("Expected Grass at 0,5,0, got %v", b)
	}
	if b := w.BlockAt(0, 6, 0); b != BlockAir {
		t.Errorf("Expected Air at 0,6,0, got %v", b)
	}
	if h := w.LitHeight(7, 7); h != 5 {
		t.Errorf("Expected lit height 5 after populate, got %d", h)
	}
}

// hashWorldBlocks computes a SHA-256 hash of all blocks in a world
func hashWorldBlocks(w *World) [32]byte {
	h := sha256.New()
	for y := 0; y < w.SizeY; y++ {
		for z := 0; z < w.SizeZ; z++ {
			for x := 0; x < w.SizeX; x++ {
				h.Write([]byte{byte(w.BlockAt(x, y, z))})
			}
		}
	}
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

// TestGeneratorDeterminism verifies same seed produces identical terrain
func TestGeneratorDeterminism(t *testing.T) {
	var hashes [3][32]byte
	for i := range hashes {
		w := mustWorld(t, 32, 48, 32)
		NewGenerator(12345).Populate(w)
		hashes[i] = hashWorldBlocks(w)
	}
	for i := 1; i < len(hashes); i++ {
		if hashes[i] != hashes[0] {
			t.Errorf("World generation not deterministic: hash[0] != hash[%d]", i)
		}
	}
}

func TestGeneratorTerrainShape(t *testing.T) {
	w := mustWorld(t, 48, 64, 48)
	NewGenerator(1337).Populate(w)

	seen := make(map[BlockID]int)
	for y := 0; y < w.SizeY; y++ {
		for z := 0; z < w.SizeZ; z++ {
			for x := 0; x < w.SizeX; x++ {
				seen[w.BlockAt(x, y, z)]++
			}
		}
	}
	if seen[BlockAir] == 0 {
		t.Errorf("Expected terrain to have air blocks, got all solid")
	}
	if seen[BlockStone] == 0 {
		t.Errorf("Expected terrain to contain stone")
	}
	if b := w.BlockAt(8, 0, 8); b != BlockBedrock {
		t.Errorf("Expected Bedrock at (8,0,8), got %v", b)
	}
}

func TestGeneratorWaterLevel(t *testing.T) {
	w := mustWorld(t, 32, 48, 32)
	g := NewGenerator(7).WithWaterLevel(40)
	g.Populate(w)

	for x := 0; x < w.SizeX; x++ {
		for z := 0; z < w.SizeZ; z++ {
			h := g.HeightAt(x, z)
			if h >= 40 {
				continue
			}
			if b := w.BlockAt(x, 40, z); b != BlockWater {
				t.Fatalf("Expected water at (%d,40,%d) above surface %d, got %v", x, z, h, b)
			}
		}
	}
}
