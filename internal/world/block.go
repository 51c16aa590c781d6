package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BlockID identifies a block kind. Zero is air.
type BlockID uint8

const (
	BlockAir BlockID = iota
	BlockStone
	BlockGrass
	BlockDirt
	BlockCobblestone
	BlockPlanks
	BlockSand
	BlockGlass
	BlockWater
	BlockLeaves
	BlockLog
	BlockSlab
	BlockSnow
	BlockDandelion
	BlockRose
	BlockTallGrass
	BlockSapling
	BlockBedrock

	// BlockCount is the number of built-in block ids.
	BlockCount
)

var blockNames = [BlockCount]string{
	BlockAir:         "air",
	BlockStone:       "stone",
	BlockGrass:       "grass",
	BlockDirt:        "dirt",
	BlockCobblestone: "cobblestone",
	BlockPlanks:      "planks",
	BlockSand:        "sand",
	BlockGlass:       "glass",
	BlockWater:       "water",
	BlockLeaves:      "leaves",
	BlockLog:         "log",
	BlockSlab:        "slab",
	BlockSnow:        "snow",
	BlockDandelion:   "dandelion",
	BlockRose:        "rose",
	BlockTallGrass:   "tall_grass",
	BlockSapling:     "sapling",
	BlockBedrock:     "bedrock",
}

func (b BlockID) String() string {
	if b < BlockCount {
		return blockNames[b]
	}
	return "block#" + itoa(int(b))
}

// Face is one of the six axis-aligned faces of a voxel.
type Face uint8

const (
	FaceNorth  Face = iota // +Z
	FaceSouth              // -Z
	FaceEast               // +X
	FaceWest               // -X
	FaceTop                // +Y
	FaceBottom             // -Y

	FaceCount
)

var faceOffsets = [FaceCount][3]int{
	FaceNorth:  {0, 0, 1},
	FaceSouth:  {0, 0, -1},
	FaceEast:   {1, 0, 0},
	FaceWest:   {-1, 0, 0},
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
}

var faceNames = [FaceCount]string{"north", "south", "east", "west", "top", "bottom"}

// Offset returns the unit step to the neighbouring voxel across the face.
func (f Face) Offset() (dx, dy, dz int) {
	o := faceOffsets[f]
	return o[0], o[1], o[2]
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	o := faceOffsets[f]
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

// IsSide reports whether the face is vertical.
func (f Face) IsSide() bool {
	return f != FaceTop && f != FaceBottom
}

func (f Face) String() string {
	if f < FaceCount {
		return faceNames[f]
	}
	return "face#" + itoa(int(f))
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
