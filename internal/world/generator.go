package world

import (
	"math"
)

// TerrainGenerator fills a world with blocks.
type TerrainGenerator interface {
	HeightAt(worldX, worldZ int) int
	Populate(w *World)
}

// Generator handles noise terrain generation with water, beaches, trees
// and ground cover, so that every block class shows up in a mesh.
type Generator struct {
	seed        int64
	scale       float64
	baseHeight  int
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
	waterLevel  int
}

// NewGenerator creates a new generator with default settings.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:        seed,
		scale:       1.0 / 48.0,
		baseHeight:  18,
		amp:         24,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
		waterLevel:  24,
	}
}

// WithWaterLevel overrides the sea level.
func (g *Generator) WithWaterLevel(y int) *Generator {
	g.waterLevel = y
	return g
}

// HeightAt computes world surface height (block Y) at world X,Z.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	x := float64(worldX) * g.scale
	z := float64(worldZ) * g.scale
	n := octaveNoise2D(x, z, g.seed, g.octaves, g.persistence, g.lacunarity)
	height := float64(g.baseHeight) + n*g.amp
	if height < 0 {
		height = 0
	}
	return int(math.Floor(height))
}

// roll returns a stable pseudo-random value in [0,1) for a column and salt.
func (g *Generator) roll(x, z int, salt int64) float64 {
	h := hash2(int64(x), int64(z), g.seed^salt)
	return float64(h>>11) / float64(1<<53)
}

// Populate fills the whole world.
func (g *Generator) Populate(w *World) {
	snowLine := g.baseHeight + int(g.amp*0.8)
	w.Bulk(func(set func(x, y, z int, id BlockID)) {
		for x := 0; x < w.SizeX; x++ {
			for z := 0; z < w.SizeZ; z++ {
				height := min(g.HeightAt(x, z), w.SizeY-2)
				beach := height <= g.waterLevel+1

				for y := 0; y <= height; y++ {
					var id BlockID
					switch {
					case y == 0:
						id = BlockBedrock
					case y < height-3:
						id = BlockStone
					case beach:
						id = BlockSand
					case y < height:
						id = BlockDirt
					default:
						id = BlockGrass
					}
					set(x, y, z, id)
				}
				for y := height + 1; y <= g.waterLevel && y < w.SizeY; y++ {
					set(x, y, z, BlockWater)
				}
				if beach {
					continue
				}

				top := height + 1
				r := g.roll(x, z, 0x51ed)
				switch {
				case height >= snowLine:
					set(x, top, z, BlockSnow)
				case r < 0.012 && x > 2 && z > 2 && x < w.SizeX-3 && z < w.SizeZ-3:
					g.tree(set, x, top, z)
				case r < 0.06:
					set(x, top, z, BlockTallGrass)
				case r < 0.075:
					set(x, top, z, BlockDandelion)
				case r < 0.085:
					set(x, top, z, BlockRose)
				case r < 0.09:
					set(x, top, z, BlockSapling)
				case r < 0.095:
					set(x, top, z, BlockSlab)
				case r < 0.097:
					set(x, top, z, BlockGlass)
				}
			}
		}
	})
}

func (g *Generator) tree(set func(x, y, z int, id BlockID), x, y, z int) {
	const trunk = 4
	for dy := -2; dy <= 1; dy++ {
		r := 2
		if dy > 0 {
			r = 1
		}
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				if dx*dx+dz*dz > r*r+1 {
					continue
				}
				set(x+dx, y+trunk+dy, z+dz, BlockLeaves)
			}
		}
	}
	for dy := range trunk {
		set(x, y+dy, z, BlockLog)
	}
}

// FlatGenerator produces bedrock, dirt and a grass surface at a fixed height.
type FlatGenerator struct {
	height int
}

// NewFlatGenerator creates a flat generator with the surface at height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height}
}

// HeightAt returns the fixed surface height.
func (g *FlatGenerator) HeightAt(worldX, worldZ int) int {
	return g.height
}

// Populate fills the whole world.
func (g *FlatGenerator) Populate(w *World) {
	w.Bulk(func(set func(x, y, z int, id BlockID)) {
		for x := 0; x < w.SizeX; x++ {
			for z := 0; z < w.SizeZ; z++ {
				set(x, 0, z, BlockBedrock)
				for y := 1; y < g.height; y++ {
					set(x, y, z, BlockDirt)
				}
				if g.height > 0 {
					set(x, g.height, z, BlockGrass)
				}
			}
		}
	})
}
