package registry

import (
	"chunk-mesher/internal/world"
)

func solid(id world.BlockID, name, tex string) BlockDefinition {
	return BlockDefinition{
		ID:          id,
		Name:        name,
		Draw:        DrawOpaque,
		BlocksLight: true,
		CullSame:    true,
		TextureTop:  tex,
		TextureSide: tex,
		TextureBot:  tex,
	}
}

func sprite(id world.BlockID, name, tex string) BlockDefinition {
	return BlockDefinition{
		ID:          id,
		Name:        name,
		Draw:        DrawSprite,
		TextureTop:  tex,
		TextureSide: tex,
		TextureBot:  tex,
	}
}

// DefaultDefinitions returns the built-in block table.
func DefaultDefinitions() []BlockDefinition {
	grass := solid(world.BlockGrass, "grass", "grass_side.png")
	grass.TextureTop = "grass_top.png"
	grass.TextureBot = "dirt.png"

	log := solid(world.BlockLog, "log", "log_oak.png")
	log.TextureTop = "log_oak_top.png"
	log.TextureBot = "log_oak_top.png"

	glass := solid(world.BlockGlass, "glass", "glass.png")
	glass.Draw = DrawTransparent
	glass.BlocksLight = false

	leaves := solid(world.BlockLeaves, "leaves", "leaves_oak.png")
	leaves.Draw = DrawTransparent
	leaves.BlocksLight = false
	leaves.CullSame = false

	water := solid(world.BlockWater, "water", "water_still.png")
	water.Draw = DrawTranslucent
	water.Height = 0.875

	slab := solid(world.BlockSlab, "slab", "stone_slab_side.png")
	slab.TextureTop = "stone_slab_top.png"
	slab.TextureBot = "stone_slab_top.png"
	slab.Height = 0.5

	snow := solid(world.BlockSnow, "snow", "snow.png")
	snow.Height = 0.125

	return []BlockDefinition{
		{ID: world.BlockAir, Name: "air", Draw: DrawGas},
		solid(world.BlockStone, "stone", "stone.png"),
		grass,
		solid(world.BlockDirt, "dirt", "dirt.png"),
		solid(world.BlockCobblestone, "cobblestone", "cobblestone.png"),
		solid(world.BlockPlanks, "planks", "planks_oak.png"),
		solid(world.BlockSand, "sand", "sand.png"),
		glass,
		water,
		leaves,
		log,
		slab,
		snow,
		sprite(world.BlockDandelion, "dandelion", "flower_dandelion.png"),
		sprite(world.BlockRose, "rose", "flower_rose.png"),
		sprite(world.BlockTallGrass, "tall_grass", "tallgrass.png"),
		sprite(world.BlockSapling, "sapling", "sapling_oak.png"),
		solid(world.BlockBedrock, "bedrock", "bedrock.png"),
	}
}

// Default returns a registry holding the built-in blocks.
func Default() *Registry {
	r := New()
	for _, def := range DefaultDefinitions() {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}
