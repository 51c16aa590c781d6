package registry

import (
	"fmt"
	"log"
	"path"

	"chunk-mesher/internal/world"
	"chunk-mesher/pkg/blockmodel"
)

// DrawType decides how a block is rendered and how it hides its neighbours.
type DrawType uint8

const (
	DrawOpaque      DrawType = iota
	DrawTransparent          // alpha-tested: glass, leaves
	DrawTranslucent          // alpha-blended: water
	DrawSprite               // crossed quads: flowers, tall grass
	DrawGas                  // never drawn
)

// UnknownTexture is always texture 0 and stands in for anything missing.
const UnknownTexture = "unknown.png"

// BlockDefinition defines the properties of a block type
type BlockDefinition struct {
	ID          world.BlockID
	Name        string
	Draw        DrawType
	Height      float32 // fraction of a full block, 0 means 1
	BlocksLight bool
	CullSame    bool // faces between two blocks of this id are hidden

	TextureTop  string
	TextureSide string
	TextureBot  string

	textures [world.FaceCount]int
}

// Registry maps block ids to their definitions and atlas texture indices.
// It is filled before meshing starts and is read-only afterwards.
type Registry struct {
	defs       [256]*BlockDefinition
	byName     map[string]world.BlockID
	names      []string
	textureMap map[string]int
	fallback   BlockDefinition
}

// New creates an empty registry holding only the unknown texture.
func New() *Registry {
	r := &Registry{
		byName:     make(map[string]world.BlockID),
		textureMap: make(map[string]int),
		fallback: BlockDefinition{
			Name:        "unknown",
			Draw:        DrawOpaque,
			Height:      1,
			BlocksLight: true,
			CullSame:    true,
		},
	}
	r.registerTexture(UnknownTexture)
	return r
}

// Register adds a block. Registering the same id twice is an error.
func (r *Registry) Register(def BlockDefinition) error {
	if r.defs[def.ID] != nil {
		return fmt.Errorf("registry: block id %d already registered as %q", def.ID, r.defs[def.ID].Name)
	}
	if _, dup := r.byName[def.Name]; dup {
		return fmt.Errorf("registry: block name %q already registered", def.Name)
	}
	def.Height = clampHeight(def.Height)
	d := def
	r.resolveTextures(&d)
	r.defs[def.ID] = &d
	r.byName[def.Name] = def.ID
	return nil
}

// clampHeight maps heights outside (0, 1] to a full block.
func clampHeight(h float32) float32 {
	if h <= 0 || h > 1 {
		return 1
	}
	return h
}

func (r *Registry) resolveTextures(d *BlockDefinition) {
	if d.Draw == DrawGas {
		return
	}
	top := r.registerTexture(d.TextureTop)
	side := r.registerTexture(d.TextureSide)
	bot := r.registerTexture(d.TextureBot)
	for f := world.Face(0); f < world.FaceCount; f++ {
		switch f {
		case world.FaceTop:
			d.textures[f] = top
		case world.FaceBottom:
			d.textures[f] = bot
		default:
			d.textures[f] = side
		}
	}
}

func (r *Registry) registerTexture(name string) int {
	if name == "" {
		return 0
	}
	if idx, exists := r.textureMap[name]; exists {
		return idx
	}
	idx := len(r.names)
	r.textureMap[name] = idx
	r.names = append(r.names, name)
	return idx
}

// Definition returns the block's definition, or the fallback (solid,
// opaque, full height, light blocking, unknown texture) for unregistered ids.
func (r *Registry) Definition(id world.BlockID) *BlockDefinition {
	if d := r.defs[id]; d != nil {
		return d
	}
	return &r.fallback
}

// Lookup finds a block id by name.
func (r *Registry) Lookup(name string) (world.BlockID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

func (r *Registry) IsTranslucent(id world.BlockID) bool { return r.Definition(id).Draw == DrawTranslucent }
func (r *Registry) IsSprite(id world.BlockID) bool      { return r.Definition(id).Draw == DrawSprite }
func (r *Registry) Height(id world.BlockID) float32     { return r.Definition(id).Height }
func (r *Registry) BlocksLight(id world.BlockID) bool   { return r.Definition(id).BlocksLight }

// IsFaceHidden reports whether neighbour, sitting across face from a block
// of id, fully covers that face.
func (r *Registry) IsFaceHidden(id, neighbour world.BlockID, face world.Face) bool {
	b := r.Definition(id)
	n := r.Definition(neighbour)

	switch {
	case n.Draw == DrawGas || n.Draw == DrawSprite:
		return false
	case id == neighbour:
		if !b.CullSame {
			return false
		}
		// stacked partial solids leave a gap between them
		if !face.IsSide() && b.Height < 1 && b.Draw != DrawTranslucent {
			return false
		}
		return true
	case n.Draw != DrawOpaque:
		return false
	case n.Height >= 1:
		return face != world.FaceTop || b.Height >= 1
	default:
		return face == world.FaceTop && b.Height >= 1
	}
}

// TextureIndex returns the atlas texture index for a block face.
func (r *Registry) TextureIndex(id world.BlockID, face world.Face) int {
	return r.Definition(id).textures[face]
}

// TextureNames lists every texture in index order.
func (r *Registry) TextureNames() []string {
	return r.names
}

// ApplyModels refines registered blocks from their block models: height
// comes from the tallest element, cross-shaped models become sprites and
// face textures replace the defaults. Blocks without a model keep their
// definition. Returns how many blocks were updated.
func (r *Registry) ApplyModels(loader *blockmodel.Loader) int {
	applied := 0
	for _, d := range r.defs {
		if d == nil || d.Draw == DrawGas {
			continue
		}
		model, err := loader.LoadBlockModel(d.Name)
		if err != nil {
			log.Printf("registry: no model for %s: %v", d.Name, err)
			continue
		}

		d.Height = clampHeight(model.Height())
		if model.IsCross() {
			d.Draw = DrawSprite
			d.BlocksLight = false
			if tex := textureFile(model.FaceTexture("north")); tex != "" {
				d.TextureTop, d.TextureSide, d.TextureBot = tex, tex, tex
			}
		} else {
			if tex := textureFile(model.FaceTexture("up")); tex != "" {
				d.TextureTop = tex
			}
			if tex := textureFile(model.FaceTexture("down")); tex != "" {
				d.TextureBot = tex
			}
			for _, side := range []string{"north", "south", "east", "west"} {
				if tex := textureFile(model.FaceTexture(side)); tex != "" {
					d.TextureSide = tex
					break
				}
			}
		}
		r.resolveTextures(d)
		applied++
	}
	return applied
}

func textureFile(ref string) string {
	if ref == "" {
		return ""
	}
	base := path.Base(ref)
	if base == "." || base == "/" {
		return ""
	}
	return base + ".png"
}
