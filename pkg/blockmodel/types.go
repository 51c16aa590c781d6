package blockmodel

import (
	"encoding/json"
	"sort"
	"strings"
)

type Model struct {
	Parent           string             `json:"parent"`
	AmbientOcclusion *bool              `json:"ambientocclusion"`
	Textures         map[string]string  `json:"textures"`
	Elements         []Element          `json:"elements"`
	Display          map[string]Display `json:"display"`
	Overrides        []Override         `json:"overrides"`

	name      string
	ancestors []string
}

// Height returns the top of the tallest element as a fraction of a block,
// 1 for models without elements.
func (m *Model) Height() float32 {
	if len(m.Elements) == 0 {
		return 1
	}
	var top float32
	for _, e := range m.Elements {
		top = max(top, e.To[1], e.From[1])
	}
	return min(top/16, 1)
}

// IsCross reports whether the model is a crossed-quad plant: it derives
// from a "cross" model, or all its elements are rotated 45 degrees about y.
func (m *Model) IsCross() bool {
	for _, a := range append([]string{m.name}, m.ancestors...) {
		if strings.HasSuffix(a, "/cross") || strings.HasSuffix(a, "/tinted_cross") {
			return true
		}
	}
	if len(m.Elements) == 0 {
		return false
	}
	for _, e := range m.Elements {
		if e.Rotation == nil || e.Rotation.Axis != "y" || (e.Rotation.Angle != 45 && e.Rotation.Angle != -45) {
			return false
		}
	}
	return true
}

// FaceTexture returns the resolved texture of the first element carrying
// the named face ("up", "down", "north", ...), or "".
func (m *Model) FaceTexture(face string) string {
	for _, e := range m.Elements {
		if f, ok := e.Faces[face]; ok && f.Texture != "" && !strings.HasPrefix(f.Texture, "#") {
			return f.Texture
		}
	}
	return ""
}

type Element struct {
	From     [3]float32      `json:"from"`
	To       [3]float32      `json:"to"`
	Rotation *Rotation       `json:"rotation"`
	Shade    *bool           `json:"shade"`
	Faces    map[string]Face `json:"faces"`
}

type Rotation struct {
	Origin  [3]float32 `json:"origin"`
	Angle   float32    `json:"angle"`
	Axis    string     `json:"axis"`
	Rescale bool       `json:"rescale"`
}

type Face struct {
	UV        [4]float32 `json:"uv"`
	Texture   string     `json:"texture"`
	CullFace  string     `json:"cullface"`
	Rotation  int        `json:"rotation"`
	TintIndex *int       `json:"tintindex"`
}

type Display struct {
	Rotation    [3]float32 `json:"rotation"`
	Translation [3]float32 `json:"translation"`
	Scale       [3]float32 `json:"scale"`
}

type Override struct {
	Predicate map[string]float32 `json:"predicate"`
	Model     string             `json:"model"`
}

// BlockState defines the blockstate JSON structure. It maps variants of a block to their corresponding models.
type BlockState struct {
	// Variants is a map of variant names to a list of models.
	Variants map[string]BlockStateVariants `json:"variants"`
}

// BlockStateVariants is a custom type to handle the fact that the "variants" field can contain either a single object or an array of objects.
type BlockStateVariants []Variant

func (v *BlockStateVariants) UnmarshalJSON(data []byte) error {
	// First, try to unmarshal as an array
	var variants []Variant
	if err := json.Unmarshal(data, &variants); err == nil {
		*v = variants
		return nil
	}

	// If that fails, try to unmarshal as a single object
	var singleVariant Variant
	if err := json.Unmarshal(data, &singleVariant); err != nil {
		return err
	}

	*v = []Variant{singleVariant}
	return nil
}

// DefaultModel picks the "normal" or "" variant, else the first variant
// in key order.
func (b *BlockState) DefaultModel() string {
	if v, ok := b.Variants["normal"]; ok && len(v) > 0 {
		return v[0].Model
	}
	if v, ok := b.Variants[""]; ok && len(v) > 0 {
		return v[0].Model
	}
	keys := make([]string, 0, len(b.Variants))
	for k := range b.Variants {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := b.Variants[k]; len(v) > 0 {
			return v[0].Model
		}
	}
	return ""
}

type Variant struct {
	Model string `json:"model"`
}
