package blockmodel

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// Loader reads block models and blockstates from an asset tree laid out as
// models/<name>.json and blockstates/<name>.json.
type Loader struct {
	assets     fs.FS
	modelCache map[string]*Model
}

// NewLoader creates a loader over any file system.
func NewLoader(assets fs.FS) *Loader {
	return &Loader{
		assets:     assets,
		modelCache: make(map[string]*Model),
	}
}

// NewDirLoader creates a loader rooted at a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir))
}

// LoadModel loads a model by name, merging its parent chain and resolving
// texture variables. Results are cached by name.
func (l *Loader) LoadModel(name string) (*Model, error) {
	if !strings.Contains(name, "/") {
		name = "block/" + name
	}

	if model, ok := l.modelCache[name]; ok {
		return model, nil
	}

	data, err := fs.ReadFile(l.assets, path.Join("models", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("could not read model file: %w", err)
	}

	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("could not unmarshal model json: %w", err)
	}
	if model.Textures == nil {
		model.Textures = make(map[string]string)
	}

	if model.Parent != "" && !strings.HasPrefix(model.Parent, "builtin/") {
		parent, err := l.LoadModel(model.Parent)
		if err != nil {
			return nil, fmt.Errorf("could not load parent model '%s': %w", model.Parent, err)
		}

		if model.AmbientOcclusion == nil {
			model.AmbientOcclusion = parent.AmbientOcclusion
		}
		if len(model.Elements) == 0 {
			// copy so resolving our textures leaves the cached parent alone
			model.Elements = cloneElements(parent.Elements)
		}
		for key, val := range parent.Textures {
			if _, ok := model.Textures[key]; !ok {
				model.Textures[key] = val
			}
		}
		model.ancestors = append([]string{parent.name}, parent.ancestors...)
	}
	model.name = name

	l.resolveTextures(&model)
	l.modelCache[name] = &model
	return &model, nil
}

func cloneElements(src []Element) []Element {
	out := make([]Element, len(src))
	for i, e := range src {
		out[i] = e
		out[i].Faces = make(map[string]Face, len(e.Faces))
		for k, f := range e.Faces {
			out[i].Faces[k] = f
		}
	}
	return out
}

func (l *Loader) resolveTextures(m *Model) {
	for i := range m.Elements {
		for faceName, face := range m.Elements[i].Faces {
			originalTexture := face.Texture
			resolvedTexture := l.ResolveTexture(originalTexture, m)
			if resolvedTexture != originalTexture {
				face.Texture = resolvedTexture
				m.Elements[i].Faces[faceName] = face
			}
		}
	}
}

// ResolveTexture follows "#var" references through the model's texture map.
func (l *Loader) ResolveTexture(textureName string, m *Model) string {
	for i := 0; i < 10 && strings.HasPrefix(textureName, "#"); i++ {
		key := strings.TrimPrefix(textureName, "#")
		if resolved, ok := m.Textures[key]; ok {
			textureName = resolved
		} else {
			break
		}
	}
	return textureName
}

// LoadBlockState loads blockstates/<name>.json.
func (l *Loader) LoadBlockState(name string) (*BlockState, error) {
	data, err := fs.ReadFile(l.assets, path.Join("blockstates", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("could not read blockstate file: %w", err)
	}

	var blockState BlockState
	if err := json.Unmarshal(data, &blockState); err != nil {
		return nil, fmt.Errorf("could not unmarshal blockstate json: %w", err)
	}

	return &blockState, nil
}

// LoadBlockModel resolves a block's default variant to its model.
func (l *Loader) LoadBlockModel(block string) (*Model, error) {
	bs, err := l.LoadBlockState(block)
	if err != nil {
		return nil, err
	}
	name := bs.DefaultModel()
	if name == "" {
		return nil, fmt.Errorf("blockstate %s has no variants", block)
	}
	return l.LoadModel(name)
}
