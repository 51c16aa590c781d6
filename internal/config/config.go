package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"chunk-mesher/internal/meshing"

	"gopkg.in/yaml.v3"
)

// Config holds everything needed to generate, mesh and show a world.
type Config struct {
	Mesher   MesherConfig   `yaml:"mesher"`
	Atlas    AtlasConfig    `yaml:"atlas"`
	Lighting LightingConfig `yaml:"lighting"`
	World    WorldConfig    `yaml:"world"`
	Viewer   ViewerConfig   `yaml:"viewer"`
}

type MesherConfig struct {
	Workers         int `yaml:"workers"`
	QueueSize       int `yaml:"queue_size"`
	ResultsPerFrame int `yaml:"results_per_frame"` // mesh uploads per rendered frame, 0 = all
}

type AtlasConfig struct {
	TileSize        int    `yaml:"tile_size"`         // pixels per tile side
	ElementsPerPage int    `yaml:"elements_per_page"` // tiles stacked in one page texture
	TextureDir      string `yaml:"texture_dir"`       // empty uses placeholder tiles
	ModelDir        string `yaml:"model_dir"`         // optional block model assets
}

type LightingConfig struct {
	Sunlight HexColour `yaml:"sunlight"`
	Shadow   HexColour `yaml:"shadow"`
}

// Lighting derives the per-face colours from the configured top colours.
func (l LightingConfig) Lighting() meshing.Lighting {
	return meshing.NewLighting(meshing.Colour(l.Sunlight), meshing.Colour(l.Shadow))
}

type WorldConfig struct {
	SizeX      int    `yaml:"size_x"`
	SizeY      int    `yaml:"size_y"`
	SizeZ      int    `yaml:"size_z"`
	Generator  string `yaml:"generator"` // "terrain" or "flat"
	Seed       int64  `yaml:"seed"`
	WaterLevel int    `yaml:"water_level"`
	FlatHeight int    `yaml:"flat_height"`
}

type ViewerConfig struct {
	Width        int       `yaml:"width"`
	Height       int       `yaml:"height"`
	FPSLimit     int       `yaml:"fps_limit"`  // 0 = uncapped
	FOV          float32   `yaml:"fov"`        // vertical, degrees
	ShaderDir    string    `yaml:"shader_dir"` // optional blocks.vert/blocks.frag overrides
	DuskSunlight HexColour `yaml:"dusk_sunlight"`
}

// DuskLighting is the alternative lighting the viewer toggles to.
func (c *Config) DuskLighting() meshing.Lighting {
	return meshing.NewLighting(meshing.Colour(c.Viewer.DuskSunlight), meshing.Colour(c.Lighting.Shadow))
}

// HexColour is a colour written as "#RRGGBB" or "#RRGGBBAA".
type HexColour meshing.Colour

// ParseHexColour parses "#RRGGBB" (opaque) or "#RRGGBBAA".
func ParseHexColour(s string) (HexColour, error) {
	if len(s) != 7 && len(s) != 9 || s[0] != '#' {
		return HexColour{}, fmt.Errorf("colour %q: want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return HexColour{}, fmt.Errorf("colour %q: %w", s, err)
	}
	if len(s) == 7 {
		v = v<<8 | 0xff
	}
	return HexColour{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func (c HexColour) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c *HexColour) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHexColour(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c HexColour) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// Load reads configuration from a YAML file. An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Mesher: MesherConfig{
			Workers:         4,
			QueueSize:       256,
			ResultsPerFrame: 8,
		},
		Atlas: AtlasConfig{
			TileSize:        16,
			ElementsPerPage: 32,
		},
		Lighting: LightingConfig{
			Sunlight: HexColour(meshing.DefaultSunlight),
			Shadow:   HexColour(meshing.DefaultShadow),
		},
		World: WorldConfig{
			SizeX:      128,
			SizeY:      64,
			SizeZ:      128,
			Generator:  "terrain",
			Seed:       1337,
			WaterLevel: 24,
			FlatHeight: 8,
		},
		Viewer: ViewerConfig{
			Width:        900,
			Height:       600,
			FPSLimit:     120,
			FOV:          70,
			DuskSunlight: HexColour{R: 0xc8, G: 0x8c, B: 0x6e, A: 0xff},
		},
	}
}

func (c *Config) Validate() error {
	if c.Mesher.Workers <= 0 {
		return errors.New("mesher.workers must be positive")
	}
	if c.Mesher.QueueSize <= 0 {
		return errors.New("mesher.queue_size must be positive")
	}
	if c.Mesher.ResultsPerFrame < 0 {
		return errors.New("mesher.results_per_frame cannot be negative")
	}
	if c.Atlas.TileSize <= 0 {
		return errors.New("atlas.tile_size must be positive")
	}
	if c.Atlas.ElementsPerPage <= 0 {
		return errors.New("atlas.elements_per_page must be positive")
	}
	if c.World.SizeX <= 0 || c.World.SizeY <= 0 || c.World.SizeZ <= 0 {
		return errors.New("world dimensions must be positive")
	}
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return errors.New("viewer window size must be positive")
	}
	if c.Viewer.FPSLimit < 0 {
		return errors.New("viewer.fps_limit cannot be negative")
	}
	if c.Viewer.FOV <= 0 || c.Viewer.FOV >= 180 {
		return errors.New("viewer.fov must be between 0 and 180 degrees")
	}
	switch c.World.Generator {
	case "terrain":
		if c.World.WaterLevel < 0 || c.World.WaterLevel >= c.World.SizeY {
			return errors.New("world.water_level must lie inside the world")
		}
	case "flat":
		if c.World.FlatHeight <= 0 || c.World.FlatHeight > c.World.SizeY {
			return errors.New("world.flat_height must be between 1 and size_y")
		}
	default:
		return errors.New("world.generator must be either 'terrain' or 'flat'")
	}
	return nil
}
