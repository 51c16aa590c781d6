package scene

import (
	"fmt"
	"image"
	"log"

	"chunk-mesher/internal/atlas"
	"chunk-mesher/internal/config"
	"chunk-mesher/internal/meshing"
	"chunk-mesher/internal/registry"
	"chunk-mesher/internal/world"
	"chunk-mesher/pkg/blockmodel"
)

// Scene wires a configured world to its block registry, texture atlas and
// mesh workers. It holds no GPU state; viewers upload Pages and drive a
// ChunkStreamer created by NewStreamer.
type Scene struct {
	Config   *config.Config
	Registry *registry.Registry
	Textures *atlas.BlockTextures
	Pages    []*image.RGBA
	World    *world.World

	Pool      *meshing.WorkerPool
	Scheduler *meshing.Scheduler
}

// New builds the registry, atlas pages and terrain described by cfg and
// starts the mesh workers. Close stops them.
func New(cfg *config.Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reg := registry.Default()
	if cfg.Atlas.ModelDir != "" {
		n := reg.ApplyModels(blockmodel.NewDirLoader(cfg.Atlas.ModelDir))
		log.Printf("scene: applied %d block models from %s", n, cfg.Atlas.ModelDir)
	}

	s := &Scene{Config: cfg, Registry: reg}
	if err := s.layout(cfg.Atlas.ElementsPerPage); err != nil {
		return nil, err
	}

	w, err := world.New(cfg.World.SizeX, cfg.World.SizeY, cfg.World.SizeZ, reg.BlocksLight)
	if err != nil {
		return nil, err
	}
	Generator(cfg.World).Populate(w)
	s.World = w

	config.SetLighting(cfg.Lighting.Lighting())

	// workers start late; they must not read s.Textures, which Relayout replaces
	tex := s.Textures
	s.Pool = meshing.NewWorkerPool(cfg.Mesher.Workers, cfg.Mesher.QueueSize, func() *meshing.Builder {
		return meshing.NewBuilder(reg, tex)
	})
	s.Scheduler = meshing.NewScheduler(s.Pool, cfg.Mesher.QueueSize)
	s.Scheduler.SetTextures(tex)
	return s, nil
}

// Generator returns the terrain generator selected by the world section.
func Generator(cfg config.WorldConfig) world.TerrainGenerator {
	if cfg.Generator == "flat" {
		return world.NewFlatGenerator(cfg.FlatHeight)
	}
	return world.NewGenerator(cfg.Seed).WithWaterLevel(cfg.WaterLevel)
}

func (s *Scene) layout(elementsPerPage int) error {
	names := s.Registry.TextureNames()
	a, err := atlas.New(len(names), elementsPerPage)
	if err != nil {
		return err
	}

	load := atlas.SwatchLoader(s.Config.Atlas.TileSize)
	if s.Config.Atlas.TextureDir != "" {
		load = atlas.DirLoader(s.Config.Atlas.TextureDir)
	}
	pages, err := atlas.ComposePages(a, names, s.Config.Atlas.TileSize, load)
	if err != nil {
		return fmt.Errorf("compose atlas: %w", err)
	}

	s.Textures = atlas.NewBlockTextures(s.Registry, a)
	s.Pages = pages
	return nil
}

// Relayout re-packs the atlas with elementsPerPage tiles per page and
// queues every chunk for a rebuild against the new layout. Callers must
// upload the new Pages before drawing rebuilt chunks.
func (s *Scene) Relayout(elementsPerPage int) error {
	if err := s.layout(elementsPerPage); err != nil {
		return err
	}
	s.Config.Atlas.ElementsPerPage = elementsPerPage
	s.Scheduler.SetTextures(s.Textures)
	s.World.MarkAllDirty()
	log.Printf("scene: atlas relaid out as %d pages of %d tiles", len(s.Pages), elementsPerPage)
	return nil
}

// Relight switches the lighting for later builds and queues every chunk for
// a rebuild.
func (s *Scene) Relight(l meshing.Lighting) {
	config.SetLighting(l)
	s.World.MarkAllDirty()
}

// NewStreamer creates a streamer that uploads the scene's chunks through up.
func (s *Scene) NewStreamer(up meshing.Uploader) *meshing.ChunkStreamer {
	return meshing.NewChunkStreamer(s.World, s.Scheduler, up)
}

// Close stops the mesh workers.
func (s *Scene) Close() {
	s.Pool.Shutdown()
}
