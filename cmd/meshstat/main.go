package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"chunk-mesher/internal/config"
	"chunk-mesher/internal/meshing"
	"chunk-mesher/internal/profiling"
	"chunk-mesher/internal/scene"
)

// meshstat meshes a whole configured world without a window and reports
// geometry totals and timings.
func main() {
	var (
		cfgPath  string
		rebuilds int
		atlasDir string
	)
	flag.StringVar(&cfgPath, "config", "", "path to mesher configuration file")
	flag.IntVar(&rebuilds, "rebuilds", 0, "rebuild every chunk this many extra times for timing")
	flag.StringVar(&atlasDir, "dump-atlas", "", "write the composed atlas pages as PNG files to this directory")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	s, err := scene.New(cfg)
	if err != nil {
		log.Fatalf("build scene: %v", err)
	}
	defer s.Close()

	if atlasDir != "" {
		if err := dumpPages(s, atlasDir); err != nil {
			log.Fatalf("dump atlas: %v", err)
		}
	}

	up := meshing.NewMemoryUploader()
	cs := s.NewStreamer(up)
	defer cs.Close()

	light := config.GetLighting()
	start := time.Now()
	cs.Flush(light)
	log.Printf("initial mesh of %d chunks took %v", len(s.World.ChunkCoords()), time.Since(start))

	for i := 0; i < rebuilds; i++ {
		s.World.MarkAllDirty()
		start := time.Now()
		cs.Flush(light)
		log.Printf("rebuild %d took %v", i+1, time.Since(start))
	}

	report(s, cs)
	log.Printf("top: %s", profiling.TopN(8))
}

func report(s *scene.Scene, cs *meshing.ChunkStreamer) {
	var quads [meshing.MaterialCount]int
	pages := make(map[int]int)
	for _, c := range s.World.ChunkCoords() {
		info, ok := cs.Resident(c)
		if !ok {
			continue
		}
		for _, r := range info.Records {
			quads[r.Material] += r.IndexCount / meshing.IndicesPerQuad
			pages[r.Page]++
		}
	}

	st := cs.Stats()
	log.Printf("resident chunks=%d records=%d indices=%d", st.Resident, st.Records, st.Indices)
	for _, m := range meshing.DrawOrder {
		log.Printf("  %-11s quads=%d", m, quads[m])
	}
	for page := 0; page < len(s.Pages); page++ {
		if n := pages[page]; n > 0 {
			log.Printf("  page %d: %d records", page, n)
		}
	}
	if st.Overflowed > 0 || st.Dropped > 0 || st.UploadFailures > 0 {
		log.Printf("warnings: overflowed=%d dropped=%d upload_failures=%d", st.Overflowed, st.Dropped, st.UploadFailures)
	}
}

func dumpPages(s *scene.Scene, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, page := range s.Pages {
		path := filepath.Join(dir, fmt.Sprintf("page_%02d.png", i))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := png.Encode(f, page); err != nil {
			f.Close()
			return fmt.Errorf("encode %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	log.Printf("wrote %d atlas pages to %s", len(s.Pages), dir)
	return nil
}
