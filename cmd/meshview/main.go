package main

import (
	"flag"
	"log"
	"runtime"

	"chunk-mesher/internal/config"
	"chunk-mesher/internal/game"
	"chunk-mesher/internal/input"
	"chunk-mesher/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to mesher configuration file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	s, err := scene.New(cfg)
	if err != nil {
		log.Fatalf("build scene: %v", err)
	}

	if err := glfw.Init(); err != nil {
		s.Close()
		log.Fatalf("init glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg.Viewer.Width, cfg.Viewer.Height, "chunk mesher")
	if err != nil {
		s.Close()
		log.Fatalf("create window: %v", err)
	}

	session, err := game.NewSession(window, s)
	if err != nil {
		s.Close()
		log.Fatalf("start session: %v", err)
	}

	log.Printf("world %dx%dx%d, %d chunks, %d atlas pages",
		cfg.World.SizeX, cfg.World.SizeY, cfg.World.SizeZ, len(s.World.ChunkCoords()), len(s.Pages))
	game.NewApp(window, input.NewInputManager(), session, cfg.Viewer.FPSLimit).Run()
}
