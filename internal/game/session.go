package game

import (
	"log"
	"time"

	"chunk-mesher/internal/camera"
	"chunk-mesher/internal/graphics/renderables/blocks"
	"chunk-mesher/internal/graphics/renderables/wireframe"
	"chunk-mesher/internal/graphics/renderer"
	standardInput "chunk-mesher/internal/input"
	"chunk-mesher/internal/physics"
	"chunk-mesher/internal/profiling"
	"chunk-mesher/internal/scene"
	"chunk-mesher/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Palette is the block placed for each selection key, in slot order.
var Palette = [...]world.BlockID{
	world.BlockStone,
	world.BlockDirt,
	world.BlockGrass,
	world.BlockCobblestone,
	world.BlockPlanks,
	world.BlockGlass,
	world.BlockSlab,
	world.BlockWater,
	world.BlockRose,
}

// Session is one viewer run over a scene: a fly camera, the block and
// highlight renderables and the editing controls.
type Session struct {
	Window    *glfw.Window
	Scene     *scene.Scene
	Renderer  *renderer.Renderer
	Blocks    *blocks.Blocks
	Highlight *wireframe.Wireframe
	Camera    *camera.Camera

	Paused    bool
	ShowStats bool

	selected   world.BlockID
	dusk       bool
	initialEPP int
	target     physics.RaycastResult
	lastStats  time.Time
}

func NewSession(window *glfw.Window, s *scene.Scene) (*Session, error) {
	width, height := window.GetFramebufferSize()
	cam := camera.New(width, height)
	cam.FOV = s.Config.Viewer.FOV

	// spawn above the centre of the world looking along +X
	w := s.World
	cx, cz := w.SizeX/2, w.SizeZ/2
	cam.Position = mgl32.Vec3{float32(cx) + 0.5, float32(max(w.LitHeight(cx, cz), 0)) + 6, float32(cz) + 0.5}
	cam.Pitch = -20

	blocksRenderer := blocks.NewBlocks(s)
	highlight := wireframe.NewWireframe()
	r, err := renderer.NewRenderer(cam, blocksRenderer, highlight)
	if err != nil {
		return nil, err
	}
	r.UpdateViewport(width, height)

	session := &Session{
		Window:     window,
		Scene:      s,
		Renderer:   r,
		Blocks:     blocksRenderer,
		Highlight:  highlight,
		Camera:     cam,
		selected:   Palette[0],
		initialEPP: s.Config.Atlas.ElementsPerPage,
		lastStats:  time.Now(),
	}

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !session.Paused {
			cam.HandleMouseMovement(xpos, ypos)
		}
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		r.UpdateViewport(width, height)
	})

	return session, nil
}

func (s *Session) Cleanup() {
	s.Renderer.Dispose()
	s.Scene.Close()
}

func (s *Session) Update(dt float64, im *standardInput.InputManager) {
	if im.JustPressed(standardInput.ActionPause) {
		s.SetPaused(!s.Paused)
	}
	if s.Paused {
		return
	}

	func() {
		defer profiling.Track("session.Move")()
		forward := axis(im, standardInput.ActionMoveForward, standardInput.ActionMoveBackward)
		right := axis(im, standardInput.ActionMoveRight, standardInput.ActionMoveLeft)
		up := axis(im, standardInput.ActionMoveUp, standardInput.ActionMoveDown)
		boost := float32(1)
		if im.IsActive(standardInput.ActionSprint) {
			boost = 3
		}
		s.Camera.Move(forward, right, up, boost, dt)
	}()

	s.target = physics.Raycast(s.Camera.Position, s.Camera.Front(), physics.MinReachDistance, physics.MaxReachDistance, s.Scene.World, s.pickable)
	s.Highlight.Target = s.target.HitPosition
	s.Highlight.HasTarget = s.target.Hit

	s.handleEdits(im)
	s.handleToggles(im)
}

func axis(im *standardInput.InputManager, positive, negative standardInput.Action) float32 {
	var v float32
	if im.IsActive(positive) {
		v++
	}
	if im.IsActive(negative) {
		v--
	}
	return v
}

// pickable skips liquids so they can be dug through and built in.
func (s *Session) pickable(id world.BlockID) bool {
	return id != world.BlockAir && !s.Scene.Registry.IsTranslucent(id)
}

func (s *Session) handleEdits(im *standardInput.InputManager) {
	for i, action := range standardInput.BlockActions {
		if im.JustPressed(action) {
			s.selected = Palette[i]
		}
	}

	if !s.target.Hit {
		return
	}
	w := s.Scene.World
	hit, adj := s.target.HitPosition, s.target.AdjacentPosition

	if im.JustPressed(standardInput.ActionPick) {
		s.selected = w.BlockAt(hit[0], hit[1], hit[2])
	}
	if im.JustPressed(standardInput.ActionDig) {
		w.Set(hit[0], hit[1], hit[2], world.BlockAir)
	}
	if im.JustPressed(standardInput.ActionPlace) {
		if cur := w.BlockAt(adj[0], adj[1], adj[2]); cur == world.BlockAir || s.Scene.Registry.IsTranslucent(cur) {
			w.Set(adj[0], adj[1], adj[2], s.selected)
		}
	}
}

func (s *Session) handleToggles(im *standardInput.InputManager) {
	if im.JustPressed(standardInput.ActionToggleWireframe) {
		s.Renderer.Wireframe = !s.Renderer.Wireframe
	}
	if im.JustPressed(standardInput.ActionToggleProfiling) {
		s.ShowStats = !s.ShowStats
	}

	if im.JustPressed(standardInput.ActionToggleDusk) {
		s.dusk = !s.dusk
		light := s.Scene.Config.Lighting.Lighting()
		if s.dusk {
			light = s.Scene.Config.DuskLighting()
		}
		s.Scene.Relight(light)
	}

	if im.JustPressed(standardInput.ActionRelayoutAtlas) {
		epp := s.Scene.Textures.Atlas().ElementsPerPage() / 2
		if epp < 1 {
			epp = s.initialEPP
		}
		if err := s.Scene.Relayout(epp); err != nil {
			log.Printf("session: relayout: %v", err)
		} else {
			s.Blocks.ReloadPages()
		}
	}

	if im.JustPressed(standardInput.ActionRebuildAll) {
		s.Scene.World.MarkAllDirty()
	}
}

func (s *Session) Render(dt float64) {
	s.Renderer.Render(dt)

	if time.Since(s.lastStats) >= time.Second {
		if s.ShowStats {
			st := s.Blocks.Stats()
			log.Printf("chunks resident=%d pending=%d dropped=%d records=%d indices=%d upload_failures=%d overflowed=%d",
				st.Resident, st.Pending, st.Dropped, st.Records, st.Indices, st.UploadFailures, st.Overflowed)
			log.Printf("top: %s", profiling.TopN(5))
		}
		profiling.Reset()
		s.lastStats = time.Now()
	}
}

func (s *Session) SetPaused(paused bool) {
	s.Paused = paused
	if s.Paused {
		s.Window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		w, h := s.Window.GetSize()
		s.Window.SetCursorPos(float64(w)/2, float64(h)/2)
	} else {
		s.Window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		s.Camera.FirstMouse = true
	}
}
