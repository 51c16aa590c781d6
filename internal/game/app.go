package game

import (
	"log"
	"time"

	standardInput "chunk-mesher/internal/input"
	"chunk-mesher/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// slowFrame is the frame time above which the busiest tasks are logged.
const slowFrame = 50 * time.Millisecond

// App drives the window's frame loop for a session.
type App struct {
	window       *glfw.Window
	inputManager *standardInput.InputManager
	session      *Session

	fpsLimiter *FPSLimiter
	lastTime   time.Time
}

func NewApp(window *glfw.Window, im *standardInput.InputManager, session *Session, fpsLimit int) *App {
	im.SetCallbacks(window)
	return &App{
		window:       window,
		inputManager: im,
		session:      session,
		fpsLimiter:   NewFPSLimiter(fpsLimit),
		lastTime:     time.Now(),
	}
}

// Run renders frames until the window is closed, then releases the session.
func (a *App) Run() {
	defer a.session.Cleanup()
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	startTick := time.Now()
	dt := startTick.Sub(a.lastTime).Seconds()
	a.lastTime = startTick

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	a.session.Update(dt, a.inputManager)
	a.session.Render(dt)

	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	if d := time.Since(startTick); d > slowFrame {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}

	a.inputManager.PostUpdate() // Clear "JustPressed" flags
	a.fpsLimiter.Wait(a.session.Paused)
}
