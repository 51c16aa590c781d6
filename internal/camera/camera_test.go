package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-4
}

func TestFrontVector(t *testing.T) {
	tests := []struct {
		yaw, pitch float64
		want       mgl32.Vec3
	}{
		{0, 0, mgl32.Vec3{1, 0, 0}},
		{90, 0, mgl32.Vec3{0, 0, 1}},
		{180, 0, mgl32.Vec3{-1, 0, 0}},
		{0, 89, mgl32.Vec3{float32(math.Cos(89 * math.Pi / 180)), float32(math.Sin(89 * math.Pi / 180)), 0}},
	}
	c := New(800, 600)
	for _, tt := range tests {
		c.Yaw, c.Pitch = tt.yaw, tt.pitch
		if got := c.Front(); !near(got, tt.want) {
			t.Errorf("yaw %v pitch %v: got %v want %v", tt.yaw, tt.pitch, got, tt.want)
		}
	}
}

func TestMouseMovementClampsPitch(t *testing.T) {
	c := New(800, 600)
	c.HandleMouseMovement(100, 100) // first event only records
	if c.Yaw != 0 || c.Pitch != 0 {
		t.Fatalf("first event turned the camera: yaw %v pitch %v", c.Yaw, c.Pitch)
	}
	c.HandleMouseMovement(150, 100)
	if math.Abs(c.Yaw-5) > 1e-9 {
		t.Fatalf("yaw: got %v want 5", c.Yaw)
	}
	c.HandleMouseMovement(150, -5000)
	if c.Pitch != 89 {
		t.Fatalf("pitch not clamped: %v", c.Pitch)
	}
}

func TestMoveIgnoresPitch(t *testing.T) {
	c := New(800, 600)
	c.Pitch = 60
	c.Speed = 2
	c.Move(1, 0, 0, 1, 0.5)
	if !near(c.Position, mgl32.Vec3{1, 0, 0}) {
		t.Fatalf("forward: got %v", c.Position)
	}

	c.Position = mgl32.Vec3{}
	c.Move(0, 1, 0, 1, 0.5)
	// right of +X looking along +X is +Z
	if !near(c.Position, mgl32.Vec3{0, 0, 1}) {
		t.Fatalf("right: got %v", c.Position)
	}

	c.Position = mgl32.Vec3{}
	c.Move(0, 0, 1, 3, 0.5)
	if !near(c.Position, mgl32.Vec3{0, 3, 0}) {
		t.Fatalf("boosted up: got %v", c.Position)
	}

	c.Position = mgl32.Vec3{}
	c.Move(0, 0, 0, 1, 1)
	if c.Position != (mgl32.Vec3{}) {
		t.Fatalf("idle move changed position: %v", c.Position)
	}
}

func TestLookAt(t *testing.T) {
	c := New(800, 600)
	c.Position = mgl32.Vec3{0, 10, 0}
	c.LookAt(mgl32.Vec3{10, 0, 0})
	if want := (mgl32.Vec3{1, -1, 0}).Normalize(); !near(c.Front(), want) {
		t.Fatalf("front after LookAt: got %v want %v", c.Front(), want)
	}
}

func TestSetViewportIgnoresZero(t *testing.T) {
	c := New(800, 400)
	c.SetViewport(0, 0)
	if c.AspectRatio != 2 {
		t.Fatalf("aspect ratio: got %v want 2", c.AspectRatio)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	c := New(800, 600)
	c.Yaw, c.Pitch = 30, -15
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.ProjectionMatrix().Mul4(c.ViewMatrix())
	}
}
