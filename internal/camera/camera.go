package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-flying perspective camera. Yaw 0 looks along +X, positive
// pitch looks up; both are in degrees.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float64
	Pitch    float64

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Speed       float32 // blocks per second
	Sensitivity float64 // degrees per pixel

	FirstMouse bool
	lastMouseX float64
	lastMouseY float64
}

func New(width, height int) *Camera {
	c := &Camera{
		FOV:         70.0,
		NearPlane:   0.1,
		FarPlane:    1000.0,
		Speed:       12.0,
		Sensitivity: 0.1,
		FirstMouse:  true,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio. Zero-sized viewports (minimised
// windows) keep the previous ratio.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *Camera) Front() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(c.Yaw))
	pt := mgl32.DegToRad(float32(c.Pitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// HandleMouseMovement turns the camera by the cursor offset since the last
// call. The first call after FirstMouse is set only records the position.
func (c *Camera) HandleMouseMovement(xpos, ypos float64) {
	if c.FirstMouse {
		c.lastMouseX = xpos
		c.lastMouseY = ypos
		c.FirstMouse = false
		return
	}

	xoffset := (xpos - c.lastMouseX) * c.Sensitivity
	yoffset := (c.lastMouseY - ypos) * c.Sensitivity
	c.lastMouseX = xpos
	c.lastMouseY = ypos

	c.Yaw = math.Mod(c.Yaw+xoffset, 360)
	c.Pitch = clamp(c.Pitch+yoffset, -89.0, 89.0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Move flies the camera. forward and right move in the horizontal plane
// relative to the view direction, up moves along world Y. Each input is
// expected in [-1, 1]; boost multiplies the speed.
func (c *Camera) Move(forward, right, up float32, boost float32, dt float64) {
	front := c.Front()
	flat := mgl32.Vec3{front.X(), 0, front.Z()}
	if flat.Len() > 0 {
		flat = flat.Normalize()
	}
	side := flat.Cross(mgl32.Vec3{0, 1, 0})

	dir := flat.Mul(forward).Add(side.Mul(right)).Add(mgl32.Vec3{0, up, 0})
	if dir.Len() == 0 {
		return
	}
	step := c.Speed * boost * float32(dt)
	c.Position = c.Position.Add(dir.Normalize().Mul(step))
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Pitch = clamp(float64(mgl32.RadToDeg(float32(math.Asin(float64(d.Y()))))), -89.0, 89.0)
	c.Yaw = float64(mgl32.RadToDeg(float32(math.Atan2(float64(d.Z()), float64(d.X())))))
}
