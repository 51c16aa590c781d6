package meshing

import (
	"chunk-mesher/internal/world"
)

// Colour is an 8 bit per channel RGBA colour.
type Colour struct {
	R, G, B, A uint8
}

// Scale multiplies the colour channels by f, truncating. Alpha is kept.
func (c Colour) Scale(f float32) Colour {
	return Colour{
		R: uint8(float32(c.R) * f),
		G: uint8(float32(c.G) * f),
		B: uint8(float32(c.B) * f),
		A: c.A,
	}
}

// Lighting holds the sunlit and shadowed colour of each face class.
type Lighting struct {
	Sunlight, Shadow             Colour // top faces and sprites
	SunlightXSide, ShadowXSide   Colour // west and east
	SunlightZSide, ShadowZSide   Colour // south and north
	SunlightBottom, ShadowBottom Colour
}

// Face shading factors relative to the top colours.
const (
	ShadeX      = 0.6
	ShadeZ      = 0.8
	ShadeBottom = 0.5
)

var (
	DefaultSunlight = Colour{R: 255, G: 255, B: 255, A: 255}
	DefaultShadow   = Colour{R: 155, G: 155, B: 155, A: 255}
)

// NewLighting derives every face class from the top colours.
func NewLighting(sun, shadow Colour) Lighting {
	return Lighting{
		Sunlight:       sun,
		Shadow:         shadow,
		SunlightXSide:  sun.Scale(ShadeX),
		ShadowXSide:    shadow.Scale(ShadeX),
		SunlightZSide:  sun.Scale(ShadeZ),
		ShadowZSide:    shadow.Scale(ShadeZ),
		SunlightBottom: sun.Scale(ShadeBottom),
		ShadowBottom:   shadow.Scale(ShadeBottom),
	}
}

// DefaultLighting returns the standard daylight colours.
func DefaultLighting() Lighting {
	return NewLighting(DefaultSunlight, DefaultShadow)
}

func (l *Lighting) pair(face world.Face) (sun, shadow Colour) {
	switch face {
	case world.FaceTop:
		return l.Sunlight, l.Shadow
	case world.FaceBottom:
		return l.SunlightBottom, l.ShadowBottom
	case world.FaceWest, world.FaceEast:
		return l.SunlightXSide, l.ShadowXSide
	default:
		return l.SunlightZSide, l.ShadowZSide
	}
}

// Colour picks the sunlit or shadowed colour of a face class.
func (l *Lighting) Colour(face world.Face, sunlit bool) Colour {
	sun, shadow := l.pair(face)
	if sunlit {
		return sun
	}
	return shadow
}

// lightResolver decides whether a face receives sunlight. A face is lit
// when the voxel in front of it lies above the column's lit height.
type lightResolver struct {
	vol  Volume
	info BlockInfo
}

func (l lightResolver) isSunlit(x, y, z int, face world.Face) bool {
	dx, dy, dz := face.Offset()
	nx, ny, nz := x+dx, y+dy, z+dz
	if !l.vol.InBounds(nx, ny, nz) {
		return true
	}
	if face.IsSide() {
		return ny > l.adjustedLitHeight(nx, nz)
	}
	return ny > l.vol.LitHeight(nx, nz)
}

// adjustedLitHeight lowers the lit height by one when the top blocker is
// shorter than a full block, so side faces level with a slab stay lit.
func (l lightResolver) adjustedLitHeight(x, z int) int {
	h := l.vol.LitHeight(x, z)
	if h < 0 {
		return -1
	}
	if l.info.Height(l.vol.LitBlock(x, z)) >= 1 {
		return h
	}
	return h - 1
}
