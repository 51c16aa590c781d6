package graphics

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// AtlasPages holds one GL texture per atlas page. Pages are vertical strips
// of tiles, so S repeats to allow merged faces to tile their texture while
// T is clamped to keep neighbouring tiles from bleeding in.
type AtlasPages struct {
	textures []uint32
}

// Upload replaces the current page textures with pages.
func (p *AtlasPages) Upload(pages []*image.RGBA) error {
	p.Dispose()
	if len(pages) == 0 {
		return fmt.Errorf("upload atlas pages: no pages")
	}
	p.textures = make([]uint32, len(pages))
	gl.GenTextures(int32(len(pages)), &p.textures[0])

	for i, page := range pages {
		gl.BindTexture(gl.TEXTURE_2D, p.textures[i])
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

		size := page.Rect.Size()
		gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(page.Stride/4))
		gl.TexImage2D(
			gl.TEXTURE_2D,
			0,
			gl.RGBA,
			int32(size.X),
			int32(size.Y),
			0,
			gl.RGBA,
			gl.UNSIGNED_BYTE,
			gl.Ptr(page.Pix),
		)
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := gl.GetError(); err != gl.NO_ERROR {
		p.Dispose()
		return fmt.Errorf("upload atlas pages: gl error 0x%x", err)
	}
	return nil
}

// Count returns the number of uploaded pages.
func (p *AtlasPages) Count() int {
	return len(p.textures)
}

// Bind binds a page to texture unit 0.
func (p *AtlasPages) Bind(page int) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.textures[page])
}

func (p *AtlasPages) Dispose() {
	if len(p.textures) > 0 {
		gl.DeleteTextures(int32(len(p.textures)), &p.textures[0])
	}
	p.textures = nil
}
