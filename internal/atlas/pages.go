package atlas

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// TileLoader returns the image for a texture name.
type TileLoader func(name string) (image.Image, error)

// DirLoader loads tiles as image files from a directory.
func DirLoader(dir string) TileLoader {
	return func(name string) (image.Image, error) {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return img, nil
	}
}

// Placeholder returns the magenta and black checkerboard used for missing
// tiles.
func Placeholder(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := max(size/2, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.RGBA{A: 255}
			if (x/half+y/half)%2 == 0 {
				c = color.RGBA{R: 255, B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// SwatchLoader generates flat tiles with a colour derived from the texture
// name and a darker one pixel border, for running without texture assets.
func SwatchLoader(size int) TileLoader {
	return func(name string) (image.Image, error) {
		h := fnv.New32a()
		h.Write([]byte(name))
		sum := h.Sum32()
		fill := color.RGBA{R: 64 + uint8(sum)%160, G: 64 + uint8(sum>>8)%160, B: 64 + uint8(sum>>16)%160, A: 255}
		edge := color.RGBA{R: fill.R / 2, G: fill.G / 2, B: fill.B / 2, A: 255}

		img := image.NewRGBA(image.Rect(0, 0, size, size))
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				c := fill
				if x == 0 || y == 0 || x == size-1 || y == size-1 {
					c = edge
				}
				img.SetRGBA(x, y, c)
			}
		}
		return img, nil
	}
}

// ComposePages renders every named tile into page images of tileSize wide
// and tileSize*ElementsPerPage tall. Tiles of other sizes are scaled with
// nearest-neighbour sampling; tiles that fail to load are replaced by the
// placeholder and logged.
func ComposePages(a *Atlas, names []string, tileSize int, load TileLoader) ([]*image.RGBA, error) {
	if len(names) != a.Count() {
		return nil, fmt.Errorf("atlas: %d names for %d tiles", len(names), a.Count())
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("atlas: invalid tile size %d", tileSize)
	}

	pages := make([]*image.RGBA, a.PageCount())
	for i := range pages {
		pages[i] = image.NewRGBA(image.Rect(0, 0, tileSize, tileSize*a.ElementsPerPage()))
	}

	var placeholder *image.RGBA
	for i, name := range names {
		img, err := load(name)
		if err != nil {
			log.Printf("atlas: tile %q: %v", name, err)
			if placeholder == nil {
				placeholder = Placeholder(tileSize)
			}
			img = placeholder
		}
		page := i / a.ElementsPerPage()
		slot := i % a.ElementsPerPage()
		dst := image.Rect(0, slot*tileSize, tileSize, (slot+1)*tileSize)
		xdraw.NearestNeighbor.Scale(pages[page], dst, img, img.Bounds(), xdraw.Src, nil)
	}
	return pages, nil
}
