package atlas

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"chunk-mesher/internal/world"
)

func TestRectLayout(t *testing.T) {
	a, err := New(10, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := a.PageCount(); got != 3 {
		t.Fatalf("PageCount: got %d, want 3", got)
	}
	if got := a.InvElementSize(); got != 0.25 {
		t.Fatalf("InvElementSize: got %v, want 0.25", got)
	}

	cases := []struct {
		index int
		page  int
		v1    float32
	}{
		{0, 0, 0},
		{3, 0, 0.75},
		{4, 1, 0},
		{9, 2, 0.25},
		{10, 0, 0}, // out of range falls back to tile 0
		{-1, 0, 0},
	}
	for _, c := range cases {
		r, page := a.Rect(c.index)
		if page != c.page || r.V1 != c.v1 || r.V2 != c.v1+0.25 || r.U1 != 0 || r.U2 != 1 {
			t.Errorf("Rect(%d) = %+v page %d, want page %d v1 %v", c.index, r, page, c.page, c.v1)
		}
	}
}

func TestNewRejectsBadLayout(t *testing.T) {
	if _, err := New(0, 4); err == nil {
		t.Errorf("expected error for empty atlas")
	}
	if _, err := New(4, 0); err == nil {
		t.Errorf("expected error for zero elements per page")
	}
}

type fixedIndex map[world.BlockID]int

func (f fixedIndex) TextureIndex(id world.BlockID, face world.Face) int {
	if face == world.FaceTop {
		return f[id] + 1
	}
	return f[id]
}

func TestBlockTextures(t *testing.T) {
	a, _ := New(8, 2)
	bt := NewBlockTextures(fixedIndex{world.BlockStone: 4}, a)

	r, page := bt.TextureRect(world.BlockStone, world.FaceNorth)
	if page != 2 || r.V1 != 0 {
		t.Errorf("side: got page %d rect %+v", page, r)
	}
	r, page = bt.TextureRect(world.BlockStone, world.FaceTop)
	if page != 2 || r.V1 != 0.5 {
		t.Errorf("top: got page %d rect %+v", page, r)
	}
	if bt.PageCount() != 4 || bt.InvElementSize() != 0.5 {
		t.Errorf("unexpected layout %d pages, inv %v", bt.PageCount(), bt.InvElementSize())
	}
}

func solidTile(size int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestComposePages(t *testing.T) {
	a, _ := New(3, 2)
	red := color.RGBA{R: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}
	tiles := map[string]image.Image{
		"a.png": solidTile(8, red),
		"b.png": solidTile(32, green), // scaled down
	}
	load := func(name string) (image.Image, error) {
		if img, ok := tiles[name]; ok {
			return img, nil
		}
		return nil, errors.New("missing")
	}

	pages, err := ComposePages(a, []string{"a.png", "b.png", "c.png"}, 16, load)
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if b := pages[0].Bounds(); b.Dx() != 16 || b.Dy() != 32 {
		t.Fatalf("page size %v, want 16x32", b)
	}
	if got := pages[0].RGBAAt(3, 3); got != red {
		t.Errorf("slot 0: got %v, want red", got)
	}
	if got := pages[0].RGBAAt(3, 16+3); got != green {
		t.Errorf("slot 1: got %v, want green", got)
	}
	if got := pages[1].RGBAAt(0, 0); got != (color.RGBA{R: 255, B: 255, A: 255}) {
		t.Errorf("missing tile should be the placeholder, got %v", got)
	}

	if _, err := ComposePages(a, []string{"a.png"}, 16, load); err == nil {
		t.Errorf("expected error for name count mismatch")
	}
}

func TestSwatchLoader(t *testing.T) {
	load := SwatchLoader(8)
	a, err := load("stone.png")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := load("dirt.png")
	again, _ := load("stone.png")

	sa := a.(*image.RGBA)
	if sa.RGBAAt(3, 3) == b.(*image.RGBA).RGBAAt(3, 3) {
		t.Errorf("different names produced the same colour")
	}
	if sa.RGBAAt(3, 3) != again.(*image.RGBA).RGBAAt(3, 3) {
		t.Errorf("swatch colour is not stable")
	}
	if sa.RGBAAt(0, 0) == sa.RGBAAt(3, 3) {
		t.Errorf("swatch has no border")
	}
	if sa.RGBAAt(3, 3).A != 255 {
		t.Errorf("swatch is not opaque")
	}
}
