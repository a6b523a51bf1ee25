package loader

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/AnyUserName/spritepack/internal/manifest"
)

func TestFromImageNRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = byte(i + 1)
	}

	img := FromImage(src)
	if img.Format != manifest.Rgba8UnormSrgb {
		t.Fatalf("format = %v, want Rgba8UnormSrgb", img.Format)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", img.Width, img.Height)
	}
	if !bytes.Equal(img.Pix, src.Pix) {
		t.Fatalf("pixels differ: %v vs %v", img.Pix, src.Pix)
	}
}

func TestFromImageGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = byte(10 * i)
	}

	img := FromImage(src)
	if img.Format != manifest.R8Unorm {
		t.Fatalf("format = %v, want R8Unorm", img.Format)
	}
	if !bytes.Equal(img.Pix, src.Pix) {
		t.Fatalf("pixels differ: %v vs %v", img.Pix, src.Pix)
	}
}

func TestFromImageGrayOffsetBounds(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4)).SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)
	src.SetGray(1, 1, color.Gray{Y: 200})
	src.SetGray(2, 2, color.Gray{Y: 100})

	img := FromImage(src)
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", img.Width, img.Height)
	}
	if img.Pix[0] != 200 || img.Pix[3] != 100 {
		t.Fatalf("subimage not sampled from bounds origin: %v", img.Pix)
	}
}

func TestFromImageConvertsPaletted(t *testing.T) {
	pal := color.Palette{
		color.NRGBA{R: 255, A: 255},
		color.NRGBA{G: 255, A: 255},
	}
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
	src.SetColorIndex(1, 0, 1)

	img := FromImage(src)
	want := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	if !bytes.Equal(img.Pix, want) {
		t.Fatalf("pixels = %v, want %v", img.Pix, want)
	}
}

func TestResolvePNG(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for i := range src.Pix {
		src.Pix[i] = byte(i * 7)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sprites"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sprites", "tile.png"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := New(dir).Resolve("sprites/tile.png")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if img.Width != 4 || img.Height != 3 {
		t.Fatalf("size = %dx%d, want 4x3", img.Width, img.Height)
	}
	if !bytes.Equal(img.Pix, src.Pix) {
		t.Fatal("decoded pixels differ from source")
	}
}

func TestResolveMissingFile(t *testing.T) {
	_, err := New(t.TempDir()).Resolve("nope.png")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestResolveCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(dir).Resolve("bad.png"); err == nil {
		t.Fatal("expected decode error")
	}
}
