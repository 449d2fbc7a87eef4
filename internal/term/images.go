package term

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/nfnt/resize"

	"github.com/gosain/tride/internal/buffer"
	"github.com/gosain/tride/internal/layout"
)

// Images decodes and caches slide images and blits them into the grid.
// Paths that fail to open or decode are remembered so a bad reference
// doesn't hit the filesystem on every frame.
type Images struct {
	baseDir string
	cache   map[string]image.Image
	failed  map[string]struct{}
}

func NewImages() *Images {
	return &Images{
		cache:  make(map[string]image.Image),
		failed: make(map[string]struct{}),
	}
}

// SetBaseDir sets the directory relative image paths resolve against,
// normally the deck file's directory. Deck references stay relative to
// the deck, not to wherever the presenter was launched from.
func (im *Images) SetBaseDir(dir string) {
	im.baseDir = dir
}

// Invalidate drops all cached decodes, e.g. after a live reload.
func (im *Images) Invalidate() {
	im.cache = make(map[string]image.Image)
	im.failed = make(map[string]struct{})
}

// Draw renders the placement's image into buf. Missing or undecodable
// images draw nothing; the placeholder rows simply stay blank.
func (im *Images) Draw(buf *buffer.Buffer, p layout.ImagePlacement) {
	img := im.load(p.Path)
	if img == nil {
		return
	}
	drawImage(buf, p, img)
}

func (im *Images) load(path string) image.Image {
	if img, ok := im.cache[path]; ok {
		return img
	}
	if _, ok := im.failed[path]; ok {
		return nil
	}
	resolved := path
	if im.baseDir != "" && !filepath.IsAbs(path) {
		resolved = filepath.Join(im.baseDir, path)
	}
	f, err := os.Open(resolved)
	if err != nil {
		log.Warn("cannot open image", "path", resolved, "err", err)
		im.failed[path] = struct{}{}
		return nil
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		log.Warn("cannot decode image", "path", resolved, "err", err)
		im.failed[path] = struct{}{}
		return nil
	}
	im.cache[path] = img
	return img
}

// drawImage scales src to fit the placeholder region and paints half
// blocks, two pixel rows per cell row, centered horizontally. Only the
// rows inside the placement are written; OffsetRows skips the part of
// the region scrolled above the window.
func drawImage(buf *buffer.Buffer, p layout.ImagePlacement, src image.Image) {
	fullH := p.FullHeight
	if fullH <= 0 {
		fullH = p.Height
	}
	maxW := p.Width
	if p.MaxWidth > 0 {
		if w := int(float64(p.Width) * p.MaxWidth); w < maxW {
			maxW = w
		}
	}
	if maxW <= 0 || fullH <= 0 {
		return
	}

	scaled := resize.Thumbnail(uint(maxW), uint(fullH*2), src, resize.Bilinear)
	w := scaled.Bounds().Dx()
	h := scaled.Bounds().Dy()

	x0 := p.X + (p.Width-w)/2
	for row := 0; row < p.Height; row++ {
		py := (p.OffsetRows + row) * 2
		if py >= h {
			break
		}
		for col := 0; col < w; col++ {
			top, topOK := pixel(scaled, col, py)
			bottom, bottomOK := pixel(scaled, col, py+1)
			var cell buffer.Cell
			switch {
			case topOK && bottomOK:
				cell = buffer.Cell{Rune: '▀', Style: buffer.Style{Fg: top, Bg: bottom}}
			case topOK:
				cell = buffer.Cell{Rune: '▀', Style: buffer.Style{Fg: top}}
			case bottomOK:
				cell = buffer.Cell{Rune: '▄', Style: buffer.Style{Fg: bottom}}
			default:
				continue
			}
			buf.SetCell(x0+col, p.Y+row, cell)
		}
	}
}

// pixel reads one pixel as a cell color. Mostly transparent pixels
// report not-ok so whatever is under the cell shows through.
func pixel(img image.Image, x, y int) (buffer.Color, bool) {
	b := img.Bounds()
	if x >= b.Dx() || y >= b.Dy() {
		return buffer.Color{}, false
	}
	r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	if a < 0x8000 {
		return buffer.Color{}, false
	}
	return buffer.RGB(uint8(r>>8), uint8(g>>8), uint8(bl>>8)), true
}
