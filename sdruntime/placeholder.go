package sdruntime

import (
	"context"
	"hash/fnv"
	"image"
	"image/color"
	"strings"
	"sync/atomic"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PlaceholderModel renders a gradient card with the prompt written on it.
// It needs no accelerator and is used for dry runs and tests.
type PlaceholderModel struct {
	device int
	closed atomic.Bool
}

// NewPlaceholderModel returns a placeholder bound (nominally) to device.
func NewPlaceholderModel(device int) *PlaceholderModel {
	return &PlaceholderModel{device: device}
}

// Generate implements Model. Output is deterministic for a given prompt and
// non-negative seed.
func (m *PlaceholderModel) Generate(ctx context.Context, params GenerateParams) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrModelClosed
	}
	if err := ValidateParams(params); err != nil {
		return nil, err
	}
	if err := contextError(ctx); err != nil {
		return nil, err
	}

	seed := params.Seed
	if seed < 0 {
		h := fnv.New64a()
		h.Write([]byte(params.Prompt))
		seed = int64(h.Sum64() &^ (1 << 63))
	}

	img := image.NewRGBA(image.Rect(0, 0, params.Width, params.Height))
	paintGradient(img, seed)
	drawCaption(img, params.Prompt)

	return encodeImage(img)
}

// Close implements Model.
func (m *PlaceholderModel) Close() error {
	m.closed.Store(true)
	return nil
}

func paintGradient(img *image.RGBA, seed int64) {
	b := img.Bounds()
	r0, g0, b0 := uint8(seed), uint8(seed>>8), uint8(seed>>16)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := uint8(y * 255 / b.Dy())
		for x := b.Min.X; x < b.Max.X; x++ {
			s := uint8(x * 255 / b.Dx())
			img.SetRGBA(x, y, color.RGBA{
				R: r0/2 + t/2,
				G: g0/2 + s/2,
				B: b0/2 + (255-t)/4,
				A: 255,
			})
		}
	}
}

const captionMargin = 8

func drawCaption(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	b := img.Bounds()
	maxChars := (b.Dx() - 2*captionMargin) / face.Advance
	lineHeight := face.Height + 2

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	y := captionMargin + face.Ascent
	for _, line := range wrapWords(text, maxChars) {
		if y+face.Descent > b.Max.Y-captionMargin {
			break
		}
		d.Dot = fixed.P(captionMargin, y)
		d.DrawString(line)
		y += lineHeight
	}
}

// wrapWords breaks text into lines of at most width runes, splitting
// words longer than width.
func wrapWords(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if curLen > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
	}
	for _, word := range strings.Fields(text) {
		r := []rune(word)
		for len(r) > width {
			flush()
			lines = append(lines, string(r[:width]))
			r = r[width:]
		}
		if curLen > 0 && curLen+1+len(r) > width {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(string(r))
		curLen += len(r)
	}
	flush()
	return lines
}
