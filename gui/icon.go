//go:build gui

package gui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"

	"fyne.io/fyne/v2"
)

var (
	iconHidden = fyne.NewStaticResource("mnemo-idle.png", renderIcon(44, nil))
	iconShown  = fyne.NewStaticResource("mnemo-hints.png", renderIcon(44, &color.RGBA{R: 255, G: 204, B: 0, A: 255}))
)

// renderIcon draws a dark key cap with an underline bar, filled with
// accent when hints are on.
func renderIcon(size int, accent *color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := float64(size)
	radius := s * 0.2
	inset := 1.0
	keyCap := color.RGBA{R: 48, G: 48, B: 48, A: 255}
	bar := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	if accent != nil {
		bar = *accent
	}

	for y := range size {
		for x := range size {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			if !inRoundedRect(fx, fy, inset, s-inset, radius) {
				continue
			}
			if fy >= s*0.68 && fy <= s*0.78 && fx >= s*0.28 && fx <= s*0.72 {
				img.Set(x, y, bar)
				continue
			}
			img.Set(x, y, keyCap)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic("renderIcon: " + err.Error())
	}
	return buf.Bytes()
}

func inRoundedRect(x, y, lo, hi, r float64) bool {
	if x < lo || x > hi || y < lo || y > hi {
		return false
	}
	cx := math.Max(lo+r, math.Min(x, hi-r))
	cy := math.Max(lo+r, math.Min(y, hi-r))
	return math.Hypot(x-cx, y-cy) <= r
}
