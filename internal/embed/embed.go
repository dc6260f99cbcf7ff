// Package embed renders iframe players sized from a width, a height and an
// aspect ratio.
package embed

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strconv"
)

// DefaultRatio applies when neither ratio nor both dimensions are given.
const DefaultRatio = "16:9"

// MaxDimension is the largest width or height rendered, in pixels.
// Larger values, given or derived, count as unset.
const MaxDimension = 100000

// fallbackAspect is used when a ratio cannot be parsed.
const fallbackAspect = 1.778

var ratioPattern = regexp.MustCompile(`(\d+):(\d+)`)

// Dimensions describes the player size. Zero means unset.
type Dimensions struct {
	Width  int
	Height int
	Ratio  string
}

// Aspect returns width/height for the ratio, DefaultRatio when empty.
// Malformed ratios or zero components give 1.778.
func (d Dimensions) Aspect() float64 {
	ratio := d.Ratio
	if ratio == "" {
		ratio = DefaultRatio
	}
	m := ratioPattern.FindStringSubmatch(ratio)
	if m == nil {
		return fallbackAspect
	}
	w, errW := strconv.ParseFloat(m[1], 64)
	h, errH := strconv.ParseFloat(m[2], 64)
	if errW != nil || errH != nil || w == 0 || h == 0 {
		return fallbackAspect
	}
	return w / h
}

// Resolve returns the final width and height. A missing dimension is
// derived from the other one; with neither, both stay unset.
func (d Dimensions) Resolve() (width, height int) {
	width, height = bound(float64(d.Width)), bound(float64(d.Height))
	if width > 0 && height > 0 {
		return width, height
	}

	aspect := d.Aspect()
	switch {
	case width > 0:
		height = bound(float64(width) / aspect)
	case height > 0:
		width = bound(float64(height) * aspect)
	}
	return width, height
}

// bound rounds v to whole pixels, 0 when outside 1..MaxDimension.
func bound(v float64) int {
	v = math.Round(v)
	if v < 1 || v > MaxDimension {
		return 0
	}
	return int(v)
}

// Render builds the iframe element for src.
func Render(src string, dims Dimensions) string {
	w, h := dims.Resolve()
	return fmt.Sprintf(`<iframe width="%s" height="%s" src="%s" frameborder="0" allowfullscreen></iframe>`,
		formatDim(w), formatDim(h), html.EscapeString(src))
}

func formatDim(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}
