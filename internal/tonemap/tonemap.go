// Package tonemap turns the integrator's per-pixel buffers (linear HDR
// color, hit distance, or hit normal) into an 8-bit image, per §4.H.
package tonemap

import (
	"image"
	"image/color"
	"math"

	"github.com/danlaine/raytrace/internal/prim"
)

// gamma is the display gamma applied after the Reinhard tone map in full
// mode.
const gamma = 2.2

// Full tone-maps a linear HDR color buffer (row-major, width*height
// entries) into an 8-bit RGB image using a Reinhard map whose white point
// Vmax is the largest channel value anywhere in the buffer (one value shared
// by all three channels), followed by gamma correction:
//
//	tmp = V*(1 + V/Vmax²) / (1 + V)
//	out = tmp^(1/gamma)
//
// A NaN result (from 0/0 when both V and Vmax are 0) is clamped to 0 per
// channel, per §4.H and §7.
func Full(buf []prim.Vec3, width, height int) *image.RGBA {
	vmax := maxChannel(buf)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, v := range buf {
		x, y := i%width, i/width
		img.Set(x, y, color.RGBA{
			R: toByte(reinhard(v.X, vmax)),
			G: toByte(reinhard(v.Y, vmax)),
			B: toByte(reinhard(v.Z, vmax)),
			A: 255,
		})
	}
	return img
}

// reinhard maps a single linear HDR channel through the Reinhard tone curve.
// When v and vmax are both 0 this divides 0 by 0, producing NaN; that NaN is
// scrubbed to 0 below rather than guarded against here, matching §4.H.
func reinhard(v, vmax float64) float64 {
	tmp := v * (1 + v/(vmax*vmax)) / (1 + v)
	out := math.Pow(tmp, 1/gamma)
	if math.IsNaN(out) {
		return 0
	}
	return out
}

func maxChannel(buf []prim.Vec3) float64 {
	max := 0.0
	for _, v := range buf {
		max = math.Max(max, math.Max(v.X, math.Max(v.Y, v.Z)))
	}
	return max
}

// toByte rounds a [0,1] value to a byte, clamping against floating-point
// overshoot just above 1.0 so it can never wrap around to 0.
func toByte(v float64) uint8 {
	r := math.Round(v * 255)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

// missDistance is the sentinel for "no hit" in a depth buffer.
const missDistance = -1.0

// NewDepthBuffer returns a width*height buffer initialized to the
// miss sentinel.
func NewDepthBuffer(width, height int) []float64 {
	buf := make([]float64, width*height)
	for i := range buf {
		buf[i] = missDistance
	}
	return buf
}

// Depth renders a depth buffer (as produced by NewDepthBuffer and filled in
// with hit distances) to grayscale: misses are white, hits are
// round(d/Dmax*255) where Dmax is the maximum finite hit distance in the
// buffer. A buffer with no hits at all (Dmax==0) still emits the miss color
// for every pixel (§8 invariant 7: no primitives -> all-white depth image).
func Depth(buf []float64, width, height int) *image.RGBA {
	dmax := 0.0
	for _, d := range buf {
		if d > dmax {
			dmax = d
		}
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, d := range buf {
		x, y := i%width, i/width
		if d == missDistance {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
			continue
		}
		c := toByte(d / dmax)
		img.Set(x, y, color.RGBA{c, c, c, 255})
	}
	return img
}

// DefaultColor is the pixel value a Normal-mode image starts from; misses
// are left at this value (spec.md leaves the exact default
// implementation-defined and only asserts hit pixels in tests).
var DefaultColor = color.RGBA{0, 0, 0, 255}

// NewNormalImage returns a width*height image pre-filled with DefaultColor.
func NewNormalImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, DefaultColor)
		}
	}
	return img
}

// SetNormal encodes unit normal n into image pixel (x,y) as
// round((0.5*N + 0.5) * 255) per channel.
func SetNormal(img *image.RGBA, x, y int, n prim.Vec3) {
	img.Set(x, y, color.RGBA{
		R: toByte(0.5*n.X + 0.5),
		G: toByte(0.5*n.Y + 0.5),
		B: toByte(0.5*n.Z + 0.5),
		A: 255,
	})
}
