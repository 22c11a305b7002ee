package integrate

import (
	"image"
	"runtime"
	"sync"

	"github.com/danlaine/raytrace/internal/camera"
	"github.com/danlaine/raytrace/internal/prim"
	"github.com/danlaine/raytrace/internal/scene"
	"github.com/danlaine/raytrace/internal/tonemap"
)

// Mode selects which of the three pixel loops Render runs (§4.H).
type Mode int

const (
	ModeFull Mode = iota
	ModeDepth
	ModeNormal
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeDepth:
		return "depth"
	case ModeNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Render runs the primary-ray pixel loop for mode over an image of the
// given dimensions and tone-maps the result to an 8-bit image. depth is
// only meaningful in ModeFull, where it bounds Trace's recursion.
func Render(sc *scene.Scene, cam camera.Camera, width, height, depth int, mode Mode) *image.RGBA {
	switch mode {
	case ModeDepth:
		return renderDepth(sc, cam, width, height)
	case ModeNormal:
		return renderNormal(sc, cam, width, height)
	default:
		return renderFull(sc, cam, width, height, depth)
	}
}

// forEachPixel distributes the width*height pixel grid across a worker pool
// (one worker per available core, capped at the row count) and calls f for
// every pixel. The scene each worker reads is never mutated during a
// render, and every worker writes only to indices f itself is given, so no
// locking is needed here (§5).
func forEachPixel(width, height int, f func(x, y int)) {
	rows := make(chan int, height)
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)

	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for y := range rows {
				for x := 0; x < width; x++ {
					f(x, y)
				}
			}
		}()
	}
	wg.Wait()
}

func renderFull(sc *scene.Scene, cam camera.Camera, width, height, depth int) *image.RGBA {
	buf := make([]prim.Vec3, width*height)
	forEachPixel(width, height, func(x, y int) {
		ray := cam.PrimaryRay(y, x)
		buf[y*width+x] = Trace(ray, depth, 0, sc)
	})
	return tonemap.Full(buf, width, height)
}

func renderDepth(sc *scene.Scene, cam camera.Camera, width, height int) *image.RGBA {
	buf := tonemap.NewDepthBuffer(width, height)
	forEachPixel(width, height, func(x, y int) {
		ray := cam.PrimaryRay(y, x)
		if h, ok := nearestHit(ray, sc); ok {
			buf[y*width+x] = h.isect.Distance
		}
	})
	return tonemap.Depth(buf, width, height)
}

type normalSample struct {
	hit bool
	n   prim.Vec3
}

func renderNormal(sc *scene.Scene, cam camera.Camera, width, height int) *image.RGBA {
	samples := make([]normalSample, width*height)
	forEachPixel(width, height, func(x, y int) {
		ray := cam.PrimaryRay(y, x)
		if h, ok := nearestHit(ray, sc); ok {
			samples[y*width+x] = normalSample{hit: true, n: h.shadingNormal.Normalize()}
		}
	})

	img := tonemap.NewNormalImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			s := samples[y*width+x]
			if s.hit {
				tonemap.SetNormal(img, x, y, s.n)
			}
		}
	}
	return img
}
