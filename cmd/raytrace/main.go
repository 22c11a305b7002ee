package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"math"
	"os"

	rt "github.com/danlaine/raytrace"
	"github.com/danlaine/raytrace/internal/prim"
)

var (
	sceneFile = flag.String("scene_file", "", "scene filename to render (required)")
	outFile   = flag.String("out_file", "", "png filename to write (required)")

	width  = flag.Int("width", 1900, "output image width in pixels")
	height = flag.Int("height", 1200, "output image height in pixels")
	fovDeg = flag.Float64("fov", 60, "vertical field of view, in degrees")
	depth  = flag.Int("depth", 4, "maximum reflection/refraction recursion depth")
	mode   = flag.String("mode", "full", "render mode: full, depth, or normal")

	fromX = flag.Float64("from_x", 0, "camera eye position X")
	fromY = flag.Float64("from_y", 0, "camera eye position Y")
	fromZ = flag.Float64("from_z", 0, "camera eye position Z")
	toX   = flag.Float64("to_x", 0, "camera look-at target X")
	toY   = flag.Float64("to_y", 0, "camera look-at target Y")
	toZ   = flag.Float64("to_z", -1, "camera look-at target Z")
)

func parseMode(s string) (rt.Mode, error) {
	switch s {
	case "full":
		return rt.ModeFull, nil
	case "depth":
		return rt.ModeDepth, nil
	case "normal":
		return rt.ModeNormal, nil
	default:
		return 0, fmt.Errorf("unknown mode %q: want full, depth, or normal", s)
	}
}

func main() {
	flag.Parse()
	if len(*sceneFile) == 0 {
		log.Fatal("--scene_file is required")
	}
	if len(*outFile) == 0 {
		log.Fatal("--out_file is required")
	}

	renderMode, err := parseMode(*mode)
	if err != nil {
		log.Fatal(err)
	}

	cameraOptions := rt.CameraOptions{
		LookFrom:     prim.Vec3{X: *fromX, Y: *fromY, Z: *fromZ},
		LookTo:       prim.Vec3{X: *toX, Y: *toY, Z: *toZ},
		FOV:          *fovDeg * math.Pi / 180,
		ScreenWidth:  *width,
		ScreenHeight: *height,
	}
	renderOptions := rt.RenderOptions{Depth: *depth, Mode: renderMode}

	img, err := rt.Render(*sceneFile, cameraOptions, renderOptions)
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*outFile)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s\n", *outFile)
}
