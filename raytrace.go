// Package raytrace is the library root: Render loads a scene file, builds a
// camera from CameraOptions, and drives the integrator/tone-mapper to
// produce an image, mirroring the teacher's single entry-point design.
package raytrace

import (
	"fmt"
	"image"

	"github.com/danlaine/raytrace/internal/camera"
	"github.com/danlaine/raytrace/internal/integrate"
	"github.com/danlaine/raytrace/internal/sceneio"
)

// Mode selects Render's output: linear-HDR tone-mapped color, a grayscale
// depth visualization, or a shading-normal visualization (§4.H).
type Mode = integrate.Mode

const (
	ModeFull   = integrate.ModeFull
	ModeDepth  = integrate.ModeDepth
	ModeNormal = integrate.ModeNormal
)

// CameraOptions configures the look-at camera and output resolution.
type CameraOptions = camera.Options

// RenderOptions bounds the integrator's recursion depth and selects the
// render mode.
type RenderOptions struct {
	// Depth is the maximum number of reflection/refraction bounces Trace
	// may take beyond the primary ray (§4.G).
	Depth int
	Mode  Mode
}

// Render parses the scene at scenePath, builds the camera described by
// cameraOptions, and renders it per renderOptions (§6 "Entry point").
func Render(scenePath string, cameraOptions CameraOptions, renderOptions RenderOptions) (image.Image, error) {
	sc, err := sceneio.Load(scenePath)
	if err != nil {
		return nil, fmt.Errorf("raytrace: %w", err)
	}
	cam := camera.New(cameraOptions)
	img := integrate.Render(sc, cam, cameraOptions.ScreenWidth, cameraOptions.ScreenHeight, renderOptions.Depth, renderOptions.Mode)
	return img, nil
}
