package camera

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/danlaine/raytrace/internal/prim"
)

var approxOpts = cmpopts.EquateApprox(1e-9, 0.0)

func TestPrimaryRayCenterPixelLooksAtTarget(t *testing.T) {
	opts := Options{
		LookFrom:     prim.Vec3{X: 0, Y: 0, Z: 0},
		LookTo:       prim.Vec3{X: 0, Y: 0, Z: -1},
		FOV:          math.Pi / 2,
		ScreenWidth:  101,
		ScreenHeight: 101,
	}
	cam := New(opts)
	ray := cam.PrimaryRay(50, 50)

	if diff := cmp.Diff(ray.Origin, opts.LookFrom, approxOpts); diff != "" {
		t.Errorf("Origin mismatch (-got +want):\n%s", diff)
	}
	want := prim.Vec3{X: 0, Y: 0, Z: -1}
	if diff := cmp.Diff(ray.Direction, want, cmpopts.EquateApprox(1e-2, 0)); diff != "" {
		t.Errorf("center-pixel direction mismatch (-got +want):\n%s", diff)
	}
}

func TestPrimaryRayIsNormalized(t *testing.T) {
	cam := New(Options{
		LookFrom: prim.Vec3{X: 2, Y: 1, Z: 3}, LookTo: prim.Vec3{X: 0, Y: 0, Z: 0},
		FOV: math.Pi / 3, ScreenWidth: 64, ScreenHeight: 48,
	})
	for _, px := range [][2]int{{0, 0}, {10, 20}, {47, 63}} {
		ray := cam.PrimaryRay(px[0], px[1])
		if math.Abs(ray.Direction.Length()-1) > 1e-9 {
			t.Errorf("PrimaryRay(%v).Direction length = %v, want 1", px, ray.Direction.Length())
		}
	}
}

func TestLookAtDegenerateUpFallsBackToWorldZ(t *testing.T) {
	// Looking straight down world Y makes the default (0,1,0) up candidate
	// parallel to forward; New must not panic or produce a NaN basis.
	cam := New(Options{
		LookFrom: prim.Vec3{X: 0, Y: 5, Z: 0}, LookTo: prim.Vec3{X: 0, Y: 0, Z: 0},
		FOV: math.Pi / 2, ScreenWidth: 10, ScreenHeight: 10,
	})
	m := cam.Matrix()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if math.IsNaN(m[r][c]) {
				t.Fatalf("Matrix()[%d][%d] is NaN", r, c)
			}
		}
	}
	ray := cam.PrimaryRay(5, 5)
	if math.IsNaN(ray.Direction.X) || math.IsNaN(ray.Direction.Y) || math.IsNaN(ray.Direction.Z) {
		t.Errorf("PrimaryRay direction is NaN: %v", ray.Direction)
	}
}

func TestMat4MulPointIdentityLikeTranslation(t *testing.T) {
	var m Mat4
	m[0] = [4]float64{1, 0, 0, 0}
	m[1] = [4]float64{0, 1, 0, 0}
	m[2] = [4]float64{0, 0, 1, 0}
	m[3] = [4]float64{5, 6, 7, 1}

	got := m.MulPoint(prim.Vec3{X: 1, Y: 2, Z: 3})
	want := prim.Vec3{X: 6, Y: 8, Z: 10}
	if diff := cmp.Diff(got, want, approxOpts); diff != "" {
		t.Errorf("MulPoint() mismatch (-got +want):\n%s", diff)
	}
}

func TestMat4MulDirIgnoresTranslation(t *testing.T) {
	var m Mat4
	m[0] = [4]float64{1, 0, 0, 0}
	m[1] = [4]float64{0, 1, 0, 0}
	m[2] = [4]float64{0, 0, 1, 0}
	m[3] = [4]float64{5, 6, 7, 1}

	got := m.MulDir(prim.Vec3{X: 1, Y: 2, Z: 3})
	want := prim.Vec3{X: 1, Y: 2, Z: 3}
	if diff := cmp.Diff(got, want, approxOpts); diff != "" {
		t.Errorf("MulDir() mismatch (-got +want):\n%s", diff)
	}
}
