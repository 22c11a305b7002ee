package integrate

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/danlaine/raytrace/internal/camera"
	"github.com/danlaine/raytrace/internal/geom"
	"github.com/danlaine/raytrace/internal/prim"
	"github.com/danlaine/raytrace/internal/scene"
	"github.com/danlaine/raytrace/internal/tonemap"
)

var approxOpts = cmpopts.EquateApprox(1e-6, 0.0)

func TestTraceEmptySceneIsBlack(t *testing.T) {
	sc := scene.NewScene()
	ray := prim.Ray{Origin: prim.Vec3{}, Direction: prim.Vec3{X: 0, Y: 0, Z: -1}}
	got := Trace(ray, 5, 0, sc)
	if diff := cmp.Diff(got, prim.Vec3{}, approxOpts); diff != "" {
		t.Errorf("Trace() mismatch (-got +want):\n%s", diff)
	}
}

func TestTraceNegativeDepthIsBlack(t *testing.T) {
	sc := scene.NewScene()
	matID := sc.AddMaterial(scene.Material{Name: "m", Ambient: prim.Vec3{X: 1, Y: 1, Z: 1}, Albedo: prim.Vec3{X: 1, Y: 0, Z: 0}})
	sc.SphereObjects = append(sc.SphereObjects, scene.SphereObject{
		Sphere: geom.Sphere{Center: prim.Vec3{X: 0, Y: 0, Z: -5}, Radius: 1}, Material: matID,
	})
	ray := prim.Ray{Origin: prim.Vec3{}, Direction: prim.Vec3{X: 0, Y: 0, Z: -1}}
	got := Trace(ray, -1, 0, sc)
	if got != (prim.Vec3{}) {
		t.Errorf("Trace() with depth<0 = %v, want black", got)
	}
}

// TestTraceAmbientOnlySphere is scenario S6's spirit applied at the Trace
// layer directly: an ambient-only material with no lights and depth 0
// contributes only its ambient term, with no recursive terms possible.
func TestTraceAmbientOnlySphere(t *testing.T) {
	sc := scene.NewScene()
	matID := sc.AddMaterial(scene.Material{
		Name:    "ambient-only",
		Ambient: prim.Vec3{X: 0.2, Y: 0.4, Z: 0.6},
		Albedo:  prim.Vec3{X: 1, Y: 0, Z: 0},
		Ns:      1,
		Ni:      1,
	})
	sc.SphereObjects = append(sc.SphereObjects, scene.SphereObject{
		Sphere: geom.Sphere{Center: prim.Vec3{X: 0, Y: 0, Z: -5}, Radius: 1}, Material: matID,
	})
	ray := prim.Ray{Origin: prim.Vec3{}, Direction: prim.Vec3{X: 0, Y: 0, Z: -1}}
	got := Trace(ray, 0, 0, sc)
	want := prim.Vec3{X: 0.2, Y: 0.4, Z: 0.6}
	if diff := cmp.Diff(got, want, approxOpts); diff != "" {
		t.Errorf("Trace() mismatch (-got +want):\n%s", diff)
	}
}

func TestRefractEtaOneIsIdentity(t *testing.T) {
	// §8 invariant 5: refraction with eta=1 returns the incident direction
	// unchanged.
	dir := prim.Vec3{X: 0.3, Y: -0.2, Z: -1}.Normalize()
	n := prim.Vec3{X: 0, Y: 0, Z: 1}
	got, ok := refract(dir, n, 1.0)
	if !ok {
		t.Fatal("refract() reported total internal reflection for eta=1")
	}
	if diff := cmp.Diff(got, dir, approxOpts); diff != "" {
		t.Errorf("refract() mismatch (-got +want):\n%s", diff)
	}
}

// TestRefractTotalInternalReflection is scenario S4: grazing incidence with
// eta > 1 must report no refraction term.
func TestRefractTotalInternalReflection(t *testing.T) {
	dir := prim.Vec3{X: 1, Y: 0, Z: -0.001}.Normalize()
	n := prim.Vec3{X: 0, Y: 0, Z: 1}
	if _, ok := refract(dir, n, 1.5); ok {
		t.Error("refract() = ok for grazing incidence with eta=1.5, want total internal reflection")
	}
}

func TestTraceEtaOneRefractionPassesThrough(t *testing.T) {
	// A transparent sphere (Ni=1 so eta=1, albedo kt=1, no local
	// contribution) placed in front of an ambient-only sphere should
	// produce the same color as tracing straight to the background sphere
	// alone, since eta=1 refraction leaves the ray direction unchanged.
	bg := scene.Material{Name: "bg", Ambient: prim.Vec3{X: 0.5, Y: 0.1, Z: 0.1}, Albedo: prim.Vec3{X: 1, Y: 0, Z: 0}, Ns: 1, Ni: 1}
	glass := scene.Material{Name: "glass", Albedo: prim.Vec3{X: 0, Y: 0, Z: 1}, Ns: 1, Ni: 1}

	withGlass := scene.NewScene()
	glassID := withGlass.AddMaterial(glass)
	bgID := withGlass.AddMaterial(bg)
	withGlass.SphereObjects = append(withGlass.SphereObjects,
		scene.SphereObject{Sphere: geom.Sphere{Center: prim.Vec3{X: 0, Y: 0, Z: -2}, Radius: 1}, Material: glassID},
		scene.SphereObject{Sphere: geom.Sphere{Center: prim.Vec3{X: 0, Y: 0, Z: -6}, Radius: 1}, Material: bgID},
	)

	bgOnly := scene.NewScene()
	bgOnlyID := bgOnly.AddMaterial(bg)
	bgOnly.SphereObjects = append(bgOnly.SphereObjects,
		scene.SphereObject{Sphere: geom.Sphere{Center: prim.Vec3{X: 0, Y: 0, Z: -6}, Radius: 1}, Material: bgOnlyID},
	)

	ray := prim.Ray{Origin: prim.Vec3{}, Direction: prim.Vec3{X: 0, Y: 0, Z: -1}}
	gotWithGlass := Trace(ray, 4, 0, withGlass)
	gotBgOnly := Trace(ray, 4, 0, bgOnly)

	if diff := cmp.Diff(gotWithGlass, gotBgOnly, approxOpts); diff != "" {
		t.Errorf("refracting through an eta=1 sphere changed the traced color (-withGlass +bgOnly):\n%s", diff)
	}
}

// TestRenderDepthNearerIsDarker is scenario S5. The far sphere sits off the
// optical axis so that the near sphere does not hide it.
func TestRenderDepthNearerIsDarker(t *testing.T) {
	sc := scene.NewScene()
	matID := sc.AddMaterial(scene.Material{Name: "m"})
	sc.SphereObjects = append(sc.SphereObjects,
		scene.SphereObject{Sphere: geom.Sphere{Center: prim.Vec3{X: 0, Y: 0, Z: -3}, Radius: 1}, Material: matID},
		scene.SphereObject{Sphere: geom.Sphere{Center: prim.Vec3{X: 3, Y: 0, Z: -6}, Radius: 1}, Material: matID},
	)
	cam := camera.New(camera.Options{
		LookFrom: prim.Vec3{X: 0, Y: 0, Z: 0}, LookTo: prim.Vec3{X: 0, Y: 0, Z: -1},
		FOV: math.Pi / 2, ScreenWidth: 100, ScreenHeight: 100,
	})
	img := Render(sc, cam, 100, 100, 0, ModeDepth)

	nearR, _, _, _ := img.At(50, 50).RGBA()
	farR, _, _, _ := img.At(75, 50).RGBA()
	backgroundR, _, _, _ := img.At(0, 0).RGBA()
	if backgroundR != 0xffff {
		t.Errorf("background pixel = %d, want white (0xffff)", backgroundR)
	}
	if !(nearR < farR) {
		t.Errorf("near-sphere pixel %d is not darker than far-sphere pixel %d", nearR, farR)
	}
	if !(nearR < backgroundR) {
		t.Errorf("near-sphere pixel %d is not darker than background %d", nearR, backgroundR)
	}
}

func TestRenderFullDimensionsMatchOptions(t *testing.T) {
	sc := scene.NewScene()
	cam := camera.New(camera.Options{
		LookFrom: prim.Vec3{X: 0, Y: 0, Z: 0}, LookTo: prim.Vec3{X: 0, Y: 0, Z: -1},
		FOV: math.Pi / 3, ScreenWidth: 17, ScreenHeight: 9,
	})
	img := Render(sc, cam, 17, 9, 2, ModeFull)
	bounds := img.Bounds()
	if bounds.Dx() != 17 || bounds.Dy() != 9 {
		t.Errorf("image dims = %dx%d, want 17x9", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderEmptySceneInvariants(t *testing.T) {
	// §8 invariant 7: an empty scene renders all-black Full, all-white
	// Depth, and the default-colored Normal image.
	sc := scene.NewScene()
	cam := camera.New(camera.Options{
		LookFrom: prim.Vec3{X: 0, Y: 0, Z: 0}, LookTo: prim.Vec3{X: 0, Y: 0, Z: -1},
		FOV: math.Pi / 2, ScreenWidth: 4, ScreenHeight: 4,
	})

	full := Render(sc, cam, 4, 4, 1, ModeFull)
	if r, g, b, _ := full.At(2, 2).RGBA(); r != 0 || g != 0 || b != 0 {
		t.Errorf("empty-scene Full pixel = (%d,%d,%d), want black", r, g, b)
	}

	depth := Render(sc, cam, 4, 4, 0, ModeDepth)
	if r, _, _, _ := depth.At(2, 2).RGBA(); r != 0xffff {
		t.Errorf("empty-scene Depth pixel R = %d, want 0xffff", r)
	}

	normal := Render(sc, cam, 4, 4, 0, ModeNormal)
	r, g, b, a := normal.At(2, 2).RGBA()
	wantR, wantG, wantB, wantA := tonemap.DefaultColor.RGBA()
	if r != wantR || g != wantG || b != wantB || a != wantA {
		t.Errorf("empty-scene Normal pixel = (%d,%d,%d,%d), want the default color", r, g, b, a)
	}
}

func TestRenderDeterministic(t *testing.T) {
	// §8 invariant 8: two renders of the same scene produce byte-identical
	// images.
	sc := scene.NewScene()
	matID := sc.AddMaterial(scene.Material{Name: "m", Ambient: prim.Vec3{X: 0.3, Y: 0.2, Z: 0.1}, Albedo: prim.Vec3{X: 1, Y: 0, Z: 0}, Ns: 1, Ni: 1})
	sc.SphereObjects = append(sc.SphereObjects, scene.SphereObject{
		Sphere: geom.Sphere{Center: prim.Vec3{X: 0, Y: 0, Z: -5}, Radius: 2}, Material: matID,
	})
	cam := camera.New(camera.Options{
		LookFrom: prim.Vec3{X: 0, Y: 0, Z: 0}, LookTo: prim.Vec3{X: 0, Y: 0, Z: -1},
		FOV: math.Pi / 2, ScreenWidth: 32, ScreenHeight: 32,
	})
	a := Render(sc, cam, 32, 32, 2, ModeFull)
	b := Render(sc, cam, 32, 32, 2, ModeFull)
	if len(a.Pix) != len(b.Pix) {
		t.Fatalf("pixel buffer lengths differ: %d vs %d", len(a.Pix), len(b.Pix))
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel byte %d differs: %d vs %d", i, a.Pix[i], b.Pix[i])
		}
	}
}
