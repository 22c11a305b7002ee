// Package shade computes direct (Phong) lighting at a hit point, including
// the hard-shadow visibility test against every primitive in the scene
// (§4.F). It has no notion of reflection or refraction — that recursive
// combination lives in internal/integrate, one layer up.
package shade

import (
	"math"

	"github.com/danlaine/raytrace/internal/isect"
	"github.com/danlaine/raytrace/internal/prim"
	"github.com/danlaine/raytrace/internal/scene"
)

// shadowEps offsets the shadow ray's origin along the normal to avoid
// immediately re-hitting the surface it was cast from (§4.F).
const shadowEps = 1e-10

// Shade computes the direct-lighting contribution at pos with shading
// normal n, for a viewer looking along outDir (unit vector from the hit
// toward the camera), under mat, against every light in sc:
//
//	color = ambient + emissive
//	for each visible light:
//	    diff = diffuse * max(0, Ldir·N) ⊙ intensity
//	    spec = specular ⊙ intensity * max(0, R·outDir)^Ns
//	    color += (diff + spec) * albedo.kd
func Shade(pos, n, outDir prim.Vec3, mat scene.Material, sc *scene.Scene) prim.Vec3 {
	color := mat.Ambient.Add(mat.Emissive)
	for _, light := range sc.Lights {
		if !Visible(pos, n, light, sc) {
			continue
		}
		lDir := light.Position.Sub(pos).Normalize()
		r := prim.Reflect(lDir, n).Neg()
		diff := mat.Diffuse.Scale(max0(lDir.Dot(n))).Mul(light.Intensity)
		spec := mat.Specular.Mul(light.Intensity).Scale(math.Pow(max0(r.Dot(outDir)), mat.Ns))
		color.AddI(diff.Add(spec).Scale(mat.Albedo.X))
	}
	return color
}

// Visible casts a shadow ray from pos (offset along n by shadowEps) toward
// light and reports whether any primitive in sc occludes it — a hit at
// distance <= the light's distance counts as occluding, matching the
// reference reader's strict-or-equal shadow test. Transparent materials do
// not attenuate shadows (§4.F): this is a hard shadow test only.
func Visible(pos, n prim.Vec3, light scene.Light, sc *scene.Scene) bool {
	dir := light.Position.Sub(pos).Normalize()
	dist := prim.Distance(light.Position, pos)
	ray := prim.Ray{Origin: pos.Add(n.Scale(shadowEps)), Direction: dir}

	for _, obj := range sc.Objects {
		if hit, ok := isect.Triangle(ray, obj.Triangle); ok && hit.Distance <= dist {
			return false
		}
	}
	for _, sph := range sc.SphereObjects {
		if hit, ok := isect.Sphere(ray, sph.Sphere); ok && hit.Distance <= dist {
			return false
		}
	}
	return true
}

func max0(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
