// Package integrate implements the recursive reflection/refraction
// integrator (§4.G) and the three render-mode pixel loops that drive it
// (§4.H), including an optional parallel loop over image rows (§5).
package integrate

import (
	"math"

	"github.com/danlaine/raytrace/internal/geom"
	"github.com/danlaine/raytrace/internal/isect"
	"github.com/danlaine/raytrace/internal/prim"
	"github.com/danlaine/raytrace/internal/scene"
	"github.com/danlaine/raytrace/internal/shade"
)

// reflEps and refrEps offset a secondary ray's origin along the shading
// normal to avoid immediately re-hitting the surface it was cast from.
// They are deliberately distinct and asymmetric (§4.G).
const (
	reflEps = 1e-9
	refrEps = 2e-9
)

// hit bundles a nearest-intersection result with the data Trace needs to
// shade and recurse from it.
type hit struct {
	isect         geom.Intersection
	material      scene.Material
	shadingNormal prim.Vec3
	isSphere      bool
}

// nearestHit linearly scans every triangle and sphere in sc and returns the
// closest intersection along ray, resolving the shading normal per §4.G
// step 3: barycentric-interpolated vertex normals for a triangle that has
// them, the intersector's own normal otherwise.
func nearestHit(ray prim.Ray, sc *scene.Scene) (hit, bool) {
	best := hit{}
	bestDist := math.Inf(1)
	found := false

	for _, obj := range sc.Objects {
		i, ok := isect.Triangle(ray, obj.Triangle)
		if !ok || i.Distance >= bestDist {
			continue
		}
		n := i.Normal
		if obj.HasNormals {
			u, v, w := geom.Barycentric(obj.Triangle, i.Position)
			n = obj.Normals[0].Scale(u).Add(obj.Normals[1].Scale(v)).Add(obj.Normals[2].Scale(w))
		}
		bestDist = i.Distance
		found = true
		best = hit{isect: i, material: sc.Material(obj.Material), shadingNormal: n}
	}
	for _, sph := range sc.SphereObjects {
		i, ok := isect.Sphere(ray, sph.Sphere)
		if !ok || i.Distance >= bestDist {
			continue
		}
		bestDist = i.Distance
		found = true
		best = hit{isect: i, material: sc.Material(sph.Material), shadingNormal: i.Normal, isSphere: true}
	}
	return best, found
}

// Trace computes the color seen along ray: local Phong shading plus a
// recursive reflection term (suppressed while already inside a dielectric)
// and a recursive refraction term (always attempted, subject to total
// internal reflection), per §4.G. depth < 0 terminates the recursion with
// black. insideFlag tracks whether the ray currently travels inside a
// dielectric volume: the refracted ray carries 1 only after entering a
// sphere from outside, and 0 after any other hit (leaving a sphere, or any
// triangle hit). A triangle hit never sets it, since the scene format has no
// notion of a closed mesh.
func Trace(ray prim.Ray, depth int, insideFlag int, sc *scene.Scene) prim.Vec3 {
	if depth < 0 {
		return prim.Vec3{}
	}
	h, ok := nearestHit(ray, sc)
	if !ok {
		return prim.Vec3{}
	}

	n := h.shadingNormal.Normalize()
	dir := ray.Direction.Normalize()
	color := shade.Shade(h.isect.Position, n, dir.Neg(), h.material, sc)

	if insideFlag == 0 {
		r := prim.Reflect(dir, n).Normalize()
		reflRay := prim.Ray{Origin: h.isect.Position.Add(n.Scale(reflEps)), Direction: r}
		reflCol := Trace(reflRay, depth-1, 0, sc)
		color.AddI(reflCol.Scale(h.material.Albedo.Y))
	}

	eta := 1 / h.material.Ni
	weight := h.material.Albedo.Z
	if insideFlag == 1 {
		eta = h.material.Ni
		weight = 1.0
	}
	if t, ok := refract(dir, n, eta); ok {
		nextInside := 0
		if h.isSphere && insideFlag == 0 {
			nextInside = 1
		}
		refrRay := prim.Ray{Origin: h.isect.Position.Sub(n.Scale(refrEps)), Direction: t}
		refrCol := Trace(refrRay, depth-1, nextInside, sc)
		color.AddI(refrCol.Scale(weight))
	}
	return color
}

// refract computes the refracted direction of dir through a surface with
// unit normal n (facing dir) and relative refractive index eta, using
//
//	sin²θ₂ = η·√(1−cos²θ₁)
//
// which is the reference implementation's literal (non-physical) formula —
// conventional Snell's law is sinθ₂ = η·sinθ₁ — kept as-is for
// bit-comparable output (§4.G, §9). ok is false on total internal
// reflection (sin²θ₂ > 1).
func refract(dir, n prim.Vec3, eta float64) (t prim.Vec3, ok bool) {
	cos1 := -n.Dot(dir)
	sin2 := eta * math.Sqrt(1-cos1*cos1)
	if sin2 > 1.0 {
		return prim.Vec3{}, false
	}
	cos2 := math.Sqrt(1 - sin2*sin2)
	return dir.Scale(eta).Add(n.Scale(eta*cos1 - cos2)).Normalize(), true
}
