// Package geom defines the scene's two primitive shapes (Sphere and
// Triangle) and the shared Intersection result type, plus the barycentric
// coordinate helper used to interpolate per-vertex shading normals.
package geom

import (
	"math"

	"github.com/danlaine/raytrace/internal/prim"
)

// Sphere is a center and a radius (> 0 for a non-degenerate sphere).
type Sphere struct {
	Center prim.Vec3
	Radius float64
}

// Triangle is an ordered triple of vertices. Winding order A,B,C defines the
// geometric normal via cross(B-A, C-A).
type Triangle struct {
	A, B, C prim.Vec3
}

// GeometricNormal returns the unnormalized winding-order normal
// cross(B-A, C-A). Degenerate (collinear or coincident) triangles yield the
// zero vector; callers must not normalize it in that case.
func (t Triangle) GeometricNormal() prim.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Area computes the triangle's area via Heron's formula. Returns 0 for a
// degenerate (zero-area) triangle.
func (t Triangle) Area() float64 {
	s1 := prim.Distance(t.A, t.B)
	s2 := prim.Distance(t.A, t.C)
	s3 := prim.Distance(t.C, t.B)
	p := (s1 + s2 + s3) / 2
	area := p * (p - s1) * (p - s2) * (p - s3)
	if area < 0 {
		// Guards against a tiny negative value from floating point
		// cancellation on a near-degenerate triangle.
		return 0
	}
	return math.Sqrt(area)
}

// Intersection is the common result of a ray/primitive hit: a position, a
// unit normal that always faces the incoming ray (normal·direction <= 0, per
// §8 invariant 2), and the hit distance from the ray origin.
type Intersection struct {
	Position prim.Vec3
	Normal   prim.Vec3
	Distance float64
}

// Barycentric computes the barycentric coordinates (u,v,w) of point p in
// triangle t using the Ericson "Cramer over edge dot products" formulation
// (§4.B). Undefined for degenerate triangles (denom == 0).
func Barycentric(t Triangle, p prim.Vec3) (u, v, w float64) {
	v0 := t.B.Sub(t.A)
	v1 := t.C.Sub(t.A)
	v2 := p.Sub(t.A)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1 - v - w
	return u, v, w
}
