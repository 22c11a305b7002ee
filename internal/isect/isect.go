// Package isect implements ray/primitive intersection: Ray↔Sphere (geometric
// form) and Ray↔Triangle (Möller–Trumbore), per §4.C. Both routines
// normalize the ray direction on entry and never panic — a non-hit is
// reported as (Intersection{}, false), never an error.
package isect

import (
	"math"

	"github.com/danlaine/raytrace/internal/geom"
	"github.com/danlaine/raytrace/internal/prim"
)

// parallelEps is the Möller–Trumbore parallelism threshold (§4.C).
const parallelEps = 1e-5

// Sphere intersects ray with sphere using the geometric solution: let
// L = center-origin, tca = L·d, d2 = L·L - tca². A miss is reported when
// d2 > r². Otherwise the two roots are ordered and the nearest non-negative
// one is taken; if both are negative, it's a miss (the sphere is entirely
// behind the ray origin).
//
// The returned normal always faces the incoming ray (flipped on an
// inside-sphere hit), which is deliberate: see the integrator's inside-flag
// handling for how that surfaces refraction through spheres.
func Sphere(ray prim.Ray, s geom.Sphere) (geom.Intersection, bool) {
	d := ray.Direction.Normalize()
	l := s.Center.Sub(ray.Origin)
	tca := l.Dot(d)
	d2 := l.Dot(l) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return geom.Intersection{}, false
	}
	thc := math.Sqrt(r2 - d2)
	t0, t1 := tca-thc, tca+thc
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 < 0 {
		t0 = t1
		if t0 < 0 {
			return geom.Intersection{}, false
		}
	}
	hit := ray.Origin.Add(d.Scale(t0))
	normal := s.Center.Sub(hit).Normalize()
	if normal.Dot(d) >= 0 {
		normal = normal.Neg()
	}
	return geom.Intersection{
		Position: hit,
		Normal:   normal,
		Distance: prim.Distance(hit, ray.Origin),
	}, true
}

// Triangle intersects ray with tri using the Möller–Trumbore formulation in
// double precision (§4.C). A ray nearly parallel to the triangle's plane
// (|e1·n| < parallelEps, with n = d×e2) is reported as a miss rather than
// risking a division by a near-zero determinant.
func Triangle(ray prim.Ray, tri geom.Triangle) (geom.Intersection, bool) {
	d := ray.Direction.Normalize()
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)
	n := d.Cross(e2)
	div := e1.Dot(n)
	if math.Abs(div) < parallelEps {
		return geom.Intersection{}, false
	}

	t0 := ray.Origin.Sub(tri.A)
	p := d.Cross(e2)
	q := t0.Cross(e1)

	tHit := q.Dot(e2) / div
	u := p.Dot(t0) / div
	v := q.Dot(d) / div

	if tHit < 0 || u < 0 || u > 1 || v < 0 || u+v > 1 {
		return geom.Intersection{}, false
	}

	hit := ray.Origin.Add(d.Scale(tHit))
	normal := hit.Sub(tri.A).Cross(hit.Sub(tri.B)).Normalize()
	if normal.Dot(d) >= 0 {
		normal = normal.Neg()
	}
	return geom.Intersection{
		Position: hit,
		Normal:   normal,
		Distance: prim.Distance(hit, ray.Origin),
	}, true
}
