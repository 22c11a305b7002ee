// Package camera builds the look-at basis described in §4.E and turns pixel
// coordinates into world-space primary rays.
package camera

import (
	"math"

	"github.com/danlaine/raytrace/internal/prim"
)

// parallelEps is the threshold below which the up-candidate is considered
// (anti-)parallel to the view direction (§4.E step 2).
const parallelEps = 1e-9

// Options mirrors spec.md's CameraOptions: where the eye sits, what it looks
// at, the vertical field of view in radians, and the output raster size.
type Options struct {
	LookFrom     prim.Vec3
	LookTo       prim.Vec3
	FOV          float64 // vertical, radians
	ScreenWidth  int
	ScreenHeight int
}

// Mat4 is a row-major 4x4 matrix, laid out the way §4.E describes: rows
// {Right, Up, Forward, LookFrom} with M[3][3]=1. A direction is transformed
// by the upper-left 3x3 block (taking rows as basis vectors); a point goes
// through the full affine transform with a perspective divide when w is
// neither 0 nor 1.
type Mat4 [4][4]float64

// MulDir transforms a direction vector through the upper-left 3x3 of m,
// treating m's first three rows as a basis (no translation, no divide).
func (m Mat4) MulDir(v prim.Vec3) prim.Vec3 {
	return prim.Vec3{
		X: v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1],
		Z: v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2],
	}
}

// MulPoint transforms a point through the full affine matrix, including the
// translation row and a perspective divide when w is neither 0 nor 1.
func (m Mat4) MulPoint(v prim.Vec3) prim.Vec3 {
	x := v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + m[3][0]
	y := v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + m[3][1]
	z := v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + m[3][2]
	w := v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + m[3][3]
	if w != 0 && w != 1 {
		x /= w
		y /= w
		z /= w
	}
	return prim.Vec3{X: x, Y: y, Z: z}
}

// Camera holds the built look-at frame and the precomputed image-plane
// geometry needed to generate a primary ray for any pixel.
type Camera struct {
	opts Options
	m    Mat4

	planeHeight float64
	planeWidth  float64
	pixelSize   float64
}

// New builds the look-at basis for opts (§4.E):
//
//  1. forward = normalize(lookFrom - lookTo), pointing from target to eye.
//  2. tmp starts at world up (0,1,0); if it's (anti-)parallel to forward,
//     it's replaced with (0,0,1) or (0,0,-1) depending on tmp·forward.
//  3. If (lookTo-lookFrom).Z < 0, tmp.Z is negated.
//  4. right = normalize(cross(tmp, forward)); up = normalize(cross(forward, right)).
func New(opts Options) Camera {
	forward := opts.LookFrom.Sub(opts.LookTo).Normalize()

	tmp := prim.Vec3{X: 0, Y: 1, Z: 0}
	if tmp.Cross(forward).Length() < parallelEps {
		if tmp.Dot(forward) >= 0 {
			tmp = prim.Vec3{X: 0, Y: 0, Z: 1}
		} else {
			tmp = prim.Vec3{X: 0, Y: 0, Z: -1}
		}
	}
	if opts.LookTo.Sub(opts.LookFrom).Z < 0 {
		tmp.Z = -tmp.Z
	}

	right := tmp.Cross(forward).Normalize()
	up := forward.Cross(right).Normalize()

	var m Mat4
	m[0] = [4]float64{right.X, right.Y, right.Z, 0}
	m[1] = [4]float64{up.X, up.Y, up.Z, 0}
	m[2] = [4]float64{forward.X, forward.Y, forward.Z, 0}
	m[3] = [4]float64{opts.LookFrom.X, opts.LookFrom.Y, opts.LookFrom.Z, 1}

	height := 2 * math.Tan(opts.FOV/2)
	width := height * float64(opts.ScreenWidth) / float64(opts.ScreenHeight)
	pixelSize := height / float64(opts.ScreenHeight)

	return Camera{opts: opts, m: m, planeHeight: height, planeWidth: width, pixelSize: pixelSize}
}

// Matrix returns the camera's look-at matrix.
func (c Camera) Matrix() Mat4 { return c.m }

// PrimaryRay returns the world-space ray through pixel (i,j): row i from the
// top, column j from the left (§4.E). The image plane sits at z=-1 in
// camera space; each pixel samples its own center.
func (c Camera) PrimaryRay(i, j int) prim.Ray {
	x := -c.planeWidth/2 + c.pixelSize/2 + float64(j)*c.pixelSize
	y := c.planeHeight/2 - c.pixelSize/2 - float64(i)*c.pixelSize
	dirCamera := prim.Vec3{X: x, Y: y, Z: -1}.Normalize()
	dirWorld := c.m.MulDir(dirCamera).Normalize()
	return prim.Ray{Origin: c.opts.LookFrom, Direction: dirWorld}
}
