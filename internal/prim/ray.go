package prim

import "fmt"

// Ray is a world-space ray: Origin + t*Direction for t >= 0.
//
// Direction need not be pre-normalized by the caller; intersection routines
// normalize it on entry (§4.C).
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

func (r Ray) String() string {
	return fmt.Sprintf("Ray(Origin: %v, Direction: %v)", r.Origin, r.Direction)
}

// At returns the point Origin + t*Direction.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
