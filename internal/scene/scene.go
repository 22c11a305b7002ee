// Package scene defines the typed, read-only view over parsed geometry,
// materials, and lights that the renderer consumes: Scene owns Objects,
// SphereObjects, Lights, and a material table; Objects and SphereObjects
// refer to materials by a stable handle (MaterialID) rather than a pointer,
// since the scene outlives the render and Go has no need for the original's
// raw back-pointers (§9 "Cyclic references").
package scene

import (
	"github.com/danlaine/raytrace/internal/geom"
	"github.com/danlaine/raytrace/internal/prim"
)

// Material describes the Phong shading coefficients, emissive term,
// refractive index, and albedo weights of a surface.
type Material struct {
	Name string

	Ambient  prim.Vec3
	Diffuse  prim.Vec3
	Specular prim.Vec3
	Emissive prim.Vec3

	// Ns is the specular exponent (>= 1).
	Ns float64
	// Ni is the refractive index (>= 1).
	Ni float64

	// Albedo weights (kd, kr, kt) the diffuse, mirror-reflection, and
	// refraction contributions respectively. Defaults to (1,0,0).
	Albedo prim.Vec3
}

// DefaultMaterial is used for an Object/SphereObject whose usemtl name has
// no corresponding newmtl record (§7 "Missing material"): black colors,
// Ns=1, Ni=1, albedo (1,0,0).
func DefaultMaterial() Material {
	return Material{
		Ns:     1,
		Ni:     1,
		Albedo: prim.Vec3{X: 1, Y: 0, Z: 0},
	}
}

// MaterialID is a stable handle into Scene's material table, valid for the
// scene's lifetime.
type MaterialID int

// Light is an unattenuated point light.
type Light struct {
	Position  prim.Vec3
	Intensity prim.Vec3
}

// Object is a triangle bound to a material, with an optional triple of
// per-vertex shading normals in vertex order (A,B,C). HasNormals is false
// when the face supplied none; it is never true for fewer or more than
// three normals.
type Object struct {
	Triangle   geom.Triangle
	Material   MaterialID
	Normals    [3]prim.Vec3
	HasNormals bool
}

// SphereObject is a sphere bound to a material.
type SphereObject struct {
	Sphere   geom.Sphere
	Material MaterialID
}

// Scene is the owned, read-only (during rendering) collection of everything
// a render needs: geometry, lights, and the named material table.
type Scene struct {
	Objects       []Object
	SphereObjects []SphereObject
	Lights        []Light

	materials     []Material
	materialIndex map[string]MaterialID
}

// NewScene constructs an empty scene. Objects, SphereObjects, and Lights are
// appended directly by the loader; materials are added through AddMaterial.
func NewScene() *Scene {
	return &Scene{materialIndex: make(map[string]MaterialID)}
}

// AddMaterial registers mat under its Name, returning its handle. A
// duplicate name overwrites the earlier material in place (last-defined
// wins, matching the original reader's map semantics), so the handle stays
// valid for anyone who already holds it.
func (s *Scene) AddMaterial(mat Material) MaterialID {
	if id, ok := s.materialIndex[mat.Name]; ok {
		s.materials[id] = mat
		return id
	}
	id := MaterialID(len(s.materials))
	s.materials = append(s.materials, mat)
	s.materialIndex[mat.Name] = id
	return id
}

// MaterialByName looks up a previously-added material's handle.
func (s *Scene) MaterialByName(name string) (MaterialID, bool) {
	id, ok := s.materialIndex[name]
	return id, ok
}

// DefaultMaterialID returns (creating if necessary) the handle for the
// shared default material used when usemtl names an unknown material.
func (s *Scene) DefaultMaterialID() MaterialID {
	const sentinelName = "\x00default"
	if id, ok := s.materialIndex[sentinelName]; ok {
		return id
	}
	mat := DefaultMaterial()
	mat.Name = sentinelName
	return s.AddMaterial(mat)
}

// Material resolves a handle to its Material value.
func (s *Scene) Material(id MaterialID) Material {
	return s.materials[id]
}
