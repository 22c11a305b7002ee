// Package sceneio loads a scene (and its referenced material file) from the
// flat, whitespace-tokenized text format described in §6.
package sceneio

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/danlaine/raytrace/internal/geom"
	"github.com/danlaine/raytrace/internal/prim"
	"github.com/danlaine/raytrace/internal/scene"
)

// Load parses the scene file at path, resolving any mtllib reference
// relative to path's directory, and returns the assembled scene.
func Load(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	dir := filepath.Dir(path)

	sc := scene.NewScene()
	var points, normals []prim.Vec3
	curMaterial := ""

	t := newTokenizer(string(data))
	for {
		tok, line, ok := t.next()
		if !ok {
			break
		}
		switch tok {
		case "mtllib":
			rel, _, ok := t.next()
			if !ok {
				return nil, fmt.Errorf("%s:%d: mtllib: expected a path", path, line)
			}
			mats, err := LoadMaterials(filepath.Join(dir, rel))
			if err != nil {
				return nil, err
			}
			for _, mat := range mats {
				sc.AddMaterial(mat)
			}

		case "v":
			v, err := readVec3(t)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: v: %w", path, line, err)
			}
			points = append(points, v)

		case "vn":
			n, err := readVec3(t)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: vn: %w", path, line, err)
			}
			normals = append(normals, n)

		case "usemtl":
			name, _, ok := t.next()
			if !ok {
				return nil, fmt.Errorf("%s:%d: usemtl: expected a name", path, line)
			}
			curMaterial = name

		case "S":
			center, err := readVec3(t)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: S: %w", path, line, err)
			}
			r, err := readFloat(t)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: S: %w", path, line, err)
			}
			sc.SphereObjects = append(sc.SphereObjects, scene.SphereObject{
				Sphere:   geom.Sphere{Center: center, Radius: r},
				Material: resolveMaterial(sc, curMaterial),
			})

		case "P":
			pos, err := readVec3(t)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: P: %w", path, line, err)
			}
			intensity, err := readVec3(t)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: P: %w", path, line, err)
			}
			sc.Lights = append(sc.Lights, scene.Light{Position: pos, Intensity: intensity})

		case "f":
			if err := parseFace(t, path, line, points, normals, sc, curMaterial); err != nil {
				return nil, err
			}

		default:
			return nil, fmt.Errorf("%s:%d: unknown scene token %q", path, line, tok)
		}
	}
	return sc, nil
}

// resolveMaterial returns the handle for name, or the shared default
// material if name is empty or was never registered by a mtllib (§7
// "Missing material").
func resolveMaterial(sc *scene.Scene, name string) scene.MaterialID {
	if id, ok := sc.MaterialByName(name); ok {
		return id
	}
	return sc.DefaultMaterialID()
}

// parseFace reads the vertex tokens following an "f" keyword (all on the
// same source line) and fan-triangulates them as (v0,v1,v2), (v0,v2,v3), …
// A face whose vertices do not all agree on carrying a normal is an error.
func parseFace(t *tokenizer, path string, faceLine int, points, normals []prim.Vec3, sc *scene.Scene, curMaterial string) error {
	var vertTokens []string
	for {
		tok, line, ok := t.next()
		if !ok || line != faceLine {
			if ok {
				t.unread(tok, line)
			}
			break
		}
		vertTokens = append(vertTokens, tok)
	}
	if len(vertTokens) < 3 {
		return fmt.Errorf("%s:%d: f: need at least 3 vertices, got %d", path, faceLine, len(vertTokens))
	}

	type faceVertex struct {
		pos     int
		normal  int
		hasNorm bool
	}
	verts := make([]faceVertex, len(vertTokens))
	for i, tok := range vertTokens {
		pos, normal, hasNorm, err := parseFaceVertex(tok, len(points), len(normals))
		if err != nil {
			return fmt.Errorf("%s:%d: f: %w", path, faceLine, err)
		}
		verts[i] = faceVertex{pos: pos, normal: normal, hasNorm: hasNorm}
	}
	for _, v := range verts[1:] {
		if v.hasNorm != verts[0].hasNorm {
			return fmt.Errorf("%s:%d: f: vertices must all have normals or all lack them", path, faceLine)
		}
	}
	for i := 1; i < len(verts)-1; i++ {
		a, b, c := verts[0], verts[i], verts[i+1]
		obj := scene.Object{
			Triangle: geom.Triangle{A: points[a.pos], B: points[b.pos], C: points[c.pos]},
			Material: resolveMaterial(sc, curMaterial),
		}
		if a.hasNorm && b.hasNorm && c.hasNorm {
			obj.Normals = [3]prim.Vec3{normals[a.normal], normals[b.normal], normals[c.normal]}
			obj.HasNormals = true
		}
		sc.Objects = append(sc.Objects, obj)
	}
	return nil
}

// parseFaceVertex decodes one `f` vertex token, one of `p`, `p/t`, `p/t/n`,
// or `p//n`: the position index is always the first slot; the normal index
// is the third slot when present, whether reached via `/t/` or `//` (§6).
func parseFaceVertex(tok string, numPoints, numNormals int) (pos, normal int, hasNorm bool, err error) {
	parts := strings.Split(tok, "/")
	switch len(parts) {
	case 1, 2:
		pos, err = resolveIndex(parts[0], numPoints)
	case 3:
		pos, err = resolveIndex(parts[0], numPoints)
		if err == nil {
			normal, err = resolveIndex(parts[2], numNormals)
			hasNorm = true
		}
	default:
		err = fmt.Errorf("malformed vertex %q", tok)
	}
	return pos, normal, hasNorm, err
}

// resolveIndex converts a 1-indexed (or negative, relative-from-end) index
// token into a 0-based slice index, bounds-checked against count.
func resolveIndex(raw string, count int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", raw)
	}
	var idx int
	switch {
	case n > 0:
		idx = n - 1
	case n < 0:
		idx = count + n
	default:
		return 0, fmt.Errorf("index 0 is invalid")
	}
	if idx < 0 || idx >= count {
		return 0, fmt.Errorf("index %d out of bounds (have %d)", n, count)
	}
	return idx, nil
}
