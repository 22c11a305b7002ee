package sceneio

import (
	"fmt"
	"os"

	"github.com/danlaine/raytrace/internal/prim"
	"github.com/danlaine/raytrace/internal/scene"
)

// LoadMaterials parses a material file: a sequence of `newmtl <name>`
// records, each followed by any of the Ka/Kd/Ks/Ke/Ns/Ni/al fields in any
// order, until the next newmtl or end of file. Fields a record omits keep
// scene.DefaultMaterial's values (§6).
func LoadMaterials(path string) (map[string]scene.Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading material file: %w", err)
	}
	t := newTokenizer(string(data))
	result := make(map[string]scene.Material)

	var cur *scene.Material
	for {
		tok, line, ok := t.next()
		if !ok {
			break
		}
		if tok == "newmtl" {
			if cur != nil {
				result[cur.Name] = *cur
			}
			name, _, ok := t.next()
			if !ok {
				return nil, fmt.Errorf("%s:%d: newmtl: expected a name", path, line)
			}
			mat := scene.DefaultMaterial()
			mat.Name = name
			cur = &mat
			continue
		}
		if cur == nil {
			return nil, fmt.Errorf("%s:%d: %q outside any newmtl record", path, line, tok)
		}
		switch tok {
		case "Ka":
			if cur.Ambient, err = readVec3(t); err != nil {
				return nil, fmt.Errorf("%s:%d: Ka: %w", path, line, err)
			}
		case "Kd":
			if cur.Diffuse, err = readVec3(t); err != nil {
				return nil, fmt.Errorf("%s:%d: Kd: %w", path, line, err)
			}
		case "Ks":
			if cur.Specular, err = readVec3(t); err != nil {
				return nil, fmt.Errorf("%s:%d: Ks: %w", path, line, err)
			}
		case "Ke":
			if cur.Emissive, err = readVec3(t); err != nil {
				return nil, fmt.Errorf("%s:%d: Ke: %w", path, line, err)
			}
		case "Ns":
			if cur.Ns, err = readFloat(t); err != nil {
				return nil, fmt.Errorf("%s:%d: Ns: %w", path, line, err)
			}
		case "Ni":
			if cur.Ni, err = readFloat(t); err != nil {
				return nil, fmt.Errorf("%s:%d: Ni: %w", path, line, err)
			}
		case "al":
			if cur.Albedo, err = readVec3(t); err != nil {
				return nil, fmt.Errorf("%s:%d: al: %w", path, line, err)
			}
		default:
			return nil, fmt.Errorf("%s:%d: unknown material field %q", path, line, tok)
		}
	}
	if cur != nil {
		result[cur.Name] = *cur
	}
	return result, nil
}

func readVec3(t *tokenizer) (prim.Vec3, error) {
	x, err := readFloat(t)
	if err != nil {
		return prim.Vec3{}, err
	}
	y, err := readFloat(t)
	if err != nil {
		return prim.Vec3{}, err
	}
	z, err := readFloat(t)
	if err != nil {
		return prim.Vec3{}, err
	}
	return prim.Vec3{X: x, Y: y, Z: z}, nil
}
