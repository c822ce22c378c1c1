package assets

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/seraph/pkg/math"
)

// ParseOBJ reads a Wavefront OBJ stream into a single triangle mesh. All
// objects and groups in the file are merged; polygons are fan-triangulated.
// Faces without normals get flat face normals.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	var (
		positions []math.Vec3
		normals   []math.Vec3
		uvs       [][2]float32
	)
	mesh := &Mesh{Name: name, Primitive: Triangles}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, v)
		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, v)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texcoord needs 2 components", lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			v, err2 := strconv.ParseFloat(fields[2], 32)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: invalid texcoord", lineNo)
			}
			uvs = append(uvs, [2]float32{float32(u), float32(v)})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			corners := make([]Vertex, 0, len(fields)-1)
			hasNormals := true
			for _, ref := range fields[1:] {
				vert, hasNormal, err := resolveCorner(ref, positions, normals, uvs)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				hasNormals = hasNormals && hasNormal
				corners = append(corners, vert)
			}
			if !hasNormals {
				setFlatNormal(corners)
			}
			base := uint32(len(mesh.Vertices))
			mesh.Vertices = append(mesh.Vertices, corners...)
			for k := 1; k+1 < len(corners); k++ {
				mesh.Indices = append(mesh.Indices, base, base+uint32(k), base+uint32(k+1))
			}
		default:
			// o, g, s, usemtl, mtllib: ignored
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("%s: no faces", name)
	}

	mesh.computeBounds()
	return mesh, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("need 3 components, got %d", len(fields))
	}
	var c [3]float32
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, err
		}
		c[i] = float32(f)
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// resolveCorner decodes a face corner of the form v, v/vt, v//vn or v/vt/vn.
func resolveCorner(ref string, positions, normals []math.Vec3, uvs [][2]float32) (Vertex, bool, error) {
	parts := strings.Split(ref, "/")
	var vert Vertex

	pi, err := objIndex(parts[0], len(positions))
	if err != nil {
		return vert, false, fmt.Errorf("position index %q: %w", ref, err)
	}
	p := positions[pi]
	vert.Position = [3]float32{p.X, p.Y, p.Z}

	if len(parts) > 1 && parts[1] != "" {
		ti, err := objIndex(parts[1], len(uvs))
		if err != nil {
			return vert, false, fmt.Errorf("texcoord index %q: %w", ref, err)
		}
		vert.TexCoord = uvs[ti]
	}

	hasNormal := false
	if len(parts) > 2 && parts[2] != "" {
		ni, err := objIndex(parts[2], len(normals))
		if err != nil {
			return vert, false, fmt.Errorf("normal index %q: %w", ref, err)
		}
		n := normals[ni]
		vert.Normal = [3]float32{n.X, n.Y, n.Z}
		hasNormal = true
	}
	return vert, hasNormal, nil
}

// objIndex converts a 1-based (or negative, relative) OBJ index.
func objIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = count + i
	} else {
		i--
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("out of range (have %d)", count)
	}
	return i, nil
}

func setFlatNormal(corners []Vertex) {
	p0 := toVec3(corners[0].Position)
	p1 := toVec3(corners[1].Position)
	p2 := toVec3(corners[2].Position)
	n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	for i := range corners {
		corners[i].Normal = [3]float32{n.X, n.Y, n.Z}
	}
}

func toVec3(p [3]float32) math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}
