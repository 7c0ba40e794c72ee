package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/log"
)

var logger = log.New("loaders")

type objReader struct {
	vertexList []core.Vec3
	normalList []core.Vec3
	mesh       *Mesh
}

// LoadOBJ reads a Wavefront OBJ file. Polygons are fan-triangulated; texture
// coordinates, groups and materials are ignored.
func LoadOBJ(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	start := time.Now()
	mesh, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)

	logger.Infof("loaded %s: %d triangles in %d ms", mesh.Name, len(mesh.Triangles), time.Since(start).Milliseconds())
	return mesh, nil
}

// ParseOBJ reads Wavefront OBJ data from r
func ParseOBJ(r io.Reader) (*Mesh, error) {
	reader := &objReader{mesh: &Mesh{}}

	lineNum := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		var err error
		switch lineTokens[0] {
		case "v":
			var v core.Vec3
			if v, err = parseVec3(lineTokens); err == nil {
				reader.vertexList = append(reader.vertexList, v)
			}
		case "vn":
			var n core.Vec3
			if n, err = parseVec3(lineTokens); err == nil {
				reader.normalList = append(reader.normalList, n)
			}
		case "f":
			err = reader.parseFace(lineTokens)
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ data: %w", err)
	}

	return reader.mesh, nil
}

// parseFace appends one triangle per fan segment of the face
func (r *objReader) parseFace(lineTokens []string) error {
	if len(lineTokens) < 4 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(lineTokens)-1)
	}

	count := len(lineTokens) - 1
	vertices := make([]core.Vec3, count)
	normals := make([]core.Vec3, count)

	for arg := 0; arg < count; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")
		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		offset, err := selectFaceCoordIndex(vTokens[0], len(r.vertexList))
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %w", arg, err)
		}
		vertices[arg] = r.vertexList[offset]

		if len(vTokens) == 3 && vTokens[2] != "" {
			offset, err = selectFaceCoordIndex(vTokens[2], len(r.normalList))
			if err != nil {
				return fmt.Errorf("could not parse normal coord for face argument %d: %w", arg, err)
			}
			normals[arg] = r.normalList[offset]
		}
	}

	for i := 1; i+1 < count; i++ {
		r.mesh.Triangles = append(r.mesh.Triangles, MeshTriangle{
			Vertices: [3]core.Vec3{vertices[0], vertices[i], vertices[i+1]},
			Normal:   normals[0],
		})
	}
	return nil
}

// selectFaceCoordIndex converts a 1-based (or negative, relative) OBJ index
// into an offset into a list of listLen items
func selectFaceCoordIndex(token string, listLen int) (int, error) {
	index, err := strconv.Atoi(token)
	if err != nil {
		return 0, err
	}

	var offset int
	if index < 0 {
		offset = listLen + index
	} else {
		offset = index - 1
	}

	if offset < 0 || offset >= listLen {
		return 0, fmt.Errorf("index %d out of bounds (%d items)", index, listLen)
	}
	return offset, nil
}

func parseVec3(lineTokens []string) (core.Vec3, error) {
	if len(lineTokens) < 4 {
		return core.Vec3{}, fmt.Errorf("expected 3 coordinates for %q, got %d", lineTokens[0], len(lineTokens)-1)
	}

	var coords [3]float32
	for i := range coords {
		value, err := strconv.ParseFloat(lineTokens[i+1], 32)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("could not parse %q coordinate %d: %w", lineTokens[0], i, err)
		}
		coords[i] = float32(value)
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}
