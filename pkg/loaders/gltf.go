package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF reads every triangle primitive of a glTF or GLB file. Node
// transforms are not applied; the mesh is returned in its local space.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := &Mesh{Name: filepath.Base(path)}
	for _, m := range doc.Meshes {
		if err := processGLTFMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	logger.Infof("loaded %s: %d triangles", mesh.Name, len(mesh.Triangles))
	return mesh, nil
}

func processGLTFMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		// Skip non-triangle primitives (lines, points, etc)
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			var tri MeshTriangle
			for j := 0; j < 3; j++ {
				idx := int(indices[i+j])
				if idx >= len(positions) {
					return fmt.Errorf("index %d out of bounds (%d positions)", idx, len(positions))
				}
				tri.Vertices[j] = vec3From(positions[idx])
			}
			if first := int(indices[i]); first < len(normals) {
				tri.Normal = vec3From(normals[first])
			}
			mesh.Triangles = append(mesh.Triangles, tri)
		}
	}

	return nil
}

func vec3From(v [3]float32) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
