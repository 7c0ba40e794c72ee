package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-sah-raytracer/pkg/core"
	"github.com/df07/go-sah-raytracer/pkg/loaders"
	"github.com/df07/go-sah-raytracer/pkg/material"
)

// DefaultMeshTransform places an imported model a little left of the
// default spheres, scaled down to fit beside them
var DefaultMeshTransform = loaders.Transform{Scale: 0.2, Offset: core.NewVec3(-1, 1, -4)}

// LoadMesh reads a mesh file, choosing the loader from the extension
func LoadMesh(path string) (*loaders.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return loaders.LoadOBJ(path)
	case ".gltf", ".glb":
		return loaders.LoadGLTF(path)
	case ".ply":
		return loaders.LoadPLY(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", filepath.Ext(path))
	}
}

// NewMeshScene creates the default scene with a cyan diffuse mesh added
func NewMeshScene(mesh *loaders.Mesh) *Scene {
	s := NewDefaultScene()
	s.Name = "mesh:" + mesh.Name
	s.UseBVH = true
	s.AddMesh(mesh, DefaultMeshTransform, core.NewVec3(0, 1, 1), material.NewDiffuse())
	return s
}
