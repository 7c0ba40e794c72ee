package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnknownScene is returned by Lookup for names that are neither built-in
// nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

type builtin struct {
	description string
	create      func() *Scene
}

var builtins = map[string]builtin{
	"default": {"Five spheres above a large metal ground sphere", NewDefaultScene},
	"cubes":   {"Diffuse and metal cubes above the metal ground sphere", NewCubeScene},
	"grid":    {"A row of cubes and a row of spheres, rendered through the BVH", NewGridScene},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a fresh copy of a built-in scene, or loads name as a JSON
// scene file when it ends in .json
func Lookup(name string) (*Scene, error) {
	if b, ok := builtins[name]; ok {
		return b.create(), nil
	}
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return LoadFile(name)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// LookupIn is Lookup restricted to scene files under dir. Files outside dir,
// missing files and every file when dir is empty report ErrUnknownScene.
func LookupIn(dir, name string) (*Scene, error) {
	if b, ok := builtins[name]; ok {
		return b.create(), nil
	}
	if dir == "" || !strings.EqualFold(filepath.Ext(name), ".json") || !withinDir(dir, name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return LoadFile(name)
}

// withinDir reports whether path, once cleaned, lies below dir
func withinDir(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
