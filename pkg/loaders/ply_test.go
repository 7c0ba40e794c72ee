package loaders

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-sah-raytracer/pkg/core"
)

// square vertices shared by the PLY tests
var plySquare = [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

// createTestPLY builds a binary PLY square, either as two triangles or as a
// single quad face
func createTestPLY(order binary.ByteOrder, format string, includeNormals, quad bool) []byte {
	var buf bytes.Buffer

	buf.WriteString("ply\n")
	buf.WriteString("format " + format + " 1.0\n")
	buf.WriteString("comment test square\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	if includeNormals {
		buf.WriteString("property float nx\n")
		buf.WriteString("property float ny\n")
		buf.WriteString("property float nz\n")
	}
	buf.WriteString("property uchar red\n")
	if quad {
		buf.WriteString("element face 1\n")
	} else {
		buf.WriteString("element face 2\n")
	}
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("property uchar flags\n")
	buf.WriteString("end_header\n")

	for _, v := range plySquare {
		binary.Write(&buf, order, v)
		if includeNormals {
			binary.Write(&buf, order, [3]float32{0, 0, 1})
		}
		buf.WriteByte(255)
	}

	if quad {
		buf.WriteByte(4)
		binary.Write(&buf, order, [4]int32{0, 1, 2, 3})
		buf.WriteByte(0)
	} else {
		buf.WriteByte(3)
		binary.Write(&buf, order, [3]int32{0, 1, 2})
		buf.WriteByte(0)
		buf.WriteByte(3)
		binary.Write(&buf, order, [3]int32{0, 2, 3})
		buf.WriteByte(0)
	}

	return buf.Bytes()
}

func checkSquare(t *testing.T, mesh *Mesh, wantNormal core.Vec3) {
	t.Helper()
	if len(mesh.Triangles) != 2 {
		t.Fatalf("got %d triangles, want 2", len(mesh.Triangles))
	}

	want := [2][3]int{{0, 1, 2}, {0, 2, 3}}
	for i, tri := range mesh.Triangles {
		for j, idx := range want[i] {
			v := plySquare[idx]
			if !tri.Vertices[j].Equals(core.NewVec3(v[0], v[1], v[2])) {
				t.Errorf("triangle %d vertex %d = %v, want %v", i, j, tri.Vertices[j], v)
			}
		}
		if !tri.Normal.Equals(wantNormal) {
			t.Errorf("triangle %d normal = %v, want %v", i, tri.Normal, wantNormal)
		}
	}
}

func TestParsePLY_Binary(t *testing.T) {
	tests := []struct {
		name    string
		order   binary.ByteOrder
		format  string
		normals bool
		quad    bool
	}{
		{"little endian", binary.LittleEndian, "binary_little_endian", false, false},
		{"little endian with normals", binary.LittleEndian, "binary_little_endian", true, false},
		{"big endian quad", binary.BigEndian, "binary_big_endian", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := ParsePLY(bytes.NewReader(createTestPLY(tt.order, tt.format, tt.normals, tt.quad)))
			if err != nil {
				t.Fatalf("ParsePLY error: %v", err)
			}

			wantNormal := core.Vec3{}
			if tt.normals {
				wantNormal = core.NewVec3(0, 0, 1)
			}
			checkSquare(t, mesh, wantNormal)
		})
	}
}

func TestParsePLY_ASCII(t *testing.T) {
	data := `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`
	mesh, err := ParsePLY(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParsePLY error: %v", err)
	}
	checkSquare(t, mesh, core.Vec3{})
}

func TestParsePLY_Errors(t *testing.T) {
	header := "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n"
	vertices := "0 0 0\n1 0 0\n0 1 0\n"
	binaryHeader := "ply\nformat binary_little_endian 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list char int vertex_indices\nend_header\n"

	tests := []struct {
		name string
		data string
	}{
		{"not ply", "obj\nend_header\n"},
		{"missing end_header", "ply\nformat ascii 1.0\n"},
		{"unknown format", "ply\nformat binary_middle_endian 1.0\nend_header\n"},
		{"bad property type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n"},
		{"index out of range", header + "0 0 0\n1 0 0\n0 1 0\n3 0 1 7\n"},
		{"degenerate face", header + "0 0 0\n1 0 0\n0 1 0\n2 0 1\n"},
		{"truncated", header + "0 0 0\n1 0 0\n"},
		{"negative list length", header + vertices + "-1 0 1 2\n"},
		{"fractional list length", header + vertices + "2.5 0 1 2\n"},
		{"list length over limit", header + vertices + "100000 0 1 2\n"},
		{"negative binary list length", binaryHeader + strings.Repeat("\x00", 36) + "\xff"},
		{"element count over limit", "ply\nformat ascii 1.0\nelement vertex 99999999\nproperty float x\nend_header\n"},
		{"declared vertices missing", "ply\nformat ascii 1.0\nelement vertex 16000000\nproperty float x\nend_header\n0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePLY(strings.NewReader(tt.data)); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestLoadPLY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.ply")
	if err := os.WriteFile(path, createTestPLY(binary.LittleEndian, "binary_little_endian", true, false), 0644); err != nil {
		t.Fatalf("failed to write PLY: %v", err)
	}

	mesh, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("LoadPLY error: %v", err)
	}
	if mesh.Name != "square.ply" {
		t.Errorf("Name = %q, want square.ply", mesh.Name)
	}
	checkSquare(t, mesh, core.NewVec3(0, 0, 1))

	if _, err := LoadPLY(filepath.Join(t.TempDir(), "missing.ply")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
