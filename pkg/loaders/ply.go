package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-sah-raytracer/pkg/core"
)

const (
	// Upper bounds on header element counts and per-face list lengths
	maxPLYElements   = 1 << 24
	maxPLYListLength = 1 << 16
)

// plyProperty represents a property definition in the PLY header
type plyProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
}

// plyHeader represents the parsed header information from a PLY file
type plyHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian" or "ascii"
	VertexCount int
	FaceCount   int
	VertexProps []plyProperty
	FaceProps   []plyProperty
	HasNormals  bool
}

// LoadPLY reads a PLY file. Faces are fan-triangulated and, when the file
// carries per-vertex normals, each triangle takes the normal of its first
// vertex.
func LoadPLY(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	start := time.Now()
	mesh, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	mesh.Name = filepath.Base(path)

	logger.Infof("loaded %s: %d triangles in %d ms", mesh.Name, len(mesh.Triangles), time.Since(start).Milliseconds())
	return mesh, nil
}

// ParsePLY reads PLY data from r
func ParsePLY(r io.Reader) (*Mesh, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "binary_little_endian":
		values = &plyBinaryReader{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &plyBinaryReader{r: reader, order: binary.BigEndian}
	case "ascii":
		values = &plyASCIIReader{scanner: bufio.NewScanner(reader)}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	return readPLYBody(values, header)
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(r *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}
	var currentElement string

	for lineNum := 1; ; lineNum++ {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("missing end_header: %w", err)
		}
		parts := strings.Fields(line)
		if lineNum == 1 {
			if len(parts) != 1 || parts[0] != "ply" {
				return nil, fmt.Errorf("not a PLY file")
			}
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("line %d: invalid format line", lineNum)
			}
			header.Format = parts[1]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("line %d: invalid element line", lineNum)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("line %d: invalid element count: %s", lineNum, parts[2])
			}
			if count > maxPLYElements {
				return nil, fmt.Errorf("line %d: element count %d exceeds limit %d", lineNum, count, maxPLYElements)
			}
			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				if count > 0 {
					return nil, fmt.Errorf("line %d: unsupported element %q", lineNum, currentElement)
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
				if prop.Name == "nx" {
					header.HasNormals = true
				}
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 1 && parts[0] == "list" {
		if len(parts) < 4 {
			return plyProperty{}, fmt.Errorf("invalid list property definition")
		}
		return plyProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	if len(parts) < 2 {
		return plyProperty{}, fmt.Errorf("invalid property definition")
	}
	if plyTypeSize(parts[0]) == 0 {
		return plyProperty{}, fmt.Errorf("unsupported property type %q", parts[0])
	}
	return plyProperty{Type: parts[0], Name: parts[1]}, nil
}

// plyTypeSize returns the byte size of a scalar type, or 0 if unknown
func plyTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

type plyValueReader interface {
	read(dataType string) (float64, error)
}

type plyBinaryReader struct {
	r     *bufio.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (p *plyBinaryReader) read(dataType string) (float64, error) {
	size := plyTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported type %q", dataType)
	}
	b := p.buf[:size]
	if _, err := io.ReadFull(p.r, b); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(p.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(p.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(p.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(p.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(p.order.Uint32(b))), nil
	default:
		return math.Float64frombits(p.order.Uint64(b)), nil
	}
}

type plyASCIIReader struct {
	scanner *bufio.Scanner
	tokens  []string
}

func (p *plyASCIIReader) read(string) (float64, error) {
	for len(p.tokens) == 0 {
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		p.tokens = strings.Fields(p.scanner.Text())
	}
	token := p.tokens[0]
	p.tokens = p.tokens[1:]
	return strconv.ParseFloat(token, 64)
}

func readPLYBody(values plyValueReader, header *plyHeader) (*Mesh, error) {
	// The buffers grow with the data actually read, not the declared count
	positions := make([]core.Vec3, 0, min(header.VertexCount, 4096))
	normals := make([]core.Vec3, 0, min(header.VertexCount, 4096))

	for i := 0; i < header.VertexCount; i++ {
		var p, n [3]float32
		for _, prop := range header.VertexProps {
			v, err := readPLYProperty(values, prop)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			switch prop.Name {
			case "x":
				p[0] = float32(v)
			case "y":
				p[1] = float32(v)
			case "z":
				p[2] = float32(v)
			case "nx":
				n[0] = float32(v)
			case "ny":
				n[1] = float32(v)
			case "nz":
				n[2] = float32(v)
			}
		}
		positions = append(positions, core.NewVec3(p[0], p[1], p[2]))
		normals = append(normals, core.NewVec3(n[0], n[1], n[2]))
	}

	mesh := &Mesh{}
	for i := 0; i < header.FaceCount; i++ {
		var indices []int
		for _, prop := range header.FaceProps {
			if !prop.IsList {
				if _, err := values.read(prop.Type); err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}

			count, err := readPLYListCount(values, prop)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			list := make([]int, count)
			for j := range list {
				v, err := values.read(prop.Type)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				list[j] = int(v)
			}
			if prop.Name == "vertex_indices" || prop.Name == "vertex_index" {
				indices = list
			}
		}

		if len(indices) < 3 {
			return nil, fmt.Errorf("face %d: need at least 3 vertices, got %d", i, len(indices))
		}
		for _, idx := range indices {
			if idx < 0 || idx >= header.VertexCount {
				return nil, fmt.Errorf("face %d: vertex index %d out of range", i, idx)
			}
		}

		for j := 1; j+1 < len(indices); j++ {
			tri := MeshTriangle{
				Vertices: [3]core.Vec3{positions[indices[0]], positions[indices[j]], positions[indices[j+1]]},
			}
			if header.HasNormals {
				tri.Normal = normals[indices[0]]
			}
			mesh.Triangles = append(mesh.Triangles, tri)
		}
	}

	return mesh, nil
}

func readPLYProperty(values plyValueReader, prop plyProperty) (float64, error) {
	if !prop.IsList {
		return values.read(prop.Type)
	}
	// Vertex list properties are skipped
	count, err := readPLYListCount(values, prop)
	if err != nil {
		return 0, err
	}
	for j := 0; j < count; j++ {
		if _, err := values.read(prop.Type); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

// readPLYListCount reads the length prefix of a list property
func readPLYListCount(values plyValueReader, prop plyProperty) (int, error) {
	count, err := values.read(prop.ListType)
	if err != nil {
		return 0, err
	}
	if count != math.Trunc(count) || count < 0 || count > maxPLYListLength {
		return 0, fmt.Errorf("invalid %s list length %v", prop.Name, count)
	}
	return int(count), nil
}
