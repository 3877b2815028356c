package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/chazu/forma/pkg/kernel"
)

// MeshFormat selects the mesh serialization.
type MeshFormat int

const (
	FormatSTL      MeshFormat = iota // binary STL (default)
	FormatSTLASCII                   // text STL
	FormatOBJ                        // Wavefront OBJ
)

func (f MeshFormat) String() string {
	switch f {
	case FormatSTL:
		return "stl"
	case FormatSTLASCII:
		return "stl-ascii"
	case FormatOBJ:
		return "obj"
	default:
		return "unknown"
	}
}

// FormatForPath infers the mesh format from a file extension.
func FormatForPath(path string) (MeshFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".stl":
		return FormatSTL, nil
	case ".obj":
		return FormatOBJ, nil
	}
	return 0, fmt.Errorf("export: no mesh format for %q", path)
}

// Mesh serializes a triangulated mesh to the given format.
func Mesh(m *kernel.Mesh, format MeshFormat) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteMesh(&buf, m, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteMesh writes a triangulated mesh to w. The vertex and triangle
// order of the input mesh is preserved, so exporting the same mesh twice
// yields identical bytes.
func WriteMesh(w io.Writer, m *kernel.Mesh, format MeshFormat) error {
	if m == nil || m.IsEmpty() {
		return fmt.Errorf("export: mesh has no geometry")
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("export: index count %d is not a multiple of 3", len(m.Indices))
	}
	switch format {
	case FormatSTL:
		return writeSTLBinary(w, m)
	case FormatSTLASCII:
		return writeSTLASCII(w, m)
	case FormatOBJ:
		return writeOBJ(w, m)
	default:
		return fmt.Errorf("export: unknown mesh format %d", format)
	}
}

// writeSTLBinary emits the 80-byte header, triangle count, and 50 bytes
// per triangle (normal, three vertices, attribute word).
func writeSTLBinary(w io.Writer, m *kernel.Mesh) error {
	var header [80]byte
	copy(header[:], "forma binary STL")
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	triCount := uint32(len(m.Indices) / 3)
	if err := binary.Write(w, binary.LittleEndian, triCount); err != nil {
		return err
	}

	var rec [50]byte
	for t := 0; t < int(triCount); t++ {
		off := 0
		put := func(f float32) {
			binary.LittleEndian.PutUint32(rec[off:], math.Float32bits(f))
			off += 4
		}
		ni := m.Indices[t*3] * 3
		put(m.Normals[ni])
		put(m.Normals[ni+1])
		put(m.Normals[ni+2])
		for j := 0; j < 3; j++ {
			vi := m.Indices[t*3+j] * 3
			put(m.Vertices[vi])
			put(m.Vertices[vi+1])
			put(m.Vertices[vi+2])
		}
		rec[48] = 0
		rec[49] = 0
		if _, err := w.Write(rec[:]); err != nil {
			return err
		}
	}
	return nil
}

func writeSTLASCII(w io.Writer, m *kernel.Mesh) error {
	name := m.Name
	if name == "" {
		name = "forma"
	}
	if _, err := fmt.Fprintf(w, "solid %s\n", name); err != nil {
		return err
	}
	for t := 0; t < len(m.Indices)/3; t++ {
		ni := m.Indices[t*3] * 3
		fmt.Fprintf(w, "  facet normal %e %e %e\n", m.Normals[ni], m.Normals[ni+1], m.Normals[ni+2])
		fmt.Fprintf(w, "    outer loop\n")
		for j := 0; j < 3; j++ {
			vi := m.Indices[t*3+j] * 3
			fmt.Fprintf(w, "      vertex %e %e %e\n", m.Vertices[vi], m.Vertices[vi+1], m.Vertices[vi+2])
		}
		fmt.Fprintf(w, "    endloop\n")
		fmt.Fprintf(w, "  endfacet\n")
	}
	_, err := fmt.Fprintf(w, "endsolid %s\n", name)
	return err
}

func writeOBJ(w io.Writer, m *kernel.Mesh) error {
	if m.Name != "" {
		if _, err := fmt.Fprintf(w, "o %s\n", m.Name); err != nil {
			return err
		}
	}
	for i := 0; i < len(m.Vertices); i += 3 {
		if _, err := fmt.Fprintf(w, "v %e %e %e\n", m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]); err != nil {
			return err
		}
	}
	// OBJ face indices are 1-based.
	for t := 0; t < len(m.Indices)/3; t++ {
		if _, err := fmt.Fprintf(w, "f %d %d %d\n",
			m.Indices[t*3]+1, m.Indices[t*3+1]+1, m.Indices[t*3+2]+1); err != nil {
			return err
		}
	}
	return nil
}
