package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrOpenOBJ         = errors.New("cannot open model file")
	ErrIndexOutOfRange = errors.New("face index out of range")
)

// OBJCorner holds the 0-based position/UV/normal indices of one face corner.
type OBJCorner struct {
	Position int
	UV       int
	Normal   int
}

// OBJFace is a triangular face.
type OBJFace struct {
	Corners [3]OBJCorner
	Line    int // 1-based source line, kept for error reporting
}

// OBJ holds the raw lists of a face-indexed model file.
// Only v, vt, vn and triangular f lines are interpreted.
type OBJ struct {
	Positions [][3]float32
	UVs       [][2]float32
	Normals   [][3]float32
	Faces     []OBJFace

	// SkippedFaces counts face lines that were not exactly three a/b/c corners.
	SkippedFaces int
}

// TriangleCount returns the number of triangles described by the file.
// Nine indices per face, three per corner, three corners per triangle.
func (o *OBJ) TriangleCount() int {
	return len(o.Faces)
}

// ParseOBJ parses a face-indexed model from raw bytes.
// Indices are converted from 1-based to 0-based and bounds-checked after the full scan.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if v, ok := parseFloats(fields[1:], 3); ok {
				obj.Positions = append(obj.Positions, [3]float32{v[0], v[1], v[2]})
			}
		case "vt":
			if v, ok := parseFloats(fields[1:], 2); ok {
				obj.UVs = append(obj.UVs, [2]float32{v[0], v[1]})
			}
		case "vn":
			if v, ok := parseFloats(fields[1:], 3); ok {
				obj.Normals = append(obj.Normals, [3]float32{v[0], v[1], v[2]})
			}
		case "f":
			face, ok := parseFace(fields[1:])
			if !ok {
				obj.SkippedFaces++
				continue
			}
			face.Line = lineNo
			obj.Faces = append(obj.Faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning model: %w", err)
	}

	if err := obj.validate(); err != nil {
		return nil, err
	}
	return obj, nil
}

// ParseOBJFile parses a face-indexed model file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenOBJ, path, err)
	}
	obj, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return obj, nil
}

// validate checks every resolved index against the list it points into.
func (o *OBJ) validate() error {
	for _, f := range o.Faces {
		for i, c := range f.Corners {
			if c.Position < 0 || c.Position >= len(o.Positions) {
				return fmt.Errorf("%w: line %d corner %d position %d (have %d)",
					ErrIndexOutOfRange, f.Line, i, c.Position+1, len(o.Positions))
			}
			if c.UV < 0 || c.UV >= len(o.UVs) {
				return fmt.Errorf("%w: line %d corner %d uv %d (have %d)",
					ErrIndexOutOfRange, f.Line, i, c.UV+1, len(o.UVs))
			}
			if c.Normal < 0 || c.Normal >= len(o.Normals) {
				return fmt.Errorf("%w: line %d corner %d normal %d (have %d)",
					ErrIndexOutOfRange, f.Line, i, c.Normal+1, len(o.Normals))
			}
		}
	}
	return nil
}

// parseFloats reads the first n fields as float32 values.
func parseFloats(fields []string, n int) ([3]float32, bool) {
	var out [3]float32
	if len(fields) < n {
		return out, false
	}
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, false
		}
		out[i] = float32(f)
	}
	return out, true
}

// parseFace reads exactly three "a/b/c" corners.
func parseFace(fields []string) (OBJFace, bool) {
	var face OBJFace
	if len(fields) != 3 {
		return face, false
	}
	for i, field := range fields {
		parts := strings.Split(field, "/")
		if len(parts) != 3 {
			return face, false
		}
		var idx [3]int
		for j, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil {
				return face, false
			}
			idx[j] = n - 1
		}
		face.Corners[i] = OBJCorner{Position: idx[0], UV: idx[1], Normal: idx[2]}
	}
	return face, true
}
