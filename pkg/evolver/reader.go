package evolver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/0x0FACED/go-rds/pkg/mesh"
	"github.com/jbeda/geom"
)

var ErrFormat = errors.New("evolver: malformed file")

type section int

const (
	sectionNone section = iota
	sectionVertices
	sectionEdges
	sectionFaces
	sectionBodies
	sectionRead
)

func formatErr(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrFormat, line, fmt.Sprintf(format, args...))
}

// Read parses a file produced by Write back into a mesh. Ids must be
// consecutive from 1 in every section.
func Read(r io.Reader) (*mesh.Mesh, error) {
	m := mesh.New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	cur := sectionNone
	sawHeader := false
	bodies := 0
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "STRING":
			sawHeader = true
			continue
		case "space_dimension":
			if len(fields) != 2 || fields[1] != "2" {
				return nil, formatErr(lineNo, "unsupported %q", line)
			}
			continue
		case "vertices":
			cur = sectionVertices
			continue
		case "edges":
			cur = sectionEdges
			continue
		case "faces":
			cur = sectionFaces
			continue
		case "bodies":
			cur = sectionBodies
			continue
		case "read":
			cur = sectionRead
			continue
		}
		if !sawHeader {
			return nil, formatErr(lineNo, "missing STRING header")
		}

		var err error
		switch cur {
		case sectionVertices:
			err = readVertex(m, fields)
		case sectionEdges:
			err = readEdge(m, fields)
		case sectionFaces:
			err = readFace(m, fields)
		case sectionBodies:
			err = readBody(m, fields, bodies+1)
			bodies++
		default:
			err = errors.New("data outside of a section")
		}
		if err != nil {
			return nil, formatErr(lineNo, "%v", err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("evolver: scan: %w", err)
	}
	if cur != sectionRead {
		return nil, fmt.Errorf("%w: missing trailing read", ErrFormat)
	}
	return m, nil
}

func ReadFile(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func ints(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func expectID(got, want int) error {
	if got != want {
		return fmt.Errorf("id %d out of sequence, want %d", got, want)
	}
	return nil
}

func readVertex(m *mesh.Mesh, fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("vertex needs id x y, got %d fields", len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return err
	}
	if err := expectID(id, len(m.Points)+1); err != nil {
		return err
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return err
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return err
	}
	m.AddPoint(geom.Coord{X: x, Y: y})
	return nil
}

func readEdge(m *mesh.Mesh, fields []string) error {
	v, err := ints(fields)
	if err != nil {
		return err
	}
	if len(v) != 3 {
		return fmt.Errorf("edge needs id from to, got %d fields", len(v))
	}
	if err := expectID(v[0], len(m.Edges)+1); err != nil {
		return err
	}
	m.AddEdge(v[1], v[2])
	return nil
}

func readFace(m *mesh.Mesh, fields []string) error {
	v, err := ints(fields)
	if err != nil {
		return err
	}
	if len(v) < 2 {
		return errors.New("face without edges")
	}
	if err := expectID(v[0], len(m.Faces)+1); err != nil {
		return err
	}
	m.AddFace(v[1:], 0)
	return nil
}

func readBody(m *mesh.Mesh, fields []string, want int) error {
	if len(fields) != 4 || fields[2] != "volume" {
		return fmt.Errorf("body needs id face volume v, got %q", strings.Join(fields, " "))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return err
	}
	if err := expectID(id, want); err != nil {
		return err
	}
	face, err := strconv.Atoi(fields[1])
	if err != nil {
		return err
	}
	if face < 1 || face > len(m.Faces) {
		return fmt.Errorf("body references unknown face %d", face)
	}
	vol, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return err
	}
	m.Faces[face-1].Volume = vol
	return nil
}
