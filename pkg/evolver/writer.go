// Package evolver reads and writes the plain-text STRING model consumed by
// the Surface Evolver: vertices, edges, faces as oriented edge loops, and one
// body per face carrying its target volume.
package evolver

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/0x0FACED/go-rds/pkg/mesh"
)

const (
	headerVertices = "vertices"
	headerEdges    = "edges  /* given by endpoints */"
	headerFaces    = "faces  /* given by oriented edge loop */"
	headerBodies   = "bodies  /* defined by their oriented faces */"
)

// FormatFloat renders coordinates and volumes: shortest decimal that parses
// back to the same value.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Write serializes m. It does not check the mesh; run mesh.Validate first.
func Write(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("STRING\n")
	bw.WriteString("space_dimension 2\n")
	bw.WriteString("\n")
	bw.WriteString(headerVertices + "\n")
	bw.WriteString("\n")
	for i, p := range m.Points {
		fmt.Fprintf(bw, "%d  %s %s\n", i+1, FormatFloat(p.X), FormatFloat(p.Y))
	}

	bw.WriteString("\n\n")
	bw.WriteString(headerEdges + "\n")
	for i, e := range m.Edges {
		fmt.Fprintf(bw, "%d  %d %d\n", i+1, e.From, e.To)
	}

	bw.WriteString("\n\n")
	bw.WriteString(headerFaces + "\n")
	for i, f := range m.Faces {
		var sb strings.Builder
		sb.WriteString(strconv.Itoa(i + 1))
		for _, id := range f.Edges {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(id))
		}
		sb.WriteByte('\n')
		bw.WriteString(sb.String())
	}

	bw.WriteString("\n")
	bw.WriteString(headerBodies + "\n")
	for i, f := range m.Faces {
		fmt.Fprintf(bw, "%d  %d volume %s\n", i+1, i+1, FormatFloat(f.Volume))
	}

	bw.WriteString("\n")
	bw.WriteString("read")
	return bw.Flush()
}

// WriteFile writes m to path through a temporary file in the same directory,
// so a failed export never leaves a partial file behind.
func WriteFile(path string, m *mesh.Mesh) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err := Write(tmp, m); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}
