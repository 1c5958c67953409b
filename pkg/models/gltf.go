package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/spinmesh/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Format decides the color attribute: palette indices cycling 1..6 per
	// triangle for unshaded, intensity 1 for shaded.
	Format Format
}

// NewGLTFLoader creates a new GLTF loader producing meshes of the given
// format.
func NewGLTFLoader(format Format) *GLTFLoader {
	return &GLTFLoader{Format: format}
}

// LoadGLB loads a binary GLTF (.glb) or GLTF file.
func LoadGLB(path string, format Format) (*Mesh, error) {
	return NewGLTFLoader(format).Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path), l.Format)
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// processMesh appends the triangles of every triangle-list primitive.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, strips)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(doc.Accessors) {
			return fmt.Errorf("position accessor %d out of range", posIdx)
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var indices []uint32
		if prim.Indices != nil {
			if *prim.Indices < 0 || *prim.Indices >= len(doc.Accessors) {
				return fmt.Errorf("index accessor %d out of range", *prim.Indices)
			}
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			var t Triangle
			for k := range 3 {
				idx := int(indices[i+k])
				if idx >= len(positions) {
					return fmt.Errorf("index %d out of range of %d positions", idx, len(positions))
				}
				p := positions[idx]
				t.V[k].Position = math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
				t.V[k].Color = l.color(len(mesh.Triangles))
			}
			mesh.Add(t)
		}
	}

	return nil
}

// color returns the color attribute of the n-th triangle.
func (l *GLTFLoader) color(n int) float64 {
	if l.Format == FormatShaded {
		return 1
	}
	return float64(n%MaxColorIndex + 1)
}
