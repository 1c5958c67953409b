package models

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/spinmesh/pkg/math3d"
)

// Format is the layout of a text geometry file.
type Format int

const (
	// FormatUnshaded starts with "width height count" and each record
	// carries an integer palette index 0..6. The index on a triangle's
	// third record colors the whole triangle.
	FormatUnshaded Format = iota
	// FormatShaded starts with "count" and each record carries a base
	// intensity in [0, 1]. Its viewport is fixed at 100x100.
	FormatShaded
)

func (f Format) String() string {
	switch f {
	case FormatUnshaded:
		return "unshaded"
	case FormatShaded:
		return "shaded"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ShadedViewport is the viewport size of shaded geometry files.
const ShadedViewport = 100

// MaxColorIndex is the largest palette index an unshaded record may use.
const MaxColorIndex = 6

var (
	ErrTruncated  = errors.New("unexpected end of input")
	ErrBadHeader  = errors.New("invalid header")
	ErrBadRecord  = errors.New("invalid vertex record")
	ErrColorRange = errors.New("color out of range")
)

// ParseError reports the token a parse failed at. Token counts from zero
// across the whole file, header included.
type ParseError struct {
	Token int
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("token %d: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("token %d %q: %v", e.Token, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// tokenizer yields whitespace-separated tokens and tracks their index.
type tokenizer struct {
	sc *bufio.Scanner
	n  int
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &tokenizer{sc: sc}
}

func (t *tokenizer) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return "", &ParseError{Token: t.n, Err: ErrTruncated}
	}
	t.n++
	return t.sc.Text(), nil
}

func (t *tokenizer) readInt(kind error) (int, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Token: t.n - 1, Text: s, Err: kind}
	}
	return v, nil
}

func (t *tokenizer) readFloat(kind error) (float64, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Token: t.n - 1, Text: s, Err: kind}
	}
	return v, nil
}

// Parse reads a text geometry file in the given format.
func Parse(r io.Reader, format Format) (*Mesh, error) {
	tok := newTokenizer(r)
	mesh := NewMesh("", format)

	switch format {
	case FormatUnshaded:
		w, err := tok.readInt(ErrBadHeader)
		if err != nil {
			return nil, err
		}
		h, err := tok.readInt(ErrBadHeader)
		if err != nil {
			return nil, err
		}
		if w <= 0 || h <= 0 {
			return nil, &ParseError{Token: 0, Text: fmt.Sprintf("%d %d", w, h), Err: ErrBadHeader}
		}
		mesh.Width, mesh.Height = w, h
	case FormatShaded:
		mesh.Width, mesh.Height = ShadedViewport, ShadedViewport
	default:
		return nil, fmt.Errorf("parse: unknown format %v", format)
	}

	count, err := tok.readInt(ErrBadHeader)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, &ParseError{Token: tok.n - 1, Text: strconv.Itoa(count), Err: ErrBadHeader}
	}

	mesh.Triangles = make([]Triangle, 0, count)
	for range count {
		var t Triangle
		for k := range 3 {
			v, err := readVertex(tok, format)
			if err != nil {
				return nil, err
			}
			t.V[k] = v
		}
		if format == FormatUnshaded {
			c := t.V[2].Color
			t.V[0].Color, t.V[1].Color = c, c
		}
		mesh.Add(t)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func readVertex(tok *tokenizer, format Format) (Vertex, error) {
	var p [3]float64
	for i := range p {
		v, err := tok.readFloat(ErrBadRecord)
		if err != nil {
			return Vertex{}, err
		}
		p[i] = v
	}
	vert := Vertex{Position: math3d.V3(p[0], p[1], p[2])}

	if format == FormatUnshaded {
		c, err := tok.readInt(ErrBadRecord)
		if err != nil {
			return Vertex{}, err
		}
		if c < 0 || c > MaxColorIndex {
			return Vertex{}, &ParseError{Token: tok.n - 1, Text: strconv.Itoa(c), Err: ErrColorRange}
		}
		vert.Color = float64(c)
		return vert, nil
	}

	c, err := tok.readFloat(ErrBadRecord)
	if err != nil {
		return Vertex{}, err
	}
	if c < 0 || c > 1 {
		return Vertex{}, &ParseError{Token: tok.n - 1, Text: strconv.FormatFloat(c, 'g', -1, 64), Err: ErrColorRange}
	}
	vert.Color = c
	return vert, nil
}

// Detect picks the format from the number of tokens on the first non-empty
// line: three for unshaded, one for shaded. The returned reader replays the
// consumed input.
func Detect(r io.Reader) (Format, io.Reader, error) {
	br := bufio.NewReader(r)
	var consumed strings.Builder
	for {
		line, err := br.ReadString('\n')
		consumed.WriteString(line)
		if fields := strings.Fields(line); len(fields) > 0 {
			replay := io.MultiReader(strings.NewReader(consumed.String()), br)
			switch len(fields) {
			case 3:
				return FormatUnshaded, replay, nil
			case 1:
				return FormatShaded, replay, nil
			default:
				return 0, nil, &ParseError{Token: 0, Text: strings.TrimSpace(line), Err: ErrBadHeader}
			}
		}
		if err == io.EOF {
			return 0, nil, &ParseError{Token: 0, Err: ErrTruncated}
		}
		if err != nil {
			return 0, nil, fmt.Errorf("detect format: %w", err)
		}
	}
}

// LoadText reads a text geometry file and parses it with ParseText.
func LoadText(path string) (*Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open geometry: %w", err)
	}

	mesh, err := ParseText(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseText parses a text geometry file of either format. The format comes
// from Detect; when that parse fails the other format is tried, so headers
// split across lines still load. The error of the detected format is
// returned when neither parses.
func ParseText(data []byte) (*Mesh, error) {
	format, r, err := Detect(bytes.NewReader(data))
	if err != nil {
		if !errors.Is(err, ErrBadHeader) {
			return nil, err
		}
		format, r = FormatUnshaded, bytes.NewReader(data)
	}

	mesh, err := Parse(r, format)
	if err == nil {
		return mesh, nil
	}

	alt := FormatShaded
	if format == FormatShaded {
		alt = FormatUnshaded
	}
	if mesh, altErr := Parse(bytes.NewReader(data), alt); altErr == nil {
		return mesh, nil
	}
	return nil, err
}

// Load reads a mesh from path, choosing the loader by extension: .glb and
// .gltf go through the glTF loader with the given format, anything else is
// read as a text geometry file.
func Load(path string, gltfFormat Format) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return LoadGLB(path, gltfFormat)
	default:
		return LoadText(path)
	}
}
