// Package loader reads graph directories in the viewer's text format and
// applies them to a Scene.
//
// A directory holds three files:
//
//	window.txt  width height dynamic scale dashed curved background
//	nodes.txt   count, then one "(x, y, COLOR , label , size, icon )" per line
//	edges.txt   count, then one "(from, to, type, COLOR ,thickness, label , flow , weight )" per line
//
// "-" marks an absent label, icon or background and "%" an absent flow or
// weight. Node positions are multiplied by the window scale. Node and edge
// ids are their line order, starting at 0.
package loader

import (
	"bufio"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wesen/graphview/internal/scene"
	"github.com/wesen/graphview/pkg/colors"
	"github.com/wesen/graphview/pkg/errors"
	"github.com/wesen/graphview/pkg/geom"
)

const (
	absent       = "-"
	absentNumber = "%"
)

// Window holds the settings of window.txt.
type Window struct {
	Width, Height int
	Dynamic       bool
	Scale         float64
	Dashed        bool
	Curved        bool
	Background    string
}

type Node struct {
	ID    int
	Pos   geom.Vec
	Color color.RGBA
	Label string
	Size  float64
	Icon  string
}

type Edge struct {
	ID        int
	From, To  int
	Type      scene.EdgeType
	Color     color.RGBA
	Thickness float64
	Label     string
	Flow      float64
	HasFlow   bool
	Weight    float64
	HasWeight bool
}

// Graph is a parsed graph directory.
type Graph struct {
	Name   string
	Window Window
	Nodes  []Node
	Edges  []Edge
}

// Load reads window.txt, nodes.txt and edges.txt from dir. Relative icon
// and background paths are resolved against dir.
func Load(dir string) (*Graph, error) {
	g := &Graph{Name: filepath.Base(filepath.Clean(dir))}

	err := withFile(dir, "window.txt", func(r io.Reader) (err error) {
		g.Window, err = ParseWindow(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = withFile(dir, "nodes.txt", func(r io.Reader) (err error) {
		g.Nodes, err = ParseNodes(r, g.Window.Scale)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = withFile(dir, "edges.txt", func(r io.Reader) (err error) {
		g.Edges, err = ParseEdges(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	g.Window.Background = resolve(dir, g.Window.Background)
	for i := range g.Nodes {
		g.Nodes[i].Icon = resolve(dir, g.Nodes[i].Icon)
	}
	return g, nil
}

func withFile(dir, name string, parse func(io.Reader) error) error {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeResourceLoad, err, "open %s", path)
	}
	defer f.Close()
	if err := parse(f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	return nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// ParseWindow parses the whitespace-separated fields of window.txt.
func ParseWindow(r io.Reader) (Window, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Window{}, err
	}
	f := strings.Fields(string(data))
	if len(f) < 7 {
		return Window{}, errors.New(errors.ErrCodeInvalidInput, "window needs 7 fields, got %d", len(f))
	}
	p := fieldParser{}
	w := Window{
		Width:   p.parseInt(f[0], "width"),
		Height:  p.parseInt(f[1], "height"),
		Dynamic: p.parseFlag(f[2], "dynamic"),
		Scale:   p.parseFloat(f[3], "scale"),
		Dashed:  p.parseFlag(f[4], "dashed"),
		Curved:  p.parseFlag(f[5], "curved"),
	}
	if f[6] != absent {
		w.Background = f[6]
	}
	if p.err != nil {
		return Window{}, p.err
	}
	if w.Width <= 0 || w.Height <= 0 {
		return Window{}, errors.New(errors.ErrCodeInvalidInput, "window size must be positive, got %dx%d", w.Width, w.Height)
	}
	return w, nil
}

// ParseNodes parses nodes.txt, scaling positions by scale.
func ParseNodes(r io.Reader, scale float64) ([]Node, error) {
	var nodes []Node
	err := eachRecord(r, 6, func(id int, f []string) error {
		p := fieldParser{}
		n := Node{
			ID:    id,
			Pos:   geom.Pt(p.parseFloat(f[0], "x"), p.parseFloat(f[1], "y")).Mul(scale),
			Color: p.parseColor(f[2]),
			Label: optional(f[3]),
			Size:  p.parseFloat(f[4], "size"),
			Icon:  optional(f[5]),
		}
		if p.err != nil {
			return p.err
		}
		nodes = append(nodes, n)
		return nil
	})
	return nodes, err
}

// ParseEdges parses edges.txt. Type 0 is undirected, anything else directed.
func ParseEdges(r io.Reader) ([]Edge, error) {
	var edges []Edge
	err := eachRecord(r, 8, func(id int, f []string) error {
		p := fieldParser{}
		e := Edge{
			ID:        id,
			From:      p.parseInt(f[0], "from"),
			To:        p.parseInt(f[1], "to"),
			Type:      scene.Undirected,
			Color:     p.parseColor(f[3]),
			Thickness: p.parseFloat(f[4], "thickness"),
			Label:     optional(f[5]),
		}
		if p.parseInt(f[2], "type") != 0 {
			e.Type = scene.Directed
		}
		if f[6] != absentNumber {
			e.Flow, e.HasFlow = p.parseFloat(f[6], "flow"), true
		}
		if f[7] != absentNumber {
			e.Weight, e.HasWeight = p.parseFloat(f[7], "weight"), true
		}
		if p.err != nil {
			return p.err
		}
		edges = append(edges, e)
		return nil
	})
	return edges, err
}

func optional(s string) string {
	if s == absent {
		return ""
	}
	return s
}

// eachRecord reads the count line and then count tuple lines of n fields.
func eachRecord(r io.Reader, n int, fn func(id int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	line := 0
	next := func() (string, bool) {
		for sc.Scan() {
			line++
			if s := strings.TrimSpace(sc.Text()); s != "" {
				return s, true
			}
		}
		return "", false
	}

	head, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return err
		}
		return errors.New(errors.ErrCodeInvalidInput, "missing record count")
	}
	count, err := strconv.Atoi(strings.Fields(head)[0])
	if err != nil || count < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "line %d: bad record count %q", line, head)
	}

	for id := 0; id < count; id++ {
		s, ok := next()
		if !ok {
			if err := sc.Err(); err != nil {
				return err
			}
			return errors.New(errors.ErrCodeInvalidInput, "expected %d records, got %d", count, id)
		}
		fields, err := splitTuple(s, n)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d", line)
		}
		if err := fn(id, fields); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d", line)
		}
	}
	return sc.Err()
}

// splitTuple splits "(a, b, c)" into trimmed fields.
func splitTuple(s string, n int) ([]string, error) {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "record %q is not parenthesized", s)
	}
	fields := strings.Split(s[1:len(s)-1], ",")
	if len(fields) != n {
		return nil, errors.New(errors.ErrCodeInvalidInput, "record has %d fields, want %d", len(fields), n)
	}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields, nil
}

// fieldParser keeps the first conversion error.
type fieldParser struct {
	err error
}

func (p *fieldParser) fail(err error, name, s string) {
	if p.err == nil {
		p.err = errors.Wrap(errors.ErrCodeInvalidInput, err, "%s %q", name, s)
	}
}

func (p *fieldParser) parseInt(s, name string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		p.fail(err, name, s)
	}
	return v
}

func (p *fieldParser) parseFloat(s, name string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(err, name, s)
	}
	return v
}

func (p *fieldParser) parseFlag(s, name string) bool {
	return p.parseInt(s, name) != 0
}

func (p *fieldParser) parseColor(s string) color.RGBA {
	c, err := colors.Parse(s)
	if err != nil {
		p.fail(err, "color", s)
	}
	return c
}
