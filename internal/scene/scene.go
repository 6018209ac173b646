// Package scene keeps a mutable graph of nodes and edges, derives their
// drawable geometry, and runs the render loop that draws it.
//
// A Scene is safe for concurrent use. One mutex guards every piece of
// state; each mutation and the whole draw pass of a frame run under it,
// so a frame never sees a half-applied change.
package scene

import (
	"image/color"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/internal/viewport"
	"github.com/wesen/graphview/pkg/colors"
	"github.com/wesen/graphview/pkg/errors"
	"github.com/wesen/graphview/pkg/geom"
	"github.com/wesen/graphview/pkg/graphmodel"
)

const (
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultLabelFontSize = 16
	DefaultDebugFontSize = 14
	DefaultMaxFPS        = 60
)

// State is the window lifecycle of a Scene.
type State int

const (
	Uninitialized State = iota
	Running
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Visibility toggles whole categories of drawables.
type Visibility struct {
	Nodes      bool
	NodeLabels bool
	Edges      bool
	EdgeLabels bool
}

// Options configure a Scene. The zero value is usable.
type Options struct {
	Title         string
	LabelFont     string // font path or backend builtin name
	LabelFontSize int
	DebugFont     string
	DebugFontSize int
	ClearColor    color.RGBA // zero means white
	MaxFPS        int        // frames per second cap; negative disables it
	ZoomBase      float64
	DebugKey      rune

	Batching bool
	Debug    bool
	// Hidden categories; everything is shown by default.
	HideNodes      bool
	HideNodeLabels bool
	HideEdges      bool
	HideEdgeLabels bool

	NodeDefaults *NodeDefaults
	EdgeDefaults *EdgeDefaults

	Logger *log.Logger
	Clock  func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "graphview"
	}
	if o.LabelFont == "" {
		o.LabelFont = backend.BuiltinRegular
	}
	if o.LabelFontSize <= 0 {
		o.LabelFontSize = DefaultLabelFontSize
	}
	if o.DebugFont == "" {
		o.DebugFont = backend.BuiltinMono
	}
	if o.DebugFontSize <= 0 {
		o.DebugFontSize = DefaultDebugFontSize
	}
	if o.ClearColor == (color.RGBA{}) {
		o.ClearColor = colors.White
	}
	if o.MaxFPS == 0 {
		o.MaxFPS = DefaultMaxFPS
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Stats is a point-in-time summary of a Scene.
type Stats struct {
	State    State
	Nodes    int
	Edges    int
	Frames   int
	FPS      float64
	Batching bool
	Debug    bool
}

// Scene is a graph viewer bound to one window.
type Scene struct {
	id      string
	backend backend.Backend
	opts    Options
	logger  *log.Logger

	labelStyle textStyle
	debugStyle textStyle

	mu         sync.Mutex
	state      State
	window     backend.Window
	graph      *graphmodel.Graph[*Node, *Edge]
	batch      Batch
	batching   bool
	show       Visibility
	background *background
	camera     viewport.Camera
	controller *viewport.Controller
	debug      bool
	nodeDefs   NodeDefaults
	edgeDefs   EdgeDefaults
	icons      map[string]backend.Image
	fps        *FPSMonitor
	frames     int

	closeOnce sync.Once
	closeCh   chan struct{}
	done      chan struct{}
	loopErr   error
}

type background struct {
	path  string
	image backend.Image
}

// New creates a Scene drawing through b. The label and debug fonts are
// loaded here; failing to load either is returned.
func New(b backend.Backend, opts Options) (*Scene, error) {
	opts = opts.withDefaults()

	nodeDefs := BuiltinNodeDefaults()
	if opts.NodeDefaults != nil {
		nodeDefs = *opts.NodeDefaults
	}
	if err := nodeDefs.Validate(); err != nil {
		return nil, err
	}
	edgeDefs := BuiltinEdgeDefaults()
	if opts.EdgeDefaults != nil {
		edgeDefs = *opts.EdgeDefaults
	}
	if err := edgeDefs.Validate(); err != nil {
		return nil, err
	}

	labelFont, err := b.LoadFont(opts.LabelFont)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "load label font")
	}
	debugFont, err := b.LoadFont(opts.DebugFont)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceLoad, err, "load debug font")
	}

	id := uuid.NewString()
	controller := viewport.NewController()
	if opts.ZoomBase > 0 {
		controller.ZoomBase = opts.ZoomBase
	}
	if opts.DebugKey != 0 {
		controller.DebugKey = opts.DebugKey
	}

	return &Scene{
		id:         id,
		backend:    b,
		opts:       opts,
		logger:     opts.Logger.With("scene", id),
		labelStyle: textStyle{font: labelFont, size: opts.LabelFontSize},
		debugStyle: textStyle{font: debugFont, size: opts.DebugFontSize},
		graph:      graphmodel.New[*Node, *Edge](),
		batching:   opts.Batching,
		debug:      opts.Debug,
		show: Visibility{
			Nodes:      !opts.HideNodes,
			NodeLabels: !opts.HideNodeLabels,
			Edges:      !opts.HideEdges,
			EdgeLabels: !opts.HideEdgeLabels,
		},
		controller: controller,
		nodeDefs:   nodeDefs,
		edgeDefs:   edgeDefs,
		icons:      make(map[string]backend.Image),
		fps:        NewFPSMonitor(DefaultFPSWindow, opts.Clock),
		closeCh:    make(chan struct{}),
		done:       make(chan struct{}),
	}, nil
}

// ID is the instance id used in log lines.
func (s *Scene) ID() string { return s.id }

// State returns the lifecycle state.
func (s *Scene) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scene) requireRunning() error {
	if s.state != Running {
		return errors.New(errors.ErrCodeInvalidLifecycle, "scene is %s, not running", s.state)
	}
	return nil
}

// loadImage loads through the backend, caching by path. Called with the
// lock held.
func (s *Scene) loadImage(path string) (backend.Image, error) {
	if img, ok := s.icons[path]; ok {
		return img, nil
	}
	img, err := s.backend.LoadImage(path)
	if err != nil {
		return nil, err
	}
	s.icons[path] = img
	return img, nil
}

// ── Lifecycle ──

// CreateWindow opens a w×h window (0 selects 800 or 600) and starts the
// render loop.
func (s *Scene) CreateWindow(w, h int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Uninitialized {
		return errors.New(errors.ErrCodeInvalidLifecycle, "window already created")
	}
	if w == 0 {
		w = DefaultWidth
	}
	if h == 0 {
		h = DefaultHeight
	}
	win, err := s.backend.OpenWindow(backend.WindowConfig{Width: w, Height: h, Title: s.opts.Title})
	if err != nil {
		return err
	}
	cw, ch := win.Size()
	s.window = win
	s.camera = viewport.NewCamera(cw, ch)
	s.state = Running
	if s.batching {
		s.rebuildBatch()
	}
	s.logger.Info("window opened", "width", cw, "height", ch)

	go func() {
		s.loopErr = s.run(win)
		close(s.done)
	}()
	return nil
}

// CloseWindow asks the render loop to close the window. It returns once
// the request is made; use Join to wait for the loop.
func (s *Scene) CloseWindow() error {
	s.mu.Lock()
	err := s.requireRunning()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.closeOnce.Do(func() { close(s.closeCh) })
	return nil
}

// Join blocks until the render loop has exited and returns its error. A
// Join without a close blocks until the user closes the window.
func (s *Scene) Join() error {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	if state == Uninitialized {
		return errors.New(errors.ErrCodeInvalidLifecycle, "join before window creation")
	}
	<-s.done
	return s.loopErr
}

// Done is closed when the render loop exits.
func (s *Scene) Done() <-chan struct{} { return s.done }

// ── Transactions ──

// Update runs fn with exclusive access to the scene. Each Tx operation is
// atomic on its own; an error returned by fn does not undo the operations
// that already succeeded. The batch buffer is rebuilt once at the end if
// any edge geometry changed.
func (s *Scene) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireRunning(); err != nil {
		return err
	}
	tx := &Tx{s: s}
	err := fn(tx)
	tx.commit()
	return err
}

// ── Nodes ──

func (s *Scene) AddNode(id int, pos geom.Vec) error {
	return s.Update(func(tx *Tx) error { return tx.AddNode(id, pos) })
}

// Node returns a copy of node id.
func (s *Scene) Node(id int) (Node, error) {
	var n Node
	err := s.Update(func(tx *Tx) error {
		var err error
		n, err = tx.Node(id)
		return err
	})
	return n, err
}

// RemoveNode removes node id and every edge touching it.
func (s *Scene) RemoveNode(id int) error {
	return s.Update(func(tx *Tx) error { return tx.RemoveNode(id) })
}

func (s *Scene) updateNode(id int, fn func(n *Node) error) error {
	return s.Update(func(tx *Tx) error { return tx.UpdateNode(id, fn) })
}

// SetNodePosition moves a node and re-derives its incident edges.
func (s *Scene) SetNodePosition(id int, pos geom.Vec) error {
	return s.updateNode(id, func(n *Node) error { n.SetPosition(pos); return nil })
}

func (s *Scene) SetNodeLabel(id int, label string) error {
	return s.updateNode(id, func(n *Node) error { n.SetLabel(label); return nil })
}

func (s *Scene) SetNodeColor(id int, c color.RGBA) error {
	return s.updateNode(id, func(n *Node) error { n.SetColor(c); return nil })
}

func (s *Scene) SetNodeSize(id int, size float64) error {
	return s.updateNode(id, func(n *Node) error { return n.SetSize(size) })
}

func (s *Scene) SetNodeIcon(id int, path string) error {
	return s.updateNode(id, func(n *Node) error { return n.SetIcon(path) })
}

func (s *Scene) SetNodeOutlineThickness(id int, t float64) error {
	return s.updateNode(id, func(n *Node) error { return n.SetOutlineThickness(t) })
}

func (s *Scene) SetNodeOutlineColor(id int, c color.RGBA) error {
	return s.updateNode(id, func(n *Node) error { n.SetOutlineColor(c); return nil })
}

// ── Edges ──

func (s *Scene) AddEdge(id, from, to int, typ EdgeType) error {
	return s.Update(func(tx *Tx) error { return tx.AddEdge(id, from, to, typ) })
}

// Edge returns a copy of edge id.
func (s *Scene) Edge(id int) (Edge, error) {
	var e Edge
	err := s.Update(func(tx *Tx) error {
		var err error
		e, err = tx.Edge(id)
		return err
	})
	return e, err
}

func (s *Scene) RemoveEdge(id int) error {
	return s.Update(func(tx *Tx) error { return tx.RemoveEdge(id) })
}

func (s *Scene) SetEdgeEndpoints(id, from, to int) error {
	return s.Update(func(tx *Tx) error { return tx.SetEdgeEndpoints(id, from, to) })
}

func (s *Scene) updateEdge(id int, fn func(e *Edge) error) error {
	return s.Update(func(tx *Tx) error { return tx.UpdateEdge(id, fn) })
}

func (s *Scene) SetEdgeLabel(id int, label string) error {
	return s.updateEdge(id, func(e *Edge) error { e.SetLabel(label); return nil })
}

func (s *Scene) SetEdgeColor(id int, c color.RGBA) error {
	return s.updateEdge(id, func(e *Edge) error { e.SetColor(c); return nil })
}

func (s *Scene) SetEdgeDashed(id int, dashed bool) error {
	return s.updateEdge(id, func(e *Edge) error { e.SetDashed(dashed); return nil })
}

func (s *Scene) SetEdgeThickness(id int, t float64) error {
	return s.updateEdge(id, func(e *Edge) error { return e.SetThickness(t) })
}

func (s *Scene) SetEdgeWeight(id int, w float64) error {
	return s.updateEdge(id, func(e *Edge) error { e.SetWeight(w); return nil })
}

func (s *Scene) ClearEdgeWeight(id int) error {
	return s.updateEdge(id, func(e *Edge) error { e.ClearWeight(); return nil })
}

func (s *Scene) SetEdgeFlow(id int, f float64) error {
	return s.updateEdge(id, func(e *Edge) error { e.SetFlow(f); return nil })
}

func (s *Scene) ClearEdgeFlow(id int) error {
	return s.updateEdge(id, func(e *Edge) error { e.ClearFlow(); return nil })
}

// ── Background ──

// SetBackground loads an image drawn behind the graph, scaled to cover
// the visible area.
func (s *Scene) SetBackground(path string) error {
	return s.Update(func(tx *Tx) error { return tx.SetBackground(path) })
}

func (s *Scene) ClearBackground() error {
	return s.Update(func(tx *Tx) error { tx.ClearBackground(); return nil })
}

// ── Toggles ──

// set runs fn under the lock once the scene is running.
func (s *Scene) set(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireRunning(); err != nil {
		return err
	}
	fn()
	return nil
}

func (s *Scene) SetNodesVisible(on bool) error {
	return s.set(func() { s.show.Nodes = on })
}

func (s *Scene) SetNodeLabelsVisible(on bool) error {
	return s.set(func() { s.show.NodeLabels = on })
}

func (s *Scene) SetEdgesVisible(on bool) error {
	return s.set(func() { s.show.Edges = on })
}

func (s *Scene) SetEdgeLabelsVisible(on bool) error {
	return s.set(func() { s.show.EdgeLabels = on })
}

// Visibility returns the current toggles.
func (s *Scene) Visibility() Visibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.show
}

// SetBatching switches between one draw call for all edges and one per
// edge. Switching it on builds the buffer.
func (s *Scene) SetBatching(on bool) error {
	return s.set(func() {
		s.batching = on
		if on {
			s.rebuildBatch()
		} else {
			s.batch.Reset()
		}
	})
}

// BatchVertices returns a copy of the batch buffer; empty when batching
// is off.
func (s *Scene) BatchVertices() []geom.Vertex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]geom.Vertex(nil), s.batch.Vertices()...)
}

func (s *Scene) SetDebug(on bool) error {
	return s.set(func() { s.debug = on })
}

// ── Defaults ──

// SetNodeDefaults changes the attributes of nodes added afterwards. A
// default icon is loaded now so AddNode cannot fail on it later.
func (s *Scene) SetNodeDefaults(d NodeDefaults) error {
	if err := d.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireRunning(); err != nil {
		return err
	}
	if d.Icon != "" {
		if _, err := s.loadImage(d.Icon); err != nil {
			return errors.Wrap(errors.ErrCodeResourceLoad, err, "load default icon")
		}
	}
	s.nodeDefs = d
	return nil
}

func (s *Scene) SetEdgeDefaults(d EdgeDefaults) error {
	if err := d.Validate(); err != nil {
		return err
	}
	return s.set(func() { s.edgeDefs = d })
}

func (s *Scene) ResetNodeDefaults() error {
	return s.set(func() { s.nodeDefs = BuiltinNodeDefaults() })
}

func (s *Scene) ResetEdgeDefaults() error {
	return s.set(func() { s.edgeDefs = BuiltinEdgeDefaults() })
}

// ── Camera ──

// Camera returns the current pan/zoom state.
func (s *Scene) Camera() viewport.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.camera
}

// SetCamera moves the camera; the canvas size is kept.
func (s *Scene) SetCamera(center geom.Vec, scale float64) error {
	if !(scale > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "camera scale must be > 0, got %v", scale)
	}
	return s.set(func() {
		s.camera.Center = center
		s.camera.Scale = scale
	})
}

// Stats summarizes the scene. It is valid in every state.
func (s *Scene) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		State:    s.state,
		Nodes:    s.graph.NodeCount(),
		Edges:    s.graph.EdgeCount(),
		Frames:   s.frames,
		FPS:      s.fps.FPS(),
		Batching: s.batching,
		Debug:    s.debug,
	}
}
