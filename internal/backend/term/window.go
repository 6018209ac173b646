package term

import (
	"image/color"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/pkg/cellbuf"
	"github.com/wesen/graphview/pkg/errors"
)

// eventQueue carries translated events from the Bubbletea goroutine to
// the render loop.
type eventQueue struct {
	mu     sync.Mutex
	events []backend.Event
}

func (q *eventQueue) push(ev backend.Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

func (q *eventQueue) pop() (backend.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil, false
	}
	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	return ev, true
}

// frameMsg carries a rendered frame into the Bubbletea model.
type frameMsg string

// Window is the terminal window. Drawing happens on the render loop's
// goroutine; Display hands the finished frame to Bubbletea.
type Window struct {
	title string
	queue *eventQueue

	prog      *tea.Program
	runDone   chan struct{}
	runErr    error
	closeOnce sync.Once

	// render goroutine only
	buf   *cellbuf.Buffer
	view  backend.View
	bg    color.RGBA
	tints map[backend.Image]color.RGBA
}

var _ backend.Window = (*Window)(nil)

func newWindow(cfg backend.WindowConfig) *Window {
	cols := max(1, cfg.Width/CellWidth)
	rows := max(1, cfg.Height/CellHeight)
	w := &Window{
		title:   cfg.Title,
		queue:   &eventQueue{},
		runDone: make(chan struct{}),
		buf:     cellbuf.New(cols, rows, cellbuf.Style{}),
		tints:   make(map[backend.Image]color.RGBA),
	}
	w.view = backend.ScreenView(w.Size())
	return w
}

func (w *Window) start(opts []tea.ProgramOption) {
	w.prog = tea.NewProgram(newModel(w.title, w.queue), opts...)
	go func() {
		_, err := w.prog.Run()
		w.runErr = err
		w.queue.push(backend.ClosedEvent{})
		close(w.runDone)
	}()
}

// Size returns the canvas size in virtual pixels.
func (w *Window) Size() (int, int) {
	return w.buf.W * CellWidth, w.buf.H * CellHeight
}

// PollEvent returns the next translated terminal event.
func (w *Window) PollEvent() (backend.Event, bool) {
	ev, ok := w.queue.pop()
	if !ok {
		return nil, false
	}
	if r, isResize := ev.(backend.ResizeEvent); isResize {
		w.buf.Resize(max(1, r.Width/CellWidth), max(1, r.Height/CellHeight), cellbuf.Style{BG: w.bg})
	}
	return ev, true
}

// Display sends the frame to the terminal.
func (w *Window) Display() error {
	if w.Closed() {
		return errors.New(errors.ErrCodeInvalidLifecycle, "display on closed window %q", w.title)
	}
	w.prog.Send(frameMsg(w.buf.Render()))
	return nil
}

// Close stops the program and restores the terminal. It waits for the
// program to exit and is safe to call more than once.
func (w *Window) Close() error {
	w.closeOnce.Do(func() {
		w.prog.Quit()
		<-w.runDone
	})
	return w.runErr
}

// Closed reports whether the program has exited.
func (w *Window) Closed() bool {
	select {
	case <-w.runDone:
		return true
	default:
		return false
	}
}
