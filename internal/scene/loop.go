package scene

import (
	"time"

	"github.com/wesen/graphview/internal/backend"
	"github.com/wesen/graphview/internal/viewport"
	"github.com/wesen/graphview/pkg/graphmodel"
)

// run is the render loop: poll events, apply them and draw under the
// lock, then present outside it. It returns when a close is requested or
// the backend reports one.
func (s *Scene) run(win backend.Window) error {
	var interval time.Duration
	if s.opts.MaxFPS > 0 {
		interval = time.Second / time.Duration(s.opts.MaxFPS)
	}
	next := time.Now()

	for {
		select {
		case <-s.closeCh:
			return s.shutdown(win, "requested")
		default:
		}

		var events []backend.Event
		for {
			ev, ok := win.PollEvent()
			if !ok {
				break
			}
			events = append(events, ev)
		}

		s.mu.Lock()
		closing := false
		for _, ev := range events {
			switch s.controller.Apply(&s.camera, ev) {
			case viewport.EffectToggleDebug:
				s.debug = !s.debug
			case viewport.EffectClose:
				closing = true
			}
		}
		if closing {
			s.mu.Unlock()
			return s.shutdown(win, "window closed")
		}
		s.drawFrame(win)
		s.mu.Unlock()

		if err := win.Display(); err != nil {
			s.logger.Error("display failed", "err", err)
			s.shutdown(win, "display error")
			return err
		}

		if interval > 0 {
			next = next.Add(interval)
			wait := time.Until(next)
			if wait <= 0 {
				next = time.Now()
				continue
			}
			t := time.NewTimer(wait)
			select {
			case <-s.closeCh:
				t.Stop()
			case <-t.C:
			}
		}
	}
}

// shutdown marks the scene closed, drops the graph and derived state, and
// closes the window.
func (s *Scene) shutdown(win backend.Window, reason string) error {
	s.mu.Lock()
	s.state = Closed
	s.graph = graphmodel.New[*Node, *Edge]()
	s.batch.Reset()
	s.background = nil
	s.icons = make(map[string]backend.Image)
	s.window = nil
	s.mu.Unlock()

	err := win.Close()
	s.logger.Info("window closed", "reason", reason)
	return err
}
