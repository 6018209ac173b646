package scene

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFPSMonitorSlidingWindow(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	m := NewFPSMonitor(time.Second, clk.Now)

	for i := 0; i < 30; i++ {
		m.Count()
		clk.Advance(10 * time.Millisecond)
	}
	if got := m.FPS(); got != 30 {
		t.Errorf("FPS = %v, want 30", got)
	}

	clk.Advance(2 * time.Second)
	if got := m.FPS(); got != 0 {
		t.Errorf("FPS after idle = %v, want 0", got)
	}
}

func TestFPSMonitorDefaults(t *testing.T) {
	m := NewFPSMonitor(0, nil)
	if m.window != DefaultFPSWindow {
		t.Errorf("window = %v, want %v", m.window, DefaultFPSWindow)
	}
	m.Count()
	if m.FPS() != 1 {
		t.Errorf("FPS = %v, want 1", m.FPS())
	}
}
