package scene

import "time"

// DefaultFPSWindow is the span over which frames are counted.
const DefaultFPSWindow = time.Second

// FPSMonitor counts frames over a sliding window.
type FPSMonitor struct {
	window time.Duration
	now    func() time.Time
	stamps []time.Time
}

// NewFPSMonitor returns a monitor over window; now may be nil for
// time.Now.
func NewFPSMonitor(window time.Duration, now func() time.Time) *FPSMonitor {
	if window <= 0 {
		window = DefaultFPSWindow
	}
	if now == nil {
		now = time.Now
	}
	return &FPSMonitor{window: window, now: now}
}

// Count records one frame.
func (m *FPSMonitor) Count() {
	t := m.now()
	m.stamps = append(m.stamps, t)
	m.expire(t)
}

func (m *FPSMonitor) expire(t time.Time) {
	cut := 0
	for cut < len(m.stamps) && t.Sub(m.stamps[cut]) > m.window {
		cut++
	}
	m.stamps = m.stamps[cut:]
}

// FPS returns frames per second over the window.
func (m *FPSMonitor) FPS() float64 {
	m.expire(m.now())
	return float64(len(m.stamps)) / m.window.Seconds()
}
