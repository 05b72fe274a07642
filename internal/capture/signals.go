package capture

import "sync"

// EnvironmentSignals receives the asynchronous environment events a camera
// session reacts to. Handlers must be reentrant-safe against concurrent
// user-triggered transitions; Controller satisfies that by serializing all
// transitions behind its mutex.
type EnvironmentSignals interface {
	// OnVisibilityChanged fires when the host view is hidden or shown.
	OnVisibilityChanged(visible bool)

	// OnMemoryPressure fires with the fraction of the memory budget in use.
	OnMemoryPressure(used float64)

	// OnOrientationChanged fires when the viewport orientation flips.
	OnOrientationChanged(landscape bool)
}

var _ EnvironmentSignals = (*Controller)(nil)

// SignalSource fans environment events out to subscribers. Consumers register
// once at startup; events may arrive from any goroutine afterwards.
type SignalSource struct {
	mu   sync.RWMutex
	subs []EnvironmentSignals
}

// Subscribe registers h to receive subsequent events.
func (s *SignalSource) Subscribe(h EnvironmentSignals) {
	if h == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, h)
}

// VisibilityChanged broadcasts a visibility event.
func (s *SignalSource) VisibilityChanged(visible bool) {
	for _, h := range s.handlers() {
		h.OnVisibilityChanged(visible)
	}
}

// MemoryPressure broadcasts a memory usage sample.
func (s *SignalSource) MemoryPressure(used float64) {
	for _, h := range s.handlers() {
		h.OnMemoryPressure(used)
	}
}

// OrientationChanged broadcasts an orientation flip.
func (s *SignalSource) OrientationChanged(landscape bool) {
	for _, h := range s.handlers() {
		h.OnOrientationChanged(landscape)
	}
}

func (s *SignalSource) handlers() []EnvironmentSignals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]EnvironmentSignals, len(s.subs))
	copy(out, s.subs)
	return out
}
