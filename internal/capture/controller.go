// Package capture manages the lifecycle of a live camera session: acquisition,
// device switching, frame capture, teardown, and environment-driven
// pause/resume.
//
// The controller is a small state machine (Idle → Starting → Live → Idle, with
// Error reachable from Starting). All transitions are serialized behind one
// mutex, so user-triggered actions and asynchronous environment signals may
// interleave freely: overlapping start requests degenerate to last call wins,
// and stray capture triggers while idle are no-ops.
package capture

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"animebooth/internal/apperr"
)

// State is the lifecycle state of a camera session.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateLive
	StateError
)

// String returns a lowercase name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateLive:
		return "live"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

const (
	defaultIdealWidth  = 1280
	defaultIdealHeight = 720

	// memoryHighWater is the fraction of the memory budget above which a live
	// session is force-stopped.
	memoryHighWater = 0.8

	defaultFrameRetryDelay   = 100 * time.Millisecond
	defaultFrameRetries      = 10
	defaultOrientationSettle = 300 * time.Millisecond
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for session events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithNotifier sets the sink for user-facing alert messages.
func WithNotifier(fn func(msg string)) Option {
	return func(c *Controller) { c.notify = fn }
}

// WithFrameRetry overrides the polling guard used while the stream negotiates
// its first frame.
func WithFrameRetry(delay time.Duration, retries int) Option {
	return func(c *Controller) {
		c.frameRetryDelay = delay
		c.frameRetries = retries
	}
}

// WithOrientationSettle overrides the delay before an orientation-driven restart.
func WithOrientationSettle(d time.Duration) Option {
	return func(c *Controller) { c.settle = d }
}

// Controller owns at most one live camera stream and every transition on it.
type Controller struct {
	dev    Device
	logger *log.Logger
	notify func(msg string)

	frameRetryDelay time.Duration
	frameRetries    int
	settle          time.Duration

	mu           sync.Mutex
	state        State
	facing       Facing
	stream       Stream
	canSwitch    bool
	restartTimer *time.Timer
}

// NewController creates an idle controller for dev. Sessions start with the
// environment-facing (back) camera.
func NewController(dev Device, opts ...Option) *Controller {
	c := &Controller{
		dev:             dev,
		logger:          log.Default(),
		notify:          func(string) {},
		frameRetryDelay: defaultFrameRetryDelay,
		frameRetries:    defaultFrameRetries,
		settle:          defaultOrientationSettle,
		state:           StateIdle,
		facing:          FacingEnvironment,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Facing returns the current facing mode.
func (c *Controller) Facing() Facing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.facing
}

// CanSwitch reports whether more than one physical camera was probed, which is
// what gates the switch affordance in the UI.
func (c *Controller) CanSwitch() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSwitch
}

// Start acquires a stream with the requested facing mode, or the current one
// when requested is empty. An already-live session is torn down first, so
// restarts are idempotent. On unsatisfiable constraints the facing mode is
// flipped and retried exactly once.
func (c *Controller) Start(requested Facing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked(requested, false)
}

func (c *Controller) startLocked(requested Facing, retried bool) error {
	if requested != "" {
		c.facing = requested
	}
	if c.stream != nil {
		c.stopLocked()
	}
	c.state = StateStarting
	c.logger.Debug("starting camera", "facing", c.facing)

	stream, err := c.dev.Open(Constraints{
		Facing:      c.facing,
		IdealWidth:  defaultIdealWidth,
		IdealHeight: defaultIdealHeight,
	})
	if err != nil {
		if errors.Is(err, ErrOverconstrained) && !retried {
			c.logger.Warn("constraints not satisfiable, retrying with flipped facing", "facing", c.facing)
			return c.startLocked(c.facing.Flip(), true)
		}
		cerr := classify(err)
		c.state = StateError
		c.logger.Error("camera start failed", "err", err)
		c.notify(cerr.Message)
		return cerr
	}

	c.stream = stream
	c.state = StateLive
	if n, cntErr := c.dev.CameraCount(); cntErr == nil {
		c.canSwitch = n > 1
	} else {
		c.logger.Debug("could not enumerate cameras", "err", cntErr)
		c.canSwitch = false
	}
	c.logger.Info("camera live", "facing", c.facing, "switchable", c.canSwitch)
	return nil
}

// ToggleFacing flips user ↔ environment and restarts the session. It is a
// distinct trigger from Capture and never recurses into it.
func (c *Controller) ToggleFacing() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startLocked(c.facing.Flip(), false)
}

// Capture reads the current video frame at native resolution, encodes it, and
// tears the session down. It is valid only when Live; stray triggers while
// idle return (nil, nil). While the stream is still negotiating dimensions the
// read is retried after a short fixed delay rather than failing immediately.
func (c *Controller) Capture() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateLive || c.stream == nil {
		return nil, nil
	}

	for attempt := 0; ; attempt++ {
		w, h := c.stream.Bounds()
		if w > 0 && h > 0 {
			break
		}
		if attempt >= c.frameRetries {
			return nil, apperr.New(apperr.CodeInternal, "video dimensions never became available")
		}
		c.logger.Debug("video dimensions not available, retrying", "attempt", attempt)
		c.mu.Unlock()
		time.Sleep(c.frameRetryDelay)
		c.mu.Lock()
		if c.state != StateLive || c.stream == nil {
			// Torn down while waiting; treat like a stray trigger.
			return nil, nil
		}
	}

	frame, err := c.stream.Frame()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "could not read video frame")
	}
	data, err := encodeFrame(frame)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "could not encode captured frame")
	}

	c.stopLocked()
	return data, nil
}

// Stop releases the session. Safe to call when already idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Controller) stopLocked() {
	if c.restartTimer != nil {
		c.restartTimer.Stop()
		c.restartTimer = nil
	}
	if c.stream != nil {
		for _, t := range c.stream.Tracks() {
			if err := t.Stop(); err != nil {
				// Track release is best effort.
				c.logger.Warn("error stopping track", "err", err)
			}
		}
		c.stream = nil
	}
	c.state = StateIdle
	c.canSwitch = false
}

// OnVisibilityChanged pauses a live session's tracks while the host view is
// hidden and re-enables them when it becomes visible again. The device stays
// acquired either way.
func (c *Controller) OnVisibilityChanged(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateLive || c.stream == nil {
		return
	}
	for _, t := range c.stream.Tracks() {
		t.SetEnabled(visible)
	}
	c.logger.Debug("visibility changed", "visible", visible)
}

// OnMemoryPressure force-stops a live session once usage crosses the
// high-water mark and tells the user why the preview went away.
func (c *Controller) OnMemoryPressure(used float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if used < memoryHighWater || c.state != StateLive {
		return
	}
	c.logger.Warn("memory pressure, stopping camera", "used", used)
	c.stopLocked()
	c.notify("Camera stopped to free up memory. Tap Take Photo to start again.")
}

// OnOrientationChanged restarts a live session with the same facing mode after
// a short settle delay when the stream's aspect orientation no longer matches
// the viewport's.
func (c *Controller) OnOrientationChanged(landscape bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateLive || c.stream == nil {
		return
	}
	w, h := c.stream.Bounds()
	if w == 0 || h == 0 {
		return
	}
	if (w >= h) == landscape {
		return
	}
	facing := c.facing
	if c.restartTimer != nil {
		c.restartTimer.Stop()
	}
	c.restartTimer = time.AfterFunc(c.settle, func() {
		if err := c.Start(facing); err != nil {
			c.logger.Error("orientation restart failed", "err", err)
		}
	})
}
