package capture

import (
	"bytes"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"animebooth/internal/apperr"
)

type fakeTrack struct {
	mu      sync.Mutex
	stopped bool
	enabled bool
}

func (t *fakeTrack) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	return nil
}

func (t *fakeTrack) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

func (t *fakeTrack) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

func (t *fakeTrack) isEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

type fakeStream struct {
	mu      sync.Mutex
	w, h    int
	pending int // Bounds reports zero this many times, simulating negotiation
	tracks  []*fakeTrack
}

func (s *fakeStream) Tracks() []Track {
	out := make([]Track, len(s.tracks))
	for i, t := range s.tracks {
		out[i] = t
	}
	return out
}

func (s *fakeStream) Bounds() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending > 0 {
		s.pending--
		return 0, 0
	}
	return s.w, s.h
}

func (s *fakeStream) Frame() (image.Image, error) {
	img := image.NewRGBA(image.Rect(0, 0, s.w, s.h))
	for x := 0; x < s.w; x += 2 {
		img.Set(x, 0, color.RGBA{200, 120, 40, 255})
	}
	return img, nil
}

type fakeDevice struct {
	mu       sync.Mutex
	cameras  int
	openErr  map[Facing]error
	streams  []*fakeStream
	nextDims [2]int
	pending  int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{cameras: 2, openErr: map[Facing]error{}, nextDims: [2]int{1280, 720}}
}

func (d *fakeDevice) Open(c Constraints) (Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.openErr[c.Facing]; err != nil {
		return nil, err
	}
	s := &fakeStream{
		w: d.nextDims[0], h: d.nextDims[1],
		pending: d.pending,
		tracks:  []*fakeTrack{{enabled: true}, {enabled: true}},
	}
	d.streams = append(d.streams, s)
	return s, nil
}

func (d *fakeDevice) CameraCount() (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cameras, nil
}

func (d *fakeDevice) openCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.streams)
}

func quiet() Option {
	return WithNotifier(func(string) {})
}

func TestStartGoesLive(t *testing.T) {
	dev := newFakeDevice()
	c := NewController(dev, quiet())

	if err := c.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if c.State() != StateLive {
		t.Errorf("state = %s, want live", c.State())
	}
	if c.Facing() != FacingEnvironment {
		t.Errorf("facing = %s, want environment", c.Facing())
	}
	if !c.CanSwitch() {
		t.Error("two cameras should expose the switch affordance")
	}
}

func TestSingleCameraHidesSwitch(t *testing.T) {
	dev := newFakeDevice()
	dev.cameras = 1
	c := NewController(dev, quiet())
	if err := c.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if c.CanSwitch() {
		t.Error("one camera should not expose the switch affordance")
	}
}

func TestStartWhileLiveTearsDownPrior(t *testing.T) {
	dev := newFakeDevice()
	c := NewController(dev, quiet())

	if err := c.Start(FacingEnvironment); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := c.Start(FacingUser); err != nil {
		t.Fatalf("second Start: %v", err)
	}

	if got := dev.openCount(); got != 2 {
		t.Fatalf("opened %d streams, want 2", got)
	}
	for _, tr := range dev.streams[0].tracks {
		if !tr.isStopped() {
			t.Error("prior session's tracks should be released")
		}
	}
	for _, tr := range dev.streams[1].tracks {
		if tr.isStopped() {
			t.Error("new session's tracks should still be live")
		}
	}
	if c.Facing() != FacingUser {
		t.Errorf("facing = %s, want user", c.Facing())
	}
	if c.State() != StateLive {
		t.Errorf("state = %s, want live", c.State())
	}
}

func TestToggleFacingFlips(t *testing.T) {
	dev := newFakeDevice()
	c := NewController(dev, quiet())
	if err := c.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := c.ToggleFacing(); err != nil {
		t.Fatalf("ToggleFacing: %v", err)
	}
	if c.Facing() != FacingUser {
		t.Errorf("facing = %s, want user", c.Facing())
	}
}

func TestOverconstrainedRetriesOppositeFacingOnce(t *testing.T) {
	dev := newFakeDevice()
	dev.openErr[FacingEnvironment] = ErrOverconstrained
	c := NewController(dev, quiet())

	if err := c.Start(FacingEnvironment); err != nil {
		t.Fatalf("Start should succeed on the flipped facing: %v", err)
	}
	if c.Facing() != FacingUser {
		t.Errorf("facing = %s, want user after fallback", c.Facing())
	}
	if c.State() != StateLive {
		t.Errorf("state = %s, want live", c.State())
	}
}

func TestOverconstrainedBothModesFails(t *testing.T) {
	dev := newFakeDevice()
	dev.openErr[FacingEnvironment] = ErrOverconstrained
	dev.openErr[FacingUser] = ErrOverconstrained

	var alert string
	c := NewController(dev, WithNotifier(func(msg string) { alert = msg }))

	err := c.Start(FacingEnvironment)
	if err == nil {
		t.Fatal("Start should fail when both facings are unsatisfiable")
	}
	if !apperr.Is(err, apperr.CodeCameraOverconstrained) {
		t.Errorf("error code = %s, want %s", apperr.GetCode(err), apperr.CodeCameraOverconstrained)
	}
	if c.State() != StateError {
		t.Errorf("state = %s, want error", c.State())
	}
	if alert == "" {
		t.Error("user should be notified on failure")
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		devErr error
		code   apperr.Code
	}{
		{ErrPermissionDenied, apperr.CodeCameraDenied},
		{ErrDeviceNotFound, apperr.CodeCameraNotFound},
		{ErrDeviceBusy, apperr.CodeCameraBusy},
	}
	for _, tc := range cases {
		dev := newFakeDevice()
		dev.openErr[FacingEnvironment] = tc.devErr
		dev.openErr[FacingUser] = tc.devErr
		c := NewController(dev, quiet())
		err := c.Start(FacingEnvironment)
		if !apperr.Is(err, tc.code) {
			t.Errorf("%v: code = %s, want %s", tc.devErr, apperr.GetCode(err), tc.code)
		}
	}
}

func TestCaptureWhileIdleIsNoop(t *testing.T) {
	c := NewController(newFakeDevice(), quiet())
	data, err := c.Capture()
	if data != nil || err != nil {
		t.Errorf("Capture while idle = (%v, %v), want (nil, nil)", data, err)
	}
}

func TestCaptureEncodesAndTearsDown(t *testing.T) {
	dev := newFakeDevice()
	c := NewController(dev, quiet())
	if err := c.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}

	data, err := c.Capture()
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xFF, 0xD8}) {
		t.Error("captured frame should be JPEG encoded")
	}
	if c.State() != StateIdle {
		t.Errorf("state after capture = %s, want idle", c.State())
	}
	for _, tr := range dev.streams[0].tracks {
		if !tr.isStopped() {
			t.Error("capture should release the session's tracks")
		}
	}
}

func TestCaptureWaitsForDimensions(t *testing.T) {
	dev := newFakeDevice()
	dev.pending = 3
	c := NewController(dev, quiet(), WithFrameRetry(time.Millisecond, 10))
	if err := c.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := c.Capture(); err != nil {
		t.Fatalf("Capture should retry through the negotiation race: %v", err)
	}
}

func TestCaptureGivesUpAfterRetries(t *testing.T) {
	dev := newFakeDevice()
	dev.pending = 100
	c := NewController(dev, quiet(), WithFrameRetry(time.Millisecond, 3))
	if err := c.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := c.Capture(); err == nil {
		t.Fatal("Capture should fail once retries are exhausted")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	c := NewController(newFakeDevice(), quiet())
	c.Stop()
	c.Stop()
	if c.State() != StateIdle {
		t.Errorf("state = %s, want idle", c.State())
	}
}

func TestVisibilityTogglesTracks(t *testing.T) {
	dev := newFakeDevice()
	c := NewController(dev, quiet())
	if err := c.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}

	c.OnVisibilityChanged(false)
	for _, tr := range dev.streams[0].tracks {
		if tr.isEnabled() {
			t.Error("tracks should be disabled while hidden")
		}
		if tr.isStopped() {
			t.Error("hiding must not release the device")
		}
	}

	c.OnVisibilityChanged(true)
	for _, tr := range dev.streams[0].tracks {
		if !tr.isEnabled() {
			t.Error("tracks should be re-enabled when visible")
		}
	}
	if c.State() != StateLive {
		t.Errorf("state = %s, want live", c.State())
	}
}

func TestMemoryPressureForceStops(t *testing.T) {
	dev := newFakeDevice()
	var alert string
	c := NewController(dev, WithNotifier(func(msg string) { alert = msg }))
	if err := c.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}

	c.OnMemoryPressure(0.5)
	if c.State() != StateLive {
		t.Error("below the high-water mark the session should stay live")
	}

	c.OnMemoryPressure(0.85)
	if c.State() != StateIdle {
		t.Errorf("state = %s, want idle after memory pressure", c.State())
	}
	if alert == "" {
		t.Error("user should be notified when memory pressure stops the camera")
	}
}

func TestOrientationMismatchRestartsSameFacing(t *testing.T) {
	dev := newFakeDevice()
	c := NewController(dev, quiet(), WithOrientationSettle(time.Millisecond))
	if err := c.Start(FacingUser); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Stream is 1280x720 (landscape); a portrait viewport mismatches.
	c.OnOrientationChanged(false)

	deadline := time.Now().Add(time.Second)
	for dev.openCount() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if got := dev.openCount(); got != 2 {
		t.Fatalf("opened %d streams, want restart to open a second", got)
	}
	if c.Facing() != FacingUser {
		t.Errorf("restart should keep facing user, got %s", c.Facing())
	}
	if c.State() != StateLive {
		t.Errorf("state = %s, want live", c.State())
	}
}

func TestOrientationMatchDoesNotRestart(t *testing.T) {
	dev := newFakeDevice()
	c := NewController(dev, quiet(), WithOrientationSettle(time.Millisecond))
	if err := c.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}

	c.OnOrientationChanged(true) // landscape stream, landscape viewport
	time.Sleep(20 * time.Millisecond)
	if got := dev.openCount(); got != 1 {
		t.Errorf("opened %d streams, want 1 (no restart)", got)
	}
}

func TestSignalSourceFanout(t *testing.T) {
	dev := newFakeDevice()
	c := NewController(dev, quiet())
	if err := c.Start(""); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var src SignalSource
	src.Subscribe(c)
	src.MemoryPressure(0.95)
	if c.State() != StateIdle {
		t.Error("subscribed controller should receive broadcast signals")
	}
}
