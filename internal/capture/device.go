package capture

import (
	"errors"
	"image"

	"animebooth/internal/apperr"
)

// Facing selects which physical camera a session uses.
type Facing string

const (
	FacingUser        Facing = "user"
	FacingEnvironment Facing = "environment"
)

// Flip returns the opposite facing mode.
func (f Facing) Flip() Facing {
	if f == FacingUser {
		return FacingEnvironment
	}
	return FacingUser
}

// Constraints describe the stream a session requests. Ideal dimensions are a
// preference the device may negotiate down.
type Constraints struct {
	Facing      Facing
	IdealWidth  int
	IdealHeight int
}

// Errors a Device implementation returns from Open. They mirror the failure
// kinds camera hardware reports: permission, presence, contention, and
// unsatisfiable constraints.
var (
	ErrPermissionDenied = errors.New("camera permission denied")
	ErrDeviceNotFound   = errors.New("camera device not found")
	ErrDeviceBusy       = errors.New("camera device busy")
	ErrOverconstrained  = errors.New("camera constraints not satisfiable")
)

// Track is one live media track of a stream. Disabling a track pauses it
// without releasing the device; Stop releases it for good.
type Track interface {
	Stop() error
	SetEnabled(enabled bool)
}

// Stream is an acquired video stream. Bounds reports (0, 0) until the stream
// has negotiated and decoded its first frame.
type Stream interface {
	Tracks() []Track
	Bounds() (width, height int)
	Frame() (image.Image, error)
}

// Device abstracts the camera hardware so the session controller can be
// exercised without one.
type Device interface {
	Open(c Constraints) (Stream, error)
	CameraCount() (int, error)
}

// classify maps a device error to its camera error subkind with the message
// shown to the user.
func classify(err error) *apperr.Error {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return apperr.Wrap(apperr.CodeCameraDenied, err,
			"Camera access denied. Please enable camera permissions in your browser settings.")
	case errors.Is(err, ErrDeviceNotFound):
		return apperr.Wrap(apperr.CodeCameraNotFound, err,
			"No camera found on your device.")
	case errors.Is(err, ErrDeviceBusy):
		return apperr.Wrap(apperr.CodeCameraBusy, err,
			"Camera is in use by another application or not available.")
	case errors.Is(err, ErrOverconstrained):
		return apperr.Wrap(apperr.CodeCameraOverconstrained, err,
			"The camera does not support the requested mode.")
	default:
		return apperr.Wrap(apperr.CodeInternal, err,
			"Could not access the camera. Please try again or use the upload option.")
	}
}
