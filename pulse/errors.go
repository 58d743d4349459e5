package pulse

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSurfaceLost is returned when the next surface texture could not be
// acquired because the surface is lost, outdated or timed out. Reconfiguring
// the surface and trying again with the next frame recovers from it.
var ErrSurfaceLost = errors.New("surface lost or outdated")

// ErrOutOfMemory is returned when the surface texture could not be acquired
// because the device ran out of memory. There is no way to recover from it.
var ErrOutOfMemory = errors.New("out of memory")

// ErrIncompatibleSurface is returned if the adapter can not present to the surface.
var ErrIncompatibleSurface = errors.New("surface not supported by adapter")

// IsRecoverable returns true if the error can be resolved by reconfiguring the surface.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrSurfaceLost)
}

// classifyAcquireError maps the error of Surface.GetCurrentTexture to ErrSurfaceLost
// if the surface was lost, is outdated or timed out, and to ErrOutOfMemory if the
// device ran out of memory. All other errors (device loss, validation errors)
// are returned unchanged and are fatal. The original error is kept in the chain.
func classifyAcquireError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrOutOfMemory) || errors.Is(err, ErrSurfaceLost) {
		return err
	}

	// wgpu spells status values both as "OutOfMemory" and "out of memory"
	message := strings.ToLower(strings.Join(strings.Fields(err.Error()), ""))

	switch {
	case strings.Contains(message, "outofmemory"):
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)

	case strings.Contains(message, "device"):
		// a lost device can not be recovered by reconfiguring the surface
		return err

	case strings.Contains(message, "outdated"),
		strings.Contains(message, "timeout"),
		strings.Contains(message, "timedout"),
		strings.Contains(message, "surfacelost"),
		strings.Contains(message, "surfaceislost"),
		strings.HasSuffix(message, "lost"):
		return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	}

	return err
}
