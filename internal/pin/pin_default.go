//go:build !linux
// +build !linux

package pin

import "fmt"

// Request is only implemented on Linux, where the GPIO character device is
// available.
func Request(chip string, offset int) (Line, error) {
	return nil, fmt.Errorf("%w: GPIO control is not supported on this platform", ErrUnavailable)
}
