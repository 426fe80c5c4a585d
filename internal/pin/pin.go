// Package pin models the open-drain control signals wired between the host
// and the target board. A line is either asserted (driven low) or released
// (floating, pulled high by the external pull-up so the board owns it again).
package pin

import "errors"

// ErrUnavailable is returned when a GPIO line cannot be claimed: already
// requested by another process, missing on the chip, or not accessible with
// the current permissions.
var ErrUnavailable = errors.New("GPIO line unavailable")

// Line is a single open-drain control signal.
type Line interface {
	// AssertLow drives the line low.
	AssertLow() error

	// Release stops driving the line, leaving it to the external pull-up.
	Release() error

	// Close releases the line if still asserted and frees the underlying
	// GPIO request.
	Close() error
}
