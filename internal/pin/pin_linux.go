//go:build linux
// +build linux

package pin

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

type cdevLine struct {
	line *gpiocdev.Line
}

// Request claims the given line on a GPIO character device (e.g. "gpiochip0")
// and configures it as an open-drain output, initially released. The claim is
// exclusive: a second request for the same offset fails until Close.
func Request(chip string, offset int) (Line, error) {
	c, err := gpiocdev.NewChip(chip)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrUnavailable, chip, err)
	}
	defer c.Close()

	// Open-drain with pull-up: writing 1 floats the wire, writing 0 sinks it.
	line, err := c.RequestLine(offset,
		gpiocdev.AsOutput(1),
		gpiocdev.AsOpenDrain,
		gpiocdev.WithPullUp,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: requesting %s line %d: %v", ErrUnavailable, chip, offset, err)
	}

	return &cdevLine{line: line}, nil
}

func (l *cdevLine) AssertLow() error {
	return l.line.SetValue(0)
}

func (l *cdevLine) Release() error {
	return l.line.SetValue(1)
}

func (l *cdevLine) Close() error {
	if err := l.line.SetValue(1); err != nil {
		_ = l.line.Close()
		return err
	}
	return l.line.Close()
}
