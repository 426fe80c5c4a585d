package sequencer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arduino/arduino-flash-cli/internal/pin"
	"github.com/arduino/arduino-flash-cli/internal/recipe"
)

// eventLog records line transitions and tool invocations in order.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(e string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func (l *eventLog) count(e string) int {
	n := 0
	for _, ev := range l.all() {
		if ev == e {
			n++
		}
	}
	return n
}

// fakeLine implements pin.Line, logging state transitions only.
type fakeLine struct {
	name       string
	log        *eventLog
	failAssert bool
	asserted   bool
	closed     bool
}

func (l *fakeLine) AssertLow() error {
	if l.failAssert {
		return fmt.Errorf("cannot drive %s", l.name)
	}
	if !l.asserted {
		l.log.add(l.name + " low")
		l.asserted = true
	}
	return nil
}

func (l *fakeLine) Release() error {
	if l.asserted {
		l.log.add(l.name + " open")
		l.asserted = false
	}
	return nil
}

func (l *fakeLine) Close() error {
	_ = l.Release()
	l.closed = true
	return nil
}

// fakeRunner implements runner.Runner.
type fakeRunner struct {
	log      *eventLog
	exitCode int
	err      error
	got      recipe.Recipe
	calls    int
}

func (r *fakeRunner) Run(ctx context.Context, rec recipe.Recipe, stdout, stderr io.Writer) (int, error) {
	r.log.add("run " + rec.String())
	r.got = rec
	r.calls++
	return r.exitCode, r.err
}

func newTestSequencer(log *eventLog) (*Sequencer, *fakeLine, *fakeLine) {
	boot := &fakeLine{name: "boot", log: log}
	reset := &fakeLine{name: "reset", log: log}
	s := New(boot, reset)
	s.sleep = func(context.Context, time.Duration) error { return nil }
	return s, boot, reset
}

func TestFlashSequence(t *testing.T) {
	log := &eventLog{}
	run := &fakeRunner{log: log}
	s, boot, reset := newTestSequencer(log)

	rec := recipe.Recipe{Command: "esptool.py", Args: []string{"--port", "/dev/ttyUSB0"}}
	code, err := s.Flash(context.Background(), run, rec, &bytes.Buffer{}, &bytes.Buffer{}, FlashOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	assert.Equal(t, []string{
		"boot low",
		"reset low",
		"reset open",
		"run esptool.py --port /dev/ttyUSB0",
		"boot open",
		"reset low",
		"reset open",
	}, log.all())

	// the tool got the arguments verbatim
	assert.Equal(t, rec, run.got)

	// no line is left asserted
	assert.False(t, boot.asserted)
	assert.False(t, reset.asserted)
}

func TestFlashPropagatesToolExitCode(t *testing.T) {
	log := &eventLog{}
	run := &fakeRunner{log: log, exitCode: 1}
	s, boot, reset := newTestSequencer(log)

	code, err := s.Flash(context.Background(), run, recipe.Recipe{Command: "esptool.py"}, &bytes.Buffer{}, &bytes.Buffer{}, FlashOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	// tool failed, lines are still released
	assert.False(t, boot.asserted)
	assert.False(t, reset.asserted)
}

func TestFlashToolCannotStart(t *testing.T) {
	log := &eventLog{}
	run := &fakeRunner{log: log, exitCode: -1, err: errors.New("executable not found")}
	s, boot, reset := newTestSequencer(log)

	_, err := s.Flash(context.Background(), run, recipe.Recipe{Command: "nope"}, &bytes.Buffer{}, &bytes.Buffer{}, FlashOptions{})
	require.Error(t, err)

	assert.False(t, boot.asserted)
	assert.False(t, reset.asserted)
}

func TestFlashBootLineFailure(t *testing.T) {
	log := &eventLog{}
	run := &fakeRunner{log: log}
	s, boot, reset := newTestSequencer(log)
	boot.failAssert = true

	_, err := s.Flash(context.Background(), run, recipe.Recipe{Command: "esptool.py"}, &bytes.Buffer{}, &bytes.Buffer{}, FlashOptions{})
	require.Error(t, err)

	// the tool is never invoked when the sequence cannot be established
	assert.Equal(t, 0, run.calls)
	assert.False(t, reset.asserted)
}

func TestFlashDelayedReboot(t *testing.T) {
	log := &eventLog{}
	run := &fakeRunner{log: log}
	s, boot, reset := newTestSequencer(log)

	code, err := s.Flash(context.Background(), run, recipe.Recipe{Command: "make", Args: []string{"flash", "monitor"}}, &bytes.Buffer{}, &bytes.Buffer{}, FlashOptions{RebootAfter: DefaultRebootDelay})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	// the reboot happened exactly once, from the delayed task
	assert.Equal(t, 1, log.count("boot open"))
	assert.False(t, boot.asserted)
	assert.False(t, reset.asserted)
}

func TestFlashNoReboot(t *testing.T) {
	log := &eventLog{}
	run := &fakeRunner{log: log}
	s, boot, reset := newTestSequencer(log)

	code, err := s.Flash(context.Background(), run, recipe.Recipe{Command: "esptool.py"}, &bytes.Buffer{}, &bytes.Buffer{}, FlashOptions{NoReboot: true})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	// the board stays in its bootloader: only the entry pulse happened
	assert.Equal(t, []string{
		"boot low",
		"reset low",
		"reset open",
		"run esptool.py",
		"boot open",
	}, log.all())
	assert.Equal(t, 1, log.count("reset low"))

	assert.False(t, boot.asserted)
	assert.False(t, reset.asserted)
}

func TestFlashInterrupted(t *testing.T) {
	log := &eventLog{}
	run := &fakeRunner{log: log}
	boot := &fakeLine{name: "boot", log: log}
	reset := &fakeLine{name: "reset", log: log}
	s := New(boot, reset)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Flash(ctx, run, recipe.Recipe{Command: "esptool.py"}, &bytes.Buffer{}, &bytes.Buffer{}, FlashOptions{})
	require.ErrorIs(t, err, context.Canceled)

	// best effort release still ran
	assert.False(t, boot.asserted)
	assert.False(t, reset.asserted)
	assert.Equal(t, 0, run.calls)
}

func TestEnterBootloaderAndReboot(t *testing.T) {
	log := &eventLog{}
	s, boot, _ := newTestSequencer(log)

	require.NoError(t, s.EnterBootloader(context.Background()))
	assert.True(t, boot.asserted)

	require.NoError(t, s.Reboot(context.Background()))
	assert.False(t, boot.asserted)

	assert.Equal(t, []string{
		"boot low",
		"reset low",
		"reset open",
		"boot open",
		"reset low",
		"reset open",
	}, log.all())
}

func TestClose(t *testing.T) {
	log := &eventLog{}
	s, boot, reset := newTestSequencer(log)

	require.NoError(t, s.EnterBootloader(context.Background()))
	require.NoError(t, s.Close())

	assert.True(t, boot.closed)
	assert.True(t, reset.closed)
	assert.False(t, boot.asserted)
	assert.False(t, reset.asserted)
}

func TestAcquireUnavailable(t *testing.T) {
	_, _, err := Acquire("gpiochip-does-not-exist", 4, 17)
	require.Error(t, err)
	assert.ErrorIs(t, err, pin.ErrUnavailable)
}
