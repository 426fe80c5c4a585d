package feedback

// ExitCode is the code an arduino-flash-cli process ends with.
type ExitCode int

const (
	// Success (0 is the default exit code)
	Success ExitCode = iota
	// ErrGeneric Generic error (1 is the reserved value)
	ErrGeneric
	// ErrBadArgument (2 Error in command line arguments)
	ErrBadArgument
)

// ErrPinUnavailable is returned when the GPIO line backing the boot or reset
// signal cannot be claimed (busy, missing, or insufficient permissions). It is
// kept away from the low exit codes commonly used by flashing tools so the two
// failure families stay distinguishable.
const ErrPinUnavailable ExitCode = 10
