// internal/acquire/errors.go
package acquire

import "errors"

var (
	// ErrAddressResolution is returned when a diagnostic object the
	// protocol depends on is missing from the object table.
	ErrAddressResolution = errors.New("acquire: required diagnostic object missing")

	// ErrCommandTimeout is returned when the diagnostic command register
	// does not clear within the poll budget.
	ErrCommandTimeout = errors.New("acquire: timeout waiting for command to be actioned")

	// ErrProtocolMismatch is returned when the chip reports a different
	// mode or page than the one requested. The hardware and software
	// page cursors have desynchronized; there is no safe local recovery.
	ErrProtocolMismatch = errors.New("acquire: bad page/mode in diagnostic data read")

	// ErrFrameOverrun is returned when a page carries more samples than
	// the remaining frame space.
	ErrFrameOverrun = errors.New("acquire: x pointer overrun")
)
