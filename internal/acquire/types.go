// internal/acquire/types.go
package acquire

import (
	"fmt"
	"time"

	"github.com/tamzrod/touchdiag/internal/mxt"
)

// Mode selects which diagnostic data type the chip streams.
type Mode uint8

const (
	// ModeDeltas reads baseline-subtracted delta values.
	ModeDeltas = Mode(mxt.CmdDeltasMode)

	// ModeRefs reads raw reference values.
	ModeRefs = Mode(mxt.CmdRefsMode)
)

func (m Mode) String() string {
	switch m {
	case ModeDeltas:
		return "deltas"
	case ModeRefs:
		return "refs"
	default:
		return fmt.Sprintf("mode(0x%02x)", uint8(m))
	}
}

// Addresses is the resolved register layout of the diagnostic protocol,
// fixed for the whole session.
type Addresses struct {
	// Command is the T6 diagnostic command register.
	Command uint16

	// Data is the T37 object base; byte 0 echoes the mode, byte 1 the
	// page, payload follows.
	Data uint16

	// PageSize is the payload size per page (T37 size minus the 2-byte
	// header).
	PageSize int
}

// ResolveAddresses derives the diagnostic register layout from the
// information block.
func ResolveAddresses(info *mxt.Info) (Addresses, error) {
	t6, err := info.ObjectAddress(mxt.ObjectCommandProcessorT6, 0)
	if err != nil {
		return Addresses{}, fmt.Errorf("%w: %w", ErrAddressResolution, err)
	}

	t37, err := info.ObjectAddress(mxt.ObjectDebugDiagnosticT37, 0)
	if err != nil {
		return Addresses{}, fmt.Errorf("%w: %w", ErrAddressResolution, err)
	}

	size, err := info.ObjectSize(mxt.ObjectDebugDiagnosticT37)
	if err != nil {
		return Addresses{}, fmt.Errorf("%w: %w", ErrAddressResolution, err)
	}
	if size <= 2 {
		return Addresses{}, fmt.Errorf("%w: T37 size %d too small", ErrAddressResolution, size)
	}

	return Addresses{
		Command:  t6 + mxt.T6DiagnosticOffset,
		Data:     t37,
		PageSize: size - 2,
	}, nil
}

// Record is one completed frame handed to sinks. Values holds XSize*YSize
// samples indexed y + x*YSize; the slice is owned by the receiver.
type Record struct {
	At     time.Time
	Seq    int // 1-based frame number
	XSize  int
	YSize  int
	Values []int16
}

// FrameSink consumes completed frames. A sink error is fatal to the
// session; frames already delivered are not rolled back.
type FrameSink interface {
	WriteFrame(rec Record) error
}

// Waiter paces the readiness poll between attempts. The session never
// retries past the poll budget regardless of strategy.
type Waiter interface {
	Wait(attempt int)
}

// SpinWaiter polls back-to-back with no delay, matching the blocking
// register transport convention.
type SpinWaiter struct{}

func (SpinWaiter) Wait(int) {}

// SleepWaiter pauses a fixed interval between poll attempts for
// transports where back-to-back reads would saturate the bus.
type SleepWaiter struct {
	Interval time.Duration
}

func (w SleepWaiter) Wait(int) {
	time.Sleep(w.Interval)
}
