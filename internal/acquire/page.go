// internal/acquire/page.go
package acquire

import (
	"fmt"

	"github.com/tamzrod/touchdiag/internal/mxt"
)

// maxPollAttempts bounds the readiness poll per page. Exceeding it means
// the chip never actioned the command; the session must abort.
const maxPollAttempts = 500

// fetchPage retrieves one page of diagnostic bytes into s.pageBuf.
//
// Page 0 selects the diagnostic mode; every later page sends a page-up
// command and relies on the chip's internal page counter. The chip
// signals completion by clearing the command register, then echoes the
// active mode and page in the first two bytes of the data object. The
// payload is read only after that echo checks out, so a desynchronized
// chip never lands bytes in the page buffer.
func (s *Session) fetchPage(pageIdx int) error {
	cmd := byte(s.mode)
	if pageIdx != 0 {
		cmd = mxt.CmdPageUp
	}
	if err := s.bus.Write(s.addrs.Command, []byte{cmd}); err != nil {
		return fmt.Errorf("write diagnostic command: %w", err)
	}

	cleared := false
	for attempt := 1; attempt <= maxPollAttempts; attempt++ {
		b, err := s.bus.Read(s.addrs.Command, 1)
		if err != nil {
			return fmt.Errorf("poll diagnostic command: %w", err)
		}
		if b[0] == 0 {
			cleared = true
			break
		}
		s.wait.Wait(attempt)
	}
	if !cleared {
		return ErrCommandTimeout
	}

	hdr, err := s.bus.Read(s.addrs.Data, 2)
	if err != nil {
		return fmt.Errorf("read page header: %w", err)
	}
	if hdr[0] != byte(s.mode) || hdr[1] != byte(pageIdx) {
		return fmt.Errorf("%w: got mode=0x%02x page=%d, want mode=0x%02x page=%d",
			ErrProtocolMismatch, hdr[0], hdr[1], byte(s.mode), pageIdx)
	}

	payload, err := s.bus.Read(s.addrs.Data+2, s.addrs.PageSize)
	if err != nil {
		return fmt.Errorf("read page payload: %w", err)
	}
	copy(s.pageBuf, payload)

	return nil
}
