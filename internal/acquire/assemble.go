// internal/acquire/assemble.go
package acquire

import "fmt"

// cursor tracks the fill position inside one stripe's y-band. It is
// reset at the start of every stripe and advanced sample by sample.
type cursor struct {
	yStart int // inclusive
	yEnd   int // inclusive
	x      int
	y      int
}

// startStripe positions the cursor at the top of the given stripe.
func (s *Session) startStripe(stripe int) cursor {
	w := s.geo.StripeWidth()
	start := w * stripe
	return cursor{
		yStart: start,
		yEnd:   start + w - 1,
		x:      0,
		y:      start,
	}
}

// insertPage folds one page's payload into the frame buffer.
//
// The payload is a run of little-endian int16 samples laid out
// column-major within the stripe's y-band: y advances per sample and
// wraps to the stripe top when it passes yEnd, stepping x. The overrun
// check runs before every store, so a page that carries more samples
// than the remaining frame space fails without touching memory past the
// buffer.
func (s *Session) insertPage(cur *cursor, page []byte) error {
	for i := 0; i+1 < len(page); i += 2 {
		if cur.x >= s.geo.XSize {
			return fmt.Errorf("%w: x=%d exceeds %d", ErrFrameOverrun, cur.x, s.geo.XSize)
		}

		value := int16(uint16(page[i]) | uint16(page[i+1])<<8)
		s.frame[cur.y+cur.x*s.geo.YSize] = value

		cur.y++
		if cur.y > cur.yEnd {
			cur.y = cur.yStart
			cur.x++
		}
	}
	return nil
}
