// internal/acquire/session.go
package acquire

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/touchdiag/internal/mxt"
	"github.com/tamzrod/touchdiag/internal/regbus"
	"github.com/tamzrod/touchdiag/internal/timeutil"
)

// Session drives one acquisition run. It owns the frame buffer, the page
// scratch buffer, and the stripe cursor for the run's lifetime; nothing
// here is safe for concurrent use.
type Session struct {
	bus   regbus.Bus
	geo   mxt.Geometry
	addrs Addresses
	mode  Mode

	clock timeutil.Clock
	wait  Waiter
	log   zerolog.Logger

	frame   []int16
	pageBuf []byte
}

// Options carries the ambient collaborators; zero values get defaults.
type Options struct {
	Clock  timeutil.Clock
	Wait   Waiter
	Logger *zerolog.Logger
}

// NewSession validates the geometry/address pairing and allocates the
// session buffers.
func NewSession(bus regbus.Bus, geo mxt.Geometry, addrs Addresses, mode Mode, opts Options) (*Session, error) {
	if bus == nil {
		return nil, errors.New("acquire: bus required")
	}
	if mode != ModeDeltas && mode != ModeRefs {
		return nil, fmt.Errorf("acquire: invalid mode 0x%02x", uint8(mode))
	}
	if geo.XSize <= 0 || geo.YSize <= 0 || geo.NumStripes <= 0 || geo.PagesPerStripe <= 0 {
		return nil, fmt.Errorf("acquire: invalid geometry %+v", geo)
	}
	if geo.YSize%geo.NumStripes != 0 {
		return nil, fmt.Errorf("acquire: y size %d not divisible by %d stripes", geo.YSize, geo.NumStripes)
	}
	if addrs.PageSize <= 0 || addrs.PageSize%2 != 0 {
		return nil, fmt.Errorf("acquire: page size %d must be positive and even", addrs.PageSize)
	}

	s := &Session{
		bus:     bus,
		geo:     geo,
		addrs:   addrs,
		mode:    mode,
		clock:   opts.Clock,
		wait:    opts.Wait,
		log:     zerolog.Nop(),
		frame:   make([]int16, geo.Cells()),
		pageBuf: make([]byte, addrs.PageSize),
	}
	if s.clock == nil {
		s.clock = timeutil.RealClock{}
	}
	if s.wait == nil {
		s.wait = SpinWaiter{}
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	}
	return s, nil
}

// Summary reports one completed run.
type Summary struct {
	Frames  int
	Elapsed time.Duration
}

// Run acquires the requested number of frames and delivers each to every
// sink. Zero frames is a valid run that touches no registers. Any fatal
// error aborts the run; frames already delivered stay delivered.
func (s *Session) Run(frames int, sinks ...FrameSink) (Summary, error) {
	if frames < 0 {
		return Summary{}, fmt.Errorf("acquire: frame count %d must be non-negative", frames)
	}

	s.log.Info().
		Stringer("mode", s.mode).
		Int("frames", frames).
		Int("stripes", s.geo.NumStripes).
		Int("pages_per_stripe", s.geo.PagesPerStripe).
		Int("stripe_width", s.geo.StripeWidth()).
		Int("x_size", s.geo.XSize).
		Int("y_size", s.geo.YSize).
		Msg("starting acquisition")

	start := s.clock.Now()

	for frame := 1; frame <= frames; frame++ {
		for stripe := 0; stripe < s.geo.NumStripes; stripe++ {
			cur := s.startStripe(stripe)

			for page := 0; page < s.geo.PagesPerStripe; page++ {
				pageIdx := s.geo.PagesPerStripe*stripe + page

				s.log.Debug().
					Int("frame", frame).
					Int("stripe", stripe).
					Int("page", pageIdx).
					Msg("fetching page")

				if err := s.fetchPage(pageIdx); err != nil {
					return Summary{}, fmt.Errorf("frame %d stripe %d page %d: %w",
						frame, stripe, pageIdx, err)
				}
				if err := s.insertPage(&cur, s.pageBuf); err != nil {
					return Summary{}, fmt.Errorf("frame %d stripe %d page %d: %w",
						frame, stripe, pageIdx, err)
				}
			}
		}

		rec := Record{
			At:     s.clock.Now(),
			Seq:    frame,
			XSize:  s.geo.XSize,
			YSize:  s.geo.YSize,
			Values: append([]int16(nil), s.frame...),
		}
		for _, sink := range sinks {
			if err := sink.WriteFrame(rec); err != nil {
				return Summary{}, fmt.Errorf("frame %d: sink: %w", frame, err)
			}
		}
	}

	sum := Summary{
		Frames:  frames,
		Elapsed: s.clock.Since(start),
	}

	s.log.Info().
		Int("frames", sum.Frames).
		Dur("elapsed", sum.Elapsed).
		Msg("acquisition complete")

	return sum, nil
}
