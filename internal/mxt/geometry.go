// internal/mxt/geometry.go
package mxt

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDevice is returned for family/variant identifiers the
// geometry table does not cover.
var ErrUnsupportedDevice = errors.New("mxt: unsupported device")

// Geometry is the diagnostic readout topology of one chip, fixed for the
// whole session.
type Geometry struct {
	XSize          int
	YSize          int
	NumStripes     int
	PagesPerStripe int
}

// StripeWidth is the number of Y lines per stripe.
func (g Geometry) StripeWidth() int {
	return g.YSize / g.NumStripes
}

// Cells is the number of samples in one full frame.
func (g Geometry) Cells() int {
	return g.XSize * g.YSize
}

// ResolveGeometry derives the readout topology from the chip identity.
//
// The table is keyed by family and, where families ship divergent
// sensors, variant. Family 0xA0 has an addressable diagnostic width
// narrower than its raw matrix, hence the fixed X override. Identifiers
// outside the table are a hard failure; guessing a default geometry
// desynchronizes the page protocol.
func ResolveGeometry(id ID) (Geometry, error) {
	g := Geometry{
		XSize: int(id.MatrixX),
		YSize: int(id.MatrixY),
	}

	switch id.Family {
	case 0x80:
		// mXT224
		g.NumStripes = 1
		g.PagesPerStripe = 4

	case 0xA0:
		// mXT1386
		g.NumStripes = 3
		g.PagesPerStripe = 8
		g.XSize = 27

	case 0xA1:
		if id.Variant == 0x03 {
			// mXT540E
			g.NumStripes = 1
			g.PagesPerStripe = 9
		} else {
			// mXT768E
			g.NumStripes = 1
			g.PagesPerStripe = 12
		}

	case 0xA2:
		if id.Variant != 0x00 {
			return Geometry{}, fmt.Errorf("%w: family 0x%02x variant 0x%02x",
				ErrUnsupportedDevice, id.Family, id.Variant)
		}
		// mXT1664
		g.NumStripes = 1
		g.PagesPerStripe = 30

	default:
		return Geometry{}, fmt.Errorf("%w: family 0x%02x", ErrUnsupportedDevice, id.Family)
	}

	if g.YSize == 0 || g.XSize == 0 {
		return Geometry{}, fmt.Errorf("%w: zero matrix size", ErrUnsupportedDevice)
	}
	if g.YSize%g.NumStripes != 0 {
		return Geometry{}, fmt.Errorf("%w: y size %d not divisible by %d stripes",
			ErrUnsupportedDevice, g.YSize, g.NumStripes)
	}

	return g, nil
}
