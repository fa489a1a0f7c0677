// internal/hawkeye/writer.go

// Package hawkeye writes acquired frames in the hawkeye CSV layout
// consumed by downstream replay and visualization tooling. The byte
// format is locked; see WriteControl for the companion schema file.
package hawkeye

import (
	"bufio"
	"fmt"
	"os"

	"github.com/tamzrod/touchdiag/internal/acquire"
	"github.com/tamzrod/touchdiag/internal/mxt"
)

// Writer appends one CSV line per frame:
//
//	HH:MM:SS,<frame>,<v>,<v>,...,
//
// Cells are enumerated x-major/y-minor, matching the assembler's fill
// order. Every field, including the last, is followed by a comma.
type Writer struct {
	f   *os.File
	buf *bufio.Writer
	geo mxt.Geometry
}

// NewWriter creates (truncating) the time-series file.
func NewWriter(path string, geo mxt.Geometry) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("hawkeye: open %s: %w", path, err)
	}
	return &Writer{
		f:   f,
		buf: bufio.NewWriter(f),
		geo: geo,
	}, nil
}

// WriteFrame implements acquire.FrameSink.
func (w *Writer) WriteFrame(rec acquire.Record) error {
	if len(rec.Values) != w.geo.Cells() {
		return fmt.Errorf("hawkeye: frame %d has %d values, want %d",
			rec.Seq, len(rec.Values), w.geo.Cells())
	}

	if _, err := fmt.Fprintf(w.buf, "%s,", rec.At.Format("15:04:05")); err != nil {
		return fmt.Errorf("hawkeye: write frame %d: %w", rec.Seq, err)
	}
	if _, err := fmt.Fprintf(w.buf, "%d,", rec.Seq); err != nil {
		return fmt.Errorf("hawkeye: write frame %d: %w", rec.Seq, err)
	}

	for x := 0; x < w.geo.XSize; x++ {
		for y := 0; y < w.geo.YSize; y++ {
			value := rec.Values[y+x*w.geo.YSize]
			if _, err := fmt.Fprintf(w.buf, "%d,", value); err != nil {
				return fmt.Errorf("hawkeye: write frame %d: %w", rec.Seq, err)
			}
		}
	}

	if _, err := fmt.Fprintln(w.buf); err != nil {
		return fmt.Errorf("hawkeye: write frame %d: %w", rec.Seq, err)
	}
	return nil
}

// Close flushes and closes the time-series file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.f.Close()
		return fmt.Errorf("hawkeye: flush: %w", err)
	}
	return w.f.Close()
}
