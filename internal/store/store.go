// internal/store/store.go

// Package store archives acquired frames in a SQLite database for later
// analysis, alongside the hawkeye CSV which stays the format of record.
package store

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tamzrod/touchdiag/internal/acquire"
)

type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the frame archive at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS frames (
			frame_no          BIGINT,
			captured_at       TEXT,
			mode              TEXT,
			x_size            BIGINT,
			y_size            BIGINT,
			samples           BLOB,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// Sink adapts the archive to acquire.FrameSink for a given mode label.
type Sink struct {
	db   *DB
	mode string
}

// NewSink returns a sink that records frames under the given mode label.
func (db *DB) NewSink(mode string) *Sink {
	return &Sink{db: db, mode: mode}
}

// WriteFrame implements acquire.FrameSink.
func (s *Sink) WriteFrame(rec acquire.Record) error {
	_, err := s.db.Exec(
		"INSERT INTO frames (frame_no, captured_at, mode, x_size, y_size, samples) VALUES (?, ?, ?, ?, ?, ?)",
		rec.Seq, rec.At.UTC().Format(time.RFC3339Nano), s.mode, rec.XSize, rec.YSize, encodeSamples(rec.Values),
	)
	if err != nil {
		return fmt.Errorf("store: insert frame %d: %w", rec.Seq, err)
	}
	return nil
}

// Frame is one archived frame read back from the database.
type Frame struct {
	Seq        int
	CapturedAt time.Time
	Mode       string
	XSize      int
	YSize      int
	Values     []int16
}

// ReadFrame returns the archived frame with the given sequence number
// and mode label.
func (db *DB) ReadFrame(mode string, seq int) (Frame, error) {
	row := db.QueryRow(
		"SELECT frame_no, captured_at, mode, x_size, y_size, samples FROM frames WHERE mode = ? AND frame_no = ?",
		mode, seq,
	)

	var f Frame
	var at string
	var blob []byte
	if err := row.Scan(&f.Seq, &at, &f.Mode, &f.XSize, &f.YSize, &blob); err != nil {
		return Frame{}, fmt.Errorf("store: read frame %d: %w", seq, err)
	}

	ts, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return Frame{}, fmt.Errorf("store: frame %d timestamp: %w", seq, err)
	}
	f.CapturedAt = ts
	f.Values = decodeSamples(blob)
	return f, nil
}

// FrameCount returns the number of archived frames.
func (db *DB) FrameCount() (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM frames").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Samples are stored as the chip produced them: little-endian int16.

func encodeSamples(values []int16) []byte {
	out := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}
	return out
}

func decodeSamples(blob []byte) []int16 {
	out := make([]int16, len(blob)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(blob[2*i:]))
	}
	return out
}
