// internal/regbus/sim/device.go

// Package sim implements an in-memory chip behind the regbus.Bus
// interface: information block, object table with checksum, T6 command
// latch, and paged T37 diagnostic payloads. Tests use it to drive the
// acquisition stack without hardware, including forced fault paths.
package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tamzrod/touchdiag/internal/mxt"
)

// Fixed object layout of the simulated chip.
const (
	T6Addr  uint16 = 0x0100
	T37Addr uint16 = 0x0200

	t6Size = 6
)

// Config describes the simulated chip.
type Config struct {
	Family  uint8
	Variant uint8
	MatrixX uint8
	MatrixY uint8

	// T37Size is the total diagnostic object size including the 2-byte
	// mode/page header.
	T37Size int

	// ClearAfter is how many command polls the chip absorbs before the
	// command register reads back zero. Zero clears immediately.
	ClearAfter int

	// Sample produces the payload value for global sample index i of
	// the current frame pass. Nil defaults to Sample(i) = i.
	Sample func(i int) int16
}

// Device is a simulated chip. Fault-injection fields may be set between
// operations; Device is not safe for concurrent writers beyond the
// register transactions themselves.
type Device struct {
	mu  sync.Mutex
	cfg Config
	mem []byte

	mode    uint8
	page    int
	cmdVal  byte
	pending int

	// ---- FAULT INJECTION ----

	// NeverClear keeps the command register latched so polls exhaust.
	NeverClear bool

	// MisreportPage makes the chip echo page+1 in the data header.
	MisreportPage bool

	// ReadErr, when set, fails any read covering ReadErrAddr.
	ReadErr     error
	ReadErrAddr uint16

	// WriteErr, when set, fails every register write.
	WriteErr error

	// ---- COUNTERS ----

	// PollCount counts reads of the command register.
	PollCount int

	// PayloadCount counts reads of the T37 payload region.
	PayloadCount int
}

// New builds the simulated chip and lays out its information block.
func New(cfg Config) (*Device, error) {
	if cfg.T37Size <= 2 {
		return nil, errors.New("sim: t37 size must exceed header")
	}
	if cfg.Sample == nil {
		cfg.Sample = func(i int) int16 { return int16(i) }
	}

	d := &Device{
		cfg:     cfg,
		mem:     make([]byte, 0x10000),
		pending: -1,
	}
	d.layoutInfoBlock()
	return d, nil
}

func (d *Device) layoutInfoBlock() {
	blob := []byte{
		d.cfg.Family, d.cfg.Variant,
		0x10, 0xAA, // version, build
		d.cfg.MatrixX, d.cfg.MatrixY,
		2, // objects: T6, T37
	}

	entry := func(typ uint8, start uint16, size int) []byte {
		return []byte{typ, byte(start), byte(start >> 8), byte(size - 1), 0, 1}
	}
	blob = append(blob, entry(mxt.ObjectCommandProcessorT6, T6Addr, t6Size)...)
	blob = append(blob, entry(mxt.ObjectDebugDiagnosticT37, T37Addr, d.cfg.T37Size)...)

	crc := mxt.Checksum(blob)
	blob = append(blob, byte(crc), byte(crc>>8), byte(crc>>16))

	copy(d.mem, blob)
}

func (d *Device) Close() error { return nil }

// ClearAfter changes how many polls the command register stays latched
// after a command write.
func (d *Device) ClearAfter(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg.ClearAfter = n
}

// Write handles register writes; writes to the diagnostic command
// register drive the chip's page state machine.
func (d *Device) Write(addr uint16, p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.WriteErr != nil {
		return d.WriteErr
	}

	if addr == T6Addr+mxt.T6DiagnosticOffset && len(p) == 1 {
		d.command(p[0])
		return nil
	}

	copy(d.mem[addr:], p)
	return nil
}

func (d *Device) command(cmd byte) {
	switch cmd {
	case mxt.CmdDeltasMode, mxt.CmdRefsMode:
		d.mode = cmd
		d.page = 0
	case mxt.CmdPageUp:
		d.page++
	case mxt.CmdPageDown:
		if d.page > 0 {
			d.page--
		}
	}
	d.cmdVal = cmd
	d.pending = d.cfg.ClearAfter
}

// Read serves register reads, materializing the T37 object on the fly.
func (d *Device) Read(addr uint16, n int) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ReadErr != nil && addr <= d.ReadErrAddr && d.ReadErrAddr < addr+uint16(n) {
		return nil, d.ReadErr
	}

	if addr == T6Addr+mxt.T6DiagnosticOffset && n == 1 {
		d.PollCount++
		if d.NeverClear {
			return []byte{d.cmdVal}, nil
		}
		if d.pending > 0 {
			d.pending--
			return []byte{d.cmdVal}, nil
		}
		return []byte{0}, nil
	}

	if addr >= T37Addr && int(addr)+n <= int(T37Addr)+d.cfg.T37Size {
		if addr >= T37Addr+2 {
			d.PayloadCount++
		}
		obj := d.t37Object()
		off := int(addr - T37Addr)
		return append([]byte(nil), obj[off:off+n]...), nil
	}

	if int(addr)+n > len(d.mem) {
		return nil, fmt.Errorf("sim: read past end of register map: addr=0x%04x len=%d", addr, n)
	}
	return append([]byte(nil), d.mem[addr:int(addr)+n]...), nil
}

// t37Object renders the diagnostic object for the current mode/page.
func (d *Device) t37Object() []byte {
	obj := make([]byte, d.cfg.T37Size)
	obj[0] = d.mode
	echo := d.page
	if d.MisreportPage {
		echo++
	}
	obj[1] = byte(echo)

	samplesPerPage := (d.cfg.T37Size - 2) / 2
	base := d.page * samplesPerPage
	for i := 0; i < samplesPerPage; i++ {
		v := uint16(d.cfg.Sample(base + i))
		obj[2+2*i] = byte(v)
		obj[3+2*i] = byte(v >> 8)
	}
	return obj
}
