// internal/regbus/sim/device_test.go
package sim

import (
	"testing"

	"github.com/tamzrod/touchdiag/internal/mxt"
)

func newDevice(t *testing.T, cfg Config) *Device {
	t.Helper()

	dev, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return dev
}

func TestInfoBlockServed(t *testing.T) {
	dev := newDevice(t, Config{Family: 0xA2, Variant: 0x00, MatrixX: 32, MatrixY: 52, T37Size: 130})

	info, err := mxt.ReadInfo(dev)
	if err != nil {
		t.Fatalf("ReadInfo: %v", err)
	}

	if info.ID.Family != 0xA2 || info.ID.MatrixX != 32 || info.ID.MatrixY != 52 {
		t.Fatalf("id mismatch: %+v", info.ID)
	}

	addr, err := info.ObjectAddress(mxt.ObjectDebugDiagnosticT37, 0)
	if err != nil {
		t.Fatalf("T37 address: %v", err)
	}
	if addr != T37Addr {
		t.Fatalf("T37 address: got 0x%04x", addr)
	}

	size, err := info.ObjectSize(mxt.ObjectDebugDiagnosticT37)
	if err != nil {
		t.Fatalf("T37 size: %v", err)
	}
	if size != 130 {
		t.Fatalf("T37 size: got %d", size)
	}
}

func TestCommandLatch(t *testing.T) {
	dev := newDevice(t, Config{Family: 0x80, MatrixX: 2, MatrixY: 4, T37Size: 10, ClearAfter: 2})

	cmdAddr := T6Addr + mxt.T6DiagnosticOffset
	if err := dev.Write(cmdAddr, []byte{mxt.CmdDeltasMode}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	for i := 0; i < 2; i++ {
		b, err := dev.Read(cmdAddr, 1)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if b[0] != mxt.CmdDeltasMode {
			t.Fatalf("poll %d: expected latched command, got 0x%02x", i, b[0])
		}
	}

	b, err := dev.Read(cmdAddr, 1)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if b[0] != 0 {
		t.Fatalf("command register did not clear: 0x%02x", b[0])
	}
}

func TestPagedPayload(t *testing.T) {
	dev := newDevice(t, Config{
		Family: 0x80, MatrixX: 2, MatrixY: 4, T37Size: 10,
		Sample: func(i int) int16 { return int16(i * 10) },
	})

	cmdAddr := T6Addr + mxt.T6DiagnosticOffset

	dev.Write(cmdAddr, []byte{mxt.CmdRefsMode})
	dev.Read(cmdAddr, 1)

	hdr, err := dev.Read(T37Addr, 2)
	if err != nil {
		t.Fatalf("header: %v", err)
	}
	if hdr[0] != mxt.CmdRefsMode || hdr[1] != 0 {
		t.Fatalf("header: %v", hdr)
	}

	dev.Write(cmdAddr, []byte{mxt.CmdPageUp})
	dev.Read(cmdAddr, 1)

	hdr, _ = dev.Read(T37Addr, 2)
	if hdr[1] != 1 {
		t.Fatalf("page after page-up: %d", hdr[1])
	}

	// Page 1 starts at global sample 4.
	payload, err := dev.Read(T37Addr+2, 8)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	first := int16(uint16(payload[0]) | uint16(payload[1])<<8)
	if first != 40 {
		t.Fatalf("first page-1 sample: got %d", first)
	}
}
