// internal/mxt/constants.go
package mxt

// Register protocol constants. These values are defined by the chip
// family and MUST NOT be configurable.

// ---- OBJECT TYPES ----

// ObjectCommandProcessorT6 is the command processor object.
const ObjectCommandProcessorT6 uint8 = 6

// ObjectDebugDiagnosticT37 is the diagnostic data object.
const ObjectDebugDiagnosticT37 uint8 = 37

// ---- T6 REGISTER OFFSETS FROM OBJECT BASE ----

const (
	T6ResetOffset      uint16 = 0x00
	T6BackupNVOffset   uint16 = 0x01
	T6CalibrateOffset  uint16 = 0x02
	T6ReportAllOffset  uint16 = 0x03
	T6DiagnosticOffset uint16 = 0x05
)

// ---- T6 DIAGNOSTIC COMMANDS ----

const (
	CmdPageUp     uint8 = 0x01
	CmdPageDown   uint8 = 0x02
	CmdDeltasMode uint8 = 0x10
	CmdRefsMode   uint8 = 0x11
)

// ---- INFORMATION BLOCK GEOMETRY ----

const (
	// InfoBlockStart is the base address of the information block.
	InfoBlockStart uint16 = 0x0000

	// IDBlockSize is the fixed size of the ID header.
	IDBlockSize = 7

	// ObjectEntrySize is the size of one object-table entry.
	ObjectEntrySize = 6

	// ChecksumSize is the trailing CRC-24 field, stored LSB first.
	ChecksumSize = 3
)
