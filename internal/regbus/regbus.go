// internal/regbus/regbus.go
package regbus

// Bus is the logical register transport the acquisition layer depends on.
// Addresses are chip-internal byte addresses; how they reach the wire
// (I2C address pointer, register-bridge gateway, simulator) is up to the
// implementation.
type Bus interface {
	// Read returns n bytes starting at addr.
	Read(addr uint16, n int) ([]byte, error)

	// Write stores p starting at addr.
	Write(addr uint16, p []byte) error

	// Close releases the underlying transport.
	Close() error
}
