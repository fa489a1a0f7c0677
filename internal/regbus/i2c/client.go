// internal/regbus/i2c/client.go
package i2c

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// DefaultAddr is the usual maXTouch slave address.
const DefaultAddr uint16 = 0x4A

// Client talks to the chip over its native I2C attachment.
//
// Every transaction starts with a 16-bit little-endian address pointer
// write; reads then clock data out from that address, writes append the
// payload to the same message.
type Client struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

type Config struct {
	// Bus is a periph bus name or number ("1", "/dev/i2c-1"). Empty
	// selects the first available bus.
	Bus  string
	Addr uint16
}

// New opens the I2C bus and returns a connected client.
func New(cfg Config) (*Client, error) {
	if cfg.Addr == 0 {
		return nil, errors.New("i2c client: address required")
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("i2c client: host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.Bus)
	if err != nil {
		return nil, fmt.Errorf("i2c client: open bus %q: %w", cfg.Bus, err)
	}

	return &Client{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: cfg.Addr},
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.bus == nil {
		return nil
	}
	return c.bus.Close()
}

// Read sets the address pointer and clocks out n bytes.
func (c *Client) Read(addr uint16, n int) ([]byte, error) {
	ptr := []byte{byte(addr), byte(addr >> 8)}
	buf := make([]byte, n)
	if err := c.dev.Tx(ptr, buf); err != nil {
		return nil, fmt.Errorf("i2c read addr=0x%04x len=%d: %w", addr, n, err)
	}
	return buf, nil
}

// Write sends the address pointer followed by p in one message.
func (c *Client) Write(addr uint16, p []byte) error {
	msg := make([]byte, 2+len(p))
	msg[0] = byte(addr)
	msg[1] = byte(addr >> 8)
	copy(msg[2:], p)
	if err := c.dev.Tx(msg, nil); err != nil {
		return fmt.Errorf("i2c write addr=0x%04x len=%d: %w", addr, len(p), err)
	}
	return nil
}
