// internal/regbus/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Client reaches a chip exposed through a register-bridge gateway over
// Modbus TCP. The bridge maps the chip's byte address space onto holding
// registers, one byte per register, low byte significant.
//
// It serializes requests because the handler mutates per-call state.
type Client struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration
}

// New creates a connected bridge client.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbus bridge: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, err
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// Read fetches n byte-registers starting at addr.
func (c *Client) Read(addr uint16, n int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.client.ReadHoldingRegisters(addr, uint16(n))
	if err != nil {
		return nil, fmt.Errorf("modbus bridge read addr=0x%04x len=%d: %w", addr, n, err)
	}
	if len(raw) != 2*n {
		return nil, fmt.Errorf("modbus bridge read addr=0x%04x: short payload %d", addr, len(raw))
	}

	// Registers arrive big-endian; the bridge carries one byte per
	// register in the low half.
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = raw[2*i+1]
	}
	return out, nil
}

// Write stores p into byte-registers starting at addr.
func (c *Client) Write(addr uint16, p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := make([]byte, 2*len(p))
	for i, b := range p {
		payload[2*i+1] = b
	}

	_, err := c.client.WriteMultipleRegisters(addr, uint16(len(p)), payload)
	if err != nil {
		return fmt.Errorf("modbus bridge write addr=0x%04x len=%d: %w", addr, len(p), err)
	}
	return nil
}
