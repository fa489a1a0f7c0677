// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	t := cfg.Touchdiag

	// ------------------------------------------------------------
	// TRANSPORT VALIDATION
	// ------------------------------------------------------------

	switch t.Transport.Kind {
	case "i2c":
		if t.Transport.I2C.Address == 0 {
			return fmt.Errorf("transport: i2c address required")
		}
		if t.Transport.I2C.Address > 0x7F {
			return fmt.Errorf("transport: i2c address 0x%x out of 7-bit range", t.Transport.I2C.Address)
		}

	case "modbus":
		if t.Transport.Modbus.Endpoint == "" {
			return fmt.Errorf("transport: modbus endpoint required")
		}
		if t.Transport.Modbus.TimeoutMs < 0 {
			return fmt.Errorf("transport: modbus timeout_ms must be >= 0")
		}

	case "":
		return fmt.Errorf("transport: kind required (i2c or modbus)")

	default:
		return fmt.Errorf("transport: unknown kind %q", t.Transport.Kind)
	}

	// ------------------------------------------------------------
	// OUTPUT VALIDATION
	// ------------------------------------------------------------

	if t.Output.Frames != "" && t.Output.Frames == t.Output.Control {
		return fmt.Errorf("output: frames and control must be distinct files")
	}
	if t.Output.Archive != "" && (t.Output.Archive == t.Output.Frames || t.Output.Archive == t.Output.Control) {
		return fmt.Errorf("output: archive must be a distinct file")
	}

	// ------------------------------------------------------------
	// LOG VALIDATION
	// ------------------------------------------------------------

	switch t.Log.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", t.Log.Level)
	}

	return nil
}
