// internal/config/normalize.go
package config

// Default output filenames, kept byte-compatible with the legacy tool so
// downstream replay scripts find them without configuration.
const (
	DefaultFramesFile  = "hawkeye.csv"
	DefaultControlFile = "control.txt"

	defaultModbusTimeoutMs = 500
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	t := &cfg.Touchdiag

	if t.Output.Frames == "" {
		t.Output.Frames = DefaultFramesFile
	}
	if t.Output.Control == "" {
		t.Output.Control = DefaultControlFile
	}

	if t.Transport.Kind == "modbus" && t.Transport.Modbus.TimeoutMs == 0 {
		t.Transport.Modbus.TimeoutMs = defaultModbusTimeoutMs
	}

	if t.Log.Level == "" {
		t.Log.Level = "info"
	}
}
