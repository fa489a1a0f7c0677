// internal/config/validate_test.go
package config

import "testing"

// helper to build a minimal valid config quickly
func i2cConfig(addr uint16) *Config {
	return &Config{
		Touchdiag: TouchdiagConfig{
			Transport: TransportConfig{
				Kind: "i2c",
				I2C:  I2CConfig{Bus: "1", Address: addr},
			},
		},
	}
}

// ---- tests ----

func TestValidate_I2COK(t *testing.T) {
	if err := Validate(i2cConfig(0x4A)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_I2CAddressRequired(t *testing.T) {
	if err := Validate(i2cConfig(0)); err == nil {
		t.Fatalf("expected address error, got nil")
	}
}

func TestValidate_I2CAddressRange(t *testing.T) {
	if err := Validate(i2cConfig(0x120)); err == nil {
		t.Fatalf("expected range error, got nil")
	}
}

func TestValidate_ModbusEndpointRequired(t *testing.T) {
	cfg := &Config{
		Touchdiag: TouchdiagConfig{
			Transport: TransportConfig{Kind: "modbus"},
		},
	}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected endpoint error, got nil")
	}
}

func TestValidate_UnknownKind(t *testing.T) {
	cfg := &Config{
		Touchdiag: TouchdiagConfig{
			Transport: TransportConfig{Kind: "spi"},
		},
	}

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected kind error, got nil")
	}
}

func TestValidate_KindRequired(t *testing.T) {
	if err := Validate(&Config{}); err == nil {
		t.Fatalf("expected kind error, got nil")
	}
}

func TestValidate_OutputCollision(t *testing.T) {
	cfg := i2cConfig(0x4A)
	cfg.Touchdiag.Output.Frames = "out.csv"
	cfg.Touchdiag.Output.Control = "out.csv"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected collision error, got nil")
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := i2cConfig(0x4A)
	cfg.Touchdiag.Log.Level = "loud"

	if err := Validate(cfg); err == nil {
		t.Fatalf("expected level error, got nil")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := i2cConfig(0x4A)
	Normalize(cfg)

	if got := cfg.Touchdiag.Output.Frames; got != DefaultFramesFile {
		t.Fatalf("frames default: got %q", got)
	}
	if got := cfg.Touchdiag.Output.Control; got != DefaultControlFile {
		t.Fatalf("control default: got %q", got)
	}
	if got := cfg.Touchdiag.Log.Level; got != "info" {
		t.Fatalf("log level default: got %q", got)
	}
}
