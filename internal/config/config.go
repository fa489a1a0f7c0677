// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Touchdiag TouchdiagConfig `yaml:"touchdiag"`
}

type TouchdiagConfig struct {
	Transport TransportConfig `yaml:"transport"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// ---- TRANSPORT ----

type TransportConfig struct {
	Kind   string       `yaml:"kind"` // "i2c" or "modbus"
	I2C    I2CConfig    `yaml:"i2c"`
	Modbus ModbusConfig `yaml:"modbus"`
}

type I2CConfig struct {
	Bus     string `yaml:"bus"`
	Address uint16 `yaml:"address"`
}

type ModbusConfig struct {
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- OUTPUT ----

type OutputConfig struct {
	Frames  string `yaml:"frames"`
	Control string `yaml:"control"`

	// Archive is an optional SQLite path; empty disables the archive.
	Archive string `yaml:"archive"`
}

// ---- LOGGING ----

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses the YAML config at path.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}
