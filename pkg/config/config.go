package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial      SerialConfig     `yaml:"serial"`
	Clock       ClockConfig      `yaml:"clock"`
	Assemblies  []AssemblyConfig `yaml:"assemblies"`
	Calibration []CurveConfig    `yaml:"calibration"`
	Mock        MockConfig       `yaml:"mock"`
}

// SerialConfig contains serial port configuration for monitoring a board.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// ClockConfig controls the actuation clock.
type ClockConfig struct {
	TickInterval  time.Duration `yaml:"tick_interval"`
	RunDuration   time.Duration `yaml:"run_duration"`   // 0 runs until stopped, otherwise a timed routine
	AnalogSamples int           `yaml:"analog_samples"` // Potentiometer reads averaged per tick (0 = default)
}

// AssemblyConfig describes one motor with its switches.
type AssemblyConfig struct {
	Motor    MotorConfig  `yaml:"motor"`
	Switches SwitchConfig `yaml:"switches"`
}

// MotorConfig contains the motor lines and duty range.
type MotorConfig struct {
	ID      string `yaml:"id"` // "A" or "B"
	Enable  uint8  `yaml:"enable"`
	Input1  uint8  `yaml:"input1"`
	Input2  uint8  `yaml:"input2"`
	MinDuty uint8  `yaml:"min_duty"`
	MaxDuty uint8  `yaml:"max_duty"`
}

// SwitchConfig contains the direction switch and potentiometer lines.
type SwitchConfig struct {
	Forward uint8 `yaml:"forward"`
	Reverse uint8 `yaml:"reverse"`
	Pot     uint8 `yaml:"pot"`
}

// CurveConfig is the calibration of one motor in one direction. Either
// Coefficients or at least four Points must be given.
type CurveConfig struct {
	Motor        string             `yaml:"motor"`     // "A" or "B"
	Direction    string             `yaml:"direction"` // "forward" or "reverse"
	Coefficients *Coefficients      `yaml:"coefficients,omitempty"`
	Points       []CalibrationPoint `yaml:"points,omitempty"`
}

// Coefficients of flow = a*d^3 + b*d^2 + c*d + d.
type Coefficients struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
	C float64 `yaml:"c"`
	D float64 `yaml:"d"`
}

// CalibrationPoint represents a single measured flow rate.
type CalibrationPoint struct {
	Duty float64 `yaml:"duty"`
	Flow float64 `yaml:"flow"` // ml/min
}

// MockConfig contains the initial state of simulated assemblies.
type MockConfig struct {
	Pot       int    `yaml:"pot"`       // Initial potentiometer reading (0-1023)
	Direction string `yaml:"direction"` // Initial switch position: off, forward or reverse
}

// Default returns a default configuration matching the reference two-pump board.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			BaudRate: 115200,
		},
		Clock: ClockConfig{
			TickInterval:  100 * time.Millisecond,
			RunDuration:   0,
			AnalogSamples: 8,
		},
		Assemblies: []AssemblyConfig{
			{
				Motor:    MotorConfig{ID: "A", Enable: 9, Input1: 8, Input2: 7, MinDuty: 40, MaxDuty: 200},
				Switches: SwitchConfig{Forward: 10, Reverse: 11, Pot: 14},
			},
			{
				Motor:    MotorConfig{ID: "B", Enable: 3, Input1: 5, Input2: 4, MinDuty: 40, MaxDuty: 200},
				Switches: SwitchConfig{Forward: 12, Reverse: 13, Pot: 15},
			},
		},
		Calibration: []CurveConfig{
			{Motor: "A", Direction: "forward", Coefficients: &Coefficients{A: 4.11331682e-05, B: -2.42744217e-02, C: 5.12851003e+00, D: -3.38448966e+02}},
			{Motor: "A", Direction: "reverse", Coefficients: &Coefficients{A: 4.11331682e-05, B: -2.42744217e-02, C: 5.12851003e+00, D: -3.38448966e+02}},
			{Motor: "B", Direction: "forward", Coefficients: &Coefficients{A: -1.72290739e-05, B: 1.20133993e-02, C: -2.54089495e+00, D: 1.76741358e+02}},
			{Motor: "B", Direction: "reverse", Coefficients: &Coefficients{A: -1.72290739e-05, B: 1.20133993e-02, C: -2.54089495e+00, D: 1.76741358e+02}},
		},
		Mock: MockConfig{
			Pot:       512,
			Direction: "off",
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Lists replace the defaults rather than merging into them.
	cfg.Assemblies = nil
	cfg.Calibration = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Clock.TickInterval == 0 {
		c.Clock.TickInterval = def.Clock.TickInterval
	}
	if c.Clock.AnalogSamples == 0 {
		c.Clock.AnalogSamples = def.Clock.AnalogSamples
	}

	if len(c.Assemblies) == 0 {
		c.Assemblies = def.Assemblies
	}
	if len(c.Calibration) == 0 {
		c.Calibration = def.Calibration
	}

	if c.Mock.Direction == "" {
		c.Mock.Direction = def.Mock.Direction
	}
}
