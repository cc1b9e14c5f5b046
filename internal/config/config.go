// Package config defines the application configuration and loading via viper.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/owengrv/running-the-numbers/internal/scenario"
	"github.com/owengrv/running-the-numbers/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for running-the-numbers.
type Configuration struct {
	Variant  string            `yaml:"variant,omitempty"`
	Defaults map[string]string `yaml:"defaults,omitempty"`
	Logging  LoggingConfig     `yaml:"logging,omitempty"`
	Output   OutputConfig      `yaml:"output,omitempty"`
	State    StateConfig       `yaml:"state,omitempty"`
	Server   ServerConfig      `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`   // pretty, csv
	Decimals int    `yaml:"decimals,omitempty"` // currency decimal places
}

// StateConfig holds snapshot persistence options.
type StateConfig struct {
	File string `yaml:"file,omitempty"`
}

// ServerConfig holds the HTTP API listener options.
type ServerConfig struct {
	Address       string `yaml:"address,omitempty"`
	MaxUploadSize string `yaml:"maxUploadSize,omitempty"` // e.g. "256K", "2MB"
}

// Default returns the built-in configuration used when no file is present.
func Default() *Configuration {
	return &Configuration{
		Variant: string(scenario.VariantInvestor),
		Defaults: map[string]string{
			scenario.FieldHomePrice:     "400000",
			scenario.FieldHomeDownPct:   "20",
			scenario.FieldHomeRate:      "6.5",
			scenario.FieldHomeTermYears: "30",
			scenario.FieldHomeTaxPct:    "1.1",
			scenario.FieldHomeInsurance: "1800",
			scenario.FieldHomeCAGR:      "4",
			scenario.FieldHomeHomestead: "yes",
		},
		State:  StateConfig{File: constants.DefaultStateFile},
		Server: ServerConfig{Address: constants.DefaultServerAddress},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. A missing file is not an error; the built-in defaults
// are returned instead.
func LoadConfiguration(configPath string) (*Configuration, error) {
	configuration := Default()

	if configPath == "" {
		return configuration, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return configuration, nil
	}

	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	if err := viper.Unmarshal(configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return configuration, configuration.validate()
}

// ScenarioVariant returns the typed scenario variant, defaulting to investor.
func (c *Configuration) ScenarioVariant() scenario.Variant {
	if c.Variant == string(scenario.VariantBudget) {
		return scenario.VariantBudget
	}
	return scenario.VariantInvestor
}

func (c *Configuration) validate() error {
	switch c.Variant {
	case "", string(scenario.VariantInvestor), string(scenario.VariantBudget):
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}

	switch c.Output.Format {
	case "", constants.OutputFormatPretty, constants.OutputFormatCSV:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}

	if c.State.File == "" {
		c.State.File = constants.DefaultStateFile
	}
	if c.Server.Address == "" {
		c.Server.Address = constants.DefaultServerAddress
	}
	if c.Server.MaxUploadSize != "" {
		if _, err := ParseByteSize(c.Server.MaxUploadSize); err != nil {
			return fmt.Errorf("invalid server.maxUploadSize: %w", err)
		}
	}
	return nil
}

// UploadSizeBytes returns the request size limit for the HTTP API, falling
// back to the built-in default when unset.
func (c *Configuration) UploadSizeBytes() int64 {
	n, err := ParseByteSize(c.Server.MaxUploadSize)
	if err != nil || n <= 0 {
		return constants.DefaultMaxUploadSizeBytes
	}
	return n
}

var byteSizeUnits = map[string]int64{
	"": 1, "B": 1,
	"K": 1 << 10, "KB": 1 << 10,
	"M": 1 << 20, "MB": 1 << 20,
	"G": 1 << 30, "GB": 1 << 30,
}

// ParseByteSize converts a human-friendly size such as "256K" or "2MB" into
// bytes. A bare number is taken as bytes.
func ParseByteSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	digits := strings.TrimRight(s, "BKMG ")
	mult, ok := byteSizeUnits[strings.TrimSpace(s[len(digits):])]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit in %q", value)
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", value, err)
	}
	if n < 0 || n > math.MaxInt64/mult {
		return 0, fmt.Errorf("size %q out of range", value)
	}
	return n * mult, nil
}
