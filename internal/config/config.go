// Package config defines the data structures related to configuration and
// includes functions for loading and defaulting the config.
package config

import (
	"fmt"

	"github.com/craneworks/crane-valuation/pkg/constants"
	"github.com/craneworks/crane-valuation/pkg/crane"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration holds all configuration for the crane-valuation engine.
type Configuration struct {
	ReferenceData ReferenceDataConfig
	MarketData    MarketDataConfig
	Financing     FinancingConfig
	Logging       LoggingConfig `yaml:"logging,omitempty"`
	Output        OutputConfig  `yaml:"output,omitempty"`
}

// ReferenceDataConfig names the reference data sources loaded at startup.
// Comparables come from either a YAML file or a SQLite database; when both
// are set the database wins.
type ReferenceDataConfig struct {
	ComparablesFile   string
	ComparablesSQLite string
	RentalRatesFile   string
	AdjustmentsFile   string
}

// MarketDataConfig controls the optional live market intelligence fetch.
type MarketDataConfig struct {
	Enabled        bool
	Endpoint       string
	TimeoutSeconds int
}

// FinancingConfig overrides the illustrative financing terms.
type FinancingConfig struct {
	TermMonths          int
	AnnualRatePercent   float64
	DownPaymentFraction float64
	RentalUtilization   float64
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // json, console
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.ApplyDefaults()
	return &configuration, nil
}

// ApplyDefaults resolves unset values in one place so the rest of the engine
// never re-checks them.
func (conf *Configuration) ApplyDefaults() {
	if conf.MarketData.TimeoutSeconds <= 0 {
		conf.MarketData.TimeoutSeconds = constants.DefaultMarketFetchTimeoutSeconds
	}
	if conf.Financing.TermMonths <= 0 {
		conf.Financing.TermMonths = constants.DefaultFinancingTermMonths
	}
	if conf.Financing.AnnualRatePercent <= 0 {
		conf.Financing.AnnualRatePercent = constants.DefaultFinancingAPR
	}
	if conf.Financing.DownPaymentFraction <= 0 || conf.Financing.DownPaymentFraction >= 1 {
		conf.Financing.DownPaymentFraction = constants.DefaultDownPaymentFraction
	}
	if conf.Financing.RentalUtilization <= 0 || conf.Financing.RentalUtilization > 1 {
		conf.Financing.RentalUtilization = constants.DefaultRentalUtilization
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if conf.Logging.Format == "" {
		conf.Logging.Format = "json"
	}
	if conf.Logging.Level == "" {
		conf.Logging.Level = "info"
	}
}

// LoadSpecification reads a crane specification from a YAML file; the root
// binary uses this to drive a single valuation.
func LoadSpecification(specPath string) (crane.CraneSpecification, error) {
	v := viper.New()
	v.SetConfigFile(specPath)
	v.SetConfigType("yml")

	var spec crane.CraneSpecification
	if err := v.ReadInConfig(); err != nil {
		return spec, fmt.Errorf("error reading specification file, %s", err)
	}
	if err := v.Unmarshal(&spec); err != nil {
		return spec, fmt.Errorf("unable to decode specification into struct, %s", err)
	}
	return spec, nil
}

// BuildLogger constructs a zap logger according to the logging config.
func (conf *Configuration) BuildLogger() (*zap.Logger, error) {
	zapConf := zap.NewProductionConfig()
	if conf.Logging.Format == "console" {
		zapConf = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(conf.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid logging level %q: %w", conf.Logging.Level, err)
	}
	zapConf.Level = level

	return zapConf.Build()
}
