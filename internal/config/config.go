// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/equity-unlock/internal/scenario"
	"github.com/iwvelando/equity-unlock/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for equity-unlock.
type Configuration struct {
	Current     scenario.CurrentHome `mapstructure:"current" yaml:"current"`
	Liabilities []scenario.Liability `mapstructure:"liabilities" yaml:"liabilities"`
	NewHome     scenario.NewHome     `mapstructure:"newHome" yaml:"newHome"`
	Logging     LoggingConfig        `mapstructure:"logging" yaml:"logging,omitempty"`
	Output      OutputConfig         `mapstructure:"output" yaml:"output,omitempty"`
	Advisor     AdvisorConfig        `mapstructure:"advisor" yaml:"advisor,omitempty"`
	Cache       CacheConfig          `mapstructure:"cache" yaml:"cache,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputFile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
}

// AdvisorConfig configures the generative-text client used for insights.
type AdvisorConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	Model   string        `mapstructure:"model" yaml:"model,omitempty"`
	BaseURL string        `mapstructure:"baseUrl" yaml:"baseUrl,omitempty"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
	APIKey  string        `mapstructure:"apiKey" yaml:"-"`
}

// CacheConfig configures where generated insights are cached. An empty
// RedisAddr selects the in-process cache.
type CacheConfig struct {
	RedisAddr string        `mapstructure:"redisAddr" yaml:"redisAddr,omitempty"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("advisor.enabled", false)
	v.SetDefault("advisor.model", constants.DefaultAdvisorModel)
	v.SetDefault("advisor.baseUrl", constants.DefaultAdvisorBaseURL)
	v.SetDefault("advisor.timeout", time.Duration(constants.DefaultAdvisorTimeoutSeconds)*time.Second)
	v.SetDefault("cache.ttl", time.Duration(constants.DefaultInsightCacheTTLMinutes)*time.Minute)

	// The credential never lives in the file.
	_ = v.BindEnv("advisor.apiKey", constants.EnvPrefix+"_ADVISOR_APIKEY", "GEMINI_API_KEY")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	configuration.assignLiabilityIDs()
	return &configuration, nil
}

// assignLiabilityIDs gives every liability without an id a fresh one.
func (c *Configuration) assignLiabilityIDs() {
	for i := range c.Liabilities {
		if strings.TrimSpace(c.Liabilities[i].ID) == "" {
			c.Liabilities[i].ID = uuid.NewString()
		}
	}
}

// Inputs returns the evaluation inputs described by the configuration.
func (c *Configuration) Inputs() scenario.Inputs {
	return scenario.Inputs{
		Current:     c.Current,
		Liabilities: append(scenario.Liabilities(nil), c.Liabilities...),
		NewHome:     c.NewHome,
	}
}

// Validate rejects configurations the evaluator cannot meaningfully process.
func (c *Configuration) Validate() error {
	return ValidateInputs(c.Inputs())
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	return InputWarnings(c.Inputs())
}
