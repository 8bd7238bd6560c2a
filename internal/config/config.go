// Package config loads the settings shared by every telstra-numbers command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults for the Telstra products API.
const (
	DefaultTokenURL        = "https://products.api.telstra.com/v2/oauth/token"
	DefaultBaseURL         = "https://products.api.telstra.com"
	DefaultAPIVersion      = "3.1.0"
	DefaultContentLanguage = "en-au"

	// DefaultScope covers free-trial, messaging, reports and virtual-number read/write.
	DefaultScope = "free-trial-numbers:read free-trial-numbers:write messages:read " +
		"messages:write reports:read reports:write virtual-numbers:read virtual-numbers:write"

	DefaultFreeTrialTimeout      = 15 * time.Second
	DefaultVirtualNumbersTimeout = 10 * time.Second

	// EnvPrefix is prepended to every environment override, e.g. TELSTRA_CLIENT_ID.
	EnvPrefix = "TELSTRA"

	configName = "telstra-numbers"
)

// ErrMissingCredentials is returned by Validate when no usable client credentials are set.
var ErrMissingCredentials = errors.New("client credentials are not configured; set TELSTRA_CLIENT_ID and TELSTRA_CLIENT_SECRET or add them to the config file")

// placeholderPrefixes mark credentials copied from a template but never filled in.
var placeholderPrefixes = []string{"YOUR_", "Add-your"}

// Config is immutable after Load and is passed explicitly to each client.
type Config struct {
	ClientID        string `mapstructure:"client_id"`
	ClientSecret    string `mapstructure:"client_secret"`
	TokenURL        string `mapstructure:"token_url"`
	BaseURL         string `mapstructure:"base_url"`
	Scope           string `mapstructure:"scope"`
	APIVersion      string `mapstructure:"api_version"`
	ContentLanguage string `mapstructure:"content_language"`

	FreeTrial      EndpointConfig `mapstructure:"free_trial"`
	VirtualNumbers EndpointConfig `mapstructure:"virtual_numbers"`

	Log LogConfig `mapstructure:"log"`

	// ConfigFile is the file that was read, empty when only defaults and env applied.
	ConfigFile string `mapstructure:"-"`
}

// EndpointConfig tunes one API endpoint.
type EndpointConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	ProtocolHeaders bool          `mapstructure:"protocol_headers"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads defaults, then the config file (explicit path or discovered),
// then TELSTRA_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Every key needs a default (even empty) so AutomaticEnv sees it on Unmarshal.
	v.SetDefault("client_id", "")
	v.SetDefault("client_secret", "")
	v.SetDefault("token_url", DefaultTokenURL)
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("scope", DefaultScope)
	v.SetDefault("api_version", DefaultAPIVersion)
	v.SetDefault("content_language", DefaultContentLanguage)

	v.SetDefault("free_trial.timeout", DefaultFreeTrialTimeout)
	v.SetDefault("free_trial.protocol_headers", true)
	v.SetDefault("virtual_numbers.timeout", DefaultVirtualNumbersTimeout)
	v.SetDefault("virtual_numbers.protocol_headers", false)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

// Validate checks that credentials are present and not template placeholders.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return ErrMissingCredentials
	}
	for _, p := range placeholderPrefixes {
		if strings.HasPrefix(c.ClientID, p) || strings.HasPrefix(c.ClientSecret, p) {
			return fmt.Errorf("%w (placeholder value %q found)", ErrMissingCredentials, p+"...")
		}
	}
	if c.TokenURL == "" || c.BaseURL == "" {
		return errors.New("token_url and base_url must not be empty")
	}
	return nil
}
