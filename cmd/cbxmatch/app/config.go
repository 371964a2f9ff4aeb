package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/cbxmatch/cmd/application"
	"github.com/agentstation/cbxmatch/pkg/constants"
	"github.com/agentstation/cbxmatch/pkg/errors"
)

// Config holds the application configuration loaded from the config file,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Matching and input settings
	Settings application.Settings

	// Logging configuration. LogLevel is set by --log-level; EnvLogLevel
	// comes from the environment and only applies when no flag sets a level.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// Configuration keys. Environment variables are the upper-cased keys
// prefixed with CBXMATCH_, e.g. CBXMATCH_MIN_COMPANY_MATCH_RATIO.
const (
	keyConfig           = "config"
	keyCompanyRatio     = "min_company_match_ratio"
	keyAddressRatio     = "min_address_match_ratio"
	keyListSeparator    = "list_separator"
	keyGenericDomains   = "additional_generic_domains"
	keyGenericNameWords = "additional_generic_name_words"
	keyEncoding         = "cbx_encoding"
	keyWorkers          = "workers"
	keyIgnoreWarnings   = "ignore_warnings"
	keyFormat           = "format"
	keyVerbose          = "verbose"
	keyQuiet            = "quiet"
	keyNoColor          = "no_color"
	keyLogLevel         = "log_level"
	keyLogFormat        = "log_format"
	keyLogOutput        = "log_output"
)

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (configFile, or ~/.cbxmatch.yaml and ./.cbxmatch.yaml)
// 5. Defaults
//
// A missing default config file is not an error; an explicit one must exist.
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	// Logging also follows the LOG_* variables read by pkg/logging.
	for _, key := range []string{keyLogLevel, keyLogFormat, keyLogOutput} {
		env := strings.ToUpper(key)
		_ = v.BindEnv(key, constants.EnvPrefix+"_"+env, env)
	}

	if configFile == "" {
		configFile = v.GetString(keyConfig)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "failed to read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "failed to read config file", err)
			}
		}
	}

	sep := v.GetString(keyListSeparator)
	config := &Config{
		Verbose: v.GetBool(keyVerbose),
		Quiet:   v.GetBool(keyQuiet),
		NoColor: v.GetBool(keyNoColor),
		Format:  v.GetString(keyFormat),

		ConfigFile: v.ConfigFileUsed(),

		Settings: application.Settings{
			CompanyThreshold: v.GetInt(keyCompanyRatio),
			AddressThreshold: v.GetInt(keyAddressRatio),
			ListSeparator:    sep,
			GenericDomains:   list(v, keyGenericDomains, sep),
			GenericNameWords: list(v, keyGenericNameWords, sep),
			RegistryEncoding: v.GetString(keyEncoding),
			Workers:          v.GetInt(keyWorkers),
			IgnoreWarnings:   v.GetBool(keyIgnoreWarnings),
		},

		EnvLogLevel: v.GetString(keyLogLevel),
		LogFormat:   v.GetString(keyLogFormat),
		LogOutput:   v.GetString(keyLogOutput),
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyCompanyRatio, constants.DefaultCompanyThreshold)
	v.SetDefault(keyAddressRatio, constants.DefaultAddressThreshold)
	v.SetDefault(keyListSeparator, constants.DefaultListSeparator)
	v.SetDefault(keyWorkers, 1)
	v.SetDefault(keyLogFormat, "auto")
	v.SetDefault(keyLogOutput, "stderr")
}

// list reads a list setting. YAML lists are used as is; strings, as found
// in the environment, are split on sep.
func list(v *viper.Viper, key, sep string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		parts := []string{item}
		if sep != "" {
			parts = strings.Split(item, sep)
		}
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env, and neither overrides the real environment.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
