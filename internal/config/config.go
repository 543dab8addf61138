// Package config loads lrctool settings from defaults, an optional YAML
// config file, a .env file and the environment, in increasing precedence.
// Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "LRCTOOL"
	configName     = "lrctool"
	defaultEnvFile = ".env"

	DefaultProvider    = "gemini"
	DefaultConcurrency = 3
	DefaultBatchSize   = 50
)

// Config is the fully resolved configuration.
type Config struct {
	Verbose   bool            `mapstructure:"verbose"`
	Translate TranslateConfig `mapstructure:"translate"`

	GeminiAPIKey    string `mapstructure:"gemini_api_key"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`
}

// TranslateConfig holds the optional translation step settings.
type TranslateConfig struct {
	Provider      string `mapstructure:"provider" validate:"oneof=gemini openai anthropic"`
	Model         string `mapstructure:"model"`
	Concurrency   int    `mapstructure:"concurrency" validate:"min=1"`
	BatchSize     int    `mapstructure:"batch_size" validate:"min=1"`
	InputLanguage string `mapstructure:"input_language"`
	Prompt        string `mapstructure:"prompt"`
}

type loaderConfig struct {
	configFile  string
	envFile     string
	searchPaths []string
}

// Option customizes Load.
type Option func(*loaderConfig)

// WithConfigFile loads an explicit config file. A missing explicit file is
// an error, unlike the searched locations.
func WithConfigFile(path string) Option {
	return func(lc *loaderConfig) { lc.configFile = path }
}

// WithEnvFile loads an explicit .env file instead of ./.env.
func WithEnvFile(path string) Option {
	return func(lc *loaderConfig) { lc.envFile = path }
}

// WithSearchPaths replaces the directories searched for lrctool.yaml.
func WithSearchPaths(dirs ...string) Option {
	return func(lc *loaderConfig) { lc.searchPaths = dirs }
}

func defaultSearchPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", configName))
	}
	return paths
}

// Default returns the built-in settings without consulting any file or the
// environment.
func Default() *Config {
	return &Config{
		Translate: TranslateConfig{
			Provider:    DefaultProvider,
			Concurrency: DefaultConcurrency,
			BatchSize:   DefaultBatchSize,
		},
	}
}

// Load resolves the configuration. The result is not validated; call
// Validate once flag overrides have been applied.
func Load(opts ...Option) (*Config, error) {
	lc := loaderConfig{searchPaths: defaultSearchPaths()}
	for _, opt := range opts {
		opt(&lc)
	}

	if err := loadEnvFile(lc.envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindProviderKeys(v)

	if err := readConfigFile(v, lc); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("translate.provider", DefaultProvider)
	v.SetDefault("translate.model", "")
	v.SetDefault("translate.concurrency", DefaultConcurrency)
	v.SetDefault("translate.batch_size", DefaultBatchSize)
	v.SetDefault("translate.input_language", "")
	v.SetDefault("translate.prompt", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("openai_api_key", "")
	v.SetDefault("anthropic_api_key", "")
}

// provider SDKs document bare variable names, accept both forms
func bindProviderKeys(v *viper.Viper) {
	for _, key := range []string{"gemini_api_key", "openai_api_key", "anthropic_api_key"} {
		upper := strings.ToUpper(key)
		_ = v.BindEnv(key, envPrefix+"_"+upper, upper)
	}
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	// existing environment variables win over the file
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func readConfigFile(v *viper.Viper, lc loaderConfig) error {
	if lc.configFile != "" {
		v.SetConfigFile(lc.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", lc.configFile, err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	for _, dir := range lc.searchPaths {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the translation settings.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		messages = append(messages, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	field := fieldKey(fe.Namespace())
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got: %v)", field, fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s (got: %v)", field, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// Config.Translate.BatchSize -> translate.batch_size
func fieldKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = toSnakeCase(p)
	}
	return strings.Join(parts, ".")
}

func toSnakeCase(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// APIKey returns the configured key for a translation provider.
func (c *Config) APIKey(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return c.GeminiAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	default:
		return ""
	}
}
