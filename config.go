package softovault

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Hard-coded defaults, used when neither an option nor the environment
// supplies a value.
const (
	DefaultBaseURL  = "https://api.softovault.com/v1"
	DefaultTimeout  = 30 * time.Second
	DefaultRetries  = 3
	DefaultCacheTTL = 5 * time.Minute
)

// Env is a snapshot of the environment variables the client understands.
// Populate it with LoadEnv, or build it by hand in tests.
type Env struct {
	// Token is the primary credential variable.
	Token string `env:"SOFTOVAULT_TOKEN"`

	// APIKey is consulted when Token is empty.
	APIKey string `env:"SOFTOVAULT_API_KEY"`

	// BaseURL overrides DefaultBaseURL.
	BaseURL string `env:"SOFTOVAULT_URL"`
}

// LoadEnv reads the current process environment into an Env.
func LoadEnv() (Env, error) {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}

// Config is the resolved, immutable client configuration.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	Retries      int
	CacheEnabled bool
	CacheTTL     time.Duration
	Token        string
}

// ValidateToken reports whether token is usable as an access token.
func ValidateToken(token string) bool {
	return strings.TrimSpace(token) != ""
}

// ResolveConfig merges the explicit token and options with the environment
// snapshot and the hard-coded defaults, in that order of precedence.
func ResolveConfig(token string, opts []Option, env Env) (Config, error) {
	options := defaultOptions()
	applyOptions(options, opts)
	return resolveConfig(token, options, env)
}

func resolveConfig(token string, options *clientOptions, env Env) (Config, error) {
	cfg := Config{
		BaseURL:      DefaultBaseURL,
		Timeout:      DefaultTimeout,
		Retries:      DefaultRetries,
		CacheEnabled: true,
		CacheTTL:     DefaultCacheTTL,
	}

	switch {
	case ValidateToken(token):
		cfg.Token = token
	case ValidateToken(env.Token):
		cfg.Token = env.Token
	case ValidateToken(env.APIKey):
		cfg.Token = env.APIKey
	default:
		return Config{}, &Error{
			Kind: KindInvalidConfig,
			Op:   "New",
			Err:  fmt.Errorf("%w: pass one explicitly or set SOFTOVAULT_TOKEN or SOFTOVAULT_API_KEY", ErrMissingToken),
		}
	}

	switch {
	case options.baseURL != nil:
		cfg.BaseURL = *options.baseURL
	case env.BaseURL != "":
		cfg.BaseURL = env.BaseURL
	}
	if options.timeout != nil {
		cfg.Timeout = *options.timeout
	}
	if options.retries != nil {
		cfg.Retries = *options.retries
	}
	if options.cacheEnabled != nil {
		cfg.CacheEnabled = *options.cacheEnabled
	}
	if options.cacheTTL != nil {
		cfg.CacheTTL = *options.cacheTTL
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	var problem string
	switch {
	case strings.TrimSpace(c.BaseURL) == "":
		problem = "base URL cannot be empty"
	case c.Timeout <= 0:
		problem = "timeout must be positive"
	case c.Retries < 0:
		problem = "retries cannot be negative"
	case c.CacheEnabled && c.CacheTTL <= 0:
		problem = "cache TTL must be positive"
	default:
		return nil
	}

	return &Error{
		Kind: KindInvalidConfig,
		Op:   "New",
		Err:  fmt.Errorf("%w: %s", ErrInvalidConfig, problem),
	}
}
