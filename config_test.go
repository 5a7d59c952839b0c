package softovault

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfig(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		opts    []Option
		env     Env
		want    Config
		wantErr error
	}{
		{
			name:  "defaults",
			token: "tok",
			want: Config{
				BaseURL:      DefaultBaseURL,
				Timeout:      DefaultTimeout,
				Retries:      DefaultRetries,
				CacheEnabled: true,
				CacheTTL:     DefaultCacheTTL,
				Token:        "tok",
			},
		},
		{
			name:  "explicit token beats environment",
			token: "explicit",
			env:   Env{Token: "env-a", APIKey: "env-b"},
			want: Config{
				BaseURL: DefaultBaseURL, Timeout: DefaultTimeout, Retries: DefaultRetries,
				CacheEnabled: true, CacheTTL: DefaultCacheTTL, Token: "explicit",
			},
		},
		{
			name: "first environment variable beats second",
			env:  Env{Token: "env-a", APIKey: "env-b"},
			want: Config{
				BaseURL: DefaultBaseURL, Timeout: DefaultTimeout, Retries: DefaultRetries,
				CacheEnabled: true, CacheTTL: DefaultCacheTTL, Token: "env-a",
			},
		},
		{
			name: "second environment variable",
			env:  Env{APIKey: "env-b"},
			want: Config{
				BaseURL: DefaultBaseURL, Timeout: DefaultTimeout, Retries: DefaultRetries,
				CacheEnabled: true, CacheTTL: DefaultCacheTTL, Token: "env-b",
			},
		},
		{
			name:  "base URL from environment",
			token: "tok",
			env:   Env{BaseURL: "https://env.example"},
			want: Config{
				BaseURL: "https://env.example", Timeout: DefaultTimeout, Retries: DefaultRetries,
				CacheEnabled: true, CacheTTL: DefaultCacheTTL, Token: "tok",
			},
		},
		{
			name:  "explicit base URL beats environment",
			token: "tok",
			opts:  []Option{WithBaseURL("https://explicit.example")},
			env:   Env{BaseURL: "https://env.example"},
			want: Config{
				BaseURL: "https://explicit.example", Timeout: DefaultTimeout, Retries: DefaultRetries,
				CacheEnabled: true, CacheTTL: DefaultCacheTTL, Token: "tok",
			},
		},
		{
			name:  "all overrides",
			token: "tok",
			opts: []Option{
				WithTimeout(5 * time.Second),
				WithRetries(0),
				WithCache(false),
				WithCacheTTL(time.Hour),
			},
			want: Config{
				BaseURL: DefaultBaseURL, Timeout: 5 * time.Second, Retries: 0,
				CacheEnabled: false, CacheTTL: time.Hour, Token: "tok",
			},
		},
		{
			name:    "missing token",
			env:     Env{BaseURL: "https://env.example"},
			wantErr: ErrMissingToken,
		},
		{
			name:    "negative retries",
			token:   "tok",
			opts:    []Option{WithRetries(-1)},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "zero cache TTL with cache enabled",
			token:   "tok",
			opts:    []Option{WithCacheTTL(0)},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "empty base URL",
			token:   "tok",
			opts:    []Option{WithBaseURL("")},
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveConfig(tt.token, tt.opts, tt.env)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZeroCacheTTLAllowedWhenDisabled(t *testing.T) {
	cfg, err := ResolveConfig("tok", []Option{WithCache(false), WithCacheTTL(0)}, Env{})
	require.NoError(t, err)
	assert.False(t, cfg.CacheEnabled)
}

func TestValidateToken(t *testing.T) {
	assert.True(t, ValidateToken("abc"))
	assert.False(t, ValidateToken(""))
	assert.False(t, ValidateToken(" \t\n"))
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SOFTOVAULT_TOKEN", "a")
	t.Setenv("SOFTOVAULT_API_KEY", "b")
	t.Setenv("SOFTOVAULT_URL", "https://vault.internal")

	env, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, Env{Token: "a", APIKey: "b", BaseURL: "https://vault.internal"}, env)
}
