package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ACCOUNTS_API_BASE_URL", "")
	t.Setenv("SEARCH_THRESHOLD", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.Accounts.BaseURL)
	assert.Equal(t, 0.6, cfg.Search.Threshold)
	assert.Equal(t, 0, cfg.Search.Location)
	assert.Equal(t, 100, cfg.Search.Distance)
	assert.Equal(t, 32, cfg.Search.MaxPatternLength)
	assert.Equal(t, 1, cfg.Search.MinMatchCharLength)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 10*time.Second, cfg.Accounts.Timeout())
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	t.Setenv("SEARCH_THRESHOLD", "abc")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Accounts: AccountsConfig{BaseURL: "http://accounts.local"},
		Search:   SearchConfig{Threshold: 0.6, Distance: 100, MaxPatternLength: 32, MinMatchCharLength: 1},
	}

	cases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "relative base url", mutate: func(c *Config) { c.Accounts.BaseURL = "/web-api" }, wantErr: true},
		{name: "threshold above one", mutate: func(c *Config) { c.Search.Threshold = 1.5 }, wantErr: true},
		{name: "negative distance", mutate: func(c *Config) { c.Search.Distance = -1 }, wantErr: true},
		{name: "zero pattern length", mutate: func(c *Config) { c.Search.MaxPatternLength = 0 }, wantErr: true},
		{name: "zero min match", mutate: func(c *Config) { c.Search.MinMatchCharLength = 0 }, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDurationsTreatZeroAsUnbounded(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{}.RequestTimeout())
	assert.Equal(t, time.Duration(0), AccountsConfig{PatchTimeoutSeconds: -3}.PatchTimeout())
	assert.Equal(t, time.Hour, RedisConfig{SnapshotTTLSecs: 3600}.SnapshotTTL())
}
