package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadEnv(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	err := loadEnv(&cfg, lookupFrom(map[string]string{
		"PREPADMIN_API_BASE_URL":    "http://env/api/v1",
		"PREPADMIN_TOKEN_STORE":     "memory",
		"PREPADMIN_REQUEST_TIMEOUT": "45s",
		"PREPADMIN_REDIS_DB":        "3",
		"PREPADMIN_LOG_LEVEL":       "",
		"PREPADMIN_DEV_ADDR":        "127.0.0.1:9000",
		"PREPADMIN_DEV_ADMIN_EMAIL": "ops@example.com",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://env/api/v1", cfg.APIBaseURL)
	assert.Equal(t, TokenStoreMemory, cfg.TokenStore)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "info", cfg.LogLevel, "empty values are ignored")
	assert.Equal(t, "127.0.0.1:9000", cfg.DevServerAddr)
	assert.Equal(t, "ops@example.com", cfg.DevAdminEmail)
	assert.Equal(t, "admin", cfg.DevAdminPassword)
}

func TestLoadEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "timeout", env: map[string]string{"PREPADMIN_REQUEST_TIMEOUT": "ten"}},
		{name: "redis db", env: map[string]string{"PREPADMIN_REDIS_DB": "first"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			require.Error(t, loadEnv(&cfg, lookupFrom(tt.env)))
		})
	}
}
