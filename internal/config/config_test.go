package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:              "8080",
		Env:               "development",
		JWTSecret:         "secure-secret-at-least-32-chars-long",
		DBDriver:          "postgres",
		DBPassword:        "secure-password",
		DBSSLMode:         "require",
		CacheBackend:      "redis",
		PostsPerPage:      10,
		IndexCacheSeconds: 20,
		LoginURL:          "/auth/login/",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(*Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Zero page size", func(c *Config) { c.PostsPerPage = 0 }, true},
		{"Negative cache window", func(c *Config) { c.IndexCacheSeconds = -1 }, true},
		{"Zero cache window disables caching", func(c *Config) { c.IndexCacheSeconds = 0 }, false},
		{"Unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"Unknown cache backend", func(c *Config) { c.CacheBackend = "memcached" }, true},
		{"Relative login URL", func(c *Config) { c.LoginURL = "auth/login/" }, true},
		{"Production with default secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = defaultJWTSecret
		}, true},
		{"Production with short secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"Production with default DB password", func(c *Config) {
			c.Env = "prod"
			c.DBPassword = "password"
		}, true},
		{"Production with disabled SSL", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "disable"
		}, true},
		{"Production on sqlite skips DB checks", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "sqlite"
			c.DBPassword = ""
			c.DBSSLMode = ""
		}, false},
		{"Production with strong settings", func(c *Config) { c.Env = "production" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_IndexCacheTTL(t *testing.T) {
	c := &Config{IndexCacheSeconds: 20}
	assert.Equal(t, 20*time.Second, c.IndexCacheTTL())
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: " Prod "}).IsProduction())
	assert.False(t, (&Config{Env: "test"}).IsProduction())
}

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, 10, c.PostsPerPage)
	assert.Equal(t, 20, c.IndexCacheSeconds)
	assert.Equal(t, "/auth/login/", c.LoginURL)
	assert.Equal(t, "/media/", c.MediaURL)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("APP_ENV", "development")
	t.Setenv("POSTS_PER_PAGE", "25")
	t.Setenv("MEDIA_URL", "/uploads")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 25, c.PostsPerPage)
	assert.Equal(t, "/uploads/", c.MediaURL)
}

func TestLoadConfig_TestProfile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	t.Setenv("APP_ENV", "test")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "memory", c.CacheBackend)
}
