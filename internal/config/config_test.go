package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Env:             "development",
		Port:            "8375",
		JWTSecret:       "secure-secret-at-least-32-chars-long",
		DBDriver:        "postgres",
		DBPassword:      "secure-password",
		DBSSLMode:       "disable",
		RedisURL:        "localhost:6379",
		FeedPageSize:    3,
		GuestFeedPolicy: "all",
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Zero page size", func(c *Config) { c.FeedPageSize = 0 }, true},
		{"Oversized page size", func(c *Config) { c.FeedPageSize = 101 }, true},
		{"Curated guest policy", func(c *Config) { c.GuestFeedPolicy = "curated" }, false},
		{"Unknown guest policy", func(c *Config) { c.GuestFeedPolicy = "random" }, true},
		{"Sqlite driver in development", func(c *Config) { c.DBDriver = "sqlite" }, false},
		{"Unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
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

func TestConfig_ValidateProduction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid production config", func(c *Config) {}, false},
		{"Default JWT secret", func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" }, true},
		{"Short JWT secret", func(c *Config) { c.JWTSecret = "short" }, true},
		{"Default DB password", func(c *Config) { c.DBPassword = "password" }, true},
		{"Empty DB password", func(c *Config) { c.DBPassword = "" }, true},
		{"Sqlite driver rejected", func(c *Config) { c.DBDriver = "sqlite" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = "production"
			c.DBSSLMode = "require"
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
