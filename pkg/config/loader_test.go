package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port    int      `env:"TEST_LOADER_PORT" envDefault:"8080"`
	Name    string   `env:"TEST_LOADER_NAME" envDefault:"storefront"`
	Brokers []string `env:"TEST_LOADER_BROKERS" envDefault:"a:1,b:2" envSeparator:","`
	Verbose bool     `env:"TEST_LOADER_VERBOSE" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	cfg := &testConfig{}
	require.NoError(t, Load(cfg))
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "storefront", cfg.Name)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.Brokers)
	assert.False(t, cfg.Verbose)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_LOADER_PORT", "9191")
	t.Setenv("TEST_LOADER_VERBOSE", "true")

	cfg := &testConfig{}
	require.NoError(t, Load(cfg))
	assert.Equal(t, 9191, cfg.Port)
	assert.True(t, cfg.Verbose)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("TEST_LOADER_PORT", "not-a-number")

	cfg := &testConfig{}
	err := Load(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
