package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	BaseURL string `env:"SAMPLE_BASE_URL" envDefault:"http://127.0.0.1:8000"`
	Retries int    `env:"SAMPLE_RETRIES" envDefault:"3"`
	Debug   bool   `env:"SAMPLE_DEBUG" envDefault:"false"`
}

func TestLoad_AppliesDefaults(t *testing.T) {
	var cfg sampleConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "http://127.0.0.1:8000", cfg.BaseURL)
	assert.Equal(t, 3, cfg.Retries)
	assert.False(t, cfg.Debug)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("SAMPLE_BASE_URL", "https://pedidos.saborreal.mx")
	t.Setenv("SAMPLE_RETRIES", "5")
	t.Setenv("SAMPLE_DEBUG", "true")

	var cfg sampleConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "https://pedidos.saborreal.mx", cfg.BaseURL)
	assert.Equal(t, 5, cfg.Retries)
	assert.True(t, cfg.Debug)
}

func TestLoad_TypeMismatch(t *testing.T) {
	t.Setenv("SAMPLE_RETRIES", "many")

	var cfg sampleConfig
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
