package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, time.Hour, cfg.AlertSweepInterval)
	assert.Equal(t, 30*24*time.Hour, cfg.ExpiryWindow())
	assert.True(t, decimal.RequireFromString("0.10").Equal(cfg.LowStockThreshold()))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("EXPIRY_WARNING_DAYS", "14")
	t.Setenv("LOW_STOCK_RATIO", "0.25")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 14*24*time.Hour, cfg.ExpiryWindow())
	assert.True(t, decimal.RequireFromString("0.25").Equal(cfg.LowStockThreshold()))
}

func TestLowStockThreshold_FallsBackOnGarbage(t *testing.T) {
	cfg := &Config{LowStockRatio: "ten percent"}
	assert.True(t, decimal.NewFromFloat(0.10).Equal(cfg.LowStockThreshold()))
}
