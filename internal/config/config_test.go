package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, nil)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 4, cfg.NumPlayers)
	assert.Equal(t, 240*time.Second, cfg.TradingDuration)
	assert.Equal(t, int64(50), cfg.Ante)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PORT", "6000")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"-port", "7000"})
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
}

func TestLoadEnvUsedWhenNoFlag(t *testing.T) {
	t.Setenv("NUM_PLAYERS", "5")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.NumPlayers)
}

func TestLoadRejectsInvalidNumPlayers(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	_, err := Load(fs, []string{"-num-players", "3"})
	assert.Error(t, err)
}
