// Package config loads FiggieServer's settings from environment variables,
// with flag overrides layered on top in the same style as the reference
// server's POKER_SEED handling: env vars set the defaults flag.Parse can
// then override.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every externally tunable setting for one server process.
type Config struct {
	Port            int
	NumPlayers      int
	TradingDuration time.Duration
	Ante            int64
	StartingBalance int64
	BonusPerCard    int64
	DBPath          string
	LogLevel        string
	Seed            int64
}

// Load builds a Config from the environment, then applies flag.Parse on top
// so command-line flags win when both are set. fs is usually flag.CommandLine;
// tests pass a scratch FlagSet to avoid polluting global flag state.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		Port:            envInt("PORT", 5000),
		NumPlayers:      envInt("NUM_PLAYERS", 4),
		TradingDuration: time.Duration(envInt("TRADING_DURATION", 240)) * time.Second,
		Ante:            envInt64("FIGGIE_ANTE", 50),
		StartingBalance: envInt64("FIGGIE_STARTING_BALANCE", 350),
		BonusPerCard:    envInt64("FIGGIE_BONUS_PER_CARD", 10),
		DBPath:          os.Getenv("FIGGIE_DB_PATH"),
		LogLevel:        envString("FIGGIE_LOG_LEVEL", "info"),
		Seed:            envInt64("FIGGIE_SEED", 0),
	}

	fs.IntVar(&cfg.Port, "port", cfg.Port, "port to listen on")
	fs.IntVar(&cfg.NumPlayers, "num-players", cfg.NumPlayers, "players per round (4 or 5)")
	var durationSeconds int
	fs.IntVar(&durationSeconds, "trading-duration", int(cfg.TradingDuration/time.Second), "trading phase duration in seconds")
	fs.Int64Var(&cfg.Ante, "ante", cfg.Ante, "per-player ante deducted at deal time")
	fs.Int64Var(&cfg.StartingBalance, "starting-balance", cfg.StartingBalance, "balance each player starts a round with")
	fs.Int64Var(&cfg.BonusPerCard, "bonus-per-card", cfg.BonusPerCard, "bonus paid from the pot per goal-suit card held at settlement")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite round-history database (empty for in-memory)")
	fs.StringVar(&cfg.LogLevel, "debuglevel", cfg.LogLevel, "logging level: trace, debug, info, warn, error")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "deterministic RNG seed for deals (0 = random)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.TradingDuration = time.Duration(durationSeconds) * time.Second

	if cfg.NumPlayers != 4 && cfg.NumPlayers != 5 {
		return Config{}, fmt.Errorf("config: num-players must be 4 or 5, got %d", cfg.NumPlayers)
	}
	if cfg.TradingDuration <= 0 {
		return Config{}, fmt.Errorf("config: trading-duration must be positive")
	}
	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
