// Command figgiesrv runs the Figgie round engine behind a JSON HTTP API.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/LSeaburg/FiggieServer/internal/clock"
	"github.com/LSeaburg/FiggieServer/internal/config"
	"github.com/LSeaburg/FiggieServer/internal/engine"
	"github.com/LSeaburg/FiggieServer/internal/events"
	"github.com/LSeaburg/FiggieServer/internal/httpapi"
	"github.com/LSeaburg/FiggieServer/internal/logging"
	"github.com/LSeaburg/FiggieServer/internal/store"
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "figgiesrv: %v\n", err)
		os.Exit(1)
	}

	backend := logging.New(os.Stdout, cfg.LogLevel)
	log := backend.Logger(logging.Startup)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Errorf("failed to open round history store: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	processor := events.NewProcessor(backend.Logger(logging.Events), 256, 4, db)
	processor.Start()
	defer processor.Stop()

	roundCfg := engine.RoundConfig{
		NumPlayers:      cfg.NumPlayers,
		Ante:            cfg.Ante,
		StartingBalance: cfg.StartingBalance,
		BonusPerCard:    cfg.BonusPerCard,
		TradingDuration: cfg.TradingDuration,
		Seed:            cfg.Seed,
	}
	if roundCfg.Seed == 0 {
		roundCfg.Seed = int64(os.Getpid()) ^ time.Now().UnixNano()
	}

	eng := engine.New(roundCfg, clock.NewReal(), processor, func() string { return uuid.NewString() })

	srv := httpapi.New(engineAdapter{eng}, db, backend.Logger(logging.HTTP))

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Infof("listening on %s (num_players=%d trading_duration=%s)", addr, cfg.NumPlayers, cfg.TradingDuration)
	if err := http.ListenAndServe(addr, srv); err != nil {
		log.Errorf("server exited: %v", err)
		os.Exit(1)
	}
}

// engineAdapter satisfies httpapi.RoundSource; kept separate from
// *engine.Engine so the HTTP layer only depends on the narrow interface it
// needs.
type engineAdapter struct {
	e *engine.Engine
}

func (a engineAdapter) Current() *engine.Round { return a.e.Current() }
