// Package store persists completed rounds to SQLite for later retrieval
// through GET /history/{round_id}. Live round state is never written here:
// an in-progress round lives entirely in memory, under the round's own
// lock, and only its settlement is archived once it finishes.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/LSeaburg/FiggieServer/internal/engine"
)

// Store wraps a SQLite connection holding the round history archive.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) the schema at path and returns a Store backed by
// it. An empty path opens an in-memory database, useful for tests.
func Open(path string) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			goal_suit TEXT NOT NULL,
			deal_fingerprint TEXT NOT NULL,
			pot INTEGER NOT NULL,
			payouts_json TEXT NOT NULL,
			pot_winners_json TEXT NOT NULL,
			completed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("store: create rounds table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS round_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			player_id TEXT,
			suit TEXT,
			price INTEGER,
			reason TEXT,
			recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("store: create round_events table: %w", err)
	}
	return nil
}

// RoundRecord is the archived result of one completed round.
type RoundRecord struct {
	RoundID         string
	GoalSuit        engine.Suit
	DealFingerprint string
	Pot             int64
	Payouts         map[engine.PlayerId]int64
	PotWinners      []engine.PlayerId
}

// SaveRound upserts the settlement for a completed round.
func (s *Store) SaveRound(rec RoundRecord) error {
	payoutsJSON, err := json.Marshal(rec.Payouts)
	if err != nil {
		return fmt.Errorf("store: marshal payouts: %w", err)
	}
	winnersJSON, err := json.Marshal(rec.PotWinners)
	if err != nil {
		return fmt.Errorf("store: marshal pot winners: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO rounds (id, goal_suit, deal_fingerprint, pot, payouts_json, pot_winners_json)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			goal_suit=excluded.goal_suit,
			deal_fingerprint=excluded.deal_fingerprint,
			pot=excluded.pot,
			payouts_json=excluded.payouts_json,
			pot_winners_json=excluded.pot_winners_json
	`, rec.RoundID, string(rec.GoalSuit), rec.DealFingerprint, rec.Pot, string(payoutsJSON), string(winnersJSON))
	if err != nil {
		return fmt.Errorf("store: save round %s: %w", rec.RoundID, err)
	}
	return nil
}

// RoundByID retrieves a previously archived round, or (nil, false) if no
// round with that ID was ever settled.
func (s *Store) RoundByID(roundID string) (*RoundRecord, bool, error) {
	row := s.db.QueryRow(`
		SELECT id, goal_suit, deal_fingerprint, pot, payouts_json, pot_winners_json
		FROM rounds WHERE id = ?
	`, roundID)

	var rec RoundRecord
	var goalSuit, payoutsJSON, winnersJSON string
	if err := row.Scan(&rec.RoundID, &goalSuit, &rec.DealFingerprint, &rec.Pot, &payoutsJSON, &winnersJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store: query round %s: %w", roundID, err)
	}
	rec.GoalSuit = engine.Suit(goalSuit)
	if err := json.Unmarshal([]byte(payoutsJSON), &rec.Payouts); err != nil {
		return nil, false, fmt.Errorf("store: unmarshal payouts: %w", err)
	}
	if err := json.Unmarshal([]byte(winnersJSON), &rec.PotWinners); err != nil {
		return nil, false, fmt.Errorf("store: unmarshal pot winners: %w", err)
	}
	return &rec, true, nil
}

// LogEvent appends a raw engine event to the round's event trail, used for
// diagnostics. Only the event's type, player, suit, price and reason are
// recorded; trade counterparties, dealt hands and settlement details are not
// stored in this table.
func (s *Store) LogEvent(e engine.Event) error {
	_, err := s.db.Exec(`
		INSERT INTO round_events (round_id, event_type, player_id, suit, price, reason)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.RoundID, string(e.Type), string(e.Player), string(e.Suit), e.Price, e.Reason)
	if err != nil {
		return fmt.Errorf("store: log event: %w", err)
	}
	return nil
}

// HandleEvent implements events.Handler: persistence of round_completed
// settlements and an append-only log of every event, round_completed
// included.
func (s *Store) HandleEvent(e engine.Event) {
	if e.Type == engine.EventRoundCompleted && e.Settled != nil {
		rec := RoundRecord{
			RoundID:         e.RoundID,
			GoalSuit:        e.Settled.GoalSuit,
			DealFingerprint: e.DealFP,
			Pot:             e.Settled.PotShare*int64(len(e.Settled.PotWinners)) + e.Settled.PotResidual,
			Payouts:         e.Settled.Payouts,
			PotWinners:      e.Settled.PotWinners,
		}
		_ = s.SaveRound(rec)
	}
	_ = s.LogEvent(e)
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
