// Package httpapi is the thin JSON surface over a round: POST /join,
// GET /state, POST /action, plus GET /health and GET /history/{round_id}.
// Routing uses the standard library's method+pattern ServeMux introduced in
// Go 1.22 rather than a router framework, in keeping with the reference
// gateway's plain net/http style.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/decred/slog"

	"github.com/LSeaburg/FiggieServer/internal/engine"
	"github.com/LSeaburg/FiggieServer/internal/store"
)

// RoundSource provides the round a request is acting against. In practice
// this is an *engine.Engine, declared as an interface here so handler tests
// can substitute a single pre-built Round.
type RoundSource interface {
	Current() *engine.Round
}

// HistorySource retrieves a settled round's archived record.
type HistorySource interface {
	RoundByID(roundID string) (*store.RoundRecord, bool, error)
}

// Server wires the HTTP surface to an engine and a history store.
type Server struct {
	rounds  RoundSource
	history HistorySource
	log     slog.Logger
	mux     *http.ServeMux
}

// New builds a Server and registers its routes.
func New(rounds RoundSource, history HistorySource, log slog.Logger) *Server {
	s := &Server{rounds: rounds, history: history, log: log, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /join", s.handleJoin)
	s.mux.HandleFunc("GET /state", s.handleState)
	s.mux.HandleFunc("POST /action", s.handleAction)
	s.mux.HandleFunc("GET /history/{round_id}", s.handleHistory)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type joinRequest struct {
	Name string `json:"name"`
}

type joinResponse struct {
	PlayerId engine.PlayerId `json:"player_id"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "malformed request body")
		return
	}
	if req.Name == "" {
		writeError(w, "name is required")
		return
	}

	round := s.rounds.Current()
	p, err := round.Join(req.Name)
	if err != nil {
		s.log.Debugf("join rejected: %v", err)
		writeError(w, errMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, joinResponse{PlayerId: p.ID})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	playerID := engine.PlayerId(r.URL.Query().Get("player_id"))
	if playerID == "" {
		writeError(w, "player_id is required")
		return
	}

	round := s.rounds.Current()
	snap, err := round.StateFor(playerID)
	if err != nil {
		writeError(w, errMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, snapshotView(snap))
}

// actionRequest covers both order submission and cancel, distinguished by
// the action field. A cancel without order_type targets both sides.
type actionRequest struct {
	PlayerId  engine.PlayerId `json:"player_id"`
	Action    string          `json:"action"` // "order" or "cancel"
	Side      string          `json:"side,omitempty"`
	Suit      string          `json:"suit"`
	Price     int64           `json:"price"`
	OrderType string          `json:"order_type,omitempty"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "malformed request body")
		return
	}
	if req.PlayerId == "" {
		writeError(w, "player_id is required")
		return
	}

	round := s.rounds.Current()

	switch req.Action {
	case "order":
		s.handleOrder(w, round, req)
	case "cancel":
		s.handleCancel(w, round, req)
	default:
		writeError(w, "unknown action")
	}
}

func (s *Server) handleOrder(w http.ResponseWriter, round *engine.Round, req actionRequest) {
	suit, err := engine.ParseSuit(req.Suit)
	if err != nil {
		writeError(w, err.Error())
		return
	}
	side, err := parseSide(req.Side)
	if err != nil {
		writeError(w, err.Error())
		return
	}

	order, trade, err := round.SubmitOrder(req.PlayerId, side, suit, req.Price)
	if err != nil {
		writeError(w, errMessage(err))
		return
	}
	if trade != nil {
		writeJSON(w, http.StatusOK, map[string]*engine.Trade{"trade": trade})
		return
	}
	writeJSON(w, http.StatusOK, map[string]engine.OrderId{"order_id": order.OrderId})
}

func (s *Server) handleCancel(w http.ResponseWriter, round *engine.Round, req actionRequest) {
	var orderType engine.OrderType
	switch req.OrderType {
	case "buy":
		orderType = engine.CancelBuy
	case "sell":
		orderType = engine.CancelSell
	case "both", "":
		orderType = engine.CancelBoth
	default:
		writeError(w, "unknown order_type")
		return
	}

	var suitSel engine.SuitSelector
	if req.Suit == "all" || req.Suit == "" {
		suitSel = engine.AllSuits
	} else {
		suit, err := engine.ParseSuit(req.Suit)
		if err != nil {
			writeError(w, err.Error())
			return
		}
		suitSel = engine.SuitSelector(suit)
	}

	canceled, err := round.Cancel(req.PlayerId, engine.CancelSelector{OrderType: orderType, Suit: suitSel, Price: req.Price})
	if err != nil {
		writeError(w, errMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string][]engine.Suit{"canceled": canceled})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	roundID := r.PathValue("round_id")
	rec, ok, err := s.history.RoundByID(roundID)
	if err != nil {
		s.log.Errorf("history lookup failed for %s: %v", roundID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "round not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func parseSide(s string) (engine.Side, error) {
	switch engine.Side(s) {
	case engine.Buy, engine.Sell:
		return engine.Side(s), nil
	default:
		return "", errUnknownSide
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

// errMessage maps an engine error to the client-facing message text used by
// the reference scenarios ("would strike with self", "not improving", ...).
func errMessage(err error) string {
	switch err {
	case engine.ErrSelfCross:
		return "would strike with self"
	case engine.ErrNotImproving:
		return "not improving"
	case engine.ErrDuplicateOrder:
		return "duplicate resting order"
	case engine.ErrInsufficientFunds:
		return "insufficient funds"
	case engine.ErrNoHoldings:
		return "insufficient holdings"
	case engine.ErrWrongPhase:
		return "action not valid in current phase"
	case engine.ErrUnknownPlayer:
		return "unknown player"
	case engine.ErrUnknownOrder:
		return "no matching resting order"
	case engine.ErrRoundFull:
		return "lobby full"
	default:
		return err.Error()
	}
}
