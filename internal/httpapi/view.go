package httpapi

import (
	"errors"

	"github.com/LSeaburg/FiggieServer/internal/engine"
)

var errUnknownSide = errors.New("httpapi: side must be \"buy\" or \"sell\"")

// quoteView is the JSON shape of a market quote's resting side.
type quoteView struct {
	PlayerId engine.PlayerId `json:"player_id"`
	Price    int64           `json:"price"`
}

// stateView is the JSON shape returned by GET /state, matching the
// documented response fields exactly.
type stateView struct {
	State    engine.Phase                           `json:"state"`
	TimeLeft *int                                   `json:"time_left"`
	Pot      int64                                  `json:"pot"`
	Hand     map[engine.Suit]int                    `json:"hand"`
	Market   map[engine.Suit]marketView              `json:"market"`
	Balances map[engine.PlayerId]int64               `json:"balances"`
	Trades   []*engine.Trade                         `json:"trades"`
	Results  *resultsView                            `json:"results,omitempty"`
	Hands    map[engine.PlayerId]map[engine.Suit]int `json:"hands,omitempty"`
	Initial  map[engine.PlayerId]int64                `json:"initial_balances,omitempty"`
}

type marketView struct {
	HighestBid *quoteView `json:"highest_bid"`
	LowestAsk  *quoteView `json:"lowest_ask"`
}

type resultsView struct {
	GoalSuit  engine.Suit                 `json:"goal_suit"`
	Counts    map[engine.PlayerId]int     `json:"counts"`
	Bonuses   map[engine.PlayerId]int64   `json:"bonuses"`
	Winners   []engine.PlayerId           `json:"winners"`
	ShareEach int64                       `json:"share_each"`
}

func snapshotView(s *engine.Snapshot) stateView {
	market := make(map[engine.Suit]marketView, len(s.Market))
	for _, q := range s.Market {
		mv := marketView{}
		if q.HighestBid != nil {
			mv.HighestBid = &quoteView{PlayerId: q.HighestBid.PlayerId, Price: q.HighestBid.Price}
		}
		if q.LowestAsk != nil {
			mv.LowestAsk = &quoteView{PlayerId: q.LowestAsk.PlayerId, Price: q.LowestAsk.Price}
		}
		market[q.Suit] = mv
	}

	v := stateView{
		State:    s.Phase,
		TimeLeft: s.TimeLeft,
		Pot:      s.Pot,
		Hand:     s.Hand,
		Market:   market,
		Balances: s.Balances,
		Trades:   s.Trades,
		Hands:    s.Hands,
		Initial:  s.InitialBalances,
	}
	if s.Results != nil {
		v.Results = &resultsView{
			GoalSuit:  s.Results.GoalSuit,
			Counts:    s.Results.Counts,
			Bonuses:   s.Results.Bonuses,
			Winners:   s.Results.Winners,
			ShareEach: s.Results.ShareEach,
		}
	}
	return v
}
