package engine

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LSeaburg/FiggieServer/internal/clock"
)

func TestEngineStartsFreshRoundAfterCompletion(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))
	n := 0
	nextID := func() string { n++; return "round-" + strconv.Itoa(n) }

	e := New(testConfig(), c, nil, nextID)
	first := e.Current()
	assert.Equal(t, "round-1", first.id)

	for _, name := range []string{"A", "B", "C", "D"} {
		_, err := first.Join(name)
		require.NoError(t, err)
	}
	c.Advance(testConfig().TradingDuration)
	assert.Equal(t, PhaseCompleted, first.CurrentPhase())

	second := e.Current()
	assert.Equal(t, "round-2", second.id)
	assert.Equal(t, PhaseWaiting, second.CurrentPhase())
}

func TestEngineRoundByID(t *testing.T) {
	c := clock.NewManual(time.Unix(0, 0))
	n := 0
	nextID := func() string { n++; return "round-" + strconv.Itoa(n) }
	e := New(testConfig(), c, nil, nextID)

	r, ok := e.RoundByID("round-1")
	require.True(t, ok)
	assert.Same(t, e.Current(), r)

	_, ok = e.RoundByID("does-not-exist")
	assert.False(t, ok)
}
