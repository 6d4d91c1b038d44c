package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuitCompanion(t *testing.T) {
	assert.Equal(t, Clubs, Spades.Companion())
	assert.Equal(t, Spades, Clubs.Companion())
	assert.Equal(t, Diamonds, Hearts.Companion())
	assert.Equal(t, Hearts, Diamonds.Companion())
}

func TestParseSuit(t *testing.T) {
	s, err := ParseSuit("hearts")
	require.NoError(t, err)
	assert.Equal(t, Hearts, s)

	_, err = ParseSuit("bogus")
	assert.Error(t, err)
}
