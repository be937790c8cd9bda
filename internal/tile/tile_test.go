package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSet(t *testing.T) {
	t.Parallel()

	set := NewSet()
	assert.Len(t, set, 136)

	counts := Counts(set)
	for idx, n := range counts {
		assert.Equal(t, 4, n, "tile kind %d", idx)
	}
}

func TestIsTerminalOrHonor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tile     Tile
		expected bool
	}{
		{"man 1", Tile{Man, 1}, true},
		{"man 5", Tile{Man, 5}, false},
		{"sou 9", Tile{Sou, 9}, true},
		{"pin 2", Tile{Pin, 2}, false},
		{"east wind", Tile{Wind, 1}, true},
		{"red dragon", Tile{Dragon, 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.tile.IsTerminalOrHonor())
		})
	}
}

func TestIndex34(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Tile{Man, 1}.Index34())
	assert.Equal(t, 8, Tile{Man, 9}.Index34())
	assert.Equal(t, 9, Tile{Pin, 1}.Index34())
	assert.Equal(t, 18, Tile{Sou, 1}.Index34())
	assert.Equal(t, 27, Tile{Wind, 1}.Index34())
	assert.Equal(t, 30, Tile{Wind, 4}.Index34())
	assert.Equal(t, 31, Tile{Dragon, 1}.Index34())
	assert.Equal(t, 33, Tile{Dragon, 3}.Index34())
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, Tile{Man, 9}.IsValid())
	assert.False(t, Tile{Man, 10}.IsValid())
	assert.False(t, Tile{Wind, 5}.IsValid())
	assert.False(t, Tile{Dragon, 4}.IsValid())
	assert.False(t, Tile{Suit("joker"), 1}.IsValid())
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "5m", Tile{Man, 5}.String())
	assert.Equal(t, "1p", Tile{Pin, 1}.String())
	assert.Equal(t, "東", Tile{Wind, 1}.String())
	assert.Equal(t, "中", Tile{Dragon, 3}.String())
}

func TestWindName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "east", WindName(0))
	assert.Equal(t, "north", WindName(3))
	assert.Equal(t, "east", WindName(4))
}
