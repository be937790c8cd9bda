package player

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

func TestHandRemoveByIndex(t *testing.T) {
	t.Parallel()

	h := Hand{Tiles: []tile.Tile{
		{Suit: tile.Man, Value: 1},
		{Suit: tile.Man, Value: 2},
		{Suit: tile.Man, Value: 1},
	}}

	removed := h.RemoveAt(0)
	assert.Equal(t, tile.Tile{Suit: tile.Man, Value: 1}, removed)
	// 等值的第二张 1m 仍在手中
	assert.Equal(t, 1, h.CountOf(tile.Tile{Suit: tile.Man, Value: 1}))
	assert.Len(t, h.Tiles, 2)
}

func TestHandRemoveAll(t *testing.T) {
	t.Parallel()

	h := Hand{Tiles: []tile.Tile{
		{Suit: tile.Pin, Value: 5},
		{Suit: tile.Pin, Value: 5},
		{Suit: tile.Sou, Value: 1},
	}}

	assert.False(t, h.RemoveAll(tile.Tile{Suit: tile.Pin, Value: 5}, 3))
	assert.Len(t, h.Tiles, 3)

	assert.True(t, h.RemoveAll(tile.Tile{Suit: tile.Pin, Value: 5}, 2))
	assert.Len(t, h.Tiles, 1)
}

func TestHandIsClosed(t *testing.T) {
	t.Parallel()

	h := Hand{}
	assert.True(t, h.IsClosed())

	h.Melds = append(h.Melds, Meld{Type: ClosedKan, Tiles: []tile.Tile{{Suit: tile.Sou, Value: 5}}})
	assert.True(t, h.IsClosed())

	h.Melds = append(h.Melds, Meld{Type: Pon, Tiles: []tile.Tile{{Suit: tile.Man, Value: 1}}})
	assert.False(t, h.IsClosed())
}

func TestPlayerResetForKyoku(t *testing.T) {
	t.Parallel()

	p := New("A")
	p.Draw(tile.Tile{Suit: tile.Man, Value: 1})
	p.River = append(p.River, tile.Tile{Suit: tile.Man, Value: 2})
	p.Riichi = true
	p.MustTsumogiri = true
	p.IppatsuAvailable = true
	p.Score = 24000

	p.ResetForKyoku("south")

	assert.Empty(t, p.Hand.Tiles)
	assert.Empty(t, p.River)
	assert.False(t, p.Riichi)
	assert.False(t, p.MustTsumogiri)
	assert.False(t, p.IppatsuAvailable)
	assert.Equal(t, "south", p.SeatWind)
	assert.Equal(t, 24000, p.Score)
	assert.Equal(t, "A", p.Name)
}

func TestMeldOf(t *testing.T) {
	t.Parallel()

	five := tile.Tile{Suit: tile.Sou, Value: 5}
	h := Hand{Melds: []Meld{
		{Type: Pon, Tiles: []tile.Tile{five, five, five}},
	}}

	assert.Equal(t, 0, h.MeldOf(Pon, five))
	assert.Equal(t, -1, h.MeldOf(Pon, tile.Tile{Suit: tile.Sou, Value: 6}))
	assert.Equal(t, -1, h.MeldOf(Kan, five))
}
