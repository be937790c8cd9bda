package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirokuma-dev/riichi-engine/internal/player"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

func m(v int) tile.Tile { return tile.Tile{Suit: tile.Man, Value: v} }
func p(v int) tile.Tile { return tile.Tile{Suit: tile.Pin, Value: v} }
func s(v int) tile.Tile { return tile.Tile{Suit: tile.Sou, Value: v} }

// 123m 456m 789m 234p 5s5s 待ち形（听 5s 已有雀头 → 和牌形减一张）
func tenpaiHand() []tile.Tile {
	return []tile.Tile{
		m(1), m(2), m(3),
		m(4), m(5), m(6),
		m(7), m(8), m(9),
		p(2), p(3), p(4),
		s(5),
	}
}

func TestShantenCompleteAndTenpai(t *testing.T) {
	t.Parallel()

	hand := tenpaiHand()
	assert.Equal(t, 0, Shanten(hand, nil))
	assert.True(t, IsTenpai(hand, nil))

	// 拆掉一组顺子后不再听牌
	broken := append([]tile.Tile{}, hand[:10]...)
	broken = append(broken, tile.Tile{Suit: tile.Wind, Value: 1}, tile.Tile{Suit: tile.Wind, Value: 2}, tile.Tile{Suit: tile.Dragon, Value: 1})
	assert.False(t, IsTenpai(broken, nil))
}

func TestWaitsContainsWinningTile(t *testing.T) {
	t.Parallel()

	waits := Waits(tenpaiHand(), nil)
	assert.Contains(t, waits, s(5))
}

func TestTenpaiWithMeld(t *testing.T) {
	t.Parallel()

	// 门前 10 张 + 一组碰，整体仍为听牌形
	concealed := []tile.Tile{
		m(1), m(2), m(3),
		m(4), m(5), m(6),
		p(2), p(3), p(4),
		s(5),
	}
	melds := []player.Meld{{
		Type:  player.Pon,
		Tiles: []tile.Tile{s(9), s(9), s(9)},
	}}
	assert.True(t, IsTenpai(concealed, melds))
}

func TestStandardEvaluateWinningHand(t *testing.T) {
	t.Parallel()

	d := NewStandard()
	concealed := append(tenpaiHand(), s(5))
	res, err := d.Evaluate(concealed, nil, s(5), WinContext{
		IsTsumo:   true,
		IsRiichi:  true,
		SeatWind:  "east",
		RoundWind: "east",
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Greater(t, res.Han, 0)
	assert.Greater(t, res.CostTotal, 0)
	assert.NotEmpty(t, res.Yaku)
}

func TestStandardEvaluateNotWinning(t *testing.T) {
	t.Parallel()

	d := NewStandard()
	concealed := []tile.Tile{
		m(1), m(4), m(7),
		p(2), p(5), p(8),
		s(3), s(6), s(9),
		tile.Tile{Suit: tile.Wind, Value: 1},
		tile.Tile{Suit: tile.Wind, Value: 2},
		tile.Tile{Suit: tile.Wind, Value: 3},
		tile.Tile{Suit: tile.Wind, Value: 4},
		tile.Tile{Suit: tile.Dragon, Value: 1},
	}
	res, err := d.Evaluate(concealed, nil, tile.Tile{Suit: tile.Dragon, Value: 1}, WinContext{IsTsumo: true, SeatWind: "east", RoundWind: "east"})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestStandardEvaluateWinTileMissing(t *testing.T) {
	t.Parallel()

	d := NewStandard()
	_, err := d.Evaluate(tenpaiHand(), nil, p(9), WinContext{IsTsumo: true})
	assert.Error(t, err)
}
