package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirokuma-dev/riichi-engine/internal/engine"
	"github.com/shirokuma-dev/riichi-engine/internal/player"
	"github.com/shirokuma-dev/riichi-engine/internal/scoring"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// noWin 算点委托：一律判不和
type noWin struct{}

func (noWin) Evaluate([]tile.Tile, []player.Meld, tile.Tile, scoring.WinContext) (*scoring.WinResult, error) {
	return nil, nil
}

func man(v int) tile.Tile  { return tile.Tile{Suit: tile.Man, Value: v} }
func pin(v int) tile.Tile  { return tile.Tile{Suit: tile.Pin, Value: v} }
func sou(v int) tile.Tile  { return tile.Tile{Suit: tile.Sou, Value: v} }
func wind(v int) tile.Tile { return tile.Tile{Suit: tile.Wind, Value: v} }

func newEngine(t *testing.T, seed int64) *engine.Engine {
	t.Helper()
	return engine.New(engine.Options{Delegate: noWin{}, Seed: seed})
}

// stripTile 把某张牌从手中全部换成指定替代牌
func stripTile(h *player.Hand, t tile.Tile) {
	for i := range h.Tiles {
		if h.Tiles[i] == t {
			h.Tiles[i] = tile.Tile{Suit: tile.Dragon, Value: 1}
		}
	}
}

func TestChooseDiscardKeepsTenpai(t *testing.T) {
	t.Parallel()

	p := player.New("ai")
	p.Hand.Tiles = []tile.Tile{
		man(1), man(2), man(3), man(4), man(5), man(6), man(7), man(8), man(9),
		pin(2), pin(3), pin(4), sou(5), wind(1),
	}

	s := NewSimple(1)
	discard := s.ChooseDiscard(p)

	rest := append([]tile.Tile{}, p.Hand.Tiles...)
	i := indexOf(rest, discard)
	require.GreaterOrEqual(t, i, 0)
	rest = append(rest[:i], rest[i+1:]...)
	assert.True(t, scoring.IsTenpai(rest, nil), "discarding %s should keep tenpai", discard)
}

func TestChooseDiscardDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	p := player.New("ai")
	p.Hand.Tiles = []tile.Tile{
		man(1), man(4), man(7), pin(2), pin(5), pin(8),
		sou(3), sou(6), sou(9), wind(1), wind(2), wind(3), wind(4), man(1),
	}

	first := NewSimple(9).ChooseDiscard(p)
	second := NewSimple(9).ChooseDiscard(p)
	assert.Equal(t, first, second)
}

func TestClaimMeldPonImprovesShanten(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 3)
	st := e.State()
	st.Players[0].Hand.Tiles[0] = pin(5)
	st.Players[1].Hand.Tiles = []tile.Tile{
		man(1), man(2), man(3), man(4), man(5), man(6), man(7), man(8), man(9),
		pin(5), pin(5), sou(2), sou(7),
	}

	require.NoError(t, e.Discard(0, pin(5)))

	s := NewSimple(1)
	claimed, err := s.ClaimMeld(e, 1)
	require.NoError(t, err)
	assert.True(t, claimed)
	require.Len(t, st.Players[1].Hand.Melds, 1)
	assert.Equal(t, player.Pon, st.Players[1].Hand.Melds[0].Type)
	assert.Equal(t, 1, st.CurrentPlayer)
	assert.Empty(t, st.WaitingForClaims)
}

func TestClaimMeldDeclinesWithoutTiles(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 3)
	st := e.State()
	st.Players[0].Hand.Tiles[0] = wind(3)
	stripTile(&st.Players[1].Hand, wind(3))

	require.NoError(t, e.Discard(0, wind(3)))

	s := NewSimple(1)
	claimed, err := s.ClaimMeld(e, 1)
	require.NoError(t, err)
	assert.False(t, claimed)
	// 打出者自己不在窗口内
	claimed, err = s.ClaimMeld(e, 0)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestSmartTurnDiscardsForCurrentPlayer(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 5)
	st := e.State()

	s := NewSimple(1)
	discard, err := s.SmartTurn(e, 0)
	require.NoError(t, err)
	require.Len(t, st.Players[0].River, 1)
	assert.Equal(t, st.Players[0].River[0], discard)
	assert.Len(t, st.WaitingForClaims, 3)
}

func TestSmartTurnSkipsClaimWithoutGain(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 5)
	st := e.State()
	st.Players[0].Hand.Tiles[0] = wind(3)
	stripTile(&st.Players[1].Hand, wind(3))
	require.NoError(t, e.Discard(0, wind(3)))

	s := NewSimple(1)
	got, err := s.SmartTurn(e, 1)
	require.NoError(t, err)
	assert.Equal(t, wind(3), got)
	assert.NotContains(t, st.WaitingForClaims, 1)
}

func TestAutoPlayTurnSkipsAllAndPlays(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 5)
	st := e.State()
	st.Players[0].Hand.Tiles[0] = wind(3)
	for _, seat := range []int{1, 2, 3} {
		stripTile(&st.Players[seat].Hand, wind(3))
	}
	require.NoError(t, e.Discard(0, wind(3)))

	r := NewRegistry(1)
	_, err := r.AutoPlayTurn(e, -1, TypeSimple, nil)
	require.NoError(t, err)

	// 三家放过后轮到下家摸打，随后窗口再次打开
	assert.Len(t, st.Players[1].River, 1)
	assert.Equal(t, 2, st.CurrentPlayer)
	assert.Len(t, st.WaitingForClaims, 3)
}

func TestAutoPlayTurnClaimFilter(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 5)
	st := e.State()
	st.Players[0].Hand.Tiles[0] = wind(3)
	for _, seat := range []int{1, 2, 3} {
		stripTile(&st.Players[seat].Hand, wind(3))
	}
	require.NoError(t, e.Discard(0, wind(3)))

	r := NewRegistry(1)
	got, err := r.AutoPlayTurn(e, -1, TypeSimple, []int{1})
	require.NoError(t, err)

	// 只代打了 1 号位，窗口尚未清空，返回最近的打出牌
	assert.Equal(t, wind(3), got)
	assert.Equal(t, []int{2, 3}, st.WaitingForClaims)
}

func TestAutoPlayTurnUnknownType(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 5)
	r := NewRegistry(1)
	_, err := r.AutoPlayTurn(e, -1, "oracle", nil)
	assert.Error(t, err)
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	r := NewRegistry(1)
	called := false
	r.Register("custom", func(eng *engine.Engine, seat int) (tile.Tile, error) {
		called = true
		return tile.Tile{}, nil
	})

	fn, ok := r.Get("custom")
	require.True(t, ok)
	_, err := fn(nil, 0)
	require.NoError(t, err)
	assert.True(t, called)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}
