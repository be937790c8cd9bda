package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirokuma-dev/riichi-engine/internal/apperrors"
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

func intp(v int) *int { return &v }

func tilep(t tile.Tile) *tile.Tile { return &t }

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(engine.Options{Delegate: noWin{}, Seed: 11})
}

func TestActionValidateRequiredFields(t *testing.T) {
	t.Parallel()

	five := tilep(tile.Tile{Suit: tile.Pin, Value: 5})
	tests := []struct {
		name    string
		action  Action
		wantErr error
	}{
		{"draw 完整", Action{Type: ActionDraw, PlayerIndex: intp(0)}, nil},
		{"draw 缺座位", Action{Type: ActionDraw}, apperrors.ErrInvalidAction},
		{"discard 完整", Action{Type: ActionDiscard, PlayerIndex: intp(1), Tile: five}, nil},
		{"discard 缺牌", Action{Type: ActionDiscard, PlayerIndex: intp(1)}, apperrors.ErrInvalidAction},
		{"pon 缺牌组", Action{Type: ActionPon, PlayerIndex: intp(2)}, apperrors.ErrInvalidAction},
		{"chi 完整", Action{Type: ActionChi, PlayerIndex: intp(2), Tiles: []tile.Tile{*five}}, nil},
		{"riichi 完整", Action{Type: ActionRiichi, PlayerIndex: intp(3)}, nil},
		{"tsumo 缺牌", Action{Type: ActionTsumo, PlayerIndex: intp(0)}, apperrors.ErrInvalidAction},
		{"ron 完整", Action{Type: ActionRon, PlayerIndex: intp(0), Tile: five}, nil},
		{"start_kyoku 完整", Action{Type: ActionStartKyoku, Dealer: intp(1), RoundNumber: intp(2)}, nil},
		{"start_kyoku 缺局数", Action{Type: ActionStartKyoku, Dealer: intp(1)}, apperrors.ErrInvalidAction},
		{"end_game 无必填项", Action{Type: ActionEndGame}, nil},
		{"座位越界", Action{Type: ActionSkip, PlayerIndex: intp(4)}, apperrors.ErrInvalidAction},
		{"未知类型", Action{Type: "teleport", PlayerIndex: intp(0)}, apperrors.ErrUnknownAction},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.action.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	t.Parallel()

	a, err := ParseAction([]byte(`{"type":"discard","player_index":2,"tile":{"suit":"pin","value":7}}`))
	require.NoError(t, err)
	assert.Equal(t, ActionDiscard, a.Type)
	require.NotNil(t, a.PlayerIndex)
	assert.Equal(t, 2, *a.PlayerIndex)
	require.NotNil(t, a.Tile)
	assert.Equal(t, 7, a.Tile.Value)

	_, err = ParseAction([]byte(`{"type":"discard"`))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAction)

	_, err = ParseAction([]byte(`{"type":"fly"}`))
	assert.ErrorIs(t, err, apperrors.ErrUnknownAction)
}

func TestApplyDispatchesToEngine(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)
	s := eng.State()
	first := s.Players[0].Hand.Tiles[0]

	require.NoError(t, Apply(eng, Action{Type: ActionDiscard, PlayerIndex: intp(0), Tile: tilep(first)}))
	assert.Equal(t, []tile.Tile{first}, s.Players[0].River)

	// 鸣牌窗口内其余三家依次过
	for _, seat := range []int{1, 2, 3} {
		require.NoError(t, Apply(eng, Action{Type: ActionSkip, PlayerIndex: intp(seat)}))
	}
	assert.Len(t, s.Players[1].Hand.Tiles, 14)

	err := Apply(eng, Action{Type: ActionDraw, PlayerIndex: intp(3)})
	assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)

	require.NoError(t, Apply(eng, Action{Type: ActionEndGame}))
	assert.True(t, eng.IsGameOver())
}

func TestApplyRejectsInvalidShapeBeforeTouchingEngine(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)
	before := len(eng.History())
	err := Apply(eng, Action{Type: ActionDiscard, PlayerIndex: intp(0)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAction)
	assert.Len(t, eng.History(), before)
}

func TestSnapshotHidesOtherHands(t *testing.T) {
	t.Parallel()

	eng := newEngine(t)
	view := Snapshot(eng, 1)
	assert.Len(t, view.Players[1].Hand, 13)
	assert.Empty(t, view.Players[0].Hand)
	assert.Equal(t, 14, view.Players[0].HandCount)
	assert.Equal(t, 25000, view.Players[2].Score)
	assert.Equal(t, 69, view.WallRemaining)
	assert.False(t, view.GameOver)

	full := Snapshot(eng, -1)
	for i := range full.Players {
		assert.NotEmpty(t, full.Players[i].Hand, "seat %d", i)
	}
	assert.NotEmpty(t, full.AllowedActions[0])
}

func TestErrorFromMapsCodes(t *testing.T) {
	t.Parallel()

	p := ErrorFrom(apperrors.NotTurn("seat 2"))
	assert.Equal(t, apperrors.CodeNotYourTurn, p.Code)

	p = ErrorFrom(assert.AnError)
	assert.Equal(t, apperrors.CodeInvalidAction, p.Code)
}

func TestMessagePool(t *testing.T) {
	t.Parallel()

	msg := GetMessage()
	msg.Type = MsgAction
	msg.Payload = []byte(`{}`)
	PutMessage(msg)

	got := GetMessage()
	assert.Empty(t, got.Type)
	assert.Nil(t, got.Payload)
	PutMessage(got)

	buf := GetBuffer()
	buf.WriteString("x")
	PutBuffer(buf)
	assert.Zero(t, GetBuffer().Len())
}
