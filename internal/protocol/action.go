package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/shirokuma-dev/riichi-engine/internal/apperrors"
	"github.com/shirokuma-dev/riichi-engine/internal/engine"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// 动作类型。前九种与引擎 AllowedActions 返回的口径一致，
// 后两种是对局层面的控制动作。
const (
	ActionDraw    = engine.ActionDraw
	ActionDiscard = engine.ActionDiscard
	ActionSkip    = engine.ActionSkip
	ActionChi     = engine.ActionChi
	ActionPon     = engine.ActionPon
	ActionKan     = engine.ActionKan
	ActionRiichi  = engine.ActionRiichi
	ActionTsumo   = engine.ActionTsumo
	ActionRon     = engine.ActionRon

	ActionStartKyoku = "start_kyoku"
	ActionEndGame    = "end_game"
)

// Action 客户端（或 AI）提交的单个动作。
// 指针字段区分“缺失”与“零值”，校验据此判断必填项。
type Action struct {
	Type        string      `json:"type"`
	PlayerIndex *int        `json:"player_index,omitempty"`
	Tile        *tile.Tile  `json:"tile,omitempty"`
	Tiles       []tile.Tile `json:"tiles,omitempty"`
	Dealer      *int        `json:"dealer,omitempty"`
	RoundNumber *int        `json:"round_number,omitempty"`
}

// 各动作类型的必填字段
var requiredFields = map[string][]string{
	ActionDraw:       {"player_index"},
	ActionDiscard:    {"player_index", "tile"},
	ActionSkip:       {"player_index"},
	ActionChi:        {"player_index", "tiles"},
	ActionPon:        {"player_index", "tiles"},
	ActionKan:        {"player_index", "tiles"},
	ActionRiichi:     {"player_index"},
	ActionTsumo:      {"player_index", "tile"},
	ActionRon:        {"player_index", "tile"},
	ActionStartKyoku: {"dealer", "round_number"},
	ActionEndGame:    {},
}

func (a Action) has(field string) bool {
	switch field {
	case "player_index":
		return a.PlayerIndex != nil
	case "tile":
		return a.Tile != nil
	case "tiles":
		return len(a.Tiles) > 0
	case "dealer":
		return a.Dealer != nil
	case "round_number":
		return a.RoundNumber != nil
	}
	return false
}

// Validate 只检查消息形状：类型已知、必填字段在场、座位号在 0-3。
// 动作在当前局面下是否合法由引擎判定。
func (a Action) Validate() error {
	fields, ok := requiredFields[a.Type]
	if !ok {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownAction, a.Type)
	}
	for _, f := range fields {
		if !a.has(f) {
			return apperrors.Invalid("action %q missing field %q", a.Type, f)
		}
	}
	if a.PlayerIndex != nil && (*a.PlayerIndex < 0 || *a.PlayerIndex > 3) {
		return apperrors.Invalid("player_index %d out of range", *a.PlayerIndex)
	}
	return nil
}

// Apply 校验后把动作派发给引擎。引擎错误原样返回，
// 调用方可用 errors.Is 区分规则违例与算点失败。
func Apply(eng *engine.Engine, a Action) error {
	if err := a.Validate(); err != nil {
		return err
	}
	switch a.Type {
	case ActionDraw:
		_, err := eng.Draw(*a.PlayerIndex)
		return err
	case ActionDiscard:
		return eng.Discard(*a.PlayerIndex, *a.Tile)
	case ActionSkip:
		return eng.Skip(*a.PlayerIndex)
	case ActionChi:
		return eng.CallChi(*a.PlayerIndex, a.Tiles)
	case ActionPon:
		return eng.CallPon(*a.PlayerIndex, a.Tiles)
	case ActionKan:
		return eng.CallKan(*a.PlayerIndex, a.Tiles)
	case ActionRiichi:
		return eng.DeclareRiichi(*a.PlayerIndex)
	case ActionTsumo:
		_, err := eng.DeclareTsumo(*a.PlayerIndex, *a.Tile)
		return err
	case ActionRon:
		_, err := eng.DeclareRon(*a.PlayerIndex, *a.Tile)
		return err
	case ActionStartKyoku:
		return eng.StartKyoku(*a.Dealer, *a.RoundNumber)
	case ActionEndGame:
		eng.EndGame()
		return nil
	}
	return fmt.Errorf("%w: %q", apperrors.ErrUnknownAction, a.Type)
}

// ParseAction 解码 JSON 动作消息并做形状校验
func ParseAction(raw []byte) (Action, error) {
	var a Action
	if err := json.Unmarshal(raw, &a); err != nil {
		return Action{}, apperrors.Invalid("malformed action: %v", err)
	}
	if err := a.Validate(); err != nil {
		return Action{}, err
	}
	return a, nil
}
