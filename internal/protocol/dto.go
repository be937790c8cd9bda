package protocol

import (
	"slices"

	"github.com/shirokuma-dev/riichi-engine/internal/engine"
	"github.com/shirokuma-dev/riichi-engine/internal/player"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// PlayerView 单个座位的对外视图。Hand 只在观察者可见时带上，
// 其余座位只给 HandCount。
type PlayerView struct {
	Name      string        `json:"name"`
	Score     int           `json:"score"`
	SeatWind  string        `json:"seat_wind"`
	Riichi    bool          `json:"riichi"`
	River     []tile.Tile   `json:"river"`
	Melds     []player.Meld `json:"melds"`
	Hand      []tile.Tile   `json:"hand,omitempty"`
	HandCount int           `json:"hand_count"`
}

// StateView 对局状态快照（用于查询与断线恢复）
type StateView struct {
	Players          [4]PlayerView `json:"players"`
	Dealer           int           `json:"dealer"`
	CurrentPlayer    int           `json:"current_player"`
	RoundNumber      int           `json:"round_number"`
	Honba            int           `json:"honba"`
	RiichiSticks     int           `json:"riichi_sticks"`
	WallRemaining    int           `json:"wall_remaining"`
	DoraIndicators   []tile.Tile   `json:"dora_indicators"`
	WaitingForClaims []int         `json:"waiting_for_claims,omitempty"`
	GameOver         bool          `json:"game_over"`
	AllowedActions   [4][]string   `json:"allowed_actions"`
}

// Snapshot 把引擎状态投影成视角受限的快照。
// viewpoint 为座位号时只暴露该座位的手牌，-1 表示全知视角（回放、调试）。
func Snapshot(eng *engine.Engine, viewpoint int) StateView {
	s := eng.State()
	out := StateView{
		Dealer:           s.Dealer,
		CurrentPlayer:    s.CurrentPlayer,
		RoundNumber:      s.RoundNumber,
		Honba:            s.Honba,
		RiichiSticks:     s.RiichiSticks,
		WallRemaining:    s.Wall.Remaining(),
		DoraIndicators:   s.Wall.DoraIndicators(),
		WaitingForClaims: slices.Clone(s.WaitingForClaims),
		GameOver:         eng.IsGameOver(),
		AllowedActions:   eng.AllAllowedActions(),
	}
	for i, p := range s.Players {
		pv := PlayerView{
			Name:      p.Name,
			Score:     p.Score,
			SeatWind:  p.SeatWind,
			Riichi:    p.Riichi,
			River:     slices.Clone(p.River),
			Melds:     slices.Clone(p.Hand.Melds),
			HandCount: len(p.Hand.Tiles),
		}
		if viewpoint < 0 || viewpoint == i {
			pv.Hand = slices.Clone(p.Hand.Tiles)
		}
		out.Players[i] = pv
	}
	return out
}
