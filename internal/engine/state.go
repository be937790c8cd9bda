package engine

import (
	"github.com/shirokuma-dev/riichi-engine/internal/player"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
	"github.com/shirokuma-dev/riichi-engine/internal/wall"
)

// GameState 一局进行中的全部可见状态。字段由引擎独占修改，
// 外部只读（快照见 protocol 包）。
type GameState struct {
	Players       [4]*player.Player
	Wall          *wall.Wall
	Dealer        int
	CurrentPlayer int
	RoundNumber   int
	Honba         int
	RiichiSticks  int
	KanCount      int
	MaxRounds     int

	// WaitingForClaims 打牌后等待鸣牌/荣和表态的座位（按行动优先顺序）
	WaitingForClaims []int
	// LastDiscard 尚可被鸣的最近一张打牌
	LastDiscard       *tile.Tile
	LastDiscardPlayer int
}

// Scores 四家当前点数
func (s *GameState) Scores() [4]int {
	var out [4]int
	for i, p := range s.Players {
		out[i] = p.Score
	}
	return out
}

// Names 四家名字
func (s *GameState) Names() [4]string {
	var out [4]string
	for i, p := range s.Players {
		out[i] = p.Name
	}
	return out
}

// RoundWind 场风：1-4 局东场，5-8 局南场，依次类推
func (s *GameState) RoundWind() string {
	return tile.WindName(((s.RoundNumber - 1) / 4) % 4)
}

// claimOwed 座位是否在当前鸣牌窗口内
func (s *GameState) claimOwed(seat int) bool {
	for _, w := range s.WaitingForClaims {
		if w == seat {
			return true
		}
	}
	return false
}

// removeClaim 将座位移出鸣牌窗口，返回是否原本在窗口内
func (s *GameState) removeClaim(seat int) bool {
	for i, w := range s.WaitingForClaims {
		if w == seat {
			s.WaitingForClaims = append(s.WaitingForClaims[:i], s.WaitingForClaims[i+1:]...)
			return true
		}
	}
	return false
}
