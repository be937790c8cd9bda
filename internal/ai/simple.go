package ai

import (
	"math/rand"

	"github.com/shirokuma-dev/riichi-engine/internal/engine"
	"github.com/shirokuma-dev/riichi-engine/internal/player"
	"github.com/shirokuma-dev/riichi-engine/internal/scoring"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// Simple 基于向听数的内置 AI：打牌让向听数最小，
// 鸣牌仅在严格降低向听数时进行。
type Simple struct {
	rng *rand.Rand
}

// NewSimple 创建内置 AI，seed 固定时行为可复现
func NewSimple(seed int64) *Simple {
	return &Simple{rng: rand.New(rand.NewSource(seed))}
}

// ChooseDiscard 从 14-3m 张手牌中挑一张打出，使剩余手牌向听数最小。
// 多个等价选择时随机挑一张，避免打法过于机械。
func (s *Simple) ChooseDiscard(p *player.Player) tile.Tile {
	tiles := p.Hand.Tiles
	best := make([]int, 0, len(tiles))
	bestValue := 9

	rest := make([]tile.Tile, 0, len(tiles)-1)
	for i := range tiles {
		rest = rest[:0]
		rest = append(rest, tiles[:i]...)
		rest = append(rest, tiles[i+1:]...)
		v := scoring.Shanten(rest, p.Hand.Melds)
		if v < bestValue {
			bestValue = v
			best = best[:0]
		}
		if v == bestValue {
			best = append(best, i)
		}
	}
	return tiles[best[s.rng.Intn(len(best))]]
}

// ClaimMeld 尝试碰/吃最近一张打出的牌。只有鸣牌后
// （算上随后的强制打牌）向听数严格下降才出手，否则返回 false。
func (s *Simple) ClaimMeld(eng *engine.Engine, seat int) (bool, error) {
	st := eng.State()
	if !waitingFor(st, seat) {
		return false, nil
	}
	last := st.LastDiscard
	if last == nil || st.LastDiscardPlayer == seat {
		return false, nil
	}

	p := st.Players[seat]
	base := scoring.Shanten(p.Hand.Tiles, p.Hand.Melds)
	bestValue := base
	var bestType string
	var bestTiles []tile.Tile

	// 碰
	if p.Hand.CountOf(*last) >= 2 {
		after := removeCopies(p.Hand.Tiles, *last, 2)
		melds := append(append([]player.Meld{}, p.Hand.Melds...), player.Meld{
			Type:  player.Pon,
			Tiles: []tile.Tile{*last, *last, *last},
		})
		if v := scoring.Shanten(after, melds); v < bestValue {
			bestValue = v
			bestType = "pon"
			bestTiles = []tile.Tile{*last, *last, *last}
		}
	}

	// 吃（仅限上家打出的数牌）
	if last.IsNumbered() && (st.LastDiscardPlayer+1)%4 == seat {
		for offset := -2; offset <= 0; offset++ {
			start := last.Value + offset
			if start < 1 || start+2 > 9 {
				continue
			}
			seq := make([]tile.Tile, 0, 3)
			after := append([]tile.Tile{}, p.Hand.Tiles...)
			ok := true
			for v := start; v <= start+2; v++ {
				t := tile.Tile{Suit: last.Suit, Value: v}
				seq = append(seq, t)
				if v == last.Value {
					continue
				}
				if i := indexOf(after, t); i >= 0 {
					after = append(after[:i], after[i+1:]...)
				} else {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			melds := append(append([]player.Meld{}, p.Hand.Melds...), player.Meld{
				Type:  player.Chi,
				Tiles: seq,
			})
			if v := scoring.Shanten(after, melds); v < bestValue {
				bestValue = v
				bestType = "chi"
				bestTiles = seq
			}
		}
	}

	switch bestType {
	case "pon":
		return true, eng.CallPon(seat, bestTiles)
	case "chi":
		return true, eng.CallChi(seat, bestTiles)
	}
	return false, nil
}

// SmartTurn 替指定座位走完一手：处理鸣牌窗口，必要时摸牌，
// 然后按向听数打出一张。返回打出（或放过）的牌。
func (s *Simple) SmartTurn(eng *engine.Engine, seat int) (tile.Tile, error) {
	st := eng.State()

	if waitingFor(st, seat) {
		last := st.LastDiscard
		claimed, err := s.ClaimMeld(eng, seat)
		if err != nil {
			return tile.Tile{}, err
		}
		if claimed {
			p := st.Players[seat]
			discard := s.ChooseDiscard(p)
			return discard, eng.Discard(seat, discard)
		}
		if err := eng.Skip(seat); err != nil {
			return tile.Tile{}, err
		}
		return *last, nil
	}

	p := st.Players[seat]
	if len(p.Hand.Tiles) == 13-3*len(p.Hand.Melds) {
		if _, err := eng.Draw(seat); err != nil {
			return tile.Tile{}, err
		}
	}
	if eng.IsGameOver() || st.CurrentPlayer != seat || len(p.Hand.Tiles) != 14-3*len(p.Hand.Melds) {
		// 摸牌触发了荒牌流局，当前局面已被结算推进
		return tile.Tile{}, nil
	}

	discard := s.ChooseDiscard(p)
	return discard, eng.Discard(seat, discard)
}

func waitingFor(st *engine.GameState, seat int) bool {
	for _, w := range st.WaitingForClaims {
		if w == seat {
			return true
		}
	}
	return false
}

func indexOf(tiles []tile.Tile, t tile.Tile) int {
	for i, ht := range tiles {
		if ht == t {
			return i
		}
	}
	return -1
}

func removeCopies(tiles []tile.Tile, t tile.Tile, n int) []tile.Tile {
	out := make([]tile.Tile, 0, len(tiles))
	for _, ht := range tiles {
		if n > 0 && ht == t {
			n--
			continue
		}
		out = append(out, ht)
	}
	return out
}
