package wall

import (
	"math/rand"

	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

const (
	// DeadWallSize 王牌区固定 14 张
	DeadWallSize = 14
	// MaxDoraIndicators 宝牌指示牌最多 5 张（初始 1 张 + 杠 4 次）
	MaxDoraIndicators = 5
)

// Wall 牌山。live 为可摸牌区（从末尾摸牌），dead 为王牌区，
// 杠的岭上牌从王牌区前端取。指示牌位置在建山时即确定：
// 第一张宝牌指示牌为王牌区倒数第 5 张，每次杠向前翻一张，
// 里宝牌指示牌在其后方，只在和牌结算时公开。
type Wall struct {
	live []tile.Tile
	dead []tile.Tile

	doraPlan [MaxDoraIndicators]tile.Tile
	uraPlan  [MaxDoraIndicators]tile.Tile
	revealed int
}

// New 生成洗好的牌山
func New(rng *rand.Rand) *Wall {
	tiles := tile.NewSet()
	rng.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	w := &Wall{
		live: tiles[:len(tiles)-DeadWallSize],
		dead: tiles[len(tiles)-DeadWallSize:],
	}
	for k := 0; k < MaxDoraIndicators; k++ {
		w.doraPlan[k] = w.dead[9-k]
	}
	// 里宝牌指示牌位于对应宝牌指示牌后方，第 5 张回绕到岭上牌之后
	for k := 0; k < MaxDoraIndicators-1; k++ {
		w.uraPlan[k] = w.dead[10+k]
	}
	w.uraPlan[MaxDoraIndicators-1] = w.dead[4]

	w.revealed = 1
	return w
}

// Draw 从牌山摸一张牌。牌山已空时返回 false，流局语义由引擎决定。
func (w *Wall) Draw() (tile.Tile, bool) {
	if len(w.live) == 0 {
		return tile.Tile{}, false
	}
	t := w.live[len(w.live)-1]
	w.live = w.live[:len(w.live)-1]
	return t, true
}

// DrawReplacement 杠后从王牌区前端摸一张岭上牌
func (w *Wall) DrawReplacement() (tile.Tile, bool) {
	if len(w.dead) == 0 {
		return tile.Tile{}, false
	}
	t := w.dead[0]
	w.dead = w.dead[1:]
	return t, true
}

// RevealKanDora 杠后翻开一张新的宝牌指示牌（连同里宝牌）。
// 已达到上限时不翻，返回 false。
func (w *Wall) RevealKanDora() bool {
	if w.revealed >= MaxDoraIndicators {
		return false
	}
	w.revealed++
	return true
}

// Remaining 牌山剩余可摸张数
func (w *Wall) Remaining() int {
	return len(w.live)
}

// Exhausted 牌山是否已摸空
func (w *Wall) Exhausted() bool {
	return len(w.live) == 0
}

// DoraIndicators 已翻开的宝牌指示牌
func (w *Wall) DoraIndicators() []tile.Tile {
	out := make([]tile.Tile, w.revealed)
	copy(out, w.doraPlan[:w.revealed])
	return out
}

// UraIndicators 里宝牌指示牌，仅在立直和牌结算时调用
func (w *Wall) UraIndicators() []tile.Tile {
	out := make([]tile.Tile, w.revealed)
	copy(out, w.uraPlan[:w.revealed])
	return out
}

// Live 牌山剩余内容（用于守恒校验）
func (w *Wall) Live() []tile.Tile {
	out := make([]tile.Tile, len(w.live))
	copy(out, w.live)
	return out
}

// DeadWall 王牌区当前内容（用于守恒校验与事件）
func (w *Wall) DeadWall() []tile.Tile {
	out := make([]tile.Tile, len(w.dead))
	copy(out, w.dead)
	return out
}
