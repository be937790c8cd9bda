package scoring

import (
	"github.com/dnovikoff/tempai-core/compact"
	"github.com/dnovikoff/tempai-core/hand/shanten"
	"github.com/dnovikoff/tempai-core/hand/tempai"
	tcore "github.com/dnovikoff/tempai-core/tile"

	"github.com/shirokuma-dev/riichi-engine/internal/player"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// toCoreTile 转为 tempai-core 的 1 起始牌编号
func toCoreTile(t tile.Tile) tcore.Tile {
	return tcore.Tile(t.Index34() + 1)
}

// fromCoreTile 从 tempai-core 牌编号还原
func fromCoreTile(ct tcore.Tile) tile.Tile {
	idx := int(ct) - 1
	switch {
	case idx < 9:
		return tile.Tile{Suit: tile.Man, Value: idx + 1}
	case idx < 18:
		return tile.Tile{Suit: tile.Pin, Value: idx - 9 + 1}
	case idx < 27:
		return tile.Tile{Suit: tile.Sou, Value: idx - 18 + 1}
	case idx < 31:
		return tile.Tile{Suit: tile.Wind, Value: idx - 27 + 1}
	default:
		return tile.Tile{Suit: tile.Dragon, Value: idx - 31 + 1}
	}
}

// foldMelds 把副露折回牌列表参与拆解：顺子/刻子整组计入，
// 杠按 3 张计入（第 4 张不参与牌型拆解）。
func foldMelds(concealed []tile.Tile, melds []player.Meld) []tile.Tile {
	out := make([]tile.Tile, 0, len(concealed)+3*len(melds))
	out = append(out, concealed...)
	for _, m := range melds {
		n := len(m.Tiles)
		if n > 3 {
			n = 3
		}
		out = append(out, m.Tiles[:n]...)
	}
	return out
}

// toInstances 构建 tempai-core 的牌实例集合
func toInstances(tiles []tile.Tile) compact.Instances {
	generator := compact.NewTileGenerator()
	instances := compact.NewInstances()
	coreTiles := make(tcore.Tiles, 0, len(tiles))
	for _, t := range tiles {
		coreTiles = append(coreTiles, toCoreTile(t))
	}
	instances.Add(generator.Tiles(coreTiles))
	return instances
}

// Shanten 返回向听数（和牌形为 -1，听牌为 0）。
// 有副露时只按一般形计算，七对/国士不适用。
func Shanten(concealed []tile.Tile, melds []player.Meld) int {
	instances := toInstances(foldMelds(concealed, melds))
	results := shanten.Calculate(instances)
	if len(melds) > 0 {
		return results.Regular.Value
	}
	return results.Total.Value
}

// IsTenpai 是否听牌。concealed 应为打牌后的 13-3m 张形状。
func IsTenpai(concealed []tile.Tile, melds []player.Meld) bool {
	return Shanten(concealed, melds) == 0
}

// Waits 返回听牌时的所有待牌，未听牌返回空
func Waits(concealed []tile.Tile, melds []player.Meld) []tile.Tile {
	instances := toInstances(foldMelds(concealed, melds))
	results := tempai.Calculate(instances)
	if results == nil {
		return nil
	}
	coreTiles := tempai.GetWaits(results).Tiles()
	out := make([]tile.Tile, 0, len(coreTiles))
	for _, ct := range coreTiles {
		out = append(out, fromCoreTile(ct))
	}
	return out
}
