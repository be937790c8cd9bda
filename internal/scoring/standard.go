package scoring

import (
	"fmt"

	"github.com/dnovikoff/tempai-core/base"
	"github.com/dnovikoff/tempai-core/compact"
	"github.com/dnovikoff/tempai-core/hand/tempai"
	"github.com/dnovikoff/tempai-core/score"
	"github.com/dnovikoff/tempai-core/yaku"

	"github.com/shirokuma-dev/riichi-engine/internal/player"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

var windByName = map[string]base.Wind{
	"east":  base.WindEast,
	"south": base.WindSouth,
	"west":  base.WindWest,
	"north": base.WindNorth,
}

// Standard 默认算点委托，包装 tempai-core 的役种/符数/点数计算。
// 副露折回暗牌参与拆解（见 foldMelds），门清类役由上下文标志约束。
type Standard struct {
	yakuRules  yaku.Rules
	scoreRules score.Rules
}

// NewStandard 创建默认委托
func NewStandard() *Standard {
	return &Standard{
		yakuRules:  yaku.RulesTenhouRed(),
		scoreRules: score.RulesTenhou(),
	}
}

// Evaluate 评估一手牌。concealed 含和了牌本身（14-3m 张）。
// 返回 (nil, nil) 表示不是和牌形或无役。
func (s *Standard) Evaluate(concealed []tile.Tile, melds []player.Meld, winTile tile.Tile, ctx WinContext) (*WinResult, error) {
	if !winTile.IsValid() {
		return nil, fmt.Errorf("evaluate: invalid win tile %v", winTile)
	}

	// 去掉一张和了牌，对剩余 13-3m 张做听牌拆解
	waiting := make([]tile.Tile, 0, len(concealed))
	removed := false
	for _, t := range concealed {
		if !removed && t == winTile {
			removed = true
			continue
		}
		waiting = append(waiting, t)
	}
	if !removed {
		return nil, fmt.Errorf("evaluate: win tile %v not in hand", winTile)
	}
	folded := foldMelds(waiting, melds)
	if len(folded)%3 != 1 {
		return nil, fmt.Errorf("evaluate: malformed hand size %d", len(folded))
	}

	results := tempai.Calculate(toInstances(folded))
	if results == nil {
		return nil, nil
	}

	winCtx := &yaku.Context{
		Tile:      compact.NewTileGenerator().Instance(toCoreTile(winTile)),
		Rules:     s.yakuRules,
		IsTsumo:   ctx.IsTsumo,
		IsRiichi:  ctx.IsRiichi,
		IsIpatsu:  ctx.IsIppatsu,
		SelfWind:  windByName[ctx.SeatWind],
		RoundWind: windByName[ctx.RoundWind],
	}
	result := yaku.Win(results, winCtx, nil)
	if result == nil {
		return nil, nil
	}
	han := int(result.Sum())
	if han <= 0 {
		return nil, nil
	}

	fu := int(result.Fus.Sum())
	sc := score.GetScore(s.scoreRules, result.Sum(), result.Fus.Sum(), 0)
	total := int(sc.PayRon)
	if ctx.SeatWind == "east" {
		total = int(sc.PayRonDealer)
	}

	names := make([]string, 0, len(result.Yaku))
	for y := range result.Yaku {
		names = append(names, y.String())
	}

	return &WinResult{
		Han:       han,
		Fu:        fu,
		CostTotal: total,
		Yaku:      names,
	}, nil
}
