package scoring

import (
	"github.com/shirokuma-dev/riichi-engine/internal/player"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// WinContext 和牌判定的上下文标志
type WinContext struct {
	IsTsumo   bool
	IsRiichi  bool
	IsIppatsu bool
	SeatWind  string
	RoundWind string
}

// WinResult 和牌评估结果。CostTotal 为荣和口径的基础点数，
// 自摸分摊由引擎按规则拆分。
type WinResult struct {
	Han       int      `json:"han"`
	Fu        int      `json:"fu"`
	CostTotal int      `json:"cost_total"`
	Yaku      []string `json:"yaku"`
}

// Delegate 算点委托。引擎通过它判定和牌并取得点数，
// 从不自行实现役种/符数计算。
//
// 返回 (nil, nil) 表示"不是和牌形"：合法性探测时直接视为
// 不可和，只有显式自摸/荣和请求才把 error 上抛。
type Delegate interface {
	Evaluate(concealed []tile.Tile, melds []player.Meld, winTile tile.Tile, ctx WinContext) (*WinResult, error)
}
