package gamelog

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/shirokuma-dev/riichi-engine/internal/event"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// 终局记录的标记字符串（tenhou.net/6 口径）
const (
	recordWin  = "和了"
	recordDraw = "流局"
)

// TileCode 返回 tenhou.net/6 的牌编号：
// 万 11-19，筒 21-29，索 31-39，风 41-44，三元 45-47。
func TileCode(t tile.Tile) int {
	switch t.Suit {
	case tile.Man:
		return 10 + t.Value
	case tile.Pin:
		return 20 + t.Value
	case tile.Sou:
		return 30 + t.Value
	case tile.Wind:
		return 40 + t.Value
	case tile.Dragon:
		return 44 + t.Value
	}
	return 0
}

func tileCodes(tiles []tile.Tile) []int {
	out := make([]int, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, TileCode(t))
	}
	return out
}

// Rule 牌谱规则元数据
type Rule struct {
	Disp string `json:"disp"`
	Aka  int    `json:"aka"`
}

// TenhouLog tenhou.net/6 风格的整场牌谱。Log 中每局是一个嵌套数组：
// [局信息, 起点, 宝牌, 里宝牌, 配牌×4, 行动序列×4, 终局记录]。
type TenhouLog struct {
	Title []string `json:"title"`
	Name  []string `json:"name"`
	Rule  Rule     `json:"rule"`
	Log   [][]any  `json:"log"`
}

// ToTenhou 把事件历史投影成 Tenhou 风格牌谱。
// 纯函数：只读历史，不碰引擎状态。
func ToTenhou(history []event.Event) *TenhouLog {
	out := &TenhouLog{
		Title: []string{"", ""},
		Name:  []string{},
		Rule:  Rule{Disp: "MyMahjong", Aka: 0},
		Log:   [][]any{},
	}

	var kyoku []any
	var perPlayer [][]any
	var startScores [4]int

	flush := func(record []any) {
		for _, row := range perPlayer {
			kyoku = append(kyoku, row)
		}
		kyoku = append(kyoku, record)
		out.Log = append(out.Log, kyoku)
		kyoku = nil
	}

	for _, ev := range history {
		switch e := ev.(type) {
		case event.StartKyoku:
			names := e.Names
			out.Name = names[:]
			kyoku = []any{
				[]int{e.Dealer, e.Honba, 0},
				[]int{e.Scores[0], e.Scores[1], e.Scores[2], e.Scores[3]},
				tileCodes(e.DoraIndicators),
				[]int{},
			}
			for _, h := range e.Hands {
				kyoku = append(kyoku, tileCodes(h))
			}
			perPlayer = make([][]any, 4)
			for i := range perPlayer {
				perPlayer[i] = []any{}
			}
			startScores = e.Scores
		case event.DrawTile:
			if kyoku != nil {
				perPlayer[e.PlayerIndex] = append(perPlayer[e.PlayerIndex], TileCode(e.Tile))
			}
		case event.Discard:
			if kyoku != nil {
				perPlayer[e.PlayerIndex] = append(perPlayer[e.PlayerIndex], TileCode(e.Tile))
			}
		case event.Riichi:
			if kyoku != nil {
				perPlayer[e.PlayerIndex] = append(perPlayer[e.PlayerIndex], "reach")
			}
		case event.Tsumo:
			if kyoku != nil {
				flush([]any{recordWin, scoreDelta(e.Scores, startScores), []any{}})
			}
		case event.Ron:
			if kyoku != nil {
				flush([]any{recordWin, scoreDelta(e.Scores, startScores), []any{}})
			}
		case event.Ryukyoku:
			if kyoku != nil {
				flush([]any{recordDraw})
			}
		}
	}
	return out
}

func scoreDelta(now, start [4]int) []int {
	out := make([]int, 4)
	for i := range out {
		out[i] = now[i] - start[i]
	}
	return out
}

// TenhouJSON 序列化为 Tenhou JSON 字符串
func TenhouJSON(history []event.Event) (string, error) {
	return json.MarshalToString(ToTenhou(history))
}
