package event

import (
	"github.com/shirokuma-dev/riichi-engine/internal/player"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// 事件名（对外可见的唯一状态变更记录）
const (
	NameStartGame    = "start_game"
	NameStartKyoku   = "start_kyoku"
	NameDrawTile     = "draw_tile"
	NameDiscard      = "discard"
	NameSkip         = "skip"
	NameClaimsClosed = "claims_closed"
	NameMeld         = "meld"
	NameRiichi       = "riichi"
	NameTsumo        = "tsumo"
	NameRon          = "ron"
	NameRyukyoku     = "ryukyoku"
	NameRoundEnd     = "round_end"
	NameEndGame      = "end_game"
	NameNextActions  = "next_actions"
)

// 流局原因
const (
	ReasonExhausted     = "exhausted"
	ReasonNineTerminals = "nine_terminals"
	ReasonFourWinds     = "four_winds"
	ReasonFourKans      = "four_kans"
	ReasonFourRiichi    = "four_riichi"
)

// 终局原因
const (
	EndReasonFinished   = "finished"
	EndReasonBankruptcy = "bankruptcy"
	EndReasonRequested  = "requested"
)

// Event 引擎发出的不可变事件。每种事件一个具体类型，
// 序列化器对事件做穷举 type switch。
type Event interface {
	Name() string
}

// StartGame 对局开始
type StartGame struct {
	Names     [4]string `json:"names"`
	MaxRounds int       `json:"max_rounds"`
}

func (StartGame) Name() string { return NameStartGame }

// StartKyoku 开新局：配牌、庄家与翻开的宝牌指示牌
type StartKyoku struct {
	Dealer         int            `json:"dealer"`
	RoundNumber    int            `json:"round_number"`
	Honba          int            `json:"honba"`
	Names          [4]string      `json:"names"`
	Scores         [4]int         `json:"scores"`
	DoraIndicators []tile.Tile    `json:"dora_indicators"`
	Hands          [4][]tile.Tile `json:"hands"`
}

func (StartKyoku) Name() string { return NameStartKyoku }

// DrawTile 摸牌
type DrawTile struct {
	PlayerIndex int       `json:"player_index"`
	Tile        tile.Tile `json:"tile"`
	Remaining   int       `json:"remaining"`
}

func (DrawTile) Name() string { return NameDrawTile }

// Discard 打牌
type Discard struct {
	PlayerIndex int       `json:"player_index"`
	Tile        tile.Tile `json:"tile"`
	Tsumogiri   bool      `json:"tsumogiri"`
}

func (Discard) Name() string { return NameDiscard }

// Skip 过（放弃鸣牌或快进自己的回合）
type Skip struct {
	PlayerIndex int `json:"player_index"`
}

func (Skip) Name() string { return NameSkip }

// ClaimsClosed 鸣牌窗口关闭
type ClaimsClosed struct{}

func (ClaimsClosed) Name() string { return NameClaimsClosed }

// Meld 鸣牌/开杠
type Meld struct {
	PlayerIndex int         `json:"player_index"`
	Meld        player.Meld `json:"meld"`
}

func (Meld) Name() string { return NameMeld }

// Riichi 立直宣言
type Riichi struct {
	PlayerIndex  int `json:"player_index"`
	Score        int `json:"score"`
	RiichiSticks int `json:"riichi_sticks"`
}

func (Riichi) Name() string { return NameRiichi }

// Tsumo 自摸和牌
type Tsumo struct {
	PlayerIndex   int         `json:"player_index"`
	Tile          tile.Tile   `json:"tile"`
	Han           int         `json:"han"`
	Fu            int         `json:"fu"`
	CostTotal     int         `json:"cost_total"`
	Yaku          []string    `json:"yaku"`
	Scores        [4]int      `json:"scores"`
	UraIndicators []tile.Tile `json:"ura_indicators,omitempty"`
}

func (Tsumo) Name() string { return NameTsumo }

// Ron 荣和
type Ron struct {
	PlayerIndex   int         `json:"player_index"`
	FromPlayer    int         `json:"from_player"`
	Tile          tile.Tile   `json:"tile"`
	Han           int         `json:"han"`
	Fu            int         `json:"fu"`
	CostTotal     int         `json:"cost_total"`
	Yaku          []string    `json:"yaku"`
	Scores        [4]int      `json:"scores"`
	UraIndicators []tile.Tile `json:"ura_indicators,omitempty"`
}

func (Ron) Name() string { return NameRon }

// Ryukyoku 流局（荒牌或途中流局），含各家听牌状态与罚符后的点数
type Ryukyoku struct {
	Reason string  `json:"reason"`
	Tenpai [4]bool `json:"tenpai"`
	Scores [4]int  `json:"scores"`
}

func (Ryukyoku) Name() string { return NameRyukyoku }

// RoundEnd 一局结束。Winner 为 nil 表示流局。
type RoundEnd struct {
	Winner *int   `json:"winner"`
	Scores [4]int `json:"scores"`
}

func (RoundEnd) Name() string { return NameRoundEnd }

// EndGame 对局终结
type EndGame struct {
	Reason string `json:"reason"`
	Scores [4]int `json:"scores"`
}

func (EndGame) Name() string { return NameEndGame }

// NextActions 下一行动者及其可选动作（给外部 AI/界面的提示）
type NextActions struct {
	PlayerIndex int      `json:"player_index"`
	Actions     []string `json:"actions"`
}

func (NextActions) Name() string { return NameNextActions }
