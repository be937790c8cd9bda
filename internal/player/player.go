package player

import (
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// MeldType 副露/暗杠类型
type MeldType string

const (
	Chi       MeldType = "chi"
	Pon       MeldType = "pon"
	Kan       MeldType = "kan" // 明杠
	ClosedKan MeldType = "closed_kan"
	AddedKan  MeldType = "added_kan"
)

// Meld 一组面子。CalledIndex 为被鸣的牌在 Tiles 中的位置，
// CalledFrom 为打出者相对鸣牌者的座位偏移（1=上家 2=对家 3=下家），
// 暗杠两者均为空。
type Meld struct {
	Tiles       []tile.Tile `json:"tiles"`
	Type        MeldType    `json:"type"`
	CalledIndex *int        `json:"called_index,omitempty"`
	CalledFrom  *int        `json:"called_from,omitempty"`
}

// IsOpen 是否为影响门清的副露（暗杠不算）
func (m Meld) IsOpen() bool {
	return m.Type != ClosedKan
}

// Hand 手牌：暗牌序列 + 副露列表。牌的增删一律按下标进行，
// 不依赖对象同一性。
type Hand struct {
	Tiles []tile.Tile `json:"tiles"`
	Melds []Meld      `json:"melds"`
}

// IndexOf 返回第一张等值牌的下标，没有则返回 -1
func (h *Hand) IndexOf(t tile.Tile) int {
	for i, ht := range h.Tiles {
		if ht == t {
			return i
		}
	}
	return -1
}

// CountOf 手中等值牌的张数
func (h *Hand) CountOf(t tile.Tile) int {
	n := 0
	for _, ht := range h.Tiles {
		if ht == t {
			n++
		}
	}
	return n
}

// Add 将一张牌加入手牌末尾
func (h *Hand) Add(t tile.Tile) {
	h.Tiles = append(h.Tiles, t)
}

// RemoveAt 按下标移除一张牌并返回它
func (h *Hand) RemoveAt(i int) tile.Tile {
	t := h.Tiles[i]
	h.Tiles = append(h.Tiles[:i], h.Tiles[i+1:]...)
	return t
}

// Remove 移除第一张等值牌，手中没有时返回 false
func (h *Hand) Remove(t tile.Tile) bool {
	i := h.IndexOf(t)
	if i < 0 {
		return false
	}
	h.RemoveAt(i)
	return true
}

// RemoveAll 移除 n 张等值牌，数量不足时不动手牌并返回 false
func (h *Hand) RemoveAll(t tile.Tile, n int) bool {
	if h.CountOf(t) < n {
		return false
	}
	for i := 0; i < n; i++ {
		h.Remove(t)
	}
	return true
}

// IsClosed 是否门清（只允许暗杠）
func (h *Hand) IsClosed() bool {
	for _, m := range h.Melds {
		if m.IsOpen() {
			return false
		}
	}
	return true
}

// MeldOf 返回指定类型且含等值牌的副露下标，没有则返回 -1
func (h *Hand) MeldOf(mt MeldType, t tile.Tile) int {
	for i, m := range h.Melds {
		if m.Type == mt && len(m.Tiles) > 0 && m.Tiles[0].Suit == t.Suit && m.Tiles[0].Value == t.Value {
			return i
		}
	}
	return -1
}

// Player 一个座位：手牌、得分、牌河与回合内标志
type Player struct {
	Name  string `json:"name"`
	Hand  Hand   `json:"hand"`
	Score int    `json:"score"`
	// River 牌河（打出顺序）
	River []tile.Tile `json:"river"`
	// Riichi 是否已立直
	Riichi bool `json:"riichi"`
	// SeatWind 座风（east/south/west/north）
	SeatWind string `json:"seat_wind"`
	// MustTsumogiri 下一次打牌必须为刚摸到的那张
	MustTsumogiri bool `json:"must_tsumogiri"`
	// IppatsuAvailable 一发是否仍然有效
	IppatsuAvailable bool `json:"ippatsu_available"`
}

// InitialScore 起始点数
const InitialScore = 25000

// New 创建玩家
func New(name string) *Player {
	return &Player{
		Name:     name,
		Score:    InitialScore,
		SeatWind: tile.WindName(0),
	}
}

// Draw 摸一张牌入手
func (p *Player) Draw(t tile.Tile) {
	p.Hand.Add(t)
}

// LastDrawn 手牌中最后摸入的牌（强制摸切校验用）
func (p *Player) LastDrawn() (tile.Tile, bool) {
	if len(p.Hand.Tiles) == 0 {
		return tile.Tile{}, false
	}
	return p.Hand.Tiles[len(p.Hand.Tiles)-1], true
}

// ResetForKyoku 开新局：清空手牌、牌河与回合标志，保留得分与名字
func (p *Player) ResetForKyoku(seatWind string) {
	p.Hand = Hand{}
	p.River = nil
	p.Riichi = false
	p.MustTsumogiri = false
	p.IppatsuAvailable = false
	p.SeatWind = seatWind
}
