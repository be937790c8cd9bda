package tile

import "fmt"

// Suit 牌的花色
type Suit string

const (
	Man    Suit = "man"    // 万子
	Pin    Suit = "pin"    // 筒子
	Sou    Suit = "sou"    // 索子
	Wind   Suit = "wind"   // 风牌 1-4 = 东南西北
	Dragon Suit = "dragon" // 三元牌 1-3 = 白發中
)

// Tile 一张麻将牌。数牌 1-9，风牌 1-4，三元牌 1-3。
// 相等性按值比较，引擎内部不依赖对象同一性。
type Tile struct {
	Suit  Suit `json:"suit"`
	Value int  `json:"value"`
}

// windNames 风牌名称（与事件 payload 中的 seat_wind/round_wind 一致）
var windNames = [4]string{"east", "south", "west", "north"}

// windSymbols 风牌显示用符号
var windSymbols = [4]string{"東", "南", "西", "北"}

// dragonSymbols 三元牌显示用符号
var dragonSymbols = [3]string{"白", "發", "中"}

func (t Tile) String() string {
	switch t.Suit {
	case Man:
		return fmt.Sprintf("%dm", t.Value)
	case Pin:
		return fmt.Sprintf("%dp", t.Value)
	case Sou:
		return fmt.Sprintf("%ds", t.Value)
	case Wind:
		if t.Value >= 1 && t.Value <= 4 {
			return windSymbols[t.Value-1]
		}
	case Dragon:
		if t.Value >= 1 && t.Value <= 3 {
			return dragonSymbols[t.Value-1]
		}
	}
	return fmt.Sprintf("%s%d", t.Suit, t.Value)
}

// IsNumbered 是否为数牌
func (t Tile) IsNumbered() bool {
	return t.Suit == Man || t.Suit == Pin || t.Suit == Sou
}

// IsHonor 是否为字牌
func (t Tile) IsHonor() bool {
	return t.Suit == Wind || t.Suit == Dragon
}

// IsTerminalOrHonor 是否为幺九牌（1、9 或字牌）
func (t Tile) IsTerminalOrHonor() bool {
	if t.IsHonor() {
		return true
	}
	return t.Value == 1 || t.Value == 9
}

// IsValid 检查花色与数值组合是否合法
func (t Tile) IsValid() bool {
	switch t.Suit {
	case Man, Pin, Sou:
		return t.Value >= 1 && t.Value <= 9
	case Wind:
		return t.Value >= 1 && t.Value <= 4
	case Dragon:
		return t.Value >= 1 && t.Value <= 3
	}
	return false
}

// Index34 返回 0-33 的牌种索引（万 0-8，筒 9-17，索 18-26，风 27-30，三元 31-33）
func (t Tile) Index34() int {
	switch t.Suit {
	case Man:
		return t.Value - 1
	case Pin:
		return 9 + t.Value - 1
	case Sou:
		return 18 + t.Value - 1
	case Wind:
		return 27 + t.Value - 1
	case Dragon:
		return 31 + t.Value - 1
	}
	return -1
}

// WindName 返回座风/场风名称，i 为 0-3（东起）
func WindName(i int) string {
	return windNames[i%4]
}

// NewSet 生成完整的 136 张牌（每种 4 张）
func NewSet() []Tile {
	tiles := make([]Tile, 0, 136)
	for _, suit := range []Suit{Man, Pin, Sou} {
		for value := 1; value <= 9; value++ {
			for i := 0; i < 4; i++ {
				tiles = append(tiles, Tile{Suit: suit, Value: value})
			}
		}
	}
	for value := 1; value <= 4; value++ {
		for i := 0; i < 4; i++ {
			tiles = append(tiles, Tile{Suit: Wind, Value: value})
		}
	}
	for value := 1; value <= 3; value++ {
		for i := 0; i < 4; i++ {
			tiles = append(tiles, Tile{Suit: Dragon, Value: value})
		}
	}
	return tiles
}

// Counts 统计牌列表中每种牌的数量
func Counts(tiles []Tile) [34]int {
	var counts [34]int
	for _, t := range tiles {
		if idx := t.Index34(); idx >= 0 {
			counts[idx]++
		}
	}
	return counts
}
