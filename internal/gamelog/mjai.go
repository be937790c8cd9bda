package gamelog

import (
	"fmt"
	"strings"

	"github.com/shirokuma-dev/riichi-engine/internal/event"
)

// MJAILine 把单个事件序列化成一条扁平的 {type,...} 消息
func MJAILine(ev event.Event) (string, error) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("mjai: encode %s: %w", ev.Name(), err)
	}
	flat := map[string]any{}
	if err := json.Unmarshal(raw, &flat); err != nil {
		return "", fmt.Errorf("mjai: flatten %s: %w", ev.Name(), err)
	}
	flat["type"] = ev.Name()
	return json.MarshalToString(flat)
}

// ToMJAI 把事件历史序列化为按行分隔的 MJAI 日志。
// 纯函数：同一历史总是产出同一字节序列。
func ToMJAI(history []event.Event) (string, error) {
	lines := make([]string, 0, len(history))
	for _, ev := range history {
		line, err := MJAILine(ev)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// ParseMJAI 把 MJAI 日志解析回类型化事件，空行跳过
func ParseMJAI(s string) ([]event.Event, error) {
	var out []event.Event
	for i, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var head struct {
			Type string `json:"type"`
		}
		if err := json.UnmarshalFromString(line, &head); err != nil {
			return nil, fmt.Errorf("mjai: line %d: %w", i+1, err)
		}
		ev, err := decodeEvent(head.Type, line)
		if err != nil {
			return nil, fmt.Errorf("mjai: line %d: %w", i+1, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

func decode[E event.Event](line string) (event.Event, error) {
	var e E
	err := json.UnmarshalFromString(line, &e)
	return e, err
}

// decodeEvent 按事件名穷举解码；新增事件种类时编译器逼着这里补分支
func decodeEvent(name, line string) (event.Event, error) {
	switch name {
	case event.NameStartGame:
		return decode[event.StartGame](line)
	case event.NameStartKyoku:
		return decode[event.StartKyoku](line)
	case event.NameDrawTile:
		return decode[event.DrawTile](line)
	case event.NameDiscard:
		return decode[event.Discard](line)
	case event.NameSkip:
		return decode[event.Skip](line)
	case event.NameClaimsClosed:
		return decode[event.ClaimsClosed](line)
	case event.NameMeld:
		return decode[event.Meld](line)
	case event.NameRiichi:
		return decode[event.Riichi](line)
	case event.NameTsumo:
		return decode[event.Tsumo](line)
	case event.NameRon:
		return decode[event.Ron](line)
	case event.NameRyukyoku:
		return decode[event.Ryukyoku](line)
	case event.NameRoundEnd:
		return decode[event.RoundEnd](line)
	case event.NameEndGame:
		return decode[event.EndGame](line)
	case event.NameNextActions:
		return decode[event.NextActions](line)
	default:
		return nil, fmt.Errorf("unknown event type %q", name)
	}
}

// MJAIToTenhou 跨格式转换：MJAI 行日志 → Tenhou JSON 牌谱
func MJAIToTenhou(s string) (string, error) {
	history, err := ParseMJAI(s)
	if err != nil {
		return "", err
	}
	return TenhouJSON(history)
}
