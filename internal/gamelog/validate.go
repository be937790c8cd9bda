package gamelog

import (
	"errors"
	"fmt"
)

// ErrInvalidLog 牌谱结构校验失败
var ErrInvalidLog = errors.New("invalid tenhou log")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidLog}, args...)...)
}

// ValidateTenhou 对 Tenhou JSON 牌谱做结构校验：
// 元数据形状、牌编号范围、单局内每种牌出现不超过 4 次、终局记录格式。
func ValidateTenhou(raw []byte) error {
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return invalid("not a JSON object: %v", err)
	}

	if !isStringArray(data["title"], 2) {
		return invalid("title must be a 2-element string array")
	}
	if !isStringArray(data["name"], 4) {
		return invalid("name must be a 4-element string array")
	}

	rule, ok := data["rule"].(map[string]any)
	if !ok {
		return invalid("rule must be an object")
	}
	disp, ok := rule["disp"].(string)
	if !ok || disp == "" {
		return invalid("rule.disp must be a non-empty string")
	}
	aka, ok := asInt(rule["aka"])
	if !ok || aka < 0 {
		return invalid("rule.aka must be a non-negative integer")
	}

	rounds, ok := data["log"].([]any)
	if !ok || len(rounds) < 1 {
		return invalid("log must contain at least one round")
	}
	for i, rd := range rounds {
		if err := validateRound(rd, i); err != nil {
			return err
		}
	}
	return nil
}

func validateRound(v any, idx int) error {
	rd, ok := v.([]any)
	if !ok || len(rd) < 5 {
		return invalid("round[%d] must be an array with at least 5 elements", idx)
	}

	info, ok := asIntArray(rd[0])
	if !ok || len(info) != 3 {
		return invalid("round[%d][0] must be 3 integers", idx)
	}
	for _, x := range info {
		if x < 0 {
			return invalid("round[%d][0] must be non-negative", idx)
		}
	}

	scores, ok := asIntArray(rd[1])
	if !ok || len(scores) != 4 {
		return invalid("round[%d][1] must be 4 integers", idx)
	}

	counts := map[int]int{}

	// 宝牌与里宝牌指示牌
	for _, pos := range []int{2, 3} {
		codes, ok := asIntArray(rd[pos])
		if !ok {
			return invalid("round[%d][%d] must be an integer array", idx, pos)
		}
		for _, c := range codes {
			if c < 11 || c > 47 {
				return invalid("round[%d][%d]: tile code %d out of range", idx, pos, c)
			}
			counts[c]++
		}
	}

	// 配牌
	for pos := 4; pos < 8 && pos < len(rd); pos++ {
		codes, ok := asIntArray(rd[pos])
		if !ok {
			return invalid("round[%d][%d] must be an integer array", idx, pos)
		}
		for _, c := range codes {
			if c < 11 || c > 47 {
				return invalid("round[%d][%d]: tile code %d out of range", idx, pos, c)
			}
			counts[c]++
		}
	}

	// 各家行动序列：牌编号或标记字符串
	for pos := 8; pos < len(rd)-1; pos++ {
		row, ok := rd[pos].([]any)
		if !ok {
			return invalid("round[%d][%d] must be an array", idx, pos)
		}
		for _, item := range row {
			if c, ok := asInt(item); ok {
				if c < 11 || c > 47 {
					return invalid("round[%d][%d]: tile code %d out of range", idx, pos, c)
				}
				counts[c]++
				continue
			}
			if _, ok := item.(string); !ok {
				return invalid("round[%d][%d]: entries must be tile codes or strings", idx, pos)
			}
		}
	}

	for code, n := range counts {
		if n > 4 {
			return invalid("round[%d]: tile code %d appears %d times", idx, code, n)
		}
	}

	end, ok := rd[len(rd)-1].([]any)
	if !ok || len(end) == 0 {
		return invalid("round[%d]: missing terminal record", idx)
	}
	marker, ok := end[0].(string)
	if !ok {
		return invalid("round[%d]: terminal record must start with a string", idx)
	}
	switch marker {
	case recordDraw, "liuju":
		if len(end) != 1 {
			return invalid("round[%d]: draw record must be a single element", idx)
		}
	case recordWin, "hule":
		if len(end) < 2 {
			return invalid("round[%d]: win record needs a score delta", idx)
		}
		delta, ok := asIntArray(end[1])
		if !ok || len(delta) != 4 {
			return invalid("round[%d]: win record delta must be 4 integers", idx)
		}
	default:
		return invalid("round[%d]: unknown terminal record %q", idx, marker)
	}
	return nil
}

func isStringArray(v any, n int) bool {
	arr, ok := v.([]any)
	if !ok || len(arr) != n {
		return false
	}
	for _, x := range arr {
		if _, ok := x.(string); !ok {
			return false
		}
	}
	return true
}

// asInt JSON 数值以 float64 解出，只接受整数值
func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func asIntArray(v any) ([]int, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(arr))
	for _, x := range arr {
		n, ok := asInt(x)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}
