package apperrors

import "fmt"

// 错误码（传输层据此映射响应类型）
const (
	CodeInvalidAction = 1001
	CodeNotYourTurn   = 1002
	CodeGameOver      = 1003
	CodeUnknownAction = 1004
	CodeScoring       = 1005
	CodeMatchNotFound = 1006
)

// GameError 引擎错误。所有可恢复的规则违例都以它为根，
// parent 形成分类链，errors.Is 沿链匹配。
type GameError struct {
	Code    int
	Message string
	parent  *GameError
}

func (e *GameError) Error() string {
	return e.Message
}

// Is 支持 errors.Is 按分类链匹配：NotYourTurn 也是 InvalidAction
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	if !ok {
		return false
	}
	for c := e; c != nil; c = c.parent {
		if c == t {
			return true
		}
	}
	return false
}

// 预定义错误
var (
	// ErrInvalidAction 动作在当前状态下不合法，状态未发生任何变化
	ErrInvalidAction = &GameError{Code: CodeInvalidAction, Message: "invalid action"}
	// ErrNotYourTurn 轮次违例，是 ErrInvalidAction 的细分
	ErrNotYourTurn = &GameError{Code: CodeNotYourTurn, Message: "not your turn", parent: ErrInvalidAction}
	// ErrGameOver 对局已结束
	ErrGameOver = &GameError{Code: CodeGameOver, Message: "game is over", parent: ErrInvalidAction}
	// ErrUnknownAction 无法识别的动作类型
	ErrUnknownAction = &GameError{Code: CodeUnknownAction, Message: "unknown action type"}
	// ErrScoring 显式和牌结算时算点失败
	ErrScoring = &GameError{Code: CodeScoring, Message: "scoring failed"}
	// ErrMatchNotFound 注册表中不存在该对局
	ErrMatchNotFound = &GameError{Code: CodeMatchNotFound, Message: "match not found"}
)

// Invalid 返回带说明的 ErrInvalidAction 包装
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{error(ErrInvalidAction)}, args...)...)
}

// NotTurn 返回带说明的 ErrNotYourTurn 包装
func NotTurn(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{error(ErrNotYourTurn)}, args...)...)
}
