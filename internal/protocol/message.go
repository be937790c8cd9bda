package protocol

import (
	"encoding/json"
	"errors"

	"github.com/shirokuma-dev/riichi-engine/internal/apperrors"
)

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgCreateMatch MessageType = "create_match" // 创建对局
	MsgListMatches MessageType = "list_matches" // 列出对局
	MsgGetState    MessageType = "get_state"    // 查询对局状态
	MsgAction      MessageType = "action"       // 提交动作
	MsgAutoPlay    MessageType = "auto_play"    // 让内置 AI 走一步
)

// 服务端 → 客户端 消息类型
const (
	MsgMatchCreated MessageType = "match_created" // 对局创建成功
	MsgMatchList    MessageType = "match_list"    // 对局列表
	MsgState        MessageType = "state"         // 状态快照
	MsgEvents       MessageType = "events"        // 新产生的事件序列
	MsgError        MessageType = "error"         // 错误响应
)

// --- 客户端请求 Payloads ---

// CreateMatchPayload 创建对局请求
type CreateMatchPayload struct {
	Names     [4]string `json:"names"`
	MaxRounds int       `json:"max_rounds,omitempty"`
	Seed      int64     `json:"seed,omitempty"`
}

// MatchPayload 按对局 ID 的查询请求
type MatchPayload struct {
	MatchID string `json:"match_id"`
}

// ActionPayload 提交动作请求
type ActionPayload struct {
	MatchID string `json:"match_id"`
	Action  Action `json:"action"`
}

// --- 服务端响应 Payloads ---

// MatchCreatedPayload 对局创建成功响应
type MatchCreatedPayload struct {
	MatchID string `json:"match_id"`
}

// MatchListPayload 对局列表响应
type MatchListPayload struct {
	MatchIDs []string `json:"match_ids"`
}

// EventsPayload 一批按发生顺序排列的事件（MJAI 行格式）
type EventsPayload struct {
	MatchID string   `json:"match_id"`
	Events  []string `json:"events"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ErrorFrom 把引擎错误映射成线上的错误响应。
// 非 GameError 一律归为 invalid action，不向客户端泄露内部细节。
func ErrorFrom(err error) ErrorPayload {
	var ge *apperrors.GameError
	if errors.As(err, &ge) {
		return ErrorPayload{Code: ge.Code, Message: err.Error()}
	}
	return ErrorPayload{Code: apperrors.CodeInvalidAction, Message: err.Error()}
}

// NewMessage 组装带序列化负载的消息
func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
