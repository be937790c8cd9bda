package ai

import (
	"fmt"
	"slices"
	"sync"

	"github.com/shirokuma-dev/riichi-engine/internal/engine"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// AI 注册名
const (
	// TypeSimple 内置向听数 AI
	TypeSimple = "simple"
	// TypeExternal 外部子进程 AI（见 ExternalAI.Turn）
	TypeExternal = "external"
)

// TurnFunc 替一个座位走完一手并返回打出（或放过）的牌
type TurnFunc func(eng *engine.Engine, seat int) (tile.Tile, error)

// Registry 按名称注册的 AI 集合。内置 simple AI 默认在册，
// 外部引擎可通过 Register 挂接自己的 TurnFunc。
type Registry struct {
	mu     sync.RWMutex
	funcs  map[string]TurnFunc
	simple *Simple
}

// NewRegistry 创建注册表并登记内置 AI
func NewRegistry(seed int64) *Registry {
	s := NewSimple(seed)
	return &Registry{
		funcs:  map[string]TurnFunc{TypeSimple: s.SmartTurn},
		simple: s,
	}
}

// Register 登记（或覆盖）一个 AI
func (r *Registry) Register(name string, fn TurnFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

// Get 按名称取出 AI
func (r *Registry) Get(name string) (TurnFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// AutoPlayTurn 让 AI 推进一步：先替等待鸣牌的各家决策
// （simple AI 会在有利时鸣牌，否则过），窗口清空后替当前
// 玩家打完一手。claimPlayers 非 nil 时只代打其中列出的座位，
// 窗口未清空则原样返回最近的打出牌。
//
// seat 为 -1 表示替当前玩家行动；指定座位但轮次已被鸣牌
// 改变时不代打，返回新当前玩家刚摸到的牌。
func (r *Registry) AutoPlayTurn(eng *engine.Engine, seat int, aiType string, claimPlayers []int) (tile.Tile, error) {
	fn, ok := r.Get(aiType)
	if !ok {
		return tile.Tile{}, fmt.Errorf("unknown ai type %q", aiType)
	}

	st := eng.State()
	claims := slices.Clone(st.WaitingForClaims)
	if claimPlayers != nil {
		claims = slices.DeleteFunc(claims, func(p int) bool {
			return !slices.Contains(claimPlayers, p)
		})
	}

	for _, p := range claims {
		// 前面的座位鸣走了这张牌，窗口已经关闭
		if !waitingFor(st, p) {
			continue
		}
		if aiType == TypeSimple {
			claimed, err := r.simple.ClaimMeld(eng, p)
			if err != nil {
				return tile.Tile{}, err
			}
			if claimed {
				continue
			}
		}
		if err := eng.Skip(p); err != nil {
			return tile.Tile{}, err
		}
	}
	if len(st.WaitingForClaims) > 0 {
		return *st.LastDiscard, nil
	}

	current := st.CurrentPlayer
	if seat >= 0 && current != seat {
		p := st.Players[current]
		if last, ok := p.LastDrawn(); ok {
			return last, nil
		}
		return tile.Tile{}, nil
	}
	return fn(eng, current)
}
