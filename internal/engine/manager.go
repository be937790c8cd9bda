package engine

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/shirokuma-dev/riichi-engine/internal/apperrors"
)

// Manager 对局注册表，按 ID 托管多个并行对局。
// 引擎本身串行，注册表只负责查找与生命周期。
type Manager struct {
	mu      sync.RWMutex
	matches map[string]*Engine
}

// NewManager 创建空注册表
func NewManager() *Manager {
	return &Manager{matches: map[string]*Engine{}}
}

// Create 新建对局并返回其 ID
func (m *Manager) Create(opts Options) (string, *Engine) {
	id := uuid.NewString()
	e := New(opts)
	m.mu.Lock()
	m.matches[id] = e
	m.mu.Unlock()
	return id, e
}

// Get 按 ID 查找对局
func (m *Manager) Get(id string) (*Engine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.matches[id]
	if !ok {
		return nil, apperrors.ErrMatchNotFound
	}
	return e, nil
}

// Remove 移除对局（对局结束后归档时调用）
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.matches, id)
	m.mu.Unlock()
}

// IDs 当前托管的全部对局 ID（有序）
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.matches))
	for id := range m.matches {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
