package event

import "sync"

// Log 只增事件日志。history 保留整场对局用于回放，
// pending 是传输层拉取后即清空的 FIFO 缓冲，二者共用一把锁，
// 传输层任意延迟拉取都不影响引擎正确性。
type Log struct {
	mu      sync.Mutex
	history []Event
	pending []Event
}

// NewLog 创建空日志
func NewLog() *Log {
	return &Log{}
}

// Append 追加事件（同时进入 history 与 pending）
func (l *Log) Append(events ...Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = append(l.history, events...)
	l.pending = append(l.pending, events...)
}

// Drain 取走并清空 pending 缓冲
func (l *Log) Drain() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.pending
	l.pending = nil
	return out
}

// History 返回完整事件历史的副本
func (l *Log) History() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.history))
	copy(out, l.history)
	return out
}

// Len 历史事件条数
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.history)
}

// Last 最近一条历史事件
func (l *Log) Last() (Event, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.history) == 0 {
		return nil, false
	}
	return l.history[len(l.history)-1], true
}
