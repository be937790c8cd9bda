package protocol

import (
	"bytes"
	"sync"
)

// 高频路径上的消息与缓冲复用，减轻 GC 压力
var (
	messagePool = sync.Pool{
		New: func() any {
			return &Message{}
		},
	}

	bufferPool = sync.Pool{
		New: func() any {
			return new(bytes.Buffer)
		},
	}
)

// GetMessage 从池中取出一个 Message
func GetMessage() *Message {
	return messagePool.Get().(*Message)
}

// PutMessage 归还 Message，字段清零避免悬挂引用
func PutMessage(msg *Message) {
	if msg == nil {
		return
	}
	msg.Type = ""
	msg.Payload = nil
	messagePool.Put(msg)
}

// GetBuffer 从池中取出一个 bytes.Buffer
func GetBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

// PutBuffer 归还缓冲，内容清空但容量保留
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
