package server

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shirokuma-dev/riichi-engine/internal/logger"
	"github.com/shirokuma-dev/riichi-engine/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client 一条 WebSocket 连接。写操作经 send 通道串行化，
// 一个连接同一时间最多关注一场对局。
type Client struct {
	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu      sync.RWMutex
	matchID string

	closed    atomic.Bool
	closeOnce sync.Once
}

// NewClient 创建客户端
func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		server: s,
		conn:   conn,
		send:   make(chan []byte, 64),
	}
}

// MatchID 当前关注的对局
func (c *Client) MatchID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.matchID
}

func (c *Client) setMatchID(id string) {
	c.mu.Lock()
	c.matchID = id
	c.mu.Unlock()
}

// Send 异步发送原始消息，发送缓冲满时丢弃并断开连接
func (c *Client) Send(raw []byte) {
	if c.closed.Load() {
		return
	}
	select {
	case c.send <- raw:
	default:
		log.Printf("⚠️ 发送缓冲已满，断开客户端")
		c.Close()
	}
}

// SendMessage 序列化并发送一条协议消息
func (c *Client) SendMessage(t protocol.MessageType, payload any) {
	msg, err := protocol.NewMessage(t, payload)
	if err != nil {
		log.Printf("消息序列化失败: %v", err)
		return
	}
	buf := protocol.GetBuffer()
	defer protocol.PutBuffer(buf)
	if err := json.NewEncoder(buf).Encode(msg); err != nil {
		log.Printf("消息编码失败: %v", err)
		return
	}
	raw := make([]byte, buf.Len())
	copy(raw, buf.Bytes())
	c.Send(raw)
}

// SendError 发送错误响应
func (c *Client) SendError(err error) {
	c.SendMessage(protocol.MsgError, protocol.ErrorFrom(err))
}

// Close 关闭连接并注销
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.send)
		c.server.unregisterClient(c)
	})
}

// ReadPump 从连接读取消息并派发给处理器
func (c *Client) ReadPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			log.Printf("[PANIC] readPump panic recovered: %v", r)
		}
		c.Close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("读取错误: %v", err)
			}
			return
		}

		msg := protocol.GetMessage()
		if err := json.Unmarshal(raw, msg); err != nil {
			protocol.PutMessage(msg)
			c.SendError(err)
			continue
		}
		c.server.handleMessage(c, msg)
		protocol.PutMessage(msg)
	}
}

// WritePump 把 send 通道中的消息写入连接并维持心跳
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			log.Printf("[PANIC] writePump panic recovered: %v", r)
		}
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
