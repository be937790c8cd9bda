package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/shirokuma-dev/riichi-engine/internal/ai"
	"github.com/shirokuma-dev/riichi-engine/internal/config"
	"github.com/shirokuma-dev/riichi-engine/internal/engine"
	"github.com/shirokuma-dev/riichi-engine/internal/scoring"
	"github.com/shirokuma-dev/riichi-engine/internal/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
}

// Server WebSocket 服务器：对局注册表 + 事件推送 + 牌谱归档
type Server struct {
	config   *config.Config
	store    *storage.RedisStore
	matches  *engine.Manager
	registry *ai.Registry
	delegate scoring.Delegate

	clients   map[*Client]struct{}
	clientsMu sync.RWMutex
}

// New 组装服务器。store 为 nil 时终局不归档（纯内存模式）。
// 配置了外部 AI 可执行文件时将其注册为 external 类型。
func New(cfg *config.Config, store *storage.RedisStore, delegate scoring.Delegate) *Server {
	if delegate == nil {
		delegate = scoring.NewStandard()
	}
	registry := ai.NewRegistry(cfg.Game.Seed)
	if cfg.AI.Executable != "" {
		ext := ai.NewExternalAI(cfg.AI.Executable, cfg.AI.ModelDir, 0)
		ext.Timeout = cfg.Game.TurnTimeoutDuration()
		registry.Register(ai.TypeExternal, ext.Turn())
	}
	return &Server{
		config:   cfg,
		store:    store,
		matches:  engine.NewManager(),
		registry: registry,
		delegate: delegate,
		clients:  make(map[*Client]struct{}),
	}
}

// NewServer 创建服务器实例并连通 Redis
func NewServer(cfg *config.Config) (*Server, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	return New(cfg, storage.NewRedisStore(rdb), scoring.NewStandard()), nil
}

// Handler 返回挂好路由的 http.Handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start 启动服务器并阻塞
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	log.Printf("🀄 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())

	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		IdleTimeout:       60 * time.Second,
	}
	return server.ListenAndServe()
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn)
	s.registerClient(client)
	log.Printf("✅ 客户端 %s 已连接", conn.RemoteAddr())

	go client.ReadPump()
	go client.WritePump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client] = struct{}{}
}

func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	if _, ok := s.clients[client]; ok {
		delete(s.clients, client)
		log.Printf("❌ 客户端已断开")
	}
}

// GetOnlineCount 获取在线连接数
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// broadcastToMatch 把消息推给关注同一对局的所有客户端
func (s *Server) broadcastToMatch(matchID string, raw []byte) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for client := range s.clients {
		if client.MatchID() == matchID {
			client.Send(raw)
		}
	}
}
