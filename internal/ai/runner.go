package ai

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/shirokuma-dev/riichi-engine/internal/engine"
	"github.com/shirokuma-dev/riichi-engine/internal/protocol"
	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// ExternalAI 以子进程方式运行的外部 AI 引擎。
// 通信协议为按行分隔的 MJAI 消息：事件写入 stdin，
// 决策从 stdout 逐行读出。
type ExternalAI struct {
	Executable string
	ModelDir   string
	PlayerID   int
	// Timeout 单次响应的思考时限，零值表示不限时
	Timeout time.Duration

	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
}

// NewExternalAI 创建外部 AI 包装，不启动进程
func NewExternalAI(executable, modelDir string, playerID int) *ExternalAI {
	return &ExternalAI{
		Executable: executable,
		ModelDir:   modelDir,
		PlayerID:   playerID,
	}
}

// Start 启动 AI 进程，已在运行时为幂等
func (a *ExternalAI) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cmd != nil {
		return nil
	}

	cmd := exec.CommandContext(ctx, a.Executable,
		strconv.Itoa(a.PlayerID), "--model-dir", a.ModelDir)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("ai runner: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ai runner: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ai runner: start %s: %w", a.Executable, err)
	}

	a.cmd = cmd
	a.stdin = stdin
	a.stdout = bufio.NewReader(stdout)
	return nil
}

// Send 向 AI 写入一条 MJAI 事件
func (a *ExternalAI) Send(message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cmd == nil {
		return fmt.Errorf("ai runner: process not started")
	}
	if _, err := io.WriteString(a.stdin, message+"\n"); err != nil {
		return fmt.Errorf("ai runner: send: %w", err)
	}
	return nil
}

// Receive 读取 AI 的下一条响应（去掉行尾空白）。
// Timeout 非零时超时返回错误，此后进程应当被 Stop 而不是复用。
func (a *ExternalAI) Receive() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cmd == nil {
		return "", fmt.Errorf("ai runner: process not started")
	}

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := a.stdout.ReadString('\n')
		ch <- result{line, err}
	}()

	var res result
	if a.Timeout > 0 {
		select {
		case res = <-ch:
		case <-time.After(a.Timeout):
			return "", fmt.Errorf("ai runner: no response within %s", a.Timeout)
		}
	} else {
		res = <-ch
	}
	if res.err != nil && res.line == "" {
		return "", fmt.Errorf("ai runner: receive: %w", res.err)
	}
	return strings.TrimSpace(res.line), nil
}

// Turn 返回把座位行动交给外部引擎的 TurnFunc：推送该座位
// 视角的局面快照，读回一条动作消息并应用到引擎。
func (a *ExternalAI) Turn() TurnFunc {
	return func(eng *engine.Engine, seat int) (tile.Tile, error) {
		if err := a.Start(context.Background()); err != nil {
			return tile.Tile{}, err
		}
		view := protocol.Snapshot(eng, seat)
		raw, err := json.Marshal(view)
		if err != nil {
			return tile.Tile{}, fmt.Errorf("ai runner: encode state: %w", err)
		}
		if err := a.Send(string(raw)); err != nil {
			return tile.Tile{}, err
		}
		line, err := a.Receive()
		if err != nil {
			return tile.Tile{}, err
		}
		act, err := protocol.ParseAction([]byte(line))
		if err != nil {
			return tile.Tile{}, fmt.Errorf("ai runner: bad action: %w", err)
		}
		if err := protocol.Apply(eng, act); err != nil {
			return tile.Tile{}, err
		}
		if act.Tile != nil {
			return *act.Tile, nil
		}
		return tile.Tile{}, nil
	}
}

// Stop 终止 AI 进程并等待退出，未启动时为空操作
func (a *ExternalAI) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cmd == nil {
		return nil
	}

	a.stdin.Close()
	if err := a.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		a.cmd.Process.Kill()
	}
	err := a.cmd.Wait()
	a.cmd = nil
	a.stdin = nil
	a.stdout = nil
	if err != nil {
		// 被 SIGTERM 终止属于预期退出
		if strings.Contains(err.Error(), "terminated") || strings.Contains(err.Error(), "killed") {
			return nil
		}
		return fmt.Errorf("ai runner: wait: %w", err)
	}
	return nil
}
