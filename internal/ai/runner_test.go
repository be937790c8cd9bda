package ai

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirokuma-dev/riichi-engine/internal/tile"
)

// echoScript 写一个忽略参数、逐行回显 stdin 的假 AI 进程
func echoScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "echo_ai.sh")
	script := "#!/bin/sh\nwhile read line; do echo \"$line\"; done\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestExternalAIRoundTrip(t *testing.T) {
	t.Parallel()

	a := NewExternalAI(echoScript(t), ".", 0)
	require.NoError(t, a.Start(context.Background()))
	defer a.Stop()

	// Start 幂等
	require.NoError(t, a.Start(context.Background()))

	require.NoError(t, a.Send(`{"type":"start_game","names":["a","b","c","d"]}`))
	got, err := a.Receive()
	require.NoError(t, err)
	assert.Equal(t, `{"type":"start_game","names":["a","b","c","d"]}`, got)

	require.NoError(t, a.Send(`{"type":"draw_tile","player_index":1}`))
	got, err = a.Receive()
	require.NoError(t, err)
	assert.Equal(t, `{"type":"draw_tile","player_index":1}`, got)

	assert.NoError(t, a.Stop())
}

// fakeAIScript 写一个对任何输入都回复固定动作的假 AI 进程
func fakeAIScript(t *testing.T, reply string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake_ai.sh")
	script := "#!/bin/sh\nwhile read line; do echo '" + reply + "'; done\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestExternalAITurnAppliesAction(t *testing.T) {
	t.Parallel()

	a := NewExternalAI(fakeAIScript(t, `{"type":"skip","player_index":0}`), ".", 0)
	defer a.Stop()

	eng := newEngine(t, 11)
	st := eng.State()

	got, err := a.Turn()(eng, 0)
	require.NoError(t, err)
	assert.Equal(t, tile.Tile{}, got)

	// skip 快进了自己的回合，下家自动摸牌
	assert.Equal(t, 1, st.CurrentPlayer)
	assert.Len(t, st.Players[1].Hand.Tiles, 14)
}

func TestExternalAITurnRejectsMalformedReply(t *testing.T) {
	t.Parallel()

	a := NewExternalAI(fakeAIScript(t, `{"type":"discard"}`), ".", 0)
	defer a.Stop()

	eng := newEngine(t, 11)
	before := len(eng.History())
	_, err := a.Turn()(eng, 0)
	require.Error(t, err)
	assert.Len(t, eng.History(), before, "坏消息不应触碰引擎")
}

func TestExternalAIReceiveTimeout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "slow_ai.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nsleep 60\n"), 0o755))

	a := NewExternalAI(path, ".", 0)
	a.Timeout = 50 * time.Millisecond
	require.NoError(t, a.Start(context.Background()))
	defer a.Stop()

	_, err := a.Receive()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response")
}

func TestExternalAIRequiresStart(t *testing.T) {
	t.Parallel()

	a := NewExternalAI("nonexistent", ".", 0)
	assert.Error(t, a.Send("hello"))
	_, err := a.Receive()
	assert.Error(t, err)
	assert.NoError(t, a.Stop())
}

func TestExternalAIStartFailure(t *testing.T) {
	t.Parallel()

	a := NewExternalAI("/does/not/exist", ".", 0)
	assert.Error(t, a.Start(context.Background()))
}
