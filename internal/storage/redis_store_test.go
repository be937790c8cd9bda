package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return NewRedisStore(client), mr
}

func sampleArchive(id string) *MatchArchive {
	return &MatchArchive{
		MatchID:     id,
		Names:       [4]string{"east", "south", "west", "north"},
		FinalScores: [4]int{31000, 23000, 23000, 23000},
		EndReason:   "finished",
		TenhouLog:   `{"title":["",""]}`,
		MJAILog:     `{"type":"start_game"}`,
		ArchivedAt:  time.Now().Unix(),
	}
}

func TestRedisStore_SaveLoadDeleteMatch(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	archive := sampleArchive("m-1")
	require.NoError(t, store.SaveMatch(ctx, archive))

	loaded, err := store.LoadMatch(ctx, "m-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, archive, loaded)

	require.NoError(t, store.DeleteMatch(ctx, "m-1"))

	loaded, err = store.LoadMatch(ctx, "m-1")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStore_SaveNilIsNoop(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()

	assert.NoError(t, store.SaveMatch(context.Background(), nil))
}

func TestRedisStore_ListMatchIDs(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, store.SaveMatch(ctx, sampleArchive("m-1")))
	require.NoError(t, store.SaveMatch(ctx, sampleArchive("m-2")))

	ids, err := store.ListMatchIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"m-1", "m-2"}, ids)
}

func TestRedisStore_Expiration(t *testing.T) {
	store, mr := newTestRedisStore(t)
	defer mr.Close()
	ctx := context.Background()

	require.NoError(t, store.SaveMatch(ctx, sampleArchive("m-1")))
	require.NoError(t, store.SetMatchExpiration(ctx, "m-1", time.Minute))

	mr.FastForward(2 * time.Minute)

	loaded, err := store.LoadMatch(ctx, "m-1")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}
