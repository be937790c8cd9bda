package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	matchKeyPrefix = "match:"

	// 牌谱归档过期时间
	archiveExpiration = 7 * 24 * time.Hour
)

// MatchArchive 一场终局对局的归档数据（用于 Redis 序列化）。
// 同一场牌谱同时保留 Tenhou 与 MJAI 两种投影。
type MatchArchive struct {
	MatchID     string    `json:"match_id"`
	Names       [4]string `json:"names"`
	FinalScores [4]int    `json:"final_scores"`
	EndReason   string    `json:"end_reason"`
	TenhouLog   string    `json:"tenhou_log"`
	MJAILog     string    `json:"mjai_log"`
	ArchivedAt  int64     `json:"archived_at"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveMatch 保存对局归档到 Redis
func (rs *RedisStore) SaveMatch(ctx context.Context, archive *MatchArchive) error {
	if archive == nil {
		return nil
	}

	jsonData, err := json.Marshal(archive)
	if err != nil {
		return fmt.Errorf("序列化对局归档失败: %w", err)
	}

	key := matchKeyPrefix + archive.MatchID
	return rs.client.Set(ctx, key, jsonData, archiveExpiration).Err()
}

// LoadMatch 从 Redis 加载对局归档，不存在时返回 (nil, nil)
func (rs *RedisStore) LoadMatch(ctx context.Context, matchID string) (*MatchArchive, error) {
	key := matchKeyPrefix + matchID
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // 归档不存在
		}
		return nil, err
	}

	var archive MatchArchive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, fmt.Errorf("反序列化对局归档失败: %w", err)
	}

	return &archive, nil
}

// DeleteMatch 从 Redis 删除对局归档
func (rs *RedisStore) DeleteMatch(ctx context.Context, matchID string) error {
	key := matchKeyPrefix + matchID
	return rs.client.Del(ctx, key).Err()
}

// ListMatchIDs 获取所有已归档的对局 ID
func (rs *RedisStore) ListMatchIDs(ctx context.Context) ([]string, error) {
	keys, err := rs.client.Keys(ctx, matchKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(keys))
	for i, key := range keys {
		ids[i] = key[len(matchKeyPrefix):]
	}
	return ids, nil
}

// SetMatchExpiration 调整单场归档的过期时间
func (rs *RedisStore) SetMatchExpiration(ctx context.Context, matchID string, expiration time.Duration) error {
	key := matchKeyPrefix + matchID
	return rs.client.Expire(ctx, key, expiration).Err()
}
