// Package cache はRedisによる読み取りキャッシュを提供する。
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss はキーが存在しないことを示す。
var ErrMiss = errors.New("cache: key not found")

// RedisStore はRedisをバックエンドとするキャッシュストア。
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore は指定アドレスのRedisに接続するRedisStoreを生成する。
func NewRedisStore(addr string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: client}
}

// NewRedisStoreFromClient は既存のクライアントからRedisStoreを生成する。
// テストでミニレディスなどを注入する場合に使用する。
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get は指定キーの値を取得する。キーが存在しない場合はErrMissを返す。
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrMiss
	}
	if err != nil {
		return "", fmt.Errorf("キャッシュの取得に失敗しました: %w", err)
	}
	return val, nil
}

// Set は指定キーに値をTTL付きで保存する。
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュの保存に失敗しました: %w", err)
	}
	return nil
}

// Delete は指定キーを削除する。キーが存在しなくてもエラーにしない。
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("キャッシュの削除に失敗しました: %w", err)
	}
	return nil
}

// Close はRedis接続を閉じる。
func (s *RedisStore) Close() error {
	return s.client.Close()
}
