// Package like はアルバムへのいいねのドメインロジックを提供する。
// いいね数の参照はRedisのリードスルーキャッシュを経由する。
package like

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/tunebox/internal/cache"
	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/repository"
)

// CountCache はいいね数キャッシュのインターフェース。
// cache.RedisStoreの部分集合として定義する。
type CountCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// AlbumFinder はアルバムの存在確認に必要なインターフェース。
type AlbumFinder interface {
	FindByID(ctx context.Context, id string) (*model.Album, error)
}

// MetricsRecorder はキャッシュヒット・ミスのメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordLikeCacheHit()
	RecordLikeCacheMiss()
}

// Service はアルバムいいねのサービス層。
type Service struct {
	likeRepo  repository.LikeRepository
	albumRepo AlbumFinder
	cache     CountCache
	cacheTTL  time.Duration
	metrics   MetricsRecorder
}

// NewService はServiceの新しいインスタンスを生成する。
// cacheとmetricsはnilを許容する（キャッシュなし・記録なしで動作する）。
func NewService(likeRepo repository.LikeRepository, albumRepo AlbumFinder, countCache CountCache, cacheTTL time.Duration, metrics MetricsRecorder) *Service {
	return &Service{
		likeRepo:  likeRepo,
		albumRepo: albumRepo,
		cache:     countCache,
		cacheTTL:  cacheTTL,
		metrics:   metrics,
	}
}

// cacheKey はアルバムごとのいいね数キャッシュのキーを返す。
func cacheKey(albumID string) string {
	return "album_likes:" + albumID
}

// Add は指定ユーザーのいいねをアルバムに追加する。
// アルバムが存在しない場合はNotFound、いいね済みの場合は重複エラーを返す。
func (s *Service) Add(ctx context.Context, userID, albumID string) error {
	album, err := s.albumRepo.FindByID(ctx, albumID)
	if err != nil {
		return fmt.Errorf("いいね対象アルバムの確認に失敗しました: %w", err)
	}
	if album == nil {
		return model.NewAlbumNotFoundError(albumID)
	}

	exists, err := s.likeRepo.Exists(ctx, userID, albumID)
	if err != nil {
		return err
	}
	if exists {
		return model.NewDuplicateLikeError()
	}

	id, err := s.likeRepo.Insert(ctx, "like-"+uuid.NewString(), userID, albumID)
	if err != nil {
		return err
	}
	if id == "" {
		return model.NewStoreInvariantError("いいねの追加に失敗しました")
	}

	s.invalidate(ctx, albumID)
	return nil
}

// Remove は指定ユーザーのいいねをアルバムから削除する。
// いいねが存在しない場合はNotFoundを返す。
func (s *Service) Remove(ctx context.Context, userID, albumID string) error {
	rowsAffected, err := s.likeRepo.Delete(ctx, userID, albumID)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return model.NewLikeNotFoundError()
	}

	s.invalidate(ctx, albumID)
	return nil
}

// Count は指定アルバムのいいね数を返す。
// キャッシュヒット時は第2戻り値がtrueになる。ミス時はSQLのCOUNTにフォールバックし、
// 結果をTTL付きでキャッシュに書き戻す。キャッシュ障害はカウント取得を妨げない。
func (s *Service) Count(ctx context.Context, albumID string) (int, bool, error) {
	if s.cache != nil {
		val, err := s.cache.Get(ctx, cacheKey(albumID))
		if err == nil {
			count, convErr := strconv.Atoi(val)
			if convErr == nil {
				if s.metrics != nil {
					s.metrics.RecordLikeCacheHit()
				}
				return count, true, nil
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("like count cache read failed",
				slog.String("album_id", albumID),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordLikeCacheMiss()
	}

	count, err := s.likeRepo.CountByAlbumID(ctx, albumID)
	if err != nil {
		return 0, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(albumID), strconv.Itoa(count), s.cacheTTL); err != nil {
			slog.Warn("like count cache write failed",
				slog.String("album_id", albumID),
				slog.String("error", err.Error()),
			)
		}
	}

	return count, false, nil
}

// invalidate はアルバムのいいね数キャッシュを破棄する。
// いいねの追加・削除後に呼ばれる。失敗はログに残すのみで操作自体は成功扱いとする。
func (s *Service) invalidate(ctx context.Context, albumID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(albumID)); err != nil {
		slog.Warn("like count cache invalidation failed",
			slog.String("album_id", albumID),
			slog.String("error", err.Error()),
		)
	}
}
