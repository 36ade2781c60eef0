// Package playlist はプレイリスト管理のドメインロジックを提供する。
// 所有権検証、楽曲メンバーシップの変更、アクティビティ記録を1リクエスト単位で編成する。
package playlist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/repository"
)

// SongFinder は楽曲の存在確認に必要なインターフェース。
// repository.SongRepositoryの部分集合として定義する。
type SongFinder interface {
	FindByID(ctx context.Context, id string) (*model.Song, error)
}

// MetricsRecorder はプレイリスト操作のメトリクス記録インターフェース。
type MetricsRecorder interface {
	RecordPlaylistMutation(action string)
	RecordActivityAppended()
}

// Config はプレイリストサービスの動作設定。
type Config struct {
	// AllowDuplicateSongs は同一楽曲の重複追加を許容するかを制御する。
	// trueの場合、同じ(playlist, song)の組を複数回追加できる（スキーマは一意制約を
	// 持たないため、これが観測上のデフォルト動作）。falseの場合は重複追加を拒否する。
	AllowDuplicateSongs bool
}

// SongSummary はプレイリスト内楽曲の要約表現。
// id・タイトル・演者のみを公開する。
type SongSummary struct {
	ID        string
	Title     string
	Performer string
}

// Detail はプレイリストの詳細（所有者ユーザー名と収録楽曲一覧）。
type Detail struct {
	ID       string
	Name     string
	Username string
	Songs    []SongSummary
}

// Service はプレイリスト管理のサービス層。
// すべての依存は構築時に明示的に注入する。接続プールの暗黙共有は行わない。
type Service struct {
	playlistRepo repository.PlaylistRepository
	songRepo     SongFinder
	memberRepo   repository.PlaylistSongRepository
	activityRepo repository.ActivityRepository
	metrics      MetricsRecorder
	config       Config
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsはnilを許容する（記録しない）。
func NewService(
	playlistRepo repository.PlaylistRepository,
	songRepo SongFinder,
	memberRepo repository.PlaylistSongRepository,
	activityRepo repository.ActivityRepository,
	metrics MetricsRecorder,
	config Config,
) *Service {
	return &Service{
		playlistRepo: playlistRepo,
		songRepo:     songRepo,
		memberRepo:   memberRepo,
		activityRepo: activityRepo,
		metrics:      metrics,
		config:       config,
	}
}

// VerifyOwner はプレイリストの所有権を検証する。
// プレイリストが存在しない場合はNotFound、所有者が一致しない場合はForbiddenを返す。
// 副作用はない。すべての変更操作・参照操作の前にハンドラー層から呼び出される。
func (s *Service) VerifyOwner(ctx context.Context, playlistID, userID string) error {
	p, err := s.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("所有権検証のためのプレイリスト取得に失敗しました: %w", err)
	}
	if p == nil {
		return model.NewPlaylistNotFoundError(playlistID)
	}
	if p.OwnerID != userID {
		return model.NewForbiddenError()
	}
	return nil
}

// Create はプレイリストを作成し、生成したidを返す。
// INSERTがidを返さない場合は防御的にストア不変条件違反として扱う。
func (s *Service) Create(ctx context.Context, name, ownerID string) (string, error) {
	p := &model.Playlist{
		ID:      "playlist-" + uuid.NewString(),
		Name:    name,
		OwnerID: ownerID,
	}

	id, err := s.playlistRepo.Create(ctx, p)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", model.NewStoreInvariantError("プレイリストの追加に失敗しました")
	}

	if s.metrics != nil {
		s.metrics.RecordPlaylistMutation("create")
	}
	return id, nil
}

// List は指定ユーザーが所有するプレイリスト一覧を返す。
// 所有者として一致するもののみが対象。共有・コラボレーターの概念はない。
func (s *Service) List(ctx context.Context, ownerID string) ([]repository.PlaylistWithUsername, error) {
	playlists, err := s.playlistRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("プレイリスト一覧の取得に失敗しました: %w", err)
	}
	return playlists, nil
}

// Delete は指定IDのプレイリストを削除する。
// メンバーシップとアクティビティはストアのCASCADE制約で一緒に消える。
// 呼び出し側はVerifyOwnerによる認可を済ませていること。
func (s *Service) Delete(ctx context.Context, playlistID string) error {
	rowsAffected, err := s.playlistRepo.Delete(ctx, playlistID)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return model.NewPlaylistNotFoundError(playlistID)
	}

	if s.metrics != nil {
		s.metrics.RecordPlaylistMutation("delete")
	}
	return nil
}

// AddSong はプレイリストに楽曲を追加し、アクティビティを記録する。
// 楽曲またはプレイリストが存在しない場合は副作用なしでNotFoundを返す。
// アクティビティの書き込みは同期的に待機し、失敗は呼び出し元へ伝搬する。
func (s *Service) AddSong(ctx context.Context, playlistID, songID, userID string) error {
	song, err := s.songRepo.FindByID(ctx, songID)
	if err != nil {
		return fmt.Errorf("追加対象楽曲の確認に失敗しました: %w", err)
	}
	if song == nil {
		return model.NewSongNotFoundError(songID)
	}

	// 所有権検証とは独立した存在チェック。認可はハンドラー層で済んでいる。
	p, err := s.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("追加対象プレイリストの確認に失敗しました: %w", err)
	}
	if p == nil {
		return model.NewPlaylistNotFoundError(playlistID)
	}

	if !s.config.AllowDuplicateSongs {
		exists, err := s.memberRepo.Exists(ctx, playlistID, songID)
		if err != nil {
			return fmt.Errorf("重複確認に失敗しました: %w", err)
		}
		if exists {
			return model.NewDuplicatePlaylistSongError(songID)
		}
	}

	ps := &model.PlaylistSong{
		ID:         "playlist_songs-" + uuid.NewString(),
		PlaylistID: playlistID,
		SongID:     songID,
	}
	insertedID, err := s.memberRepo.Insert(ctx, ps)
	if err != nil {
		return err
	}
	if insertedID == "" {
		return model.NewStoreInvariantError("楽曲のプレイリストへの追加に失敗しました")
	}

	if s.metrics != nil {
		s.metrics.RecordPlaylistMutation("add_song")
	}

	return s.recordActivity(ctx, playlistID, songID, userID, model.ActivityActionAdd)
}

// RemoveSong はプレイリストから楽曲を削除し、アクティビティを記録する。
// (playlistID, songID)に完全一致する全行が削除対象。0行の場合はNotFoundを返す。
func (s *Service) RemoveSong(ctx context.Context, playlistID, songID, userID string) error {
	rowsAffected, err := s.memberRepo.DeleteByPlaylistAndSong(ctx, playlistID, songID)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return model.NewSongNotFoundError(songID)
	}

	if s.metrics != nil {
		s.metrics.RecordPlaylistMutation("remove_song")
	}

	return s.recordActivity(ctx, playlistID, songID, userID, model.ActivityActionDelete)
}

// GetSongs はプレイリストの詳細と収録楽曲一覧を返す。
// プレイリストが存在しない場合はNotFoundを返す。
// 楽曲はid・タイトル・演者のみに射影する。
func (s *Service) GetSongs(ctx context.Context, playlistID string) (*Detail, error) {
	p, err := s.playlistRepo.FindByIDWithUsername(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("プレイリスト詳細の取得に失敗しました: %w", err)
	}
	if p == nil {
		return nil, model.NewPlaylistNotFoundError(playlistID)
	}

	songs, err := s.memberRepo.ListSongsByPlaylistID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	summaries := make([]SongSummary, len(songs))
	for i, song := range songs {
		summaries[i] = SongSummary{
			ID:        song.ID,
			Title:     song.Title,
			Performer: song.Performer,
		}
	}

	return &Detail{
		ID:       p.ID,
		Name:     p.Name,
		Username: p.Username,
		Songs:    summaries,
	}, nil
}

// GetActivities は指定プレイリストのアクティビティを時刻昇順で返す。
// 0件の場合はNotFoundを返す。この挙動は「履歴がまだない」と「プレイリストが
// 存在しない」を区別しない。呼び出し側はこの操作単体では両者を判別できない。
func (s *Service) GetActivities(ctx context.Context, playlistID string) ([]repository.ActivityWithDetail, error) {
	activities, err := s.activityRepo.ListByPlaylistID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, model.NewActivityNotFoundError(playlistID)
	}
	return activities, nil
}

// recordActivity はメンバーシップ変更のアクティビティを追記する。
// 時刻はクライアント入力ではなくサービスのクロックでコミット時点に確定する。
// 書き込みは待機し、失敗はそのまま呼び出し元へ返す。
func (s *Service) recordActivity(ctx context.Context, playlistID, songID, userID string, action model.ActivityAction) error {
	activity := &model.Activity{
		ID:         "activity-" + uuid.NewString(),
		PlaylistID: playlistID,
		SongID:     songID,
		UserID:     userID,
		Action:     action,
		Time:       time.Now().UTC(),
	}

	id, err := s.activityRepo.Insert(ctx, activity)
	if err != nil {
		return fmt.Errorf("アクティビティの記録に失敗しました: %w", err)
	}
	if id == "" {
		return model.NewStoreInvariantError("アクティビティの記録に失敗しました")
	}

	if s.metrics != nil {
		s.metrics.RecordActivityAppended()
	}
	return nil
}
