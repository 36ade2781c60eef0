// Package song は楽曲カタログのドメインロジックを提供する。
// プレイリストサービスはこのパッケージのFindByIDを楽曲存在確認に利用する。
package song

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/repository"
)

// Input は楽曲の作成・更新リクエスト。
// 必須項目とポインタによる任意項目を型で宣言する。
type Input struct {
	Title     string
	Year      int
	Genre     string
	Performer string
	Duration  *int
	AlbumID   *string
}

// Summary は一覧表示用の楽曲要約。
type Summary struct {
	ID        string
	Title     string
	Performer string
}

// Service は楽曲カタログのサービス層。
type Service struct {
	songRepo repository.SongRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(songRepo repository.SongRepository) *Service {
	return &Service{songRepo: songRepo}
}

// Add は楽曲を作成し、生成したidを返す。
func (s *Service) Add(ctx context.Context, input Input) (string, error) {
	song := &model.Song{
		ID:        "song-" + uuid.NewString(),
		Title:     input.Title,
		Year:      input.Year,
		Genre:     input.Genre,
		Performer: input.Performer,
		Duration:  input.Duration,
		AlbumID:   input.AlbumID,
	}

	id, err := s.songRepo.Create(ctx, song)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", model.NewStoreInvariantError("楽曲の追加に失敗しました")
	}
	return id, nil
}

// Search はタイトル・演者の部分一致で楽曲を検索し、要約の一覧を返す。
// 条件なしの場合は全件が対象。
func (s *Service) Search(ctx context.Context, title, performer string) ([]Summary, error) {
	songs, err := s.songRepo.Search(ctx, title, performer)
	if err != nil {
		return nil, fmt.Errorf("楽曲の検索に失敗しました: %w", err)
	}

	summaries := make([]Summary, len(songs))
	for i, song := range songs {
		summaries[i] = Summary{ID: song.ID, Title: song.Title, Performer: song.Performer}
	}
	return summaries, nil
}

// Get は指定IDの楽曲を取得する。存在しない場合はNotFoundを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Song, error) {
	song, err := s.songRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if song == nil {
		return nil, model.NewSongNotFoundError(id)
	}
	return song, nil
}

// FindByID はrepositoryのFindByIDをそのまま公開する。
// プレイリストサービスの楽曲存在確認（SongFinder）として使用される。
func (s *Service) FindByID(ctx context.Context, id string) (*model.Song, error) {
	return s.songRepo.FindByID(ctx, id)
}

// Update は指定IDの楽曲を更新する。存在しない場合はNotFoundを返す。
func (s *Service) Update(ctx context.Context, id string, input Input) error {
	song := &model.Song{
		ID:        id,
		Title:     input.Title,
		Year:      input.Year,
		Genre:     input.Genre,
		Performer: input.Performer,
		Duration:  input.Duration,
		AlbumID:   input.AlbumID,
	}

	rowsAffected, err := s.songRepo.Update(ctx, song)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return model.NewSongNotFoundError(id)
	}
	return nil
}

// Delete は指定IDの楽曲を削除する。存在しない場合はNotFoundを返す。
func (s *Service) Delete(ctx context.Context, id string) error {
	rowsAffected, err := s.songRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return model.NewSongNotFoundError(id)
	}
	return nil
}
