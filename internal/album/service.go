// Package album はアルバムカタログのドメインロジックを提供する。
package album

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/repository"
)

// Input はアルバムの作成・更新リクエスト。
type Input struct {
	Name string
	Year int
}

// SongSummary はアルバム詳細に含める楽曲の要約。
type SongSummary struct {
	ID        string
	Title     string
	Performer string
}

// Detail はアルバム詳細（収録楽曲一覧付き）。
type Detail struct {
	ID    string
	Name  string
	Year  int
	Songs []SongSummary
}

// Service はアルバムカタログのサービス層。
type Service struct {
	albumRepo repository.AlbumRepository
	songRepo  repository.SongRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(albumRepo repository.AlbumRepository, songRepo repository.SongRepository) *Service {
	return &Service{albumRepo: albumRepo, songRepo: songRepo}
}

// Add はアルバムを作成し、生成したidを返す。
func (s *Service) Add(ctx context.Context, input Input) (string, error) {
	album := &model.Album{
		ID:   "album-" + uuid.NewString(),
		Name: input.Name,
		Year: input.Year,
	}

	id, err := s.albumRepo.Create(ctx, album)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", model.NewStoreInvariantError("アルバムの追加に失敗しました")
	}
	return id, nil
}

// Get は指定IDのアルバム詳細を収録楽曲付きで返す。
// 存在しない場合はNotFoundを返す。
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	album, err := s.albumRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, model.NewAlbumNotFoundError(id)
	}

	songs, err := s.songRepo.ListByAlbumID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("アルバム内楽曲の取得に失敗しました: %w", err)
	}

	summaries := make([]SongSummary, len(songs))
	for i, song := range songs {
		summaries[i] = SongSummary{ID: song.ID, Title: song.Title, Performer: song.Performer}
	}

	return &Detail{
		ID:    album.ID,
		Name:  album.Name,
		Year:  album.Year,
		Songs: summaries,
	}, nil
}

// Update は指定IDのアルバムを更新する。存在しない場合はNotFoundを返す。
func (s *Service) Update(ctx context.Context, id string, input Input) error {
	album := &model.Album{ID: id, Name: input.Name, Year: input.Year}

	rowsAffected, err := s.albumRepo.Update(ctx, album)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return model.NewAlbumNotFoundError(id)
	}
	return nil
}

// Delete は指定IDのアルバムを削除する。存在しない場合はNotFoundを返す。
// 収録楽曲はストアのCASCADE制約で削除される。
func (s *Service) Delete(ctx context.Context, id string) error {
	rowsAffected, err := s.albumRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return model.NewAlbumNotFoundError(id)
	}
	return nil
}
