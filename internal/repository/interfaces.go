// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/tunebox/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByUsername はユーザー名でユーザーを検索する。見つからない場合はnilを返す。
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Create はユーザーを作成し、生成されたidを返す。
	Create(ctx context.Context, user *model.User) (string, error)
}

// TokenRepository はアクセストークンの永続化インターフェース。
type TokenRepository interface {
	// Create はアクセストークンを保存する。
	Create(ctx context.Context, token *model.AccessToken) error

	// FindByToken は指定トークンを取得する。期限切れ・未登録の場合はnilを返す。
	FindByToken(ctx context.Context, token string) (*model.AccessToken, error)

	// DeleteByToken は指定トークンを失効させる。
	DeleteByToken(ctx context.Context, token string) error
}

// AlbumRepository はアルバムデータの永続化インターフェース。
type AlbumRepository interface {
	// FindByID は指定IDのアルバムを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Album, error)

	// Create はアルバムを作成し、INSERT ... RETURNING idで得たidを返す。
	Create(ctx context.Context, album *model.Album) (string, error)

	// Update は指定IDのアルバムを更新する。更新行数を返す。
	Update(ctx context.Context, album *model.Album) (int64, error)

	// Delete は指定IDのアルバムを削除する。削除行数を返す。
	// 所属する楽曲はCASCADE削除される。
	Delete(ctx context.Context, id string) (int64, error)
}

// SongRepository は楽曲データの永続化インターフェース。
type SongRepository interface {
	// FindByID は指定IDの楽曲を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Song, error)

	// Search はタイトル・演者の部分一致（ILIKE）で楽曲を検索する。
	// 空文字の条件は無視される。
	Search(ctx context.Context, title, performer string) ([]*model.Song, error)

	// ListByAlbumID は指定アルバムに属する楽曲一覧を返す。
	ListByAlbumID(ctx context.Context, albumID string) ([]*model.Song, error)

	// Create は楽曲を作成し、INSERT ... RETURNING idで得たidを返す。
	Create(ctx context.Context, song *model.Song) (string, error)

	// Update は指定IDの楽曲を更新する。更新行数を返す。
	Update(ctx context.Context, song *model.Song) (int64, error)

	// Delete は指定IDの楽曲を削除する。削除行数を返す。
	Delete(ctx context.Context, id string) (int64, error)
}

// PlaylistWithUsername はプレイリストと所有者のユーザー名を結合した読み取りモデル。
type PlaylistWithUsername struct {
	ID       string
	Name     string
	Username string
}

// PlaylistRepository はプレイリストデータの永続化インターフェース。
type PlaylistRepository interface {
	// FindByID は指定IDのプレイリストを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Playlist, error)

	// FindByIDWithUsername は指定IDのプレイリストを所有者ユーザー名付きで取得する。
	// 見つからない場合はnilを返す。
	FindByIDWithUsername(ctx context.Context, id string) (*PlaylistWithUsername, error)

	// ListByOwner は指定ユーザーが所有するプレイリスト一覧をユーザー名付きで返す。
	ListByOwner(ctx context.Context, ownerID string) ([]PlaylistWithUsername, error)

	// Create はプレイリストを作成し、INSERT ... RETURNING idで得たidを返す。
	Create(ctx context.Context, playlist *model.Playlist) (string, error)

	// Delete は指定IDのプレイリストを削除する。削除行数を返す。
	// playlist_songsとplaylist_song_activitiesはCASCADE削除される。
	Delete(ctx context.Context, id string) (int64, error)
}

// PlaylistSongRepository はプレイリスト内楽曲（メンバーシップ）の永続化インターフェース。
type PlaylistSongRepository interface {
	// Insert はメンバーシップ行を挿入し、INSERT ... RETURNING idで得たidを返す。
	// (playlist_id, song_id)の重複チェックは行わない。
	Insert(ctx context.Context, ps *model.PlaylistSong) (string, error)

	// Exists は指定の(playlistID, songID)の組が存在するかを返す。
	Exists(ctx context.Context, playlistID, songID string) (bool, error)

	// DeleteByPlaylistAndSong は(playlistID, songID)に完全一致する全行を削除し、
	// 削除行数を返す。
	DeleteByPlaylistAndSong(ctx context.Context, playlistID, songID string) (int64, error)

	// ListSongsByPlaylistID はプレイリストに含まれる楽曲を返す。
	ListSongsByPlaylistID(ctx context.Context, playlistID string) ([]*model.Song, error)
}

// ActivityWithDetail はアクティビティ行にユーザー名と楽曲タイトルを結合した読み取りモデル。
type ActivityWithDetail struct {
	Username string
	Title    string
	Action   model.ActivityAction
	Time     time.Time
}

// ActivityRepository はプレイリストアクティビティ台帳の永続化インターフェース。
// 追記と参照のみを提供する。更新・個別削除は存在しない。
type ActivityRepository interface {
	// Insert はアクティビティを追記し、INSERT ... RETURNING idで得たidを返す。
	Insert(ctx context.Context, activity *model.Activity) (string, error)

	// ListByPlaylistID は指定プレイリストのアクティビティを時刻昇順で返す。
	ListByPlaylistID(ctx context.Context, playlistID string) ([]ActivityWithDetail, error)
}

// LikeRepository はアルバムへのいいねの永続化インターフェース。
type LikeRepository interface {
	// Exists は指定ユーザーが指定アルバムにいいね済みかを返す。
	Exists(ctx context.Context, userID, albumID string) (bool, error)

	// Insert はいいねを追加し、INSERT ... RETURNING idで得たidを返す。
	Insert(ctx context.Context, id, userID, albumID string) (string, error)

	// Delete は指定ユーザーの指定アルバムへのいいねを削除する。削除行数を返す。
	Delete(ctx context.Context, userID, albumID string) (int64, error)

	// CountByAlbumID は指定アルバムのいいね数を返す。
	CountByAlbumID(ctx context.Context, albumID string) (int, error)
}
