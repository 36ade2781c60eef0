package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
)

// PostgresPlaylistSongRepo はPostgreSQLを使用したプレイリスト内楽曲リポジトリ。
type PostgresPlaylistSongRepo struct {
	db *sql.DB
}

// NewPostgresPlaylistSongRepo はPostgresPlaylistSongRepoを生成する。
func NewPostgresPlaylistSongRepo(db *sql.DB) *PostgresPlaylistSongRepo {
	return &PostgresPlaylistSongRepo{db: db}
}

// Insert はメンバーシップ行を挿入し、INSERT ... RETURNING idで得たidを返す。
// (playlist_id, song_id)に一意制約はないため、同一の組でも挿入は成功する。
func (r *PostgresPlaylistSongRepo) Insert(ctx context.Context, ps *model.PlaylistSong) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO playlist_songs (id, playlist_id, song_id) VALUES ($1, $2, $3) RETURNING id`,
		ps.ID, ps.PlaylistID, ps.SongID,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("プレイリストへの楽曲追加に失敗しました: %w", err)
	}
	return id, nil
}

// Exists は指定の(playlistID, songID)の組が存在するかを返す。
func (r *PostgresPlaylistSongRepo) Exists(ctx context.Context, playlistID, songID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM playlist_songs WHERE playlist_id = $1 AND song_id = $2
		 )`,
		playlistID, songID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("プレイリスト内楽曲の存在確認に失敗しました: %w", err)
	}
	return exists, nil
}

// DeleteByPlaylistAndSong は(playlistID, songID)に完全一致する全行を削除し、削除行数を返す。
func (r *PostgresPlaylistSongRepo) DeleteByPlaylistAndSong(ctx context.Context, playlistID, songID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM playlist_songs WHERE playlist_id = $1 AND song_id = $2`,
		playlistID, songID,
	)
	if err != nil {
		return 0, fmt.Errorf("プレイリストからの楽曲削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	return rowsAffected, nil
}

// ListSongsByPlaylistID はプレイリストに含まれる楽曲を返す。
func (r *PostgresPlaylistSongRepo) ListSongsByPlaylistID(ctx context.Context, playlistID string) ([]*model.Song, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT songs.id, songs.title, songs.year, songs.genre, songs.performer, songs.duration, songs.album_id
		 FROM songs
		 INNER JOIN playlist_songs ON playlist_songs.song_id = songs.id
		 WHERE playlist_songs.playlist_id = $1`,
		playlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("プレイリスト内楽曲一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var songs []*model.Song
	for rows.Next() {
		song := &model.Song{}
		if err := rows.Scan(&song.ID, &song.Title, &song.Year, &song.Genre, &song.Performer, &song.Duration, &song.AlbumID); err != nil {
			return nil, fmt.Errorf("楽曲行の読み取りに失敗しました: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("プレイリスト内楽曲一覧の走査に失敗しました: %w", err)
	}
	return songs, nil
}

// compile-time interface check
var _ PlaylistSongRepository = (*PostgresPlaylistSongRepo)(nil)
