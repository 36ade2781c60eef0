package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresLikeRepo はPostgreSQLを使用したアルバムいいねリポジトリ。
type PostgresLikeRepo struct {
	db *sql.DB
}

// NewPostgresLikeRepo はPostgresLikeRepoを生成する。
func NewPostgresLikeRepo(db *sql.DB) *PostgresLikeRepo {
	return &PostgresLikeRepo{db: db}
}

// Exists は指定ユーザーが指定アルバムにいいね済みかを返す。
func (r *PostgresLikeRepo) Exists(ctx context.Context, userID, albumID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM user_album_likes WHERE user_id = $1 AND album_id = $2
		 )`,
		userID, albumID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("いいねの存在確認に失敗しました: %w", err)
	}
	return exists, nil
}

// Insert はいいねを追加し、INSERT ... RETURNING idで得たidを返す。
func (r *PostgresLikeRepo) Insert(ctx context.Context, id, userID, albumID string) (string, error) {
	var insertedID string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO user_album_likes (id, user_id, album_id) VALUES ($1, $2, $3) RETURNING id`,
		id, userID, albumID,
	).Scan(&insertedID)
	if err != nil {
		return "", fmt.Errorf("いいねの追加に失敗しました: %w", err)
	}
	return insertedID, nil
}

// Delete は指定ユーザーの指定アルバムへのいいねを削除する。削除行数を返す。
func (r *PostgresLikeRepo) Delete(ctx context.Context, userID, albumID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_album_likes WHERE user_id = $1 AND album_id = $2`,
		userID, albumID,
	)
	if err != nil {
		return 0, fmt.Errorf("いいねの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	return rowsAffected, nil
}

// CountByAlbumID は指定アルバムのいいね数を返す。
func (r *PostgresLikeRepo) CountByAlbumID(ctx context.Context, albumID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_album_likes WHERE album_id = $1`,
		albumID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("いいね数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ LikeRepository = (*PostgresLikeRepo)(nil)
