package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
)

// PostgresAlbumRepo はPostgreSQLを使用したアルバムリポジトリ。
type PostgresAlbumRepo struct {
	db *sql.DB
}

// NewPostgresAlbumRepo はPostgresAlbumRepoを生成する。
func NewPostgresAlbumRepo(db *sql.DB) *PostgresAlbumRepo {
	return &PostgresAlbumRepo{db: db}
}

// FindByID は指定IDのアルバムを取得する。見つからない場合はnilを返す。
func (r *PostgresAlbumRepo) FindByID(ctx context.Context, id string) (*model.Album, error) {
	album := &model.Album{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, year FROM albums WHERE id = $1`,
		id,
	).Scan(&album.ID, &album.Name, &album.Year)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("アルバムの取得に失敗しました: %w", err)
	}

	return album, nil
}

// Create はアルバムを作成し、INSERT ... RETURNING idで得たidを返す。
func (r *PostgresAlbumRepo) Create(ctx context.Context, album *model.Album) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO albums (id, name, year) VALUES ($1, $2, $3) RETURNING id`,
		album.ID, album.Name, album.Year,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("アルバムの作成に失敗しました: %w", err)
	}
	return id, nil
}

// Update は指定IDのアルバムを更新する。更新行数を返す。
func (r *PostgresAlbumRepo) Update(ctx context.Context, album *model.Album) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE albums SET name = $2, year = $3 WHERE id = $1`,
		album.ID, album.Name, album.Year,
	)
	if err != nil {
		return 0, fmt.Errorf("アルバムの更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("更新結果の取得に失敗しました: %w", err)
	}
	return rowsAffected, nil
}

// Delete は指定IDのアルバムを削除する。削除行数を返す。
func (r *PostgresAlbumRepo) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM albums WHERE id = $1`,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("アルバムの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	return rowsAffected, nil
}

// compile-time interface check
var _ AlbumRepository = (*PostgresAlbumRepo)(nil)
