package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
)

// PostgresPlaylistRepo はPostgreSQLを使用したプレイリストリポジトリ。
type PostgresPlaylistRepo struct {
	db *sql.DB
}

// NewPostgresPlaylistRepo はPostgresPlaylistRepoを生成する。
func NewPostgresPlaylistRepo(db *sql.DB) *PostgresPlaylistRepo {
	return &PostgresPlaylistRepo{db: db}
}

// FindByID は指定IDのプレイリストを取得する。見つからない場合はnilを返す。
func (r *PostgresPlaylistRepo) FindByID(ctx context.Context, id string) (*model.Playlist, error) {
	p := &model.Playlist{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, owner, created_at FROM playlists WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.OwnerID, &p.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("プレイリストの取得に失敗しました: %w", err)
	}

	return p, nil
}

// FindByIDWithUsername は指定IDのプレイリストを所有者ユーザー名付きで取得する。
// 見つからない場合はnilを返す。
func (r *PostgresPlaylistRepo) FindByIDWithUsername(ctx context.Context, id string) (*PlaylistWithUsername, error) {
	p := &PlaylistWithUsername{}
	err := r.db.QueryRowContext(ctx,
		`SELECT playlists.id, playlists.name, users.username
		 FROM playlists
		 INNER JOIN users ON playlists.owner = users.id
		 WHERE playlists.id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Username)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("プレイリスト（ユーザー名付き）の取得に失敗しました: %w", err)
	}

	return p, nil
}

// ListByOwner は指定ユーザーが所有するプレイリスト一覧をユーザー名付きで返す。
// 所有者として一致するもののみを返す。共有プレイリストの概念はない。
func (r *PostgresPlaylistRepo) ListByOwner(ctx context.Context, ownerID string) ([]PlaylistWithUsername, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT playlists.id, playlists.name, users.username
		 FROM playlists
		 INNER JOIN users ON playlists.owner = users.id
		 WHERE users.id = $1
		 ORDER BY playlists.created_at ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("プレイリスト一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var playlists []PlaylistWithUsername
	for rows.Next() {
		var p PlaylistWithUsername
		if err := rows.Scan(&p.ID, &p.Name, &p.Username); err != nil {
			return nil, fmt.Errorf("プレイリスト行の読み取りに失敗しました: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("プレイリスト一覧の走査に失敗しました: %w", err)
	}
	return playlists, nil
}

// Create はプレイリストを作成し、INSERT ... RETURNING idで得たidを返す。
func (r *PostgresPlaylistRepo) Create(ctx context.Context, playlist *model.Playlist) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO playlists (id, name, owner) VALUES ($1, $2, $3) RETURNING id`,
		playlist.ID, playlist.Name, playlist.OwnerID,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("プレイリストの作成に失敗しました: %w", err)
	}
	return id, nil
}

// Delete は指定IDのプレイリストを削除する。削除行数を返す。
// メンバーシップ行とアクティビティ行はストアのCASCADE制約で削除される。
func (r *PostgresPlaylistRepo) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM playlists WHERE id = $1`,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("プレイリストの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	return rowsAffected, nil
}

// compile-time interface check
var _ PlaylistRepository = (*PostgresPlaylistRepo)(nil)
