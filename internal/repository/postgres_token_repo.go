package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
)

// PostgresTokenRepo はPostgreSQLを使用したアクセストークンリポジトリ。
type PostgresTokenRepo struct {
	db *sql.DB
}

// NewPostgresTokenRepo はPostgresTokenRepoを生成する。
func NewPostgresTokenRepo(db *sql.DB) *PostgresTokenRepo {
	return &PostgresTokenRepo{db: db}
}

// Create はアクセストークンを保存する。
func (r *PostgresTokenRepo) Create(ctx context.Context, token *model.AccessToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO access_tokens (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		token.Token, token.UserID, token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("アクセストークンの保存に失敗しました: %w", err)
	}
	return nil
}

// FindByToken は指定トークンを取得する。期限切れ・未登録の場合はnilを返す。
func (r *PostgresTokenRepo) FindByToken(ctx context.Context, token string) (*model.AccessToken, error) {
	t := &model.AccessToken{}
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, expires_at, created_at
		 FROM access_tokens
		 WHERE token = $1 AND expires_at > now()`,
		token,
	).Scan(&t.Token, &t.UserID, &t.ExpiresAt, &t.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("アクセストークンの取得に失敗しました: %w", err)
	}

	return t, nil
}

// DeleteByToken は指定トークンを失効させる。
func (r *PostgresTokenRepo) DeleteByToken(ctx context.Context, token string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM access_tokens WHERE token = $1`,
		token,
	)
	if err != nil {
		return fmt.Errorf("アクセストークンの削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("アクセストークンが見つかりません")
	}
	return nil
}

// compile-time interface check
var _ TokenRepository = (*PostgresTokenRepo)(nil)
