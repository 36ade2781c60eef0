package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
)

// PostgresSongRepo はPostgreSQLを使用した楽曲リポジトリ。
type PostgresSongRepo struct {
	db *sql.DB
}

// NewPostgresSongRepo はPostgresSongRepoを生成する。
func NewPostgresSongRepo(db *sql.DB) *PostgresSongRepo {
	return &PostgresSongRepo{db: db}
}

// FindByID は指定IDの楽曲を取得する。見つからない場合はnilを返す。
func (r *PostgresSongRepo) FindByID(ctx context.Context, id string) (*model.Song, error) {
	song := &model.Song{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, year, genre, performer, duration, album_id
		 FROM songs WHERE id = $1`,
		id,
	).Scan(&song.ID, &song.Title, &song.Year, &song.Genre, &song.Performer, &song.Duration, &song.AlbumID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("楽曲の取得に失敗しました: %w", err)
	}

	return song, nil
}

// Search はタイトル・演者の部分一致（ILIKE）で楽曲を検索する。
// 空文字の条件は無視される。両方空の場合は全件を返す。
func (r *PostgresSongRepo) Search(ctx context.Context, title, performer string) ([]*model.Song, error) {
	query := `SELECT id, title, year, genre, performer, duration, album_id FROM songs WHERE TRUE`
	var params []any

	if title != "" {
		params = append(params, "%"+title+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(params))
	}
	if performer != "" {
		params = append(params, "%"+performer+"%")
		query += fmt.Sprintf(" AND performer ILIKE $%d", len(params))
	}

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("楽曲の検索に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanSongs(rows)
}

// ListByAlbumID は指定アルバムに属する楽曲一覧を返す。
func (r *PostgresSongRepo) ListByAlbumID(ctx context.Context, albumID string) ([]*model.Song, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, year, genre, performer, duration, album_id
		 FROM songs WHERE album_id = $1`,
		albumID,
	)
	if err != nil {
		return nil, fmt.Errorf("アルバム内楽曲一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	return scanSongs(rows)
}

// Create は楽曲を作成し、INSERT ... RETURNING idで得たidを返す。
func (r *PostgresSongRepo) Create(ctx context.Context, song *model.Song) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO songs (id, title, year, genre, performer, duration, album_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		song.ID, song.Title, song.Year, song.Genre, song.Performer, song.Duration, song.AlbumID,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("楽曲の作成に失敗しました: %w", err)
	}
	return id, nil
}

// Update は指定IDの楽曲を更新する。更新行数を返す。
func (r *PostgresSongRepo) Update(ctx context.Context, song *model.Song) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE songs
		 SET title = $2, year = $3, genre = $4, performer = $5, duration = $6, album_id = $7
		 WHERE id = $1`,
		song.ID, song.Title, song.Year, song.Genre, song.Performer, song.Duration, song.AlbumID,
	)
	if err != nil {
		return 0, fmt.Errorf("楽曲の更新に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("更新結果の取得に失敗しました: %w", err)
	}
	return rowsAffected, nil
}

// Delete は指定IDの楽曲を削除する。削除行数を返す。
func (r *PostgresSongRepo) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM songs WHERE id = $1`,
		id,
	)
	if err != nil {
		return 0, fmt.Errorf("楽曲の削除に失敗しました: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除結果の取得に失敗しました: %w", err)
	}
	return rowsAffected, nil
}

// scanSongs は楽曲行の集合をスキャンする。
func scanSongs(rows *sql.Rows) ([]*model.Song, error) {
	var songs []*model.Song
	for rows.Next() {
		song := &model.Song{}
		if err := rows.Scan(&song.ID, &song.Title, &song.Year, &song.Genre, &song.Performer, &song.Duration, &song.AlbumID); err != nil {
			return nil, fmt.Errorf("楽曲行の読み取りに失敗しました: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("楽曲一覧の走査に失敗しました: %w", err)
	}
	return songs, nil
}

// compile-time interface check
var _ SongRepository = (*PostgresSongRepo)(nil)
