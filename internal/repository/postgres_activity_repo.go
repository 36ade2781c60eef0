package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/tunebox/internal/model"
)

// PostgresActivityRepo はPostgreSQLを使用したアクティビティ台帳リポジトリ。
// 追記と参照のみを提供する。UPDATE・個別DELETEの操作は定義しない。
type PostgresActivityRepo struct {
	db *sql.DB
}

// NewPostgresActivityRepo はPostgresActivityRepoを生成する。
func NewPostgresActivityRepo(db *sql.DB) *PostgresActivityRepo {
	return &PostgresActivityRepo{db: db}
}

// Insert はアクティビティを追記し、INSERT ... RETURNING idで得たidを返す。
func (r *PostgresActivityRepo) Insert(ctx context.Context, activity *model.Activity) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO playlist_song_activities (id, playlist_id, song_id, user_id, action, time)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		activity.ID, activity.PlaylistID, activity.SongID, activity.UserID, activity.Action, activity.Time,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("アクティビティの追記に失敗しました: %w", err)
	}
	return id, nil
}

// ListByPlaylistID は指定プレイリストのアクティビティを時刻昇順で返す。
// ユーザー名と楽曲タイトルをJOINで解決する。
func (r *PostgresActivityRepo) ListByPlaylistID(ctx context.Context, playlistID string) ([]ActivityWithDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT users.username, songs.title, a.action, a.time
		 FROM playlist_song_activities a
		 INNER JOIN users ON a.user_id = users.id
		 INNER JOIN songs ON a.song_id = songs.id
		 WHERE a.playlist_id = $1
		 ORDER BY a.time ASC`,
		playlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("アクティビティ一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var activities []ActivityWithDetail
	for rows.Next() {
		var a ActivityWithDetail
		if err := rows.Scan(&a.Username, &a.Title, &a.Action, &a.Time); err != nil {
			return nil, fmt.Errorf("アクティビティ行の読み取りに失敗しました: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("アクティビティ一覧の走査に失敗しました: %w", err)
	}
	return activities, nil
}

// compile-time interface check
var _ ActivityRepository = (*PostgresActivityRepo)(nil)
