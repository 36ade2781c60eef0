// Package cleanup は期限切れアクセストークンの定期削除ジョブを提供する。
package cleanup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Executor はDELETE文を実行するための最小インターフェース。
// *sql.DBがこれを満たす。
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Job は期限切れアクセストークンを削除するジョブ。
type Job struct {
	db     Executor
	logger *slog.Logger
}

// NewJob はJobを生成する。
func NewJob(db Executor, logger *slog.Logger) *Job {
	if logger == nil {
		logger = slog.Default()
	}
	return &Job{db: db, logger: logger}
}

// Run は期限切れアクセストークンを一括削除する。
// expires_atが現在時刻より前のトークンが対象。
func (j *Job) Run(ctx context.Context) error {
	res, err := j.db.ExecContext(ctx,
		`DELETE FROM access_tokens WHERE expires_at < now()`,
	)
	if err != nil {
		return fmt.Errorf("期限切れトークンの削除に失敗: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		j.logger.Warn("failed to read affected rows", slog.String("error", err.Error()))
		return nil
	}

	j.logger.Info("expired access tokens removed",
		slog.Int64("deleted_count", deleted),
	)
	return nil
}

// Start は指定間隔でRunを繰り返す。ctxのキャンセルで停止する。
// サーバー起動時にgoroutineとして呼び出すことを想定している。
func (j *Job) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Info("token cleanup job stopped")
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Error("token cleanup failed", slog.String("error", err.Error()))
			}
		}
	}
}
