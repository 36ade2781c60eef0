package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/tunebox/internal/middleware"
)

// LikeServiceInterface はいいねハンドラーが必要とするサービスインターフェース。
type LikeServiceInterface interface {
	// Add は指定ユーザーのいいねをアルバムに追加する。
	Add(ctx context.Context, userID, albumID string) error
	// Remove は指定ユーザーのいいねをアルバムから削除する。
	Remove(ctx context.Context, userID, albumID string) error
	// Count は指定アルバムのいいね数を返す。第2戻り値はキャッシュヒットを示す。
	Count(ctx context.Context, albumID string) (int, bool, error)
}

// LikeHandler はアルバムいいねのHTTPハンドラー。
type LikeHandler struct {
	service LikeServiceInterface
}

// NewLikeHandler はLikeHandlerを生成する。
func NewLikeHandler(service LikeServiceInterface) *LikeHandler {
	return &LikeHandler{service: service}
}

// Add はアルバムへのいいね追加を処理する。
// POST /albums/{id}/likes
func (h *LikeHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteFail(w, http.StatusUnauthorized, "認証情報がありません")
		return
	}

	albumID := chi.URLParam(r, "id")

	if err := h.service.Add(r.Context(), userID, albumID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusCreated, "アルバムにいいねしました")
}

// Remove はアルバムへのいいね取り消しを処理する。
// DELETE /albums/{id}/likes
func (h *LikeHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteFail(w, http.StatusUnauthorized, "認証情報がありません")
		return
	}

	albumID := chi.URLParam(r, "id")

	if err := h.service.Remove(r.Context(), userID, albumID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "いいねを取り消しました")
}

// Count はアルバムのいいね数取得を処理する。
// キャッシュから返す場合はX-Data-Source: cacheヘッダーを付与する。
// GET /albums/{id}/likes
func (h *LikeHandler) Count(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "id")

	count, fromCache, err := h.service.Count(r.Context(), albumID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if fromCache {
		w.Header().Set("X-Data-Source", "cache")
	}
	writeSuccess(w, http.StatusOK, map[string]int{"likes": count})
}
