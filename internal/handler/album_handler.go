package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/tunebox/internal/album"
)

// AlbumServiceInterface はアルバムハンドラーが必要とするサービスインターフェース。
type AlbumServiceInterface interface {
	// Add はアルバムを作成し、生成したidを返す。
	Add(ctx context.Context, input album.Input) (string, error)
	// Get は指定IDのアルバム詳細を収録楽曲付きで返す。
	Get(ctx context.Context, id string) (*album.Detail, error)
	// Update は指定IDのアルバムを更新する。
	Update(ctx context.Context, id string, input album.Input) error
	// Delete は指定IDのアルバムを削除する。
	Delete(ctx context.Context, id string) error
}

// AlbumHandler はアルバムカタログのHTTPハンドラー。
type AlbumHandler struct {
	service AlbumServiceInterface
}

// NewAlbumHandler はAlbumHandlerを生成する。
func NewAlbumHandler(service AlbumServiceInterface) *AlbumHandler {
	return &AlbumHandler{service: service}
}

// albumRequest はアルバムの作成・更新リクエストのボディ。
type albumRequest struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// albumDetailResponse は収録楽曲付きのアルバム詳細。
type albumDetailResponse struct {
	ID    string                `json:"id"`
	Name  string                `json:"name"`
	Year  int                   `json:"year"`
	Songs []songSummaryResponse `json:"songs"`
}

// validate は必須項目を検証し、不足があればメッセージを返す。
func (req *albumRequest) validate() string {
	switch {
	case req.Name == "":
		return "nameは必須です"
	case req.Year == 0:
		return "yearは必須です"
	}
	return ""
}

// Add はアルバムの登録を処理する。
// POST /albums
func (h *AlbumHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "リクエストボディの解析に失敗しました")
		return
	}
	if msg := req.validate(); msg != "" {
		writeValidationError(w, msg)
		return
	}

	id, err := h.service.Add(r.Context(), album.Input{Name: req.Name, Year: req.Year})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"albumId": id})
}

// Get はアルバム詳細の取得を処理する。
// GET /albums/{id}
func (h *AlbumHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	songs := make([]songSummaryResponse, len(detail.Songs))
	for i, s := range detail.Songs {
		songs[i] = songSummaryResponse{ID: s.ID, Title: s.Title, Performer: s.Performer}
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"album": albumDetailResponse{
			ID:    detail.ID,
			Name:  detail.Name,
			Year:  detail.Year,
			Songs: songs,
		},
	})
}

// Update はアルバムの更新を処理する。
// PUT /albums/{id}
func (h *AlbumHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "リクエストボディの解析に失敗しました")
		return
	}
	if msg := req.validate(); msg != "" {
		writeValidationError(w, msg)
		return
	}

	if err := h.service.Update(r.Context(), id, album.Input{Name: req.Name, Year: req.Year}); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "アルバムを更新しました")
}

// Delete はアルバムの削除を処理する。
// DELETE /albums/{id}
func (h *AlbumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "アルバムを削除しました")
}
