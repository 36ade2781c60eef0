package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/song"
)

// SongServiceInterface は楽曲ハンドラーが必要とするサービスインターフェース。
type SongServiceInterface interface {
	// Add は楽曲を作成し、生成したidを返す。
	Add(ctx context.Context, input song.Input) (string, error)
	// Search はタイトル・演者の部分一致で楽曲を検索する。
	Search(ctx context.Context, title, performer string) ([]song.Summary, error)
	// Get は指定IDの楽曲を取得する。
	Get(ctx context.Context, id string) (*model.Song, error)
	// Update は指定IDの楽曲を更新する。
	Update(ctx context.Context, id string, input song.Input) error
	// Delete は指定IDの楽曲を削除する。
	Delete(ctx context.Context, id string) error
}

// SongHandler は楽曲カタログのHTTPハンドラー。
type SongHandler struct {
	service SongServiceInterface
}

// NewSongHandler はSongHandlerを生成する。
func NewSongHandler(service SongServiceInterface) *SongHandler {
	return &SongHandler{service: service}
}

// songRequest は楽曲の作成・更新リクエストのボディ。
type songRequest struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

// validate は必須項目を検証し、不足があればメッセージを返す。
func (req *songRequest) validate() string {
	switch {
	case req.Title == "":
		return "titleは必須です"
	case req.Year == 0:
		return "yearは必須です"
	case req.Genre == "":
		return "genreは必須です"
	case req.Performer == "":
		return "performerは必須です"
	}
	return ""
}

// toInput はリクエストボディをサービス層の入力に変換する。
func (req *songRequest) toInput() song.Input {
	return song.Input{
		Title:     req.Title,
		Year:      req.Year,
		Genre:     req.Genre,
		Performer: req.Performer,
		Duration:  req.Duration,
		AlbumID:   req.AlbumID,
	}
}

// songSummaryResponse は一覧表示用の楽曲表現。
type songSummaryResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// songDetailResponse は楽曲詳細の表現。
type songDetailResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Genre     string  `json:"genre"`
	Performer string  `json:"performer"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

// Add は楽曲の登録を処理する。
// POST /songs
func (h *SongHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "リクエストボディの解析に失敗しました")
		return
	}
	if msg := req.validate(); msg != "" {
		writeValidationError(w, msg)
		return
	}

	id, err := h.service.Add(r.Context(), req.toInput())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"songId": id})
}

// Search はクエリパラメータによる楽曲検索を処理する。
// GET /songs?title=&performer=
func (h *SongHandler) Search(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	performer := r.URL.Query().Get("performer")

	songs, err := h.service.Search(r.Context(), title, performer)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	items := make([]songSummaryResponse, len(songs))
	for i, s := range songs {
		items[i] = songSummaryResponse{ID: s.ID, Title: s.Title, Performer: s.Performer}
	}

	writeSuccess(w, http.StatusOK, map[string]any{"songs": items})
}

// Get は楽曲詳細の取得を処理する。
// GET /songs/{id}
func (h *SongHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"song": songDetailResponse{
			ID:        s.ID,
			Title:     s.Title,
			Year:      s.Year,
			Genre:     s.Genre,
			Performer: s.Performer,
			Duration:  s.Duration,
			AlbumID:   s.AlbumID,
		},
	})
}

// Update は楽曲の更新を処理する。
// PUT /songs/{id}
func (h *SongHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req songRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "リクエストボディの解析に失敗しました")
		return
	}
	if msg := req.validate(); msg != "" {
		writeValidationError(w, msg)
		return
	}

	if err := h.service.Update(r.Context(), id, req.toInput()); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "楽曲を更新しました")
}

// Delete は楽曲の削除を処理する。
// DELETE /songs/{id}
func (h *SongHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "楽曲を削除しました")
}
