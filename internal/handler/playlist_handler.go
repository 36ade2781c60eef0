package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/tunebox/internal/middleware"
	"github.com/hitoshi/tunebox/internal/playlist"
	"github.com/hitoshi/tunebox/internal/repository"
)

// PlaylistServiceInterface はプレイリストハンドラーが必要とするサービスインターフェース。
type PlaylistServiceInterface interface {
	// VerifyOwner はプレイリストの所有権を検証する。
	VerifyOwner(ctx context.Context, playlistID, userID string) error
	// Create はプレイリストを作成し、生成したidを返す。
	Create(ctx context.Context, name, ownerID string) (string, error)
	// List は指定ユーザーが所有するプレイリスト一覧を返す。
	List(ctx context.Context, ownerID string) ([]repository.PlaylistWithUsername, error)
	// Delete は指定IDのプレイリストを削除する。
	Delete(ctx context.Context, playlistID string) error
	// AddSong はプレイリストに楽曲を追加し、アクティビティを記録する。
	AddSong(ctx context.Context, playlistID, songID, userID string) error
	// RemoveSong はプレイリストから楽曲を削除し、アクティビティを記録する。
	RemoveSong(ctx context.Context, playlistID, songID, userID string) error
	// GetSongs はプレイリストの詳細と収録楽曲一覧を返す。
	GetSongs(ctx context.Context, playlistID string) (*playlist.Detail, error)
	// GetActivities は指定プレイリストのアクティビティを時刻昇順で返す。
	GetActivities(ctx context.Context, playlistID string) ([]repository.ActivityWithDetail, error)
}

// PlaylistHandler はプレイリスト管理のHTTPハンドラー。
// すべての操作で所有権検証を先に行い、通過した場合のみサービスを呼び出す。
type PlaylistHandler struct {
	service PlaylistServiceInterface
}

// NewPlaylistHandler はPlaylistHandlerを生成する。
func NewPlaylistHandler(service PlaylistServiceInterface) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

// createPlaylistRequest はプレイリスト作成リクエストのボディ。
type createPlaylistRequest struct {
	Name string `json:"name"`
}

// playlistSongRequest はプレイリストへの楽曲追加・削除リクエストのボディ。
type playlistSongRequest struct {
	SongID string `json:"songId"`
}

// playlistResponse は一覧表示用のプレイリスト表現。
type playlistResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// playlistSongResponse はプレイリスト内楽曲の表現。
type playlistSongResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// playlistDetailResponse は収録楽曲付きのプレイリスト詳細。
type playlistDetailResponse struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Username string                 `json:"username"`
	Songs    []playlistSongResponse `json:"songs"`
}

// activityResponse はアクティビティ1件の表現。
type activityResponse struct {
	Username string `json:"username"`
	Title    string `json:"title"`
	Action   string `json:"action"`
	Time     string `json:"time"`
}

// Create はプレイリスト作成を処理する。
// POST /playlists
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteFail(w, http.StatusUnauthorized, "認証情報がありません")
		return
	}

	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "リクエストボディの解析に失敗しました")
		return
	}
	if req.Name == "" {
		writeValidationError(w, "プレイリスト名は必須です")
		return
	}

	id, err := h.service.Create(r.Context(), req.Name, userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"playlistId": id})
}

// List は認証済みユーザーが所有するプレイリスト一覧を返す。
// GET /playlists
func (h *PlaylistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteFail(w, http.StatusUnauthorized, "認証情報がありません")
		return
	}

	playlists, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	items := make([]playlistResponse, len(playlists))
	for i, p := range playlists {
		items[i] = playlistResponse{ID: p.ID, Name: p.Name, Username: p.Username}
	}

	writeSuccess(w, http.StatusOK, map[string]any{"playlists": items})
}

// Delete はプレイリスト削除を処理する。
// DELETE /playlists/{id}
func (h *PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, playlistID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), playlistID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "プレイリストを削除しました")
}

// AddSong はプレイリストへの楽曲追加を処理する。
// POST /playlists/{id}/songs
func (h *PlaylistHandler) AddSong(w http.ResponseWriter, r *http.Request) {
	userID, playlistID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req playlistSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "リクエストボディの解析に失敗しました")
		return
	}
	if req.SongID == "" {
		writeValidationError(w, "songIdは必須です")
		return
	}

	if err := h.service.AddSong(r.Context(), playlistID, req.SongID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusCreated, "楽曲をプレイリストに追加しました")
}

// RemoveSong はプレイリストからの楽曲削除を処理する。
// DELETE /playlists/{id}/songs
func (h *PlaylistHandler) RemoveSong(w http.ResponseWriter, r *http.Request) {
	userID, playlistID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req playlistSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "リクエストボディの解析に失敗しました")
		return
	}
	if req.SongID == "" {
		writeValidationError(w, "songIdは必須です")
		return
	}

	if err := h.service.RemoveSong(r.Context(), playlistID, req.SongID, userID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "楽曲をプレイリストから削除しました")
}

// GetSongs はプレイリスト詳細（収録楽曲付き）を返す。
// GET /playlists/{id}/songs
func (h *PlaylistHandler) GetSongs(w http.ResponseWriter, r *http.Request) {
	_, playlistID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	detail, err := h.service.GetSongs(r.Context(), playlistID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	songs := make([]playlistSongResponse, len(detail.Songs))
	for i, s := range detail.Songs {
		songs[i] = playlistSongResponse{ID: s.ID, Title: s.Title, Performer: s.Performer}
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"playlist": playlistDetailResponse{
			ID:       detail.ID,
			Name:     detail.Name,
			Username: detail.Username,
			Songs:    songs,
		},
	})
}

// GetActivities はプレイリストのアクティビティ一覧を時刻昇順で返す。
// GET /playlists/{id}/activities
func (h *PlaylistHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	_, playlistID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	activities, err := h.service.GetActivities(r.Context(), playlistID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	items := make([]activityResponse, len(activities))
	for i, a := range activities {
		items[i] = activityResponse{
			Username: a.Username,
			Title:    a.Title,
			Action:   string(a.Action),
			Time:     a.Time.UTC().Format(time.RFC3339),
		}
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"playlistId": playlistID,
		"activities": items,
	})
}

// authorize は認証済みユーザーIDとURLのプレイリストIDを取り出し、所有権を検証する。
// 検証に失敗した場合はレスポンスを書き込み、okにfalseを返す。
func (h *PlaylistHandler) authorize(w http.ResponseWriter, r *http.Request) (userID, playlistID string, ok bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		middleware.WriteFail(w, http.StatusUnauthorized, "認証情報がありません")
		return "", "", false
	}

	playlistID = chi.URLParam(r, "id")

	if err := h.service.VerifyOwner(r.Context(), playlistID, userID); err != nil {
		handleServiceError(w, err)
		return "", "", false
	}
	return userID, playlistID, true
}
