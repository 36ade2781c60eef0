// Package handler はHTTP APIのハンドラーを提供する。
// レスポンスは成功・失敗を示すエンベロープ形式で統一する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/tunebox/internal/middleware"
	"github.com/hitoshi/tunebox/internal/model"
)

// successResponse は成功レスポンスのエンベロープ。
// dataまたはmessageのいずれか（または両方）を含む。
type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// writeSuccess はdata付きの成功レスポンスを書き込む。
func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(successResponse{
		Status: "success",
		Data:   data,
	})
}

// writeSuccessMessage はmessageのみの成功レスポンスを書き込む。
// 削除などdataを持たない操作で使用する。
func writeSuccessMessage(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(successResponse{
		Status:  "success",
		Message: message,
	})
}

// writeValidationError はリクエスト検証エラー（400）を書き込む。
func writeValidationError(w http.ResponseWriter, message string) {
	middleware.WriteFail(w, http.StatusBadRequest, message)
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteFail(w, mapAPIErrorToHTTPStatus(apiErr), apiErr.Message)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodePlaylistNotFound,
		model.ErrCodeSongNotFound,
		model.ErrCodeAlbumNotFound,
		model.ErrCodeUserNotFound,
		model.ErrCodeActivityNotFound,
		model.ErrCodeLikeNotFound:
		return http.StatusNotFound
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeDuplicatePlaylistSong,
		model.ErrCodeDuplicateLike,
		model.ErrCodeDuplicateUsername,
		model.ErrCodeStoreInvariant:
		return http.StatusBadRequest
	case model.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
