package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Login は認証情報を検証し、新しいアクセストークンを発行して返す。
	Login(ctx context.Context, username, password string) (string, error)
	// Logout は指定されたアクセストークンを失効させる。
	Logout(ctx context.Context, token string) error
}

// AuthHandler は認証のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// logoutRequest はログアウトリクエストのボディ。
type logoutRequest struct {
	AccessToken string `json:"accessToken"`
}

// Login はログインを処理し、アクセストークンを発行する。
// POST /authentications
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "リクエストボディの解析に失敗しました")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeValidationError(w, "usernameとpasswordは必須です")
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"accessToken": token})
}

// Logout はアクセストークンの失効を処理する。
// DELETE /authentications
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "リクエストボディの解析に失敗しました")
		return
	}
	if req.AccessToken == "" {
		writeValidationError(w, "accessTokenは必須です")
		return
	}

	if err := h.service.Logout(r.Context(), req.AccessToken); err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccessMessage(w, http.StatusOK, "ログアウトしました")
}
