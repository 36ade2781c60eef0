package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/tunebox/internal/middleware"
	"github.com/hitoshi/tunebox/internal/model"
)

// UserRegistrar はユーザー登録に必要なインターフェース。
// auth.Serviceの部分集合として定義する。
type UserRegistrar interface {
	// Register は新規ユーザーを登録し、生成したidを返す。
	Register(ctx context.Context, username, password, fullname string) (string, error)
}

// UserFinder はユーザーの参照に必要なインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	registrar UserRegistrar
	finder    UserFinder
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(registrar UserRegistrar, finder UserFinder) *UserHandler {
	return &UserHandler{registrar: registrar, finder: finder}
}

// registerUserRequest はユーザー登録リクエストのボディ。
type registerUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

// userResponse はユーザー情報のAPIレスポンス。パスワードは含めない。
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// Register はユーザー登録を処理する。
// POST /users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "リクエストボディの解析に失敗しました")
		return
	}
	switch {
	case req.Username == "":
		writeValidationError(w, "usernameは必須です")
		return
	case req.Password == "":
		writeValidationError(w, "passwordは必須です")
		return
	case req.Fullname == "":
		writeValidationError(w, "fullnameは必須です")
		return
	}

	id, err := h.registrar.Register(r.Context(), req.Username, req.Password, req.Fullname)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]string{"userId": id})
}

// Get はユーザー情報の取得を処理する。
// GET /users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.finder.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if user == nil {
		apiErr := model.NewUserNotFoundError(id)
		middleware.WriteFail(w, http.StatusNotFound, apiErr.Message)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"user": userResponse{
			ID:       user.ID,
			Username: user.Username,
			Fullname: user.Fullname,
		},
	})
}
