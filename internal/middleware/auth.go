// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/tunebox/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userIDContextKey はリクエストコンテキストにユーザーIDを格納するためのキー。
var userIDContextKey = contextKey("user_id")

// TokenFinder はアクセストークンの検索に必要なインターフェース。
// repository.TokenRepositoryの部分集合として定義する。
type TokenFinder interface {
	FindByToken(ctx context.Context, token string) (*model.AccessToken, error)
}

// NewAuthMiddleware はAuthorizationヘッダーのBearerトークンを検証するミドルウェアを返す。
// 認証済みユーザーIDをリクエストコンテキストに注入する。
// トークンが欠落・未登録・期限切れのリクエストには401 Unauthorizedを返す。
func NewAuthMiddleware(tokenFinder TokenFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. AuthorizationヘッダーからBearerトークンを取得
			raw := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok || token == "" {
				WriteFail(w, http.StatusUnauthorized, "認証情報がありません")
				return
			}

			// 2. トークンの有効性を検証（期限切れはFindByToken側でnilになる）
			accessToken, err := tokenFinder.FindByToken(r.Context(), token)
			if err != nil {
				slog.Error("failed to find access token",
					slog.String("error", err.Error()),
				)
				WriteFail(w, http.StatusUnauthorized, "認証情報が無効です")
				return
			}
			if accessToken == nil {
				WriteFail(w, http.StatusUnauthorized, "認証情報が無効です")
				return
			}

			// 3. 認証済みユーザーIDをコンテキストに注入
			ctx := context.WithValue(r.Context(), userIDContextKey, accessToken.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext はリクエストコンテキストからユーザーIDを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID はコンテキストにユーザーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
