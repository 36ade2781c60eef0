package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/tunebox/internal/model"
)

// mockTokenFinder はTokenFinderのモック実装。
type mockTokenFinder struct {
	findByTokenFunc func(ctx context.Context, token string) (*model.AccessToken, error)
}

func (m *mockTokenFinder) FindByToken(ctx context.Context, token string) (*model.AccessToken, error) {
	if m.findByTokenFunc != nil {
		return m.findByTokenFunc(ctx, token)
	}
	return nil, nil
}

func validTokenFinder(userID string) *mockTokenFinder {
	return &mockTokenFinder{
		findByTokenFunc: func(_ context.Context, token string) (*model.AccessToken, error) {
			return &model.AccessToken{
				Token:     token,
				UserID:    userID,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := UserIDFromContext(r.Context())
		if err != nil {
			t.Errorf("コンテキストからユーザーIDを取得できない: %v", err)
		}
		gotUserID = userID
		w.WriteHeader(http.StatusOK)
	})

	handler := NewAuthMiddleware(validTokenFinder("user-1"))(next)

	req := httptest.NewRequest(http.MethodGet, "/playlists", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("ステータスコードが200ではなく%d", rec.Code)
	}
	if gotUserID != "user-1" {
		t.Errorf("ユーザーIDが user-1 ではなく %s", gotUserID)
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("未認証リクエストがハンドラーに到達した")
	})

	handler := NewAuthMiddleware(validTokenFinder("user-1"))(next)

	req := httptest.NewRequest(http.MethodGet, "/playlists", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("ステータスコードが401ではなく%d", rec.Code)
	}

	var body FailResponseBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("レスポンスボディのデコードに失敗: %v", err)
	}
	if body.Status != "fail" {
		t.Errorf("statusが fail ではなく %s", body.Status)
	}
}

func TestAuthMiddlewareUnknownToken(t *testing.T) {
	finder := &mockTokenFinder{
		findByTokenFunc: func(_ context.Context, _ string) (*model.AccessToken, error) {
			return nil, nil
		},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("無効なトークンでハンドラーに到達した")
	})

	handler := NewAuthMiddleware(finder)(next)

	req := httptest.NewRequest(http.MethodGet, "/playlists", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("ステータスコードが401ではなく%d", rec.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	handler := NewAuthMiddleware(validTokenFinder("user-1"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("不正な形式のヘッダーでハンドラーに到達した")
	}))

	// Bearerスキームでないヘッダーは拒否される
	req := httptest.NewRequest(http.MethodGet, "/playlists", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("ステータスコードが401ではなく%d", rec.Code)
	}
}

func TestUserIDFromContextMissing(t *testing.T) {
	_, err := UserIDFromContext(context.Background())
	if err == nil {
		t.Error("ユーザーIDなしのコンテキストでエラーが返らない")
	}
}

func TestContextWithUserID(t *testing.T) {
	ctx := ContextWithUserID(context.Background(), "user-7")
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		t.Fatalf("ユーザーIDの取得に失敗: %v", err)
	}
	if userID != "user-7" {
		t.Errorf("ユーザーIDが user-7 ではなく %s", userID)
	}
}
