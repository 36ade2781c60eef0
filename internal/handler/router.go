package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/tunebox/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenFinder       middleware.TokenFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// 運用系
	HealthChecker  HealthChecker
	MetricsHandler http.Handler

	// 認証・ユーザー
	AuthService AuthServiceInterface
	Registrar   UserRegistrar
	UserFinder  UserFinder

	// カタログ
	AlbumService AlbumServiceInterface
	SongService  SongServiceInterface
	LikeService  LikeServiceInterface

	// プレイリスト
	PlaylistService PlaylistServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORSMiddleware → AuthMiddleware → RateLimitMiddleware(GeneralMiddleware)
//
// ユーザー登録・ログインとカタログの参照系はミドルウェアチェーンの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// CORS ミドルウェアを最上位に適用（全ルートに効く）
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	authHandler := NewAuthHandler(deps.AuthService)
	userHandler := NewUserHandler(deps.Registrar, deps.UserFinder)
	albumHandler := NewAlbumHandler(deps.AlbumService)
	songHandler := NewSongHandler(deps.SongService)
	likeHandler := NewLikeHandler(deps.LikeService)
	playlistHandler := NewPlaylistHandler(deps.PlaylistService)

	// --- 認証不要のルート ---

	// 運用系エンドポイント
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if deps.HealthChecker != nil {
			if err := deps.HealthChecker.PingContext(req.Context()); err != nil {
				middleware.WriteFail(w, http.StatusServiceUnavailable, "データベースに接続できません")
				return
			}
		}
		writeSuccessMessage(w, http.StatusOK, "ok")
	})
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// ユーザー登録と認証
	r.Post("/users", userHandler.Register)
	r.Get("/users/{id}", userHandler.Get)
	r.Post("/authentications", authHandler.Login)
	r.Delete("/authentications", authHandler.Logout)

	// アルバムカタログ
	r.Route("/albums", func(r chi.Router) {
		r.Post("/", albumHandler.Add)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", albumHandler.Get)
			r.Put("/", albumHandler.Update)
			r.Delete("/", albumHandler.Delete)

			// GET /albums/{id}/likes - いいね数の参照は認証不要
			r.Get("/likes", likeHandler.Count)
		})
	})

	// 楽曲カタログ
	r.Route("/songs", func(r chi.Router) {
		r.Get("/", songHandler.Search)
		r.Post("/", songHandler.Add)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", songHandler.Get)
			r.Put("/", songHandler.Update)
			r.Delete("/", songHandler.Delete)
		})
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// いいねの追加・取り消し
		r.Post("/albums/{id}/likes", likeHandler.Add)
		r.Delete("/albums/{id}/likes", likeHandler.Remove)

		// プレイリスト管理
		r.Route("/playlists", func(r chi.Router) {
			r.Get("/", playlistHandler.List)

			// 変更系には専用レート制限を追加
			r.With(deps.RateLimiter.MutationMiddleware()).Post("/", playlistHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.With(deps.RateLimiter.MutationMiddleware()).Delete("/", playlistHandler.Delete)

				r.Get("/songs", playlistHandler.GetSongs)
				r.With(deps.RateLimiter.MutationMiddleware()).Post("/songs", playlistHandler.AddSong)
				r.With(deps.RateLimiter.MutationMiddleware()).Delete("/songs", playlistHandler.RemoveSong)

				r.Get("/activities", playlistHandler.GetActivities)
			})
		})
	})

	return r
}
