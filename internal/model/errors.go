// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// エラーコードはHTTPステータスへのマッピングとログ集計に使用する。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, playlist, album, song, system
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodePlaylistNotFound      = "PLAYLIST_NOT_FOUND"
	ErrCodeSongNotFound          = "SONG_NOT_FOUND"
	ErrCodeAlbumNotFound         = "ALBUM_NOT_FOUND"
	ErrCodeUserNotFound          = "USER_NOT_FOUND"
	ErrCodeActivityNotFound      = "ACTIVITY_NOT_FOUND"
	ErrCodeLikeNotFound          = "LIKE_NOT_FOUND"
	ErrCodeForbidden             = "FORBIDDEN"
	ErrCodeDuplicatePlaylistSong = "DUPLICATE_PLAYLIST_SONG"
	ErrCodeDuplicateLike         = "DUPLICATE_LIKE"
	ErrCodeDuplicateUsername     = "DUPLICATE_USERNAME"
	ErrCodeInvalidCredentials    = "INVALID_CREDENTIALS"
	ErrCodeStoreInvariant        = "STORE_INVARIANT"
)

// NewPlaylistNotFoundError はプレイリスト未検出エラーを生成する。
func NewPlaylistNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodePlaylistNotFound,
		Message:  fmt.Sprintf("プレイリストが見つかりません: %s", id),
		Category: "playlist",
	}
}

// NewSongNotFoundError は楽曲未検出エラーを生成する。
func NewSongNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeSongNotFound,
		Message:  fmt.Sprintf("楽曲が見つかりません: %s", id),
		Category: "song",
	}
}

// NewAlbumNotFoundError はアルバム未検出エラーを生成する。
func NewAlbumNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeAlbumNotFound,
		Message:  fmt.Sprintf("アルバムが見つかりません: %s", id),
		Category: "album",
	}
}

// NewUserNotFoundError はユーザー未検出エラーを生成する。
func NewUserNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  fmt.Sprintf("ユーザーが見つかりません: %s", id),
		Category: "auth",
	}
}

// NewActivityNotFoundError はアクティビティ未検出エラーを生成する。
// 対象プレイリストに履歴が1件もない場合にも返る（プレイリスト不存在と区別しない）。
func NewActivityNotFoundError(playlistID string) *APIError {
	return &APIError{
		Code:     ErrCodeActivityNotFound,
		Message:  fmt.Sprintf("プレイリストのアクティビティが見つかりません: %s", playlistID),
		Category: "playlist",
	}
}

// NewLikeNotFoundError はいいね未検出エラーを生成する。
func NewLikeNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeLikeNotFound,
		Message:  "いいねの削除に失敗しました。対象が見つかりません",
		Category: "album",
	}
}

// NewForbiddenError は認可エラーを生成する。
// プレイリスト所有者以外がリソースへアクセスした場合に返る。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "このリソースにアクセスする権限がありません",
		Category: "auth",
	}
}

// NewDuplicatePlaylistSongError は楽曲の重複追加エラーを生成する。
// 重複追加を拒否する設定の場合にのみ使用される。
func NewDuplicatePlaylistSongError(songID string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicatePlaylistSong,
		Message:  fmt.Sprintf("楽曲はすでにプレイリストに追加されています: %s", songID),
		Category: "validation",
	}
}

// NewDuplicateLikeError は同一アルバムへの重複いいねエラーを生成する。
func NewDuplicateLikeError() *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateLike,
		Message:  "同じアルバムに再度いいねすることはできません",
		Category: "validation",
	}
}

// NewDuplicateUsernameError はユーザー名の重複エラーを生成する。
func NewDuplicateUsernameError(username string) *APIError {
	return &APIError{
		Code:     ErrCodeDuplicateUsername,
		Message:  fmt.Sprintf("ユーザー名はすでに使用されています: %s", username),
		Category: "validation",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "ユーザー名またはパスワードが正しくありません",
		Category: "auth",
	}
}

// NewStoreInvariantError はストア不変条件違反エラーを生成する。
// INSERTがidを返さないなど、想定外のストア挙動に対する防御的チェックで使用する。
func NewStoreInvariantError(message string) *APIError {
	return &APIError{
		Code:     ErrCodeStoreInvariant,
		Message:  message,
		Category: "system",
	}
}
