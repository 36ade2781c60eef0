// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// Passwordはbcryptハッシュを保持し、APIレスポンスには含めない。
type User struct {
	ID        string
	Username  string
	Fullname  string
	Password  string
	CreatedAt time.Time
}

// AccessToken はベアラートークン認証のアクセストークンを表す。
// トークン文字列自体が主キーであり、サーバー側で失効管理する。
type AccessToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
