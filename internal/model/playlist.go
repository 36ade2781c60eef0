// Package model はドメインモデルを定義する。
package model

import "time"

// Playlist は名前付きの楽曲コレクションを表す。
// 所有者は作成時に確定し、以後変更されない。
type Playlist struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}

// PlaylistSong は「楽曲がプレイリストに現在含まれている」という関係を表す。
// (PlaylistID, SongID) の組にはスキーマ上の一意制約を設けていない。
// 重複を許容するかどうかはサービス層の設定で決まる。
type PlaylistSong struct {
	ID         string
	PlaylistID string
	SongID     string
}

// ActivityAction はプレイリストのメンバーシップ変更種別を表す。
type ActivityAction string

const (
	// ActivityActionAdd は楽曲追加を示す。
	ActivityActionAdd ActivityAction = "add"
	// ActivityActionDelete は楽曲削除を示す。
	ActivityActionDelete ActivityAction = "delete"
)

// Activity はメンバーシップ変更1件を記録する不変の履歴エントリ。
// 追記専用であり、プレイリスト削除時のCASCADE以外では消えない。
type Activity struct {
	ID         string
	PlaylistID string
	SongID     string
	UserID     string
	Action     ActivityAction
	Time       time.Time
}
