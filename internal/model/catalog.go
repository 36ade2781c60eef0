// Package model はドメインモデルを定義する。
package model

import "time"

// Album は楽曲が属するアルバムを表す。
type Album struct {
	ID        string
	Name      string
	Year      int
	CreatedAt time.Time
}

// Song はカタログ上の楽曲を表す。
// DurationとAlbumIDは任意項目のためポインタで保持する。
type Song struct {
	ID        string
	Title     string
	Year      int
	Genre     string
	Performer string
	Duration  *int
	AlbumID   *string
	CreatedAt time.Time
}
