package playlist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/repository"
)

// --- モック ---

type mockPlaylistRepo struct {
	findByIDFn             func(ctx context.Context, id string) (*model.Playlist, error)
	findByIDWithUsernameFn func(ctx context.Context, id string) (*repository.PlaylistWithUsername, error)
	listByOwnerFn          func(ctx context.Context, ownerID string) ([]repository.PlaylistWithUsername, error)
	createFn               func(ctx context.Context, playlist *model.Playlist) (string, error)
	deleteFn               func(ctx context.Context, id string) (int64, error)
}

func (m *mockPlaylistRepo) FindByID(ctx context.Context, id string) (*model.Playlist, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockPlaylistRepo) FindByIDWithUsername(ctx context.Context, id string) (*repository.PlaylistWithUsername, error) {
	if m.findByIDWithUsernameFn != nil {
		return m.findByIDWithUsernameFn(ctx, id)
	}
	return nil, nil
}
func (m *mockPlaylistRepo) ListByOwner(ctx context.Context, ownerID string) ([]repository.PlaylistWithUsername, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}
func (m *mockPlaylistRepo) Create(ctx context.Context, playlist *model.Playlist) (string, error) {
	if m.createFn != nil {
		return m.createFn(ctx, playlist)
	}
	return playlist.ID, nil
}
func (m *mockPlaylistRepo) Delete(ctx context.Context, id string) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return 1, nil
}

type mockSongFinder struct {
	findByIDFn func(ctx context.Context, id string) (*model.Song, error)
}

func (m *mockSongFinder) FindByID(ctx context.Context, id string) (*model.Song, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

type mockMemberRepo struct {
	insertFn                  func(ctx context.Context, ps *model.PlaylistSong) (string, error)
	existsFn                  func(ctx context.Context, playlistID, songID string) (bool, error)
	deleteByPlaylistAndSongFn func(ctx context.Context, playlistID, songID string) (int64, error)
	listSongsByPlaylistIDFn   func(ctx context.Context, playlistID string) ([]*model.Song, error)

	inserted []*model.PlaylistSong
}

func (m *mockMemberRepo) Insert(ctx context.Context, ps *model.PlaylistSong) (string, error) {
	m.inserted = append(m.inserted, ps)
	if m.insertFn != nil {
		return m.insertFn(ctx, ps)
	}
	return ps.ID, nil
}
func (m *mockMemberRepo) Exists(ctx context.Context, playlistID, songID string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, playlistID, songID)
	}
	return false, nil
}
func (m *mockMemberRepo) DeleteByPlaylistAndSong(ctx context.Context, playlistID, songID string) (int64, error) {
	if m.deleteByPlaylistAndSongFn != nil {
		return m.deleteByPlaylistAndSongFn(ctx, playlistID, songID)
	}
	return 1, nil
}
func (m *mockMemberRepo) ListSongsByPlaylistID(ctx context.Context, playlistID string) ([]*model.Song, error) {
	if m.listSongsByPlaylistIDFn != nil {
		return m.listSongsByPlaylistIDFn(ctx, playlistID)
	}
	return nil, nil
}

type mockActivityRepo struct {
	insertFn           func(ctx context.Context, activity *model.Activity) (string, error)
	listByPlaylistIDFn func(ctx context.Context, playlistID string) ([]repository.ActivityWithDetail, error)

	inserted []*model.Activity
}

func (m *mockActivityRepo) Insert(ctx context.Context, activity *model.Activity) (string, error) {
	m.inserted = append(m.inserted, activity)
	if m.insertFn != nil {
		return m.insertFn(ctx, activity)
	}
	return activity.ID, nil
}
func (m *mockActivityRepo) ListByPlaylistID(ctx context.Context, playlistID string) ([]repository.ActivityWithDetail, error) {
	if m.listByPlaylistIDFn != nil {
		return m.listByPlaylistIDFn(ctx, playlistID)
	}
	return nil, nil
}

// --- ヘルパー ---

func newTestService(pr *mockPlaylistRepo, sf *mockSongFinder, mr *mockMemberRepo, ar *mockActivityRepo, config Config) *Service {
	if pr == nil {
		pr = &mockPlaylistRepo{}
	}
	if sf == nil {
		sf = &mockSongFinder{}
	}
	if mr == nil {
		mr = &mockMemberRepo{}
	}
	if ar == nil {
		ar = &mockActivityRepo{}
	}
	return NewService(pr, sf, mr, ar, nil, config)
}

// assertAPIErrorCode はerrが指定コードのAPIErrorであることを検証する。
func assertAPIErrorCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != wantCode {
		t.Errorf("error code = %q, want %q", apiErr.Code, wantCode)
	}
}

func existingPlaylist(id, owner string) *mockPlaylistRepo {
	return &mockPlaylistRepo{
		findByIDFn: func(ctx context.Context, playlistID string) (*model.Playlist, error) {
			if playlistID == id {
				return &model.Playlist{ID: id, Name: "Road Trip", OwnerID: owner}, nil
			}
			return nil, nil
		},
	}
}

func existingSong(id string) *mockSongFinder {
	return &mockSongFinder{
		findByIDFn: func(ctx context.Context, songID string) (*model.Song, error) {
			if songID == id {
				return &model.Song{ID: id, Title: "Evening News", Performer: "The Commentators"}, nil
			}
			return nil, nil
		},
	}
}

// --- 所有権検証 ---

// 所有者本人による検証が成功することを検証する。
func TestService_VerifyOwner_Owner(t *testing.T) {
	svc := newTestService(existingPlaylist("playlist-1", "user-1"), nil, nil, nil, Config{})

	if err := svc.VerifyOwner(context.Background(), "playlist-1", "user-1"); err != nil {
		t.Fatalf("VerifyOwner returned error: %v", err)
	}
}

// 所有者以外のユーザーはForbiddenになることを検証する。
func TestService_VerifyOwner_NonOwnerForbidden(t *testing.T) {
	svc := newTestService(existingPlaylist("playlist-1", "user-1"), nil, nil, nil, Config{})

	err := svc.VerifyOwner(context.Background(), "playlist-1", "user-2")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertAPIErrorCode(t, err, model.ErrCodeForbidden)
}

// 存在しないプレイリストの検証はNotFoundになることを検証する。
func TestService_VerifyOwner_PlaylistNotFound(t *testing.T) {
	svc := newTestService(&mockPlaylistRepo{}, nil, nil, nil, Config{})

	err := svc.VerifyOwner(context.Background(), "playlist-missing", "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertAPIErrorCode(t, err, model.ErrCodePlaylistNotFound)
}

// --- 作成・一覧 ---

// 作成されたプレイリストが所有者の一覧に現れることを検証する。
func TestService_CreateThenList_RoundTrip(t *testing.T) {
	var stored []repository.PlaylistWithUsername
	pr := &mockPlaylistRepo{
		createFn: func(ctx context.Context, p *model.Playlist) (string, error) {
			stored = append(stored, repository.PlaylistWithUsername{
				ID: p.ID, Name: p.Name, Username: "alice",
			})
			return p.ID, nil
		},
		listByOwnerFn: func(ctx context.Context, ownerID string) ([]repository.PlaylistWithUsername, error) {
			if ownerID != "user-1" {
				return nil, nil
			}
			return stored, nil
		},
	}
	svc := newTestService(pr, nil, nil, nil, Config{})

	id, err := svc.Create(context.Background(), "Road Trip", "user-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !strings.HasPrefix(id, "playlist-") {
		t.Errorf("id = %q, want prefix %q", id, "playlist-")
	}

	playlists, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	found := false
	for _, p := range playlists {
		if p.Name == "Road Trip" {
			found = true
		}
	}
	if !found {
		t.Error("expected created playlist in owner's list")
	}
}

// INSERTがidを返さない場合にストア不変条件違反として扱うことを検証する。
func TestService_Create_EmptyIDInvariant(t *testing.T) {
	pr := &mockPlaylistRepo{
		createFn: func(ctx context.Context, p *model.Playlist) (string, error) {
			return "", nil
		},
	}
	svc := newTestService(pr, nil, nil, nil, Config{})

	_, err := svc.Create(context.Background(), "Road Trip", "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertAPIErrorCode(t, err, model.ErrCodeStoreInvariant)
}

// --- 削除 ---

// 存在しないプレイリストの削除はNotFoundになることを検証する。
func TestService_Delete_NotFound(t *testing.T) {
	pr := &mockPlaylistRepo{
		deleteFn: func(ctx context.Context, id string) (int64, error) {
			return 0, nil
		},
	}
	svc := newTestService(pr, nil, nil, nil, Config{})

	err := svc.Delete(context.Background(), "playlist-missing")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertAPIErrorCode(t, err, model.ErrCodePlaylistNotFound)
}

// --- 楽曲追加 ---

// 楽曲追加でメンバーシップ行とaddアクティビティが記録されることを検証する。
func TestService_AddSong_InsertsMembershipAndActivity(t *testing.T) {
	mr := &mockMemberRepo{}
	ar := &mockActivityRepo{}
	svc := newTestService(existingPlaylist("playlist-1", "user-1"), existingSong("song-A"), mr, ar, Config{AllowDuplicateSongs: true})

	if err := svc.AddSong(context.Background(), "playlist-1", "song-A", "user-1"); err != nil {
		t.Fatalf("AddSong returned error: %v", err)
	}

	if len(mr.inserted) != 1 {
		t.Fatalf("membership inserts = %d, want 1", len(mr.inserted))
	}
	if mr.inserted[0].PlaylistID != "playlist-1" || mr.inserted[0].SongID != "song-A" {
		t.Errorf("inserted membership = %+v", mr.inserted[0])
	}

	if len(ar.inserted) != 1 {
		t.Fatalf("activity inserts = %d, want 1", len(ar.inserted))
	}
	a := ar.inserted[0]
	if a.Action != model.ActivityActionAdd {
		t.Errorf("action = %q, want %q", a.Action, model.ActivityActionAdd)
	}
	if a.UserID != "user-1" {
		t.Errorf("user_id = %q, want %q", a.UserID, "user-1")
	}
	if a.Time.IsZero() {
		t.Error("activity time should be assigned by the service clock")
	}
}

// 存在しない楽曲の追加はNotFoundとなり、副作用が発生しないことを検証する。
func TestService_AddSong_SongNotFound_NoSideEffects(t *testing.T) {
	mr := &mockMemberRepo{}
	ar := &mockActivityRepo{}
	svc := newTestService(existingPlaylist("playlist-1", "user-1"), &mockSongFinder{}, mr, ar, Config{AllowDuplicateSongs: true})

	err := svc.AddSong(context.Background(), "playlist-1", "song-missing", "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertAPIErrorCode(t, err, model.ErrCodeSongNotFound)

	if len(mr.inserted) != 0 {
		t.Errorf("membership inserts = %d, want 0", len(mr.inserted))
	}
	if len(ar.inserted) != 0 {
		t.Errorf("activity inserts = %d, want 0", len(ar.inserted))
	}
}

// 存在しないプレイリストへの追加はNotFoundになることを検証する。
func TestService_AddSong_PlaylistNotFound(t *testing.T) {
	svc := newTestService(&mockPlaylistRepo{}, existingSong("song-A"), &mockMemberRepo{}, &mockActivityRepo{}, Config{AllowDuplicateSongs: true})

	err := svc.AddSong(context.Background(), "playlist-missing", "song-A", "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertAPIErrorCode(t, err, model.ErrCodePlaylistNotFound)
}

// 重複許容設定では同一の組を2回追加でき、メンバーシップ行が2行になることを検証する。
// スキーマは(playlist_id, song_id)に一意制約を持たないため、これが既定の動作。
func TestService_AddSong_DuplicatesAllowed(t *testing.T) {
	mr := &mockMemberRepo{}
	ar := &mockActivityRepo{}
	svc := newTestService(existingPlaylist("playlist-1", "user-1"), existingSong("song-A"), mr, ar, Config{AllowDuplicateSongs: true})

	if err := svc.AddSong(context.Background(), "playlist-1", "song-A", "user-1"); err != nil {
		t.Fatalf("first AddSong returned error: %v", err)
	}
	if err := svc.AddSong(context.Background(), "playlist-1", "song-A", "user-1"); err != nil {
		t.Fatalf("second AddSong returned error: %v", err)
	}

	if len(mr.inserted) != 2 {
		t.Errorf("membership inserts = %d, want 2", len(mr.inserted))
	}
}

// 重複拒否設定では2回目の追加が拒否され、挿入が行われないことを検証する。
func TestService_AddSong_DuplicateRejected(t *testing.T) {
	mr := &mockMemberRepo{
		existsFn: func(ctx context.Context, playlistID, songID string) (bool, error) {
			return true, nil
		},
	}
	ar := &mockActivityRepo{}
	svc := newTestService(existingPlaylist("playlist-1", "user-1"), existingSong("song-A"), mr, ar, Config{AllowDuplicateSongs: false})

	err := svc.AddSong(context.Background(), "playlist-1", "song-A", "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertAPIErrorCode(t, err, model.ErrCodeDuplicatePlaylistSong)

	if len(mr.inserted) != 0 {
		t.Errorf("membership inserts = %d, want 0", len(mr.inserted))
	}
	if len(ar.inserted) != 0 {
		t.Errorf("activity inserts = %d, want 0", len(ar.inserted))
	}
}

// アクティビティ書き込みの失敗がAddSongの呼び出し元へ伝搬することを検証する。
// 書き込みは投げっぱなしではなく同期的に待機する。
func TestService_AddSong_ActivityFailurePropagates(t *testing.T) {
	ar := &mockActivityRepo{
		insertFn: func(ctx context.Context, activity *model.Activity) (string, error) {
			return "", errors.New("activity store unavailable")
		},
	}
	svc := newTestService(existingPlaylist("playlist-1", "user-1"), existingSong("song-A"), &mockMemberRepo{}, ar, Config{AllowDuplicateSongs: true})

	err := svc.AddSong(context.Background(), "playlist-1", "song-A", "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "activity store unavailable") {
		t.Errorf("error should wrap the activity failure, got: %v", err)
	}
}

// --- 楽曲削除 ---

// 楽曲削除でdeleteアクティビティが記録されることを検証する。
func TestService_RemoveSong_RecordsDeleteActivity(t *testing.T) {
	ar := &mockActivityRepo{}
	svc := newTestService(nil, nil, &mockMemberRepo{}, ar, Config{})

	if err := svc.RemoveSong(context.Background(), "playlist-1", "song-A", "user-1"); err != nil {
		t.Fatalf("RemoveSong returned error: %v", err)
	}

	if len(ar.inserted) != 1 {
		t.Fatalf("activity inserts = %d, want 1", len(ar.inserted))
	}
	if ar.inserted[0].Action != model.ActivityActionDelete {
		t.Errorf("action = %q, want %q", ar.inserted[0].Action, model.ActivityActionDelete)
	}
}

// 一致するメンバーシップ行がない削除はNotFoundとなり、アクティビティが記録されないことを検証する。
func TestService_RemoveSong_NotFound_NoActivity(t *testing.T) {
	mr := &mockMemberRepo{
		deleteByPlaylistAndSongFn: func(ctx context.Context, playlistID, songID string) (int64, error) {
			return 0, nil
		},
	}
	ar := &mockActivityRepo{}
	svc := newTestService(nil, nil, mr, ar, Config{})

	err := svc.RemoveSong(context.Background(), "playlist-1", "song-missing", "user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertAPIErrorCode(t, err, model.ErrCodeSongNotFound)

	if len(ar.inserted) != 0 {
		t.Errorf("activity inserts = %d, want 0", len(ar.inserted))
	}
}

// 追加→削除の往復で、アクティビティがadd、deleteの順に2件記録されることを検証する。
func TestService_AddThenRemove_ActivityOrder(t *testing.T) {
	ar := &mockActivityRepo{}
	svc := newTestService(existingPlaylist("playlist-1", "user-1"), existingSong("song-A"), &mockMemberRepo{}, ar, Config{AllowDuplicateSongs: true})

	if err := svc.AddSong(context.Background(), "playlist-1", "song-A", "user-1"); err != nil {
		t.Fatalf("AddSong returned error: %v", err)
	}
	if err := svc.RemoveSong(context.Background(), "playlist-1", "song-A", "user-1"); err != nil {
		t.Fatalf("RemoveSong returned error: %v", err)
	}

	if len(ar.inserted) != 2 {
		t.Fatalf("activity inserts = %d, want 2", len(ar.inserted))
	}
	if ar.inserted[0].Action != model.ActivityActionAdd {
		t.Errorf("first action = %q, want %q", ar.inserted[0].Action, model.ActivityActionAdd)
	}
	if ar.inserted[1].Action != model.ActivityActionDelete {
		t.Errorf("second action = %q, want %q", ar.inserted[1].Action, model.ActivityActionDelete)
	}
	if ar.inserted[1].Time.Before(ar.inserted[0].Time) {
		t.Error("activities should be recorded in chronological order")
	}
}

// --- 収録楽曲一覧 ---

// 収録楽曲がid・タイトル・演者のみに射影されて返ることを検証する。
func TestService_GetSongs_ReturnsDetail(t *testing.T) {
	pr := &mockPlaylistRepo{
		findByIDWithUsernameFn: func(ctx context.Context, id string) (*repository.PlaylistWithUsername, error) {
			return &repository.PlaylistWithUsername{ID: "playlist-1", Name: "Road Trip", Username: "alice"}, nil
		},
	}
	duration := 240
	mr := &mockMemberRepo{
		listSongsByPlaylistIDFn: func(ctx context.Context, playlistID string) ([]*model.Song, error) {
			return []*model.Song{
				{ID: "song-A", Title: "Evening News", Performer: "The Commentators", Year: 2019, Genre: "rock", Duration: &duration},
			}, nil
		},
	}
	svc := newTestService(pr, nil, mr, nil, Config{})

	detail, err := svc.GetSongs(context.Background(), "playlist-1")
	if err != nil {
		t.Fatalf("GetSongs returned error: %v", err)
	}

	if detail.Username != "alice" {
		t.Errorf("username = %q, want %q", detail.Username, "alice")
	}
	if len(detail.Songs) != 1 {
		t.Fatalf("songs = %d, want 1", len(detail.Songs))
	}
	song := detail.Songs[0]
	if song.ID != "song-A" || song.Title != "Evening News" || song.Performer != "The Commentators" {
		t.Errorf("song summary = %+v", song)
	}
}

// 存在しないプレイリストの収録楽曲取得はNotFoundになることを検証する。
func TestService_GetSongs_PlaylistNotFound(t *testing.T) {
	svc := newTestService(&mockPlaylistRepo{}, nil, nil, nil, Config{})

	_, err := svc.GetSongs(context.Background(), "playlist-missing")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertAPIErrorCode(t, err, model.ErrCodePlaylistNotFound)
}

// --- アクティビティ一覧 ---

// アクティビティが0件の場合にNotFoundが返ることを検証する。
// 「履歴がまだない」と「プレイリストが存在しない」はこの操作では区別されない。
func TestService_GetActivities_EmptyNotFound(t *testing.T) {
	svc := newTestService(nil, nil, nil, &mockActivityRepo{}, Config{})

	_, err := svc.GetActivities(context.Background(), "playlist-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	assertAPIErrorCode(t, err, model.ErrCodeActivityNotFound)
}

// アクティビティ一覧がリポジトリの返した順序のまま返ることを検証する。
func TestService_GetActivities_ReturnsInOrder(t *testing.T) {
	ar := &mockActivityRepo{
		listByPlaylistIDFn: func(ctx context.Context, playlistID string) ([]repository.ActivityWithDetail, error) {
			return []repository.ActivityWithDetail{
				{Username: "alice", Title: "Evening News", Action: model.ActivityActionAdd},
				{Username: "alice", Title: "Evening News", Action: model.ActivityActionDelete},
			}, nil
		},
	}
	svc := newTestService(nil, nil, nil, ar, Config{})

	activities, err := svc.GetActivities(context.Background(), "playlist-1")
	if err != nil {
		t.Fatalf("GetActivities returned error: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("activities = %d, want 2", len(activities))
	}
	if activities[0].Action != model.ActivityActionAdd || activities[1].Action != model.ActivityActionDelete {
		t.Errorf("actions = %q, %q; want add, delete", activities[0].Action, activities[1].Action)
	}
}
