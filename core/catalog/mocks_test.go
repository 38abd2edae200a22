package catalog

import (
	"context"

	"cratefm/model"
)

// Fn-field mocks: each test injects just the behavior it needs and counts
// calls through closures.

type mockAlbumRepo struct {
	CreateAlbumFn func(ctx context.Context, title, description, thumbnail string) (*model.Album, error)
	AlbumExistsFn func(ctx context.Context, id int64) (bool, error)
	DeleteAlbumFn func(ctx context.Context, id int64) error
}

func (m *mockAlbumRepo) CreateAlbum(ctx context.Context, title, description, thumbnail string) (*model.Album, error) {
	return m.CreateAlbumFn(ctx, title, description, thumbnail)
}

func (m *mockAlbumRepo) AlbumExists(ctx context.Context, id int64) (bool, error) {
	return m.AlbumExistsFn(ctx, id)
}

func (m *mockAlbumRepo) DeleteAlbum(ctx context.Context, id int64) error {
	return m.DeleteAlbumFn(ctx, id)
}

type mockSongRepo struct {
	CreateSongFn         func(ctx context.Context, title, description, audio string, albumID *int64) (int64, error)
	SongExistsFn         func(ctx context.Context, id int64) (bool, error)
	UpdateThumbnailFn    func(ctx context.Context, id int64, thumbnail string) (*model.Song, error)
	DeleteSongFn         func(ctx context.Context, id int64) error
	DeleteSongsByAlbumFn func(ctx context.Context, albumID int64) error
}

func (m *mockSongRepo) CreateSong(ctx context.Context, title, description, audio string, albumID *int64) (int64, error) {
	return m.CreateSongFn(ctx, title, description, audio, albumID)
}

func (m *mockSongRepo) SongExists(ctx context.Context, id int64) (bool, error) {
	return m.SongExistsFn(ctx, id)
}

func (m *mockSongRepo) UpdateThumbnail(ctx context.Context, id int64, thumbnail string) (*model.Song, error) {
	return m.UpdateThumbnailFn(ctx, id, thumbnail)
}

func (m *mockSongRepo) DeleteSong(ctx context.Context, id int64) error {
	return m.DeleteSongFn(ctx, id)
}

func (m *mockSongRepo) DeleteSongsByAlbum(ctx context.Context, albumID int64) error {
	return m.DeleteSongsByAlbumFn(ctx, albumID)
}

type mockUploader struct {
	UploadFn func(ctx context.Context, payload []byte, namespace, contentType string) (string, error)
	calls    int
}

func (m *mockUploader) Upload(ctx context.Context, payload []byte, namespace, contentType string) (string, error) {
	m.calls++
	return m.UploadFn(ctx, payload, namespace, contentType)
}

type mockInvalidator struct {
	established bool
	evicted     []string
	evictCalls  int
}

func (m *mockInvalidator) Established() bool {
	return m.established
}

func (m *mockInvalidator) Evict(ctx context.Context, keys ...string) {
	m.evictCalls++
	m.evicted = append(m.evicted, keys...)
}
