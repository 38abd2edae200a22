package catalog

import (
	"context"
	"fmt"

	"cratefm/logger"
	"cratefm/model"
	"cratefm/repository"
)

// Object store namespaces for uploaded assets.
const (
	NamespaceAlbums = "albums"
	NamespaceSongs  = "songs"
)

// Logical cache entries kept coherent across mutations.
const (
	cacheKeyAlbums = "albums"
	cacheKeySongs  = "songs"
)

func albumSongsKey(albumID int64) string {
	return fmt.Sprintf("album_songs_%d", albumID)
}

// Uploader pushes a binary payload into the object store under a namespace
// prefix and returns the public URL of the stored asset.
type Uploader interface {
	Upload(ctx context.Context, payload []byte, namespace, contentType string) (string, error)
}

// Invalidator evicts cached read results. Implementations must be safe to
// call when no cache is available; Evict never reports failure.
type Invalidator interface {
	Established() bool
	Evict(ctx context.Context, keys ...string)
}

// Service runs the admin mutation pipeline. Every operation is strictly
// ordered: authorization, then integrity checks, then the asset upload,
// then the relational write, then cache eviction. Steps short-circuit on
// the first failure and nothing is rolled back; if the relational write
// fails after the upload succeeded, the uploaded object stays behind as
// an orphan.
type Service struct {
	albums   repository.AlbumRepository
	songs    repository.SongRepository
	uploader Uploader
	cache    Invalidator
}

// NewService 创建目录管理服务
func NewService(albums repository.AlbumRepository, songs repository.SongRepository, uploader Uploader, cache Invalidator) *Service {
	return &Service{
		albums:   albums,
		songs:    songs,
		uploader: uploader,
		cache:    cache,
	}
}

// requireAdmin is the first step of every mutation; it runs before any
// side effect so that unauthorized requests leave no trace anywhere.
func requireAdmin(caller *model.Identity) error {
	if !caller.IsAdmin() {
		return ErrAccessDenied
	}
	return nil
}

// CreateAlbumRequest carries the fields for a new album.
type CreateAlbumRequest struct {
	Title       string
	Description string
	File        []byte
	ContentType string
}

// CreateAlbum uploads the thumbnail and inserts the album row.
func (s *Service) CreateAlbum(ctx context.Context, caller *model.Identity, req CreateAlbumRequest) (*model.Album, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if len(req.File) == 0 {
		return nil, fmt.Errorf("%w: file is required", ErrValidation)
	}

	url, err := s.uploader.Upload(ctx, req.File, NamespaceAlbums, req.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	album, err := s.albums.CreateAlbum(ctx, req.Title, req.Description, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	s.evict(ctx, cacheKeyAlbums)

	logger.Info("album created",
		logger.Int64("albumId", album.ID),
		logger.String("title", album.Title))
	return album, nil
}

// CreateSongRequest carries the fields for a new song.
type CreateSongRequest struct {
	Title       string
	Description string
	AlbumID     int64
	File        []byte
	ContentType string
}

// CreateSong verifies the parent album, uploads the audio and inserts the
// song row. The existence check runs before the upload so a doomed write
// never costs an object store round trip.
func (s *Service) CreateSong(ctx context.Context, caller *model.Identity, req CreateSongRequest) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	exists, err := s.albums.AlbumExists(ctx, req.AlbumID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if !exists {
		return ErrAlbumNotFound
	}

	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.Description == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	if len(req.File) == 0 {
		return fmt.Errorf("%w: file is required", ErrValidation)
	}

	url, err := s.uploader.Upload(ctx, req.File, NamespaceSongs, req.ContentType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpload, err)
	}

	albumID := req.AlbumID
	songID, err := s.songs.CreateSong(ctx, req.Title, req.Description, url, &albumID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	s.evict(ctx, cacheKeySongs, albumSongsKey(req.AlbumID))

	logger.Info("song created",
		logger.Int64("songId", songID),
		logger.Int64("albumId", req.AlbumID),
		logger.String("title", req.Title))
	return nil
}

// SetSongThumbnail uploads a new thumbnail and attaches it to the song.
func (s *Service) SetSongThumbnail(ctx context.Context, caller *model.Identity, songID int64, file []byte, contentType string) (*model.Song, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	exists, err := s.songs.SongExists(ctx, songID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if !exists {
		return nil, ErrSongNotFound
	}

	if len(file) == 0 {
		return nil, fmt.Errorf("%w: file is required", ErrValidation)
	}

	url, err := s.uploader.Upload(ctx, file, "", contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	song, err := s.songs.UpdateThumbnail(ctx, songID, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if song == nil {
		// Deleted between the existence check and the update.
		return nil, ErrSongNotFound
	}

	s.evict(ctx, cacheKeySongs)

	logger.Info("song thumbnail updated", logger.Int64("songId", songID))
	return song, nil
}

// DeleteAlbum removes an album and every song that references it. The
// schema declares SET NULL for the reference; the pipeline deletes the
// songs anyway so they are not left orphaned, a deliberate two-phase
// delete pending product clarification.
func (s *Service) DeleteAlbum(ctx context.Context, caller *model.Identity, id int64) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	exists, err := s.albums.AlbumExists(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if !exists {
		return ErrAlbumNotFound
	}

	if err := s.songs.DeleteSongsByAlbum(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if err := s.albums.DeleteAlbum(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	s.evict(ctx, albumSongsKey(id), cacheKeyAlbums, cacheKeySongs)

	logger.Info("album deleted", logger.Int64("albumId", id))
	return nil
}

// DeleteSong removes a single song row.
func (s *Service) DeleteSong(ctx context.Context, caller *model.Identity, id int64) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	exists, err := s.songs.SongExists(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	if !exists {
		return ErrSongNotFound
	}

	if err := s.songs.DeleteSong(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	s.evict(ctx, cacheKeySongs)

	logger.Info("song deleted", logger.Int64("songId", id))
	return nil
}

// evict is best effort: skipped entirely when no cache connection is
// established, and eviction errors stay inside the invalidator.
func (s *Service) evict(ctx context.Context, keys ...string) {
	if s.cache == nil || !s.cache.Established() {
		return
	}
	s.cache.Evict(ctx, keys...)
}
