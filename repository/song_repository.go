package repository

import (
	"context"
	"database/sql"
	"time"

	"cratefm/model"
)

// SongRepository 定义歌曲相关的数据库操作接口
type SongRepository interface {
	// CreateSong 创建新歌曲，返回生成的ID
	CreateSong(ctx context.Context, title, description, audio string, albumID *int64) (int64, error)

	// SongExists 检查歌曲是否存在
	SongExists(ctx context.Context, id int64) (bool, error)

	// UpdateThumbnail 更新歌曲封面并返回更新后的行。
	// 歌曲不存在时返回 (nil, nil)。
	UpdateThumbnail(ctx context.Context, id int64, thumbnail string) (*model.Song, error)

	// DeleteSong 删除歌曲
	DeleteSong(ctx context.Context, id int64) error

	// DeleteSongsByAlbum 删除专辑下的所有歌曲
	DeleteSongsByAlbum(ctx context.Context, albumID int64) error
}

// MySQLSongRepository MySQL实现的歌曲仓库
type MySQLSongRepository struct {
	db *sql.DB
}

// NewMySQLSongRepository 创建新的MySQL歌曲仓库实例
func NewMySQLSongRepository(db *sql.DB) *MySQLSongRepository {
	return &MySQLSongRepository{db: db}
}

// CreateSong 创建新歌曲
func (r *MySQLSongRepository) CreateSong(ctx context.Context, title, description, audio string, albumID *int64) (int64, error) {
	query := `
		INSERT INTO songs (title, description, audio, album_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, title, description, audio, albumID, time.Now())
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

// SongExists 检查歌曲是否存在
func (r *MySQLSongRepository) SongExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM songs WHERE id = ?", id).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateThumbnail 更新歌曲封面
func (r *MySQLSongRepository) UpdateThumbnail(ctx context.Context, id int64, thumbnail string) (*model.Song, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE songs SET thumbnail = ? WHERE id = ?", thumbnail, id)
	if err != nil {
		return nil, err
	}

	// The caller checked existence already, but the row can vanish between
	// the check and the update; report that as an empty result, not an error.
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// MySQL also reports 0 when the value did not change, so confirm
		// the row is really gone before treating this as a miss.
		exists, err := r.SongExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, nil
		}
	}

	return r.getSongByID(ctx, id)
}

func (r *MySQLSongRepository) getSongByID(ctx context.Context, id int64) (*model.Song, error) {
	query := `
		SELECT id, title, description, thumbnail, audio, album_id, created_at
		FROM songs
		WHERE id = ?
	`

	song := &model.Song{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&song.ID,
		&song.Title,
		&song.Description,
		&song.Thumbnail,
		&song.Audio,
		&song.AlbumID,
		&song.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return song, nil
}

// DeleteSong 删除歌曲
func (r *MySQLSongRepository) DeleteSong(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM songs WHERE id = ?", id)
	return err
}

// DeleteSongsByAlbum 删除专辑下的所有歌曲
func (r *MySQLSongRepository) DeleteSongsByAlbum(ctx context.Context, albumID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM songs WHERE album_id = ?", albumID)
	return err
}
