package repository

import (
	"context"
	"database/sql"
	"time"

	"cratefm/model"
)

// AlbumRepository 定义专辑相关的数据库操作接口
type AlbumRepository interface {
	// CreateAlbum 创建新专辑，返回包含生成ID的完整行
	CreateAlbum(ctx context.Context, title, description, thumbnail string) (*model.Album, error)

	// AlbumExists 检查专辑是否存在
	AlbumExists(ctx context.Context, id int64) (bool, error)

	// DeleteAlbum 删除专辑
	DeleteAlbum(ctx context.Context, id int64) error
}

// MySQLAlbumRepository MySQL实现的专辑仓库
type MySQLAlbumRepository struct {
	db *sql.DB
}

// NewMySQLAlbumRepository 创建新的MySQL专辑仓库实例
func NewMySQLAlbumRepository(db *sql.DB) *MySQLAlbumRepository {
	return &MySQLAlbumRepository{db: db}
}

// CreateAlbum 创建新专辑
func (r *MySQLAlbumRepository) CreateAlbum(ctx context.Context, title, description, thumbnail string) (*model.Album, error) {
	query := `
		INSERT INTO albums (title, description, thumbnail, created_at)
		VALUES (?, ?, ?, ?)
	`

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query, title, description, thumbnail, now)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.Album{
		ID:          id,
		Title:       title,
		Description: description,
		Thumbnail:   thumbnail,
		CreatedAt:   now,
	}, nil
}

// AlbumExists 检查专辑是否存在
func (r *MySQLAlbumRepository) AlbumExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM albums WHERE id = ?", id).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteAlbum 删除专辑
func (r *MySQLAlbumRepository) DeleteAlbum(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM albums WHERE id = ?", id)
	return err
}
