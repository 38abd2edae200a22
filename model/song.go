package model

import "time"

// Song 表示一首歌曲
// AlbumID 为空表示单曲，不属于任何专辑。
type Song struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"column:title;size:255;not null"`
	Description string    `json:"description" gorm:"column:description;size:255;not null"`
	Thumbnail   *string   `json:"thumbnail" gorm:"column:thumbnail;size:255"`
	Audio       string    `json:"audio" gorm:"column:audio;size:255;not null"`
	AlbumID     *int64    `json:"albumId" gorm:"column:album_id"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`

	// The schema declares SET NULL on album deletion; the admin pipeline
	// nevertheless deletes a deleted album's songs explicitly. See
	// catalog.Service.DeleteAlbum.
	Album *Album `json:"-" gorm:"foreignKey:AlbumID;constraint:OnDelete:SET NULL"`
}

// TableName 指定表名
func (Song) TableName() string {
	return "songs"
}
