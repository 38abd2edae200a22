package model

import "time"

// Album 表示一张专辑
type Album struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"column:title;size:255;not null"`
	Description string    `json:"description" gorm:"column:description;size:255;not null"`
	Thumbnail   string    `json:"thumbnail" gorm:"column:thumbnail;size:255;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
}

// TableName 指定表名
func (Album) TableName() string {
	return "albums"
}
