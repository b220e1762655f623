package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyUpdate is a dated news item shown on the news feed.
type DailyUpdate struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string    `gorm:"type:text;not null"`
	Content   string    `gorm:"type:text;not null"`
	ImageURL  string    `gorm:"column:image_url;type:text"`
	Date      time.Time `gorm:"column:date;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
