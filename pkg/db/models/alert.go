package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/pkg/enums"
)

// Alert is a safety or legal notice surfaced to all users.
type Alert struct {
	ID          uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string              `gorm:"type:text;not null"`
	Description string              `gorm:"type:text;not null"`
	Priority    enums.AlertPriority `gorm:"type:text;not null;default:low"`
	Date        time.Time           `gorm:"column:date;not null"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
}
