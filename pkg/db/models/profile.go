package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/pkg/enums"
)

// Profile is the durable per-identity record. HasSurvivalPack is a
// denormalized hint; SurvivalPackExpiry is the authoritative entitlement
// source. DailyChatCount is only meaningful when LastChatReset matches the
// current UTC calendar day.
type Profile struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Email              string         `gorm:"type:text;not null"`
	PasswordHash       string         `gorm:"column:password_hash;not null"`
	Role               enums.UserRole `gorm:"type:text;not null;default:user"`
	HasSurvivalPack    bool           `gorm:"column:has_survival_pack;not null;default:false"`
	SurvivalPackExpiry *time.Time     `gorm:"column:survival_pack_expiry"`
	DailyChatCount     int            `gorm:"column:daily_chat_count;not null;default:0"`
	LastChatReset      *string        `gorm:"column:last_chat_reset;type:text"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
