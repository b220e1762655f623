package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/pkg/enums"
)

// Agent is a directory entry for a visa or housing broker. Phone and LineID
// are entitlement-gated contact fields and must be redacted for users without
// an active Survival Pack.
type Agent struct {
	ID          uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string              `gorm:"type:text;not null"`
	Category    enums.AgentCategory `gorm:"type:text;not null"`
	Specialty   string              `gorm:"type:text;not null"`
	Location    string              `gorm:"type:text;not null"`
	TrustScore  int                 `gorm:"column:trust_score;not null;default:0"`
	Description string              `gorm:"type:text"`
	IsVerified  bool                `gorm:"column:is_verified;not null;default:false"`
	Phone       *string             `gorm:"column:phone"`
	LineID      *string             `gorm:"column:line_id"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
}
