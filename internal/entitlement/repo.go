package entitlement

import (
	"context"
	"time"

	"github.com/google/uuid"
	dbpkg "github.com/sharlabs/shar-backend/pkg/db"
	"gorm.io/gorm"
)

// Repository persists Survival Pack activations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ActivatePack stamps the entitlement window on the profile row. The new
// expiry replaces whatever was there before; remaining time is never added.
func (r *Repository) ActivatePack(ctx context.Context, userID uuid.UUID, expiry time.Time, now time.Time) (dbpkg.WriteOutcome, error) {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE profiles
		 SET has_survival_pack = ?, survival_pack_expiry = ?, updated_at = ?
		 WHERE id = ?`,
		true, expiry, now, userID,
	)
	return dbpkg.ClassifyWrite(res)
}
