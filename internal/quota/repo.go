package quota

import (
	"context"
	"time"

	"github.com/google/uuid"
	dbpkg "github.com/sharlabs/shar-backend/pkg/db"
	"gorm.io/gorm"
)

// Repository persists quota admissions.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Admit consumes one quota slot for the given day in a single conditional
// UPDATE. The CASE folds the lazy day reset into the same statement: a stale
// last_chat_reset restarts the counter at 1, a current one increments it. The
// WHERE clause enforces the ceiling against the effective count, so under
// concurrency exactly limit rows-worth of admissions can ever succeed; a
// denied admission surfaces as zero rows affected.
func (r *Repository) Admit(ctx context.Context, userID uuid.UUID, today string, limit int, now time.Time) (dbpkg.WriteOutcome, error) {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE profiles
		 SET daily_chat_count = CASE WHEN last_chat_reset = ? THEN daily_chat_count + 1 ELSE 1 END,
		     last_chat_reset = ?,
		     updated_at = ?
		 WHERE id = ?
		   AND (CASE WHEN last_chat_reset = ? THEN daily_chat_count ELSE 0 END) < ?`,
		today, today, now, userID, today, limit,
	)
	return dbpkg.ClassifyWrite(res)
}
