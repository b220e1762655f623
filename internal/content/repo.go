package content

import (
	"context"

	"github.com/google/uuid"
	dbpkg "github.com/sharlabs/shar-backend/pkg/db"
	"github.com/sharlabs/shar-backend/pkg/db/models"
	"github.com/sharlabs/shar-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository exposes content persistence for agents, updates, alerts, and
// knowledge items. Mutations report a WriteOutcome so callers can tell an
// ineffective write apart from a failed one.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAgents returns agents, optionally filtered by category, most trusted first.
func (r *Repository) ListAgents(ctx context.Context, category *enums.AgentCategory) ([]models.Agent, error) {
	query := r.db.WithContext(ctx).Model(&models.Agent{})
	if category != nil {
		query = query.Where("category = ?", *category)
	}
	var agents []models.Agent
	if err := query.Order("trust_score DESC, name").Find(&agents).Error; err != nil {
		return nil, err
	}
	return agents, nil
}

// CreateAgent persists a new agent listing.
func (r *Repository) CreateAgent(ctx context.Context, agent *models.Agent) (*models.Agent, error) {
	if err := r.db.WithContext(ctx).Create(agent).Error; err != nil {
		return nil, err
	}
	return agent, nil
}

// UpdateAgent applies the given column updates to one agent row.
func (r *Repository) UpdateAgent(ctx context.Context, id uuid.UUID, updates map[string]any) (dbpkg.WriteOutcome, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Agent{}).
		Where("id = ?", id).
		Updates(updates)
	return dbpkg.ClassifyWrite(res)
}

// DeleteAgent removes one agent row.
func (r *Repository) DeleteAgent(ctx context.Context, id uuid.UUID) (dbpkg.WriteOutcome, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Agent{})
	return dbpkg.ClassifyWrite(res)
}

// ListDailyUpdates returns the newest updates first, capped at limit.
func (r *Repository) ListDailyUpdates(ctx context.Context, limit int) ([]models.DailyUpdate, error) {
	var updates []models.DailyUpdate
	query := r.db.WithContext(ctx).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

// CreateDailyUpdate persists a new news item.
func (r *Repository) CreateDailyUpdate(ctx context.Context, update *models.DailyUpdate) (*models.DailyUpdate, error) {
	if err := r.db.WithContext(ctx).Create(update).Error; err != nil {
		return nil, err
	}
	return update, nil
}

// DeleteDailyUpdate removes one news item.
func (r *Repository) DeleteDailyUpdate(ctx context.Context, id uuid.UUID) (dbpkg.WriteOutcome, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DailyUpdate{})
	return dbpkg.ClassifyWrite(res)
}

// ListAlerts returns the newest alerts first, capped at limit.
func (r *Repository) ListAlerts(ctx context.Context, limit int) ([]models.Alert, error) {
	var alerts []models.Alert
	query := r.db.WithContext(ctx).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// CreateAlert persists a new safety alert.
func (r *Repository) CreateAlert(ctx context.Context, alert *models.Alert) (*models.Alert, error) {
	if err := r.db.WithContext(ctx).Create(alert).Error; err != nil {
		return nil, err
	}
	return alert, nil
}

// DeleteAlert removes one alert.
func (r *Repository) DeleteAlert(ctx context.Context, id uuid.UUID) (dbpkg.WriteOutcome, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Alert{})
	return dbpkg.ClassifyWrite(res)
}

// ListKnowledgeItems returns guide articles, optionally filtered by category.
func (r *Repository) ListKnowledgeItems(ctx context.Context, category string) ([]models.KnowledgeItem, error) {
	query := r.db.WithContext(ctx).Model(&models.KnowledgeItem{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var items []models.KnowledgeItem
	if err := query.Order("title").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateKnowledgeItem persists a new guide article.
func (r *Repository) CreateKnowledgeItem(ctx context.Context, item *models.KnowledgeItem) (*models.KnowledgeItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteKnowledgeItem removes one guide article.
func (r *Repository) DeleteKnowledgeItem(ctx context.Context, id uuid.UUID) (dbpkg.WriteOutcome, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.KnowledgeItem{})
	return dbpkg.ClassifyWrite(res)
}
