package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	dbpkg "github.com/sharlabs/shar-backend/pkg/db"
	"github.com/sharlabs/shar-backend/pkg/db/models"
	"github.com/sharlabs/shar-backend/pkg/enums"
	pkgerrors "github.com/sharlabs/shar-backend/pkg/errors"
	"github.com/sharlabs/shar-backend/pkg/logger"
)

const defaultFeedLimit = 50

type contentRepository interface {
	ListAgents(ctx context.Context, category *enums.AgentCategory) ([]models.Agent, error)
	CreateAgent(ctx context.Context, agent *models.Agent) (*models.Agent, error)
	UpdateAgent(ctx context.Context, id uuid.UUID, updates map[string]any) (dbpkg.WriteOutcome, error)
	DeleteAgent(ctx context.Context, id uuid.UUID) (dbpkg.WriteOutcome, error)
	ListDailyUpdates(ctx context.Context, limit int) ([]models.DailyUpdate, error)
	CreateDailyUpdate(ctx context.Context, update *models.DailyUpdate) (*models.DailyUpdate, error)
	DeleteDailyUpdate(ctx context.Context, id uuid.UUID) (dbpkg.WriteOutcome, error)
	ListAlerts(ctx context.Context, limit int) ([]models.Alert, error)
	CreateAlert(ctx context.Context, alert *models.Alert) (*models.Alert, error)
	DeleteAlert(ctx context.Context, id uuid.UUID) (dbpkg.WriteOutcome, error)
	ListKnowledgeItems(ctx context.Context, category string) ([]models.KnowledgeItem, error)
	CreateKnowledgeItem(ctx context.Context, item *models.KnowledgeItem) (*models.KnowledgeItem, error)
	DeleteKnowledgeItem(ctx context.Context, id uuid.UUID) (dbpkg.WriteOutcome, error)
}

type alertEventPublisher interface {
	PublishAlertCreated(ctx context.Context, alert *models.Alert) error
}

// Service exposes the public reads and CMS writes over the content catalog.
type Service interface {
	ListAgents(ctx context.Context, category *enums.AgentCategory, entitled bool) ([]AgentView, error)
	CreateAgent(ctx context.Context, input CreateAgentInput) (*models.Agent, error)
	UpdateAgent(ctx context.Context, id uuid.UUID, input UpdateAgentInput) error
	DeleteAgent(ctx context.Context, id uuid.UUID) error

	ListDailyUpdates(ctx context.Context) ([]models.DailyUpdate, error)
	CreateDailyUpdate(ctx context.Context, input CreateDailyUpdateInput) (*models.DailyUpdate, error)
	DeleteDailyUpdate(ctx context.Context, id uuid.UUID) error

	ListAlerts(ctx context.Context) ([]models.Alert, error)
	CreateAlert(ctx context.Context, input CreateAlertInput) (*models.Alert, error)
	DeleteAlert(ctx context.Context, id uuid.UUID) error

	ListKnowledgeItems(ctx context.Context, category string) ([]models.KnowledgeItem, error)
	CreateKnowledgeItem(ctx context.Context, input CreateKnowledgeItemInput) (*models.KnowledgeItem, error)
	DeleteKnowledgeItem(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   contentRepository
	events alertEventPublisher
	logg   *logger.Logger
}

// NewService builds the content service. The event publisher is optional.
func NewService(repo contentRepository, events alertEventPublisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("content repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, events: events, logg: logg}, nil
}

// ListAgents returns the agent directory. Contact fields are stripped unless
// the caller holds an active Survival Pack.
func (s *service) ListAgents(ctx context.Context, category *enums.AgentCategory, entitled bool) ([]AgentView, error) {
	if category != nil && !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid agent category")
	}
	agents, err := s.repo.ListAgents(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing agents")
	}
	views := make([]AgentView, 0, len(agents))
	for _, agent := range agents {
		views = append(views, agentToView(agent, entitled))
	}
	return views, nil
}

func (s *service) CreateAgent(ctx context.Context, input CreateAgentInput) (*models.Agent, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid agent category")
	}

	agent, err := s.repo.CreateAgent(ctx, &models.Agent{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Category:    input.Category,
		Specialty:   strings.TrimSpace(input.Specialty),
		Location:    strings.TrimSpace(input.Location),
		TrustScore:  input.TrustScore,
		Description: input.Description,
		IsVerified:  input.IsVerified,
		Phone:       input.Phone,
		LineID:      input.LineID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating agent")
	}
	return agent, nil
}

func (s *service) UpdateAgent(ctx context.Context, id uuid.UUID, input UpdateAgentInput) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "agent id is required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Specialty != nil {
		updates["specialty"] = strings.TrimSpace(*input.Specialty)
	}
	if input.Location != nil {
		updates["location"] = strings.TrimSpace(*input.Location)
	}
	if input.TrustScore != nil {
		updates["trust_score"] = *input.TrustScore
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsVerified != nil {
		updates["is_verified"] = *input.IsVerified
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.LineID != nil {
		updates["line_id"] = *input.LineID
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no agent fields to update")
	}

	outcome, err := s.repo.UpdateAgent(ctx, id, updates)
	return verifyWrite(outcome, err, "agent update")
}

func (s *service) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "agent id is required")
	}
	outcome, err := s.repo.DeleteAgent(ctx, id)
	return verifyWrite(outcome, err, "agent delete")
}

func (s *service) ListDailyUpdates(ctx context.Context) ([]models.DailyUpdate, error) {
	updates, err := s.repo.ListDailyUpdates(ctx, defaultFeedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing daily updates")
	}
	return updates, nil
}

func (s *service) CreateDailyUpdate(ctx context.Context, input CreateDailyUpdateInput) (*models.DailyUpdate, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "update title and content are required")
	}

	update, err := s.repo.CreateDailyUpdate(ctx, &models.DailyUpdate{
		ID:       uuid.New(),
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		ImageURL: input.ImageURL,
		Date:     input.Date,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating daily update")
	}
	return update, nil
}

func (s *service) DeleteDailyUpdate(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "update id is required")
	}
	outcome, err := s.repo.DeleteDailyUpdate(ctx, id)
	return verifyWrite(outcome, err, "daily update delete")
}

func (s *service) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	alerts, err := s.repo.ListAlerts(ctx, defaultFeedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing alerts")
	}
	return alerts, nil
}

// CreateAlert persists the alert and then emits alert.created. The emit is
// best-effort: a publish failure is logged, not returned, because the alert
// is already durable.
func (s *service) CreateAlert(ctx context.Context, input CreateAlertInput) (*models.Alert, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "alert title and description are required")
	}
	if !input.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid alert priority")
	}

	alert, err := s.repo.CreateAlert(ctx, &models.Alert{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Priority:    input.Priority,
		Date:        input.Date,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating alert")
	}

	if s.events != nil {
		if pubErr := s.events.PublishAlertCreated(ctx, alert); pubErr != nil {
			s.logg.Warn(s.logg.WithField(ctx, "alert_id", alert.ID.String()), "alert.created publish failed: "+pubErr.Error())
		}
	}
	return alert, nil
}

func (s *service) DeleteAlert(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "alert id is required")
	}
	outcome, err := s.repo.DeleteAlert(ctx, id)
	return verifyWrite(outcome, err, "alert delete")
}

func (s *service) ListKnowledgeItems(ctx context.Context, category string) ([]models.KnowledgeItem, error) {
	items, err := s.repo.ListKnowledgeItems(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing knowledge items")
	}
	return items, nil
}

func (s *service) CreateKnowledgeItem(ctx context.Context, input CreateKnowledgeItemInput) (*models.KnowledgeItem, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item title and content are required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item category is required")
	}

	item, err := s.repo.CreateKnowledgeItem(ctx, &models.KnowledgeItem{
		ID:       uuid.New(),
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Category: strings.TrimSpace(input.Category),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating knowledge item")
	}
	return item, nil
}

func (s *service) DeleteKnowledgeItem(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	outcome, err := s.repo.DeleteKnowledgeItem(ctx, id)
	return verifyWrite(outcome, err, "knowledge item delete")
}

// verifyWrite maps a mutation outcome to the caller-facing error taxonomy:
// an errored write is a dependency problem, a zero-row write was denied by
// the store, an applied write passes through.
func verifyWrite(outcome dbpkg.WriteOutcome, err error, action string) error {
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action+" failed")
	}
	switch outcome {
	case dbpkg.WriteApplied:
		return nil
	case dbpkg.WriteDenied:
		return pkgerrors.New(pkgerrors.CodeWriteDenied, action+" touched no rows")
	default:
		return pkgerrors.New(pkgerrors.CodeDependency, action+" failed")
	}
}
