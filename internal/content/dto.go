package content

import (
	"time"

	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/pkg/db/models"
	"github.com/sharlabs/shar-backend/pkg/enums"
)

// AgentView is the public projection of an agent. Contact fields are nil for
// callers without an active Survival Pack.
type AgentView struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Category    enums.AgentCategory `json:"category"`
	Specialty   string              `json:"specialty"`
	Location    string              `json:"location"`
	TrustScore  int                 `json:"trust_score"`
	Description string              `json:"description,omitempty"`
	IsVerified  bool                `json:"is_verified"`
	Phone       *string             `json:"phone,omitempty"`
	LineID      *string             `json:"line_id,omitempty"`
}

// CreateAgentInput holds the fields required to list a new agent.
type CreateAgentInput struct {
	Name        string
	Category    enums.AgentCategory
	Specialty   string
	Location    string
	TrustScore  int
	Description string
	IsVerified  bool
	Phone       *string
	LineID      *string
}

// UpdateAgentInput carries partial agent updates; nil fields are untouched.
type UpdateAgentInput struct {
	Name        *string
	Specialty   *string
	Location    *string
	TrustScore  *int
	Description *string
	IsVerified  *bool
	Phone       *string
	LineID      *string
}

// CreateDailyUpdateInput holds a new news item.
type CreateDailyUpdateInput struct {
	Title    string
	Content  string
	ImageURL string
	Date     time.Time
}

// CreateAlertInput holds a new safety alert.
type CreateAlertInput struct {
	Title       string
	Description string
	Priority    enums.AlertPriority
	Date        time.Time
}

// CreateKnowledgeItemInput holds a new guide article.
type CreateKnowledgeItemInput struct {
	Title    string
	Content  string
	Category string
}

func agentToView(agent models.Agent, entitled bool) AgentView {
	view := AgentView{
		ID:          agent.ID,
		Name:        agent.Name,
		Category:    agent.Category,
		Specialty:   agent.Specialty,
		Location:    agent.Location,
		TrustScore:  agent.TrustScore,
		Description: agent.Description,
		IsVerified:  agent.IsVerified,
	}
	if entitled {
		view.Phone = agent.Phone
		view.LineID = agent.LineID
	}
	return view
}
