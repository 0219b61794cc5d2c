package ports

import (
	"context"

	"github.com/neuralnexus/assistant/internal/core/domain"
)

// RoleInfo is the presentation metadata a role exposes to the UI layer.
type RoleInfo struct {
	Key              string `json:"key"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	InputLabel       string `json:"input_label"`
	InputHelp        string `json:"input_help"`
	InputPlaceholder string `json:"input_placeholder"`
	SubmitLabel      string `json:"submit_label"`
}

// AssistantService is the inbound contract for the answer pipeline: the sole
// entry point the presentation layer calls.
type AssistantService interface {
	ProcessQuery(ctx context.Context, query, roleKey string) (string, domain.SearchMetrics, error)
	Roles() []RoleInfo
}
