package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/neuralnexus/assistant/internal/core/domain"
	"github.com/neuralnexus/assistant/internal/core/ports"
	"github.com/neuralnexus/assistant/internal/core/role"
)

// AssistantUseCase holds the persona registry, every persona bound to the
// same search and completion clients. It is the single entry point the
// transport layer calls.
type AssistantUseCase struct {
	order    []string
	runtimes map[string]*role.Runtime
}

func NewAssistantUseCase(
	definitions []role.Definition,
	search ports.SearchService,
	llm ports.CompletionService,
) (*AssistantUseCase, error) {
	uc := &AssistantUseCase{
		order:    make([]string, 0, len(definitions)),
		runtimes: make(map[string]*role.Runtime, len(definitions)),
	}
	for _, def := range definitions {
		runtime, err := role.NewRuntime(def, search, llm)
		if err != nil {
			return nil, fmt.Errorf("bind role %s: %w", def.Key, err)
		}
		uc.order = append(uc.order, def.Key)
		uc.runtimes[def.Key] = runtime
	}
	return uc, nil
}

func (uc *AssistantUseCase) ProcessQuery(ctx context.Context, query, roleKey string) (string, domain.SearchMetrics, error) {
	if strings.TrimSpace(query) == "" {
		return "", domain.SearchMetrics{}, domain.WrapError(domain.ErrInvalidInput, "process query",
			fmt.Errorf("query must not be empty"))
	}
	runtime, ok := uc.runtimes[roleKey]
	if !ok {
		return "", domain.SearchMetrics{}, domain.WrapError(domain.ErrUnknownRole, "process query",
			fmt.Errorf("no role registered for key %q", roleKey))
	}
	return runtime.ProcessQuery(ctx, query)
}

// Roles lists persona display metadata in registration order.
func (uc *AssistantUseCase) Roles() []ports.RoleInfo {
	infos := make([]ports.RoleInfo, 0, len(uc.order))
	for _, key := range uc.order {
		infos = append(infos, uc.runtimes[key].Info())
	}
	return infos
}
