//go:generate mockgen -source=project.go -destination=mocks/mock_project.go -package=mocks
package repository

import (
	"context"

	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend"
	"github.com/vfg2006/social-insights-dashboard/internal/domain"
)

const projectsTable = "projects"

type ProjectRepository interface {
	GetContractedServices(ctx context.Context, projectID string) (*domain.ContractedServices, error)
}

type projectRepository struct {
	client backend.Client
}

func NewProjectRepository(client backend.Client) ProjectRepository {
	return &projectRepository{
		client: client,
	}
}

// GetContractedServices lê a coluna contracted_services de exatamente um projeto.
// Um projeto sem serviços devolve nil sem erro.
func (p *projectRepository) GetContractedServices(ctx context.Context, projectID string) (*domain.ContractedServices, error) {
	query := backend.From(projectsTable).
		Select("contracted_services").
		Eq("id", projectID).
		Single()

	result := p.client.Execute(ctx, query)
	if result.Err != nil {
		return nil, result.Err
	}

	var row struct {
		ContractedServices *domain.ContractedServices `json:"contracted_services"`
	}
	if err := result.Decode(&row); err != nil {
		return nil, backend.NewQueryError(backend.CodeDecode, projectsTable, "invalid contracted_services payload", err)
	}

	if row.ContractedServices == nil {
		return nil, nil
	}

	if err := row.ContractedServices.Validate(); err != nil {
		return nil, backend.NewQueryError(backend.CodeDecode, projectsTable, "invalid contracted_services payload", err)
	}

	row.ContractedServices.Normalize()

	return row.ContractedServices, nil
}
