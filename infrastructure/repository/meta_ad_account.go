//go:generate mockgen -source=meta_ad_account.go -destination=mocks/mock_meta_ad_account.go -package=mocks
package repository

import (
	"context"

	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend"
	"github.com/vfg2006/social-insights-dashboard/internal/domain"
)

const metaAdAccountsTable = "meta_ad_accounts"

type MetaAdAccountRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]*domain.MetaAdAccount, error)
	ListAll(ctx context.Context) ([]*domain.MetaAdAccount, error)
}

type metaAdAccountRepository struct {
	client backend.Client
}

func NewMetaAdAccountRepository(client backend.Client) MetaAdAccountRepository {
	return &metaAdAccountRepository{
		client: client,
	}
}

// ListByProject filtra pelo projeto e ordena por data de criação. Sem projeto,
// devolve todas as contas ordenadas por nome.
func (m *metaAdAccountRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.MetaAdAccount, error) {
	query := backend.From(metaAdAccountsTable)

	if projectID != "" {
		query = query.Eq("project_id", projectID).OrderAsc("created_at")
	} else {
		query = query.OrderAsc("account_name")
	}

	return m.list(ctx, query)
}

func (m *metaAdAccountRepository) ListAll(ctx context.Context) ([]*domain.MetaAdAccount, error) {
	query := backend.From(metaAdAccountsTable).OrderAsc("account_name")

	return m.list(ctx, query)
}

func (m *metaAdAccountRepository) list(ctx context.Context, query backend.Query) ([]*domain.MetaAdAccount, error) {
	result := m.client.Execute(ctx, query)
	if result.Err != nil {
		return nil, result.Err
	}

	accounts := []*domain.MetaAdAccount{}
	if err := result.Decode(&accounts); err != nil {
		return nil, backend.NewQueryError(backend.CodeDecode, metaAdAccountsTable, "invalid meta_ad_accounts payload", err)
	}

	return accounts, nil
}
