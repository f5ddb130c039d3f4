package account

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/repository"
	"github.com/vfg2006/social-insights-dashboard/internal/domain"
	"github.com/vfg2006/social-insights-dashboard/internal/querycache"
)

// Tags de recurso usadas nas chaves de cache
const (
	MetaAdAccountsTag    = "meta_ad_accounts"
	AllMetaAdAccountsTag = "all_meta_ad_accounts"
)

const allProjectsSegment = "all"

// ErrReservedProjectID é devolvido para o id "all", que na chave de cache
// identifica a listagem sem projeto
var ErrReservedProjectID = errors.New("project id \"all\" is reserved")

type AccountService interface {
	GetMetaAdAccounts(ctx context.Context, projectID string) querycache.State[[]*domain.MetaAdAccount]
	GetAllMetaAdAccounts(ctx context.Context) querycache.State[[]*domain.MetaAdAccount]
}

type Service struct {
	metaAdAccountRepository repository.MetaAdAccountRepository
	cache                   *querycache.Cache
}

func NewService(metaAdAccountRepository repository.MetaAdAccountRepository, cache *querycache.Cache) AccountService {
	return &Service{
		metaAdAccountRepository: metaAdAccountRepository,
		cache:                   cache,
	}
}

func MetaAdAccountsKey(projectID string) querycache.Key {
	if projectID == "" {
		projectID = allProjectsSegment
	}
	return querycache.Key{MetaAdAccountsTag, projectID}
}

func AllMetaAdAccountsKey() querycache.Key {
	return querycache.Key{AllMetaAdAccountsTag}
}

// GetMetaAdAccounts lista as contas do projeto por data de criação, ou todas
// por nome quando projectID é vazio.
func (s *Service) GetMetaAdAccounts(ctx context.Context, projectID string) querycache.State[[]*domain.MetaAdAccount] {
	if projectID == allProjectsSegment {
		return querycache.State[[]*domain.MetaAdAccount]{Status: querycache.StatusError, Err: ErrReservedProjectID}
	}

	return querycache.Fetch(ctx, s.cache, MetaAdAccountsKey(projectID), func(ctx context.Context) ([]*domain.MetaAdAccount, error) {
		accounts, err := s.metaAdAccountRepository.ListByProject(ctx, projectID)
		logFetchError(err, projectID)
		return accounts, err
	})
}

func (s *Service) GetAllMetaAdAccounts(ctx context.Context) querycache.State[[]*domain.MetaAdAccount] {
	return querycache.Fetch(ctx, s.cache, AllMetaAdAccountsKey(), func(ctx context.Context) ([]*domain.MetaAdAccount, error) {
		accounts, err := s.metaAdAccountRepository.ListAll(ctx)
		logFetchError(err, "")
		return accounts, err
	})
}

func logFetchError(err error, projectID string) {
	// O cliente desabilitado já avisa a cada chamada
	if err == nil || errors.Is(err, backend.ErrNotConfigured) {
		return
	}

	logrus.WithError(err).WithField("project_id", projectID).Error("Erro ao buscar contas de anúncios do Meta")
}
