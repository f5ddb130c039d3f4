package servicing

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/repository"
	"github.com/vfg2006/social-insights-dashboard/internal/domain"
	"github.com/vfg2006/social-insights-dashboard/internal/querycache"
)

// ContractedServicesTag é a tag de recurso das chaves de cache
const ContractedServicesTag = "contracted_services"

type ServicingService interface {
	GetContractedServices(ctx context.Context, projectID string) ContractedServicesState
}

// ContractedServicesState é o estado da consulta acrescido dos canais já
// normalizados. Channels nunca é nulo.
type ContractedServicesState struct {
	querycache.State[*domain.ContractedServices]
	Channels []string
}

func (s ContractedServicesState) HasChannel(channel string) bool {
	return s.Data.HasChannel(channel)
}

type Service struct {
	projectRepository repository.ProjectRepository
	cache             *querycache.Cache
}

func NewService(projectRepository repository.ProjectRepository, cache *querycache.Cache) ServicingService {
	return &Service{
		projectRepository: projectRepository,
		cache:             cache,
	}
}

// ContractedServicesKey é a chave de cache dos serviços de um projeto
func ContractedServicesKey(projectID string) querycache.Key {
	return querycache.Key{ContractedServicesTag, projectID}
}

// GetContractedServices não consulta nada quando projectID é vazio.
func (s *Service) GetContractedServices(ctx context.Context, projectID string) ContractedServicesState {
	if projectID == "" {
		return ContractedServicesState{
			State:    querycache.Disabled[*domain.ContractedServices](),
			Channels: domain.EmptyContractedServices().Channels,
		}
	}

	state := querycache.Fetch(ctx, s.cache, ContractedServicesKey(projectID), func(ctx context.Context) (*domain.ContractedServices, error) {
		services, err := s.projectRepository.GetContractedServices(ctx, projectID)
		if err != nil && !errors.Is(err, backend.ErrNotConfigured) {
			logrus.WithError(err).WithField("project_id", projectID).Error("Erro ao buscar serviços contratados")
		}
		return services, err
	})

	services := domain.EmptyContractedServices()
	if state.Data != nil {
		services = *state.Data
	}

	return ContractedServicesState{
		State:    state,
		Channels: append([]string{}, services.Channels...),
	}
}
