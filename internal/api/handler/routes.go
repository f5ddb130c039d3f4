package handler

import (
	"net/http"

	"github.com/vfg2006/social-insights-dashboard/internal/api/handler/router"
	"github.com/vfg2006/social-insights-dashboard/internal/presentation/emptystate"
	"github.com/vfg2006/social-insights-dashboard/internal/usecases/account"
	"github.com/vfg2006/social-insights-dashboard/internal/usecases/servicing"
	"github.com/vfg2006/social-insights-dashboard/pkg/middleware"
)

func Healthcheck(backendMode string) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(backendMode),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func ContractedServices(service servicing.ServicingService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/contracted-services",
			Method:  http.MethodGet,
			Handler: GetContractedServices(service),
		},
	}
}

func MetaAdAccounts(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/meta-ad-accounts",
			Method:  http.MethodGet,
			Handler: ListMetaAdAccounts(service),
		},
		{
			Path:    "/v1/meta-ad-accounts/all",
			Method:  http.MethodGet,
			Handler: ListAllMetaAdAccounts(service),
		},
	}
}

func Charts(renderer ChartRenderer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/charts/comments-average",
			Method:  http.MethodPost,
			Handler: CommentsAverageChart(renderer),
		},
	}
}

func Pages(renderer PanelRenderer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/pages/analyses",
			Method:  http.MethodGet,
			Handler: EmptyStatePage(renderer, emptystate.Analyses()),
		},
		{
			Path:    "/v1/pages/reports",
			Method:  http.MethodGet,
			Handler: EmptyStatePage(renderer, emptystate.Reports()),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceRoleOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceRoleOnly()},
		},
	}
}

func CacheInvalidation(invalidator CacheInvalidator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cache/:tag/invalidate",
			Method:      http.MethodPost,
			Handler:     InvalidateCache(invalidator),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceRoleOnly()},
		},
	}
}
