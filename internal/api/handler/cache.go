package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/social-insights-dashboard/internal/querycache"
	"github.com/vfg2006/social-insights-dashboard/internal/usecases/account"
	"github.com/vfg2006/social-insights-dashboard/internal/usecases/servicing"
	"github.com/vfg2006/social-insights-dashboard/pkg/apiErrors"
	"github.com/vfg2006/social-insights-dashboard/pkg/log"
)

// CacheInvalidator descarta entradas do cache de consultas
type CacheInvalidator interface {
	Invalidate(key querycache.Key) bool
	InvalidateTag(tag string) int
}

// cacheKeys monta a chave de uma tag a partir do id informado. A listagem
// de todas as contas não tem id.
var cacheKeys = map[string]func(id string) (querycache.Key, bool){
	servicing.ContractedServicesTag: func(id string) (querycache.Key, bool) {
		return servicing.ContractedServicesKey(id), true
	},
	account.MetaAdAccountsTag: func(id string) (querycache.Key, bool) {
		return account.MetaAdAccountsKey(id), true
	},
	account.AllMetaAdAccountsTag: func(string) (querycache.Key, bool) {
		return nil, false
	},
}

type invalidateCacheResponse struct {
	Tag     string `json:"tag"`
	ID      string `json:"id,omitempty"`
	Removed int    `json:"removed"`
}

// InvalidateCache descarta o cache de um recurso, ou só do id quando informado.
// A próxima leitura consulta o backend de novo.
func InvalidateCache(invalidator CacheInvalidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := httprouter.ParamsFromContext(r.Context()).ByName("tag")
		id := strings.TrimSpace(r.URL.Query().Get("id"))

		logger := log.ForContext(r.Context()).WithField("tag", tag)
		logger.Info("INIT - InvalidateCache")

		keyFor, ok := cacheKeys[tag]
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Recurso de cache inválido. Valores aceitos: contracted_services, meta_ad_accounts, all_meta_ad_accounts", nil)
			return
		}

		resp := invalidateCacheResponse{Tag: tag, ID: id}

		if id == "" {
			resp.Removed = invalidator.InvalidateTag(tag)
		} else {
			key, scoped := keyFor(id)
			if !scoped {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Recurso não aceita id", nil)
				return
			}
			if invalidator.Invalidate(key) {
				resp.Removed = 1
			}
		}

		logger.WithField("removed", resp.Removed).Info("Cache invalidado")
		writeJSON(w, http.StatusOK, resp)
	}
}
