package middleware

import (
	"net/http"

	"github.com/vfg2006/social-insights-dashboard/pkg/apiErrors"
	"github.com/vfg2006/social-insights-dashboard/pkg/log"
)

// RoleServiceRole é o role dos tokens de serviço emitidos pelo backend
const RoleServiceRole = "service_role"

// RoleMiddleware restringe o acesso às claims com um dos roles permitidos
func RoleMiddleware(allowedRoles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := UserFromContext(r.Context())
			if !ok {
				log.ForContext(r.Context()).Warn("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			// Sem segredo configurado o role do token não é confiável
			if !userClaims.Verified {
				log.ForContext(r.Context()).WithFields(log.Fields{
					"user_sub":  userClaims.Subject,
					"user_role": userClaims.Role,
				}).Warn("Token sem assinatura verificada em rota restrita")
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Token sem assinatura verificada", nil)
				return
			}

			for _, role := range allowedRoles {
				if userClaims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.ForContext(r.Context()).WithFields(log.Fields{
				"user_sub":  userClaims.Subject,
				"user_role": userClaims.Role,
			}).Warn("Acesso negado")
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
		})
	}
}

// ServiceRoleOnly permite apenas tokens de serviço
func ServiceRoleOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{RoleServiceRole})
}
