package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/social-insights-dashboard/infrastructure/backend"
	"github.com/vfg2006/social-insights-dashboard/pkg/apiErrors"
	"github.com/vfg2006/social-insights-dashboard/pkg/log"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// UserClaims são as claims do token emitido pelo serviço de autenticação do backend
type UserClaims struct {
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	// Verified indica que a assinatura foi conferida com o segredo configurado
	Verified bool   `json:"-"`
	jwt.RegisteredClaims
}

// AuthMiddleware repassa o token do usuário para o gateway. Requisições sem
// Authorization seguem como anônimas. Com jwtSecret vazio o token é aceito sem
// verificar a assinatura e quem valida é o próprio backend; essas claims não
// passam pelo RoleMiddleware.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader || tokenString == "" {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Bearer token é obrigatório", nil)
				return
			}

			claims, err := parseClaims(tokenString, jwtSecret)
			if err != nil {
				code := apiErrors.ErrInvalidToken
				if errors.Is(err, jwt.ErrTokenExpired) {
					code = apiErrors.ErrExpiredToken
				}
				log.ForContext(r.Context()).WithError(err).Warn("Token de usuário rejeitado")
				apiErrors.WriteError(w, code, "Token inválido", nil)
				return
			}

			log.ForContext(r.Context()).WithFields(log.Fields{
				"user_sub":  claims.Subject,
				"user_role": claims.Role,
			}).Debug("Token de usuário recebido")

			ctx := backend.WithAccessToken(r.Context(), tokenString)
			ctx = context.WithValue(ctx, ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseClaims(tokenString string, jwtSecret string) (*UserClaims, error) {
	claims := &UserClaims{}

	if jwtSecret == "" {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, err
		}
		return claims, nil
	}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims.Verified = true
	return claims, nil
}

// UserFromContext retorna as claims do usuário autenticado, se houver
func UserFromContext(ctx context.Context) (*UserClaims, bool) {
	claims, ok := ctx.Value(ContextKeyUser).(*UserClaims)
	return claims, ok
}
