package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"passport_parser/internal/repository"
)

type ctxKey string

const ClientKey ctxKey = "client"

type TokenRepo interface {
	FindTokenByPlainToken(ctx context.Context, plainToken string) (*repository.APIToken, error)
}

// BearerMiddleware admits requests carrying a known token in the
// Authorization header or the token query parameter.
func BearerMiddleware(tokenRepo TokenRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			var tok *repository.APIToken
			if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				if plain := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); plain != "" {
					t, err := tokenRepo.FindTokenByPlainToken(r.Context(), plain)
					if err == nil {
						tok = t
					} else {
						log.Printf("[AUTH] token lookup (header) error: %v", err)
					}
				}
			}

			if tok == nil {
				if plain := r.URL.Query().Get("token"); plain != "" {
					t, err := tokenRepo.FindTokenByPlainToken(r.Context(), plain)
					if err == nil {
						tok = t
					} else {
						log.Printf("[AUTH] token lookup (query) error: %v", err)
					}
				}
			}

			if tok == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if tok.ExpiresAt != nil && tok.ExpiresAt.Before(time.Now()) {
				http.Error(w, "Token expired", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ClientKey, tok.Client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClient(ctx context.Context) (string, error) {
	v, ok := ctx.Value(ClientKey).(string)
	if !ok || v == "" {
		return "", errors.New("client not found in context")
	}
	return v, nil
}
