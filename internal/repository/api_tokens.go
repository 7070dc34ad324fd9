package repository

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"passport_parser/internal/config/connections/postgres"
)

var ErrTokenNotFound = errors.New("token not found")

type APIToken struct {
	ID        int64
	TokenHash string
	Client    string
	ExpiresAt *time.Time
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return fmt.Sprintf("%x", sum)
}

// StaticTokens accepts a fixed comma-separated list of plain tokens.
type StaticTokens struct {
	hashes []string
}

func NewStaticTokens(list string) *StaticTokens {
	st := &StaticTokens{}
	for _, t := range strings.Split(list, ",") {
		if t = strings.TrimSpace(t); t != "" {
			st.hashes = append(st.hashes, hashToken(t))
		}
	}
	return st
}

func (s *StaticTokens) Empty() bool { return s == nil || len(s.hashes) == 0 }

func (s *StaticTokens) FindTokenByPlainToken(_ context.Context, plainToken string) (*APIToken, error) {
	plainToken = strings.TrimSpace(plainToken)
	if plainToken == "" {
		return nil, errors.New("empty token")
	}
	if s.Empty() {
		return nil, ErrTokenNotFound
	}
	h := hashToken(plainToken)
	for i, known := range s.hashes {
		if subtle.ConstantTimeCompare([]byte(h), []byte(known)) == 1 {
			return &APIToken{ID: int64(i + 1), TokenHash: known, Client: fmt.Sprintf("static-%d", i+1)}, nil
		}
	}
	return nil, ErrTokenNotFound
}

// APITokenRepository checks the static list first, then Postgres where
// tokens are stored as sha256 hex.
//
//	CREATE TABLE api_tokens (
//	    id         bigserial PRIMARY KEY,
//	    token      text NOT NULL UNIQUE,
//	    client     text NOT NULL,
//	    expires_at timestamptz,
//	    created_at timestamptz NOT NULL DEFAULT now()
//	);
type APITokenRepository struct {
	pg     *postgres.Postgres
	static *StaticTokens
}

func NewAPITokenRepository(pg *postgres.Postgres, static *StaticTokens) *APITokenRepository {
	return &APITokenRepository{pg: pg, static: static}
}

func (r *APITokenRepository) FindTokenByPlainToken(ctx context.Context, plainToken string) (*APIToken, error) {
	plainToken = strings.TrimSpace(plainToken)
	if plainToken == "" {
		return nil, errors.New("empty token")
	}

	if t, err := r.static.FindTokenByPlainToken(ctx, plainToken); err == nil {
		return t, nil
	}
	if r.pg == nil || r.pg.Pool == nil {
		return nil, ErrTokenNotFound
	}

	var t APIToken
	err := r.pg.Pool.QueryRow(ctx, `
		SELECT id, token, client, expires_at
		FROM api_tokens
		WHERE token = $1
		  AND (expires_at IS NULL OR expires_at > $2)
		ORDER BY created_at DESC
		LIMIT 1
	`, hashToken(plainToken), time.Now()).Scan(&t.ID, &t.TokenHash, &t.Client, &t.ExpiresAt)
	if err != nil {
		log.Printf("[TOKEN] lookup error: %v", err)
		return nil, ErrTokenNotFound
	}

	log.Printf("[TOKEN] found: id=%d client=%q expiresAt=%v", t.ID, t.Client, t.ExpiresAt)
	return &t, nil
}
