package repository

import (
	"context"
	"errors"
	"testing"
)

func TestStaticTokens(t *testing.T) {
	st := NewStaticTokens(" alpha , ,beta")
	if st.Empty() {
		t.Fatalf("expected two tokens")
	}

	tok, err := st.FindTokenByPlainToken(context.Background(), "beta")
	if err != nil {
		t.Fatalf("beta: %v", err)
	}
	if tok.Client != "static-2" {
		t.Fatalf("unexpected client: %q", tok.Client)
	}

	if _, err := st.FindTokenByPlainToken(context.Background(), "gamma"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("gamma: expected ErrTokenNotFound, got %v", err)
	}
}

func TestStaticTokensEmptyList(t *testing.T) {
	st := NewStaticTokens("")
	if !st.Empty() {
		t.Fatalf("expected empty list")
	}
	if _, err := st.FindTokenByPlainToken(context.Background(), "alpha"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestAPITokenRepositoryWithoutPostgres(t *testing.T) {
	repo := NewAPITokenRepository(nil, NewStaticTokens("alpha"))

	if _, err := repo.FindTokenByPlainToken(context.Background(), "alpha"); err != nil {
		t.Fatalf("alpha: %v", err)
	}
	if _, err := repo.FindTokenByPlainToken(context.Background(), "other"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("other: expected ErrTokenNotFound, got %v", err)
	}
	if _, err := repo.FindTokenByPlainToken(context.Background(), "   "); err == nil {
		t.Fatalf("expected error on empty token")
	}
}
