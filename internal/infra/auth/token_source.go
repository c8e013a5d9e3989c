package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ksaxena149/personal-relationship-manager/internal/domain"
	"github.com/ksaxena149/personal-relationship-manager/internal/infra/storage"
)

// TokenEntryName is the named entry the bearer credential is kept under,
// written by the host's sign-in flow.
const TokenEntryName = "token"

// TokenSource supplies the bearer credential for remote calls.
type TokenSource interface {
	// Token returns the current credential. It returns
	// domain.ErrNoCredential when none is stored or the stored one has
	// already expired, so callers skip the doomed remote call.
	Token(ctx context.Context) (string, error)
}

// StoreTokenSource reads the credential from durable storage and locally
// rejects expired JWTs. Signature verification stays with the server; only
// the exp claim is inspected here.
type StoreTokenSource struct {
	store storage.KeyValueStore
}

func NewTokenSource(store storage.KeyValueStore) *StoreTokenSource {
	return &StoreTokenSource{
		store: store,
	}
}

func (s *StoreTokenSource) Token(ctx context.Context) (string, error) {
	raw, ok, err := s.store.Get(ctx, TokenEntryName)
	if err != nil {
		return "", err
	}

	if !ok || raw == "" {
		return "", domain.ErrNoCredential
	}

	claims := jwt.MapClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		// Opaque credentials are passed through; the server decides.
		slog.Warn("stored credential is not a parseable JWT",
			"error", err,
		)

		return raw, nil
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return raw, nil
	}

	if exp.Before(time.Now()) {
		return "", fmt.Errorf("%w: credential expired at %s", domain.ErrNoCredential, exp.Format(time.RFC3339))
	}

	return raw, nil
}

// Save stores a freshly issued credential.
func (s *StoreTokenSource) Save(ctx context.Context, token string) error {
	return s.store.Set(ctx, TokenEntryName, token)
}

// Clear removes the stored credential, e.g. on sign-out.
func (s *StoreTokenSource) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, TokenEntryName)
}
