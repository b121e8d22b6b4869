package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// brokenStore accepts writes but fails every lookup, standing in for a
// Redis outage.
type brokenStore struct {
	Store
}

func (brokenStore) Get(ctx context.Context, tokenID string) (*Record, error) {
	return nil, errors.New("connection refused")
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", NewMemStore())
	ctx := context.Background()

	signed, err := issuer.Issue(ctx, "user-1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := issuer.Verify(ctx, signed)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	signed, err := NewIssuer("secret-a", store).Issue(ctx, "user-1", "alice")
	require.NoError(t, err)

	_, err = NewIssuer("secret-b", store).Verify(ctx, signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := NewIssuer("test-secret", NewMemStore())

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := issuer.Verify(context.Background(), raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestRevokedTokenIsRejected(t *testing.T) {
	issuer := NewIssuer("test-secret", NewMemStore())
	ctx := context.Background()

	signed, err := issuer.Issue(ctx, "user-1", "alice")
	require.NoError(t, err)

	require.NoError(t, issuer.Revoke(ctx, signed))

	_, err = issuer.Verify(ctx, signed)
	require.ErrorIs(t, err, ErrInvalidToken)

	// Revoking again is a no-op.
	require.NoError(t, issuer.Revoke(ctx, signed))
}

func TestVerifyStoreOutageIsNotInvalidToken(t *testing.T) {
	issuer := NewIssuer("test-secret", brokenStore{Store: NewMemStore()})
	ctx := context.Background()

	signed, err := issuer.Issue(ctx, "user-1", "alice")
	require.NoError(t, err)

	_, err = issuer.Verify(ctx, signed)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidToken)
}

func TestMemStoreExpiry(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, Record{
		TokenID:   "t1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	rec, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	require.Nil(t, rec, "expired records read as missing")
}
