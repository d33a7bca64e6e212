package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/domain"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/store"
	"github.com/aussiebroadwan/leftbox/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestUser(email string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwxyz012345678901234567890123456",
	}
}

func TestUsers_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("alice@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	byEmail, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
	require.Equal(t, int64(0), byEmail.AccessCount)
	require.False(t, byEmail.IsAdmin)
	require.False(t, byEmail.CreatedAt.IsZero())

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", byID.Email)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_EmailLookupIsCaseSensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().CreateUser(ctx, newTestUser("Alice@example.com")))

	_, err := s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_UniqueEmailConstraint(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().CreateUser(ctx, newTestUser("dup@example.com")))

	err := s.Users().CreateUser(ctx, newTestUser("dup@example.com"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	users, err := s.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestUsers_EmailTakenExcludesOwnID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("self@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	taken, err := s.Users().EmailTaken(ctx, "self@example.com", u.ID)
	require.NoError(t, err)
	require.False(t, taken, "a user's own email must not count as taken")

	taken, err = s.Users().EmailTaken(ctx, "self@example.com", idx.New().String())
	require.NoError(t, err)
	require.True(t, taken)
}

func TestUsers_UpdateEmailUniqueBackstop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := newTestUser("a@example.com")
	b := newTestUser("b@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, a))
	require.NoError(t, s.Users().CreateUser(ctx, b))

	err := s.Users().UpdateEmail(ctx, b.ID, "a@example.com")
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	require.NoError(t, s.Users().UpdateEmail(ctx, b.ID, "b2@example.com"))
	got, err := s.Users().GetUserByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "b2@example.com", got.Email)
}

func TestUsers_IncrementAccessCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("counter@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	for range 3 {
		require.NoError(t, s.Users().IncrementAccessCount(ctx, u.ID))
	}

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), got.AccessCount)

	require.ErrorIs(t, s.Users().IncrementAccessCount(ctx, "missing"), store.ErrNotFound)
}

func TestSessionTokens_Lifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("tokens@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	tok := domain.SessionToken{
		TokenHash: "fingerprint-1",
		UserID:    u.ID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, s.SessionTokens().CreateSessionToken(ctx, tok))

	got, err := s.SessionTokens().GetSessionToken(ctx, "fingerprint-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.UserID)

	count, err := s.SessionTokens().CountUserSessionTokens(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, s.SessionTokens().DeleteSessionToken(ctx, u.ID, "fingerprint-1"))

	// Deleting again is a successful no-op.
	require.NoError(t, s.SessionTokens().DeleteSessionToken(ctx, u.ID, "fingerprint-1"))

	count, err = s.SessionTokens().CountUserSessionTokens(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestSessionTokens_DeleteExpired(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("expiry@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	now := time.Now().UTC()
	require.NoError(t, s.SessionTokens().CreateSessionToken(ctx, domain.SessionToken{
		TokenHash: "stale", UserID: u.ID, ExpiresAt: now.Add(-time.Minute),
	}))
	require.NoError(t, s.SessionTokens().CreateSessionToken(ctx, domain.SessionToken{
		TokenHash: "fresh", UserID: u.ID, ExpiresAt: now.Add(time.Hour),
	}))

	require.NoError(t, s.SessionTokens().DeleteExpiredSessionTokens(ctx))

	_, err := s.SessionTokens().GetSessionToken(ctx, "stale")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.SessionTokens().GetSessionToken(ctx, "fresh")
	require.NoError(t, err)
}

func TestBoxesAndFiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	box := domain.Box{ID: idx.New().String(), Name: "holiday-photos"}
	require.NoError(t, s.Boxes().CreateBox(ctx, box))

	got, err := s.Boxes().GetBoxByID(ctx, box.ID)
	require.NoError(t, err)
	require.Equal(t, "holiday-photos", got.Name)
	require.Empty(t, got.CreatedBy)

	_, err = s.Boxes().GetBoxByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	older := domain.File{
		ID: idx.New().String(), BoxID: box.ID,
		Name: "abc-beach.jpg", OriginalName: "beach.jpg", SizeBytes: 1024,
		CreatedAt: time.Now().UTC().Add(-time.Minute),
	}
	newer := domain.File{
		ID: idx.New().String(), BoxID: box.ID,
		Name: "def-sunset.jpg", OriginalName: "sunset.jpg", SizeBytes: 2048,
	}
	require.NoError(t, s.Files().CreateFile(ctx, older))
	require.NoError(t, s.Files().CreateFile(ctx, newer))

	files, err := s.Files().ListBoxFiles(ctx, box.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "sunset.jpg", files[0].OriginalName, "newest file first")
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("tx@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().IncrementAccessCount(ctx, u.ID); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.ErrorIs(t, err, context.Canceled)

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.AccessCount, "rolled back increment must not persist")
}
