package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/store"
	"github.com/aussiebroadwan/leftbox/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice@example.com", user.Email)
	require.False(t, user.IsAdmin)
	require.Equal(t, int64(0), user.AccessCount)
	require.False(t, user.CreatedAt.IsZero())

	// Stored value is a bcrypt digest, never the plaintext.
	stored, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, cryptox.IsHashed(stored.PasswordHash))
	require.NotEqual(t, "password123", stored.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("password123", stored.PasswordHash))
}

func TestUserService_RegisterValidation(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "password123"},
		{"bad email", "not-an-email", "password123"},
		{"short password", "bob@example.com", "1234567"},
		{"both invalid", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.email, tc.password)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Fields)
		})
	}

	// A rejected registration persists nothing.
	users, err := st.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	_, err := svc.Register(ctx, "dup@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@example.com", "different-pass")
	require.ErrorIs(t, err, ErrDuplicateEmail)

	users, err := st.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestUserService_List(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	_, err = svc.Register(ctx, "a@example.com", "password123")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "b@example.com", "password123")
	require.NoError(t, err)

	users, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestUserService_UpdateEmail(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	a, err := svc.Register(ctx, "a@example.com", "password123")
	require.NoError(t, err)
	b, err := svc.Register(ctx, "b@example.com", "password123")
	require.NoError(t, err)

	// Keeping your own address is fine.
	require.NoError(t, svc.UpdateEmail(ctx, a.ID, "a@example.com"))

	// Taking someone else's is not.
	require.ErrorIs(t, svc.UpdateEmail(ctx, b.ID, "a@example.com"), ErrDuplicateEmail)

	require.NoError(t, svc.UpdateEmail(ctx, b.ID, "b2@example.com"))
	got, err := st.Users().GetUserByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "b2@example.com", got.Email)

	var verr *ValidationError
	require.ErrorAs(t, svc.UpdateEmail(ctx, b.ID, "nope"), &verr)
}

func TestUserService_UpdatePassword(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	u, err := svc.Register(ctx, "pw@example.com", "original-pass")
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(ctx, u.ID, "replacement-pass"))

	stored, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NoError(t, cryptox.VerifyPassword("replacement-pass", stored.PasswordHash))
	require.ErrorIs(t, cryptox.VerifyPassword("original-pass", stored.PasswordHash), cryptox.ErrPasswordMismatch)

	var verr *ValidationError
	require.ErrorAs(t, svc.UpdatePassword(ctx, u.ID, "short"), &verr)

	// A bcrypt digest is not accepted as a plaintext.
	require.ErrorAs(t, svc.UpdatePassword(ctx, u.ID, stored.PasswordHash), &verr)

	require.ErrorIs(t, svc.UpdatePassword(ctx, "missing", "whatever-pass"), store.ErrNotFound)
}

func TestUserService_GetUserByID(t *testing.T) {
	st := newTestStore(t)
	svc := &UserService{Store: st}
	ctx := context.Background()

	_, err := svc.GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}
