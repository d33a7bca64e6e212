package service

import (
	"testing"

	"github.com/aussiebroadwan/leftbox/internal/leftbox/store"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/store/drivers/sqlite"
	"github.com/aussiebroadwan/leftbox/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "leftbox-test"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newSessionService(t *testing.T, st store.Store) *SessionService {
	t.Helper()

	signer, verifier, err := jwtx.NewHS256(testSecret, testIssuer)
	require.NoError(t, err)

	return &SessionService{
		Store:    st,
		Signer:   signer,
		Verifier: verifier,
		Issuer:   testIssuer,
	}
}
