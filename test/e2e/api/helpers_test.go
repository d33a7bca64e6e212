package api_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	httpapi "github.com/aussiebroadwan/leftbox/internal/leftbox/http"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/realtime"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/service"
	"github.com/aussiebroadwan/leftbox/internal/leftbox/store/drivers/sqlite"
	"github.com/aussiebroadwan/leftbox/pkg/boxsdk"
	"github.com/aussiebroadwan/leftbox/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "leftbox-test"
	testEmail    = "alice@example.com"
	testPassword = "correct-horse-battery"
)

var testSecret = []byte("e2e-secret-e2e-secret-e2e-secret")

// setupServer boots a full service instance on an in-memory database behind
// an httptest server, and returns an SDK client pointed at it.
func setupServer(t *testing.T) (*httptest.Server, *boxsdk.Client, *realtime.Hub) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, verifier, err := jwtx.NewHS256(testSecret, testIssuer)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := realtime.NewHub()

	router := httpapi.NewRouter(verifier, "e2e", st, logger)
	router.UserService = &service.UserService{Store: st}
	router.SessionService = &service.SessionService{
		Store:    st,
		Signer:   signer,
		Verifier: verifier,
		Issuer:   testIssuer,
	}
	router.BoxService = &service.BoxService{
		Store:     st,
		Hub:       hub,
		UploadDir: t.TempDir(),
	}
	router.Hub = hub
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, boxsdk.NewClient(srv.URL, boxsdk.WithHTTPClient(srv.Client())), hub
}

// requireAPIError asserts err is an APIError with the given status and code.
func requireAPIError(t *testing.T, err error, status int, code string) *boxsdk.APIError {
	t.Helper()

	var apiErr *boxsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}
