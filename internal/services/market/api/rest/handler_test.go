package rest

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/deedshare/deedshare/internal/services/market/app"
	"github.com/deedshare/deedshare/internal/services/market/storage/sqlite"
)

const (
	testIssuer   = "deedshare-test"
	testAudience = "market"
)

type testAPI struct {
	handler *Handler
	runtime *app.Runtime
	signKey ed25519.PrivateKey
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "market.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	runtime, err := app.NewRuntime(context.Background(), app.Config{Journal: store})
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	auth := AuthConfig{
		Issuer:   testIssuer,
		Audience: testAudience,
		Key:      public,
		Now:      time.Now,
	}
	return &testAPI{
		handler: NewHandler(runtime, auth, nil),
		runtime: runtime,
		signKey: private,
	}
}

func (a *testAPI) token(t *testing.T, account string, admin bool) string {
	t.Helper()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Account: account,
		Admin:   admin,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(a.signKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func (a *testAPI) request(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestHeightEndpoint(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	rec := api.request(t, http.MethodGet, "/v1/height", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); !strings.Contains(got, `"height":0`) {
		t.Fatalf("body = %q, want height 0", got)
	}
}

func TestMissingTokenRejected(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	rec := api.request(t, http.MethodPost, "/v1/regions/proposals", "", `{"identifier":"Japan"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
		Account: "alice",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(api.signKey)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	rec := api.request(t, http.MethodPost, "/v1/regions/proposals", token, `{"identifier":"Japan"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if got := rec.Body.String(); !strings.Contains(got, "TOKEN_EXPIRED") {
		t.Fatalf("body = %q, want TOKEN_EXPIRED", got)
	}
}

func TestAdminEndpointRequiresAdminClaim(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	token := api.token(t, "alice", false)
	rec := api.request(t, http.MethodPost, "/v1/admin/mint", token, `{"account":"alice","amount":"100"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if got := rec.Body.String(); !strings.Contains(got, "ADMIN_REQUIRED") {
		t.Fatalf("body = %q, want ADMIN_REQUIRED", got)
	}
}

func TestProposeRegionThroughAPI(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	admin := api.token(t, "root", true)
	alice := api.token(t, "alice", false)

	for _, call := range []struct {
		path string
		body string
	}{
		{"/v1/admin/mint", `{"account":"alice","amount":"1000000"}`},
		{"/v1/admin/whitelist", `{"account":"alice"}`},
		{"/v1/admin/operators", `{"account":"alice"}`},
	} {
		rec := api.request(t, http.MethodPost, call.path, admin, call.body)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want %d: %s", call.path, rec.Code, http.StatusOK, rec.Body)
		}
	}

	rec := api.request(t, http.MethodPost, "/v1/regions/proposals", alice, `{"identifier":"Japan"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("propose status = %d, want %d: %s", rec.Code, http.StatusAccepted, rec.Body)
	}

	// A duplicate proposal for the same identifier conflicts.
	rec = api.request(t, http.MethodPost, "/v1/regions/proposals", alice, `{"identifier":"Japan"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want %d: %s", rec.Code, http.StatusConflict, rec.Body)
	}
}

func TestGetRegionNotFound(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	rec := api.request(t, http.MethodGet, "/v1/regions/9", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestMalformedAmountRejected(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	admin := api.token(t, "root", true)
	rec := api.request(t, http.MethodPost, "/v1/admin/mint", admin, `{"account":"alice","amount":"not-a-number"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body)
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	admin := api.token(t, "root", true)
	rec := api.request(t, http.MethodPost, "/v1/admin/mint", admin, `{"account":"alice","amount":"1","bogus":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body)
	}
}
