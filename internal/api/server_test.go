package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darmiel/voxauth/internal/api/middleware"
	"github.com/darmiel/voxauth/internal/api/presenter"
	"github.com/darmiel/voxauth/internal/audit"
	"github.com/darmiel/voxauth/internal/config"
	"github.com/darmiel/voxauth/internal/core"
	"github.com/darmiel/voxauth/internal/logging"
	"github.com/darmiel/voxauth/internal/policy"
	"github.com/darmiel/voxauth/internal/service"
	"github.com/darmiel/voxauth/internal/store"
	"github.com/darmiel/voxauth/internal/tasks"
)

var adminKey = []byte("admin-key")

type echoIssuer struct{}

func (echoIssuer) Name() string { return "echo" }

func (echoIssuer) Issue(_ context.Context, req core.TokenRequest) (*core.TokenResponse, error) {
	return &core.TokenResponse{AccessToken: string(req.Type) + ":" + req.Username + ":" + req.TargetUsername}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	pol, err := policy.Compile(`Type != "kick" || ChannelID != ""`)
	require.NoError(t, err)

	auditor := audit.NewInMemoryAuditor(100)
	tokens := store.NewInMemoryTokenStore()
	provider := service.NewTokenProvider(echoIssuer{}, auditor, tokens, pol, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	taskManager := tasks.NewManager(ctx)
	require.NoError(t, taskManager.Register("token-gc", 0, func(context.Context, logging.InternalLogger) error {
		return nil
	}))

	srv := NewServer(provider, auditor, tokens, taskManager, config.DefaultsConfig{Realm: "tla"})
	ts := httptest.NewServer(srv.Routes(adminKey))
	t.Cleanup(func() {
		ts.Close()
		cancel()
		taskManager.Wait()
	})
	return ts
}

func adminToken(t *testing.T, roles ...string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.AdminClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(adminKey)
	require.NoError(t, err)
	return signed
}

func do(t *testing.T, method, url, body, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestHealthAndAbout(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+HealthCheckRoute, "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+AboutRoute, "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.CorrelationIDHeader))

	var info map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "voxauth", info["service"])
}

func TestTokenRoute(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+TokenRoute, `{"type":"login","username":"beef"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out core.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "login:beef:", out.AccessToken)
}

func TestTokenRouteErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"unknown field", `{"type":"login","username":"beef","admin":true}`, http.StatusBadRequest},
		{"missing username", `{"type":"login"}`, http.StatusBadRequest},
		{"policy", `{"type":"kick","username":"beef","targetUsername":"jerky"}`, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, ts.URL+TokenRoute, tt.body, "")
			assert.Equal(t, tt.status, resp.StatusCode)

			var errResp presenter.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
			assert.NotEmpty(t, errResp.Error)
			assert.Equal(t, resp.Header.Get(middleware.CorrelationIDHeader), errResp.CorrelationID)
		})
	}
}

func TestResolveRoute(t *testing.T) {
	ts := newTestServer(t)

	body := `{
		"issuer": "blindmelon-AppName-dev",
		"expiration": 90,
		"targetUri": "sip:.blindmelon-AppName-dev.jerky.@tla.vivox.com",
		"action": "kick",
		"channelUri": "sip:confctl-g-blindmelon-AppName-dev.testchannel@tla.vivox.com",
		"fromUri": "sip:.blindmelon-AppName-dev.beef.@tla.vivox.com"
	}`
	resp := do(t, http.MethodPost, ts.URL+ResolveTokenRoute, body, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out core.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "kick:beef:jerky", out.AccessToken)

	resp = do(t, http.MethodPost, ts.URL+ResolveTokenRoute, `{"action":"login","fromUri":"sip:beef@tla.vivox.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, ts.URL+ResolveTokenRoute,
		`{"action":"join","fromUri":"sip:.i.beef.@d","channelUri":"sip:confctl-z-i.c@d"}`, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestResolveRouteExpirationBounds(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name       string
		expiration string
		status     int
	}{
		{"negative", "-1", http.StatusBadRequest},
		{"overflows duration", "9300000000", http.StatusBadRequest},
		{"largest duration", "9223372036", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"action":"login","fromUri":"sip:.i.beef.@d","expiration":` + tt.expiration + `}`
			resp := do(t, http.MethodPost, ts.URL+ResolveTokenRoute, body, "")
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAdminRoutes(t *testing.T) {
	ts := newTestServer(t)

	correlationID := "audit-me"
	req, _ := http.NewRequest(http.MethodPost, ts.URL+TokenRoute, strings.NewReader(`{"type":"login","username":"beef"}`))
	req.Header.Set(middleware.CorrelationIDHeader, correlationID)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp = do(t, http.MethodGet, ts.URL+ListAuditsRoute, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+ListAuditsRoute, "", adminToken(t, "viewer"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	token := adminToken(t, middleware.AdminRole)

	resp = do(t, http.MethodGet, ts.URL+ListAuditsRoute+"?correlation_id="+correlationID, "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []core.AuditEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "beef", entries[0].Username)
	assert.True(t, entries[0].Granted)

	resp = do(t, http.MethodGet, ts.URL+ListAuditsRoute+"?limit=abc", "", token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+ListActiveTokensRoute, "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var active []core.TokenMetadata
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&active))
	require.Len(t, active, 1)
	assert.Equal(t, correlationID, active[0].CorrelationID)

	resp = do(t, http.MethodGet, ts.URL+ListTasksRoute, "", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodPost, ts.URL+"/v1/admin/tasks/token-gc/trigger", "", token)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/v1/admin/tasks/nope/logs", "", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminRoutesDisabledWithoutKey(t *testing.T) {
	provider := service.NewTokenProvider(echoIssuer{}, audit.NewNoopAuditor(), store.NewInMemoryTokenStore(), nil, time.Minute)
	srv := NewServer(provider, nil, store.NewInMemoryTokenStore(), tasks.NewManager(context.Background()), config.DefaultsConfig{})
	ts := httptest.NewServer(srv.Routes(nil))
	defer ts.Close()

	resp := do(t, http.MethodGet, ts.URL+ListAuditsRoute, "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
