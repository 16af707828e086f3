package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darmiel/voxauth/internal/api/middleware"
	"github.com/darmiel/voxauth/internal/core"
)

func TestNew(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, c.tokenURL())

	c, err = New("https://vox.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://vox.example.com/v1/token", c.tokenURL())

	c, err = New("https://vox.example.com/custom/issue", WithTimeout(time.Second))
	require.NoError(t, err)
	assert.Equal(t, "https://vox.example.com/custom/issue", c.tokenURL())
	assert.Equal(t, time.Second, c.httpClient.Timeout)

	_, err = New("ftp://vox.example.com")
	assert.Error(t, err)
	_, err = New("http://")
	assert.Error(t, err)
}

func TestRequestToken(t *testing.T) {
	var gotBody map[string]any
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, TokenRoute, r.URL.Path)
		_, _ = w.Write([]byte(`{"accessToken":"e30.e30.sig","uri":"sip:.iss.beef.@tla.vivox.com"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithUserAgent("test-agent"))
	require.NoError(t, err)

	ctx := middleware.WithCorrelationID(context.Background(), "corr-1")
	resp, correlationID, err := c.RequestToken(ctx, core.TokenRequest{
		Type:     core.ActionLogin,
		Username: "beef",
	})
	require.NoError(t, err)

	assert.Equal(t, "e30.e30.sig", resp.AccessToken)
	assert.Equal(t, "sip:.iss.beef.@tla.vivox.com", resp.URI)
	assert.Equal(t, "corr-1", correlationID)

	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "test-agent", gotHeaders.Get("User-Agent"))
	assert.Equal(t, "corr-1", gotHeaders.Get(middleware.CorrelationIDHeader))
	assert.Equal(t, map[string]any{"type": "login", "username": "beef"}, gotBody)
}

func TestRequestTokenGeneratesCorrelationID(t *testing.T) {
	var sent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sent = r.Header.Get(middleware.CorrelationIDHeader)
		_, _ = w.Write([]byte(`{"accessToken":"t"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, correlationID, err := c.RequestToken(context.Background(), core.TokenRequest{Type: core.ActionLogin, Username: "beef"})
	require.NoError(t, err)
	assert.NotEmpty(t, sent)
	assert.Equal(t, sent, correlationID)
}

func TestRequestTokenMalformed(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"not json", http.StatusOK, "<html>teapot</html>"},
		{"missing token", http.StatusOK, `{"uri":"sip:x"}`},
		{"empty body", http.StatusOK, ""},
		{"gateway error page", http.StatusBadGateway, "upstream unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := New(srv.URL)
			require.NoError(t, err)

			_, _, err = c.RequestToken(context.Background(), core.TokenRequest{Type: core.ActionLogin, Username: "beef"})
			var malformed core.IssuerResponseMalformedError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, tt.body, malformed.Body)
			assert.Equal(t, tt.status, malformed.StatusCode)
		})
	}
}

func TestRequestTokenAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"request denied by policy","correlation_id":"abc"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, _, err = c.RequestToken(context.Background(), core.TokenRequest{Type: core.ActionKick, Username: "beef"})
	var apiErr APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "abc", apiErr.CorrelationID)
	assert.Equal(t, "request denied by policy", apiErr.Message)
}

func TestRequestTokenAPIErrorKeepsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"denied","detail":"issuer key rotated"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, _, err = c.RequestToken(context.Background(), core.TokenRequest{Type: core.ActionLogin, Username: "beef"})
	var apiErr APIError
	require.True(t, errors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, "denied", apiErr.Message)
	assert.Contains(t, apiErr.Body, `"detail":"issuer key rotated"`)
	assert.Contains(t, err.Error(), "issuer key rotated")
}

func TestWithTimeoutOptionOrder(t *testing.T) {
	t.Run("after WithHTTPClient", func(t *testing.T) {
		shared := &http.Client{}
		c, err := New("http://127.0.0.1:8000", WithHTTPClient(shared), WithTimeout(3*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
		assert.Zero(t, shared.Timeout, "shared client must not be modified")
	})

	t.Run("before WithHTTPClient", func(t *testing.T) {
		shared := &http.Client{}
		c, err := New("http://127.0.0.1:8000", WithTimeout(3*time.Second), WithHTTPClient(shared))
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
		assert.Zero(t, shared.Timeout, "shared client must not be modified")
	})

	t.Run("without timeout the given client is used as is", func(t *testing.T) {
		shared := &http.Client{Timeout: time.Minute}
		c, err := New("http://127.0.0.1:8000", WithHTTPClient(shared))
		require.NoError(t, err)
		assert.Same(t, shared, c.httpClient)
	})
}

func TestListAudits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ListAuditsRoute, r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":"1","username":"beef","granted":true}]`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithAuthToken("admin-token"))
	require.NoError(t, err)

	entries, err := c.ListAudits(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "beef", entries[0].Username)
}
