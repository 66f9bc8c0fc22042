package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	cache "github.com/RobsonDevCode/vareport/internal/caching"
	scasmodels "github.com/RobsonDevCode/vareport/internal/clients/models/scas"
	"github.com/RobsonDevCode/vareport/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenPath = "/auth/realms/SCA/protocol/openid-connect/token"

func newTestClient(t *testing.T, handler http.Handler) *ScasClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := configuration.Default()
	config.ScasClientSettings.BaseUrl = server.URL

	client, err := NewScasClient(config, &cache.Cache{}, true)
	require.NoError(t, err)
	return client
}

func writeJson(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	assert.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestGetOfflineToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, tokenPath, r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "offline_access", r.PostForm.Get("scope"))
		assert.Equal(t, "scas-ext-client-direct", r.PostForm.Get("client_id"))
		assert.Equal(t, "jdoe", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))

		writeJson(t, w, http.StatusOK, scasmodels.TokenResponse{RefreshToken: "offline-token"})
	}))

	token, err := client.GetOfflineToken(context.Background(), "jdoe", "secret")
	require.NoError(t, err)
	assert.Equal(t, "offline-token", token)
}

func TestGetOfflineTokenRejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJson(t, w, http.StatusUnauthorized, scasmodels.AuthenticationError{
			Error:            "invalid_grant",
			ErrorDescription: "Invalid user credentials",
		})
	}))

	_, err := client.GetOfflineToken(context.Background(), "jdoe", "wrong")

	var tokenErr *TokenError
	require.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, http.StatusUnauthorized, tokenErr.StatusCode)
	assert.Equal(t, "invalid_grant", tokenErr.AuthError.Error)
	assert.Contains(t, err.Error(), "Invalid user credentials")
}

func TestTokenErrorWithoutJsonBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))

	_, err := client.GetOfflineToken(context.Background(), "jdoe", "secret")

	var tokenErr *TokenError
	require.ErrorAs(t, err, &tokenErr)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestRefreshAccessTokenIsCached(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "offline-token", r.PostForm.Get("refresh_token"))

		writeJson(t, w, http.StatusOK, scasmodels.TokenResponse{AccessToken: "access-token", ExpiresIn: 300})
	}))

	for i := 0; i < 3; i++ {
		token, err := client.RefreshAccessToken(context.Background(), "offline-token")
		require.NoError(t, err)
		assert.Equal(t, "access-token", token)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRefreshAccessTokenFailureIsNotCached(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJson(t, w, http.StatusBadRequest, scasmodels.AuthenticationError{Error: "invalid_grant"})
	}))

	for i := 0; i < 2; i++ {
		_, err := client.RefreshAccessToken(context.Background(), "offline-token")
		require.Error(t, err)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestValidateToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/realms/SCA/protocol/openid-connect/userinfo", r.URL.Path)
		if r.Header.Get("Authorization") == "Bearer good" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))

	valid, err := client.ValidateToken(context.Background(), "good")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = client.ValidateToken(context.Background(), "expired")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestSearchStakoCode(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ordering/components/search", r.URL.Path)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))

		switch r.URL.Query()["filter"][0] {
		case "compName,fts,commons-io":
			writeJson(t, w, http.StatusOK, scasmodels.ComponentSearchResponse{
				Content: []scasmodels.Component{{CompName: "commons-io", CompVersion: "2.11.0", StakoCode: "ESW2"}},
			})
		case "compName,fts,unknown":
			writeJson(t, w, http.StatusOK, scasmodels.ComponentSearchResponse{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	tests := []struct {
		artifact string
		expected string
	}{
		{artifact: "commons-io", expected: "ESW2"},
		{artifact: "unknown", expected: scasmodels.StakoNotAvailable},
		{artifact: "missing", expected: scasmodels.StakoNotAvailable},
	}

	for _, test := range tests {
		t.Run(test.artifact, func(t *testing.T) {
			stakoCode, err := client.SearchStakoCode(context.Background(), "access", test.artifact, "2.11.0")
			require.NoError(t, err)
			assert.Equal(t, test.expected, stakoCode)
		})
	}
}

func TestBuildSearchQuery(t *testing.T) {
	config := configuration.Default()
	client, err := NewScasClient(config, &cache.Cache{}, true)
	require.NoError(t, err)

	assert.Equal(t,
		"https://scas.internal.ericsson.com/ordering/components/search?size=1&filter=compName,fts,my+lib&filter=compVersion,NTXEQ,1.0%261",
		client.buildSearchQuery("my lib", "1.0&1"))
}

func TestUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	config := configuration.Default()
	config.ScasClientSettings.BaseUrl = server.URL
	client, err := NewScasClient(config, &cache.Cache{}, true)
	require.NoError(t, err)

	_, err = client.ValidateToken(context.Background(), "token")

	var requestErr *RequestError
	require.ErrorAs(t, err, &requestErr)
}
