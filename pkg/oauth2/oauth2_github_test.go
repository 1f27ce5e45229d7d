package oauth2

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGitHubServer(t *testing.T, emails []githubEmail) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(githubTokenResponse{AccessToken: "gh-token", TokenType: "bearer"})
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(githubUser{ID: 42, Login: "asha", Email: "public@example.com"})
	})
	mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(emails)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestGitHub(srv *httptest.Server) *GitHubOAuth2Provider {
	gh := NewGitHubOAuth2Provider("client", "secret", "http://localhost/auth/callback/github", nil)
	gh.httpClient = srv.Client()
	gh.tokenURL = srv.URL + "/login/oauth/access_token"
	gh.userURL = srv.URL + "/user"
	gh.emailsURL = srv.URL + "/user/emails"
	return gh
}

func TestGitHub_HandleCallback(t *testing.T) {
	srv := newGitHubServer(t, []githubEmail{
		{Email: "old@example.com", Verified: true},
		{Email: "asha@example.com", Primary: true, Verified: true},
	})
	gh := newTestGitHub(srv)

	info, err := gh.HandleCallback(context.Background(), "good-code", "")
	require.NoError(t, err)
	assert.Equal(t, "42", info.ID)
	assert.Equal(t, "asha@example.com", info.Email)
	assert.True(t, info.EmailVerified)
	assert.Equal(t, "asha", info.Name)
	assert.Equal(t, "github", info.Provider)

	_, err = gh.HandleCallback(context.Background(), "bad-code", "")
	assert.Error(t, err)
}

func TestGitHub_UnverifiedPublicEmail(t *testing.T) {
	gh := newTestGitHub(newGitHubServer(t, nil))

	info, err := gh.HandleCallback(context.Background(), "good-code", "")
	require.NoError(t, err)
	assert.Equal(t, "public@example.com", info.Email)
	assert.False(t, info.EmailVerified)
}

func TestGitHub_AuthURL(t *testing.T) {
	gh := NewGitHubOAuth2Provider("client", "secret", "http://localhost/cb", nil)

	u, err := url.Parse(gh.GetAuthURL("st4te", "ignored"))
	require.NoError(t, err)
	assert.Equal(t, "github.com", u.Host)
	assert.Equal(t, "st4te", u.Query().Get("state"))
	assert.Equal(t, "read:user user:email", u.Query().Get("scope"))
	assert.Empty(t, u.Query().Get("nonce"))
}
