package oauth2

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	githubAuthURL      = "https://github.com/login/oauth/authorize"
	githubTokenURL     = "https://github.com/login/oauth/access_token"
	githubUserURL      = "https://api.github.com/user"
	githubUserEmailURL = "https://api.github.com/user/emails"
)

// GitHubOAuth2Provider signs users in with GitHub OAuth2 apps.
type GitHubOAuth2Provider struct {
	clientID     string
	clientSecret string
	redirectURL  string
	scopes       []string
	httpClient   *http.Client

	authURL, tokenURL, userURL, emailsURL string
}

type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email      string `json:"email"`
	Primary    bool   `json:"primary"`
	Verified   bool   `json:"verified"`
	Visibility string `json:"visibility"`
}

type githubTokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
}

func NewGitHubOAuth2Provider(clientID, clientSecret, redirectURL string, scopes []string) *GitHubOAuth2Provider {
	if len(scopes) == 0 {
		scopes = []string{"read:user", "user:email"}
	}

	return &GitHubOAuth2Provider{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		scopes:       scopes,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		authURL:      githubAuthURL,
		tokenURL:     githubTokenURL,
		userURL:      githubUserURL,
		emailsURL:    githubUserEmailURL,
	}
}

func (gh *GitHubOAuth2Provider) GetName() string {
	return "github"
}

func (gh *GitHubOAuth2Provider) GetAuthURL(state string, nonce string) string {
	params := url.Values{}
	params.Add("client_id", gh.clientID)
	params.Add("redirect_uri", gh.redirectURL)
	params.Add("scope", strings.Join(gh.scopes, " "))
	params.Add("state", state)

	return gh.authURL + "?" + params.Encode()
}

// HandleCallback ignores nonce: GitHub's OAuth2 flow has no ID token.
func (gh *GitHubOAuth2Provider) HandleCallback(ctx context.Context, code string, _ string) (*UserInfo, error) {
	tokenResp, err := gh.exchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	userInfo, err := gh.getUserInfo(ctx, tokenResp.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	return userInfo, nil
}

func (gh *GitHubOAuth2Provider) exchangeCode(ctx context.Context, code string) (*githubTokenResponse, error) {
	data := url.Values{}
	data.Set("client_id", gh.clientID)
	data.Set("client_secret", gh.clientSecret)
	data.Set("code", code)
	data.Set("redirect_uri", gh.redirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gh.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := gh.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp githubTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, errors.New("no access token in response")
	}

	return &tokenResp, nil
}

func (gh *GitHubOAuth2Provider) getUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gh.userURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := gh.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("user info request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var ghUser githubUser
	if err := json.NewDecoder(resp.Body).Decode(&ghUser); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	// the profile email carries no verification flag, so ask the emails endpoint
	email, emailVerified, err := gh.getPrimaryEmail(ctx, accessToken)
	if err != nil {
		email, emailVerified = ghUser.Email, false
	}

	name := ghUser.Name
	if name == "" {
		name = ghUser.Login
	}

	return &UserInfo{
		ID:            fmt.Sprintf("%d", ghUser.ID),
		Email:         email,
		EmailVerified: emailVerified,
		Name:          name,
		Picture:       ghUser.AvatarURL,
		Provider:      "github",
	}, nil
}

func (gh *GitHubOAuth2Provider) getPrimaryEmail(ctx context.Context, accessToken string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gh.emailsURL, nil)
	if err != nil {
		return "", false, err
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := gh.httpClient.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("failed to get emails with status %d", resp.StatusCode)
	}

	var emails []githubEmail
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", false, err
	}

	for _, e := range emails {
		if e.Primary {
			return e.Email, e.Verified, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, true, nil
		}
	}
	return "", false, errors.New("no email found")
}
