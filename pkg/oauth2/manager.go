package oauth2

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"travelagg/cfg"
	"travelagg/pkg/cache"
)

var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrEmailUnverified  = errors.New("provider did not return a verified email")
)

// SignInFunc turns a provider-verified user into the application's sign-in
// response, typically a bearer token.
type SignInFunc func(ctx context.Context, info *UserInfo) (any, error)

// Manager runs the authorization code flow for the registered providers.
type Manager struct {
	providers    map[string]Provider
	states       *StateStore
	stateTimeout time.Duration
	signIn       SignInFunc
}

// NewManager registers every provider that has client credentials in cfg.
func NewManager(ctx context.Context, cfg cfg.Oauth2Config, states cache.Cache, signIn SignInFunc) (*Manager, error) {
	mgr := newManager(states, signIn)

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		googleProvider, err := NewGoogleOIDCProvider(
			ctx,
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectUrl,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google provider: %w", err)
		}
		mgr.RegisterProvider(googleProvider)
	}

	if cfg.GithubClientID != "" && cfg.GithubClientSecret != "" {
		mgr.RegisterProvider(NewGitHubOAuth2Provider(
			cfg.GithubClientID,
			cfg.GithubClientSecret,
			cfg.GithubRedirectUrl,
			nil,
		))
	}

	return mgr, nil
}

func newManager(states cache.Cache, signIn SignInFunc) *Manager {
	return &Manager{
		providers:    make(map[string]Provider),
		states:       NewStateStore(states),
		stateTimeout: 10 * time.Minute,
		signIn:       signIn,
	}
}

func (m *Manager) RegisterProvider(provider Provider) {
	m.providers[provider.GetName()] = provider
}

// Providers lists the registered provider names in order.
func (m *Manager) Providers() []string {
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAuthURL starts a login: it stores a fresh state and nonce and returns
// the provider URL to redirect to.
func (m *Manager) GetAuthURL(ctx context.Context, providerName string) (string, error) {
	provider, exists := m.providers[providerName]
	if !exists {
		return "", ErrProviderNotFound
	}

	state, err := GenerateRandomString(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	nonce, err := GenerateRandomString(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	if err := m.states.Save(ctx, state, nonce, m.stateTimeout); err != nil {
		return "", err
	}
	return provider.GetAuthURL(state, nonce), nil
}

// HandleCallback completes a login started by GetAuthURL and signs the user in.
func (m *Manager) HandleCallback(ctx context.Context, providerName, code, state string) (any, error) {
	provider, exists := m.providers[providerName]
	if !exists {
		return nil, ErrProviderNotFound
	}

	nonce, err := m.states.Take(ctx, state)
	if err != nil {
		return nil, err
	}

	info, err := provider.HandleCallback(ctx, code, nonce)
	if err != nil {
		return nil, fmt.Errorf("callback failed: %w", err)
	}
	if info.Email == "" || !info.EmailVerified {
		return nil, ErrEmailUnverified
	}

	return m.signIn(ctx, info)
}
