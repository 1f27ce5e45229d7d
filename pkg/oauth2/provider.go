package oauth2

import (
	"context"
)

// Provider is one external identity provider.
type Provider interface {
	GetName() string
	GetAuthURL(state string, nonce string) string
	// HandleCallback exchanges the authorization code and returns the
	// provider's view of the user. nonce is the value bound to the state.
	HandleCallback(ctx context.Context, code string, nonce string) (*UserInfo, error)
}

// UserInfo is the user as reported by a provider.
type UserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Provider      string `json:"provider"`
}
