package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"travelagg/pkg/apperr"
)

const claimsKey = "auth.claims"

type tokenCtxKey struct{}

// WithToken stores the caller's raw bearer token so downstream clients can forward it.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenCtxKey{}).(string)
	return token, ok && token != ""
}

// Middleware requires a valid "Authorization: Bearer <jwt>" header.
func Middleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			apperr.Respond(c, apperr.Unauthorized("missing bearer token"))
			return
		}

		claims, err := issuer.Verify(raw)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, ErrTokenExpired) {
				msg = "token expired"
			}
			apperr.Respond(c, apperr.Unauthorized(msg))
			return
		}

		c.Set(claimsKey, claims)
		c.Request = c.Request.WithContext(WithToken(c.Request.Context(), raw))
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Middleware.
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
