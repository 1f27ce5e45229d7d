package oauth2

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelagg/pkg/apperr"
	"travelagg/pkg/logger"
)

// RegisterRoutes mounts /auth/<provider> and /auth/callback/<provider> for
// every registered provider.
func RegisterRoutes(router gin.IRouter, manager *Manager, log logger.Client) {
	for _, name := range manager.Providers() {
		router.GET("/auth/"+name, AuthHandler(manager, name, log))
		router.GET("/auth/callback/"+name, CallbackHandler(manager, name, log))
	}
}

// AuthHandler starts an OAuth2 login
// @Summary Start OAuth2 login
// @Description Redirects to the provider's login page (google or github)
// @Tags oauth2
// @Success 307 {string} string "Redirect"
// @Router /auth/google [get]
// @Router /auth/github [get]
func AuthHandler(manager *Manager, provider string, log logger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authURL, err := manager.GetAuthURL(c.Request.Context(), provider)
		if err != nil {
			if errors.Is(err, ErrProviderNotFound) {
				apperr.Respond(c, oauthError(err))
				return
			}
			log.Error("Failed to start OAuth2 login", logger.Err(err), logger.Field{Key: "provider", Value: provider})
			apperr.Respond(c, apperr.Internal(err))
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

// CallbackHandler finishes an OAuth2 login
// @Summary OAuth2 callback
// @Description Exchanges the code, signs the user in and returns a bearer token
// @Tags oauth2
// @Produce json
// @Param code query string true "OAuth2 code"
// @Param state query string true "OAuth2 state"
// @Success 200 {object} map[string]interface{} "Bearer token and user"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/callback/google [get]
// @Router /auth/callback/github [get]
func CallbackHandler(manager *Manager, provider string, log logger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if errMsg := c.Query("error"); errMsg != "" {
			apperr.Respond(c, apperr.Unauthorized("login was not completed: "+errMsg))
			return
		}

		code := c.Query("code")
		state := c.Query("state")
		if code == "" || state == "" {
			apperr.Respond(c, apperr.Validation("missing code or state"))
			return
		}

		result, err := manager.HandleCallback(c.Request.Context(), provider, code, state)
		if err != nil {
			log.Warn("OAuth2 callback rejected", logger.Err(err), logger.Field{Key: "provider", Value: provider})
			apperr.Respond(c, oauthError(err))
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func oauthError(err error) error {
	var appErr *apperr.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, ErrProviderNotFound):
		return apperr.NotFound("Unknown login provider")
	case errors.Is(err, ErrStateNotFound):
		return apperr.New(http.StatusUnauthorized, apperr.ErrorCodeUnauthorized, "Login expired, please try again", err)
	case errors.Is(err, ErrEmailUnverified):
		return apperr.New(http.StatusUnauthorized, apperr.ErrorCodeUnauthorized, "A verified email address is required", err)
	default:
		return apperr.New(http.StatusUnauthorized, apperr.ErrorCodeUnauthorized, "Login failed", err)
	}
}
