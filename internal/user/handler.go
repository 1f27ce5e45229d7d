package user

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelagg/pkg/apperr"
	"travelagg/pkg/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(router gin.IRouter, requireAuth gin.HandlerFunc) {
	router.POST("/auth/register", h.RegisterHandler)
	router.POST("/auth/login", h.LoginHandler)
	router.GET("/auth/me", requireAuth, h.MeHandler)
}

// RegisterHandler godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.RegisterRequest true "New account"
// @Success      200 {object} user.AuthResponse
// @Failure      400 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /api/auth/register [post]
func (h *Handler) RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.InvalidRequest(fmt.Sprintf("Invalid request format: %v", err), err))
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LoginHandler godoc
// @Summary      Log in with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.LoginRequest true "Credentials"
// @Success      200 {object} user.AuthResponse
// @Failure      401 {object} map[string]string
// @Router       /api/auth/login [post]
func (h *Handler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.InvalidRequest(fmt.Sprintf("Invalid request format: %v", err), err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MeHandler godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} user.User
// @Failure      401 {object} map[string]string
// @Router       /api/auth/me [get]
func (h *Handler) MeHandler(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		apperr.Respond(c, apperr.Unauthorized("missing bearer token"))
		return
	}

	u, err := h.service.Me(c.Request.Context(), claims.Subject)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
