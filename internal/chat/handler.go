package chat

import (
	"fmt"
	"net/http"
	"strconv"

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

// RegisterRoutes mounts the chat endpoints; router is expected to already
// require authentication.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/chat/send", h.SendHandler)
	router.GET("/chat/:package_id", h.HistoryHandler)
}

// SendHandler godoc
// @Summary      Message the agent behind a package
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body chat.SendRequest true "Message"
// @Success      200 {object} chat.SendResponse
// @Failure      400 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /api/chat/send [post]
func (h *Handler) SendHandler(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		apperr.Respond(c, apperr.Unauthorized("missing bearer token"))
		return
	}

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.InvalidRequest(fmt.Sprintf("Invalid request format: %v", err), err))
		return
	}

	m, err := h.service.Send(c.Request.Context(), claims.UserID, req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, SendResponse{
		Message: "Message sent",
		ChatID:  strconv.FormatInt(m.ID, 10),
	})
}

// HistoryHandler godoc
// @Summary      Chat history for a package
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        package_id path string true "Package ID"
// @Success      200 {array} chat.Message
// @Failure      404 {object} map[string]string
// @Router       /api/chat/{package_id} [get]
func (h *Handler) HistoryHandler(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		apperr.Respond(c, apperr.Unauthorized("missing bearer token"))
		return
	}

	messages, err := h.service.History(c.Request.Context(), claims.UserID, c.Param("package_id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
