package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelagg/pkg/apperr"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{
		service: s,
	}
}

// RegisterRoutes mounts the browse endpoints publicly and the snapshot export
// behind requireAuth.
func (h *Handler) RegisterRoutes(router gin.IRouter, requireAuth gin.HandlerFunc) {
	router.GET("/agents", h.ListAgentsHandler)
	router.GET("/agents/:id", h.GetAgentHandler)
	router.GET("/packages", h.ListPackagesHandler)
	router.GET("/packages/:id", h.GetPackageHandler)
	router.GET("/ribbons", h.ListRibbonsHandler)
	router.GET("/catalog/snapshot", requireAuth, h.SnapshotHandler)
}

// ListAgentsHandler godoc
// @Summary      List agents
// @Description  Active agents, optionally filtered by type (travel, transport) or "sponsored"
// @Tags         catalog
// @Produce      json
// @Param        agent_type query string false "travel | transport | sponsored"
// @Success      200 {array} catalog.Agent
// @Failure      400 {object} map[string]string
// @Router       /api/agents [get]
func (h *Handler) ListAgentsHandler(c *gin.Context) {
	agents, err := h.service.Agents(c.Request.Context(), c.Query("agent_type"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, agents)
}

// GetAgentHandler godoc
// @Summary      Get agent
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Agent ID"
// @Success      200 {object} catalog.Agent
// @Failure      404 {object} map[string]string
// @Router       /api/agents/{id} [get]
func (h *Handler) GetAgentHandler(c *gin.Context) {
	agent, err := h.service.Agent(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, agent)
}

// ListPackagesHandler godoc
// @Summary      List packages
// @Tags         catalog
// @Produce      json
// @Param        agent_id query string false "Only packages of this agent"
// @Success      200 {array} catalog.Package
// @Router       /api/packages [get]
func (h *Handler) ListPackagesHandler(c *gin.Context) {
	packages, err := h.service.Packages(c.Request.Context(), c.Query("agent_id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, packages)
}

// GetPackageHandler godoc
// @Summary      Get package
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Package ID"
// @Success      200 {object} catalog.Package
// @Failure      404 {object} map[string]string
// @Router       /api/packages/{id} [get]
func (h *Handler) GetPackageHandler(c *gin.Context) {
	pkg, err := h.service.Package(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// ListRibbonsHandler godoc
// @Summary      Home screen ribbons
// @Description  Active ribbons ordered for display; items depend on the ribbon type
// @Tags         catalog
// @Produce      json
// @Success      200 {array} map[string]interface{}
// @Router       /api/ribbons [get]
func (h *Handler) ListRibbonsHandler(c *gin.Context) {
	ribbons, err := h.service.Ribbons(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ribbons)
}

// SnapshotHandler godoc
// @Summary      Full catalog document
// @Description  Used by other instances configured with CATALOG_SOURCE=http
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /api/catalog/snapshot [get]
func (h *Handler) SnapshotHandler(c *gin.Context) {
	doc, err := h.service.Document(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
