package budget

import (
	"fmt"
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

// RegisterRoutes mounts the budget travel endpoints; router is expected to
// already require authentication.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.GET("/budget-travel/preview", h.PreviewHandler)
	router.POST("/budget-travel", h.SearchHandler)
	router.POST("/budget-travel/export", h.ExportHandler)
}

// PreviewHandler godoc
// @Summary      Budget travel preview
// @Description  Destination groups, price ranges and popular durations of the bookable catalog
// @Tags         budget-travel
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} budget.Preview
// @Failure      401 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /api/budget-travel/preview [get]
func (h *Handler) PreviewHandler(c *gin.Context) {
	preview, err := h.service.Preview(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// SearchHandler godoc
// @Summary      Search budget travel combinations
// @Description  Itineraries of one or more packages plus transport that fit the budget, headcount and days
// @Tags         budget-travel
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body budget.Request true "Search criteria"
// @Success      200 {object} budget.Response
// @Failure      400 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /api/budget-travel [post]
func (h *Handler) SearchHandler(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.InvalidRequest(fmt.Sprintf("Invalid request format: %v", err), err))
		return
	}

	response, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

type exportRequest struct {
	PackageCombination
	NumPersons int `json:"num_persons,omitempty"`
}

// ExportHandler godoc
// @Summary      Export an itinerary as PDF
// @Tags         budget-travel
// @Accept       json
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        request body budget.PackageCombination true "Combination returned by search"
// @Success      200 {file} binary
// @Failure      400 {object} map[string]string
// @Router       /api/budget-travel/export [post]
func (h *Handler) ExportHandler(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.InvalidRequest(fmt.Sprintf("Invalid request format: %v", err), err))
		return
	}

	pdf, err := h.service.Export(c.Request.Context(), req.PackageCombination, req.NumPersons)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="itinerary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
