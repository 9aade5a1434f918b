package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/routepulse/service-routes/internal/domain/route"
	"github.com/routepulse/service-routes/internal/response"
)

// RoutePlanner runs the geocode-directions-assemble pipeline for one query.
type RoutePlanner interface {
	PlanRoutes(ctx context.Context, start, end string) (*route.Plan, error)
}

// PageSettings parameterizes the frontend shell.
type PageSettings struct {
	MapboxToken    string
	RefreshSeconds int
}

// RouteHandler handles the page view and the route query endpoint.
type RouteHandler struct {
	planner RoutePlanner
	page    PageSettings
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(planner RoutePlanner, page PageSettings) *RouteHandler {
	return &RouteHandler{planner: planner, page: page}
}

// RegisterRoutes registers the handler's routes on the given router group.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Home)
	r.GET("/api/route", h.GetRoute)
}

// Home handles GET /. It serves the map shell with the access token and the
// polling interval the frontend should use.
func (h *RouteHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "map_live.html", gin.H{
		"MapboxToken":    h.page.MapboxToken,
		"RefreshSeconds": h.page.RefreshSeconds,
	})
}

// GetRoute handles GET /api/route?start=<place>&end=<place>.
func (h *RouteHandler) GetRoute(c *gin.Context) {
	start := strings.TrimSpace(c.Query("start"))
	end := strings.TrimSpace(c.Query("end"))
	if start == "" || end == "" {
		response.BadRequest(c, "start and end are required")
		return
	}

	plan, err := h.planner.PlanRoutes(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, plan)
}
