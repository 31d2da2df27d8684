// Package server exposes the aggregation service over HTTP. The surface is
// deliberately small: the surrounding application serializes search output
// straight to its own clients.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/joblens/aggregator/internal/aggregator"
	"github.com/joblens/aggregator/internal/domain"
)

// Handler holds the HTTP handlers' dependencies.
type Handler struct {
	svc *aggregator.Service
}

// NewHandler creates the handler.
func NewHandler(svc *aggregator.Service) *Handler {
	return &Handler{svc: svc}
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(svc *aggregator.Service) *gin.Engine {
	h := NewHandler(svc)

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api/v1")
	{
		api.GET("/health", h.Health)
		api.POST("/jobs/search", h.SearchJobs)
		api.GET("/stats", h.Stats)
	}
	return r
}

type searchRequest struct {
	Skills   []string `json:"skills"`
	Location string   `json:"location"`
	Limit    int      `json:"limit"`
	Remote   bool     `json:"remote"`
	Complex  bool     `json:"complex"`
}

// SearchJobs handles POST /api/v1/jobs/search. The aggregation core never
// fails, so the only error response is a malformed request body.
func (h *Handler) SearchJobs(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	jobs := h.svc.Search(c.Request.Context(), req.Skills, domain.SearchOptions{
		Location: req.Location,
		Limit:    req.Limit,
		Remote:   req.Remote,
		Complex:  req.Complex,
	})

	c.JSON(http.StatusOK, gin.H{
		"count": len(jobs),
		"jobs":  jobs,
	})
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stats())
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
