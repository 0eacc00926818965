package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler answers liveness probes with the database state.
type HealthHandler struct {
	facade HealthFacade
	env    string
}

func NewHealthHandler(facade HealthFacade, env string) *HealthHandler {
	return &HealthHandler{facade: facade, env: env}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.facade.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":      "degraded",
			"database":    "down",
			"environment": h.env,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"database":    "up",
		"environment": h.env,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}
