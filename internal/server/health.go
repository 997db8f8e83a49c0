package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health is the liveness probe agents hit before reporting jobs.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   s.clock.Now(),
	})
}
