package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	statsdomain "github.com/kmurdhar/PrinterManagementSystem/internal/stats/domain"
)

// @Summary      Print Statistics
// @Description  Summary statistics over the job log, optionally windowed
// @Tags         stats
// @Produce      json
// @Param        startDate  query  string  false  "Window start (used only with endDate)"
// @Param        endDate    query  string  false  "Window end (used only with startDate)"
// @Success      200  {object}  statsdomain.StatsResponse
// @Router       /stats [get]
func (s *Server) GetStats(c *gin.Context) {
	startDate, err := parseOptionalTime(c.Query("startDate"), false)
	if err != nil {
		AbortWithError(c, newValidationError("startDate", "invalid_start_date", "invalid startDate"))
		return
	}

	endDate, err := parseOptionalTime(c.Query("endDate"), true)
	if err != nil {
		AbortWithError(c, newValidationError("endDate", "invalid_end_date", "invalid endDate"))
		return
	}

	resp, err := s.statsSvc.Summarize(c.Request.Context(), statsdomain.StatsRequest{
		From: startDate,
		To:   endDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}
