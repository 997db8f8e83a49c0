package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      List Users
// @Description  Reference directory of known users
// @Tags         directory
// @Produce      json
// @Router       /users [get]
func (s *Server) ListUsers(c *gin.Context) {
	users, err := s.directorySvc.ListUsers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

// @Summary      List Printers
// @Description  Reference directory of known printers
// @Tags         directory
// @Produce      json
// @Router       /printers [get]
func (s *Server) ListPrinters(c *gin.Context) {
	printers, err := s.directorySvc.ListPrinters(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": printers})
}
