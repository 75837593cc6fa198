package handlers

import (
	"net/http"
	"strings"

	"schooltrip/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles?q=
func GetVehicles(c *gin.Context) {
	repo := repositories.VehicleRepository{}
	vehicles, err := repo.List(strings.TrimSpace(c.Query("q")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

// GET /api/schools?q=
func GetSchools(c *gin.Context) {
	repo := repositories.SchoolRepository{}
	schools, err := repo.List(strings.TrimSpace(c.Query("q")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schools": schools})
}
