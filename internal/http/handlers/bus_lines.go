package handlers

import (
	"net/http"

	"schooltrip/internal/domain/models"
	"schooltrip/internal/http/middleware"
	"schooltrip/internal/services"

	"github.com/gin-gonic/gin"
)

func busLineService(c *gin.Context) services.BusLineService {
	return services.BusLineService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/trips/:id/bus-lines
func GetBusLines(c *gin.Context) {
	tripID, ok := PathID(c, "id")
	if !ok {
		return
	}
	lines, err := busLineService(c).List(tripID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"busLines": lines})
}

// POST /api/trips/:id/bus-lines
func AddBusLine(c *gin.Context) {
	tripID, ok := PathID(c, "id")
	if !ok {
		return
	}
	var p models.BusLinePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	line, err := busLineService(c).Add(tripID, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

// PUT /api/trips/:id/bus-lines/:lineID
func UpdateBusLine(c *gin.Context) {
	tripID, ok := PathID(c, "id")
	if !ok {
		return
	}
	lineID, ok := PathID(c, "lineID")
	if !ok {
		return
	}
	var p models.BusLinePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	line, err := busLineService(c).Update(tripID, lineID, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

// DELETE /api/trips/:id/bus-lines/:lineID
func DeleteBusLine(c *gin.Context) {
	tripID, ok := PathID(c, "id")
	if !ok {
		return
	}
	lineID, ok := PathID(c, "lineID")
	if !ok {
		return
	}
	if err := busLineService(c).Remove(tripID, lineID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": lineID})
}
