package handlers

import (
	"net/http"
	"strings"

	"schooltrip/internal/domain/models"
	"schooltrip/internal/http/middleware"
	"schooltrip/internal/services"

	"github.com/gin-gonic/gin"
)

func tripService(c *gin.Context) services.TripService {
	return services.TripService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/trips?q=&status=&page=&limit=
func GetTrips(c *gin.Context) {
	page, limit := Paging(c)
	trips, err := tripService(c).List(
		strings.TrimSpace(c.Query("q")),
		strings.TrimSpace(c.Query("status")),
		page, limit,
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/trips/:id
func GetTripByID(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	trip, err := tripService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var p models.TripPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	trip, err := tripService(c).Create(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var p models.TripPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	trip, err := tripService(c).Update(id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /api/trips/:id
func DeleteTrip(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := tripService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// transition builds the shared handler for the lifecycle actions.
func transition(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := PathID(c, "id")
		if !ok {
			return
		}
		trip, err := tripService(c).Transition(id, action)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, trip)
	}
}

// POST /api/trips/:id/{submit,leader-approve,approve,cancel,reset}
var (
	SubmitTrip        = transition(models.ActionSubmit)
	LeaderApproveTrip = transition(models.ActionLeaderApprove)
	ApproveTrip       = transition(models.ActionApprove)
	CancelTrip        = transition(models.ActionCancel)
	ResetTrip         = transition(models.ActionReset)
)

// GET /api/trips/:id/event
func GetTripEvent(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	event, err := tripService(c).LinkedEvent(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// GET /api/trips/:id/notes
func GetTripNotes(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	notes, err := tripService(c).Notes(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// GET /api/trips/:id/report serves the printable request form inline.
func GetTripReport(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}

	svc := services.ReportService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.Generate(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
