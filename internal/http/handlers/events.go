package handlers

import (
	"net/http"
	"strings"

	"schooltrip/internal/domain/models"
	"schooltrip/internal/http/middleware"
	"schooltrip/internal/services"

	"github.com/gin-gonic/gin"
)

func eventService(c *gin.Context) services.EventService {
	rid := middleware.GetRequestID(c)
	return services.EventService{
		Trips:     services.TripService{RequestID: rid},
		RequestID: rid,
	}
}

// GET /api/events?q=&page=&limit=
func GetEvents(c *gin.Context) {
	page, limit := Paging(c)
	events, err := eventService(c).List(strings.TrimSpace(c.Query("q")), page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GET /api/events/:id
func GetEventByID(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	event, err := eventService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// POST /api/events
func CreateEvent(c *gin.Context) {
	var p models.EventPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	event, err := eventService(c).Create(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// PUT /api/events/:id
func UpdateEvent(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	var p models.EventPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	event, err := eventService(c).Update(id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DELETE /api/events/:id
func DeleteEvent(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	if err := eventService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// POST /api/events/:id/create-trip is the manual "create trip request" action.
func CreateTripFromEvent(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	trip, err := eventService(c).CreateTripFromEvent(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// GET /api/events/:id/trip
func GetEventTrip(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	trip, err := eventService(c).LinkedTrip(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// GET /api/events/:id/notes
func GetEventNotes(c *gin.Context) {
	id, ok := PathID(c, "id")
	if !ok {
		return
	}
	notes, err := eventService(c).Notes(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}
