package api

import (
	"log"
	stdhttp "net/http"

	intconfig "schooltrip/internal/config"
	h "schooltrip/internal/http/handlers"
	"schooltrip/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Roles allowed to fire each lifecycle action. Admin can do everything.
var (
	requesterRoles = []string{"requester", "admin"}
	leaderRoles    = []string{"leader", "admin"}
	transportRoles = []string{"transport", "admin"}
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.JWTSecret = []byte(env.JWTSecret)
	RegisterValidators()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		authed := api.Group("")
		authed.Use(middleware.Auth([]byte(env.JWTSecret)))

		// Trip requests
		trips := authed.Group("/trips")
		trips.GET("", h.GetTrips)
		trips.GET("/:id", h.GetTripByID)
		trips.POST("", h.CreateTrip)
		trips.PUT("/:id", h.UpdateTrip)
		trips.DELETE("/:id", h.DeleteTrip)

		// Lifecycle actions, gated per approval role
		trips.POST("/:id/submit", middleware.RequireRoles(requesterRoles...), h.SubmitTrip)
		trips.POST("/:id/leader-approve", middleware.RequireRoles(leaderRoles...), h.LeaderApproveTrip)
		trips.POST("/:id/approve", middleware.RequireRoles(transportRoles...), h.ApproveTrip)
		trips.POST("/:id/cancel", middleware.RequireRoles(requesterRoles...), h.CancelTrip)
		trips.POST("/:id/reset", middleware.RequireRoles(requesterRoles...), h.ResetTrip)

		trips.GET("/:id/event", h.GetTripEvent)
		trips.GET("/:id/notes", h.GetTripNotes)
		trips.GET("/:id/report", h.GetTripReport)

		// Bus lines
		trips.GET("/:id/bus-lines", h.GetBusLines)
		trips.POST("/:id/bus-lines", h.AddBusLine)
		trips.PUT("/:id/bus-lines/:lineID", h.UpdateBusLine)
		trips.DELETE("/:id/bus-lines/:lineID", h.DeleteBusLine)

		// Events
		events := authed.Group("/events")
		events.GET("", h.GetEvents)
		events.GET("/:id", h.GetEventByID)
		events.POST("", h.CreateEvent)
		events.PUT("/:id", h.UpdateEvent)
		events.DELETE("/:id", h.DeleteEvent)
		events.POST("/:id/create-trip", h.CreateTripFromEvent)
		events.GET("/:id/trip", h.GetEventTrip)
		events.GET("/:id/notes", h.GetEventNotes)

		// Reference data
		authed.GET("/vehicles", h.GetVehicles)
		authed.GET("/schools", h.GetSchools)
	}

	return r
}
