package handlers

import (
	"net/http"

	intconfig "schooltrip/internal/config"
	intdb "schooltrip/internal/db"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "school trip backend running"})
}

func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not connected"})
		return
	}
	for _, table := range []string{"trip_requests", "events", "sequences"} {
		if !intdb.HasTable(intconfig.DB, table) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "missing table: " + table})
			return
		}
	}
	// the link column this module adds to the shared events table
	if !intdb.HasColumn(intconfig.DB, "events", "trip_id") {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "events table missing trip_id column"})
		return
	}
	var count int
	err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM trip_requests").Scan(&count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "trip_requests": count})
}
