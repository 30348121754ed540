package handlers

import (
	"net/http"

	intconfig "busbook/internal/config"
	"busbook/internal/http/middleware"
	"busbook/internal/repositories"
	"busbook/internal/services"

	"github.com/gin-gonic/gin"
)

// API bundles the handler dependencies. Users is nil when no database is
// configured; account endpoints report that instead of panicking.
type API struct {
	Env      intconfig.Env
	Bookings *services.BookingService
	Users    *repositories.UserRepository
}

// RespondError sends the standard error payload with request_id included.
// "message" is always present for clients that only read that key.
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload", err)
		return false
	}
	return true
}
