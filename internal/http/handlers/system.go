package handlers

import (
	"net/http"

	intconfig "busbook/internal/config"

	"github.com/gin-gonic/gin"
)

func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "busbook"})
}

// DBCheck reports whether the optional MySQL mirror is reachable.
func (a *API) DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusOK, gin.H{"database": "not configured", "mode": "memory-only"})
		return
	}
	if err := intconfig.DB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"database": "unreachable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"database": "ok"})
}
