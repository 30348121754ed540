package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"busbook/internal/http/middleware"
	"busbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/buses/search?from=&to=&date=&busType=&acOnly=&maxFare=
func (a *API) SearchBuses(c *gin.Context) {
	q := services.SearchQuery{
		From:         c.Query("from"),
		To:           c.Query("to"),
		Date:         c.Query("date"),
		BusType:      c.Query("busType"),
		Operator:     c.Query("operator"),
		DepartAfter:  c.Query("departAfter"),
		DepartBefore: c.Query("departBefore"),
	}
	if v := strings.TrimSpace(c.Query("acOnly")); v != "" {
		q.ACOnly, _ = strconv.ParseBool(v)
	}
	if v := strings.TrimSpace(c.Query("minFare")); v != "" {
		if fare, err := strconv.ParseInt(v, 10, 64); err == nil {
			q.MinFare = fare
		}
	}
	if v := strings.TrimSpace(c.Query("maxFare")); v != "" {
		if fare, err := strconv.ParseInt(v, 10, 64); err == nil {
			q.MaxFare = fare
		}
	}

	svc := services.SearchService{RequestID: middleware.GetRequestID(c)}
	results, err := svc.Search(q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"buses": results,
		"count": len(results),
	})
}
