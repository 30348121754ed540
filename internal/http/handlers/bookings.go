package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"busbook/internal/domain"
	"busbook/internal/domain/models"
	"busbook/internal/http/middleware"
	"busbook/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings?search=&status=&startDate=&endDate=&sortBy=&order=&page=&pageSize=
func (a *API) ListBookings(c *gin.Context) {
	q := a.bookingQuery(c)

	bookings, pagination, err := a.Bookings.List(q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings":   bookings,
		"pagination": pagination,
	})
}

// GET /api/bookings/stats applies the same filters as the list endpoint and
// counts the whole filtered set, not just the visible page.
func (a *API) BookingStats(c *gin.Context) {
	q := a.bookingQuery(c)
	c.JSON(http.StatusOK, a.Bookings.Stats(q))
}

// GET /api/dashboard/stats serves the debounced global counters.
func (a *API) DashboardStats(c *gin.Context) {
	c.JSON(http.StatusOK, a.Bookings.CachedStats())
}

// GET /api/bookings/:reference
func (a *API) GetBooking(c *gin.Context) {
	b, err := a.Bookings.Get(c.Param("reference"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// POST /api/bookings/:reference/cancel
func (a *API) CancelBooking(c *gin.Context) {
	var req cancelRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := a.Bookings.Cancel(middleware.GetRequestID(c), c.Param("reference"), req.Reason)
	if err != nil {
		if errors.Is(err, domain.ErrRepositoryUnavailable) && b.Reference != "" {
			c.JSON(http.StatusOK, gin.H{
				"booking": b,
				"warning": err.Error(),
			})
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// GET /api/bookings/:reference/ticket
func (a *API) DownloadTicket(c *gin.Context) {
	svc := services.DocsService{
		Bookings:  a.Bookings.Repo,
		RequestID: middleware.GetRequestID(c),
	}
	data, filename, err := svc.GenerateTicket(c.Param("reference"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (a *API) bookingQuery(c *gin.Context) models.BookingQuery {
	q := models.BookingQuery{
		Search:    c.Query("search"),
		Status:    normalizeStatus(c.Query("status")),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		SortBy:    c.Query("sortBy"),
		Order:     c.Query("order"),
		Page:      1,
		PageSize:  a.Env.DefaultPageSize,
	}
	if v := c.Query("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page > 0 {
			q.Page = page
		}
	}
	if v := c.Query("pageSize"); v != "" {
		if size, err := strconv.Atoi(v); err == nil && size > 0 {
			q.PageSize = size
		}
	}
	return q
}

// normalizeStatus accepts the display forms the UI sends ("All Status",
// "Confirmed") alongside the canonical lowercase values.
func normalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "all status" {
		return "all"
	}
	return s
}
