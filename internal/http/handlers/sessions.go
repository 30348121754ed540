package handlers

import (
	"errors"
	"net/http"

	"busbook/internal/booking"
	"busbook/internal/domain"
	"busbook/internal/domain/models"
	"busbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type openSessionRequest struct {
	Journey    booking.Journey `json:"journey"`
	FarePolicy string          `json:"farePolicy"`
}

// POST /api/sessions
func (a *API) OpenSession(c *gin.Context) {
	var req openSessionRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	sess, err := a.Bookings.OpenSession(middleware.GetRequestID(c), req.Journey, req.FarePolicy)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionView(sess))
}

// GET /api/sessions/:id
func (a *API) GetSession(c *gin.Context) {
	sess, err := a.Bookings.Session(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

// DELETE /api/sessions/:id
func (a *API) AbandonSession(c *gin.Context) {
	a.Bookings.AbandonSession(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// POST /api/sessions/:id/seats/:seatId/toggle
func (a *API) ToggleSeat(c *gin.Context) {
	sess, err := a.Bookings.Session(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := sess.ToggleSeat(c.Param("seatId")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"selectedSeats": sess.SeatNumbers(),
		"totalAmount":   sess.Total(),
	})
}

// POST /api/sessions/:id/confirm-seats
func (a *API) ConfirmSeats(c *gin.Context) {
	sess, err := a.Bookings.Session(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := sess.ConfirmSeats(); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

type submitPassengersRequest struct {
	Passengers []models.Passenger `json:"passengers"`
}

// POST /api/sessions/:id/passengers
func (a *API) SubmitPassengers(c *gin.Context) {
	sess, err := a.Bookings.Session(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var req submitPassengersRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := sess.SubmitPassengers(req.Passengers); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

type submitPaymentRequest struct {
	Payment models.PaymentDetails `json:"payment"`
	Contact models.ContactDetails `json:"contact"`
}

// POST /api/sessions/:id/payment
func (a *API) SubmitPayment(c *gin.Context) {
	var req submitPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := a.Bookings.CommitPayment(middleware.GetRequestID(c), c.Param("id"), req.Payment, req.Contact)
	if err != nil {
		// The booking is committed in memory even when the durable mirror
		// fails; return it with a warning instead of losing the commit.
		if errors.Is(err, domain.ErrRepositoryUnavailable) && b.Reference != "" {
			c.JSON(http.StatusCreated, gin.H{
				"booking": b,
				"warning": err.Error(),
			})
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b})
}

// POST /api/sessions/:id/back
func (a *API) StepBack(c *gin.Context) {
	sess, err := a.Bookings.Session(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := sess.Back(); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(sess))
}

func sessionView(s *booking.Session) gin.H {
	view := gin.H{
		"id":            s.ID,
		"state":         s.State(),
		"journey":       s.Journey,
		"seats":         s.Inventory.Seats,
		"selectedSeats": s.SeatNumbers(),
		"totalAmount":   s.Total(),
		"farePolicy":    s.Fare.Name(),
	}
	if passengers := s.Passengers(); len(passengers) > 0 {
		view["passengers"] = passengers
	}
	return view
}
