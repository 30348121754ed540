package booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"busbook/internal/domain"
	"busbook/internal/domain/models"
)

type State string

const (
	StateSeatSelection    State = "seat_selection"
	StatePassengerDetails State = "passenger_details"
	StatePayment          State = "payment"
	StateCommitted        State = "committed"
)

// Authorizer is the payment-authorization seam. The current implementation
// never talks to a real processor, but the session is written against this
// interface so one can be injected.
type Authorizer interface {
	Authorize(amount int64, method models.PaymentMethod, details map[string]string) error
}

// AutoApprove accepts every authorization request.
type AutoApprove struct{}

func (AutoApprove) Authorize(int64, models.PaymentMethod, map[string]string) error { return nil }

// Journey is the route/schedule context a session is opened for. BasePrice
// carries the per-seat price the search result showed, so the seat map is
// priced consistently with it.
type Journey struct {
	BusID         string `json:"busId"`
	From          string `json:"from"`
	To            string `json:"to"`
	Date          string `json:"date"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Operator      string `json:"busOperator"`
	BusType       string `json:"busType"`
	BasePrice     int64  `json:"basePrice"`
}

// Session drives one booking from seat selection through passenger details
// and payment to a committed record. Abandoning a session before commit
// leaves no booking behind; partial state simply gets dropped with it.
type Session struct {
	ID        string
	Journey   Journey
	Inventory models.InventorySnapshot
	Selection *SelectionTracker
	Fare      FareStrategy
	Auth      Authorizer
	Now       func() time.Time

	state State

	// Carried forward immutably once seats are confirmed.
	seatNumbers []string
	total       int64

	passengers []models.Passenger
	contact    models.ContactDetails
	committed  *models.Booking
}

func NewSession(id string, j Journey, inv models.InventorySnapshot, maxSeats int, fare FareStrategy) *Session {
	if fare == nil {
		fare = SeatSumFare{}
	}
	return &Session{
		ID:        id,
		Journey:   j,
		Inventory: inv,
		Selection: NewSelectionTracker(inv, maxSeats),
		Fare:      fare,
		Auth:      AutoApprove{},
		state:     StateSeatSelection,
	}
}

func (s *Session) State() State { return s.state }

// Total is the carried-forward amount after seat confirmation, or the live
// selection total before it.
func (s *Session) Total() int64 {
	if s.state == StateSeatSelection {
		return s.Selection.Total()
	}
	return s.total
}

func (s *Session) SeatNumbers() []string {
	if s.state == StateSeatSelection {
		return s.Selection.SeatNumbers()
	}
	out := make([]string, len(s.seatNumbers))
	copy(out, s.seatNumbers)
	return out
}

// Passengers returns previously entered details so the step re-renders with
// no data loss after a Back.
func (s *Session) Passengers() []models.Passenger {
	out := make([]models.Passenger, len(s.passengers))
	copy(out, s.passengers)
	return out
}

func (s *Session) Committed() *models.Booking { return s.committed }

// ToggleSeat flips one seat in or out of the selection. Only legal while on
// the seat-selection step.
func (s *Session) ToggleSeat(seatID string) error {
	if s.state != StateSeatSelection {
		return stepConflict("seat selection", s.state)
	}
	return s.Selection.Toggle(seatID)
}

// ConfirmSeats advances to passenger details. The seat list and computed
// total are frozen here; later steps read the copies, not the tracker.
func (s *Session) ConfirmSeats() error {
	if s.state != StateSeatSelection {
		return stepConflict("seat selection", s.state)
	}
	if s.Selection.Count() == 0 {
		return domain.ValidationError{
			Field: "seats",
			Msg:   "please select at least one seat",
			Err:   domain.ErrNoSeatsSelected,
		}
	}

	s.seatNumbers = s.Selection.SeatNumbers()
	s.total = s.Fare.Total(s.Selection.Seats(), s.Selection.Count())
	s.state = StatePassengerDetails
	return nil
}

// SubmitPassengers validates and stores one passenger per confirmed seat,
// then advances to payment. Failures are field-scoped and block the
// transition; nothing entered so far is discarded.
func (s *Session) SubmitPassengers(passengers []models.Passenger) error {
	if s.state != StatePassengerDetails {
		return stepConflict("passenger details", s.state)
	}
	if len(passengers) != len(s.seatNumbers) {
		return domain.ValidationError{
			Field: "passengers",
			Msg:   fmt.Sprintf("expected %d passengers for %d seats", len(s.seatNumbers), len(s.seatNumbers)),
		}
	}

	seatSet := map[string]bool{}
	for _, n := range s.seatNumbers {
		seatSet[n] = true
	}

	errs := domain.FieldErrors{}
	claimed := map[string]bool{}
	for i, p := range passengers {
		if strings.TrimSpace(p.Name) == "" {
			errs[fmt.Sprintf("name-%d", i)] = "Name is required"
		}
		if p.Age < 1 || p.Age > 120 {
			errs[fmt.Sprintf("age-%d", i)] = "Please enter a valid age"
		}
		if strings.TrimSpace(p.IDNumber) == "" {
			errs[fmt.Sprintf("idNumber-%d", i)] = "ID number is required"
		}
		switch {
		case !seatSet[p.SeatNumber]:
			errs[fmt.Sprintf("seatNumber-%d", i)] = "Seat is not part of this booking"
		case claimed[p.SeatNumber]:
			errs[fmt.Sprintf("seatNumber-%d", i)] = "Seat already assigned to another passenger"
		default:
			claimed[p.SeatNumber] = true
		}
	}
	if len(errs) > 0 {
		return errs
	}

	s.passengers = append([]models.Passenger(nil), passengers...)
	s.state = StatePayment
	return nil
}

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3}$`)
)

// SubmitPayment validates the payment details, runs them through the
// authorizer, and on success commits the session into a Booking record.
// The reference is assigned by the caller via Commit options; timestamps
// come from the session clock.
func (s *Session) SubmitPayment(p models.PaymentDetails, contact models.ContactDetails, reference string) (models.Booking, error) {
	if s.state != StatePayment {
		return models.Booking{}, stepConflict("payment", s.state)
	}

	if err := validatePayment(p); err != nil {
		return models.Booking{}, err
	}

	auth := s.Auth
	if auth == nil {
		auth = AutoApprove{}
	}
	if err := auth.Authorize(s.total, p.Method, p.Details); err != nil {
		return models.Booking{}, domain.ConflictError{Resource: "payment", Msg: "payment declined", Err: err}
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now()
	}
	s.contact = contact

	base, fee, tax := SplitFare(s.total)
	b := models.Booking{
		Reference:     reference,
		BusID:         s.Journey.BusID,
		From:          s.Journey.From,
		To:            s.Journey.To,
		Date:          s.Journey.Date,
		DepartureTime: s.Journey.DepartureTime,
		ArrivalTime:   s.Journey.ArrivalTime,
		BusOperator:   s.Journey.Operator,
		BusType:       s.Journey.BusType,
		SeatNumbers:   append([]string(nil), s.seatNumbers...),
		Passengers:    append([]models.Passenger(nil), s.passengers...),
		Contact:       contact,
		PaymentMethod: p.Method,
		BaseFare:      base,
		ServiceFee:    fee,
		Tax:           tax,
		TotalAmount:   s.total,
		FarePolicy:    s.Fare.Name(),
		Status:        models.StatusConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.committed = &b
	s.state = StateCommitted
	return b, nil
}

// Back returns to the previous step. Data already entered for the step
// being returned to is preserved.
func (s *Session) Back() error {
	switch s.state {
	case StatePassengerDetails:
		s.state = StateSeatSelection
		return nil
	case StatePayment:
		s.state = StatePassengerDetails
		return nil
	default:
		return domain.ConflictError{Resource: "session", Msg: fmt.Sprintf("cannot go back from %s", s.state)}
	}
}

func validatePayment(p models.PaymentDetails) error {
	fields, ok := models.RequiredPaymentFields[p.Method]
	if !ok {
		return domain.ValidationError{Field: "method", Msg: "unknown payment method"}
	}

	errs := domain.FieldErrors{}
	for _, f := range fields {
		if strings.TrimSpace(p.Details[f.Name]) == "" {
			errs[f.Name] = f.Label + " is required"
		}
	}

	if p.Method == models.MethodCard {
		if v := p.Details["cardNumber"]; v != "" && !cardNumberRe.MatchString(strings.ReplaceAll(v, " ", "")) {
			errs["cardNumber"] = "Invalid card number"
		}
		if v := p.Details["expiryDate"]; v != "" && !expiryRe.MatchString(v) {
			errs["expiryDate"] = "Invalid expiry date (MM/YY)"
		}
		if v := p.Details["cvv"]; v != "" && !cvvRe.MatchString(v) {
			errs["cvv"] = "Invalid CVV"
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SplitFare derives the printed breakdown from a committed total: a 2.5%
// service fee and 5% tax are considered folded into the amount the user
// saw, so the components always sum back to the total exactly.
func SplitFare(total int64) (baseFare, serviceFee, tax int64) {
	baseFare = total * 1000 / 1075
	tax = baseFare * 5 / 100
	serviceFee = total - baseFare - tax
	return baseFare, serviceFee, tax
}

func stepConflict(expected string, got State) error {
	return domain.ConflictError{
		Resource: "session",
		Msg:      fmt.Sprintf("operation belongs to the %s step (current: %s)", expected, got),
	}
}
