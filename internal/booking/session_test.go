package booking

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"busbook/internal/domain"
	"busbook/internal/domain/models"
)

// seaterSnapshot builds a deterministic 40-seat single-deck inventory with
// roughly a third of the seats taken. L01 is always available.
func seaterSnapshot(basePrice int64) models.InventorySnapshot {
	seats := make([]models.Seat, 0, 40)
	for i := 1; i <= 40; i++ {
		seats = append(seats, models.Seat{
			ID:       fmt.Sprintf("lower-%d", i),
			Number:   fmt.Sprintf("L%02d", i),
			IsBooked: i%3 == 0,
			Price:    basePrice,
			Class:    models.ClassSeater,
			Deck:     models.DeckLower,
		})
	}
	return models.InventorySnapshot{
		BusID:       "bus-1",
		Seed:        1,
		GeneratedAt: time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC),
		Seats:       seats,
	}
}

func testJourney() Journey {
	return Journey{
		BusID:         "bus-1",
		From:          "Bangalore",
		To:            "Mysore",
		Date:          "2024-03-24",
		DepartureTime: "10:00 PM",
		ArrivalTime:   "6:00 AM",
		Operator:      "VRL Travels",
		BusType:       "AC Seater",
	}
}

func janePassenger() models.Passenger {
	return models.Passenger{
		SeatNumber: "L01",
		Name:       "Jane",
		Age:        29,
		Gender:     models.GenderFemale,
		IDType:     models.IDTypeAadhar,
		IDNumber:   "1234",
	}
}

func TestSessionHappyPath(t *testing.T) {
	const basePrice = 800
	s := NewSession("sess-1", testJourney(), seaterSnapshot(basePrice), 6, SeatSumFare{})

	if err := s.ToggleSeat("lower-1"); err != nil {
		t.Fatalf("toggle L01: %v", err)
	}
	if err := s.ConfirmSeats(); err != nil {
		t.Fatalf("confirm seats: %v", err)
	}
	if s.State() != StatePassengerDetails {
		t.Fatalf("state after confirm = %s", s.State())
	}

	if err := s.SubmitPassengers([]models.Passenger{janePassenger()}); err != nil {
		t.Fatalf("submit passengers: %v", err)
	}
	if s.State() != StatePayment {
		t.Fatalf("state after passengers = %s", s.State())
	}

	b, err := s.SubmitPayment(
		models.PaymentDetails{Method: models.MethodUPI, Details: map[string]string{"upiId": "jane@upi"}},
		models.ContactDetails{Email: "jane@example.com", Phone: "9876543210"},
		"BOOK123",
	)
	if err != nil {
		t.Fatalf("submit payment: %v", err)
	}

	if s.State() != StateCommitted {
		t.Fatalf("state after payment = %s", s.State())
	}
	if len(b.SeatNumbers) != 1 || b.SeatNumbers[0] != "L01" {
		t.Fatalf("seat numbers = %v, want [L01]", b.SeatNumbers)
	}
	if b.TotalAmount != basePrice {
		t.Fatalf("total = %d, want base price %d", b.TotalAmount, basePrice)
	}
	if b.Status != models.StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", b.Status)
	}
	if len(b.Passengers) != len(b.SeatNumbers) {
		t.Fatalf("passenger count %d != seat count %d", len(b.Passengers), len(b.SeatNumbers))
	}
	if b.BaseFare+b.ServiceFee+b.Tax != b.TotalAmount {
		t.Fatalf("fare breakdown does not sum to total")
	}
}

func TestConfirmWithEmptySelection(t *testing.T) {
	s := NewSession("sess-2", testJourney(), seaterSnapshot(800), 6, SeatSumFare{})

	err := s.ConfirmSeats()
	if !errors.Is(err, domain.ErrNoSeatsSelected) {
		t.Fatalf("empty confirm should fail with NoSeatsSelected, got %v", err)
	}
	if s.State() != StateSeatSelection {
		t.Fatalf("failed confirm must not advance, state = %s", s.State())
	}
}

func TestInvalidAgeBlocksTransition(t *testing.T) {
	s := NewSession("sess-3", testJourney(), seaterSnapshot(800), 6, SeatSumFare{})
	if err := s.ToggleSeat("lower-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.ConfirmSeats(); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	p := janePassenger()
	p.Age = 150
	err := s.SubmitPassengers([]models.Passenger{p})

	fieldErrs, ok := domain.IsFieldErrors(err)
	if !ok {
		t.Fatalf("expected field errors, got %v", err)
	}
	if _, ok := fieldErrs["age-0"]; !ok {
		t.Fatalf("expected age-0 error, got %v", fieldErrs)
	}
	if s.State() != StatePassengerDetails {
		t.Fatalf("failed validation must not advance, state = %s", s.State())
	}
}

func TestDuplicateSeatAssignmentRejected(t *testing.T) {
	s := NewSession("sess-8", testJourney(), seaterSnapshot(800), 6, SeatSumFare{})
	for _, id := range []string{"lower-1", "lower-2"} {
		if err := s.ToggleSeat(id); err != nil {
			t.Fatalf("toggle %s: %v", id, err)
		}
	}
	if err := s.ConfirmSeats(); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// Both passengers claim L01; L02 goes unclaimed.
	p1, p2 := janePassenger(), janePassenger()
	p2.Name = "Ravi"
	err := s.SubmitPassengers([]models.Passenger{p1, p2})

	fieldErrs, ok := domain.IsFieldErrors(err)
	if !ok {
		t.Fatalf("expected field errors, got %v", err)
	}
	if _, ok := fieldErrs["seatNumber-1"]; !ok {
		t.Fatalf("expected seatNumber-1 error, got %v", fieldErrs)
	}
	if s.State() != StatePassengerDetails {
		t.Fatalf("duplicate assignment must not advance, state = %s", s.State())
	}

	// Correcting the assignment clears the error and advances.
	p2.SeatNumber = "L02"
	if err := s.SubmitPassengers([]models.Passenger{p1, p2}); err != nil {
		t.Fatalf("distinct assignments should pass: %v", err)
	}
	if s.State() != StatePayment {
		t.Fatalf("state after correction = %s", s.State())
	}
}

func TestBackPreservesData(t *testing.T) {
	s := NewSession("sess-4", testJourney(), seaterSnapshot(800), 6, SeatSumFare{})
	for _, id := range []string{"lower-1", "lower-2"} {
		if err := s.ToggleSeat(id); err != nil {
			t.Fatalf("toggle %s: %v", id, err)
		}
	}
	if err := s.ConfirmSeats(); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	p1, p2 := janePassenger(), janePassenger()
	p2.SeatNumber = "L02"
	p2.Name = "Ravi"
	if err := s.SubmitPassengers([]models.Passenger{p1, p2}); err != nil {
		t.Fatalf("passengers: %v", err)
	}

	if err := s.Back(); err != nil {
		t.Fatalf("back to passenger details: %v", err)
	}
	if s.State() != StatePassengerDetails {
		t.Fatalf("state = %s, want passenger_details", s.State())
	}
	got := s.Passengers()
	if len(got) != 2 || got[0].Name != "Jane" || got[1].Name != "Ravi" {
		t.Fatalf("passenger data lost on back: %+v", got)
	}

	if err := s.Back(); err != nil {
		t.Fatalf("back to seat selection: %v", err)
	}
	if s.Selection.Count() != 2 {
		t.Fatalf("selection lost on back, count = %d", s.Selection.Count())
	}
	if err := s.ConfirmSeats(); err != nil {
		t.Fatalf("re-confirm after back: %v", err)
	}
}

func TestCardValidation(t *testing.T) {
	s := NewSession("sess-5", testJourney(), seaterSnapshot(800), 6, SeatSumFare{})
	if err := s.ToggleSeat("lower-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.ConfirmSeats(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := s.SubmitPassengers([]models.Passenger{janePassenger()}); err != nil {
		t.Fatalf("passengers: %v", err)
	}

	_, err := s.SubmitPayment(models.PaymentDetails{
		Method: models.MethodCard,
		Details: map[string]string{
			"cardNumber": "1234",
			"expiryDate": "13/99",
			"cvv":        "12",
			"name":       "Jane",
		},
	}, models.ContactDetails{}, "BOOK124")

	fieldErrs, ok := domain.IsFieldErrors(err)
	if !ok {
		t.Fatalf("expected field errors, got %v", err)
	}
	for _, f := range []string{"cardNumber", "expiryDate", "cvv"} {
		if _, ok := fieldErrs[f]; !ok {
			t.Fatalf("expected %s error, got %v", f, fieldErrs)
		}
	}
	if s.State() != StatePayment {
		t.Fatalf("failed payment must not commit, state = %s", s.State())
	}
}

type declineAll struct{}

func (declineAll) Authorize(int64, models.PaymentMethod, map[string]string) error {
	return errors.New("insufficient funds")
}

func TestDeclinedAuthorizationDoesNotCommit(t *testing.T) {
	s := NewSession("sess-6", testJourney(), seaterSnapshot(800), 6, SeatSumFare{})
	s.Auth = declineAll{}
	if err := s.ToggleSeat("lower-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.ConfirmSeats(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := s.SubmitPassengers([]models.Passenger{janePassenger()}); err != nil {
		t.Fatalf("passengers: %v", err)
	}

	_, err := s.SubmitPayment(
		models.PaymentDetails{Method: models.MethodUPI, Details: map[string]string{"upiId": "jane@upi"}},
		models.ContactDetails{}, "BOOK125",
	)
	if !domain.IsConflict(err) {
		t.Fatalf("declined authorization should surface as conflict, got %v", err)
	}
	if s.State() != StatePayment || s.Committed() != nil {
		t.Fatalf("declined payment must leave the session on the payment step")
	}
}

func TestToggleAfterConfirmRejected(t *testing.T) {
	s := NewSession("sess-7", testJourney(), seaterSnapshot(800), 6, SeatSumFare{})
	if err := s.ToggleSeat("lower-1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.ConfirmSeats(); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := s.ToggleSeat("lower-2"); !domain.IsConflict(err) {
		t.Fatalf("toggling outside the seat step should conflict, got %v", err)
	}
}
