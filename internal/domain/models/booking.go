package models

import "time"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type IDType string

const (
	IDTypeAadhar   IDType = "aadhar"
	IDTypePAN      IDType = "pan"
	IDTypePassport IDType = "passport"
	IDTypeDriving  IDType = "driving"
)

// Passenger holds per-seat traveller details collected in the booking flow.
// One passenger per selected seat.
type Passenger struct {
	SeatNumber string `json:"seatNumber"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     Gender `json:"gender"`
	IDType     IDType `json:"idType"`
	IDNumber   string `json:"idNumber"`
}

type ContactDetails struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Booking is a committed booking record. It is never deleted; cancellation
// only flips the status.
type Booking struct {
	Reference     string         `json:"id"`
	BusID         string         `json:"busId"`
	From          string         `json:"from"`
	To            string         `json:"to"`
	Date          string         `json:"date"` // travel date, YYYY-MM-DD
	DepartureTime string         `json:"departureTime"`
	ArrivalTime   string         `json:"arrivalTime"`
	BusOperator   string         `json:"busOperator"`
	BusType       string         `json:"busType"`
	SeatNumbers   []string       `json:"seatNumbers"`
	Passengers    []Passenger    `json:"passengerDetails"`
	Contact       ContactDetails `json:"contactDetails"`
	PaymentMethod PaymentMethod  `json:"paymentMethod"`
	BaseFare      int64          `json:"baseFare"`
	ServiceFee    int64          `json:"serviceFee"`
	Tax           int64          `json:"tax"`
	TotalAmount   int64          `json:"totalAmount"`
	FarePolicy    string         `json:"farePolicy"`
	Status        BookingStatus  `json:"status"`
	CancelReason  string         `json:"cancelReason,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// BookingQuery is the ephemeral read-side criteria for listing bookings.
type BookingQuery struct {
	Search    string // free text over from/to/reference/operator
	Status    string // "", "all" or a BookingStatus value
	StartDate string // inclusive, YYYY-MM-DD
	EndDate   string // inclusive, YYYY-MM-DD
	SortBy    string // date | amount | status
	Order     string // asc | desc
	Page      int    // 1-based
	PageSize  int
}

// BookingStats summarizes a booking set by status.
type BookingStats struct {
	Total     int `json:"totalBookings"`
	Active    int `json:"activeBookings"`
	Completed int `json:"completedBookings"`
	Cancelled int `json:"cancelledBookings"`
}
