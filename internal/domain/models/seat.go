package models

import "time"

type Deck string

const (
	DeckLower Deck = "lower"
	DeckUpper Deck = "upper"
)

type SeatClass string

const (
	ClassSeater  SeatClass = "seater"
	ClassSleeper SeatClass = "sleeper"
)

// Seat is one berth/chair in a generated inventory. Occupancy is fixed at
// generation time and never mutated within a snapshot.
type Seat struct {
	ID       string    `json:"id"`
	Number   string    `json:"number"`
	IsBooked bool      `json:"isBooked"`
	Price    int64     `json:"price"`
	Class    SeatClass `json:"class"`
	Deck     Deck      `json:"deck"`
}

// InventorySnapshot is one simulated inventory generation for a bus.
// Re-generating produces a new snapshot with a new occupancy pattern; seat
// availability is not durable or shared across snapshots.
type InventorySnapshot struct {
	BusID       string    `json:"busId"`
	Seed        int64     `json:"seed"`
	GeneratedAt time.Time `json:"generatedAt"`
	Seats       []Seat    `json:"seats"`
}

// SeatByID returns the seat with the given id, if present.
func (s InventorySnapshot) SeatByID(id string) (Seat, bool) {
	for _, seat := range s.Seats {
		if seat.ID == id {
			return seat, true
		}
	}
	return Seat{}, false
}

// SeatByNumber returns the seat with the given display number, if present.
func (s InventorySnapshot) SeatByNumber(number string) (Seat, bool) {
	for _, seat := range s.Seats {
		if seat.Number == number {
			return seat, true
		}
	}
	return Seat{}, false
}
