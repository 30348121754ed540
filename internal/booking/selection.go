package booking

import (
	"busbook/internal/domain"
	"busbook/internal/domain/models"
)

// SelectionTracker maintains the set of seats chosen from one inventory
// snapshot. Selection order is preserved so passengers map to seats in the
// order they were picked.
type SelectionTracker struct {
	inventory models.InventorySnapshot
	maxSeats  int
	selected  []string // seat ids, insertion order
}

func NewSelectionTracker(inv models.InventorySnapshot, maxSeats int) *SelectionTracker {
	if maxSeats <= 0 {
		maxSeats = 6
	}
	return &SelectionTracker{inventory: inv, maxSeats: maxSeats}
}

// Toggle flips membership of a seat in the selection. Clicking a booked
// seat is a no-op. Adding beyond the maximum fails and leaves the set
// unchanged.
func (t *SelectionTracker) Toggle(seatID string) error {
	seat, ok := t.inventory.SeatByID(seatID)
	if !ok {
		return domain.NotFoundError{Resource: "seat"}
	}
	if seat.IsBooked {
		return nil
	}

	for i, id := range t.selected {
		if id == seatID {
			t.selected = append(t.selected[:i], t.selected[i+1:]...)
			return nil
		}
	}

	if len(t.selected) >= t.maxSeats {
		return domain.ConflictError{
			Resource: "selection",
			Msg:      "seat selection limit reached",
			Err:      domain.ErrSelectionLimitExceeded,
		}
	}
	t.selected = append(t.selected, seatID)
	return nil
}

// Selected returns the chosen seat ids in selection order.
func (t *SelectionTracker) Selected() []string {
	out := make([]string, len(t.selected))
	copy(out, t.selected)
	return out
}

// Seats resolves the selection to full seat records, selection order.
func (t *SelectionTracker) Seats() []models.Seat {
	out := make([]models.Seat, 0, len(t.selected))
	for _, id := range t.selected {
		if seat, ok := t.inventory.SeatByID(id); ok {
			out = append(out, seat)
		}
	}
	return out
}

// SeatNumbers returns the display numbers of the selection.
func (t *SelectionTracker) SeatNumbers() []string {
	seats := t.Seats()
	out := make([]string, len(seats))
	for i, s := range seats {
		out[i] = s.Number
	}
	return out
}

// Total is the sum of each selected seat's price, recomputed from the
// current set.
func (t *SelectionTracker) Total() int64 {
	var total int64
	for _, s := range t.Seats() {
		total += s.Price
	}
	return total
}

func (t *SelectionTracker) Count() int { return len(t.selected) }
