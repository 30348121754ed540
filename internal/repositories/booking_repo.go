package repositories

import (
	"sort"
	"strings"
	"sync"

	"busbook/internal/domain"
	"busbook/internal/domain/models"
	"busbook/internal/utils"
)

// BookingRepository is the append-only collection of committed bookings.
// It is authoritative in memory; when a Store is attached, committed rows
// are mirrored there and loaded back on startup. Records are never deleted,
// cancellation only flips the status.
type BookingRepository struct {
	Store *BookingStore

	mu       sync.Mutex
	bookings []models.Booking // insertion order
}

// NewBookingRepository builds a repository, warming from the durable store
// when one is configured.
func NewBookingRepository(store *BookingStore) (*BookingRepository, error) {
	r := &BookingRepository{Store: store}
	if store != nil {
		loaded, err := store.LoadAll()
		if err != nil {
			return nil, domain.InternalError{Msg: "failed to warm booking repository", Err: err}
		}
		r.bookings = loaded
	}
	return r, nil
}

// Append adds a committed booking. The in-memory record is kept even when
// the durable mirror fails; the store error is surfaced so the caller can
// show a banner without losing the booking.
func (r *BookingRepository) Append(b models.Booking) error {
	r.mu.Lock()
	r.bookings = append(r.bookings, b)
	r.mu.Unlock()

	if r.Store != nil {
		if err := r.Store.Insert(b); err != nil {
			return domain.InternalError{Msg: "booking saved in session only", Err: domain.ErrRepositoryUnavailable}
		}
	}
	return nil
}

// Get returns the booking with the given reference.
func (r *BookingRepository) Get(reference string) (models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.Reference == reference {
			return b, nil
		}
	}
	return models.Booking{}, domain.NotFoundError{Resource: "booking"}
}

// List applies the query criteria: free-text search OR'd over route cities,
// reference and operator; status and inclusive travel-date range filters; a
// stable single-field sort; then 1-based pagination with totals computed
// from the filtered (pre-pagination) set.
func (r *BookingRepository) List(q models.BookingQuery) ([]models.Booking, domain.Pagination, error) {
	filtered := r.filter(q)
	sortBookings(filtered, q.SortBy, q.Order)

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 5
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	totalItems := len(filtered)
	totalPages := (totalItems + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > totalItems {
		start = totalItems
	}
	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}

	pagination := domain.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
	return filtered[start:end], pagination, nil
}

// Stats summarizes the filtered (pre-pagination) set by status.
func (r *BookingRepository) Stats(q models.BookingQuery) models.BookingStats {
	filtered := r.filter(q)
	stats := models.BookingStats{Total: len(filtered)}
	for _, b := range filtered {
		switch b.Status {
		case models.StatusConfirmed:
			stats.Active++
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats
}

// Cancel transitions a confirmed booking to cancelled, recording the reason
// as an audit note. Any other current status is a no-op surfaced as an
// invalid transition.
func (r *BookingRepository) Cancel(reference, reason string) (models.Booking, error) {
	if strings.TrimSpace(reason) == "" {
		return models.Booking{}, domain.ValidationError{Field: "reason", Msg: "cancellation reason is required"}
	}

	r.mu.Lock()
	idx := -1
	for i, b := range r.bookings {
		if b.Reference == reference {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if r.bookings[idx].Status != models.StatusConfirmed {
		b := r.bookings[idx]
		r.mu.Unlock()
		return b, domain.ConflictError{
			Resource: "booking",
			Msg:      "only confirmed bookings can be cancelled",
			Err:      domain.ErrInvalidStatusTransition,
		}
	}

	now := utils.NowUTC()
	r.bookings[idx].Status = models.StatusCancelled
	r.bookings[idx].CancelReason = strings.TrimSpace(reason)
	r.bookings[idx].UpdatedAt = now
	updated := r.bookings[idx]
	r.mu.Unlock()

	if r.Store != nil {
		if err := r.Store.MarkCancelled(reference, updated.CancelReason, now); err != nil {
			return updated, domain.InternalError{Msg: "cancellation saved in session only", Err: domain.ErrRepositoryUnavailable}
		}
	}
	return updated, nil
}

func (r *BookingRepository) filter(q models.BookingQuery) []models.Booking {
	r.mu.Lock()
	snapshot := make([]models.Booking, len(r.bookings))
	copy(snapshot, r.bookings)
	r.mu.Unlock()

	search := strings.ToLower(utils.NormalizeSpace(q.Search))
	status := strings.ToLower(strings.TrimSpace(q.Status))

	out := snapshot[:0]
	for _, b := range snapshot {
		if search != "" && !matchesSearch(b, search) {
			continue
		}
		if status != "" && status != "all" && string(b.Status) != status {
			continue
		}
		if !matchesDateRange(b.Date, q.StartDate, q.EndDate) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesSearch(b models.Booking, search string) bool {
	return strings.Contains(strings.ToLower(b.From), search) ||
		strings.Contains(strings.ToLower(b.To), search) ||
		strings.Contains(strings.ToLower(b.Reference), search) ||
		strings.Contains(strings.ToLower(b.BusOperator), search)
}

func matchesDateRange(date, start, end string) bool {
	d, err := utils.ParseDate(date)
	if err != nil {
		// Unparseable travel dates only match unbounded queries.
		return start == "" && end == ""
	}
	if start != "" {
		if s, err := utils.ParseDate(start); err == nil && d.Before(s) {
			return false
		}
	}
	if end != "" {
		if e, err := utils.ParseDate(end); err == nil && d.After(e) {
			return false
		}
	}
	return true
}

// sortBookings sorts in place. The sort is stable so ties keep their
// original insertion order.
func sortBookings(bookings []models.Booking, sortBy, order string) {
	if sortBy == "" {
		sortBy = "date"
	}
	desc := strings.ToLower(order) == "desc" || order == ""

	less := func(a, b models.Booking) bool { return a.Date < b.Date }
	switch sortBy {
	case "amount":
		less = func(a, b models.Booking) bool { return a.TotalAmount < b.TotalAmount }
	case "status":
		less = func(a, b models.Booking) bool { return a.Status < b.Status }
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		if desc {
			return less(bookings[j], bookings[i])
		}
		return less(bookings[i], bookings[j])
	})
}
