package services

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"busbook/internal/booking"
	"busbook/internal/domain"
	"busbook/internal/domain/models"
	"busbook/internal/inventory"
	"busbook/internal/repositories"
	"busbook/internal/utils"
)

// BookingService owns the in-flight booking sessions and the committed
// booking collection. Sessions live only in memory; an abandoned session is
// dropped without a trace when the process restarts.
type BookingService struct {
	Repo     *repositories.BookingRepository
	Gen      inventory.Generator
	MaxSeats int
	Now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*booking.Session

	// Stats are recomputed shortly after the last mutation rather than on
	// every write, so a burst of commits rolls up into one pass.
	statsDebounce utils.Debouncer
	statsMu       sync.RWMutex
	cachedStats   models.BookingStats
}

func NewBookingService(repo *repositories.BookingRepository, maxSeats int) *BookingService {
	s := &BookingService{
		Repo:     repo,
		MaxSeats: maxSeats,
		sessions: map[string]*booking.Session{},
	}
	s.recomputeStats()
	return s
}

func (s *BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// OpenSession generates a fresh inventory for the journey and starts a
// booking session on it. farePolicy selects the pricing strategy; empty
// means per-seat pricing.
func (s *BookingService) OpenSession(requestID string, j booking.Journey, farePolicy string) (*booking.Session, error) {
	if strings.TrimSpace(j.From) == "" || strings.TrimSpace(j.To) == "" {
		return nil, domain.ValidationError{Field: "journey", Msg: "route endpoints are required"}
	}
	if _, err := utils.ParseDate(j.Date); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "travel date must be YYYY-MM-DD", Err: err}
	}

	fare, err := resolveFare(farePolicy, j.BusType)
	if err != nil {
		return nil, err
	}

	basePrice := j.BasePrice
	if basePrice <= 0 {
		basePrice = BasePriceFor(j.BusType)
	}
	inv := s.Gen.Generate(j.BusID, j.BusType, basePrice)
	sess := booking.NewSession(newSessionID(), j, inv, s.MaxSeats, fare)
	if s.Now != nil {
		sess.Now = s.Now
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	utils.LogEvent(requestID, "booking", "open_session",
		fmt.Sprintf("session=%s bus=%s route=%s-%s fare=%s", sess.ID, j.BusID, j.From, j.To, fare.Name()))
	return sess, nil
}

// Session returns an open (uncommitted) session by ID.
func (s *BookingService) Session(id string) (*booking.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "booking session"}
	}
	return sess, nil
}

// AbandonSession drops an open session. Nothing is recorded.
func (s *BookingService) AbandonSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// CommitPayment runs the payment step of a session and, on success, appends
// the booking and retires the session. A store mirror failure keeps the
// committed booking and is surfaced to the caller alongside it.
func (s *BookingService) CommitPayment(requestID, sessionID string, p models.PaymentDetails, contact models.ContactDetails) (models.Booking, error) {
	sess, err := s.Session(sessionID)
	if err != nil {
		return models.Booking{}, err
	}

	b, err := sess.SubmitPayment(p, contact, s.newBookingRef())
	if err != nil {
		return models.Booking{}, err
	}

	appendErr := s.Repo.Append(b)

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.scheduleStatsRefresh()
	utils.LogEvent(requestID, "booking", "commit",
		fmt.Sprintf("reference=%s seats=%d total=%d", b.Reference, len(b.SeatNumbers), b.TotalAmount))

	return b, appendErr
}

// List queries committed bookings.
func (s *BookingService) List(q models.BookingQuery) ([]models.Booking, domain.Pagination, error) {
	return s.Repo.List(q)
}

// Get returns one committed booking by reference.
func (s *BookingService) Get(reference string) (models.Booking, error) {
	return s.Repo.Get(reference)
}

// Cancel cancels a confirmed booking with a reason.
func (s *BookingService) Cancel(requestID, reference, reason string) (models.Booking, error) {
	b, err := s.Repo.Cancel(reference, reason)
	if err == nil || domain.IsInternal(err) {
		s.scheduleStatsRefresh()
		utils.LogEvent(requestID, "booking", "cancel", "reference="+reference)
	}
	return b, err
}

// Stats computes status counts for the given filter right away.
func (s *BookingService) Stats(q models.BookingQuery) models.BookingStats {
	return s.Repo.Stats(q)
}

// CachedStats returns the dashboard counters maintained by the debounced
// refresh. They can trail the latest mutation by the debounce delay.
func (s *BookingService) CachedStats() models.BookingStats {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()
	return s.cachedStats
}

// Close stops the pending stats refresh, if any.
func (s *BookingService) Close() {
	s.statsDebounce.Stop()
}

func (s *BookingService) scheduleStatsRefresh() {
	s.statsDebounce.Trigger(s.recomputeStats)
}

func (s *BookingService) recomputeStats() {
	stats := s.Repo.Stats(models.BookingQuery{})
	s.statsMu.Lock()
	s.cachedStats = stats
	s.statsMu.Unlock()
}

// newBookingRef derives a reference from the commit time. Collisions within
// the same millisecond are possible in principle; the random tail narrows
// the window without changing the scheme.
func (s *BookingService) newBookingRef() string {
	return fmt.Sprintf("BOOK%d%03d", s.now().UnixMilli(), rand.Intn(1000))
}

func newSessionID() string {
	return fmt.Sprintf("sess-%d-%d", time.Now().UnixNano(), rand.Intn(1000000))
}

func resolveFare(policy, busType string) (booking.FareStrategy, error) {
	switch strings.TrimSpace(strings.ToLower(policy)) {
	case "", "seat-sum":
		return booking.SeatSumFare{}, nil
	case "flat-rate":
		return booking.StandardFlatRate(), nil
	case "quick-form":
		return booking.QuickFormFlatRate(IsACBusType(busType)), nil
	default:
		return nil, domain.ValidationError{Field: "farePolicy", Msg: "unknown fare policy"}
	}
}
