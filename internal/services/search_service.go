package services

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"busbook/internal/domain"
	"busbook/internal/utils"
)

// Schedule and operator pools for the simulated search results. There is no
// live GDS behind this service; results are generated per query.
var (
	searchOperators = []string{
		"VRL Travels", "SRS Travels", "Orange Tours", "KPN Travels", "Parveen Travels",
	}
	searchBusTypes = []string{
		"AC Sleeper", "Non-AC Sleeper", "AC Seater", "Non-AC Seater",
	}
	searchSlots = []struct{ depart, arrive string }{
		{"6:00 AM", "12:30 PM"},
		{"9:30 AM", "4:00 PM"},
		{"2:00 PM", "8:45 PM"},
		{"6:30 PM", "11:55 PM"},
		{"10:00 PM", "6:00 AM"},
	}
)

const (
	nonACBasePrice  = 800
	acBasePrice     = 1200
	sleeperPremium  = 300
	priceJitterSpan = 200

	// Probability that a given operator/type pairing runs on the queried
	// route that day.
	busPresenceChance = 0.5
)

// BusResult is one entry in a simulated search result set.
type BusResult struct {
	BusID         string  `json:"busId"`
	Operator      string  `json:"busOperator"`
	BusType       string  `json:"busType"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	Date          string  `json:"date"`
	DepartureTime string  `json:"departureTime"`
	ArrivalTime   string  `json:"arrivalTime"`
	Duration      string  `json:"duration"`
	BasePrice     int64   `json:"basePrice"`
	Rating        float64 `json:"rating"`
	SeatsLeft     int     `json:"seatsLeft"`
}

// SearchQuery carries the route plus optional result filters.
type SearchQuery struct {
	From     string
	To       string
	Date     string
	BusType  string // optional, matches the result's type exactly
	Operator string // optional, case-insensitive substring
	ACOnly   bool
	MinFare  int64 // 0 means unbounded
	MaxFare  int64 // 0 means unbounded

	// Departure window, 12-hour clock ("6:00 AM"). Empty bounds are open.
	DepartAfter  string
	DepartBefore string
}

// SearchService simulates a bus search. The same query on the same day
// returns the same buses, so a result can be booked after a re-query.
type SearchService struct {
	RequestID string
}

// Search validates the query and generates the matching bus list.
func (s SearchService) Search(q SearchQuery) ([]BusResult, error) {
	from := utils.NormalizeSpace(q.From)
	to := utils.NormalizeSpace(q.To)
	if from == "" {
		return nil, domain.ValidationError{Field: "from", Msg: "departure city is required"}
	}
	if to == "" {
		return nil, domain.ValidationError{Field: "to", Msg: "destination city is required"}
	}
	if strings.EqualFold(from, to) {
		return nil, domain.ValidationError{Field: "to", Msg: "destination must differ from departure"}
	}
	date := strings.TrimSpace(q.Date)
	if date == "" {
		date = utils.FormatDate(utils.NowUTC())
	} else if _, err := utils.ParseDate(date); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "date must be YYYY-MM-DD", Err: err}
	}

	rng := rand.New(rand.NewSource(querySeed(from, to, date)))

	var results []BusResult
	n := 0
	for _, op := range searchOperators {
		for _, busType := range searchBusTypes {
			present := rng.Float64() < busPresenceChance
			slot := searchSlots[rng.Intn(len(searchSlots))]
			price := simulatedPrice(busType, rng.Int63n(priceJitterSpan+1))
			rating := 3.5 + rng.Float64()*1.5
			seatsLeft := 4 + rng.Intn(20)
			if !present {
				continue
			}
			n++
			results = append(results, BusResult{
				BusID:         fmt.Sprintf("bus-%s-%d", date, n),
				Operator:      op,
				BusType:       busType,
				From:          from,
				To:            to,
				Date:          date,
				DepartureTime: slot.depart,
				ArrivalTime:   slot.arrive,
				Duration:      utils.CalculateDuration(slot.depart, slot.arrive),
				BasePrice:     price,
				Rating:        float64(int(rating*10)) / 10,
				SeatsLeft:     seatsLeft,
			})
		}
	}

	window, err := departureWindow(q.DepartAfter, q.DepartBefore)
	if err != nil {
		return nil, err
	}

	filtered := results[:0]
	for _, r := range results {
		if q.BusType != "" && !strings.EqualFold(r.BusType, q.BusType) {
			continue
		}
		if q.Operator != "" && !strings.Contains(strings.ToLower(r.Operator), strings.ToLower(q.Operator)) {
			continue
		}
		if q.ACOnly && !IsACBusType(r.BusType) {
			continue
		}
		if q.MinFare > 0 && r.BasePrice < q.MinFare {
			continue
		}
		if q.MaxFare > 0 && r.BasePrice > q.MaxFare {
			continue
		}
		if !window.contains(r.DepartureTime) {
			continue
		}
		filtered = append(filtered, r)
	}

	utils.LogEvent(s.RequestID, "search", "query",
		fmt.Sprintf("from=%s to=%s date=%s results=%d", from, to, date, len(filtered)))
	return filtered, nil
}

// BasePriceFor returns the undiscounted per-seat price used when a session
// is opened without a search result to copy it from.
func BasePriceFor(busType string) int64 {
	return simulatedPrice(busType, 0)
}

// IsACBusType reports whether a bus type string names an air-conditioned
// coach. "Non-AC" variants contain "ac" as a substring, so the negative
// form is checked first.
func IsACBusType(busType string) bool {
	lower := strings.ToLower(busType)
	if strings.Contains(lower, "non-ac") || strings.Contains(lower, "non ac") {
		return false
	}
	return strings.Contains(lower, "ac")
}

func simulatedPrice(busType string, jitter int64) int64 {
	price := int64(nonACBasePrice)
	if IsACBusType(busType) {
		price = acBasePrice
	}
	if strings.Contains(strings.ToLower(busType), "sleeper") {
		price += sleeperPremium
	}
	return price + jitter
}

type clockWindow struct {
	after, before int
	hasAfter      bool
	hasBefore     bool
}

func departureWindow(after, before string) (clockWindow, error) {
	var w clockWindow
	if s := strings.TrimSpace(after); s != "" {
		m, err := utils.ClockMinutes(s)
		if err != nil {
			return w, domain.ValidationError{Field: "departAfter", Msg: "time must look like 6:00 AM", Err: err}
		}
		w.after, w.hasAfter = m, true
	}
	if s := strings.TrimSpace(before); s != "" {
		m, err := utils.ClockMinutes(s)
		if err != nil {
			return w, domain.ValidationError{Field: "departBefore", Msg: "time must look like 6:00 AM", Err: err}
		}
		w.before, w.hasBefore = m, true
	}
	return w, nil
}

func (w clockWindow) contains(departure string) bool {
	if !w.hasAfter && !w.hasBefore {
		return true
	}
	m, err := utils.ClockMinutes(departure)
	if err != nil {
		return false
	}
	if w.hasAfter && m < w.after {
		return false
	}
	if w.hasBefore && m > w.before {
		return false
	}
	return true
}

// querySeed makes results stable per route+date while a different day or
// route rolls a new timetable.
func querySeed(from, to, date string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s", strings.ToLower(from), strings.ToLower(to), date)
	return int64(h.Sum64())
}
