package booking

import "busbook/internal/domain/models"

// FareStrategy prices a booking. Two policies coexist on purpose: the
// seat-map flow sums individually priced seats, while the quick booking
// form charges a flat per-passenger rate. They must not be merged; doing so
// would silently change prices for one of the flows.
type FareStrategy interface {
	Name() string
	Total(seats []models.Seat, passengerCount int) int64
}

// SeatSumFare totals the individual prices of the selected seats.
type SeatSumFare struct{}

func (SeatSumFare) Name() string { return "seat-sum" }

func (SeatSumFare) Total(seats []models.Seat, _ int) int64 {
	var total int64
	for _, s := range seats {
		total += s.Price
	}
	return total
}

// FlatRateFare charges base price per passenger, scaled by coach and
// distance multipliers. Zero multipliers mean "no adjustment".
type FlatRateFare struct {
	BasePrice          int64
	ACMultiplier       float64
	DistanceMultiplier float64
}

func (FlatRateFare) Name() string { return "flat-rate" }

func (f FlatRateFare) Total(_ []models.Seat, passengerCount int) int64 {
	if passengerCount <= 0 {
		return 0
	}
	perHead := float64(f.BasePrice)
	if f.ACMultiplier > 0 {
		perHead *= f.ACMultiplier
	}
	if f.DistanceMultiplier > 0 {
		perHead *= f.DistanceMultiplier
	}
	return int64(perHead) * int64(passengerCount)
}

// StandardFlatRate is the seat-map page's fallback policy: non-AC base with
// the AC and distance surcharges applied.
func StandardFlatRate() FlatRateFare {
	return FlatRateFare{BasePrice: 800, ACMultiplier: 1.5, DistanceMultiplier: 1.2}
}

// QuickFormFlatRate is the simplified booking-form policy: AC buses charge
// 1000 per passenger, non-AC 800, no further multipliers.
func QuickFormFlatRate(isAC bool) FlatRateFare {
	base := int64(800)
	if isAC {
		base = 1000
	}
	return FlatRateFare{BasePrice: base}
}
