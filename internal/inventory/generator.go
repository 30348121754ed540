package inventory

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"busbook/internal/domain/models"
)

const (
	sleeperTotalSeats = 30
	seaterTotalSeats  = 40

	// Upper-deck berths carry a fixed premium over the base price.
	upperDeckPremium = 50

	// Probability that a generated seat is already taken. This is a
	// simulated inventory, not a shared reservation store.
	occupancyChance = 0.3
)

// Generator produces simulated seat inventories. The zero value uses the
// wall clock for seeds; tests pin Seed and Now.
type Generator struct {
	Seed int64
	Now  func() time.Time
}

// Generate builds a fresh InventorySnapshot for the given bus. Sleeper
// coaches get two decks of 15 berths each; seater coaches a single deck of
// 40. Seats come out in row-major order (lower deck first, seat number
// ascending) so layouts are deterministic for one snapshot. Every call is a
// new simulated inventory: occupancy is re-rolled, never carried over.
func (g Generator) Generate(busID, busType string, basePrice int64) models.InventorySnapshot {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	seed := g.Seed
	if seed == 0 {
		seed = now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	isSleeper := strings.Contains(strings.ToLower(busType), "sleeper")
	total := seaterTotalSeats
	decks := []models.Deck{models.DeckLower}
	class := models.ClassSeater
	if isSleeper {
		total = sleeperTotalSeats
		decks = []models.Deck{models.DeckLower, models.DeckUpper}
		class = models.ClassSleeper
	}

	perDeck := total / len(decks)
	seats := make([]models.Seat, 0, total)
	for _, deck := range decks {
		prefix := "L"
		price := basePrice
		if deck == models.DeckUpper {
			prefix = "U"
			price = basePrice + upperDeckPremium
		}
		for i := 1; i <= perDeck; i++ {
			seats = append(seats, models.Seat{
				ID:       fmt.Sprintf("%s-%d", deck, i),
				Number:   fmt.Sprintf("%s%02d", prefix, i),
				IsBooked: rng.Float64() < occupancyChance,
				Price:    price,
				Class:    class,
				Deck:     deck,
			})
		}
	}

	return models.InventorySnapshot{
		BusID:       busID,
		Seed:        seed,
		GeneratedAt: now(),
		Seats:       seats,
	}
}
