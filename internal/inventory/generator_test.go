package inventory

import (
	"strings"
	"testing"
	"time"

	"busbook/internal/domain/models"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
}

func TestGenerateSeaterShape(t *testing.T) {
	g := Generator{Seed: 42, Now: fixedNow}
	snap := g.Generate("bus-1", "AC Seater", 800)

	if len(snap.Seats) != 40 {
		t.Fatalf("seater bus should have 40 seats, got %d", len(snap.Seats))
	}

	booked, available := 0, 0
	for _, s := range snap.Seats {
		if s.Deck != models.DeckLower {
			t.Fatalf("seater seat %s on unexpected deck %s", s.ID, s.Deck)
		}
		if s.Class != models.ClassSeater {
			t.Fatalf("seater seat %s has class %s", s.ID, s.Class)
		}
		if s.Price != 800 {
			t.Fatalf("seater seat %s priced %d, want base 800", s.ID, s.Price)
		}
		if s.IsBooked {
			booked++
		} else {
			available++
		}
	}
	if booked+available != 40 {
		t.Fatalf("booked (%d) + available (%d) must equal total 40", booked, available)
	}
}

func TestGenerateSleeperShape(t *testing.T) {
	g := Generator{Seed: 7, Now: fixedNow}
	snap := g.Generate("bus-2", "AC Sleeper", 1200)

	if len(snap.Seats) != 30 {
		t.Fatalf("sleeper bus should have 30 seats, got %d", len(snap.Seats))
	}

	perDeck := map[models.Deck]int{}
	for _, s := range snap.Seats {
		perDeck[s.Deck]++
		switch s.Deck {
		case models.DeckLower:
			if s.Price != 1200 {
				t.Fatalf("lower seat %s priced %d, want 1200", s.ID, s.Price)
			}
			if !strings.HasPrefix(s.Number, "L") {
				t.Fatalf("lower seat numbered %q", s.Number)
			}
		case models.DeckUpper:
			if s.Price != 1250 {
				t.Fatalf("upper seat %s priced %d, want base+premium 1250", s.ID, s.Price)
			}
			if !strings.HasPrefix(s.Number, "U") {
				t.Fatalf("upper seat numbered %q", s.Number)
			}
		}
	}
	if perDeck[models.DeckLower] != 15 || perDeck[models.DeckUpper] != 15 {
		t.Fatalf("decks not split evenly: %v", perDeck)
	}
}

func TestGenerateStableOrder(t *testing.T) {
	g := Generator{Seed: 3, Now: fixedNow}
	snap := g.Generate("bus-3", "Non AC Seater", 500)

	for i, s := range snap.Seats {
		want := "L" + pad2(i+1)
		if s.Number != want {
			t.Fatalf("seat %d numbered %q, want row-major %q", i, s.Number, want)
		}
	}
}

func TestGenerateNewSeedNewSnapshot(t *testing.T) {
	a := Generator{Seed: 1, Now: fixedNow}.Generate("bus-4", "AC Sleeper", 1000)
	b := Generator{Seed: 2, Now: fixedNow}.Generate("bus-4", "AC Sleeper", 1000)

	same := true
	for i := range a.Seats {
		if a.Seats[i].IsBooked != b.Seats[i].IsBooked {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical occupancy patterns")
	}
}

func TestGenerateSameSeedReproducible(t *testing.T) {
	a := Generator{Seed: 99, Now: fixedNow}.Generate("bus-5", "AC Seater", 700)
	b := Generator{Seed: 99, Now: fixedNow}.Generate("bus-5", "AC Seater", 700)

	for i := range a.Seats {
		if a.Seats[i] != b.Seats[i] {
			t.Fatalf("seed 99 not reproducible at seat %d: %+v vs %+v", i, a.Seats[i], b.Seats[i])
		}
	}
}

func pad2(n int) string {
	if n < 10 {
		return "0" + string(rune('0'+n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}
