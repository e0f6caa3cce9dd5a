package engine_test

import (
	"testing"

	"github.com/GOAT858/Bid2Win/internal/engine"
	"github.com/GOAT858/Bid2Win/internal/engine/sim"
)

func TestSelfPlayManySeeds(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		if err := sim.RunSelfPlayRound(engine.ClassicPreset(), seed, 500); err != nil {
			t.Fatalf("self-play failed: %v", err)
		}
	}
}

func TestSelfPlayAllSeatCounts(t *testing.T) {
	for seats := 2; seats <= 10; seats++ {
		rules := engine.ClassicPreset()
		rules.Seats = seats
		for seed := int64(1); seed <= 25; seed++ {
			if err := sim.RunSelfPlayRound(rules, seed, 800); err != nil {
				t.Fatalf("self-play failed with %d seats: %v", seats, err)
			}
		}
	}
}

func FuzzSelfPlayRound(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(42))
	f.Add(int64(20260828))
	f.Fuzz(func(t *testing.T, seed int64) {
		if err := sim.RunSelfPlayRound(engine.ClassicPreset(), seed, 500); err != nil {
			t.Fatalf("self-play failed: %v", err)
		}
	})
}
