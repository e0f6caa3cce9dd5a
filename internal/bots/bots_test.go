package bots

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/GOAT858/Bid2Win/internal/engine"
	"github.com/GOAT858/Bid2Win/internal/oracle"
)

func TestBotSelfPlayManySeeds(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		if err := runBotSelfPlay(engine.ClassicPreset(), seed, 800); err != nil {
			t.Fatalf("bot self-play failed: %v", err)
		}
	}
}

func TestBotSelfPlayAllSeatCounts(t *testing.T) {
	for seats := 2; seats <= 10; seats++ {
		rules := engine.ClassicPreset()
		rules.Seats = seats
		for seed := int64(1); seed <= 25; seed++ {
			if err := runBotSelfPlay(rules, seed, 1000); err != nil {
				t.Fatalf("bot self-play failed with %d seats: %v", seats, err)
			}
		}
	}
}

func FuzzBotSelfPlay(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(42))
	f.Add(int64(20260828))
	f.Fuzz(func(t *testing.T, seed int64) {
		if err := runBotSelfPlay(engine.ClassicPreset(), seed, 800); err != nil {
			t.Fatalf("bot self-play failed: %v", err)
		}
	})
}

// runBotSelfPlay drives every seat with a HeuristicBot and fails if any
// bot action is rejected or the round does not terminate.
func runBotSelfPlay(rules engine.Rules, seed int64, maxSteps int) error {
	names := make([]string, rules.Seats)
	players := map[int]Bot{}
	for i := range names {
		names[i] = fmt.Sprintf("bot%d", i)
		players[i] = NewHeuristic(seed + int64(i)*10)
	}
	g := engine.NewGame(rules, names, 0, seed)

	for step := 0; step < maxSteps; step++ {
		if g.Status == engine.StatusGameOver {
			return nil
		}
		seat, ok := engine.CurrentSeat(g)
		if !ok {
			return fmt.Errorf("seed=%d step=%d: no current seat", seed, step)
		}
		action := players[seat].ChooseAction(g, seat)
		if err := engine.ApplyAction(g, seat, action); err != nil {
			return fmt.Errorf("seed=%d step=%d seat=%d status=%v: bot chose illegal action %v: %w",
				seed, step, seat, g.Status, action, err)
		}
	}
	return fmt.Errorf("seed=%d: round did not terminate in %d steps", seed, maxSteps)
}

func TestBidHeuristicRespectsCeiling(t *testing.T) {
	g := engine.NewGame(engine.ClassicPreset(), []string{"a", "b", "c", "d"}, 0, 3)
	g.Players[0].Hand = heartsHand(engine.RankA, engine.RankK, engine.RankQ, engine.Rank4)
	g.HighestBid = g.Rules.BotBidCeiling

	a := bidByHeuristic(g, 0)
	if a.Bid != 0 {
		t.Fatalf("bot must pass at the ceiling, bid %d", a.Bid)
	}

	g.HighestBid = 120
	a = bidByHeuristic(g, 0)
	if a.Bid != 130 {
		t.Fatalf("expected a raise to 130, got %d", a.Bid)
	}

	g.HighestBid = 0
	a = bidByHeuristic(g, 0)
	if a.Bid != g.Rules.BidMin {
		t.Fatalf("opening raise must start at the minimum, got %d", a.Bid)
	}
}

func TestBidHeuristicPassesOnWeakHand(t *testing.T) {
	g := engine.NewGame(engine.ClassicPreset(), []string{"a", "b", "c", "d"}, 0, 3)
	g.Players[0].Hand = heartsHand(engine.Rank4, engine.Rank5, engine.Rank6, engine.Rank7)

	if a := bidByHeuristic(g, 0); a.Bid != 0 {
		t.Fatalf("weak hand must pass, bid %d", a.Bid)
	}
}

// heartsHand builds an all-hearts hand for the bid heuristic tests.
func heartsHand(ranks ...engine.Rank) []engine.Card {
	out := make([]engine.Card, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, engine.Card{Suit: engine.SuitHearts, Rank: r})
	}
	return out
}

func TestPartnerPickSkipsSelected(t *testing.T) {
	rules := engine.ClassicPreset()
	rules.Seats = 10
	names := make([]string, 10)
	for i := range names {
		names[i] = fmt.Sprintf("bot%d", i)
	}
	g := engine.NewGame(rules, names, 0, 5)
	g.Status = engine.StatusChoosePartner
	g.HighestBidder = 0
	g.Current = 0

	bot := NewHeuristic(9)
	for i := 0; i < rules.PartnersNeeded(); i++ {
		a := bot.ChooseAction(g, 0)
		if err := engine.ApplyAction(g, 0, a); err != nil {
			t.Fatalf("partner pick %d rejected: %v", i, err)
		}
	}
	if len(g.PartnerCardIDs) != rules.PartnersNeeded() {
		t.Fatalf("expected %d partners, got %d", rules.PartnersNeeded(), len(g.PartnerCardIDs))
	}
}

type stubAdvisor struct {
	cardID string
	bid    int
	err    error
}

func (s stubAdvisor) SuggestCard(ctx context.Context, in oracle.SuggestInput) (string, error) {
	return s.cardID, s.err
}

func (s stubAdvisor) SuggestBid(ctx context.Context, hand []string) (int, error) {
	return s.bid, s.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func playingGame() *engine.Game {
	g := engine.NewGame(engine.ClassicPreset(), []string{"a", "b", "c", "d"}, 0, 1)
	g.Status = engine.StatusPlaying
	trump := engine.SuitSpades
	g.Trump = &trump
	g.HighestBid = 120
	g.HighestBidder = 0
	g.Current = 0
	return g
}

func TestAdvisedBotUsesLegalSuggestion(t *testing.T) {
	g := playingGame()
	want := g.Players[0].Hand[2]
	bot := NewAdvised(NewHeuristic(1), stubAdvisor{cardID: want.ID()}, time.Second, discard())

	a := bot.ChooseAction(g, 0)
	if a.Type != engine.ActionPlayCard || a.Card == nil || *a.Card != want {
		t.Fatalf("expected suggested card %v, got %v", want, a)
	}
}

func TestAdvisedBotFallsBackOnError(t *testing.T) {
	g := playingGame()
	bot := NewAdvised(NewHeuristic(1), stubAdvisor{err: errors.New("oracle down")}, time.Second, discard())

	a := bot.ChooseAction(g, 0)
	if err := engine.ApplyAction(g, 0, a); err != nil {
		t.Fatalf("fallback action must be legal: %v", err)
	}
}

func TestAdvisedBotFallsBackOnIllegalSuggestion(t *testing.T) {
	g := playingGame()
	bot := NewAdvised(NewHeuristic(1), stubAdvisor{cardID: "A-NOWHERE"}, time.Second, discard())

	a := bot.ChooseAction(g, 0)
	if err := engine.ApplyAction(g, 0, a); err != nil {
		t.Fatalf("fallback action must be legal: %v", err)
	}
}

func TestAdvisedBotFallsBackOnBadBid(t *testing.T) {
	g := engine.NewGame(engine.ClassicPreset(), []string{"a", "b", "c", "d"}, 0, 1)
	bot := NewAdvised(NewHeuristic(1), stubAdvisor{bid: 7}, time.Second, discard())

	a := bot.ChooseAction(g, 0)
	if err := engine.ApplyAction(g, 0, a); err != nil {
		t.Fatalf("fallback action must be legal: %v", err)
	}
}
