// Package sim runs whole rounds with scripted players and checks the
// engine invariants after every action. It backs the seed-sweep and fuzz
// tests and is deliberately free of any bot heuristics: every seat just
// takes the first action the rules allow.
package sim

import (
	"fmt"

	"github.com/GOAT858/Bid2Win/internal/engine"
)

type ActionRecord struct {
	Step   int
	Status engine.Status
	Seat   int
	Action engine.Action
}

// RunSelfPlayRound plays one full round from a seeded deal until GAME_OVER
// or the step budget runs out, failing on any invariant violation.
func RunSelfPlayRound(rules engine.Rules, seed int64, maxSteps int) error {
	names := make([]string, rules.Seats)
	for i := range names {
		names[i] = fmt.Sprintf("seat%d", i)
	}
	g := engine.NewGame(rules, names, 0, seed)

	if err := checkInvariants(g); err != nil {
		return fmt.Errorf("seed=%d after deal: %w", seed, err)
	}

	records := []ActionRecord{}
	prevHighestBid := 0
	revealed := map[int]bool{}

	for step := 0; step < maxSteps; step++ {
		if g.Status == engine.StatusGameOver {
			return nil
		}
		seat, ok := engine.CurrentSeat(g)
		if !ok {
			return failure(seed, step, g, records, "no current seat")
		}
		action := scriptedAction(g, seat)
		if err := engine.ApplyAction(g, seat, action); err != nil {
			return failure(seed, step, g, records, fmt.Sprintf("apply error: %v", err))
		}
		records = append(records, ActionRecord{Step: step, Status: g.Status, Seat: seat, Action: action})

		if g.HighestBid < prevHighestBid {
			return failure(seed, step, g, records, "highest bid decreased")
		}
		prevHighestBid = g.HighestBid
		for i, p := range g.Players {
			if revealed[i] && p.Team != engine.TeamBidder {
				return failure(seed, step, g, records, "bidder seat reverted to defender")
			}
			if p.Team == engine.TeamBidder {
				revealed[i] = true
			}
		}
		if err := checkInvariants(g); err != nil {
			return failure(seed, step, g, records, err.Error())
		}
	}
	return failure(seed, maxSteps, g, records, "round did not terminate")
}

// scriptedAction picks the first legal action for the seat: lowest valid
// raise on the first seat, pass elsewhere, first suit for trump, the ace
// walk for partners, first legal card in play.
func scriptedAction(g *engine.Game, seat int) engine.Action {
	switch g.Status {
	case engine.StatusBidding:
		if seat == 0 {
			return engine.Action{Type: engine.ActionBid, Bid: g.Rules.BidMin}
		}
		return engine.Action{Type: engine.ActionBid, Bid: 0}
	case engine.StatusChooseTrump:
		return engine.Action{Type: engine.ActionChooseTrump, Suit: g.Players[seat].Hand[0].Suit}
	case engine.StatusChoosePartner:
		for _, s := range engine.Suits {
			c := engine.Card{Suit: s, Rank: g.Rules.PartnerRank}
			if !selected(g, c.ID()) {
				return engine.Action{Type: engine.ActionPickPartner, Suit: s, Rank: g.Rules.PartnerRank}
			}
		}
		// All aces taken; fall through the remaining ranks.
		for _, r := range engine.Ranks {
			for _, s := range engine.Suits {
				c := engine.Card{Suit: s, Rank: r}
				if !selected(g, c.ID()) {
					return engine.Action{Type: engine.ActionPickPartner, Suit: s, Rank: r}
				}
			}
		}
		return engine.Action{Type: engine.ActionPickPartner, Suit: engine.SuitHearts, Rank: g.Rules.PartnerRank}
	default:
		legal := engine.LegalCards(g, seat)
		card := legal[0]
		return engine.Action{Type: engine.ActionPlayCard, Card: &card}
	}
}

func selected(g *engine.Game, id string) bool {
	for _, p := range g.PartnerCardIDs {
		if p == id {
			return true
		}
	}
	return false
}

func checkInvariants(g *engine.Game) error {
	total, dup := countCards(g)
	if total != engine.DeckSize {
		return fmt.Errorf("card count mismatch: %d", total)
	}
	if dup {
		return fmt.Errorf("duplicate card detected")
	}
	if len(g.CurrentTrick.Plays) >= g.Rules.Seats {
		return fmt.Errorf("unresolved trick of size %d", len(g.CurrentTrick.Plays))
	}
	if g.Current < 0 || g.Current >= g.Rules.Seats {
		return fmt.Errorf("turn pointer out of range: %d", g.Current)
	}
	if n := len(g.PartnerCardIDs); n > g.Rules.PartnersNeeded() {
		return fmt.Errorf("too many partner cards: %d", n)
	}

	// Score conservation: team scores cover exactly the archived tricks.
	want := 0
	for _, tr := range g.Tricks {
		for _, p := range tr.Plays {
			want += engine.CardScore(p.Card)
		}
	}
	if got := g.TeamScores.Bidder + g.TeamScores.Defender; got != want {
		return fmt.Errorf("score conservation broken: teams=%d tricks=%d", got, want)
	}
	if want > g.Rules.PointPool {
		return fmt.Errorf("awarded points exceed the pool: %d", want)
	}

	if g.Status == engine.StatusPlaying || g.Status == engine.StatusGameOver {
		bidders := 0
		for _, p := range g.Players {
			if p.Team == engine.TeamBidder {
				bidders++
			}
		}
		if bidders == 0 {
			return fmt.Errorf("no bidder team after bid resolution")
		}
	}
	return nil
}

// countCards walks every place a card can live: hands, archived tricks,
// the trick on the table, and the undealt stock.
func countCards(g *engine.Game) (int, bool) {
	seen := map[engine.Card]bool{}
	total := 0
	dup := false
	add := func(c engine.Card) {
		total++
		if seen[c] {
			dup = true
		}
		seen[c] = true
	}
	for _, p := range g.Players {
		for _, c := range p.Hand {
			add(c)
		}
	}
	for _, tr := range g.Tricks {
		for _, p := range tr.Plays {
			add(p.Card)
		}
	}
	for _, p := range g.CurrentTrick.Plays {
		add(p.Card)
	}
	for _, c := range g.Stock {
		add(c)
	}
	return total, dup
}

func failure(seed int64, step int, g *engine.Game, records []ActionRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	log := ""
	for _, r := range records[start:] {
		log += fmt.Sprintf("[s%d seat%d %v] %v\n", r.Step, r.Seat, r.Status, r.Action)
	}
	return fmt.Errorf("seed=%d step=%d status=%v reason=%s\nlast actions:\n%s",
		seed, step, g.Status, reason, log)
}
