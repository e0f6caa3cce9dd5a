// Package bots provides the decision policy for non-human seats. Bots
// never stall a round and never pick an illegal action.
package bots

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/GOAT858/Bid2Win/internal/engine"
	"github.com/GOAT858/Bid2Win/internal/oracle"
)

type Bot interface {
	ChooseAction(g *engine.Game, seat int) engine.Action
}

// HeuristicBot is the deterministic default policy: raise with three or
// more point cards while the bid is below the ceiling, trump the first
// suit in hand, pick ace partners, play the first legal card.
type HeuristicBot struct {
	RNG *rand.Rand
}

func NewHeuristic(seed int64) *HeuristicBot {
	return &HeuristicBot{RNG: rand.New(rand.NewSource(seed))}
}

func (b *HeuristicBot) ChooseAction(g *engine.Game, seat int) engine.Action {
	switch g.Status {
	case engine.StatusBidding:
		return bidByHeuristic(g, seat)
	case engine.StatusChooseTrump:
		return engine.Action{Type: engine.ActionChooseTrump, Suit: g.Players[seat].Hand[0].Suit}
	case engine.StatusChoosePartner:
		return partnerPick(b.RNG, g)
	default:
		legal := engine.LegalCards(g, seat)
		card := legal[0]
		return engine.Action{Type: engine.ActionPlayCard, Card: &card}
	}
}

func bidByHeuristic(g *engine.Game, seat int) engine.Action {
	strong := 0
	for _, c := range g.Players[seat].Hand {
		if engine.CardScore(c) > 0 {
			strong++
		}
	}
	if strong < 3 || g.HighestBid >= g.Rules.BotBidCeiling {
		return engine.Action{Type: engine.ActionBid, Bid: 0}
	}
	bid := g.HighestBid + g.Rules.BidStep
	if bid < g.Rules.BidMin {
		bid = g.Rules.BidMin
	}
	if bid > g.Rules.BidMax {
		bid = g.Rules.BidMax
	}
	return engine.Action{Type: engine.ActionBid, Bid: bid}
}

// partnerPick starts at a random suit and walks until it finds a card id
// that is not already selected, so a duplicate pick can never stall the
// phase.
func partnerPick(rng *rand.Rand, g *engine.Game) engine.Action {
	start := rng.Intn(len(engine.Suits))
	for i := 0; i < len(engine.Suits); i++ {
		s := engine.Suits[(start+i)%len(engine.Suits)]
		if !partnerSelected(g, engine.Card{Suit: s, Rank: g.Rules.PartnerRank}) {
			return engine.Action{Type: engine.ActionPickPartner, Suit: s, Rank: g.Rules.PartnerRank}
		}
	}
	for _, r := range engine.Ranks {
		for _, s := range engine.Suits {
			if !partnerSelected(g, engine.Card{Suit: s, Rank: r}) {
				return engine.Action{Type: engine.ActionPickPartner, Suit: s, Rank: r}
			}
		}
	}
	return engine.Action{Type: engine.ActionPickPartner, Suit: engine.SuitHearts, Rank: g.Rules.PartnerRank}
}

func partnerSelected(g *engine.Game, c engine.Card) bool {
	id := c.ID()
	for _, p := range g.PartnerCardIDs {
		if p == id {
			return true
		}
	}
	return false
}

// AdvisedBot consults an external advisor first and falls back to the
// wrapped bot on any error, timeout, empty or illegal suggestion. Oracle
// unavailability is invisible at the table.
type AdvisedBot struct {
	Fallback Bot
	Advisor  oracle.Advisor
	Timeout  time.Duration
	Logger   *slog.Logger
}

func NewAdvised(fallback Bot, advisor oracle.Advisor, timeout time.Duration, logger *slog.Logger) *AdvisedBot {
	return &AdvisedBot{Fallback: fallback, Advisor: advisor, Timeout: timeout, Logger: logger}
}

func (b *AdvisedBot) ChooseAction(g *engine.Game, seat int) engine.Action {
	if b.Advisor == nil {
		return b.Fallback.ChooseAction(g, seat)
	}
	switch g.Status {
	case engine.StatusBidding:
		return b.advisedBid(g, seat)
	case engine.StatusPlaying:
		return b.advisedPlay(g, seat)
	default:
		return b.Fallback.ChooseAction(g, seat)
	}
}

func (b *AdvisedBot) advisedBid(g *engine.Game, seat int) engine.Action {
	ctx, cancel := context.WithTimeout(context.Background(), b.Timeout)
	defer cancel()

	bid, err := b.Advisor.SuggestBid(ctx, cardIDs(g.Players[seat].Hand))
	if err != nil {
		b.Logger.Warn("bid suggestion failed, using heuristic", "seat", seat, "error", err)
		return b.Fallback.ChooseAction(g, seat)
	}
	if bid != 0 && (bid < g.Rules.BidMin || bid > g.Rules.BidMax || bid%g.Rules.BidStep != 0) {
		b.Logger.Warn("bid suggestion out of range, using heuristic", "seat", seat, "bid", bid)
		return b.Fallback.ChooseAction(g, seat)
	}
	return engine.Action{Type: engine.ActionBid, Bid: bid}
}

func (b *AdvisedBot) advisedPlay(g *engine.Game, seat int) engine.Action {
	ctx, cancel := context.WithTimeout(context.Background(), b.Timeout)
	defer cancel()

	in := oracle.SuggestInput{
		Hand:       cardIDs(g.Players[seat].Hand),
		IsBidder:   g.Players[seat].Team == engine.TeamBidder,
		CurrentBid: g.HighestBid,
	}
	for _, p := range g.CurrentTrick.Plays {
		in.Trick = append(in.Trick, oracle.TrickPlay{PlayerID: g.Players[p.Seat].ID, CardID: p.Card.ID()})
	}
	if g.CurrentTrick.LeadSuit != nil {
		in.LeadSuit = g.CurrentTrick.LeadSuit.String()
	}
	if g.Trump != nil {
		in.TrumpSuit = g.Trump.String()
	}

	id, err := b.Advisor.SuggestCard(ctx, in)
	if err != nil || id == "" {
		if err != nil {
			b.Logger.Warn("card suggestion failed, using heuristic", "seat", seat, "error", err)
		}
		return b.Fallback.ChooseAction(g, seat)
	}
	for _, c := range engine.LegalCards(g, seat) {
		if c.ID() == id {
			card := c
			return engine.Action{Type: engine.ActionPlayCard, Card: &card}
		}
	}
	b.Logger.Warn("card suggestion not legal, using heuristic", "seat", seat, "card", id)
	return b.Fallback.ChooseAction(g, seat)
}

func cardIDs(hand []engine.Card) []string {
	out := make([]string, 0, len(hand))
	for _, c := range hand {
		out = append(out, c.ID())
	}
	return out
}
