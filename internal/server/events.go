package server

import (
	"fmt"
	"time"

	"github.com/GOAT858/Bid2Win/internal/engine"
)

// Event is a transient table announcement derived from a state
// transition. Clients display it for DurationMS and discard it.
type Event struct {
	Type       string       `json:"type"`
	Seat       int          `json:"seat"`
	Text       string       `json:"text,omitempty"`
	Subtext    string       `json:"subtext,omitempty"`
	DurationMS int          `json:"durationMs,omitempty"`
	Outcome    *OutcomeView `json:"outcome,omitempty"`
}

// snapshot captures the little of the pre-action state the event diff
// needs. Cheaper than deep-copying the whole round.
type snapshot struct {
	status engine.Status
	teams  []engine.Team
	tricks int
}

func takeSnapshot(g *engine.Game) snapshot {
	s := snapshot{status: g.Status, tricks: len(g.Tricks)}
	s.teams = make([]engine.Team, len(g.Players))
	for i, p := range g.Players {
		s.teams[i] = p.Team
	}
	return s
}

// buildEvents diffs the pre-action snapshot against the post-action
// state and emits the announcements the transition earned.
func buildEvents(prev snapshot, g *engine.Game, seat int, a engine.Action, announceRound, trickHighlight time.Duration) []Event {
	var events []Event

	if prev.status == engine.StatusBidding && g.Status != engine.StatusBidding {
		winner := g.HighestBidder
		events = append(events, Event{
			Type:       "bid_resolved",
			Seat:       winner,
			Text:       fmt.Sprintf("%s Wins the Bid!", g.Players[winner].Name),
			Subtext:    fmt.Sprintf("Target Goal: %d Points", g.HighestBid),
			DurationMS: int(announceRound / time.Millisecond),
		})
	}

	if a.Type == engine.ActionPlayCard && a.Card != nil {
		card := *a.Card
		if card.Suit == engine.SuitSpades && card.Rank == engine.Rank3 {
			events = append(events, Event{
				Type:       "spades_three",
				Seat:       seat,
				Text:       fmt.Sprintf("%s played 3 of Spades!", g.Players[seat].Name),
				Subtext:    "+30 Points Unleashed!",
				DurationMS: int(announceRound / time.Millisecond),
			})
		}
		if prev.teams[seat] != engine.TeamBidder && g.Players[seat].Team == engine.TeamBidder {
			events = append(events, Event{
				Type:       "partner_revealed",
				Seat:       seat,
				Text:       fmt.Sprintf("%s is the Secret Partner!", g.Players[seat].Name),
				Subtext:    fmt.Sprintf("Revealed by playing %s of %s", card.Rank, card.Suit),
				DurationMS: int(announceRound / time.Millisecond),
			})
		}
	}

	if len(g.Tricks) > prev.tricks {
		// resolveTrick leaves the turn pointer on the winner.
		events = append(events, Event{
			Type:       "trick_won",
			Seat:       g.Current,
			DurationMS: int(trickHighlight / time.Millisecond),
		})
	}

	if prev.status != engine.StatusGameOver && g.Status == engine.StatusGameOver && g.Outcome != nil {
		events = append(events, Event{
			Type:    "game_over",
			Seat:    g.HumanSeat,
			Outcome: outcomeToView(*g.Outcome),
		})
	}

	return events
}
