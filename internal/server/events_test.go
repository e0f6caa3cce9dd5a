package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GOAT858/Bid2Win/internal/engine"
)

func eventTypes(events []Event) []string {
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

func TestBidResolvedAnnouncement(t *testing.T) {
	g := engine.NewGame(engine.ClassicPreset(), []string{"You", "Rex", "Nova", "Zed"}, 0, 7)
	require.NoError(t, engine.ApplyAction(g, 0, engine.Action{Type: engine.ActionBid, Bid: 120}))
	require.NoError(t, engine.ApplyAction(g, 1, engine.Action{Type: engine.ActionBid}))
	require.NoError(t, engine.ApplyAction(g, 2, engine.Action{Type: engine.ActionBid}))

	prev := takeSnapshot(g)
	action := engine.Action{Type: engine.ActionBid}
	require.NoError(t, engine.ApplyAction(g, 3, action))

	events := buildEvents(prev, g, 3, action, 3500*time.Millisecond, time.Second)
	require.Equal(t, []string{"bid_resolved"}, eventTypes(events))
	assert.Equal(t, 0, events[0].Seat)
	assert.Equal(t, "You Wins the Bid!", events[0].Text)
	assert.Equal(t, "Target Goal: 120 Points", events[0].Subtext)
	assert.Equal(t, 3500, events[0].DurationMS)
}

func TestPlayAnnouncements(t *testing.T) {
	g := engine.NewGame(engine.ClassicPreset(), []string{"You", "Rex", "Nova", "Zed"}, 0, 7)
	g.Status = engine.StatusPlaying
	g.HighestBid = 150
	g.HighestBidder = 0
	g.Players[0].Team = engine.TeamBidder
	trump := engine.SuitHearts
	g.Trump = &trump
	g.PartnerCardIDs = []string{"A-CLUBS"}

	spadesThree := engine.Card{Suit: engine.SuitSpades, Rank: engine.Rank3}
	partnerCard := engine.Card{Suit: engine.SuitClubs, Rank: engine.RankA}
	g.Players[0].Hand = []engine.Card{spadesThree}
	g.Players[1].Hand = []engine.Card{partnerCard}
	g.Players[2].Hand = []engine.Card{{Suit: engine.SuitClubs, Rank: engine.Rank2}}
	g.Players[3].Hand = []engine.Card{{Suit: engine.SuitDiamonds, Rank: engine.Rank4}}
	g.Current = 0

	prev := takeSnapshot(g)
	action := engine.Action{Type: engine.ActionPlayCard, Card: &spadesThree}
	require.NoError(t, engine.ApplyAction(g, 0, action))
	events := buildEvents(prev, g, 0, action, 3500*time.Millisecond, time.Second)
	require.Equal(t, []string{"spades_three"}, eventTypes(events))
	assert.Equal(t, "You played 3 of Spades!", events[0].Text)
	assert.Equal(t, "+30 Points Unleashed!", events[0].Subtext)

	prev = takeSnapshot(g)
	action = engine.Action{Type: engine.ActionPlayCard, Card: &partnerCard}
	require.NoError(t, engine.ApplyAction(g, 1, action))
	events = buildEvents(prev, g, 1, action, 3500*time.Millisecond, time.Second)
	require.Equal(t, []string{"partner_revealed"}, eventTypes(events))
	assert.Equal(t, "Rex is the Secret Partner!", events[0].Text)
	assert.Equal(t, "Revealed by playing A of CLUBS", events[0].Subtext)

	prev = takeSnapshot(g)
	plain := engine.Card{Suit: engine.SuitClubs, Rank: engine.Rank2}
	action = engine.Action{Type: engine.ActionPlayCard, Card: &plain}
	require.NoError(t, engine.ApplyAction(g, 2, action))
	require.Empty(t, buildEvents(prev, g, 2, action, 3500*time.Millisecond, time.Second))

	// Last card of the trick: everyone is out of cards, so the round
	// ends with the trick highlight and the game-over event together.
	prev = takeSnapshot(g)
	last := engine.Card{Suit: engine.SuitDiamonds, Rank: engine.Rank4}
	action = engine.Action{Type: engine.ActionPlayCard, Card: &last}
	require.NoError(t, engine.ApplyAction(g, 3, action))
	events = buildEvents(prev, g, 3, action, 3500*time.Millisecond, time.Second)
	require.Equal(t, []string{"trick_won", "game_over"}, eventTypes(events))
	assert.Equal(t, 1000, events[0].DurationMS)
	require.NotNil(t, events[1].Outcome)
	assert.False(t, events[1].Outcome.BidMet)
}

func TestViewRedactsHiddenHands(t *testing.T) {
	g := engine.NewGame(engine.ClassicPreset(), []string{"You", "Rex", "Nova", "Zed"}, 0, 7)
	v := buildView(g, 0)

	require.Len(t, v.Players, 4)
	assert.Len(t, v.Players[0].Hand, 5)
	for _, p := range v.Players[1:] {
		assert.Empty(t, p.Hand)
		assert.Equal(t, 5, p.HandCount)
	}
	assert.Equal(t, "BIDDING", v.Status)
	assert.Equal(t, 1, v.PartnersNeeded)
}
