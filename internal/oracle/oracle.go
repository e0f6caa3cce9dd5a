// Package oracle defines the optional advisory service the host may
// inject. The engine and bots work identically with or without one: any
// error, timeout or empty suggestion falls back to the built-in policy.
package oracle

import "context"

// TrickPlay is one card already on the table, in play order.
type TrickPlay struct {
	PlayerID string `json:"playerId"`
	CardID   string `json:"cardId"`
}

// SuggestInput holds everything the advisor needs to recommend a card.
type SuggestInput struct {
	Hand       []string    `json:"hand"`
	Trick      []TrickPlay `json:"trick"`
	LeadSuit   string      `json:"leadSuit,omitempty"`
	TrumpSuit  string      `json:"trumpSuit,omitempty"`
	IsBidder   bool        `json:"isBidder"`
	CurrentBid int         `json:"currentBid"`
}

// Advisor recommends a card or a bid. An empty card id with a nil error
// means "no suggestion"; a bid of 0 means pass.
type Advisor interface {
	SuggestCard(ctx context.Context, in SuggestInput) (string, error)
	SuggestBid(ctx context.Context, hand []string) (int, error)
}
