package engine

import (
	"errors"
	"strings"
)

// ParseSuit reads the wire form of a suit ("HEARTS", "SPADES", ...).
func ParseSuit(s string) (Suit, error) {
	switch strings.ToUpper(s) {
	case "HEARTS":
		return SuitHearts, nil
	case "DIAMONDS":
		return SuitDiamonds, nil
	case "CLUBS":
		return SuitClubs, nil
	case "SPADES":
		return SuitSpades, nil
	default:
		return SuitHearts, errors.New("invalid suit")
	}
}

// ParseRank reads the wire form of a rank ("2".."10", "J", "Q", "K", "A").
func ParseRank(s string) (Rank, error) {
	for _, r := range Ranks {
		if r.String() == strings.ToUpper(s) {
			return r, nil
		}
	}
	return Rank2, errors.New("invalid rank")
}

// ParseCardID splits a card id like "3-SPADES" back into a card.
func ParseCardID(id string) (Card, error) {
	rankStr, suitStr, ok := strings.Cut(id, "-")
	if !ok {
		return Card{}, errors.New("invalid card id")
	}
	r, err := ParseRank(rankStr)
	if err != nil {
		return Card{}, err
	}
	s, err := ParseSuit(suitStr)
	if err != nil {
		return Card{}, err
	}
	return Card{Suit: s, Rank: r}, nil
}
