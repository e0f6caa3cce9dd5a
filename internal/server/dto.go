package server

import (
	"errors"

	"github.com/GOAT858/Bid2Win/internal/engine"
)

type CardDTO struct {
	ID   string `json:"id"`
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

func cardToDTO(c engine.Card) CardDTO {
	return CardDTO{ID: c.ID(), Suit: c.Suit.String(), Rank: c.Rank.String()}
}

type ActionDTO struct {
	Type   string `json:"type"`
	Bid    int    `json:"bid,omitempty"`
	Suit   string `json:"suit,omitempty"`
	Rank   string `json:"rank,omitempty"`
	CardID string `json:"cardId,omitempty"`
}

func (a *ActionDTO) ToEngine() (engine.Action, error) {
	if a == nil {
		return engine.Action{}, errors.New("action missing")
	}
	switch a.Type {
	case "bid":
		return engine.Action{Type: engine.ActionBid, Bid: a.Bid}, nil
	case "choose_trump":
		s, err := engine.ParseSuit(a.Suit)
		if err != nil {
			return engine.Action{}, err
		}
		return engine.Action{Type: engine.ActionChooseTrump, Suit: s}, nil
	case "pick_partner":
		s, err := engine.ParseSuit(a.Suit)
		if err != nil {
			return engine.Action{}, err
		}
		r, err := engine.ParseRank(a.Rank)
		if err != nil {
			return engine.Action{}, err
		}
		return engine.Action{Type: engine.ActionPickPartner, Suit: s, Rank: r}, nil
	case "play_card":
		card, err := engine.ParseCardID(a.CardID)
		if err != nil {
			return engine.Action{}, err
		}
		return engine.Action{Type: engine.ActionPlayCard, Card: &card}, nil
	default:
		return engine.Action{}, errors.New("unknown action type")
	}
}
