package engine

// LegalCards returns the cards the seat may play into the current trick.
// With an established lead suit the player must follow it when able;
// otherwise (leading, or void in the lead suit) the whole hand is legal.
func LegalCards(g *Game, seat int) []Card {
	hand := g.Players[seat].Hand
	lead := g.CurrentTrick.LeadSuit
	if lead == nil {
		return hand
	}
	if !hasSuit(hand, *lead) {
		return hand
	}
	return filterBySuit(hand, *lead)
}

// trickWinner scans the completed trick and returns the winning seat.
// A card beats the current best if it is trump and the best is not, if
// both are trump and it ranks higher, or if neither is trump and it
// follows the lead suit with a higher rank. Off-suit discards never win.
func trickWinner(plays []Play, trump *Suit, lead Suit) int {
	best := plays[0]
	for _, p := range plays[1:] {
		isTrump := trump != nil && p.Card.Suit == *trump
		bestTrump := trump != nil && best.Card.Suit == *trump
		switch {
		case isTrump && !bestTrump:
			best = p
		case isTrump && bestTrump:
			if CardValue(p.Card.Rank) > CardValue(best.Card.Rank) {
				best = p
			}
		case !bestTrump && p.Card.Suit == lead:
			// best follows the lead here: plays[0] set the lead suit and
			// best only ever moves to trump or lead-suit cards.
			if CardValue(p.Card.Rank) > CardValue(best.Card.Rank) {
				best = p
			}
		}
	}
	return best.Seat
}

func trickPoints(plays []Play) int {
	pts := 0
	for _, p := range plays {
		pts += CardScore(p.Card)
	}
	return pts
}

func hasSuit(cards []Card, suit Suit) bool {
	for _, c := range cards {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

func filterBySuit(cards []Card, suit Suit) []Card {
	out := []Card{}
	for _, c := range cards {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}
