package engine

import "errors"

type ActionType int

const (
	ActionBid ActionType = iota
	ActionChooseTrump
	ActionPickPartner
	ActionPlayCard
)

type Action struct {
	Type ActionType
	Bid  int // 0 means pass
	Suit Suit
	Rank Rank
	Card *Card
}

// CurrentSeat returns the seat expected to act. During CHOOSE_TRUMP and
// CHOOSE_PARTNER the turn pointer already sits on the bid winner.
func CurrentSeat(g *Game) (int, bool) {
	if g.Status == StatusGameOver {
		return -1, false
	}
	return g.Current, true
}

// ApplyAction applies one action for the given seat. A non-nil error means
// the action was rejected and the state is unchanged; the host treats that
// as a silent no-op.
func ApplyAction(g *Game, seat int, a Action) error {
	if seat != g.Current {
		return errors.New("not your turn")
	}
	switch g.Status {
	case StatusBidding:
		return applyBid(g, seat, a)
	case StatusChooseTrump:
		return applyChooseTrump(g, seat, a)
	case StatusChoosePartner:
		return applyPickPartner(g, seat, a)
	case StatusPlaying:
		return applyPlay(g, seat, a)
	default:
		return errors.New("round is over")
	}
}

func applyBid(g *Game, seat int, a Action) error {
	if a.Type != ActionBid {
		return errors.New("invalid action for bidding")
	}
	if a.Bid != 0 {
		if a.Bid < g.Rules.BidMin || a.Bid > g.Rules.BidMax {
			return errors.New("bid out of range")
		}
		if a.Bid%g.Rules.BidStep != 0 {
			return errors.New("invalid bid step")
		}
		if a.Bid > g.HighestBid {
			g.HighestBid = a.Bid
			g.HighestBidder = seat
		}
	}

	// Bidding is a single pass in seating order; the last seat closes it.
	if seat == g.Rules.Seats-1 {
		closeBidding(g)
		return nil
	}
	g.Current = (seat + 1) % g.Rules.Seats
	return nil
}

// closeBidding resolves the auction, hands the undealt remainder out
// evenly, marks the teams, and moves to trump selection.
func closeBidding(g *Game) {
	if g.HighestBidder < 0 {
		g.HighestBidder = g.Rules.DefaultBidderSeat
	}

	perSeat := len(g.Stock) / g.Rules.Seats
	idx := 0
	for i := range g.Players {
		g.Players[i].Hand = append(g.Players[i].Hand, g.Stock[idx:idx+perSeat]...)
		idx += perSeat
		if i == g.HighestBidder {
			g.Players[i].Team = TeamBidder
		} else {
			g.Players[i].Team = TeamDefender
		}
	}
	g.Stock = append([]Card(nil), g.Stock[idx:]...)

	g.Status = StatusChooseTrump
	g.Current = g.HighestBidder
}

func applyChooseTrump(g *Game, seat int, a Action) error {
	if a.Type != ActionChooseTrump {
		return errors.New("invalid action for trump selection")
	}
	suit := a.Suit
	g.Trump = &suit
	if g.Rules.PartnersNeeded() == 0 {
		g.Status = StatusPlaying
		return nil
	}
	g.Status = StatusChoosePartner
	return nil
}

func applyPickPartner(g *Game, seat int, a Action) error {
	if a.Type != ActionPickPartner {
		return errors.New("invalid action for partner selection")
	}
	id := Card{Suit: a.Suit, Rank: a.Rank}.ID()
	for _, existing := range g.PartnerCardIDs {
		if existing == id {
			return errors.New("partner card already selected")
		}
	}
	g.PartnerCardIDs = append(g.PartnerCardIDs, id)
	if len(g.PartnerCardIDs) >= g.Rules.PartnersNeeded() {
		g.Status = StatusPlaying
		g.Current = g.HighestBidder
	}
	return nil
}

func applyPlay(g *Game, seat int, a Action) error {
	if a.Type != ActionPlayCard || a.Card == nil {
		return errors.New("invalid play action")
	}
	card := *a.Card
	if !containsCard(LegalCards(g, seat), card) {
		if !containsCard(g.Players[seat].Hand, card) {
			return errors.New("card not in hand")
		}
		return errors.New("must follow lead suit")
	}

	removeCard(&g.Players[seat].Hand, card)
	if g.CurrentTrick.LeadSuit == nil {
		lead := card.Suit
		g.CurrentTrick.LeadSuit = &lead
	}
	g.CurrentTrick.Plays = append(g.CurrentTrick.Plays, Play{Seat: seat, Card: card})

	// Partner reveal: playing a partner card flips the seat to the bidder
	// team immediately, so the trick now resolving already counts for it.
	if g.Players[seat].Team != TeamBidder && isPartnerCard(g, card) {
		g.Players[seat].Team = TeamBidder
	}

	g.Current = (seat + 1) % g.Rules.Seats

	if len(g.CurrentTrick.Plays) == g.Rules.Seats {
		resolveTrick(g)
	}
	return nil
}

func resolveTrick(g *Game) {
	plays := g.CurrentTrick.Plays
	lead := *g.CurrentTrick.LeadSuit
	winner := trickWinner(plays, g.Trump, lead)
	pts := trickPoints(plays)

	cards := make([]Card, 0, len(plays))
	for _, p := range plays {
		cards = append(cards, p.Card)
	}
	g.Players[winner].Score += pts
	g.Players[winner].WonTricks = append(g.Players[winner].WonTricks, cards)
	if g.Players[winner].Team == TeamBidder {
		g.TeamScores.Bidder += pts
	} else {
		g.TeamScores.Defender += pts
	}

	g.Tricks = append(g.Tricks, g.CurrentTrick)
	g.CurrentTrick = Trick{}
	g.Current = winner

	checkGameOver(g)
}

// checkGameOver runs after every resolved trick: the round ends as soon as
// the bid is met, the bid becomes mathematically unreachable for the
// bidder team, or the human seat runs out of cards.
func checkGameOver(g *Game) {
	bidMet := g.TeamScores.Bidder >= g.HighestBid
	bidDead := g.TeamScores.Defender > g.Rules.PointPool-g.HighestBid
	exhausted := len(g.Players[g.HumanSeat].Hand) == 0

	if !bidMet && !bidDead && !exhausted {
		return
	}
	// The win signal is bid fulfillment alone, whichever team the human
	// ended on: a defender who kills the bid still records a loss.
	g.Status = StatusGameOver
	g.Outcome = &Outcome{
		BidMet:     bidMet,
		HumanTeam:  g.Players[g.HumanSeat].Team,
		HumanWon:   bidMet,
		HighestBid: g.HighestBid,
		Scores:     g.TeamScores,
	}
}

func isPartnerCard(g *Game, c Card) bool {
	id := c.ID()
	for _, p := range g.PartnerCardIDs {
		if p == id {
			return true
		}
	}
	return false
}

func containsCard(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

func removeCard(hand *[]Card, card Card) bool {
	for i, c := range *hand {
		if c == card {
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			return true
		}
	}
	return false
}
