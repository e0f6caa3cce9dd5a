package server

import "github.com/GOAT858/Bid2Win/internal/engine"

// PlayerView is a seat as the viewer is allowed to see it. Only the
// viewer's own hand is serialized; other seats expose a card count.
type PlayerView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Seat      int       `json:"seat"`
	IsBot     bool      `json:"isBot"`
	HandCount int       `json:"handCount"`
	Hand      []CardDTO `json:"hand,omitempty"`
	Score     int       `json:"score"`
	Tricks    int       `json:"tricks"`
	Team      string    `json:"team"`
}

type PlayView struct {
	Seat int     `json:"seat"`
	Card CardDTO `json:"card"`
}

type TrickView struct {
	LeadSuit string     `json:"leadSuit,omitempty"`
	Plays    []PlayView `json:"plays"`
}

type OutcomeView struct {
	BidMet        bool   `json:"bidMet"`
	HumanTeam     string `json:"humanTeam"`
	HumanWon      bool   `json:"humanWon"`
	HighestBid    int    `json:"highestBid"`
	BidderScore   int    `json:"bidderScore"`
	DefenderScore int    `json:"defenderScore"`
}

// GameView is the redacted round state sent to one viewer. Partner card
// ids are public knowledge once declared; hidden hands are not.
type GameView struct {
	GameID         string       `json:"gameId"`
	Status         string       `json:"status"`
	Players        []PlayerView `json:"players"`
	Current        int          `json:"current"`
	ViewerSeat     int          `json:"viewerSeat"`
	HighestBid     int          `json:"highestBid"`
	HighestBidder  int          `json:"highestBidder"`
	Trump          string       `json:"trump,omitempty"`
	PartnerCardIDs []string     `json:"partnerCardIds"`
	PartnersNeeded int          `json:"partnersNeeded"`
	CurrentTrick   TrickView    `json:"currentTrick"`
	TricksPlayed   int          `json:"tricksPlayed"`
	BidderScore    int          `json:"bidderScore"`
	DefenderScore  int          `json:"defenderScore"`
	LegalCardIDs   []string     `json:"legalCardIds,omitempty"`
	Outcome        *OutcomeView `json:"outcome,omitempty"`
}

func buildView(g *engine.Game, viewer int) GameView {
	v := GameView{
		GameID:         g.ID,
		Status:         g.Status.String(),
		Current:        g.Current,
		ViewerSeat:     viewer,
		HighestBid:     g.HighestBid,
		HighestBidder:  g.HighestBidder,
		PartnerCardIDs: append([]string(nil), g.PartnerCardIDs...),
		PartnersNeeded: g.Rules.PartnersNeeded(),
		CurrentTrick:   trickToView(g.CurrentTrick),
		TricksPlayed:   len(g.Tricks),
		BidderScore:    g.TeamScores.Bidder,
		DefenderScore:  g.TeamScores.Defender,
	}
	if g.Trump != nil {
		v.Trump = g.Trump.String()
	}

	for seat, p := range g.Players {
		pv := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Seat:      seat,
			IsBot:     p.IsBot,
			HandCount: len(p.Hand),
			Score:     p.Score,
			Tricks:    len(p.WonTricks),
			Team:      p.Team.String(),
		}
		if seat == viewer {
			pv.Hand = make([]CardDTO, 0, len(p.Hand))
			for _, c := range p.Hand {
				pv.Hand = append(pv.Hand, cardToDTO(c))
			}
		}
		v.Players = append(v.Players, pv)
	}

	if g.Status == engine.StatusPlaying && g.Current == viewer {
		for _, c := range engine.LegalCards(g, viewer) {
			v.LegalCardIDs = append(v.LegalCardIDs, c.ID())
		}
	}
	if g.Outcome != nil {
		v.Outcome = outcomeToView(*g.Outcome)
	}
	return v
}

func trickToView(t engine.Trick) TrickView {
	tv := TrickView{Plays: make([]PlayView, 0, len(t.Plays))}
	if t.LeadSuit != nil {
		tv.LeadSuit = t.LeadSuit.String()
	}
	for _, p := range t.Plays {
		tv.Plays = append(tv.Plays, PlayView{Seat: p.Seat, Card: cardToDTO(p.Card)})
	}
	return tv
}

func outcomeToView(o engine.Outcome) *OutcomeView {
	return &OutcomeView{
		BidMet:        o.BidMet,
		HumanTeam:     o.HumanTeam.String(),
		HumanWon:      o.HumanWon,
		HighestBid:    o.HighestBid,
		BidderScore:   o.Scores.Bidder,
		DefenderScore: o.Scores.Defender,
	}
}
