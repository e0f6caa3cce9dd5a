package engine

import "fmt"

type Suit int

type Rank int

const (
	SuitHearts Suit = iota
	SuitDiamonds
	SuitClubs
	SuitSpades
)

const (
	Rank2 Rank = iota
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
)

var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

var Ranks = []Rank{
	Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8,
	Rank9, Rank10, RankJ, RankQ, RankK, RankA,
}

func (s Suit) String() string {
	switch s {
	case SuitHearts:
		return "HEARTS"
	case SuitDiamonds:
		return "DIAMONDS"
	case SuitClubs:
		return "CLUBS"
	case SuitSpades:
		return "SPADES"
	default:
		return "?"
	}
}

func (r Rank) String() string {
	switch {
	case r >= Rank2 && r <= Rank10:
		return fmt.Sprintf("%d", int(r)+2)
	case r == RankJ:
		return "J"
	case r == RankQ:
		return "Q"
	case r == RankK:
		return "K"
	case r == RankA:
		return "A"
	default:
		return "?"
	}
}

type Card struct {
	Suit Suit
	Rank Rank
}

// ID is the unique key of a card across the 52-card deck, e.g. "3-SPADES".
func (c Card) ID() string {
	return fmt.Sprintf("%s-%s", c.Rank.String(), c.Suit.String())
}

func (c Card) String() string {
	return c.ID()
}

type Status int

const (
	StatusBidding Status = iota
	StatusChooseTrump
	StatusChoosePartner
	StatusPlaying
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusBidding:
		return "BIDDING"
	case StatusChooseTrump:
		return "CHOOSE_TRUMP"
	case StatusChoosePartner:
		return "CHOOSE_PARTNER"
	case StatusPlaying:
		return "PLAYING"
	case StatusGameOver:
		return "GAME_OVER"
	default:
		return "?"
	}
}

type Team int

const (
	TeamDefender Team = iota
	TeamBidder
)

func (t Team) String() string {
	if t == TeamBidder {
		return "BIDDER"
	}
	return "DEFENDER"
}

// Rules carries the policy knobs of a round. Presets come from config,
// not from constants scattered through the transitions.
type Rules struct {
	Seats             int
	HandSize          int
	BidMin            int
	BidMax            int
	BidStep           int
	BotBidCeiling     int
	DefaultBidderSeat int
	PartnerRank       Rank
	PointPool         int
}

func ClassicPreset() Rules {
	return Rules{
		Seats:             4,
		HandSize:          5,
		BidMin:            100,
		BidMax:            190,
		BidStep:           10,
		BotBidCeiling:     140,
		DefaultBidderSeat: 0,
		PartnerRank:       RankA,
		PointPool:         230,
	}
}

// PartnersNeeded is the number of secret partner cards the bid winner
// declares: floor(seats/2) - 1. Zero for 2- and 3-seat tables, which skip
// the partner phase entirely.
func (r Rules) PartnersNeeded() int {
	n := r.Seats/2 - 1
	if n < 0 {
		return 0
	}
	return n
}

type Player struct {
	ID        string
	Name      string
	Hand      []Card
	IsBot     bool
	Score     int
	WonTricks [][]Card
	Team      Team
}

type Play struct {
	Seat int
	Card Card
}

type Trick struct {
	LeadSuit *Suit
	Plays    []Play
}

type TeamScores struct {
	Bidder   int
	Defender int
}

// Outcome is recorded once when the round reaches GAME_OVER and is what
// the outcome reporter receives.
type Outcome struct {
	BidMet     bool
	HumanTeam  Team
	HumanWon   bool // tracks BidMet: fulfilling the bid is the only win
	HighestBid int
	Scores     TeamScores
}

// Game is the aggregate root of one round. It is created by NewGame,
// mutated only through ApplyAction, and discarded after GAME_OVER.
type Game struct {
	ID             string
	Rules          Rules
	Seed           int64
	Status         Status
	Players        []Player
	Current        int
	HighestBid     int
	HighestBidder  int // -1 until a seat raises
	Trump          *Suit
	PartnerCardIDs []string
	Tricks         []Trick
	CurrentTrick   Trick
	TeamScores     TeamScores
	HumanSeat      int
	Stock          []Card // undealt remainder, consumed by the redeal
	Outcome        *Outcome
}

// NewGame shuffles a fresh deck and deals HandSize cards to each seat in
// seating order. The human seat gets the stable id "player"; bot seats get
// "p<seat>". Seating order is fixed for the round.
func NewGame(r Rules, seatNames []string, humanSeat int, seed int64) *Game {
	if len(seatNames) != r.Seats {
		panic(fmt.Sprintf("engine: %d seat names for %d seats", len(seatNames), r.Seats))
	}
	if r.Seats < 2 || r.Seats > 10 {
		panic(fmt.Sprintf("engine: unsupported seat count %d", r.Seats))
	}
	if humanSeat < 0 || humanSeat >= r.Seats {
		panic(fmt.Sprintf("engine: human seat %d out of range", humanSeat))
	}
	if r.HandSize*r.Seats > DeckSize {
		panic("engine: invalid deal configuration: deck too small")
	}

	deck := Shuffle(BuildDeck(), seed)
	players := make([]Player, r.Seats)
	idx := 0
	for i := range players {
		id := fmt.Sprintf("p%d", i)
		if i == humanSeat {
			id = "player"
		}
		players[i] = Player{
			ID:    id,
			Name:  seatNames[i],
			Hand:  append([]Card(nil), deck[idx:idx+r.HandSize]...),
			IsBot: i != humanSeat,
			Team:  TeamDefender,
		}
		idx += r.HandSize
	}

	return &Game{
		Rules:         r,
		Seed:          seed,
		Status:        StatusBidding,
		Players:       players,
		Current:       0,
		HighestBidder: -1,
		HumanSeat:     humanSeat,
		Stock:         append([]Card(nil), deck[idx:]...),
	}
}
