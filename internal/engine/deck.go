package engine

import "math/rand"

const DeckSize = 52

// The 3 of Spades alone is worth 30 points, bringing the pool to 230.
const (
	SpadesThreeScore = 30
	PointCardScore   = 10
)

func BuildDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

func Shuffle(deck []Card, seed int64) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// CardValue orders ranks within one suit: 2 < 3 < ... < 10 < J < Q < K < A.
// It is never compared across unrelated suits.
func CardValue(r Rank) int {
	return int(r) + 2
}

// CardScore is the trick value of a card: the 3 of Spades scores 30, the
// point ranks 10/J/Q/K/A score 10 each, everything else scores 0.
func CardScore(c Card) int {
	if c.Suit == SuitSpades && c.Rank == Rank3 {
		return SpadesThreeScore
	}
	if c.Rank >= Rank10 {
		return PointCardScore
	}
	return 0
}
