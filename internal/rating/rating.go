// Package rating consumes round outcomes and maintains player ratings and
// the leaderboard. The engine never computes rating deltas itself; it only
// reports whether the human's team met the bid.
package rating

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/GOAT858/Bid2Win/internal/engine"
)

const (
	baseRating   = 100
	ratingFloor  = 100
	baseDelta    = 10
	upsetMargin  = 50
	upsetDivisor = 2
)

type Entry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// Service keeps ratings in memory for the lifetime of the process; rounds
// are independent and nothing persists across restarts.
type Service struct {
	mu     sync.Mutex
	users  map[string]*Entry
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	return &Service{users: map[string]*Entry{}, logger: logger}
}

// ReportOutcome is the outcome boundary of the round engine; the session
// calls it exactly once per round at GAME_OVER.
func (s *Service) ReportOutcome(gameID, username string, opponentRating int, out engine.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.user(username)
	delta := Adjust(u.Rating, opponentRating, out.HumanWon)
	u.Rating += delta
	if u.Rating < ratingFloor {
		u.Rating = ratingFloor
	}
	if out.HumanWon {
		u.Wins++
	} else {
		u.Losses++
	}

	s.logger.Info("round outcome reported",
		"game", gameID,
		"user", username,
		"won", out.HumanWon,
		"bidMet", out.BidMet,
		"bid", out.HighestBid,
		"delta", delta,
		"rating", u.Rating,
	)
}

// Adjust returns the rating change for one round. Beating a much stronger
// opponent (more than 50 rating above) pays (diff-50)/2 with a floor of
// the base delta; losing to one costs nothing.
func Adjust(player, opponent int, won bool) int {
	diff := opponent - player
	if won {
		if diff > upsetMargin {
			delta := (diff - upsetMargin) / upsetDivisor
			if delta < baseDelta {
				delta = baseDelta
			}
			return delta
		}
		return baseDelta
	}
	if diff > upsetMargin {
		return 0
	}
	return -baseDelta
}

func (s *Service) Rating(username string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user(username).Rating
}

// Leaderboard returns all known players ordered by rating, ranks assigned.
func (s *Service) Leaderboard() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Username < out[j].Username
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func (s *Service) user(username string) *Entry {
	u, ok := s.users[username]
	if !ok {
		u = &Entry{Username: username, Rating: baseRating}
		s.users[username] = u
	}
	return u
}
