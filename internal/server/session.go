package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/GOAT858/Bid2Win/internal/bots"
	"github.com/GOAT858/Bid2Win/internal/config"
	"github.com/GOAT858/Bid2Win/internal/engine"
	"github.com/GOAT858/Bid2Win/internal/oracle"
)

// Bot opponents carry a flat rating; the ladder only tracks humans.
const botOpponentRating = 100

// Reporter receives the round outcome exactly once per finished round.
type Reporter interface {
	ReportOutcome(gameID, username string, opponentRating int, out engine.Outcome)
}

type ClientMessage struct {
	Type      string     `json:"type"`
	ActionID  string     `json:"actionId,omitempty"`
	Action    *ActionDTO `json:"action,omitempty"`
	Username  string     `json:"username,omitempty"`
	Players   []string   `json:"players,omitempty"`
	HumanSeat int        `json:"humanSeat,omitempty"`
}

type ServerMessage struct {
	Type    string    `json:"type"`
	View    *GameView `json:"view,omitempty"`
	Events  []Event   `json:"events,omitempty"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Session owns one table: a single human connection plus bot seats. All
// state transitions happen under the mutex; the engine itself rejects
// anything out of order, so a misbehaving client cannot corrupt a round.
type Session struct {
	mu sync.Mutex

	id       string
	log      *slog.Logger
	cfg      config.Config
	reporter Reporter
	advisor  oracle.Advisor

	conn     *websocket.Conn
	username string

	state    *engine.Game
	seats    map[int]bots.Bot
	seen     map[string]bool
	reported bool
}

func NewSession(cfg config.Config, logger *slog.Logger, reporter Reporter, advisor oracle.Advisor) *Session {
	return &Session{
		id:       uuid.NewString(),
		log:      logger,
		cfg:      cfg,
		reporter: reporter,
		advisor:  advisor,
		seen:     make(map[string]bool),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// ServeWS upgrades the request and pumps client messages until the
// connection drops.
func (s *Session) ServeWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.log.Info("client connected", "session", s.id)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.log.Info("client disconnected", "session", s.id, "err", err)
			s.mu.Lock()
			s.conn = nil
			s.mu.Unlock()
			return nil
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError("bad_message", "malformed message")
			continue
		}
		s.handleMessage(msg)
	}
}

func (s *Session) handleMessage(msg ClientMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Type {
	case "join":
		if msg.Username != "" {
			s.username = msg.Username
		}
		s.sendStateLocked(nil)
	case "request_state":
		s.sendStateLocked(nil)
	case "start_round":
		if err := s.startRoundLocked(msg.Players, msg.HumanSeat); err != nil {
			s.sendErrorLocked("start_rejected", err.Error())
		}
	case "player_action":
		s.applyHumanLocked(msg.ActionID, msg.Action)
	default:
		s.sendErrorLocked("bad_message", fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (s *Session) startRoundLocked(players []string, humanSeat int) error {
	rules := s.cfg.Rules
	if len(players) > 0 {
		rules.Seats = len(players)
	} else {
		players = defaultSeatNames(rules.Seats, humanSeat)
	}
	if rules.Seats < 2 || rules.Seats > 10 {
		return fmt.Errorf("unsupported table size %d", rules.Seats)
	}
	if rules.HandSize*rules.Seats > engine.DeckSize {
		return fmt.Errorf("%d seats do not fit the deck", rules.Seats)
	}
	if humanSeat < 0 || humanSeat >= rules.Seats {
		return fmt.Errorf("human seat %d out of range", humanSeat)
	}

	seed := time.Now().UnixNano()
	s.state = engine.NewGame(rules, players, humanSeat, seed)
	s.state.ID = uuid.NewString()
	s.reported = false
	s.seen = make(map[string]bool)

	s.seats = make(map[int]bots.Bot, rules.Seats-1)
	for seat := 0; seat < rules.Seats; seat++ {
		if seat == humanSeat {
			continue
		}
		fallback := bots.NewHeuristic(seed + int64(seat))
		if s.advisor != nil {
			s.seats[seat] = bots.NewAdvised(fallback, s.advisor, s.cfg.OracleTimeout, s.log)
		} else {
			s.seats[seat] = fallback
		}
	}

	s.log.Info("round started",
		"session", s.id, "game", s.state.ID, "seats", rules.Seats, "humanSeat", humanSeat)
	s.sendStateLocked(nil)
	s.drainBotsLocked()
	return nil
}

func (s *Session) applyHumanLocked(actionID string, dto *ActionDTO) {
	if s.state == nil {
		s.sendErrorLocked("no_round", "no round in progress")
		return
	}
	if actionID != "" {
		if s.seen[actionID] {
			return // duplicate delivery, already applied
		}
		s.seen[actionID] = true
	}

	action, err := dto.ToEngine()
	if err != nil {
		s.sendErrorLocked("bad_action", err.Error())
		return
	}

	seat := s.state.HumanSeat
	prev := takeSnapshot(s.state)
	if err := engine.ApplyAction(s.state, seat, action); err != nil {
		s.log.Debug("action rejected", "session", s.id, "seat", seat, "err", err)
		s.sendErrorLocked("rejected", err.Error())
		return
	}

	events := buildEvents(prev, s.state, seat, action, s.cfg.AnnounceRound, s.cfg.TrickHighlight)
	s.sendStateLocked(events)
	s.reportIfOverLocked()
	s.drainBotsLocked()
}

// drainBotsLocked lets bot seats act until the turn returns to the
// human or the round ends.
func (s *Session) drainBotsLocked() {
	for s.state != nil && s.state.Status != engine.StatusGameOver {
		seat, ok := engine.CurrentSeat(s.state)
		if !ok {
			return
		}
		bot, isBot := s.seats[seat]
		if !isBot {
			return
		}
		if s.cfg.BotDelay > 0 {
			time.Sleep(s.cfg.BotDelay)
		}

		action := bot.ChooseAction(s.state, seat)
		prev := takeSnapshot(s.state)
		if err := engine.ApplyAction(s.state, seat, action); err != nil {
			s.log.Error("bot produced illegal action",
				"session", s.id, "seat", seat, "err", err)
			return
		}

		events := buildEvents(prev, s.state, seat, action, s.cfg.AnnounceRound, s.cfg.TrickHighlight)
		s.sendStateLocked(events)
		s.reportIfOverLocked()
	}
}

func (s *Session) reportIfOverLocked() {
	if s.state == nil || s.state.Status != engine.StatusGameOver || s.state.Outcome == nil {
		return
	}
	if s.reported || s.reporter == nil {
		return
	}
	s.reported = true

	username := s.username
	if username == "" {
		username = s.state.Players[s.state.HumanSeat].Name
	}
	s.reporter.ReportOutcome(s.state.ID, username, botOpponentRating, *s.state.Outcome)
}

func (s *Session) sendStateLocked(events []Event) {
	if s.conn == nil {
		return
	}
	msg := ServerMessage{Type: "state", Events: events}
	if s.state != nil {
		view := buildView(s.state, s.state.HumanSeat)
		msg.View = &view
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		s.log.Warn("write failed", "session", s.id, "err", err)
	}
}

func (s *Session) sendError(code, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendErrorLocked(code, message)
}

func (s *Session) sendErrorLocked(code, message string) {
	if s.conn == nil {
		return
	}
	msg := ServerMessage{Type: "error", Code: code, Message: message}
	if err := s.conn.WriteJSON(msg); err != nil {
		s.log.Warn("write failed", "session", s.id, "err", err)
	}
}

func defaultSeatNames(n, humanSeat int) []string {
	names := make([]string, n)
	bot := 1
	for i := range names {
		if i == humanSeat {
			names[i] = "You"
			continue
		}
		names[i] = fmt.Sprintf("Bot %d", bot)
		bot++
	}
	return names
}
