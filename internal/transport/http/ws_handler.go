package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"trivia-party-service/internal/app"
	"trivia-party-service/internal/domain"
)

// HandlerOptions configures a WSHandler.
type HandlerOptions struct {
	TickInterval time.Duration
	IDs          app.IDGenerator
	Logger       logrus.FieldLogger
}

// WSHandler is the presentation layer over websockets: one connection drives one game session.
type WSHandler struct {
	service  *app.GameService
	opts     HandlerOptions
	upgrader websocket.Upgrader
	validate *validator.Validate
}

func NewWSHandler(service *app.GameService, opts HandlerOptions) *WSHandler {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.IDs == nil {
		opts.IDs = app.UUIDGenerator{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &WSHandler{
		service: service,
		opts:    opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		validate: validator.New(),
	}
}

// Register mounts the websocket endpoint on r.
func (h *WSHandler) Register(r *mux.Router) {
	r.HandleFunc("/ws", h.ServeWS).Methods(http.MethodGet)
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type namePayload struct {
	Name string `json:"name" validate:"required,min=2,max=20"`
}

type phasePayload struct {
	Phase domain.Phase `json:"phase" validate:"required,oneof=landing create join roundResult"`
}

type joinPayload struct {
	Code string `json:"code" validate:"required,len=5,alphanum"`
}

type settingsPayload struct {
	WinningScore *int `json:"winningScore" validate:"omitempty,min=1,max=1000"`
	RoundTime    *int `json:"roundTime" validate:"omitempty,min=3,max=120"`
}

type answerPayload struct {
	Answer string `json:"answer" validate:"required,max=200"`
}

type joinResult struct {
	Joined bool `json:"joined"`
}

type answerResult struct {
	Correct    bool `json:"correct"`
	Awarded    int  `json:"awarded"`
	TotalScore int  `json:"totalScore"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// connection holds the per-socket state shared by the read loop and the countdown.
type connection struct {
	h       *WSHandler
	ctx     context.Context
	session *app.Session
	send    chan outboundMessage[any]
	closing chan struct{}
	log     logrus.FieldLogger

	mu        sync.Mutex
	countdown *app.Countdown
	round     int
}

// ServeWS upgrades HTTP requests to websockets and wires them into the game operations.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.opts.Logger.WithError(err).Warn("ws upgrade failed")
		return
	}
	defer conn.Close()

	clientID := h.opts.IDs.NewID()
	session := h.service.Provision(r.Context(), clientID)
	defer h.service.Release(context.Background(), clientID)

	updates, cancel := session.Subscribe()
	defer cancel()

	c := &connection{
		h:       h,
		ctx:     r.Context(),
		session: session,
		send:    make(chan outboundMessage[any], 16),
		closing: make(chan struct{}),
		log:     h.opts.Logger.WithField("session", clientID),
	}
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		failed := false
		for msg := range c.send {
			if failed {
				// keep draining so producers never block on a dead socket
				continue
			}
			if err := conn.WriteJSON(msg); err != nil {
				c.log.WithError(err).Warn("ws write error")
				failed = true
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				c.emit("state", snap)
			case <-c.closing:
				return
			}
		}
	}()

	c.emit("connected", map[string]string{"sessionId": clientID})

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		c.dispatch(inbound)
	}

	c.stopCountdown()
	close(c.closing)
	<-updatesDone
	close(c.send)
	<-writerDone
}

func (c *connection) emit(typ string, payload any) {
	select {
	case c.send <- outboundMessage[any]{Type: typ, Payload: payload}:
	case <-c.closing:
	}
}

func (c *connection) fail(message string) {
	c.emit("error", errorPayload{Message: message})
}

func (c *connection) decode(raw json.RawMessage, dst any) bool {
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, dst); err != nil {
			c.fail("invalid payload")
			return false
		}
	}
	if err := c.h.validate.Struct(dst); err != nil {
		c.fail(err.Error())
		return false
	}
	return true
}

func (c *connection) dispatch(msg inboundMessage) {
	s := c.session
	switch msg.Type {
	case "setName":
		var p namePayload
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				c.fail("invalid payload")
				return
			}
		}
		p.Name = strings.TrimSpace(p.Name)
		if err := c.h.validate.Struct(p); err != nil {
			c.fail("name must be 2 to 20 characters")
			return
		}
		s.SetPlayerName(p.Name)
	case "setPhase":
		var p phasePayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		if !s.SetPhase(p.Phase) {
			c.fail("cannot switch to " + string(p.Phase))
		}
	case "createRoom":
		s.CreateRoom()
	case "joinRoom":
		var p joinPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		c.emit("joinResult", joinResult{Joined: s.JoinRoom(strings.ToUpper(p.Code))})
	case "addBot":
		s.AddBotPlayer()
	case "updateSettings":
		var p settingsPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		s.UpdateSettings(domain.SettingsUpdate{WinningScore: p.WinningScore, RoundTime: p.RoundTime})
	case "startGame":
		s.StartGame()
	case "answer":
		var p answerPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		c.answer(strings.TrimSpace(p.Answer))
	case "nextRound":
		s.NextRound()
	case "leave":
		s.LeaveRoom()
	default:
		c.fail("unsupported message type")
		return
	}
	c.syncCountdown()
}

func (c *connection) answer(text string) {
	if c.session.Snapshot().ShowingAnswer {
		c.fail("round is over")
		return
	}
	correct := c.session.SubmitAnswer(text)
	snap := c.session.Snapshot()

	result := answerResult{Correct: correct}
	if snap.CurrentPlayer != nil {
		result.TotalScore = snap.CurrentPlayer.Score
	}
	if correct && len(snap.RoundResults) > 0 {
		result.Awarded = snap.RoundResults[len(snap.RoundResults)-1].Points
	}
	c.emit("answerResult", result)
}

// syncCountdown starts a fresh countdown whenever a new round begins and stops it once play ends.
func (c *connection) syncCountdown() {
	snap := c.session.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()

	if snap.Room == nil || snap.Room.Status != domain.RoomPlaying {
		c.stopLocked()
		c.round = 0
		return
	}
	if snap.Room.CurrentRound == c.round {
		return
	}
	c.stopLocked()
	c.round = snap.Room.CurrentRound
	round := c.round
	c.countdown = app.StartCountdown(c.ctx, c.session, c.h.opts.TickInterval, func() {
		c.log.WithField("round", round).Debug("round timer expired")
		c.emit("roundOver", map[string]int{"round": round})
	})
}

func (c *connection) stopCountdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *connection) stopLocked() {
	c.countdown.Stop()
	c.countdown = nil
}
