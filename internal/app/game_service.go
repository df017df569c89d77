package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"trivia-party-service/internal/domain"
)

// SessionRepository abstracts how game sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(clientID string, create func() *Session) *Session
	Get(clientID string) (*Session, bool)
	Delete(clientID string)
}

// ServiceOptions tunes sessions created by a GameService.
type ServiceOptions struct {
	Defaults domain.GameSettings
	IDs      IDGenerator
	Logger   logrus.FieldLogger
	Recorder Recorder
	Now      func() time.Time
}

// GameService is the provisioning scope for sessions. A session must be provisioned before
// any game operation reaches it.
type GameService struct {
	sessions  SessionRepository
	questions QuestionPicker
	opts      ServiceOptions

	seedMu sync.Mutex
	seed   *rand.Rand
}

func NewGameService(store SessionRepository, questions QuestionPicker, opts ServiceOptions) *GameService {
	if opts.IDs == nil {
		opts.IDs = UUIDGenerator{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Recorder == nil {
		opts.Recorder = NopRecorder{}
	}
	return &GameService{
		sessions:  store,
		questions: questions,
		opts:      opts,
		seed:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Provision returns the session for clientID, creating it on first use.
func (g *GameService) Provision(_ context.Context, clientID string) *Session {
	return g.sessions.GetOrCreate(clientID, func() *Session {
		g.opts.Recorder.SessionProvisioned()
		g.opts.Logger.WithField("session", clientID).Debug("session provisioned")
		return NewSession(clientID, SessionDeps{
			Questions: g.questions,
			IDs:       g.opts.IDs,
			Defaults:  g.opts.Defaults,
			Now:       g.opts.Now,
			Rand:      g.newRand(),
			Logger:    g.opts.Logger,
			Recorder:  g.opts.Recorder,
		})
	})
}

// Session looks up a provisioned session. It fails with domain.ErrSessionNotProvisioned otherwise.
func (g *GameService) Session(clientID string) (*Session, error) {
	session, ok := g.sessions.Get(clientID)
	if !ok {
		return nil, domain.ErrSessionNotProvisioned
	}
	return session, nil
}

// Release resets the session and forgets it.
func (g *GameService) Release(_ context.Context, clientID string) {
	session, ok := g.sessions.Get(clientID)
	if !ok {
		return
	}
	session.LeaveRoom()
	g.sessions.Delete(clientID)
	g.opts.Recorder.SessionReleased()
	g.opts.Logger.WithField("session", clientID).Debug("session released")
}

func (g *GameService) newRand() *rand.Rand {
	g.seedMu.Lock()
	defer g.seedMu.Unlock()
	return rand.New(rand.NewSource(g.seed.Int63()))
}
