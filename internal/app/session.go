package app

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"trivia-party-service/internal/domain"
)

const (
	DefaultWinningScore = 100
	DefaultRoundTime    = 10
	MaxPlayers          = 8
)

// BotNames is the fixed pool of names handed to bot players.
var BotNames = []string{"Dustin", "Lucas", "Mike", "Will", "Max", "Nancy", "Steve"}

// SessionDeps wires a Session to its collaborators. Zero values fall back to production defaults.
type SessionDeps struct {
	Questions QuestionPicker
	IDs       IDGenerator
	Defaults  domain.GameSettings
	Now       func() time.Time
	Rand      *rand.Rand
	Logger    logrus.FieldLogger
	Recorder  Recorder
}

// Session owns one player's game state: the current player, the single room and round progress.
//
// Operations never fail loudly. Unmet preconditions are silent no-ops or a false return.
// All methods are serialized by an internal mutex; callers are still expected to drive a session
// from one logical thread of control, the mutex only keeps the countdown goroutine and snapshots safe.
type Session struct {
	id        string
	now       func() time.Time
	rnd       *rand.Rand
	questions QuestionPicker
	ids       IDGenerator
	defaults  domain.GameSettings
	log       logrus.FieldLogger
	recorder  Recorder

	mu              sync.Mutex
	currentPlayer   *domain.Player
	room            *domain.Room
	phase           domain.Phase
	roundResults    []domain.RoundResult
	usedQuestionIDs map[string]struct{}
	usedOrder       []string
	timeRemaining   int
	showingAnswer   bool
	winner          *domain.Player
	subscribers     map[chan domain.Snapshot]struct{}
}

func NewSession(id string, deps SessionDeps) *Session {
	if deps.Questions == nil {
		deps.Questions = NewQuestionSource(domain.DemoQuestions())
	}
	if deps.IDs == nil {
		deps.IDs = UUIDGenerator{}
	}
	if deps.Defaults.WinningScore == 0 {
		deps.Defaults.WinningScore = DefaultWinningScore
	}
	if deps.Defaults.RoundTime == 0 {
		deps.Defaults.RoundTime = DefaultRoundTime
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	if deps.Recorder == nil {
		deps.Recorder = NopRecorder{}
	}
	return &Session{
		id:              id,
		now:             deps.Now,
		rnd:             deps.Rand,
		questions:       deps.Questions,
		ids:             deps.IDs,
		defaults:        deps.Defaults,
		log:             deps.Logger.WithField("session", id),
		recorder:        deps.Recorder,
		phase:           domain.PhaseLanding,
		usedQuestionIDs: make(map[string]struct{}),
		timeRemaining:   deps.Defaults.RoundTime,
		subscribers:     make(map[chan domain.Snapshot]struct{}),
	}
}

// ID returns the identifier the session was provisioned under.
func (s *Session) ID() string {
	s.mustBeProvisioned()
	return s.id
}

// SetPlayerName replaces the current player with a fresh one. Name validation is up to the caller.
func (s *Session) SetPlayerName(name string) {
	s.lock()
	defer s.mu.Unlock()

	s.currentPlayer = &domain.Player{
		ID:   s.ids.NewID(),
		Name: name,
	}
	s.broadcastLocked()
}

// CreateRoom opens a room hosted by the current player and moves to the lobby.
func (s *Session) CreateRoom() {
	s.lock()
	defer s.mu.Unlock()

	if s.currentPlayer == nil {
		return
	}
	s.currentPlayer.IsHost = true
	s.room = &domain.Room{
		ID:           s.ids.NewID(),
		Code:         GenerateRoomCode(s.rnd),
		Players:      []*domain.Player{s.currentPlayer},
		Status:       domain.RoomWaiting,
		CurrentRound: 0,
		Settings:     s.defaults,
	}
	s.phase = domain.PhaseLobby
	s.log.WithField("room", s.room.Code).Debug("room created")
	s.broadcastLocked()
}

// JoinRoom adds the current player to the room if code matches its join code, ignoring case.
func (s *Session) JoinRoom(code string) bool {
	s.lock()
	defer s.mu.Unlock()

	if s.currentPlayer == nil || s.room == nil {
		return false
	}
	if !strings.EqualFold(s.room.Code, code) {
		return false
	}
	if s.playerLocked(s.currentPlayer.ID) == nil {
		s.room.Players = append(s.room.Players, s.currentPlayer)
	}
	s.phase = domain.PhaseLobby
	s.log.WithFields(logrus.Fields{"room": s.room.Code, "player": s.currentPlayer.Name}).Debug("player joined")
	s.broadcastLocked()
	return true
}

// AddBotPlayer fills a seat with a bot named from BotNames.
func (s *Session) AddBotPlayer() {
	s.lock()
	defer s.mu.Unlock()

	if s.room == nil || len(s.room.Players) >= MaxPlayers {
		return
	}
	taken := make(map[string]struct{}, len(s.room.Players))
	for _, p := range s.room.Players {
		taken[p.Name] = struct{}{}
	}
	available := make([]string, 0, len(BotNames))
	for _, name := range BotNames {
		if _, ok := taken[name]; !ok {
			available = append(available, name)
		}
	}
	if len(available) == 0 {
		return
	}

	bot := &domain.Player{
		ID:   s.ids.NewID(),
		Name: available[s.rnd.Intn(len(available))],
	}
	s.room.Players = append(s.room.Players, bot)
	s.log.WithFields(logrus.Fields{"room": s.room.Code, "bot": bot.Name}).Debug("bot added")
	s.broadcastLocked()
}

// UpdateSettings merges the non-nil fields of update into the room settings.
func (s *Session) UpdateSettings(update domain.SettingsUpdate) {
	s.lock()
	defer s.mu.Unlock()

	if s.room == nil {
		return
	}
	if update.WinningScore != nil {
		s.room.Settings.WinningScore = *update.WinningScore
	}
	if update.RoundTime != nil {
		s.room.Settings.RoundTime = *update.RoundTime
	}
	s.broadcastLocked()
}

// StartGame begins round one. It needs a waiting room with at least two players.
func (s *Session) StartGame() {
	s.lock()
	defer s.mu.Unlock()

	if s.room == nil || len(s.room.Players) < 2 || s.room.Status != domain.RoomWaiting {
		return
	}
	question, ok := s.questions.PickUnused(map[string]struct{}{})
	if !ok {
		return
	}

	s.usedQuestionIDs = map[string]struct{}{question.ID: {}}
	s.usedOrder = []string{question.ID}
	s.room.Status = domain.RoomPlaying
	s.room.CurrentRound = 1
	s.beginRoundLocked(question)
	s.recorder.GameStarted()
	s.log.WithFields(logrus.Fields{"room": s.room.Code, "players": len(s.room.Players)}).Info("game started")
	s.broadcastLocked()
}

// SubmitAnswer scores an answer from the current player.
func (s *Session) SubmitAnswer(answer string) bool {
	s.lock()
	defer s.mu.Unlock()

	if s.currentPlayer == nil {
		return false
	}
	return s.submitLocked(s.currentPlayer.ID, answer)
}

// SubmitAnswerFor scores an answer on behalf of any player in the room, such as a bot.
func (s *Session) SubmitAnswerFor(playerID, answer string) bool {
	s.lock()
	defer s.mu.Unlock()

	return s.submitLocked(playerID, answer)
}

func (s *Session) submitLocked(playerID, answer string) bool {
	if s.room == nil || s.room.CurrentQuestion == nil || s.room.Status != domain.RoomPlaying {
		return false
	}
	player := s.playerLocked(playerID)
	if player == nil || player.HasAnswered {
		return false
	}
	if !answerMatches(answer, s.room.CurrentQuestion.Answer) {
		s.recorder.AnswerSubmitted(false)
		return false
	}

	var elapsed int64
	if s.room.RoundStartTime != nil {
		elapsed = s.now().Sub(*s.room.RoundStartTime).Milliseconds()
	}
	points := pointsFor(countCorrect(s.roundResults))

	player.HasAnswered = true
	player.LastAnswerTime = &elapsed
	player.Score += points
	s.roundResults = append(s.roundResults, domain.RoundResult{
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Answer:     answer,
		IsCorrect:  true,
		Points:     points,
		AnswerTime: elapsed,
	})
	s.recorder.AnswerSubmitted(true)
	s.log.WithFields(logrus.Fields{
		"room":   s.room.Code,
		"round":  s.room.CurrentRound,
		"player": player.Name,
		"points": points,
	}).Debug("correct answer")
	s.broadcastLocked()
	return true
}

// NextRound ends the game if someone reached the winning score or the questions ran out,
// otherwise it starts the next round. The score check always runs before a question is drawn.
func (s *Session) NextRound() {
	s.lock()
	defer s.mu.Unlock()

	if s.room == nil || s.room.Status != domain.RoomPlaying {
		return
	}

	for _, p := range s.room.Players {
		if p.Score >= s.room.Settings.WinningScore {
			s.finishLocked(p, "score")
			return
		}
	}

	question, ok := s.questions.PickUnused(s.usedQuestionIDs)
	if !ok {
		s.finishLocked(s.leaderLocked(), "exhausted")
		return
	}

	s.usedQuestionIDs[question.ID] = struct{}{}
	s.usedOrder = append(s.usedOrder, question.ID)
	s.room.CurrentRound++
	s.beginRoundLocked(question)
	s.log.WithFields(logrus.Fields{"room": s.room.Code, "round": s.room.CurrentRound}).Debug("round started")
	s.broadcastLocked()
}

// LeaveRoom drops everything and returns to the landing phase.
func (s *Session) LeaveRoom() {
	s.lock()
	defer s.mu.Unlock()

	if s.room != nil {
		s.log.WithField("room", s.room.Code).Debug("left room")
	}
	s.room = nil
	s.currentPlayer = nil
	s.phase = domain.PhaseLanding
	s.roundResults = nil
	s.usedQuestionIDs = make(map[string]struct{})
	s.usedOrder = nil
	s.winner = nil
	s.showingAnswer = false
	s.timeRemaining = s.defaults.RoundTime
	s.broadcastLocked()
}

// SetPhase applies a navigation-only phase change requested by the presentation layer.
// Game-driven phases (lobby, playing, winner) are reached through the game operations instead.
func (s *Session) SetPhase(phase domain.Phase) bool {
	s.lock()
	defer s.mu.Unlock()

	if !navigable(s.phase, phase) {
		return false
	}
	s.phase = phase
	s.broadcastLocked()
	return true
}

func navigable(from, to domain.Phase) bool {
	switch from {
	case domain.PhaseLanding:
		return to == domain.PhaseCreate || to == domain.PhaseJoin
	case domain.PhaseCreate, domain.PhaseJoin:
		return to == domain.PhaseLanding || to == domain.PhaseCreate || to == domain.PhaseJoin
	case domain.PhasePlaying:
		return to == domain.PhaseRoundResult
	}
	return false
}

// SetTimeRemaining stores the countdown value driven by the presentation layer.
func (s *Session) SetTimeRemaining(seconds int) {
	s.lock()
	defer s.mu.Unlock()

	s.timeRemaining = seconds
	s.broadcastLocked()
}

// SetShowingAnswer toggles the answer reveal.
func (s *Session) SetShowingAnswer(showing bool) {
	s.lock()
	defer s.mu.Unlock()

	s.showingAnswer = showing
	s.broadcastLocked()
}

// Tick advances the round countdown by one step. It returns true on the step that reveals the answer.
func (s *Session) Tick() bool {
	s.lock()
	defer s.mu.Unlock()

	if s.room == nil || s.room.Status != domain.RoomPlaying || s.showingAnswer {
		return false
	}
	if s.timeRemaining > 0 {
		s.timeRemaining--
	}
	expired := s.timeRemaining <= 0
	if expired {
		s.showingAnswer = true
	}
	s.broadcastLocked()
	return expired
}

// Phase returns the current phase.
func (s *Session) Phase() domain.Phase {
	s.lock()
	defer s.mu.Unlock()
	return s.phase
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() domain.Snapshot {
	s.lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Leaderboard returns players ordered by score, ties kept in join order.
func (s *Session) Leaderboard() []domain.LeaderboardEntry {
	s.lock()
	defer s.mu.Unlock()
	return s.leaderboardLocked()
}

// Subscribe returns a channel receiving a snapshot after every state change.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 8)

	s.lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) mustBeProvisioned() {
	if s == nil {
		panic(domain.ErrSessionNotProvisioned)
	}
}

func (s *Session) lock() {
	s.mustBeProvisioned()
	s.mu.Lock()
}

func (s *Session) beginRoundLocked(question domain.Question) {
	q := question
	start := s.now()
	s.room.CurrentQuestion = &q
	s.room.RoundStartTime = &start
	for _, p := range s.room.Players {
		p.HasAnswered = false
	}
	s.roundResults = nil
	s.timeRemaining = s.room.Settings.RoundTime
	s.showingAnswer = false
	s.phase = domain.PhasePlaying
	s.recorder.RoundStarted()
}

func (s *Session) finishLocked(winner *domain.Player, reason string) {
	s.winner = winner
	s.room.Status = domain.RoomFinished
	s.phase = domain.PhaseWinner
	s.recorder.GameFinished(reason)
	s.log.WithFields(logrus.Fields{
		"room":   s.room.Code,
		"winner": winner.Name,
		"score":  winner.Score,
		"reason": reason,
	}).Info("game finished")
	s.broadcastLocked()
}

// leaderLocked returns the top scorer; earlier roster positions win ties.
func (s *Session) leaderLocked() *domain.Player {
	ranked := make([]*domain.Player, len(s.room.Players))
	copy(ranked, s.room.Players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked[0]
}

func (s *Session) playerLocked(id string) *domain.Player {
	if s.room == nil {
		return nil
	}
	for _, p := range s.room.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Session) broadcastLocked() {
	if len(s.subscribers) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			// drop the stale update so a slow reader never blocks the game
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (s *Session) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		Phase:           s.phase,
		CurrentPlayer:   copyPlayer(s.currentPlayer),
		RoundResults:    append([]domain.RoundResult{}, s.roundResults...),
		UsedQuestionIDs: append([]string{}, s.usedOrder...),
		TimeRemaining:   s.timeRemaining,
		ShowingAnswer:   s.showingAnswer,
		Winner:          copyPlayer(s.winner),
		Leaderboard:     s.leaderboardLocked(),
	}
	if s.room != nil {
		room := *s.room
		room.Players = make([]*domain.Player, len(s.room.Players))
		for i, p := range s.room.Players {
			room.Players[i] = copyPlayer(p)
		}
		if s.room.CurrentQuestion != nil {
			q := *s.room.CurrentQuestion
			room.CurrentQuestion = &q
		}
		if s.room.RoundStartTime != nil {
			t := *s.room.RoundStartTime
			room.RoundStartTime = &t
		}
		snap.Room = &room
	}
	return snap
}

func (s *Session) leaderboardLocked() []domain.LeaderboardEntry {
	if s.room == nil {
		return []domain.LeaderboardEntry{}
	}
	entries := make([]domain.LeaderboardEntry, 0, len(s.room.Players))
	for _, p := range s.room.Players {
		entries = append(entries, domain.LeaderboardEntry{
			PlayerID: p.ID,
			Name:     p.Name,
			Score:    p.Score,
			IsHost:   p.IsHost,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

func copyPlayer(p *domain.Player) *domain.Player {
	if p == nil {
		return nil
	}
	cp := *p
	if p.LastAnswerTime != nil {
		t := *p.LastAnswerTime
		cp.LastAnswerTime = &t
	}
	return &cp
}
