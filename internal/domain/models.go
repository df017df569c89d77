package domain

import "time"

// Phase is the screen-level state the whole session is in.
type Phase string

const (
	PhaseLanding     Phase = "landing"
	PhaseCreate      Phase = "create"
	PhaseJoin        Phase = "join"
	PhaseLobby       Phase = "lobby"
	PhasePlaying     Phase = "playing"
	PhaseRoundResult Phase = "roundResult"
	PhaseWinner      Phase = "winner"
)

// RoomStatus tracks the lifecycle of a room.
type RoomStatus string

const (
	RoomWaiting  RoomStatus = "waiting"
	RoomPlaying  RoomStatus = "playing"
	RoomFinished RoomStatus = "finished"
)

// QuestionType distinguishes plain prompts from picture rounds.
type QuestionType string

const (
	QuestionText  QuestionType = "text"
	QuestionImage QuestionType = "image"
)

// Player represents a participant and their accumulated score.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	IsHost      bool   `json:"isHost"`
	HasAnswered bool   `json:"hasAnswered"`
	// LastAnswerTime is the latency of the most recent correct answer, in milliseconds since round start.
	LastAnswerTime *int64 `json:"lastAnswerTime,omitempty"`
}

// Question is an immutable trivia item. Answers are compared case-insensitively.
type Question struct {
	ID       string       `json:"id" bson:"_id"`
	Type     QuestionType `json:"type" bson:"type"`
	Question string       `json:"question" bson:"question"`
	Answer   string       `json:"answer" bson:"answer"`
	ImageURL string       `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}

// GameSettings are fixed at room creation and editable by the host before the game starts.
type GameSettings struct {
	WinningScore int `json:"winningScore"`
	RoundTime    int `json:"roundTime"` // seconds
}

// SettingsUpdate carries a partial settings change; nil fields are left untouched.
type SettingsUpdate struct {
	WinningScore *int `json:"winningScore,omitempty"`
	RoundTime    *int `json:"roundTime,omitempty"`
}

// Room is the single game room owned by a session.
type Room struct {
	ID              string       `json:"id"`
	Code            string       `json:"code"`
	Players         []*Player    `json:"players"`
	Status          RoomStatus   `json:"status"`
	CurrentQuestion *Question    `json:"currentQuestion,omitempty"`
	CurrentRound    int          `json:"currentRound"`
	RoundStartTime  *time.Time   `json:"roundStartTime,omitempty"`
	Settings        GameSettings `json:"settings"`
}

// RoundResult records one correct submission in the current round.
type RoundResult struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Answer     string `json:"answer"`
	IsCorrect  bool   `json:"isCorrect"`
	Points     int    `json:"points"`
	AnswerTime int64  `json:"answerTime"` // milliseconds since round start
}

// LeaderboardEntry is a snapshot-friendly view of a player.
type LeaderboardEntry struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	IsHost   bool   `json:"isHost"`
}

// Snapshot is a deep copy of the session state handed to presentation code.
type Snapshot struct {
	Phase           Phase              `json:"phase"`
	CurrentPlayer   *Player            `json:"currentPlayer,omitempty"`
	Room            *Room              `json:"room,omitempty"`
	RoundResults    []RoundResult      `json:"roundResults"`
	UsedQuestionIDs []string           `json:"usedQuestionIds"`
	TimeRemaining   int                `json:"timeRemaining"`
	ShowingAnswer   bool               `json:"showingAnswer"`
	Winner          *Player            `json:"winner,omitempty"`
	Leaderboard     []LeaderboardEntry `json:"leaderboard"`
}
