package models

import "time"

// Party is one live game room. Players and Game persist as JSON blobs in
// the parties table; the JSON tags below are the wire format clients see.
type Party struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	Players   []Player   `json:"players"`
	Game      *GameState `json:"game"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Player.ID is the transient connection identity. Index 0 of Party.Players
// is always the current host.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type GameState struct {
	Type                           string         `json:"type"`
	Settings                       GameSettings   `json:"settings"`
	CurrentQuestion                int            `json:"currentQuestion"`
	Questions                      []Question     `json:"questions,omitempty"`
	StartTime                      int64          `json:"startTime,omitempty"` // unix millis, countdown sync anchor
	PlayerAnswers                  []PlayerAnswer `json:"playerAnswers,omitempty"`
	CurrentQuestionAnswersReceived map[string]int `json:"currentQuestionAnswersReceived,omitempty"`
	RematchVotes                   []string       `json:"rematchVotes,omitempty"`
	HostDisconnected               bool           `json:"hostDisconnected,omitempty"`
	HostDisconnectedAt             int64          `json:"hostDisconnectedAt,omitempty"` // unix millis
}

// GameSettings is immutable for a session run.
type GameSettings struct {
	Difficulty      string   `json:"difficulty"`
	TimePerQuestion int      `json:"timePerQuestion"` // seconds
	NumQuestions    int      `json:"numQuestions"`
	Categories      []string `json:"categories"`
}

// Question answers are `any` because the bank mixes plain strings,
// ranking lists and petit-bac grids.
type Question struct {
	Category   string   `json:"category"`
	Difficulty string   `json:"difficulty"`
	Type       string   `json:"type"`
	Question   string   `json:"question"`
	QuestionFr string   `json:"questionFr,omitempty"`
	Options    []string `json:"options,omitempty"`
	ImageURLs  []string `json:"imageUrls,omitempty"`
	AudioURL   string   `json:"audioUrl,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Answer     any      `json:"answer,omitempty"`
	AnswerFr   any      `json:"answerFr,omitempty"`
}

// PlayerAnswer is keyed by (PlayerID, QuestionIndex); at most one record
// per key, resubmissions overwrite in place. Answer is never omitted so
// completion counts stay correct even for empty submissions.
type PlayerAnswer struct {
	PlayerID      string `json:"playerId"`
	PlayerName    string `json:"playerName"`
	QuestionIndex int    `json:"questionIndex"`
	Answer        any    `json:"answer"`
	Validated     bool   `json:"validated"`
	IsCorrect     bool   `json:"isCorrect"`
}

type FinalScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}
