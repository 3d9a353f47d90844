package party

import "party-service/internal/models"

type EventType string

// Server -> Client
const (
	EventConnected           EventType = "connected"
	EventPartyState          EventType = "party_state"
	EventPartyNotFound       EventType = "party_not_found"
	EventGameStarted         EventType = "game_started"
	EventNextQuestion        EventType = "next_question"
	EventGameOver            EventType = "game_over"
	EventFinalGameOver       EventType = "final_game_over"
	EventHostDisconnected    EventType = "host_disconnected"
	EventHostPromoted        EventType = "host_promoted"
	EventPartyClosed         EventType = "party_closed"
	EventKicked              EventType = "kicked"
	EventKickResult          EventType = "kick_result"
	EventResetCodeResult     EventType = "reset_code_result"
	EventRematchVoteReceived EventType = "rematch_vote_received"
	EventRematchStarting     EventType = "rematch_starting"
	EventTriggerRematch      EventType = "trigger_rematch"
	EventValidationAdvanced  EventType = "validation_advanced"
	EventError               EventType = "error"
	EventPong                EventType = "pong"
)

type ConnectedPayload struct {
	ConnectionID string `json:"connectionId"`
}

// QuestionPayload is shared by game_started and next_question. The question
// inside has already been through the sanitizer.
type QuestionPayload struct {
	Question        models.Question `json:"question"`
	QuestionIndex   int             `json:"questionIndex"`
	TimePerQuestion int             `json:"timePerQuestion"`
	StartTime       int64           `json:"startTime"`
}

type GameOverPayload struct {
	ValidationRequired bool `json:"validationRequired"`
}

type FinalGameOverPayload struct {
	FinalScores []models.FinalScore `json:"finalScores"`
}

type HostDisconnectedPayload struct {
	Message            string `json:"message"`
	TimeoutMs          int64  `json:"timeoutMs"`
	HostDisconnectedAt int64  `json:"hostDisconnectedAt"`
}

type HostPromotedPayload struct {
	NewHostID   string `json:"newHostId"`
	NewHostName string `json:"newHostName"`
}

type PartyClosedPayload struct {
	Reason string `json:"reason"`
}

type KickedPayload struct {
	Reason string `json:"reason"`
}

// OpResultPayload is the directed acknowledgement for kick_player and
// reset_party_code requests.
type OpResultPayload struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	NewCode string `json:"newCode,omitempty"`
}

type RematchVoteReceivedPayload struct {
	VotesReceived int `json:"votesReceived"`
	TotalPlayers  int `json:"totalPlayers"`
}

type TriggerRematchPayload struct {
	PartyCode string `json:"partyCode"`
}

type ValidationAdvancedPayload struct {
	QuestionIndex int `json:"questionIndex"`
	PlayerIndex   int `json:"playerIndex"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
