package websocket

import (
	"encoding/json"

	"party-service/internal/party"
)

type MessageType string

// Client -> Server
const (
	MessageTypeCreateParty       MessageType = "create_party"
	MessageTypeJoinParty         MessageType = "join_party"
	MessageTypeGetPartyState     MessageType = "get_party_state"
	MessageTypeStartGame         MessageType = "start_game"
	MessageTypeSubmitAnswer      MessageType = "submit_answer"
	MessageTypeSubmitValidation  MessageType = "submit_validation"
	MessageTypeAdvanceValidation MessageType = "advance_validation"
	MessageTypeLeaveParty        MessageType = "leave_party"
	MessageTypeKickPlayer        MessageType = "kick_player"
	MessageTypeResetPartyCode    MessageType = "reset_party_code"
	MessageTypeRematchVote       MessageType = "submit_rematch_vote"
	MessageTypePing              MessageType = "ping"
)

// Message is the inbound envelope. The payload stays raw until the type is
// known.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outboundMessage struct {
	Type    party.EventType `json:"type"`
	Payload any             `json:"payload,omitempty"`
}

type SettingsPayload struct {
	Difficulty      string   `json:"difficulty"`
	TimePerQuestion int      `json:"timePerQuestion"`
	NumQuestions    int      `json:"numQuestions"`
	Categories      []string `json:"categories"`
}

type CreatePartyPayload struct {
	PlayerName string          `json:"playerName"`
	GameID     string          `json:"gameId"`
	Settings   SettingsPayload `json:"settings"`
}

type JoinPartyPayload struct {
	PartyCode  string `json:"partyCode"`
	PlayerName string `json:"playerName"`
}

type PartyRefPayload struct {
	PartyCode string `json:"partyCode"`
}

type StartGamePayload struct {
	PartyCode string `json:"partyCode"`
	IsRematch bool   `json:"isRematch,omitempty"`
}

type SubmitAnswerPayload struct {
	PartyCode     string `json:"partyCode"`
	QuestionIndex int    `json:"questionIndex"`
	Answer        any    `json:"answer"`
}

type SubmitValidationPayload struct {
	PartyCode     string `json:"partyCode"`
	PlayerID      string `json:"playerId"`
	QuestionIndex int    `json:"questionIndex"`
	IsCorrect     bool   `json:"isCorrect"`
}

type AdvanceValidationPayload struct {
	PartyCode     string `json:"partyCode"`
	QuestionIndex int    `json:"questionIndex"`
	PlayerIndex   int    `json:"playerIndex"`
}

type KickPlayerPayload struct {
	PartyCode string `json:"partyCode"`
	PlayerID  string `json:"playerId"`
}
