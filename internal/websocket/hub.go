package websocket

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"party-service/internal/party"
)

type ClientMessage struct {
	Client  *Client
	Message Message
}

// Hub tracks live connections and their room subscriptions, and dispatches
// inbound messages to the engine. It is the engine's transport registry:
// rooms are keyed by party code and follow the code when it changes.
type Hub struct {
	Register      chan *Client
	Unregister    chan *Client
	HandleMessage chan *ClientMessage

	engine *party.Engine

	mu      sync.RWMutex
	clients map[string]*Client         // conn ID -> client
	rooms   map[string]map[string]bool // party code -> conn IDs
}

func NewHub() *Hub {
	return &Hub{
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		HandleMessage: make(chan *ClientMessage),
		clients:       make(map[string]*Client),
		rooms:         make(map[string]map[string]bool),
	}
}

// SetEngine wires the engine in after construction. The hub and the engine
// reference each other, so one side has to be attached late.
func (h *Hub) SetEngine(engine *party.Engine) {
	h.engine = engine
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case clientMsg := <-h.HandleMessage:
			h.handleClientMessage(clientMsg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	log.Printf("Client registered: conn=%s", client.ID)
	client.SendMessage(party.EventConnected, party.ConnectedPayload{ConnectionID: client.ID})
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	current, ok := h.clients[client.ID]
	if !ok || current != client {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ID)
	for code, members := range h.rooms {
		if members[client.ID] {
			delete(members, client.ID)
			if len(members) == 0 {
				delete(h.rooms, code)
			}
		}
	}
	close(client.Send)
	h.mu.Unlock()

	log.Printf("Client unregistered: conn=%s", client.ID)
	go h.engine.Disconnect(client.ID)
}

// handleClientMessage decodes the typed payload and hands the operation to
// the engine. Each dispatch runs in its own goroutine; the engine's
// per-party locks serialize what has to be serial, and a slow party never
// stalls the hub loop.
func (h *Hub) handleClientMessage(clientMsg *ClientMessage) {
	client := clientMsg.Client
	msg := clientMsg.Message

	log.Printf("Received message: type=%s, conn=%s", msg.Type, client.ID)

	switch msg.Type {
	case MessageTypeCreateParty:
		var p CreatePartyPayload
		if !h.decode(client, msg.Payload, &p) {
			return
		}
		go h.engine.CreateParty(client.ID, party.CreatePartyRequest{
			PlayerName:      p.PlayerName,
			GameID:          p.GameID,
			Difficulty:      p.Settings.Difficulty,
			TimePerQuestion: p.Settings.TimePerQuestion,
			NumQuestions:    p.Settings.NumQuestions,
			Categories:      p.Settings.Categories,
		})

	case MessageTypeJoinParty:
		var p JoinPartyPayload
		if !h.decode(client, msg.Payload, &p) {
			return
		}
		go h.engine.JoinParty(client.ID, p.PartyCode, p.PlayerName)

	case MessageTypeGetPartyState:
		var p PartyRefPayload
		if !h.decode(client, msg.Payload, &p) {
			return
		}
		go h.engine.GetPartyState(client.ID, p.PartyCode)

	case MessageTypeStartGame:
		var p StartGamePayload
		if !h.decode(client, msg.Payload, &p) {
			return
		}
		go h.engine.StartGame(client.ID, p.PartyCode, p.IsRematch)

	case MessageTypeSubmitAnswer:
		var p SubmitAnswerPayload
		if !h.decode(client, msg.Payload, &p) {
			return
		}
		go h.engine.SubmitAnswer(client.ID, p.PartyCode, p.QuestionIndex, p.Answer)

	case MessageTypeSubmitValidation:
		var p SubmitValidationPayload
		if !h.decode(client, msg.Payload, &p) {
			return
		}
		go h.engine.SubmitValidation(client.ID, p.PartyCode, p.PlayerID, p.QuestionIndex, p.IsCorrect)

	case MessageTypeAdvanceValidation:
		var p AdvanceValidationPayload
		if !h.decode(client, msg.Payload, &p) {
			return
		}
		go h.engine.AdvanceValidation(p.PartyCode, p.QuestionIndex, p.PlayerIndex)

	case MessageTypeLeaveParty:
		var p PartyRefPayload
		if !h.decode(client, msg.Payload, &p) {
			return
		}
		go h.engine.LeaveParty(client.ID, p.PartyCode)

	case MessageTypeKickPlayer:
		var p KickPlayerPayload
		if !h.decode(client, msg.Payload, &p) {
			return
		}
		go h.engine.KickPlayer(client.ID, p.PartyCode, p.PlayerID)

	case MessageTypeResetPartyCode:
		var p PartyRefPayload
		if !h.decode(client, msg.Payload, &p) {
			return
		}
		go h.engine.ResetPartyCode(client.ID, p.PartyCode)

	case MessageTypeRematchVote:
		var p PartyRefPayload
		if !h.decode(client, msg.Payload, &p) {
			return
		}
		go h.engine.SubmitRematchVote(client.ID, p.PartyCode)

	case MessageTypePing:
		client.SendMessage(party.EventPong, nil)

	default:
		client.SendError(fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
}

func (h *Hub) decode(client *Client, raw json.RawMessage, dst any) bool {
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("Failed to decode payload from %s: %v", client.ID, err)
		client.SendError("Invalid payload")
		return false
	}
	return true
}

// JoinRoom subscribes a connection to a party's broadcasts.
func (h *Hub) JoinRoom(connID, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[code] == nil {
		h.rooms[code] = make(map[string]bool)
	}
	h.rooms[code][connID] = true
}

func (h *Hub) LeaveRoom(connID, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, ok := h.rooms[code]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(h.rooms, code)
		}
	}
}

// Broadcast marshals once and fans out to every connection in the room.
func (h *Hub) Broadcast(code string, event party.EventType, payload any) {
	data, err := json.Marshal(outboundMessage{Type: event, Payload: payload})
	if err != nil {
		log.Printf("Failed to marshal broadcast: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for connID := range h.rooms[code] {
		if client, ok := h.clients[connID]; ok {
			client.enqueue(data)
		}
	}
}

func (h *Hub) SendTo(connID string, event party.EventType, payload any) {
	h.mu.RLock()
	client, ok := h.clients[connID]
	h.mu.RUnlock()

	if ok {
		client.SendMessage(event, payload)
	}
}

// ForceDisconnect closes the underlying connection. The read pump notices
// and the normal unregister path runs.
func (h *Hub) ForceDisconnect(connID string) {
	h.mu.RLock()
	client, ok := h.clients[connID]
	h.mu.RUnlock()

	if ok {
		client.Conn.Close()
	}
}

func (h *Hub) RoomMembers(code string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := make([]string, 0, len(h.rooms[code]))
	for connID := range h.rooms[code] {
		members = append(members, connID)
	}
	return members
}
