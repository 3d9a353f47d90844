package party

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"math/rand"
	"slices"
	"time"

	"party-service/config"
	"party-service/internal/constants"
	"party-service/internal/models"
	"party-service/internal/questions"
	"party-service/internal/repository"
)

// Store is the durable record store the engine reads and writes party
// blobs through.
type Store interface {
	GetByCode(ctx context.Context, code string) (*models.Party, error)
	Insert(ctx context.Context, code string, players []models.Player, game *models.GameState) error
	UpdateFields(ctx context.Context, code string, fields repository.UpdateFields) error
	DeleteByCode(ctx context.Context, code string) error
	ListAll(ctx context.Context) ([]*models.Party, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}

// Registry is the connection-transport boundary: rooms keyed by party code,
// directed sends, and forced disconnection.
type Registry interface {
	JoinRoom(connID, code string)
	LeaveRoom(connID, code string)
	Broadcast(code string, event EventType, payload any)
	SendTo(connID string, event EventType, payload any)
	ForceDisconnect(connID string)
	RoomMembers(code string) []string
}

// Publisher emits party lifecycle events for downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// Cache backs the submission dedup window.
type Cache interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
}

// Engine owns the party lifecycle: the state machine from creation through
// play, validation, scoring, rematch and teardown. All mutating operations
// on a party serialize on its per-code lock.
type Engine struct {
	store     Store
	registry  Registry
	bank      *questions.Bank
	cache     Cache     // optional
	publisher Publisher // optional
	queue     string
	cfg       config.PartyConfig

	locks  *codeLocks
	timers *schedule
}

func NewEngine(
	store Store,
	registry Registry,
	bank *questions.Bank,
	cacheClient Cache,
	publisher Publisher,
	queue string,
	cfg config.PartyConfig,
) *Engine {
	return &Engine{
		store:     store,
		registry:  registry,
		bank:      bank,
		cache:     cacheClient,
		publisher: publisher,
		queue:     queue,
		cfg:       cfg,
		locks:     newCodeLocks(),
		timers:    newSchedule(),
	}
}

type CreatePartyRequest struct {
	PlayerName      string
	GameID          string
	Difficulty      string
	TimePerQuestion int
	NumQuestions    int
	Categories      []string
}

func (e *Engine) CreateParty(connID string, req CreatePartyRequest) {
	ctx := context.Background()

	if msg := validateCreateRequest(req); msg != "" {
		log.Printf("create_party rejected for %s: %s", connID, msg)
		e.registry.SendTo(connID, EventError, ErrorPayload{Message: msg})
		return
	}

	code := e.generateUniqueCode(ctx)
	unlock := e.locks.lock(code)
	defer unlock()

	players := []models.Player{{ID: connID, Name: req.PlayerName, Score: 0}}
	game := &models.GameState{
		Type: req.GameID,
		Settings: models.GameSettings{
			Difficulty:      req.Difficulty,
			TimePerQuestion: req.TimePerQuestion,
			NumQuestions:    req.NumQuestions,
			Categories:      req.Categories,
		},
	}

	if err := e.store.Insert(ctx, code, players, game); err != nil {
		log.Printf("Failed to create party %s: %v", code, err)
		e.registry.SendTo(connID, EventError, ErrorPayload{Message: "Failed to create party"})
		return
	}

	e.registry.JoinRoom(connID, code)

	party, err := e.store.GetByCode(ctx, code)
	if err != nil {
		log.Printf("Failed to load created party %s: %v", code, err)
		return
	}
	e.broadcastState(party)
	e.publishEvent(ctx, "party_created", code, map[string]any{"host": req.PlayerName})
}

func (e *Engine) GetPartyState(connID, code string) {
	ctx := context.Background()
	unlock := e.locks.lock(code)
	defer unlock()

	party, err := e.store.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrPartyNotFound) {
		e.registry.SendTo(connID, EventPartyNotFound, nil)
		return
	}
	if err != nil {
		log.Printf("get_party_state failed for %s: %v", code, err)
		return
	}

	e.registry.JoinRoom(connID, code)
	e.registry.SendTo(connID, EventPartyState, SanitizeParty(party))
}

// JoinParty adds a new player, or rebinds an existing one when the name
// matches (reconnect): the stale connection identity is replaced and any
// answers recorded under it migrate to the new identity. A rejoin matching
// the host slot clears an active grace window.
func (e *Engine) JoinParty(connID, code, playerName string) {
	ctx := context.Background()
	unlock := e.locks.lock(code)
	defer unlock()

	party, err := e.store.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrPartyNotFound) {
		e.registry.SendTo(connID, EventPartyNotFound, nil)
		return
	}
	if err != nil {
		log.Printf("join_party failed for %s: %v", code, err)
		return
	}

	players := party.Players
	game := party.Game

	existingIdx := slices.IndexFunc(players, func(p models.Player) bool { return p.Name == playerName })
	if existingIdx != -1 {
		oldID := players[existingIdx].ID
		players[existingIdx].ID = connID
		if migrateAnswers(game, oldID, connID) {
			log.Printf("Migrated answers from %s to %s in party %s", oldID, connID, code)
		}
	} else {
		// Same connection joining twice is a no-op, not an error.
		if indexOfPlayer(players, connID) != -1 {
			return
		}
		players = append(players, models.Player{ID: connID, Name: playerName, Score: 0})
	}

	if game.HostDisconnected && existingIdx == 0 {
		game.HostDisconnected = false
		game.HostDisconnectedAt = 0
		e.timers.cancelGrace(code)
		log.Printf("Host rejoined party %s within grace window", code)
	}

	if err := e.store.UpdateFields(ctx, code, repository.UpdateFields{Players: &players, Game: game}); err != nil {
		log.Printf("join_party persist failed for %s: %v", code, err)
		return
	}

	party.Players = players
	e.registry.JoinRoom(connID, code)
	e.broadcastState(party)
}

// StartGame selects the run's questions, resets per-run state and kicks off
// the question scheduler. Host only; a rematch keeps accumulated scores.
func (e *Engine) StartGame(connID, code string, isRematch bool) {
	ctx := context.Background()
	unlock := e.locks.lock(code)
	defer unlock()

	party, err := e.store.GetByCode(ctx, code)
	if err != nil {
		log.Printf("start_game failed for %s: %v", code, err)
		return
	}
	if len(party.Players) == 0 || party.Players[0].ID != connID {
		log.Printf("Non-host %s tried to start game in party %s", connID, code)
		return
	}

	game := party.Game
	selected := e.bank.Select(game.Settings.Difficulty, game.Settings.Categories, game.Settings.NumQuestions)
	if len(selected) == 0 {
		log.Printf("No questions match settings for party %s", code)
		e.registry.SendTo(connID, EventError, ErrorPayload{Message: "No questions available for these settings"})
		return
	}

	players := party.Players
	game.CurrentQuestion = 0
	game.Questions = selected
	game.StartTime = time.Now().UnixMilli()
	game.PlayerAnswers = []models.PlayerAnswer{}
	game.CurrentQuestionAnswersReceived = map[string]int{}
	game.RematchVotes = nil
	game.HostDisconnected = false
	game.HostDisconnectedAt = 0
	if !isRematch {
		for i := range players {
			players[i].Score = 0
		}
	}

	if err := e.store.UpdateFields(ctx, code, repository.UpdateFields{Players: &players, Game: game}); err != nil {
		log.Printf("start_game persist failed for %s: %v", code, err)
		return
	}

	e.broadcastState(party)
	e.registry.Broadcast(code, EventGameStarted, QuestionPayload{
		Question:        SanitizeQuestion(game.Questions[0]),
		QuestionIndex:   0,
		TimePerQuestion: game.Settings.TimePerQuestion,
		StartTime:       game.StartTime,
	})

	e.timers.startQuestion(code, time.Duration(game.Settings.TimePerQuestion)*time.Second, e.advanceQuestion)
	e.publishEvent(ctx, "game_started", code, map[string]any{
		"numQuestions": len(game.Questions),
		"rematch":      isRematch,
	})
}

// advanceQuestion fires on question-timer expiry. The session advances by
// the clock alone, never by answer completion, so a silent player cannot
// stall the room.
func (e *Engine) advanceQuestion(code string) {
	ctx := context.Background()
	unlock := e.locks.lock(code)
	defer unlock()

	party, err := e.store.GetByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, repository.ErrPartyNotFound) {
			log.Printf("Question advance failed for %s: %v", code, err)
		}
		return
	}

	game := party.Game
	if len(game.Questions) == 0 || game.CurrentQuestion >= len(game.Questions) {
		return
	}

	game.CurrentQuestion++
	game.StartTime = time.Now().UnixMilli()

	if err := e.store.UpdateFields(ctx, code, repository.UpdateFields{Game: game}); err != nil {
		log.Printf("Question advance persist failed for %s: %v", code, err)
		return
	}

	if game.CurrentQuestion < len(game.Questions) {
		e.registry.Broadcast(code, EventNextQuestion, QuestionPayload{
			Question:        SanitizeQuestion(game.Questions[game.CurrentQuestion]),
			QuestionIndex:   game.CurrentQuestion,
			TimePerQuestion: game.Settings.TimePerQuestion,
			StartTime:       game.StartTime,
		})
		e.timers.startQuestion(code, time.Duration(game.Settings.TimePerQuestion)*time.Second, e.advanceQuestion)
		return
	}

	// All questions asked; the party is now awaiting host validation.
	log.Printf("All questions finished for party %s: %d answers stored, expected %d",
		code, len(game.PlayerAnswers), len(party.Players)*len(game.Questions))
	e.registry.Broadcast(code, EventGameOver, GameOverPayload{ValidationRequired: true})
	e.timers.cancelQuestion(code)
}

// SubmitAnswer upserts a player's answer. Submissions are accepted for the
// current question or up to SubmitTolerance questions behind it, covering
// the race between the scheduler advancing and an in-flight submission;
// anything else is dropped.
func (e *Engine) SubmitAnswer(connID, code string, questionIndex int, answer any) {
	ctx := context.Background()

	if !e.allowSubmit(ctx, code, connID, questionIndex, answer) {
		return
	}

	unlock := e.locks.lock(code)
	defer unlock()

	party, err := e.store.GetByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, repository.ErrPartyNotFound) {
			log.Printf("submit_answer failed for %s: %v", code, err)
		}
		return
	}

	game := party.Game
	if questionIndex < 0 || questionIndex >= len(game.Questions) {
		log.Printf("Rejecting submit_answer for %s: index %d out of range", code, questionIndex)
		return
	}
	if questionIndex > game.CurrentQuestion || questionIndex < game.CurrentQuestion-e.cfg.SubmitTolerance {
		log.Printf("Rejecting submit_answer for %s: received index=%d current=%d", code, questionIndex, game.CurrentQuestion)
		return
	}

	playerName := "Unknown"
	if idx := indexOfPlayer(party.Players, connID); idx != -1 {
		playerName = party.Players[idx].Name
	}

	upsertAnswer(game, connID, playerName, questionIndex, answer)
	bumpReceivedCount(game, questionIndex)

	players := party.Players
	if err := e.store.UpdateFields(ctx, code, repository.UpdateFields{Players: &players, Game: game}); err != nil {
		log.Printf("submit_answer persist failed for %s: %v", code, err)
		return
	}

	e.broadcastState(party)
}

// allowSubmit drops repeats of an identical submission from the same
// connection inside the throttle window. The key includes a payload digest,
// so a changed answer always passes and still overwrites in place.
// Best-effort: without Redis (or on Redis errors) everything passes.
func (e *Engine) allowSubmit(ctx context.Context, code, connID string, questionIndex int, answer any) bool {
	if e.cache == nil || e.cfg.SubmitThrottle <= 0 {
		return true
	}
	payload, err := json.Marshal(answer)
	if err != nil {
		return true
	}
	digest := fnv.New64a()
	digest.Write(payload)
	key := fmt.Sprintf("party:%s:conn:%s:q:%d:%x:submit", code, connID, questionIndex, digest.Sum64())
	won, err := e.cache.SetNX(ctx, key, 1, e.cfg.SubmitThrottle)
	if err != nil {
		log.Printf("Submission throttle check failed for %s: %v", code, err)
		return true
	}
	if !won {
		log.Printf("Dropping duplicate submission from %s for %s question %d", connID, code, questionIndex)
	}
	return won
}

// SubmitValidation records the host's verdict for one answer. Scores move
// by the delta between verdicts, so toggling is safe. Once every answer is
// validated the final results broadcast and the party is torn down after a
// short delay.
func (e *Engine) SubmitValidation(connID, code, targetPlayerID string, targetQuestionIndex int, isCorrect bool) {
	ctx := context.Background()
	unlock := e.locks.lock(code)
	defer unlock()

	party, err := e.store.GetByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, repository.ErrPartyNotFound) {
			log.Printf("submit_validation failed for %s: %v", code, err)
		}
		return
	}
	if len(party.Players) == 0 || party.Players[0].ID != connID {
		log.Printf("Non-host %s tried to submit validation in party %s", connID, code)
		return
	}

	game := party.Game
	if !applyValidation(game, party.Players, targetPlayerID, targetQuestionIndex, isCorrect) {
		return
	}

	players := party.Players
	if err := e.store.UpdateFields(ctx, code, repository.UpdateFields{Players: &players, Game: game}); err != nil {
		log.Printf("submit_validation persist failed for %s: %v", code, err)
		return
	}

	e.broadcastState(party)

	if fullyValidated(game, len(party.Players)) {
		finalScores := make([]models.FinalScore, len(party.Players))
		for i, p := range party.Players {
			finalScores[i] = models.FinalScore{Name: p.Name, Score: p.Score}
		}
		e.registry.Broadcast(code, EventFinalGameOver, FinalGameOverPayload{FinalScores: finalScores})
		e.publishEvent(ctx, "game_finished", code, map[string]any{"finalScores": finalScores})

		// Let clients render final results before the record disappears.
		time.AfterFunc(e.cfg.TeardownDelay, func() { e.teardownParty(code) })
	}
}

func (e *Engine) teardownParty(code string) {
	ctx := context.Background()
	unlock := e.locks.lock(code)
	defer unlock()
	e.deleteParty(ctx, code)
}

// Disconnect handles a dropped connection: the live parties are scanned for
// the identity. A dropped host opens a grace window instead of closing the
// party; a dropped guest is removed immediately.
func (e *Engine) Disconnect(connID string) {
	ctx := context.Background()

	parties, err := e.store.ListAll(ctx)
	if err != nil {
		log.Printf("Disconnect scan failed for %s: %v", connID, err)
		return
	}

	for _, party := range parties {
		if indexOfPlayer(party.Players, connID) == -1 {
			continue
		}
		e.handleDrop(party.Code, connID)
		break
	}
}

func (e *Engine) handleDrop(code, connID string) {
	ctx := context.Background()
	unlock := e.locks.lock(code)
	defer unlock()

	party, err := e.store.GetByCode(ctx, code)
	if err != nil {
		return
	}
	idx := indexOfPlayer(party.Players, connID)
	if idx == -1 {
		return
	}

	if idx == 0 {
		log.Printf("Host disconnected, starting grace timer for party %s", code)
		game := party.Game
		game.HostDisconnected = true
		game.HostDisconnectedAt = time.Now().UnixMilli()

		if err := e.store.UpdateFields(ctx, code, repository.UpdateFields{Game: game}); err != nil {
			log.Printf("Host-disconnect persist failed for %s: %v", code, err)
			return
		}

		e.broadcastState(party)
		e.registry.Broadcast(code, EventHostDisconnected, HostDisconnectedPayload{
			Message:            "Host disconnected, waiting for reconnection",
			TimeoutMs:          e.cfg.HostGraceTimeout.Milliseconds(),
			HostDisconnectedAt: game.HostDisconnectedAt,
		})
		e.timers.startGrace(code, e.cfg.HostGraceTimeout, func() { e.hostGraceExpired(code) })
		return
	}

	players := slices.Delete(party.Players, idx, idx+1)
	if err := e.store.UpdateFields(ctx, code, repository.UpdateFields{Players: &players}); err != nil {
		log.Printf("Disconnect persist failed for %s: %v", code, err)
		return
	}
	party.Players = players
	e.broadcastState(party)
	log.Printf("Player removed from party %s", code)
}

// hostGraceExpired fires when the grace window closes with the host still
// gone: the next player is promoted if one exists, otherwise the party
// closes. The former host stays in the roster so a later reconnect by name
// rebinds them as a guest.
func (e *Engine) hostGraceExpired(code string) {
	ctx := context.Background()
	unlock := e.locks.lock(code)
	defer unlock()

	party, err := e.store.GetByCode(ctx, code)
	if err != nil {
		return
	}
	game := party.Game
	if !game.HostDisconnected {
		return
	}
	e.timers.cancelGrace(code)

	if len(party.Players) > 1 {
		players := append([]models.Player{party.Players[1], party.Players[0]}, party.Players[2:]...)
		game.HostDisconnected = false
		game.HostDisconnectedAt = 0

		if err := e.store.UpdateFields(ctx, code, repository.UpdateFields{Players: &players, Game: game}); err != nil {
			log.Printf("Host promotion persist failed for %s: %v", code, err)
			return
		}

		e.registry.Broadcast(code, EventHostPromoted, HostPromotedPayload{
			NewHostID:   players[0].ID,
			NewHostName: players[0].Name,
		})
		party.Players = players
		e.broadcastState(party)
		log.Printf("Host promotion executed for party %s, new host %s", code, players[0].Name)
		return
	}

	e.deleteParty(ctx, code)
	e.registry.Broadcast(code, EventPartyClosed, PartyClosedPayload{Reason: "Host left and no players to continue"})
	e.publishEvent(ctx, "party_closed", code, nil)
	log.Printf("Party %s closed: host left with no remaining players", code)
}

// LeaveParty is an intentional departure. Unlike a drop, a leaving host
// closes the party immediately with no grace period.
func (e *Engine) LeaveParty(connID, code string) {
	ctx := context.Background()
	unlock := e.locks.lock(code)
	defer unlock()

	party, err := e.store.GetByCode(ctx, code)
	if err != nil {
		return
	}
	idx := indexOfPlayer(party.Players, connID)
	if idx == -1 {
		return
	}

	if idx == 0 {
		e.deleteParty(ctx, code)
		e.registry.Broadcast(code, EventPartyClosed, PartyClosedPayload{Reason: "Host left the game"})
		e.publishEvent(ctx, "party_closed", code, nil)
		return
	}

	players := slices.Delete(party.Players, idx, idx+1)
	if err := e.store.UpdateFields(ctx, code, repository.UpdateFields{Players: &players}); err != nil {
		log.Printf("leave_party persist failed for %s: %v", code, err)
		return
	}
	party.Players = players
	e.broadcastState(party)
}

func (e *Engine) KickPlayer(connID, code, playerID string) {
	ctx := context.Background()
	unlock := e.locks.lock(code)
	defer unlock()

	party, err := e.store.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrPartyNotFound) {
		e.registry.SendTo(connID, EventKickResult, OpResultPayload{OK: false, Error: "party_not_found"})
		return
	}
	if err != nil {
		log.Printf("kick_player failed for %s: %v", code, err)
		e.registry.SendTo(connID, EventKickResult, OpResultPayload{OK: false, Error: "internal_error"})
		return
	}
	if len(party.Players) == 0 || party.Players[0].ID != connID {
		e.registry.SendTo(connID, EventKickResult, OpResultPayload{OK: false, Error: "not_host"})
		return
	}

	idx := indexOfPlayer(party.Players, playerID)
	if idx == -1 {
		e.registry.SendTo(connID, EventKickResult, OpResultPayload{OK: false, Error: "player_not_found"})
		return
	}

	players := slices.Delete(party.Players, idx, idx+1)
	if err := e.store.UpdateFields(ctx, code, repository.UpdateFields{Players: &players}); err != nil {
		log.Printf("kick_player persist failed for %s: %v", code, err)
		e.registry.SendTo(connID, EventKickResult, OpResultPayload{OK: false, Error: "internal_error"})
		return
	}

	e.registry.SendTo(playerID, EventKicked, KickedPayload{Reason: "You were kicked from the party by the host."})
	e.registry.ForceDisconnect(playerID)

	party.Players = players
	e.broadcastState(party)
	e.registry.SendTo(connID, EventKickResult, OpResultPayload{OK: true})
	log.Printf("Player %s kicked from party %s", playerID, code)
}

// ResetPartyCode swaps a party onto a freshly generated unique code: the
// record is renamed, every subscribed connection moves to the new room, and
// a pending question timer migrates so the countdown survives the rename.
func (e *Engine) ResetPartyCode(connID, code string) {
	ctx := context.Background()
	unlock := e.locks.lock(code)
	defer unlock()

	party, err := e.store.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrPartyNotFound) {
		e.registry.SendTo(connID, EventResetCodeResult, OpResultPayload{OK: false, Error: "party_not_found"})
		return
	}
	if err != nil {
		log.Printf("reset_party_code failed for %s: %v", code, err)
		e.registry.SendTo(connID, EventResetCodeResult, OpResultPayload{OK: false, Error: "internal_error"})
		return
	}
	if len(party.Players) == 0 || party.Players[0].ID != connID {
		e.registry.SendTo(connID, EventResetCodeResult, OpResultPayload{OK: false, Error: "not_host"})
		return
	}

	newCode := e.generateUniqueCode(ctx)
	if err := e.store.UpdateFields(ctx, code, repository.UpdateFields{Code: &newCode}); err != nil {
		log.Printf("reset_party_code persist failed for %s: %v", code, err)
		e.registry.SendTo(connID, EventResetCodeResult, OpResultPayload{OK: false, Error: "internal_error"})
		return
	}

	for _, member := range e.registry.RoomMembers(code) {
		e.registry.LeaveRoom(member, code)
		e.registry.JoinRoom(member, newCode)
	}
	e.timers.migrateQuestion(code, newCode)

	if updated, err := e.store.GetByCode(ctx, newCode); err == nil {
		e.broadcastState(updated)
	}

	e.registry.SendTo(connID, EventResetCodeResult, OpResultPayload{OK: true, NewCode: newCode})
	log.Printf("Party code changed %s -> %s", code, newCode)
}

// SubmitRematchVote records a rematch opt-in. Once every player has voted,
// the rematch trigger goes to the host, who restarts with the same
// settings via start_game(isRematch).
func (e *Engine) SubmitRematchVote(connID, code string) {
	ctx := context.Background()
	unlock := e.locks.lock(code)
	defer unlock()

	party, err := e.store.GetByCode(ctx, code)
	if err != nil {
		return
	}
	game := party.Game

	if !slices.Contains(game.RematchVotes, connID) {
		game.RematchVotes = append(game.RematchVotes, connID)
	}

	if len(game.RematchVotes) == len(party.Players) {
		e.registry.Broadcast(code, EventRematchStarting, nil)
		hostID := party.Players[0].ID
		time.AfterFunc(e.cfg.RematchTriggerDelay, func() {
			e.registry.SendTo(hostID, EventTriggerRematch, TriggerRematchPayload{PartyCode: code})
		})
		return
	}

	if err := e.store.UpdateFields(ctx, code, repository.UpdateFields{Game: game}); err != nil {
		log.Printf("rematch vote persist failed for %s: %v", code, err)
		return
	}
	e.registry.Broadcast(code, EventRematchVoteReceived, RematchVoteReceivedPayload{
		VotesReceived: len(game.RematchVotes),
		TotalPlayers:  len(party.Players),
	})
}

// AdvanceValidation relays the host's validation cursor to the room. Pure
// UI sync; no party state changes.
func (e *Engine) AdvanceValidation(code string, questionIndex, playerIndex int) {
	e.registry.Broadcast(code, EventValidationAdvanced, ValidationAdvancedPayload{
		QuestionIndex: questionIndex,
		PlayerIndex:   playerIndex,
	})
	log.Printf("Validation advanced: question %d, player %d in party %s", questionIndex, playerIndex, code)
}

func (e *Engine) broadcastState(party *models.Party) {
	e.registry.Broadcast(party.Code, EventPartyState, SanitizeParty(party))
}

func (e *Engine) deleteParty(ctx context.Context, code string) {
	if err := e.store.DeleteByCode(ctx, code); err != nil {
		log.Printf("Failed to delete party %s: %v", code, err)
		return
	}
	e.timers.cancelAll(code)
	log.Printf("Party deleted: %s", code)
}

// generateUniqueCode retries generation until the store reports no
// collision. If the uniqueness probe itself fails, the generated code is
// returned best-effort rather than hard-failing creation.
func (e *Engine) generateUniqueCode(ctx context.Context) string {
	for {
		code := randomCode(e.cfg.CodeLength)
		exists, err := e.store.CodeExists(ctx, code)
		if err != nil {
			log.Printf("Code uniqueness check failed: %v", err)
			return code
		}
		if !exists {
			return code
		}
	}
}

func randomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = constants.CodeAlphabet[rand.Intn(len(constants.CodeAlphabet))]
	}
	return string(b)
}

func (e *Engine) publishEvent(ctx context.Context, event, code string, data any) {
	if e.publisher == nil {
		return
	}
	body, err := json.Marshal(map[string]any{
		"event":     event,
		"partyCode": code,
		"timestamp": time.Now().UnixMilli(),
		"data":      data,
	})
	if err != nil {
		return
	}
	if err := e.publisher.Publish(ctx, e.queue, body); err != nil {
		log.Printf("Failed to publish %s event for %s: %v", event, code, err)
	}
}

func indexOfPlayer(players []models.Player, connID string) int {
	return slices.IndexFunc(players, func(p models.Player) bool { return p.ID == connID })
}

func validateCreateRequest(req CreatePartyRequest) string {
	if req.PlayerName == "" {
		return "Player name is required"
	}
	switch req.Difficulty {
	case constants.DifficultyEasy, constants.DifficultyMedium, constants.DifficultyHard:
	default:
		return "Invalid difficulty"
	}
	if req.TimePerQuestion <= 0 {
		return "Invalid time per question"
	}
	if req.NumQuestions <= 0 {
		return "Invalid number of questions"
	}
	if len(req.Categories) == 0 {
		return "At least one category is required"
	}
	return ""
}
