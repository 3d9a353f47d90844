package party

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"party-service/config"
	"party-service/internal/models"
	"party-service/internal/questions"
	"party-service/internal/repository"
)

type fakeStore struct {
	mu      sync.Mutex
	parties map[string]*models.Party
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{parties: make(map[string]*models.Party)}
}

func cloneParty(p *models.Party) *models.Party {
	data, _ := json.Marshal(p)
	var out models.Party
	_ = json.Unmarshal(data, &out)
	return &out
}

func (s *fakeStore) Insert(ctx context.Context, code string, players []models.Player, game *models.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.parties[code] = cloneParty(&models.Party{
		ID:      s.nextID,
		Code:    code,
		Players: players,
		Game:    game,
	})
	return nil
}

func (s *fakeStore) GetByCode(ctx context.Context, code string) (*models.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parties[code]
	if !ok {
		return nil, repository.ErrPartyNotFound
	}
	return cloneParty(p), nil
}

func (s *fakeStore) UpdateFields(ctx context.Context, code string, fields repository.UpdateFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parties[code]
	if !ok {
		return repository.ErrPartyNotFound
	}
	if fields.Players != nil {
		p.Players = cloneParty(&models.Party{Players: *fields.Players}).Players
	}
	if fields.Game != nil {
		p.Game = cloneParty(&models.Party{Game: fields.Game}).Game
	}
	if fields.Code != nil {
		delete(s.parties, code)
		p.Code = *fields.Code
		s.parties[p.Code] = p
	}
	return nil
}

func (s *fakeStore) DeleteByCode(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.parties, code)
	return nil
}

func (s *fakeStore) ListAll(ctx context.Context) ([]*models.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Party
	for _, p := range s.parties {
		out = append(out, cloneParty(p))
	}
	return out, nil
}

func (s *fakeStore) CodeExists(ctx context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.parties[code]
	return ok, nil
}

// onlyCode returns the code of the single stored party.
func (s *fakeStore) onlyCode(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.parties, 1)
	for code := range s.parties {
		return code
	}
	return ""
}

func (s *fakeStore) get(t *testing.T, code string) *models.Party {
	t.Helper()
	p, err := s.GetByCode(context.Background(), code)
	require.NoError(t, err)
	return p
}

type fakeCache struct {
	mu   sync.Mutex
	keys map[string]time.Time
}

func newFakeCache() *fakeCache {
	return &fakeCache{keys: make(map[string]time.Time)}
}

func (c *fakeCache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if until, ok := c.keys[key]; ok && time.Now().Before(until) {
		return false, nil
	}
	c.keys[key] = time.Now().Add(expiration)
	return true, nil
}

type recordedEvent struct {
	Room    string // broadcast target, empty for directed sends
	ConnID  string // directed target, empty for broadcasts
	Event   EventType
	Payload any
}

type fakeRegistry struct {
	mu     sync.Mutex
	rooms  map[string]map[string]bool
	events []recordedEvent
	forced []string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{rooms: make(map[string]map[string]bool)}
}

func (r *fakeRegistry) JoinRoom(connID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[code] == nil {
		r.rooms[code] = make(map[string]bool)
	}
	r.rooms[code][connID] = true
}

func (r *fakeRegistry) LeaveRoom(connID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if members, ok := r.rooms[code]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.rooms, code)
		}
	}
}

func (r *fakeRegistry) Broadcast(code string, event EventType, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Room: code, Event: event, Payload: payload})
}

func (r *fakeRegistry) SendTo(connID string, event EventType, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{ConnID: connID, Event: event, Payload: payload})
}

func (r *fakeRegistry) ForceDisconnect(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forced = append(r.forced, connID)
}

func (r *fakeRegistry) RoomMembers(code string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for connID := range r.rooms[code] {
		out = append(out, connID)
	}
	return out
}

func (r *fakeRegistry) inRoom(connID, code string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rooms[code][connID]
}

func (r *fakeRegistry) lastOfType(event EventType) (recordedEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Event == event {
			return r.events[i], true
		}
	}
	return recordedEvent{}, false
}

func (r *fakeRegistry) countOfType(event EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Event == event {
			n++
		}
	}
	return n
}

// eventOrder returns the recorded types in order, broadcasts and directed
// sends alike.
func (r *fakeRegistry) eventOrder() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Event
	}
	return out
}

func testBank() *questions.Bank {
	qs := []models.Question{
		{Category: "general", Difficulty: "easy", Type: "text", Question: "Q1", Answer: "A1"},
		{Category: "general", Difficulty: "easy", Type: "text", Question: "Q2", Answer: "A2"},
		{Category: "general", Difficulty: "easy", Type: "text", Question: "Q3", Answer: "A3"},
		{Category: "general", Difficulty: "medium", Type: "text", Question: "Q4", Answer: "A4"},
		{Category: "music", Difficulty: "easy", Type: "text", Question: "Q5", Answer: "A5"},
	}
	return questions.NewBank(qs)
}

func testConfig() config.PartyConfig {
	return config.PartyConfig{
		CodeLength:          6,
		HostGraceTimeout:    40 * time.Millisecond,
		SubmitTolerance:     1,
		TeardownDelay:       20 * time.Millisecond,
		RematchTriggerDelay: 10 * time.Millisecond,
	}
}

func newTestEngine() (*Engine, *fakeStore, *fakeRegistry) {
	store := newFakeStore()
	registry := newFakeRegistry()
	engine := NewEngine(store, registry, testBank(), nil, nil, "", testConfig())
	return engine, store, registry
}

func createRequest() CreatePartyRequest {
	return CreatePartyRequest{
		PlayerName:      "Alice",
		GameID:          "quiz",
		Difficulty:      "easy",
		TimePerQuestion: 30,
		NumQuestions:    2,
		Categories:      []string{"general"},
	}
}

// setupParty creates a party hosted by "host" with guest "guest" joined.
func setupParty(t *testing.T, e *Engine, store *fakeStore) string {
	t.Helper()
	e.CreateParty("host", createRequest())
	code := store.onlyCode(t)
	e.JoinParty("guest", code, "Bob")
	return code
}

func TestCreateParty(t *testing.T) {
	e, store, registry := newTestEngine()

	e.CreateParty("host", createRequest())

	code := store.onlyCode(t)
	assert.Len(t, code, 6)

	p := store.get(t, code)
	require.Len(t, p.Players, 1)
	assert.Equal(t, "host", p.Players[0].ID)
	assert.Equal(t, "Alice", p.Players[0].Name)
	assert.Equal(t, "easy", p.Game.Settings.Difficulty)

	assert.True(t, registry.inRoom("host", code))
	_, ok := registry.lastOfType(EventPartyState)
	assert.True(t, ok)
}

func TestCreatePartyRejectsInvalidSettings(t *testing.T) {
	e, store, registry := newTestEngine()

	req := createRequest()
	req.Difficulty = "impossible"
	e.CreateParty("host", req)

	assert.Empty(t, store.parties)
	ev, ok := registry.lastOfType(EventError)
	require.True(t, ok)
	assert.Equal(t, "host", ev.ConnID)
}

func TestCreatePartyAvoidsCodeCollision(t *testing.T) {
	e, store, _ := newTestEngine()

	for i := 0; i < 20; i++ {
		e.CreateParty("host", createRequest())
	}

	// Every generated code must be distinct, so every creation must have
	// produced its own record.
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.parties, 20)
}

func TestJoinPartyAddsPlayer(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)

	p := store.get(t, code)
	require.Len(t, p.Players, 2)
	assert.Equal(t, "guest", p.Players[1].ID)
	assert.Equal(t, "Bob", p.Players[1].Name)
	assert.True(t, registry.inRoom("guest", code))
}

func TestJoinPartyUnknownCode(t *testing.T) {
	e, _, registry := newTestEngine()

	e.JoinParty("guest", "NOPE42", "Bob")

	ev, ok := registry.lastOfType(EventPartyNotFound)
	require.True(t, ok)
	assert.Equal(t, "guest", ev.ConnID)
}

func TestJoinPartyDuplicateConnectionIsNoop(t *testing.T) {
	e, store, _ := newTestEngine()
	code := setupParty(t, e, store)

	e.JoinParty("guest", code, "Bobby")

	p := store.get(t, code)
	assert.Len(t, p.Players, 2)
}

func TestJoinPartyReconnectByNameRebindsIdentity(t *testing.T) {
	e, store, _ := newTestEngine()
	code := setupParty(t, e, store)
	e.StartGame("host", code, false)

	e.SubmitAnswer("guest", code, 0, "blue")

	// Same name, new connection: the roster slot and the recorded answer
	// both move to the new identity.
	e.JoinParty("guest2", code, "Bob")

	p := store.get(t, code)
	require.Len(t, p.Players, 2)
	assert.Equal(t, "guest2", p.Players[1].ID)
	require.Len(t, p.Game.PlayerAnswers, 1)
	assert.Equal(t, "guest2", p.Game.PlayerAnswers[0].PlayerID)
}

func TestStartGameSelectsQuestionsAndResetsState(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)

	e.StartGame("host", code, false)

	p := store.get(t, code)
	require.Len(t, p.Game.Questions, 2)
	assert.Equal(t, 0, p.Game.CurrentQuestion)
	assert.NotZero(t, p.Game.StartTime)

	ev, ok := registry.lastOfType(EventGameStarted)
	require.True(t, ok)
	payload := ev.Payload.(QuestionPayload)
	assert.Equal(t, 0, payload.QuestionIndex)
	assert.Equal(t, 30, payload.TimePerQuestion)
	assert.Nil(t, payload.Question.Answer, "correct answer must not leak at question time")
}

func TestStartGameNonHostIgnored(t *testing.T) {
	e, store, _ := newTestEngine()
	code := setupParty(t, e, store)

	e.StartGame("guest", code, false)

	p := store.get(t, code)
	assert.Empty(t, p.Game.Questions)
}

func TestStartGameScoreReset(t *testing.T) {
	e, store, _ := newTestEngine()
	code := setupParty(t, e, store)

	// Seed scores as if a previous run finished.
	p := store.get(t, code)
	p.Players[0].Score = 3
	p.Players[1].Score = 1
	require.NoError(t, store.UpdateFields(context.Background(), code, repository.UpdateFields{Players: &p.Players}))

	e.StartGame("host", code, true)
	p = store.get(t, code)
	assert.Equal(t, 3, p.Players[0].Score, "rematch keeps accumulated scores")

	e.StartGame("host", code, false)
	p = store.get(t, code)
	assert.Equal(t, 0, p.Players[0].Score, "fresh start zeroes scores")
	assert.Equal(t, 0, p.Players[1].Score)
}

func TestBroadcastStateRedactsAnswersDuringPlay(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)

	e.StartGame("host", code, false)

	ev, ok := registry.lastOfType(EventPartyState)
	require.True(t, ok)
	snapshot := ev.Payload.(*models.Party)
	for _, q := range snapshot.Game.Questions {
		assert.Nil(t, q.Answer)
		assert.Nil(t, q.AnswerFr)
	}

	// The stored record keeps the answers; only the snapshot is redacted.
	p := store.get(t, code)
	assert.NotNil(t, p.Game.Questions[0].Answer)
}

func TestAdvanceQuestionProgressesAndFinishes(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)
	e.StartGame("host", code, false)

	e.advanceQuestion(code)

	p := store.get(t, code)
	assert.Equal(t, 1, p.Game.CurrentQuestion)
	ev, ok := registry.lastOfType(EventNextQuestion)
	require.True(t, ok)
	payload := ev.Payload.(QuestionPayload)
	assert.Equal(t, 1, payload.QuestionIndex)
	assert.Nil(t, payload.Question.Answer)

	e.advanceQuestion(code)

	p = store.get(t, code)
	assert.Equal(t, 2, p.Game.CurrentQuestion)
	over, ok := registry.lastOfType(EventGameOver)
	require.True(t, ok)
	assert.True(t, over.Payload.(GameOverPayload).ValidationRequired)
}

func TestAnswersRevealedAfterLastQuestion(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)
	e.StartGame("host", code, false)

	e.advanceQuestion(code)
	e.advanceQuestion(code)

	ev, ok := registry.lastOfType(EventPartyState)
	require.True(t, ok)
	snapshot := ev.Payload.(*models.Party)
	assert.NotNil(t, snapshot.Game.Questions[0].Answer)
}

func TestSubmitAnswerOverwritesInPlace(t *testing.T) {
	e, store, _ := newTestEngine()
	code := setupParty(t, e, store)
	e.StartGame("host", code, false)

	e.SubmitAnswer("guest", code, 0, "first")
	e.SubmitAnswer("guest", code, 0, "second")

	p := store.get(t, code)
	require.Len(t, p.Game.PlayerAnswers, 1)
	assert.Equal(t, "second", p.Game.PlayerAnswers[0].Answer)
	assert.Equal(t, "Bob", p.Game.PlayerAnswers[0].PlayerName)

	// The received counter is a progress signal, not a dedup count.
	assert.Equal(t, 2, p.Game.CurrentQuestionAnswersReceived["0"])
}

func TestSubmitAnswerThrottleKeepsOverwriteSemantics(t *testing.T) {
	store := newFakeStore()
	registry := newFakeRegistry()
	cfg := testConfig()
	cfg.SubmitThrottle = time.Minute
	e := NewEngine(store, registry, testBank(), newFakeCache(), nil, "", cfg)

	code := setupParty(t, e, store)
	e.StartGame("host", code, false)

	// A changed answer inside the throttle window must still overwrite.
	e.SubmitAnswer("guest", code, 0, "first")
	e.SubmitAnswer("guest", code, 0, "second")

	p := store.get(t, code)
	require.Len(t, p.Game.PlayerAnswers, 1)
	assert.Equal(t, "second", p.Game.PlayerAnswers[0].Answer)
	assert.Equal(t, 2, p.Game.CurrentQuestionAnswersReceived["0"])

	// An identical repeat inside the window is dropped.
	e.SubmitAnswer("guest", code, 0, "second")

	p = store.get(t, code)
	require.Len(t, p.Game.PlayerAnswers, 1)
	assert.Equal(t, "second", p.Game.PlayerAnswers[0].Answer)
	assert.Equal(t, 2, p.Game.CurrentQuestionAnswersReceived["0"])
}

func TestSubmitAnswerIndexTolerance(t *testing.T) {
	e, store, _ := newTestEngine()
	code := setupParty(t, e, store)
	e.StartGame("host", code, false)
	e.advanceQuestion(code) // current is now 1

	e.SubmitAnswer("guest", code, 0, "late but tolerated")
	e.SubmitAnswer("host", code, 1, "current")

	p := store.get(t, code)
	assert.Len(t, p.Game.PlayerAnswers, 2)

	// Ahead of the cursor or out of range is dropped.
	e.SubmitAnswer("guest", code, 2, "future")
	e.SubmitAnswer("guest", code, -1, "bogus")

	p = store.get(t, code)
	assert.Len(t, p.Game.PlayerAnswers, 2)
}

func TestSubmitValidationTogglesWithoutDoubleCounting(t *testing.T) {
	e, store, _ := newTestEngine()
	code := setupParty(t, e, store)
	e.StartGame("host", code, false)
	e.SubmitAnswer("guest", code, 0, "answer")
	e.advanceQuestion(code)
	e.advanceQuestion(code)

	e.SubmitValidation("host", code, "guest", 0, true)
	assert.Equal(t, 1, store.get(t, code).Players[1].Score)

	e.SubmitValidation("host", code, "guest", 0, true)
	assert.Equal(t, 1, store.get(t, code).Players[1].Score, "re-affirming must not double count")

	e.SubmitValidation("host", code, "guest", 0, false)
	assert.Equal(t, 0, store.get(t, code).Players[1].Score)

	e.SubmitValidation("host", code, "guest", 0, true)
	assert.Equal(t, 1, store.get(t, code).Players[1].Score)
}

func TestSubmitValidationNonHostIgnored(t *testing.T) {
	e, store, _ := newTestEngine()
	code := setupParty(t, e, store)
	e.StartGame("host", code, false)
	e.SubmitAnswer("guest", code, 0, "answer")
	e.advanceQuestion(code)
	e.advanceQuestion(code)

	e.SubmitValidation("guest", code, "guest", 0, true)

	p := store.get(t, code)
	assert.False(t, p.Game.PlayerAnswers[0].Validated)
}

func TestFullValidationEndsSessionAndTearsDown(t *testing.T) {
	e, store, registry := newTestEngine()

	req := createRequest()
	req.NumQuestions = 1
	e.CreateParty("host", req)
	code := store.onlyCode(t)
	e.JoinParty("guest", code, "Bob")

	e.StartGame("host", code, false)
	e.SubmitAnswer("host", code, 0, "a")
	e.SubmitAnswer("guest", code, 0, "b")
	e.advanceQuestion(code)

	e.SubmitValidation("host", code, "host", 0, true)
	_, ok := registry.lastOfType(EventFinalGameOver)
	assert.False(t, ok, "final results must wait for every answer")

	e.SubmitValidation("host", code, "guest", 0, false)

	ev, ok := registry.lastOfType(EventFinalGameOver)
	require.True(t, ok)
	scores := ev.Payload.(FinalGameOverPayload).FinalScores
	require.Len(t, scores, 2)
	assert.Equal(t, "Alice", scores[0].Name)
	assert.Equal(t, 1, scores[0].Score)
	assert.Equal(t, 0, scores[1].Score)

	assert.Eventually(t, func() bool {
		_, err := store.GetByCode(context.Background(), code)
		return err != nil
	}, time.Second, 5*time.Millisecond, "party record should be deleted after the teardown delay")
}

func TestGuestDisconnectRemovesPlayer(t *testing.T) {
	e, store, _ := newTestEngine()
	code := setupParty(t, e, store)

	e.Disconnect("guest")

	p := store.get(t, code)
	require.Len(t, p.Players, 1)
	assert.Equal(t, "host", p.Players[0].ID)
}

func TestHostDisconnectOpensGraceThenPromotes(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)

	e.Disconnect("host")

	p := store.get(t, code)
	assert.True(t, p.Game.HostDisconnected)
	assert.NotZero(t, p.Game.HostDisconnectedAt)
	require.Len(t, p.Players, 2, "grace keeps the roster intact")

	ev, ok := registry.lastOfType(EventHostDisconnected)
	require.True(t, ok)
	assert.Equal(t, int64(40), ev.Payload.(HostDisconnectedPayload).TimeoutMs)

	assert.Eventually(t, func() bool {
		_, ok := registry.lastOfType(EventHostPromoted)
		return ok
	}, time.Second, 5*time.Millisecond)

	p = store.get(t, code)
	require.Len(t, p.Players, 2)
	assert.Equal(t, "guest", p.Players[0].ID, "next player becomes host")
	assert.Equal(t, "host", p.Players[1].ID, "former host stays in the roster")
	assert.False(t, p.Game.HostDisconnected)

	// Promotion must be announced before the state snapshot that reflects it.
	order := registry.eventOrder()
	promotedAt, stateAt := -1, -1
	for i, ev := range order {
		if ev == EventHostPromoted {
			promotedAt = i
		}
		if ev == EventPartyState && promotedAt != -1 && stateAt == -1 && i > promotedAt {
			stateAt = i
		}
	}
	assert.Greater(t, stateAt, promotedAt)

	// The promoted player now holds host authority.
	e.StartGame("guest", code, false)
	p = store.get(t, code)
	assert.Len(t, p.Game.Questions, 2)
	_, started := registry.lastOfType(EventGameStarted)
	assert.True(t, started)
}

func TestHostReconnectWithinGraceCancelsPromotion(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)

	e.Disconnect("host")
	e.JoinParty("host2", code, "Alice")

	p := store.get(t, code)
	assert.False(t, p.Game.HostDisconnected)
	assert.Equal(t, "host2", p.Players[0].ID)

	time.Sleep(80 * time.Millisecond)
	_, promoted := registry.lastOfType(EventHostPromoted)
	assert.False(t, promoted)
	assert.Equal(t, "host2", store.get(t, code).Players[0].ID)
}

func TestHostDisconnectAloneClosesParty(t *testing.T) {
	e, store, registry := newTestEngine()
	e.CreateParty("host", createRequest())
	code := store.onlyCode(t)

	e.Disconnect("host")

	assert.Eventually(t, func() bool {
		_, ok := registry.lastOfType(EventPartyClosed)
		return ok
	}, time.Second, 5*time.Millisecond)

	_, err := store.GetByCode(context.Background(), code)
	assert.ErrorIs(t, err, repository.ErrPartyNotFound)
}

func TestLeavePartyHostClosesImmediately(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)

	e.LeaveParty("host", code)

	_, err := store.GetByCode(context.Background(), code)
	assert.ErrorIs(t, err, repository.ErrPartyNotFound)
	ev, ok := registry.lastOfType(EventPartyClosed)
	require.True(t, ok)
	assert.Equal(t, "Host left the game", ev.Payload.(PartyClosedPayload).Reason)
}

func TestLeavePartyGuest(t *testing.T) {
	e, store, _ := newTestEngine()
	code := setupParty(t, e, store)

	e.LeaveParty("guest", code)

	p := store.get(t, code)
	assert.Len(t, p.Players, 1)
}

func TestKickPlayer(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)

	e.KickPlayer("host", code, "guest")

	p := store.get(t, code)
	assert.Len(t, p.Players, 1)
	assert.Contains(t, registry.forced, "guest")

	kicked, ok := registry.lastOfType(EventKicked)
	require.True(t, ok)
	assert.Equal(t, "guest", kicked.ConnID)

	result, ok := registry.lastOfType(EventKickResult)
	require.True(t, ok)
	assert.Equal(t, "host", result.ConnID)
	assert.True(t, result.Payload.(OpResultPayload).OK)
}

func TestKickPlayerRejections(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)

	e.KickPlayer("guest", code, "host")
	result, ok := registry.lastOfType(EventKickResult)
	require.True(t, ok)
	assert.Equal(t, "not_host", result.Payload.(OpResultPayload).Error)

	e.KickPlayer("host", code, "nobody")
	result, _ = registry.lastOfType(EventKickResult)
	assert.Equal(t, "player_not_found", result.Payload.(OpResultPayload).Error)

	e.KickPlayer("host", "NOPE42", "guest")
	result, _ = registry.lastOfType(EventKickResult)
	assert.Equal(t, "party_not_found", result.Payload.(OpResultPayload).Error)

	assert.Len(t, store.get(t, code).Players, 2)
}

func TestResetPartyCodeMovesRoomAndRecord(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)

	e.ResetPartyCode("host", code)

	result, ok := registry.lastOfType(EventResetCodeResult)
	require.True(t, ok)
	payload := result.Payload.(OpResultPayload)
	require.True(t, payload.OK)
	newCode := payload.NewCode
	require.NotEmpty(t, newCode)
	assert.NotEqual(t, code, newCode)

	_, err := store.GetByCode(context.Background(), code)
	assert.ErrorIs(t, err, repository.ErrPartyNotFound)
	p := store.get(t, newCode)
	assert.Len(t, p.Players, 2)

	assert.True(t, registry.inRoom("host", newCode))
	assert.True(t, registry.inRoom("guest", newCode))
	assert.False(t, registry.inRoom("host", code))
}

func TestResetPartyCodeNonHost(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)

	e.ResetPartyCode("guest", code)

	result, ok := registry.lastOfType(EventResetCodeResult)
	require.True(t, ok)
	assert.Equal(t, "not_host", result.Payload.(OpResultPayload).Error)
	store.get(t, code) // record untouched
}

func TestRematchVoteProgress(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)

	e.SubmitRematchVote("guest", code)

	ev, ok := registry.lastOfType(EventRematchVoteReceived)
	require.True(t, ok)
	payload := ev.Payload.(RematchVoteReceivedPayload)
	assert.Equal(t, 1, payload.VotesReceived)
	assert.Equal(t, 2, payload.TotalPlayers)
	assert.Equal(t, []string{"guest"}, store.get(t, code).Game.RematchVotes)

	// Voting twice does not move the count.
	e.SubmitRematchVote("guest", code)
	ev, _ = registry.lastOfType(EventRematchVoteReceived)
	assert.Equal(t, 1, ev.Payload.(RematchVoteReceivedPayload).VotesReceived)
}

func TestRematchUnanimityTriggersHost(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)

	e.SubmitRematchVote("guest", code)
	e.SubmitRematchVote("host", code)

	_, ok := registry.lastOfType(EventRematchStarting)
	assert.True(t, ok)

	assert.Eventually(t, func() bool {
		ev, ok := registry.lastOfType(EventTriggerRematch)
		return ok && ev.ConnID == "host" && ev.Payload.(TriggerRematchPayload).PartyCode == code
	}, time.Second, 5*time.Millisecond)

	// The final vote is deliberately not persisted; the restart wipes the
	// tally anyway.
	assert.Equal(t, []string{"guest"}, store.get(t, code).Game.RematchVotes)
}

func TestAdvanceValidationBroadcastsCursor(t *testing.T) {
	e, _, registry := newTestEngine()

	e.AdvanceValidation("ABC123", 2, 1)

	ev, ok := registry.lastOfType(EventValidationAdvanced)
	require.True(t, ok)
	payload := ev.Payload.(ValidationAdvancedPayload)
	assert.Equal(t, 2, payload.QuestionIndex)
	assert.Equal(t, 1, payload.PlayerIndex)
}

func TestGetPartyState(t *testing.T) {
	e, store, registry := newTestEngine()
	code := setupParty(t, e, store)
	e.StartGame("host", code, false)

	e.GetPartyState("viewer", code)

	assert.True(t, registry.inRoom("viewer", code))
	ev, ok := registry.lastOfType(EventPartyState)
	require.True(t, ok)
	require.Equal(t, "viewer", ev.ConnID)
	snapshot := ev.Payload.(*models.Party)
	assert.Nil(t, snapshot.Game.Questions[0].Answer)

	e.GetPartyState("viewer", "NOPE42")
	notFound, ok := registry.lastOfType(EventPartyNotFound)
	require.True(t, ok)
	assert.Equal(t, "viewer", notFound.ConnID)
}
