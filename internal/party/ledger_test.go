package party

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"party-service/internal/models"
)

func ledgerGame(numQuestions int) *models.GameState {
	qs := make([]models.Question, numQuestions)
	for i := range qs {
		qs[i] = models.Question{Question: "q", Answer: "a"}
	}
	return &models.GameState{Questions: qs}
}

func TestUpsertAnswerKeyedByPlayerAndQuestion(t *testing.T) {
	game := ledgerGame(2)

	upsertAnswer(game, "p1", "Ann", 0, "x")
	upsertAnswer(game, "p1", "Ann", 1, "y")
	upsertAnswer(game, "p2", "Ben", 0, "z")
	upsertAnswer(game, "p1", "Ann", 0, "x2")

	require.Len(t, game.PlayerAnswers, 3)
	assert.Equal(t, "x2", game.PlayerAnswers[0].Answer)
	assert.Equal(t, 0, game.PlayerAnswers[0].QuestionIndex)
}

func TestUpsertAnswerStoresEmptyForNil(t *testing.T) {
	game := ledgerGame(1)

	upsertAnswer(game, "p1", "Ann", 0, nil)

	require.Len(t, game.PlayerAnswers, 1)
	assert.Equal(t, "", game.PlayerAnswers[0].Answer)
}

func TestUpsertAnswerOverwriteClearsNothing(t *testing.T) {
	game := ledgerGame(1)

	upsertAnswer(game, "p1", "Ann", 0, "first")
	game.PlayerAnswers[0].Validated = true
	game.PlayerAnswers[0].IsCorrect = true

	// Overwriting the answer keeps the existing verdict; the host can
	// re-validate if the content changed.
	upsertAnswer(game, "p1", "Ann", 0, "second")
	assert.True(t, game.PlayerAnswers[0].Validated)
	assert.True(t, game.PlayerAnswers[0].IsCorrect)
}

func TestApplyValidationScoreDeltas(t *testing.T) {
	game := ledgerGame(1)
	players := []models.Player{{ID: "p1", Name: "Ann"}}
	upsertAnswer(game, "p1", "Ann", 0, "x")

	require.True(t, applyValidation(game, players, "p1", 0, true))
	assert.Equal(t, 1, players[0].Score)

	require.True(t, applyValidation(game, players, "p1", 0, true))
	assert.Equal(t, 1, players[0].Score)

	require.True(t, applyValidation(game, players, "p1", 0, false))
	assert.Equal(t, 0, players[0].Score)

	require.True(t, applyValidation(game, players, "p1", 0, false))
	assert.Equal(t, 0, players[0].Score, "score never goes negative")
}

func TestApplyValidationMissingAnswer(t *testing.T) {
	game := ledgerGame(1)
	players := []models.Player{{ID: "p1", Name: "Ann"}}

	assert.False(t, applyValidation(game, players, "p1", 0, true))
	assert.Empty(t, game.PlayerAnswers)
}

func TestFullyValidatedRequiresCompleteLedger(t *testing.T) {
	game := ledgerGame(2)
	players := []models.Player{{ID: "p1"}, {ID: "p2"}}

	upsertAnswer(game, "p1", "Ann", 0, "x")
	upsertAnswer(game, "p1", "Ann", 1, "x")
	upsertAnswer(game, "p2", "Ben", 0, "x")
	upsertAnswer(game, "p2", "Ben", 1, "x")

	assert.False(t, fullyValidated(game, len(players)))

	for i := range game.PlayerAnswers {
		game.PlayerAnswers[i].Validated = true
	}
	assert.True(t, fullyValidated(game, len(players)))

	// A missing answer keeps the session open even if everything present is
	// validated.
	game.PlayerAnswers = game.PlayerAnswers[:3]
	assert.False(t, fullyValidated(game, len(players)))
}

func TestMigrateAnswers(t *testing.T) {
	game := ledgerGame(2)
	upsertAnswer(game, "old", "Ann", 0, "x")
	upsertAnswer(game, "old", "Ann", 1, "y")
	upsertAnswer(game, "other", "Ben", 0, "z")

	assert.True(t, migrateAnswers(game, "old", "new"))
	assert.Equal(t, "new", game.PlayerAnswers[0].PlayerID)
	assert.Equal(t, "new", game.PlayerAnswers[1].PlayerID)
	assert.Equal(t, "other", game.PlayerAnswers[2].PlayerID)

	assert.False(t, migrateAnswers(game, "gone", "new"))
}

func TestBumpReceivedCount(t *testing.T) {
	game := ledgerGame(1)

	bumpReceivedCount(game, 0)
	bumpReceivedCount(game, 0)

	assert.Equal(t, 2, game.CurrentQuestionAnswersReceived["0"])
}
