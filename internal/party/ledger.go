package party

import (
	"strconv"

	"party-service/internal/models"
)

// The answer ledger is the single authority for answer upserts, the
// validation-completion predicate and score deltas on re-validation.

// upsertAnswer records a player's answer for a question. At most one record
// exists per (playerID, questionIndex); a resubmission overwrites in place.
// Empty answers are stored explicitly so completion counts stay correct.
func upsertAnswer(game *models.GameState, playerID, playerName string, questionIndex int, answer any) {
	if answer == nil {
		answer = ""
	}
	for i := range game.PlayerAnswers {
		a := &game.PlayerAnswers[i]
		if a.PlayerID == playerID && a.QuestionIndex == questionIndex {
			a.Answer = answer
			a.PlayerName = playerName
			return
		}
	}
	game.PlayerAnswers = append(game.PlayerAnswers, models.PlayerAnswer{
		PlayerID:      playerID,
		PlayerName:    playerName,
		QuestionIndex: questionIndex,
		Answer:        answer,
		Validated:     false,
		IsCorrect:     false,
	})
}

// bumpReceivedCount increments the per-question submission counter. It is a
// progress signal only, never authoritative for completion.
func bumpReceivedCount(game *models.GameState, questionIndex int) {
	if game.CurrentQuestionAnswersReceived == nil {
		game.CurrentQuestionAnswersReceived = make(map[string]int)
	}
	game.CurrentQuestionAnswersReceived[strconv.Itoa(questionIndex)]++
}

// applyValidation marks the matching answer validated and adjusts the
// player's score by the delta between the previous and new verdict, clamped
// at zero. The host may toggle a verdict any number of times without
// double-counting. Returns false when no matching answer exists.
func applyValidation(game *models.GameState, players []models.Player, playerID string, questionIndex int, isCorrect bool) bool {
	var answer *models.PlayerAnswer
	for i := range game.PlayerAnswers {
		a := &game.PlayerAnswers[i]
		if a.PlayerID == playerID && a.QuestionIndex == questionIndex {
			answer = a
			break
		}
	}
	if answer == nil {
		return false
	}

	previouslyCorrect := answer.IsCorrect
	answer.Validated = true
	answer.IsCorrect = isCorrect

	for i := range players {
		if players[i].ID != playerID {
			continue
		}
		if !previouslyCorrect && isCorrect {
			players[i].Score++
		} else if previouslyCorrect && !isCorrect {
			players[i].Score = max(0, players[i].Score-1)
		}
		break
	}
	return true
}

// fullyValidated reports whether every answer has been validated and the
// ledger holds exactly one answer per player per question.
func fullyValidated(game *models.GameState, playerCount int) bool {
	for _, a := range game.PlayerAnswers {
		if !a.Validated {
			return false
		}
	}
	return len(game.PlayerAnswers) == playerCount*len(game.Questions)
}

// migrateAnswers rebinds answers stored under a stale connection identity
// to the new one after a reconnect. Returns whether anything moved.
func migrateAnswers(game *models.GameState, oldID, newID string) bool {
	migrated := false
	for i := range game.PlayerAnswers {
		if game.PlayerAnswers[i].PlayerID == oldID {
			game.PlayerAnswers[i].PlayerID = newID
			migrated = true
		}
	}
	return migrated
}
