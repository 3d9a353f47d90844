package party

import "party-service/internal/models"

// The sanitizer decides whether a snapshot reveals correct answers. The
// rule is the redaction boundary: hidden while questions are still being
// asked, revealed once the cursor reaches the end of the run. Player
// answers are always included; they are the players' submissions, not the
// correct answers.

// answersRevealed reports whether the party has passed the boundary.
func answersRevealed(game *models.GameState) bool {
	if game == nil || len(game.Questions) == 0 {
		return false
	}
	return game.CurrentQuestion >= len(game.Questions)
}

// SanitizeQuestion returns a copy of q without its correct answer fields.
func SanitizeQuestion(q models.Question) models.Question {
	q.Answer = nil
	q.AnswerFr = nil
	return q
}

// SanitizeParty builds the outbound snapshot for a party. The input is
// never mutated; questions are cloned before redaction.
func SanitizeParty(p *models.Party) *models.Party {
	if p == nil {
		return nil
	}
	out := *p
	out.Players = append([]models.Player(nil), p.Players...)

	if p.Game == nil {
		return &out
	}

	game := *p.Game
	if !answersRevealed(p.Game) && len(game.Questions) > 0 {
		redacted := make([]models.Question, len(game.Questions))
		for i, q := range game.Questions {
			redacted[i] = SanitizeQuestion(q)
		}
		game.Questions = redacted
	}
	out.Game = &game
	return &out
}
