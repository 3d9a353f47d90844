package questions

import (
	"math/rand"
	"slices"

	"party-service/internal/constants"
	"party-service/internal/models"
)

// Bank is the in-process question source a party draws from when a game
// starts. The selected subset is copied into the party's game state and is
// immutable for the run.
type Bank struct {
	all []models.Question
}

func Default() *Bank {
	return &Bank{all: defaultQuestions}
}

func NewBank(qs []models.Question) *Bank {
	return &Bank{all: qs}
}

func (b *Bank) Len() int {
	return len(b.all)
}

// Categories returns the distinct categories present in the bank, in first
// appearance order.
func (b *Bank) Categories() []string {
	var out []string
	for _, q := range b.all {
		if !slices.Contains(out, q.Category) {
			out = append(out, q.Category)
		}
	}
	return out
}

// Select filters the bank to the requested categories, weights the pool by
// difficulty, shuffles it and takes the first n questions.
//
// The weighting is concat order: easy keeps only easy questions; medium
// takes medium then easy (so truncation favors medium); hard takes hard,
// then medium, then easy.
func (b *Bank) Select(difficulty string, categories []string, n int) []models.Question {
	var pool []models.Question
	for _, q := range b.all {
		if slices.Contains(categories, q.Category) {
			pool = append(pool, q)
		}
	}

	switch difficulty {
	case constants.DifficultyEasy:
		pool = filterDifficulty(pool, constants.DifficultyEasy)
	case constants.DifficultyMedium:
		pool = append(
			filterDifficulty(pool, constants.DifficultyMedium),
			filterDifficulty(pool, constants.DifficultyEasy)...,
		)
	case constants.DifficultyHard:
		pool = append(
			filterDifficulty(pool, constants.DifficultyHard),
			append(
				filterDifficulty(pool, constants.DifficultyMedium),
				filterDifficulty(pool, constants.DifficultyEasy)...,
			)...,
		)
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	if n > len(pool) {
		n = len(pool)
	}
	if n < 0 {
		n = 0
	}
	return pool[:n]
}

func filterDifficulty(qs []models.Question, difficulty string) []models.Question {
	var out []models.Question
	for _, q := range qs {
		if q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	return out
}
