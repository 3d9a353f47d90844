package constants

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

const (
	QuestionTypeText           = "text"
	QuestionTypeMultipleChoice = "multiple-choice"
	QuestionTypeImageText      = "image-text"
	QuestionTypeAudio          = "audio"
	QuestionTypeLyrics         = "lyrics"
	QuestionTypeRanking        = "ranking"
	QuestionTypePetitBac       = "petit-bac"
)

// Alphabet for party codes, matching base36 uppercase.
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
