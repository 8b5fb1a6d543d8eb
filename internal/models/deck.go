package models

import "math"

// Difficulty is the tier assigned to a question. The zero value means
// the question was created without an explicit difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Points returns the point value for the tier: easy=1, medium=3, hard=5.
// Unknown or unset difficulties score as medium.
func (d Difficulty) Points() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return 5
	default:
		return 3
	}
}

type Question struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Points     int        `json:"points"`
}

type Deck struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Slides      int        `json:"slides"`
	Favorite    bool       `json:"favorite"`
	Questions   []Question `json:"questions"`
}

// SlideCount is the authoritative question count. The stored Slides field
// exists only for wire compatibility and must always equal this value.
func (d *Deck) SlideCount() int {
	return len(d.Questions)
}

// SyncSlides re-derives the redundant Slides field from the question list.
func (d *Deck) SyncSlides() {
	d.Slides = len(d.Questions)
}

// PracticeStats accumulates scoring over a practice session. It is
// session-scoped and never persisted.
type PracticeStats struct {
	TotalPoints       int `json:"total_points"`
	QuestionsAnswered int `json:"questions_answered"`
	CorrectAnswers    int `json:"correct_answers"`
}

// Accuracy returns the percentage of correct answers, rounded to the
// nearest integer. Zero when no questions have been answered yet.
func (s PracticeStats) Accuracy() int {
	if s.QuestionsAnswered == 0 {
		return 0
	}
	return int(math.Round(float64(s.CorrectAnswers) / float64(s.QuestionsAnswered) * 100))
}
