package practice_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/models"
	"github.com/flashdeck/flashdeck/internal/practice"
)

const advanceDelay = 20 * time.Millisecond

func capitalsQuestions() []models.Question {
	return []models.Question{
		{Question: "France?", Answer: "Paris", Difficulty: models.DifficultyHard, Points: 5},
		{Question: "Japan?", Answer: "Tokyo", Difficulty: models.DifficultyEasy, Points: 1},
	}
}

func TestNewSession_NoQuestions(t *testing.T) {
	s, err := practice.NewSession(1, nil, advanceDelay)

	assert.Nil(t, s)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNoQuestions, errors.Code(err))
}

func TestNewSession_StartsHiddenAtZero(t *testing.T) {
	s, err := practice.NewSession(1, capitalsQuestions(), advanceDelay)
	require.NoError(t, err)

	v := s.View()
	assert.Equal(t, 0, v.Index)
	assert.Equal(t, 2, v.Total)
	assert.False(t, v.Revealed)
	assert.Empty(t, v.Answer, "answer must stay hidden until revealed")
	assert.Equal(t, models.PracticeStats{}, v.Stats)
}

func TestSession_RevealShowsAnswer(t *testing.T) {
	s, err := practice.NewSession(1, capitalsQuestions(), advanceDelay)
	require.NoError(t, err)

	require.NoError(t, s.Reveal())
	v := s.View()
	assert.True(t, v.Revealed)
	assert.Equal(t, "Paris", v.Answer)

	// Revealing again is a no-op.
	require.NoError(t, s.Reveal())
	assert.True(t, s.View().Revealed)
}

func TestSession_MarkAnswerRequiresReveal(t *testing.T) {
	s, err := practice.NewSession(1, capitalsQuestions(), advanceDelay)
	require.NoError(t, err)

	err = s.MarkAnswer(true)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeBadRequest, errors.Code(err))
	assert.Equal(t, models.PracticeStats{}, s.View().Stats, "failed mark must not change stats")
}

func TestSession_MarkAnswerOncePerQuestion(t *testing.T) {
	s, err := practice.NewSession(1, capitalsQuestions(), advanceDelay)
	require.NoError(t, err)

	require.NoError(t, s.Reveal())
	require.NoError(t, s.MarkAnswer(true))

	err = s.MarkAnswer(true)
	require.Error(t, err)
	assert.Equal(t, 1, s.View().Stats.QuestionsAnswered)
}

func TestSession_ScoringScenario(t *testing.T) {
	s, err := practice.NewSession(1, capitalsQuestions(), advanceDelay)
	require.NoError(t, err)

	require.NoError(t, s.Reveal())
	require.NoError(t, s.MarkAnswer(true))

	v := s.View()
	assert.Equal(t, models.PracticeStats{TotalPoints: 5, QuestionsAnswered: 1, CorrectAnswers: 1}, v.Stats)
	assert.Equal(t, 100, v.Accuracy)

	// The auto-advance moves on to the second question, hidden again.
	require.Eventually(t, func() bool {
		v := s.View()
		return v.Index == 1 && !v.Revealed
	}, time.Second, time.Millisecond)

	require.NoError(t, s.Reveal())
	require.NoError(t, s.MarkAnswer(false))

	v = s.View()
	assert.Equal(t, models.PracticeStats{TotalPoints: 5, QuestionsAnswered: 2, CorrectAnswers: 1}, v.Stats)
	assert.Equal(t, 50, v.Accuracy)
}

func TestSession_NoAutoAdvanceOnLastQuestion(t *testing.T) {
	s, err := practice.NewSession(1, capitalsQuestions(), advanceDelay)
	require.NoError(t, err)

	require.NoError(t, s.Next())
	require.NoError(t, s.Reveal())
	require.NoError(t, s.MarkAnswer(true))

	time.Sleep(3 * advanceDelay)
	assert.Equal(t, 1, s.View().Index, "index must stay on the last question")
}

func TestSession_StopCancelsPendingAdvance(t *testing.T) {
	s, err := practice.NewSession(1, capitalsQuestions(), advanceDelay)
	require.NoError(t, err)

	require.NoError(t, s.Reveal())
	require.NoError(t, s.MarkAnswer(true))
	s.Stop()

	time.Sleep(3 * advanceDelay)
	assert.Equal(t, 0, s.View().Index, "a stopped session must never advance")

	err = s.Reveal()
	require.Error(t, err)
}

func TestSession_ResetCancelsPendingAdvance(t *testing.T) {
	s, err := practice.NewSession(1, capitalsQuestions(), advanceDelay)
	require.NoError(t, err)

	require.NoError(t, s.Reveal())
	require.NoError(t, s.MarkAnswer(true))
	require.NoError(t, s.Reset())

	time.Sleep(3 * advanceDelay)
	v := s.View()
	assert.Equal(t, 0, v.Index, "reset must discard the scheduled advance")
	assert.False(t, v.Revealed)
	assert.Equal(t, models.PracticeStats{}, v.Stats)
}

func TestSession_NavigationClampsAndHides(t *testing.T) {
	s, err := practice.NewSession(1, capitalsQuestions(), advanceDelay)
	require.NoError(t, err)

	require.NoError(t, s.Prev())
	assert.Equal(t, 0, s.View().Index, "prev clamps at the first question")

	require.NoError(t, s.Reveal())
	require.NoError(t, s.Next())
	v := s.View()
	assert.Equal(t, 1, v.Index)
	assert.False(t, v.Revealed, "moving resets the reveal flag")

	require.NoError(t, s.Next())
	assert.Equal(t, 1, s.View().Index, "next clamps at the last question")
}

func TestSession_SetQuestionsResetsPosition(t *testing.T) {
	s, err := practice.NewSession(1, capitalsQuestions(), advanceDelay)
	require.NoError(t, err)

	require.NoError(t, s.Reveal())
	require.NoError(t, s.MarkAnswer(true))
	require.NoError(t, s.Next())

	reordered := []models.Question{
		{Question: "Japan?", Answer: "Tokyo", Difficulty: models.DifficultyEasy, Points: 1},
		{Question: "France?", Answer: "Paris", Difficulty: models.DifficultyHard, Points: 5},
	}
	require.NoError(t, s.SetQuestions(reordered))

	v := s.View()
	assert.Equal(t, 0, v.Index)
	assert.False(t, v.Revealed)
	assert.Equal(t, "Japan?", v.Question)
	assert.Equal(t, 1, v.Stats.QuestionsAnswered, "stats survive a reorder")

	err = s.SetQuestions(nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNoQuestions, errors.Code(err))
}
