package deck_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck/internal/deck"
	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/models"
	"github.com/flashdeck/flashdeck/internal/testutil/mocks"
)

func newTestStore(t *testing.T) (*deck.Store, *mocks.DeckRepositoryMock) {
	t.Helper()
	repo := new(mocks.DeckRepositoryMock)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	return deck.NewStore(repo), repo
}

func TestAddDeck_EmptyTitle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"", "   ", "\t\n"} {
		d, err := s.AddDeck(ctx, title, "desc")
		assert.Nil(t, d)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeEmptyTitle, errors.Code(err))
	}
	assert.Empty(t, s.List(ctx), "failed creates must leave the deck list unchanged")
}

func TestAddDeck_DuplicateTitle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddDeck(ctx, "Capitals", "")
	require.NoError(t, err)

	d, err := s.AddDeck(ctx, "Capitals", "other")
	assert.Nil(t, d)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDuplicateTitle, errors.Code(err))
	assert.Len(t, s.List(ctx), 1)
}

func TestAddDeck_Defaults(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d, err := s.AddDeck(ctx, "  Capitals  ", "European capitals")
	require.NoError(t, err)
	assert.Equal(t, "Capitals", d.Title, "title is trimmed")
	assert.False(t, d.Favorite)
	assert.Equal(t, 0, d.Slides)
	assert.Empty(t, d.Questions)
	assert.NotZero(t, d.ID)
}

func TestAddDeck_UniqueIDsAndOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ids := make(map[int64]bool)
	titles := []string{"a", "b", "c", "d", "e"}
	for _, title := range titles {
		d, err := s.AddDeck(ctx, title, "")
		require.NoError(t, err)
		assert.False(t, ids[d.ID], "deck ids must be unique even within one millisecond")
		ids[d.ID] = true
	}

	list := s.List(ctx)
	require.Len(t, list, len(titles))
	for i, d := range list {
		assert.Equal(t, titles[i], d.Title, "insertion order is display order")
	}
}

func TestDeleteDeck_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d, err := s.AddDeck(ctx, "Capitals", "")
	require.NoError(t, err)

	removed, err := s.DeleteDeck(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteDeck(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, removed, "deleting an absent deck is a no-op")
	assert.Empty(t, s.List(ctx))
}

func TestToggleFavorite(t *testing.T) {
	s, repo := newTestStore(t)
	ctx := context.Background()

	d, err := s.AddDeck(ctx, "Capitals", "")
	require.NoError(t, err)

	require.NoError(t, s.ToggleFavorite(ctx, d.ID))
	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, got.Favorite)

	require.NoError(t, s.ToggleFavorite(ctx, d.ID))
	got, err = s.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, got.Favorite)

	saves := len(repo.Calls)
	require.NoError(t, s.ToggleFavorite(ctx, 404), "absent id is a no-op")
	assert.Len(t, repo.Calls, saves, "a no-op toggle must not persist")
}

func TestAddQuestion_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d, err := s.AddDeck(ctx, "Capitals", "")
	require.NoError(t, err)

	tests := []struct {
		name     string
		question string
		answer   string
	}{
		{name: "blank question", question: "  ", answer: "Paris"},
		{name: "blank answer", question: "France?", answer: "\t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddQuestion(ctx, d.ID, tt.question, tt.answer, "")
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeEmptyField, errors.Code(err))
		})
	}

	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Questions, "failed adds must leave the deck unchanged")
}

func TestQuestionMutations_SlideCountInvariant(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d, err := s.AddDeck(ctx, "Capitals", "")
	require.NoError(t, err)

	check := func() {
		got, err := s.Get(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, len(got.Questions), got.Slides, "slide count must track the question list")
	}

	for i, q := range []string{"France?", "Japan?", "Brazil?"} {
		require.NoError(t, s.AddQuestion(ctx, d.ID, q, "answer", models.DifficultyEasy))
		got, err := s.Get(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, i+1, got.Slides)
		check()
	}

	require.NoError(t, s.DeleteQuestion(ctx, d.ID, 1))
	check()

	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "France?", got.Questions[0].Question)
	assert.Equal(t, "Brazil?", got.Questions[1].Question, "deletion shifts later questions down")
}

func TestAddQuestion_PointsFromDifficulty(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d, err := s.AddDeck(ctx, "Capitals", "")
	require.NoError(t, err)

	require.NoError(t, s.AddQuestion(ctx, d.ID, "q1", "a1", models.DifficultyEasy))
	require.NoError(t, s.AddQuestion(ctx, d.ID, "q2", "a2", models.DifficultyHard))
	require.NoError(t, s.AddQuestion(ctx, d.ID, "q3", "a3", ""))

	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Questions[0].Points)
	assert.Equal(t, 5, got.Questions[1].Points)
	assert.Equal(t, 3, got.Questions[2].Points, "unset difficulty scores as medium")
}

func TestUpdateQuestion_PartialFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d, err := s.AddDeck(ctx, "Capitals", "")
	require.NoError(t, err)
	require.NoError(t, s.AddQuestion(ctx, d.ID, "France?", "Paris", models.DifficultyEasy))

	answer := "Paris, France"
	require.NoError(t, s.UpdateQuestion(ctx, d.ID, 0, deck.QuestionUpdate{Answer: &answer}))

	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	q := got.Questions[0]
	assert.Equal(t, "France?", q.Question, "unset fields stay as they were")
	assert.Equal(t, "Paris, France", q.Answer)
	assert.Equal(t, models.DifficultyEasy, q.Difficulty)
	assert.Equal(t, 1, q.Points, "points unchanged without a difficulty change")

	hard := models.DifficultyHard
	require.NoError(t, s.UpdateQuestion(ctx, d.ID, 0, deck.QuestionUpdate{Difficulty: &hard}))

	got, err = s.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DifficultyHard, got.Questions[0].Difficulty)
	assert.Equal(t, 5, got.Questions[0].Points, "points recomputed with the difficulty")
}

func TestUpdateQuestion_IndexOutOfRange(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d, err := s.AddDeck(ctx, "Capitals", "")
	require.NoError(t, err)
	require.NoError(t, s.AddQuestion(ctx, d.ID, "France?", "Paris", ""))

	text := "Japan?"
	for _, index := range []int{-1, 1, 42} {
		err := s.UpdateQuestion(ctx, d.ID, index, deck.QuestionUpdate{Question: &text})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeIndexOutOfRange, errors.Code(err))
	}

	err = s.DeleteQuestion(ctx, d.ID, 5)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeIndexOutOfRange, errors.Code(err))
}

func TestShuffleQuestions_PreservesMultiset(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d, err := s.AddDeck(ctx, "Capitals", "")
	require.NoError(t, err)

	questions := []string{"q1", "q2", "q3", "q4", "q5", "q6"}
	for _, q := range questions {
		require.NoError(t, s.AddQuestion(ctx, d.ID, q, "a", models.DifficultyMedium))
	}

	require.NoError(t, s.ShuffleQuestions(ctx, d.ID))

	got, err := s.Get(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, len(questions))

	shuffled := make([]string, len(got.Questions))
	for i, q := range got.Questions {
		shuffled[i] = q.Question
	}
	sort.Strings(shuffled)
	assert.Equal(t, questions, shuffled, "shuffle must keep the same questions")
	assert.Equal(t, len(questions), got.Slides)
}

func TestStore_OperationsOnMissingDeck(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, 404)
	assert.Equal(t, errors.ErrCodeNotFound, errors.Code(err))

	err = s.AddQuestion(ctx, 404, "q", "a", "")
	assert.Equal(t, errors.ErrCodeNotFound, errors.Code(err))

	err = s.DeleteQuestion(ctx, 404, 0)
	assert.Equal(t, errors.ErrCodeNotFound, errors.Code(err))

	err = s.ShuffleQuestions(ctx, 404)
	assert.Equal(t, errors.ErrCodeNotFound, errors.Code(err))
}

func TestStore_Load(t *testing.T) {
	repo := new(mocks.DeckRepositoryMock)
	repo.On("Load", mock.Anything).Return([]models.Deck{
		{ID: 7, Title: "Capitals", Questions: []models.Question{{Question: "q", Answer: "a", Points: 3}}, Slides: 1},
	}, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()

	s := deck.NewStore(repo)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	got, err := s.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Capitals", got.Title)

	// New ids must not collide with loaded ones.
	d, err := s.AddDeck(ctx, "Fresh", "")
	require.NoError(t, err)
	assert.Greater(t, d.ID, int64(7))
}
