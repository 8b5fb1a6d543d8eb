package deck

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/models"
	"github.com/flashdeck/flashdeck/internal/repository"
)

// Store holds the ordered deck list in memory and writes it through to the
// repository after every mutation. Insertion order is display order.
type Store struct {
	mu     sync.Mutex
	repo   repository.DeckRepository
	decks  []models.Deck
	lastID int64
}

// QuestionUpdate carries the fields of a question to replace. Nil fields
// are left unchanged; points are recomputed only when Difficulty is set.
type QuestionUpdate struct {
	Question   *string
	Answer     *string
	Difficulty *models.Difficulty
}

func NewStore(repo repository.DeckRepository) *Store {
	return &Store{repo: repo, decks: []models.Deck{}}
}

// Load replaces the in-memory deck list with the persisted one.
func (s *Store) Load(ctx context.Context) error {
	decks, err := s.repo.Load(ctx)
	if err != nil {
		return errors.NewInternalError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.decks = decks
	for _, d := range decks {
		if d.ID > s.lastID {
			s.lastID = d.ID
		}
	}
	logger.FromContext(ctx).Debug("deck store loaded: decks=%d", len(decks))
	return nil
}

// List returns a copy of the deck list in display order.
func (s *Store) List(ctx context.Context) []models.Deck {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Deck, len(s.decks))
	for i, d := range s.decks {
		out[i] = copyDeck(d)
	}
	return out
}

// Get returns a copy of the deck with the given id.
func (s *Store) Get(ctx context.Context, id int64) (*models.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.find(id)
	if d == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	c := copyDeck(*d)
	return &c, nil
}

// AddDeck creates an empty deck and appends it to the list. The title must
// be non-blank after trimming and unique among existing decks.
func (s *Store) AddDeck(ctx context.Context, title, description string) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.NewEmptyTitleError()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.decks {
		if d.Title == title {
			return nil, errors.NewDuplicateTitleError(title)
		}
	}

	d := models.Deck{
		ID:          s.nextID(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Questions:   []models.Question{},
	}
	s.decks = append(s.decks, d)

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	log.Info("deck created: id=%d, title=%s", d.ID, d.Title)
	c := copyDeck(d)
	return &c, nil
}

// DeleteDeck removes the deck if present. Deleting an absent id is a no-op;
// the returned bool reports whether anything was removed.
func (s *Store) DeleteDeck(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, d := range s.decks {
		if d.ID == id {
			s.decks = append(s.decks[:i], s.decks[i+1:]...)
			if err := s.persistLocked(ctx); err != nil {
				return false, err
			}
			logger.FromContext(ctx).Info("deck deleted: id=%d, title=%s", d.ID, d.Title)
			return true, nil
		}
	}
	return false, nil
}

// ToggleFavorite flips the deck's favorite flag. No-op if the id is absent.
func (s *Store) ToggleFavorite(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.find(id)
	if d == nil {
		return nil
	}
	d.Favorite = !d.Favorite
	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("deck favorite toggled: id=%d, favorite=%t", id, d.Favorite)
	return nil
}

// AddQuestion appends a question to the deck. Question and answer must be
// non-blank after trimming; points derive from the difficulty tier.
func (s *Store) AddQuestion(ctx context.Context, deckID int64, question, answer string, difficulty models.Difficulty) error {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" {
		return errors.NewEmptyFieldError("question")
	}
	if answer == "" {
		return errors.NewEmptyFieldError("answer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.find(deckID)
	if d == nil {
		return errors.NewNotFoundError("deck", deckID)
	}

	d.Questions = append(d.Questions, models.Question{
		Question:   question,
		Answer:     answer,
		Difficulty: difficulty,
		Points:     difficulty.Points(),
	})
	d.SyncSlides()

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("question added: deck_id=%d, slides=%d", deckID, d.Slides)
	return nil
}

// UpdateQuestion replaces only the provided fields of the question at index.
func (s *Store) UpdateQuestion(ctx context.Context, deckID int64, index int, upd QuestionUpdate) error {
	if upd.Question != nil && strings.TrimSpace(*upd.Question) == "" {
		return errors.NewEmptyFieldError("question")
	}
	if upd.Answer != nil && strings.TrimSpace(*upd.Answer) == "" {
		return errors.NewEmptyFieldError("answer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.find(deckID)
	if d == nil {
		return errors.NewNotFoundError("deck", deckID)
	}
	if index < 0 || index >= len(d.Questions) {
		return errors.NewIndexOutOfRangeError(index, len(d.Questions))
	}

	q := &d.Questions[index]
	if upd.Question != nil {
		q.Question = strings.TrimSpace(*upd.Question)
	}
	if upd.Answer != nil {
		q.Answer = strings.TrimSpace(*upd.Answer)
	}
	if upd.Difficulty != nil {
		q.Difficulty = *upd.Difficulty
		q.Points = upd.Difficulty.Points()
	}

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("question updated: deck_id=%d, index=%d", deckID, index)
	return nil
}

// DeleteQuestion removes the question at index, shifting later ones down.
func (s *Store) DeleteQuestion(ctx context.Context, deckID int64, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.find(deckID)
	if d == nil {
		return errors.NewNotFoundError("deck", deckID)
	}
	if index < 0 || index >= len(d.Questions) {
		return errors.NewIndexOutOfRangeError(index, len(d.Questions))
	}

	d.Questions = append(d.Questions[:index], d.Questions[index+1:]...)
	d.SyncSlides()

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("question deleted: deck_id=%d, index=%d, slides=%d", deckID, index, d.Slides)
	return nil
}

// ShuffleQuestions uniformly permutes the deck's persisted question order.
func (s *Store) ShuffleQuestions(ctx context.Context, deckID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.find(deckID)
	if d == nil {
		return errors.NewNotFoundError("deck", deckID)
	}

	rand.Shuffle(len(d.Questions), func(i, j int) {
		d.Questions[i], d.Questions[j] = d.Questions[j], d.Questions[i]
	})

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("questions shuffled: deck_id=%d", deckID)
	return nil
}

// nextID returns a fresh millisecond-timestamp id, bumped past the last
// issued one so rapid creations within the same millisecond stay unique.
func (s *Store) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) find(id int64) *models.Deck {
	for i := range s.decks {
		if s.decks[i].ID == id {
			return &s.decks[i]
		}
	}
	return nil
}

func (s *Store) persistLocked(ctx context.Context) error {
	snapshot := make([]models.Deck, len(s.decks))
	for i, d := range s.decks {
		snapshot[i] = copyDeck(d)
	}
	if err := s.repo.Save(ctx, snapshot); err != nil {
		logger.FromContext(ctx).Error("failed to persist deck list: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func copyDeck(d models.Deck) models.Deck {
	qs := make([]models.Question, len(d.Questions))
	copy(qs, d.Questions)
	d.Questions = qs
	return d
}
