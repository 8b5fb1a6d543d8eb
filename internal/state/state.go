package state

import (
	"context"
	"sync"
	"time"

	"github.com/flashdeck/flashdeck/internal/deck"
	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/models"
	"github.com/flashdeck/flashdeck/internal/practice"
)

// Mode is the tagged application mode. Exactly one holds at a time, which
// makes combinations like "editing while practicing" unrepresentable.
type Mode string

const (
	ModeIdle       Mode = "idle"
	ModeCreating   Mode = "creating"
	ModeEditing    Mode = "editing"
	ModePracticing Mode = "practicing"
)

// App is the single application state machine behind the UI: the deck
// store, the current mode, the selected deck, the live practice session
// and the one current-error message slot.
type App struct {
	mu       sync.Mutex
	store    *deck.Store
	delay    time.Duration
	mode     Mode
	selected int64
	session  *practice.Session
	errMsg   string
}

// Snapshot is everything the UI consumes.
type Snapshot struct {
	Mode     Mode           `json:"mode"`
	Decks    []models.Deck  `json:"decks"`
	Selected *models.Deck   `json:"selected,omitempty"`
	Practice *practice.View `json:"practice,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// New creates the application state in Idle mode. delay is the practice
// auto-advance delay.
func New(store *deck.Store, delay time.Duration) *App {
	return &App{store: store, delay: delay, mode: ModeIdle}
}

// finishLocked maintains the single current-error slot: a recoverable
// validation failure fills it, a successful operation clears it.
// Internal failures pass through without touching the slot.
func (a *App) finishLocked(err error) error {
	if err == nil {
		a.errMsg = ""
		return nil
	}
	if errors.IsValidation(err) {
		if appErr, ok := err.(*errors.AppError); ok {
			a.errMsg = appErr.Message
		}
	}
	return err
}

// StartCreating switches to the create-deck form, dropping any selection
// and live practice session.
func (a *App) StartCreating(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopSessionLocked()
	a.selected = 0
	a.mode = ModeCreating
	a.errMsg = ""
	logger.FromContext(ctx).Debug("mode changed: %s", a.mode)
}

// CreateDeck adds a new empty deck. On success the user stays on the
// create view with a cleared form; the new deck appears in the list.
func (a *App) CreateDeck(ctx context.Context, title, description string) (*models.Deck, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	d, err := a.store.AddDeck(ctx, title, description)
	if err := a.finishLocked(err); err != nil {
		return nil, err
	}
	return d, nil
}

// SelectDeck makes the deck active and always switches into edit mode,
// leaving practice if it was running.
func (a *App) SelectDeck(ctx context.Context, id int64) (*models.Deck, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	d, err := a.store.Get(ctx, id)
	if err := a.finishLocked(err); err != nil {
		return nil, err
	}

	a.stopSessionLocked()
	a.selected = id
	a.mode = ModeEditing
	logger.FromContext(ctx).Debug("deck selected: id=%d", id)
	return d, nil
}

// DeleteDeck removes the deck. If it was the selected one, selection,
// editor and practice state all reset to Idle.
func (a *App) DeleteDeck(ctx context.Context, id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	removed, err := a.store.DeleteDeck(ctx, id)
	if err := a.finishLocked(err); err != nil {
		return err
	}
	if removed && a.selected == id {
		a.stopSessionLocked()
		a.selected = 0
		a.mode = ModeIdle
		logger.FromContext(ctx).Debug("selected deck deleted, state reset")
	}
	return nil
}

// ToggleFavorite flips the deck's favorite flag.
func (a *App) ToggleFavorite(ctx context.Context, id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.finishLocked(a.store.ToggleFavorite(ctx, id))
}

// AddQuestion appends a question to the deck.
func (a *App) AddQuestion(ctx context.Context, deckID int64, question, answer string, difficulty models.Difficulty) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.finishLocked(a.store.AddQuestion(ctx, deckID, question, answer, difficulty))
}

// UpdateQuestion replaces the provided fields of the question at index.
func (a *App) UpdateQuestion(ctx context.Context, deckID int64, index int, upd deck.QuestionUpdate) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.finishLocked(a.store.UpdateQuestion(ctx, deckID, index, upd))
}

// DeleteQuestion removes the question at index.
func (a *App) DeleteQuestion(ctx context.Context, deckID int64, index int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.finishLocked(a.store.DeleteQuestion(ctx, deckID, index))
}

// StartPractice begins practicing the selected deck. Fails with
// NO_QUESTIONS on an empty deck and leaves the mode unchanged.
func (a *App) StartPractice(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.selected == 0 {
		return a.finishLocked(errors.NewBadRequestError("no deck selected"))
	}
	d, err := a.store.Get(ctx, a.selected)
	if err := a.finishLocked(err); err != nil {
		return err
	}

	session, err := practice.NewSession(d.ID, d.Questions, a.delay)
	if err := a.finishLocked(err); err != nil {
		return err
	}

	a.stopSessionLocked()
	a.session = session
	a.mode = ModePracticing
	logger.FromContext(ctx).Info("practice started: deck_id=%d, questions=%d", d.ID, len(d.Questions))
	return nil
}

// Reveal shows the current question's answer.
func (a *App) Reveal(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.practicingLocked()
	if err != nil {
		return a.finishLocked(err)
	}
	return a.finishLocked(s.Reveal())
}

// MarkAnswer scores the current question as correct or incorrect.
func (a *App) MarkAnswer(ctx context.Context, correct bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.practicingLocked()
	if err != nil {
		return a.finishLocked(err)
	}
	return a.finishLocked(s.MarkAnswer(correct))
}

// NextQuestion advances to the next question.
func (a *App) NextQuestion(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.practicingLocked()
	if err != nil {
		return a.finishLocked(err)
	}
	return a.finishLocked(s.Next())
}

// PrevQuestion steps back to the previous question.
func (a *App) PrevQuestion(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.practicingLocked()
	if err != nil {
		return a.finishLocked(err)
	}
	return a.finishLocked(s.Prev())
}

// Shuffle permutes the deck's persisted question order and restarts the
// session position on the new order.
func (a *App) Shuffle(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.practicingLocked()
	if err != nil {
		return a.finishLocked(err)
	}
	if err := a.finishLocked(a.store.ShuffleQuestions(ctx, a.selected)); err != nil {
		return err
	}
	d, err := a.store.Get(ctx, a.selected)
	if err := a.finishLocked(err); err != nil {
		return err
	}
	return a.finishLocked(s.SetQuestions(d.Questions))
}

// RestartPractice zeroes position and stats but stays in practice mode.
func (a *App) RestartPractice(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.practicingLocked()
	if err != nil {
		return a.finishLocked(err)
	}
	return a.finishLocked(s.Reset())
}

// ExitPractice tears the session down, discarding its stats, and returns
// to editing the deck.
func (a *App) ExitPractice(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.practicingLocked(); err != nil {
		return a.finishLocked(err)
	}
	a.stopSessionLocked()
	a.mode = ModeEditing
	a.errMsg = ""
	logger.FromContext(ctx).Debug("practice exited: deck_id=%d", a.selected)
	return nil
}

// ExitAll clears selection, editor and practice state back to Idle.
func (a *App) ExitAll(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopSessionLocked()
	a.selected = 0
	a.mode = ModeIdle
	a.errMsg = ""
	logger.FromContext(ctx).Debug("state reset to idle")
}

// Snapshot returns everything the UI renders from.
func (a *App) Snapshot(ctx context.Context) Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := Snapshot{
		Mode:  a.mode,
		Decks: a.store.List(ctx),
		Error: a.errMsg,
	}
	if a.selected != 0 {
		if d, err := a.store.Get(ctx, a.selected); err == nil {
			snap.Selected = d
		}
	}
	if a.session != nil {
		v := a.session.View()
		snap.Practice = &v
	}
	return snap
}

// PracticeView returns the live session snapshot, or an error outside
// practice mode.
func (a *App) PracticeView(ctx context.Context) (*practice.View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.practicingLocked()
	if err != nil {
		return nil, err
	}
	v := s.View()
	return &v, nil
}

// Mode returns the current application mode.
func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) practicingLocked() (*practice.Session, error) {
	if a.mode != ModePracticing || a.session == nil {
		return nil, errors.NewBadRequestError("not in practice mode")
	}
	return a.session, nil
}

func (a *App) stopSessionLocked() {
	if a.session != nil {
		a.session.Stop()
		a.session = nil
	}
}
