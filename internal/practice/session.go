package practice

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/models"
)

// Session is the transient practice state over one deck's question list:
// position, reveal flag and score accumulator. Nothing here is persisted;
// stopping the session drops it all.
//
// Marking an answer schedules an automatic advance to the next question.
// The scheduled advance carries the session token current at schedule time
// and re-checks it under the lock when it fires, so a timer that outlives a
// Stop, Reset or reshuffle can never mutate the replacement state.
type Session struct {
	mu        sync.Mutex
	deckID    int64
	questions []models.Question
	index     int
	revealed  bool
	answered  bool
	stats     models.PracticeStats
	delay     time.Duration
	token     uuid.UUID
	timer     *time.Timer
	stopped   bool
}

// View is the read-only snapshot exposed to the UI. The answer is included
// only once revealed.
type View struct {
	DeckID   int64                `json:"deck_id"`
	Index    int                  `json:"index"`
	Total    int                  `json:"total"`
	Question string               `json:"question"`
	Answer   string               `json:"answer,omitempty"`
	Revealed bool                 `json:"revealed"`
	Answered bool                 `json:"answered"`
	Stats    models.PracticeStats `json:"stats"`
	Accuracy int                  `json:"accuracy"`
}

// NewSession starts practicing the given questions at index 0, hidden, with
// zeroed stats. Fails with NO_QUESTIONS when the deck is empty.
func NewSession(deckID int64, questions []models.Question, delay time.Duration) (*Session, error) {
	if len(questions) == 0 {
		return nil, errors.NewNoQuestionsError()
	}
	qs := make([]models.Question, len(questions))
	copy(qs, questions)
	return &Session{
		deckID:    deckID,
		questions: qs,
		delay:     delay,
		token:     uuid.New(),
	}, nil
}

// Reveal shows the current question's answer. No-op if already revealed.
func (s *Session) Reveal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errors.NewBadRequestError("practice session has ended")
	}
	s.revealed = true
	return nil
}

// MarkAnswer scores the current question. Valid only after Reveal and only
// once per question. A correct answer earns the question's points; every
// answer counts toward the accuracy denominator. When a next question
// exists, an automatic advance is scheduled after the configured delay.
func (s *Session) MarkAnswer(correct bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errors.NewBadRequestError("practice session has ended")
	}
	if !s.revealed {
		return errors.NewBadRequestError("answer is not revealed")
	}
	if s.answered {
		return errors.NewBadRequestError("question already answered")
	}

	s.answered = true
	s.stats.QuestionsAnswered++
	if correct {
		s.stats.CorrectAnswers++
		s.stats.TotalPoints += s.questions[s.index].Points
	}

	if s.index < len(s.questions)-1 {
		tok := s.token
		s.timer = time.AfterFunc(s.delay, func() {
			s.advance(tok)
		})
	}
	return nil
}

// advance is the deferred auto-advance. It applies only if the session is
// still alive and the token matches the one captured at schedule time.
func (s *Session) advance(tok uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.token != tok {
		return
	}
	if s.index < len(s.questions)-1 {
		s.index++
		s.revealed = false
		s.answered = false
	}
}

// Next moves to the next question, clamped to the last one. Resets reveal.
func (s *Session) Next() error {
	return s.move(1)
}

// Prev moves to the previous question, clamped to the first one.
func (s *Session) Prev() error {
	return s.move(-1)
}

func (s *Session) move(delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errors.NewBadRequestError("practice session has ended")
	}
	s.cancelAdvanceLocked()

	idx := s.index + delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(s.questions)-1 {
		idx = len(s.questions) - 1
	}
	s.index = idx
	s.revealed = false
	s.answered = false
	return nil
}

// Reset returns to the first question, hidden, with zeroed stats. The
// session stays active.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errors.NewBadRequestError("practice session has ended")
	}
	s.cancelAdvanceLocked()
	s.index = 0
	s.revealed = false
	s.answered = false
	s.stats = models.PracticeStats{}
	return nil
}

// SetQuestions re-points the session at a new question order (after a
// shuffle) and resets position and reveal. Accumulated stats are kept.
func (s *Session) SetQuestions(questions []models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errors.NewBadRequestError("practice session has ended")
	}
	if len(questions) == 0 {
		return errors.NewNoQuestionsError()
	}
	s.cancelAdvanceLocked()
	qs := make([]models.Question, len(questions))
	copy(qs, questions)
	s.questions = qs
	s.index = 0
	s.revealed = false
	s.answered = false
	return nil
}

// Stop tears the session down. Any pending auto-advance is canceled and all
// later operations fail. Safe to call more than once.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelAdvanceLocked()
	s.stopped = true
}

// cancelAdvanceLocked stops any pending timer and rotates the token so an
// already-fired callback that lost the race finds a stale token.
func (s *Session) cancelAdvanceLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.token = uuid.New()
}

// View returns the current snapshot for the UI.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.questions[s.index]
	v := View{
		DeckID:   s.deckID,
		Index:    s.index,
		Total:    len(s.questions),
		Question: q.Question,
		Revealed: s.revealed,
		Answered: s.answered,
		Stats:    s.stats,
		Accuracy: s.stats.Accuracy(),
	}
	if s.revealed {
		v.Answer = q.Answer
	}
	return v
}

// DeckID returns the deck this session is practicing.
func (s *Session) DeckID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deckID
}
