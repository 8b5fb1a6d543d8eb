package api

import (
	"context"
	"net/http"

	"github.com/flashdeck/flashdeck/internal/logger"
)

func (s *Server) handlePracticeView(w http.ResponseWriter, r *http.Request) {
	v, err := s.State.PracticeView(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleStartPractice(w http.ResponseWriter, r *http.Request) {
	if err := s.State.StartPractice(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}

	v, err := s.State.PracticeView(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("practice started: deck_id=%d", v.DeckID)
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	s.practiceAction(w, r, s.State.Reveal)
}

func (s *Server) handleMarkAnswer(w http.ResponseWriter, r *http.Request) {
	var req markAnswerRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.State.MarkAnswer(r.Context(), *req.Correct); err != nil {
		handleError(w, r, err)
		return
	}
	s.writePracticeView(w, r)
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	s.practiceAction(w, r, s.State.NextQuestion)
}

func (s *Server) handlePrevQuestion(w http.ResponseWriter, r *http.Request) {
	s.practiceAction(w, r, s.State.PrevQuestion)
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	s.practiceAction(w, r, s.State.Shuffle)
}

func (s *Server) handleRestartPractice(w http.ResponseWriter, r *http.Request) {
	s.practiceAction(w, r, s.State.RestartPractice)
}

func (s *Server) handleExitPractice(w http.ResponseWriter, r *http.Request) {
	if err := s.State.ExitPractice(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// practiceAction runs a session mutation and responds with the fresh view.
func (s *Server) practiceAction(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context) error) {
	if err := fn(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	s.writePracticeView(w, r)
}

func (s *Server) writePracticeView(w http.ResponseWriter, r *http.Request) {
	v, err := s.State.PracticeView(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
