package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/flashdeck/flashdeck/internal/deck"
	"github.com/flashdeck/flashdeck/internal/errors"
	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.State.Snapshot(r.Context()))
}

func (s *Server) handleStartCreating(w http.ResponseWriter, r *http.Request) {
	s.State.StartCreating(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExitAll(w http.ResponseWriter, r *http.Request) {
	s.State.ExitAll(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.State.Snapshot(r.Context()).Decks)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var req createDeckRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	d, err := s.State.CreateDeck(r.Context(), req.Title, req.Description)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("deck created via api: id=%d", d.ID)
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleSelectDeck(w http.ResponseWriter, r *http.Request) {
	id, err := deckID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	d, err := s.State.SelectDeck(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := deckID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.State.ToggleFavorite(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, err := deckID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.State.DeleteDeck(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := deckID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req addQuestionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	err = s.State.AddQuestion(r.Context(), id, req.Question, req.Answer, models.Difficulty(req.Difficulty))
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := deckID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	index, err := questionIndex(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req updateQuestionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	upd := deck.QuestionUpdate{
		Question: req.Question,
		Answer:   req.Answer,
	}
	if req.Difficulty != nil {
		d := models.Difficulty(*req.Difficulty)
		upd.Difficulty = &d
	}

	if err := s.State.UpdateQuestion(r.Context(), id, index, upd); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := deckID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	index, err := questionIndex(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.State.DeleteQuestion(r.Context(), id, index); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func deckID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid deck ID")
	}
	return id, nil
}

func questionIndex(r *http.Request) (int, error) {
	idxStr := chi.URLParam(r, "index")
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid question index")
	}
	return idx, nil
}
