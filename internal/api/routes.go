package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)

		r.Post("/mode/create", s.handleStartCreating)
		r.Post("/mode/exit", s.handleExitAll)

		r.Get("/decks", s.handleListDecks)
		r.Post("/decks", s.handleCreateDeck)
		r.Post("/decks/{id}/select", s.handleSelectDeck)
		r.Post("/decks/{id}/favorite", s.handleToggleFavorite)
		r.Delete("/decks/{id}", s.handleDeleteDeck)

		r.Post("/decks/{id}/questions", s.handleAddQuestion)
		r.Put("/decks/{id}/questions/{index}", s.handleUpdateQuestion)
		r.Delete("/decks/{id}/questions/{index}", s.handleDeleteQuestion)

		r.Get("/practice", s.handlePracticeView)
		r.Post("/practice/start", s.handleStartPractice)
		r.Post("/practice/reveal", s.handleReveal)
		r.Post("/practice/answer", s.handleMarkAnswer)
		r.Post("/practice/next", s.handleNextQuestion)
		r.Post("/practice/prev", s.handlePrevQuestion)
		r.Post("/practice/shuffle", s.handleShuffle)
		r.Post("/practice/restart", s.handleRestartPractice)
		r.Post("/practice/exit", s.handleExitPractice)
	})

	return r
}
