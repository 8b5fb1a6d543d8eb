package repository

import (
	"context"

	"github.com/flashdeck/flashdeck/internal/models"
)

// DeckRepository persists the full deck list as one opaque blob. The deck
// store is the sole owner of that blob; nothing else reads or writes it.
type DeckRepository interface {
	// Load returns the persisted deck list. A missing or malformed blob
	// degrades to an empty list, never an error.
	Load(ctx context.Context) ([]models.Deck, error)
	// Save replaces the persisted blob with the given deck list.
	Save(ctx context.Context, decks []models.Deck) error
}
