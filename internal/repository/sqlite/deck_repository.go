package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/flashdeck/flashdeck/internal/logger"
	"github.com/flashdeck/flashdeck/internal/models"
	"github.com/flashdeck/flashdeck/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type deckRepository struct {
	db  *sql.DB
	key string
}

// NewDeckRepository creates a DeckRepository that stores the deck list as a
// single JSON blob under the given key.
func NewDeckRepository(db *sql.DB, key string) repository.DeckRepository {
	return &deckRepository{db: db, key: key}
}

func (r *deckRepository) Load(ctx context.Context) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("loading deck blob: key=%s", r.key)

	query, args, err := sqlBuilder.
		Select("value").
		From("blobs").
		Where(squirrel.Eq{"key": r.key}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var raw []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no deck blob yet, starting empty")
		return []models.Deck{}, nil
	}
	if err != nil {
		log.Error("failed to load deck blob: %v", err)
		return nil, err
	}

	var decks []models.Deck
	if err := json.Unmarshal(raw, &decks); err != nil {
		// Corrupt blobs degrade to an empty store rather than failing startup.
		log.Warn("deck blob is malformed, starting empty: %v", err)
		return []models.Deck{}, nil
	}

	// The stored slide count is redundant; the question list is authoritative.
	for i := range decks {
		decks[i].SyncSlides()
		if decks[i].Questions == nil {
			decks[i].Questions = []models.Question{}
		}
	}

	log.Debug("loaded %d decks", len(decks))
	return decks, nil
}

func (r *deckRepository) Save(ctx context.Context, decks []models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("saving deck blob: key=%s, decks=%d", r.key, len(decks))

	if decks == nil {
		decks = []models.Deck{}
	}
	raw, err := json.Marshal(decks)
	if err != nil {
		log.Error("failed to marshal decks: %v", err)
		return err
	}

	query, args, err := sqlBuilder.
		Insert("blobs").
		Columns("key", "value").
		Values(r.key, raw).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		log.Error("failed to build upsert: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to save deck blob: %v", err)
		return err
	}
	return nil
}
