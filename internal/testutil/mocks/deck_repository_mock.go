package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/flashdeck/flashdeck/internal/models"
)

// DeckRepositoryMock is a testify mock of repository.DeckRepository.
type DeckRepositoryMock struct {
	mock.Mock
}

func (m *DeckRepositoryMock) Load(ctx context.Context) ([]models.Deck, error) {
	args := m.Called(ctx)
	if decks, ok := args.Get(0).([]models.Deck); ok {
		return decks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DeckRepositoryMock) Save(ctx context.Context, decks []models.Deck) error {
	args := m.Called(ctx, decks)
	return args.Error(0)
}
