package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/tml-corrosion-tracker/internal/domain"
)

// KeyStore holds the Gemini API key with at most one active row.
// Replace and UpsertActive must each run as one atomic step.
type KeyStore interface {
	ActiveKey(ctx context.Context) (*domain.APIKey, error)
	Replace(ctx context.Context, apiKey string) (*domain.APIKey, error)
	UpsertActive(ctx context.Context, apiKey string) (*domain.APIKey, error)
}

type KeyService struct {
	store KeyStore
}

func NewKeyService(store KeyStore) *KeyService { return &KeyService{store: store} }

// Active returns the active key value, or repository.ErrNotFound.
func (s *KeyService) Active(ctx context.Context) (string, error) {
	k, err := s.store.ActiveKey(ctx)
	if err != nil {
		return "", err
	}
	return k.APIKey, nil
}

// Save retires every stored key and makes apiKey the active one.
func (s *KeyService) Save(ctx context.Context, apiKey string) error {
	apiKey, err := cleanKey(apiKey)
	if err != nil {
		return err
	}
	k, err := s.store.Replace(ctx, apiKey)
	if err != nil {
		return err
	}
	log.Info().Int64("key_id", k.ID).Msg("gemini api key replaced")
	return nil
}

// Update rewrites the active key in place, creating it if none is active.
func (s *KeyService) Update(ctx context.Context, apiKey string) error {
	apiKey, err := cleanKey(apiKey)
	if err != nil {
		return err
	}
	k, err := s.store.UpsertActive(ctx, apiKey)
	if err != nil {
		return err
	}
	log.Info().Int64("key_id", k.ID).Msg("gemini api key updated")
	return nil
}

func cleanKey(apiKey string) (string, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return "", invalid("apiKey", "must not be blank")
	}
	return apiKey, nil
}
