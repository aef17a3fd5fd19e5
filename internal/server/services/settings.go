package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Austin-Patrician/eastmoney/internal/common"
	"github.com/Austin-Patrician/eastmoney/internal/dbx"
	"github.com/Austin-Patrician/eastmoney/internal/server/models"
	"github.com/Austin-Patrician/eastmoney/internal/server/repositories/repomanager"
)

// SecretSealer encrypts the API keys kept in settings before they are
// stored. *cryptox.Sealer implements it.
type SecretSealer interface {
	Seal(plaintext string) (string, error)
	Open(value string) (string, error)
}

// SettingsOption configures a SettingsService.
type SettingsOption func(*SettingsService)

// WithSecretSealer stores API keys sealed. Without it they are stored as
// given.
func WithSecretSealer(s SecretSealer) SettingsOption {
	return func(svc *SettingsService) { svc.sealer = s }
}

// SettingsService reads and writes per-user settings.
type SettingsService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	sealer      SecretSealer
}

func NewSettingsService(db dbx.DBTX, m repomanager.RepositoryManager, opts ...SettingsOption) *SettingsService {
	s := &SettingsService{db: db, repomanager: m}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the user's settings, creating the default record on first use.
func (s *SettingsService) Get(ctx context.Context, userID string) (*models.Settings, error) {
	repo := s.repomanager.Settings(s.db)

	st, err := repo.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		st, err = repo.Upsert(ctx, &models.Settings{UserID: userID, AIModels: []models.AIModel{}})
		if err != nil {
			return nil, fmt.Errorf("%w: create settings: %v", common.ErrorInternal, err)
		}
	case err != nil:
		return nil, fmt.Errorf("%w: get settings: %v", common.ErrorInternal, err)
	}

	if err := s.open(st); err != nil {
		return nil, err
	}
	return st, nil
}

// Update applies patch on top of the stored settings (or the defaults) and
// saves the result. Omitted fields keep their current values.
func (s *SettingsService) Update(ctx context.Context, userID string, patch models.SettingsPatch) (*models.Settings, error) {
	if patch.ActiveModelIndex != nil && *patch.ActiveModelIndex < 0 {
		return nil, common.NewValidationError("activeModelIndex must not be negative")
	}

	repo := s.repomanager.Settings(s.db)

	st, err := repo.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		st = &models.Settings{UserID: userID, AIModels: []models.AIModel{}}
	case err != nil:
		return nil, fmt.Errorf("%w: get settings: %v", common.ErrorInternal, err)
	default:
		if err := s.open(st); err != nil {
			return nil, err
		}
	}
	patch.Apply(st)

	sealed, err := s.seal(st)
	if err != nil {
		return nil, err
	}
	saved, err := repo.Upsert(ctx, sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: save settings: %v", common.ErrorInternal, err)
	}
	if err := s.open(saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// seal returns a copy of st with every API key sealed; st is not modified.
func (s *SettingsService) seal(st *models.Settings) (*models.Settings, error) {
	out := *st
	if s.sealer == nil {
		return &out, nil
	}

	var err error
	if out.TavilyAPIKey, err = s.sealer.Seal(st.TavilyAPIKey); err != nil {
		return nil, fmt.Errorf("%w: seal settings: %v", common.ErrorInternal, err)
	}
	out.AIModels = make([]models.AIModel, len(st.AIModels))
	for i, m := range st.AIModels {
		if m.APIKey, err = s.sealer.Seal(m.APIKey); err != nil {
			return nil, fmt.Errorf("%w: seal settings: %v", common.ErrorInternal, err)
		}
		out.AIModels[i] = m
	}
	return &out, nil
}

// open decrypts the API keys of st in place.
func (s *SettingsService) open(st *models.Settings) error {
	if s.sealer == nil {
		return nil
	}

	var err error
	if st.TavilyAPIKey, err = s.sealer.Open(st.TavilyAPIKey); err != nil {
		return fmt.Errorf("%w: open settings: %v", common.ErrorInternal, err)
	}
	opened := make([]models.AIModel, len(st.AIModels))
	for i, m := range st.AIModels {
		if m.APIKey, err = s.sealer.Open(m.APIKey); err != nil {
			return fmt.Errorf("%w: open settings: %v", common.ErrorInternal, err)
		}
		opened[i] = m
	}
	st.AIModels = opened
	return nil
}
