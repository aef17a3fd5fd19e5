// Package settings provides the PostgreSQL-backed per-user settings store.
package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Austin-Patrician/eastmoney/internal/common"
	"github.com/Austin-Patrician/eastmoney/internal/dbx"
	"github.com/Austin-Patrician/eastmoney/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByUserID returns common.ErrorNotFound when the user has never saved
// settings.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*models.Settings, error) {
	query :=
		`SELECT id, user_id, ai_models, active_model_index, tavily_api_key, created_at, updated_at
		 FROM settings WHERE user_id = $1`

	var (
		s      models.Settings
		aiJSON []byte
	)
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&s.ID, &s.UserID, &aiJSON, &s.ActiveModelIndex, &s.TavilyAPIKey, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	s.AIModels = []models.AIModel{}
	if len(aiJSON) > 0 {
		if err := json.Unmarshal(aiJSON, &s.AIModels); err != nil {
			return nil, fmt.Errorf("decode ai_models: %w", err)
		}
	}
	return &s, nil
}

// Upsert inserts s or replaces the existing record for s.UserID.
func (r *PostgresRepository) Upsert(ctx context.Context, s *models.Settings) (*models.Settings, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.AIModels == nil {
		s.AIModels = []models.AIModel{}
	}
	aiJSON, err := json.Marshal(s.AIModels)
	if err != nil {
		return nil, fmt.Errorf("encode ai_models: %w", err)
	}

	query := `
		INSERT INTO settings (id, user_id, ai_models, active_model_index, tavily_api_key)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET
			ai_models = EXCLUDED.ai_models,
			active_model_index = EXCLUDED.active_model_index,
			tavily_api_key = EXCLUDED.tavily_api_key,
			updated_at = now()
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query, s.ID, s.UserID, aiJSON, s.ActiveModelIndex, s.TavilyAPIKey).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
