package settings

import (
	"context"

	"github.com/Austin-Patrician/eastmoney/internal/server/models"
)

// Repository stores one settings record per user.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Settings, error)
	Upsert(ctx context.Context, s *models.Settings) (*models.Settings, error)
}
