package funds

import (
	"context"

	"github.com/Austin-Patrician/eastmoney/internal/server/models"
)

// Repository stores the funds each user watches. Every lookup is scoped by
// user id, so a fund owned by someone else behaves as missing.
type Repository interface {
	List(ctx context.Context, userID string) ([]*models.Fund, error)
	Create(ctx context.Context, fund *models.Fund) (*models.Fund, error)
	GetByID(ctx context.Context, userID, id string) (*models.Fund, error)
	Update(ctx context.Context, fund *models.Fund) (*models.Fund, error)
	Delete(ctx context.Context, userID, id string) error
}
