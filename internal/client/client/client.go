package client

import (
	"context"
	"encoding/json"

	"github.com/Austin-Patrician/eastmoney/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, username, email string, password []byte) (*models.Session, error)
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Logout()
	Me(ctx context.Context) (*models.User, error)
	ListFunds(ctx context.Context) ([]models.Fund, error)
	AddFund(ctx context.Context, f models.NewFund) (*models.Fund, error)
	DeleteFund(ctx context.Context, id string) error
	SearchFunds(ctx context.Context, keyword string) ([]json.RawMessage, error)
	Ping(ctx context.Context) error
}
