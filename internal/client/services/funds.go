package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Austin-Patrician/eastmoney/internal/client/client"
	"github.com/Austin-Patrician/eastmoney/internal/client/models"
)

type FundService interface {
	List(ctx context.Context) ([]models.Fund, error)
	Add(ctx context.Context, f models.NewFund) (*models.Fund, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, keyword string) ([]json.RawMessage, error)
}

type fundService struct {
	client client.Client
}

func NewFundService(client client.Client) FundService {
	return &fundService{client: client}
}

func (s *fundService) List(ctx context.Context) ([]models.Fund, error) {
	funds, err := s.client.ListFunds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list funds: %w", err)
	}
	return funds, nil
}

func (s *fundService) Add(ctx context.Context, f models.NewFund) (*models.Fund, error) {
	f.FundCode = strings.TrimSpace(f.FundCode)
	f.FundName = strings.TrimSpace(f.FundName)
	f.FundType = strings.TrimSpace(f.FundType)
	if f.FundCode == "" || f.FundName == "" {
		return nil, fmt.Errorf("fund code and name: %w", ErrMissingInput)
	}

	out, err := s.client.AddFund(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("add fund: %w", err)
	}
	return out, nil
}

func (s *fundService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("fund id: %w", ErrMissingInput)
	}
	if err := s.client.DeleteFund(ctx, id); err != nil {
		return fmt.Errorf("delete fund: %w", err)
	}
	return nil
}

func (s *fundService) Search(ctx context.Context, keyword string) ([]json.RawMessage, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("keyword: %w", ErrMissingInput)
	}
	res, err := s.client.SearchFunds(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search funds: %w", err)
	}
	return res, nil
}
