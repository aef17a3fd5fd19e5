package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Austin-Patrician/eastmoney/internal/common"
	"github.com/Austin-Patrician/eastmoney/internal/dbx"
	"github.com/Austin-Patrician/eastmoney/internal/server/models"
	"github.com/Austin-Patrician/eastmoney/internal/server/repositories/repomanager"
)

// FundSearcher looks funds up by keyword in the market data service.
type FundSearcher interface {
	SearchFunds(ctx context.Context, keyword string) ([]json.RawMessage, error)
}

// FundService manages a user's fund watch list.
type FundService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	search      FundSearcher
}

func NewFundService(db dbx.DBTX, m repomanager.RepositoryManager, search FundSearcher) *FundService {
	return &FundService{db: db, repomanager: m, search: search}
}

// List returns the user's funds, newest first.
func (s *FundService) List(ctx context.Context, userID string) ([]*models.Fund, error) {
	funds, err := s.repomanager.Funds(s.db).List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list funds: %v", common.ErrorInternal, err)
	}
	return funds, nil
}

// Add puts a fund on the user's list. Adding a code twice yields
// common.ErrFundExists.
func (s *FundService) Add(ctx context.Context, userID string, in FundInput) (*models.Fund, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	fund := &models.Fund{
		UserID:           userID,
		FundCode:         strings.TrimSpace(in.FundCode),
		FundName:         strings.TrimSpace(in.FundName),
		FundType:         in.FundType,
		Style:            in.Style,
		FocusBoards:      in.FocusBoards,
		ScheduleEnabled:  in.ScheduleEnabled,
		ScheduleTime:     in.ScheduleTime,
		ScheduleInterval: in.ScheduleInterval,
	}
	if fund.FocusBoards == nil {
		fund.FocusBoards = []string{}
	}

	created, err := s.repomanager.Funds(s.db).Create(ctx, fund)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: add fund: %v", common.ErrorInternal, err)
	}
	return created, nil
}

// Update applies patch to one of the user's funds. A fund the user does not
// own yields common.ErrorNotFound.
func (s *FundService) Update(ctx context.Context, userID, id string, patch models.FundPatch) (*models.Fund, error) {
	repo := s.repomanager.Funds(s.db)

	fund, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, notFoundOrInternal("get fund", err)
	}
	patch.Apply(fund)

	updated, err := repo.Update(ctx, fund)
	if err != nil {
		return nil, notFoundOrInternal("update fund", err)
	}
	return updated, nil
}

// Delete removes one of the user's funds.
func (s *FundService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repomanager.Funds(s.db).Delete(ctx, userID, id); err != nil {
		return notFoundOrInternal("delete fund", err)
	}
	return nil
}

// Search asks the market data service for funds matching keyword.
func (s *FundService) Search(ctx context.Context, keyword string) ([]json.RawMessage, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, common.NewValidationError(MsgKeywordRequired)
	}
	return s.search.SearchFunds(ctx, keyword)
}

func notFoundOrInternal(op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", common.ErrorInternal, op, err)
}
