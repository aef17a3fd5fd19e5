// Package funds provides the PostgreSQL-backed watch list repository.
package funds

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

const userCodeConstraint = "funds_user_code_key"

const selectColumns = `id, user_id, fund_code, fund_name, fund_type, style, focus_boards,
	schedule_enabled, schedule_time, schedule_interval, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the user's funds, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Fund, error) {
	query := `SELECT ` + selectColumns + ` FROM funds WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Fund{}
	for rows.Next() {
		f, err := scanFund(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Create inserts fund. A second fund with the same code for the same user
// yields common.ErrFundExists.
func (r *PostgresRepository) Create(ctx context.Context, fund *models.Fund) (*models.Fund, error) {
	if fund.ID == "" {
		fund.ID = uuid.NewString()
	}
	if fund.ScheduleInterval == "" {
		fund.ScheduleInterval = models.DefaultScheduleInterval
	}
	boards, err := encodeBoards(fund.FocusBoards)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO funds (id, user_id, fund_code, fund_name, fund_type, style, focus_boards,
			schedule_enabled, schedule_time, schedule_interval)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		fund.ID, fund.UserID, fund.FundCode, fund.FundName, fund.FundType, fund.Style, boards,
		fund.ScheduleEnabled, fund.ScheduleTime, fund.ScheduleInterval,
	).Scan(&fund.CreatedAt, &fund.UpdatedAt)
	if err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok && constraint == userCodeConstraint {
			return nil, common.ErrFundExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return fund, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Fund, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query := `SELECT ` + selectColumns + ` FROM funds WHERE id = $1 AND user_id = $2`

	f, err := scanFund(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	return f, nil
}

// Update writes the mutable fields of fund. Code, name and type are fixed
// once the fund is on the list.
func (r *PostgresRepository) Update(ctx context.Context, fund *models.Fund) (*models.Fund, error) {
	boards, err := encodeBoards(fund.FocusBoards)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE funds SET style = $3, focus_boards = $4, schedule_enabled = $5,
			schedule_time = $6, schedule_interval = $7, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING updated_at`

	err = r.db.QueryRowContext(ctx, query,
		fund.ID, fund.UserID, fund.Style, boards, fund.ScheduleEnabled, fund.ScheduleTime, fund.ScheduleInterval,
	).Scan(&fund.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return fund, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM funds WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFund(s scanner) (*models.Fund, error) {
	var (
		f      models.Fund
		boards []byte
	)
	err := s.Scan(&f.ID, &f.UserID, &f.FundCode, &f.FundName, &f.FundType, &f.Style, &boards,
		&f.ScheduleEnabled, &f.ScheduleTime, &f.ScheduleInterval, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	f.FocusBoards = []string{}
	if len(boards) > 0 {
		if err := json.Unmarshal(boards, &f.FocusBoards); err != nil {
			return nil, fmt.Errorf("decode focus_boards: %w", err)
		}
	}
	return &f, nil
}

func encodeBoards(boards []string) ([]byte, error) {
	if boards == nil {
		boards = []string{}
	}
	b, err := json.Marshal(boards)
	if err != nil {
		return nil, fmt.Errorf("encode focus_boards: %w", err)
	}
	return b, nil
}
