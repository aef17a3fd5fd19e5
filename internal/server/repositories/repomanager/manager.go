package repomanager

import (
	"context"
	"database/sql"

	"github.com/Austin-Patrician/eastmoney/internal/dbx"
	"github.com/Austin-Patrician/eastmoney/internal/server/repositories/funds"
	"github.com/Austin-Patrician/eastmoney/internal/server/repositories/settings"
	"github.com/Austin-Patrician/eastmoney/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Funds(db dbx.DBTX) funds.Repository
	Settings(db dbx.DBTX) settings.Repository
}
