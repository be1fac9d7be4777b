package pgsql

import (
	portsrepo "github.com/SscSPs/hr_memo_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MemorandumRepo: newPgxMemorandumRepository(dbPool),
		EmployeeRepo:   newPgxEmployeeRepository(dbPool),
	}
}
