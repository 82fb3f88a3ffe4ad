package pgsql

import (
	portsrepo "github.com/campuslib/library_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	departmentRepo := newPgxDepartmentRepository(dbPool)
	batchRepo := newPgxBatchRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	clearanceRepo := newPgxClearanceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:       userRepo,
		DepartmentRepo: departmentRepo,
		BatchRepo:      batchRepo,
		CategoryRepo:   categoryRepo,
		ClearanceRepo:  clearanceRepo,
	}
}
