package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ludotheca/ludotheca_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := NewPgxUserRepository(dbPool)
	cashRepo := NewPgxCashRepository(dbPool)
	sequenceRepo := NewPgxSequenceRepository(dbPool)
	ledgerRepo := NewPgxLedgerRepository(dbPool, sequenceRepo)
	mappingRepo := NewPgxAccountMappingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:     userRepo,
		CashRepo:     cashRepo,
		LedgerRepo:   ledgerRepo,
		SequenceRepo: sequenceRepo,
		MappingRepo:  mappingRepo,
	}
}
