package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	TxManager TxManager
	Account   AccountRepository
	Record    RecordRepository
	Category  CategoryRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		TxManager: NewTxManager(pool),
		Account:   NewAccountRepository(pool),
		Record:    NewRecordRepository(pool),
		Category:  NewCategoryRepository(pool),
	}
}
