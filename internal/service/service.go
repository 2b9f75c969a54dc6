package service

import (
	"time"

	"github.com/alligatorO15/fin-lists/internal/config"
	"github.com/alligatorO15/fin-lists/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Account  AccountService
	Record   RecordService
	Category CategoryService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, loc *time.Location, logger *zap.Logger) *Services {
	return &Services{
		Account:  NewAccountService(repos.TxManager, repos.Account, logger.Named("accounts")),
		Record:   NewRecordService(repos.Record, loc, cfg.RecordListLimit, logger.Named("records")),
		Category: NewCategoryService(repos.Category),
	}
}
