package service

import (
	"context"
	"fmt"

	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/alligatorO15/fin-lists/internal/reorder"
	"github.com/alligatorO15/fin-lists/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AccountService interface {
	GetGroups(ctx context.Context, userID uuid.UUID) ([]models.AccountGroup, error)
	GetGroup(ctx context.Context, userID uuid.UUID, groupID int64) (*models.AccountGroup, error)
	// MoveAccount ставит activeID на место overID внутри его группы. false значит ничего не поменялось.
	MoveAccount(ctx context.Context, userID uuid.UUID, activeID, overID int64) (bool, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID, id int64) error
	// Drag проигрывает записанный жест над группой; пустые slots значит строки в текущем порядке
	Drag(ctx context.Context, userID uuid.UUID, groupID int64, slots []reorder.Slot, events []reorder.Event) (*reorder.Result, error)
	// Sink владелец порядка счетов для одного пользователя
	Sink(userID uuid.UUID) reorder.CommandSink
}

type accountService struct {
	txManager   repository.TxManager
	accountRepo repository.AccountRepository
	logger      *zap.Logger
}

func NewAccountService(txManager repository.TxManager, accountRepo repository.AccountRepository, logger *zap.Logger) AccountService {
	return &accountService{
		txManager:   txManager,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

func (s *accountService) GetGroups(ctx context.Context, userID uuid.UUID) ([]models.AccountGroup, error) {
	return s.accountRepo.GetGroups(ctx, userID)
}

func (s *accountService) GetGroup(ctx context.Context, userID uuid.UUID, groupID int64) (*models.AccountGroup, error) {
	return s.accountRepo.GetGroup(ctx, userID, groupID)
}

func (s *accountService) MoveAccount(ctx context.Context, userID uuid.UUID, activeID, overID int64) (bool, error) {
	if activeID == overID {
		return false, nil
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		group, err := s.accountRepo.GetGroupByAccountID(ctx, userID, activeID)
		if err != nil {
			return err
		}
		// over из чужой группы тоже "не найден"
		if err := group.MoveAccount(activeID, overID); err != nil {
			return err
		}
		return s.accountRepo.UpdateSortOrder(ctx, group.Accounts)
	})
	if err != nil {
		return false, err
	}

	s.logger.Debug("account moved",
		zap.String("user_id", userID.String()),
		zap.Int64("active_id", activeID),
		zap.Int64("over_id", overID),
	)
	return true, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID uuid.UUID, id int64) error {
	if err := s.accountRepo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Debug("account deleted", zap.String("user_id", userID.String()), zap.Int64("id", id))
	return nil
}

func (s *accountService) Drag(ctx context.Context, userID uuid.UUID, groupID int64, slots []reorder.Slot, events []reorder.Event) (*reorder.Result, error) {
	group, err := s.accountRepo.GetGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	if len(slots) == 0 {
		ids := make([]int64, 0, len(group.Accounts))
		for _, a := range group.Accounts {
			ids = append(ids, a.ID)
		}
		slots = reorder.Rows(ids, 1)
	}
	for _, slot := range slots {
		if group.IndexOf(slot.ID) < 0 {
			return nil, fmt.Errorf("slot %d: %w", slot.ID, models.ErrAccountNotFound)
		}
	}

	session := reorder.NewSession(s.Sink(userID), slots)
	return reorder.Replay(ctx, session, events)
}

func (s *accountService) Sink(userID uuid.UUID) reorder.CommandSink {
	return &userSink{service: s, userID: userID}
}

type userSink struct {
	service *accountService
	userID  uuid.UUID
}

func (u *userSink) MoveAccount(ctx context.Context, activeID, overID int64) error {
	_, err := u.service.MoveAccount(ctx, u.userID, activeID, overID)
	return err
}

func (u *userSink) DeleteAccount(ctx context.Context, id int64) error {
	return u.service.DeleteAccount(ctx, u.userID, id)
}
