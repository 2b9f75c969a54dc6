package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/alligatorO15/fin-lists/internal/reorder"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestAccountService() (AccountService, *fakeAccounts, *fakeTx) {
	repo := newFakeAccounts(
		models.AccountGroup{ID: 1, Name: "Наличные", Accounts: []models.Account{{ID: 1}, {ID: 2}, {ID: 3}}},
		models.AccountGroup{ID: 2, Name: "Карты", Accounts: []models.Account{{ID: 10}, {ID: 11}}},
	)
	tx := &fakeTx{}
	return NewAccountService(tx, repo, zap.NewNop()), repo, tx
}

func TestMoveAccount(t *testing.T) {
	svc, repo, tx := newTestAccountService()
	ctx := context.Background()
	user := uuid.New()

	moved, err := svc.MoveAccount(ctx, user, 1, 3)
	if err != nil || !moved {
		t.Fatalf("expected move, got moved=%v err=%v", moved, err)
	}
	if got := repo.order(1); !reflect.DeepEqual(got, []int64{2, 3, 1}) {
		t.Fatalf("unexpected order %v", got)
	}
	if tx.calls != 1 {
		t.Fatalf("expected move in one transaction, got %d", tx.calls)
	}

	moved, err = svc.MoveAccount(ctx, user, 2, 2)
	if err != nil || moved {
		t.Fatalf("same id must be a no-op, got moved=%v err=%v", moved, err)
	}
}

func TestMoveAccountNotFound(t *testing.T) {
	svc, repo, _ := newTestAccountService()
	ctx := context.Background()

	tests := []struct {
		name         string
		active, over int64
	}{
		{"unknown active", 99, 1},
		{"unknown over", 1, 99},
		{"over in another group", 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.MoveAccount(ctx, uuid.New(), tt.active, tt.over)
			if !errors.Is(err, models.ErrAccountNotFound) {
				t.Fatalf("expected ErrAccountNotFound, got %v", err)
			}
		})
	}
	if repo.writes != 0 {
		t.Fatalf("failed moves must not write, got %d writes", repo.writes)
	}
	if got := repo.order(1); !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("order changed: %v", got)
	}
}

func TestDragKeyboard(t *testing.T) {
	svc, repo, _ := newTestAccountService()

	res, err := svc.Drag(context.Background(), uuid.New(), 1, nil, []reorder.Event{
		{Type: reorder.EventStart, ActiveID: 1},
		{Type: reorder.EventStep, Direction: reorder.Down},
		{Type: reorder.EventStep, Direction: reorder.Down},
		{Type: reorder.EventEnd},
	})
	if err != nil {
		t.Fatalf("drag: %v", err)
	}
	if !res.Moved || res.OverID == nil || *res.OverID != 3 {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := repo.order(1); !reflect.DeepEqual(got, []int64{2, 3, 1}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestDragCancelledWritesNothing(t *testing.T) {
	svc, repo, _ := newTestAccountService()

	res, err := svc.Drag(context.Background(), uuid.New(), 1, nil, []reorder.Event{
		{Type: reorder.EventStart, ActiveID: 2},
		{Type: reorder.EventStep, Direction: reorder.Up},
		{Type: reorder.EventCancel},
	})
	if err != nil || res.Moved {
		t.Fatalf("expected no move, got %+v err=%v", res, err)
	}
	if repo.writes != 0 {
		t.Fatalf("cancel must not write")
	}
}

func TestDragRejectsForeignSlots(t *testing.T) {
	svc, _, _ := newTestAccountService()

	_, err := svc.Drag(context.Background(), uuid.New(), 1, reorder.Rows([]int64{1, 10}, 1), nil)
	if !errors.Is(err, models.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	_, err = svc.Drag(context.Background(), uuid.New(), 42, nil, nil)
	if !errors.Is(err, models.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	svc, repo, _ := newTestAccountService()
	ctx := context.Background()

	if err := svc.Sink(uuid.New()).DeleteAccount(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := repo.order(1); !reflect.DeepEqual(got, []int64{1, 3}) {
		t.Fatalf("unexpected order %v", got)
	}
	if err := svc.DeleteAccount(ctx, uuid.New(), 2); !errors.Is(err, models.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
