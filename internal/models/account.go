package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrGroupNotFound   = errors.New("account group not found")
)

type AccountType string

const (
	AccountTypeCash       AccountType = "cash"
	AccountTypeBank       AccountType = "bank"
	AccountTypeCredit     AccountType = "credit"
	AccountTypeInvestment AccountType = "investment"
	AccountTypeCrypto     AccountType = "crypto"
	AccountTypeDebt       AccountType = "debt"
)

type Account struct {
	ID        int64           `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"-" db:"user_id"`
	GroupID   int64           `json:"group_id" db:"group_id"`
	Name      string          `json:"name" db:"name"`
	Type      AccountType     `json:"type" db:"type"`
	Currency  string          `json:"currency" db:"currency"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	Icon      string          `json:"icon" db:"icon"`
	Color     string          `json:"color" db:"color"`
	SortOrder int             `json:"sort_order" db:"sort_order"` // позиция внутри группы
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// группа счетов, порядок Accounts и есть порядок отображения
type AccountGroup struct {
	ID        int64     `json:"id" db:"id"`
	UserID    uuid.UUID `json:"-" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	Accounts  []Account `json:"accounts"`
}

// IndexOf возвращает позицию счета в группе или -1
func (g *AccountGroup) IndexOf(id int64) int {
	for i := range g.Accounts {
		if g.Accounts[i].ID == id {
			return i
		}
	}
	return -1
}

// MoveAccount переставляет счет activeID на место overID, сдвигая промежуточные на одну позицию.
// Если какого-то id нет в группе, группа не меняется.
func (g *AccountGroup) MoveAccount(activeID, overID int64) error {
	from := g.IndexOf(activeID)
	to := g.IndexOf(overID)
	if from < 0 || to < 0 {
		return ErrAccountNotFound
	}
	if from == to {
		return nil
	}

	g.Accounts = arrayMove(g.Accounts, from, to)
	g.renumber()
	return nil
}

func (g *AccountGroup) DeleteAccount(id int64) error {
	idx := g.IndexOf(id)
	if idx < 0 {
		return ErrAccountNotFound
	}

	accounts := make([]Account, 0, len(g.Accounts)-1)
	accounts = append(accounts, g.Accounts[:idx]...)
	accounts = append(accounts, g.Accounts[idx+1:]...)
	g.Accounts = accounts
	g.renumber()
	return nil
}

// renumber приводит SortOrder к позиции в срезе
func (g *AccountGroup) renumber() {
	for i := range g.Accounts {
		g.Accounts[i].SortOrder = i
	}
}

// arrayMove возвращает новый срез, исходный не трогаем
func arrayMove[T any](items []T, from, to int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[:from]...)
	out = append(out, items[from+1:]...)

	moved := items[from]
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out
}
