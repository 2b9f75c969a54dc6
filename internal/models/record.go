package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RecordType кодируется целым числом, как в query-параметре record_type
type RecordType int

const (
	RecordTypeExpense  RecordType = 1
	RecordTypeIncome   RecordType = 2
	RecordTypeTransfer RecordType = 3
)

func (t RecordType) String() string {
	switch t {
	case RecordTypeExpense:
		return "expense"
	case RecordTypeIncome:
		return "income"
	case RecordTypeTransfer:
		return "transfer"
	}
	return fmt.Sprintf("RecordType(%d)", int(t))
}

func (t RecordType) IsValid() bool {
	return t == RecordTypeExpense || t == RecordTypeIncome || t == RecordTypeTransfer
}

// RecordItem только для чтения, данными владеет бэкенд
type RecordItem struct {
	ID                int64           `json:"id" db:"id"`
	RecordType        RecordType      `json:"record_type" db:"record_type"`
	Amount            decimal.Decimal `json:"amount" db:"amount"`
	RecordTime        time.Time       `json:"record_time" db:"record_time"`
	AccountName       string          `json:"account_name" db:"account_name"`
	TargetAccountName *string         `json:"target_account_name,omitempty" db:"target_account_name"` // только для переводов
	CategoryName      *string         `json:"category_name,omitempty" db:"category_name"`
	Remark            *string         `json:"remark,omitempty" db:"remark"`
}

// Title основная строка записи: категория или "откуда → куда" для перевода
func (r RecordItem) Title() string {
	if r.RecordType == RecordTypeTransfer {
		return r.AccountName + " → " + deref(r.TargetAccountName)
	}
	return deref(r.CategoryName)
}

// Subtitle время записи и примечание, если есть
func (r RecordItem) Subtitle() string {
	ts := r.RecordTime.Format("Jan 2 15:04")
	if remark := deref(r.Remark); remark != "" {
		return ts + " - " + remark
	}
	return ts
}

// RecordGroup производная структура, пересчитывается на каждый рендер
type RecordGroup struct {
	Month   string          `json:"month"`
	Total   decimal.Decimal `json:"total"`
	Records []RecordItem    `json:"records"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
