// Package grouping раскладывает плоский список записей по месяцам.
package grouping

import (
	"time"

	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/shopspring/decimal"
)

// MonthLayout формат ключа группы: "Jan 2024"
const MonthLayout = "Jan 2006"

// Group собирает группы в порядке первого появления месяца, внутри группы порядок входа сохраняется.
// Переводы попадают в список, но не в итог: деньги остаются у пользователя.
// loc == nil означает зону самой записи.
func Group(records []models.RecordItem, loc *time.Location) []models.RecordGroup {
	groups := []models.RecordGroup{}
	index := make(map[string]int)

	for _, record := range records {
		month := MonthKey(record.RecordTime, loc)

		i, ok := index[month]
		if !ok {
			groups = append(groups, models.RecordGroup{
				Month:   month,
				Total:   decimal.Zero,
				Records: []models.RecordItem{},
			})
			i = len(groups) - 1
			index[month] = i
		}

		g := &groups[i]
		g.Records = append(g.Records, record)
		if record.RecordType != models.RecordTypeTransfer {
			g.Total = g.Total.Add(record.Amount)
		}
	}

	return groups
}

func MonthKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(MonthLayout)
}

// Summary разбивка итога группы по типам записей
type Summary struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expense  decimal.Decimal `json:"expense"`
	Transfer decimal.Decimal `json:"transfer"`
	Count    int             `json:"count"`
}

func Summarize(g models.RecordGroup) Summary {
	s := Summary{
		Month:    g.Month,
		Income:   decimal.Zero,
		Expense:  decimal.Zero,
		Transfer: decimal.Zero,
		Count:    len(g.Records),
	}
	for _, r := range g.Records {
		switch r.RecordType {
		case models.RecordTypeIncome:
			s.Income = s.Income.Add(r.Amount)
		case models.RecordTypeExpense:
			s.Expense = s.Expense.Add(r.Amount)
		case models.RecordTypeTransfer:
			s.Transfer = s.Transfer.Add(r.Amount)
		}
	}
	return s
}
