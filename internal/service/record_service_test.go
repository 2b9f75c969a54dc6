package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alligatorO15/fin-lists/internal/filterquery"
	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func record(id int64, t models.RecordType, amount string, at time.Time) models.RecordItem {
	return models.RecordItem{ID: id, RecordType: t, Amount: decimal.RequireFromString(amount), RecordTime: at}
}

func TestRecordListCanonicalState(t *testing.T) {
	repo := &fakeRecords{records: []models.RecordItem{
		record(3, models.RecordTypeExpense, "100", time.Date(2024, time.February, 3, 10, 0, 0, 0, time.UTC)),
		record(2, models.RecordTypeIncome, "50", time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC)),
		record(1, models.RecordTypeTransfer, "999", time.Date(2024, time.January, 20, 10, 0, 0, 0, time.UTC)),
	}}
	svc := NewRecordService(repo, time.UTC, 100, zap.NewNop())

	list, err := svc.List(context.Background(), uuid.New(), filterquery.Params{
		"record_type": "1",
		"category_id": "4",
		"account_id":  "abc",
		"ref":         "share",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if list.Query != "category_id=4&record_type=1&ref=share" {
		t.Errorf("unexpected query %q", list.Query)
	}
	if list.Params["ref"] != "share" {
		t.Errorf("unknown keys must pass through, got %v", list.Params)
	}
	if list.Filter.AccountID != nil {
		t.Errorf("malformed account_id must be dropped")
	}
	if got := repo.filters[0]; got.RecordType == nil || *got.RecordType != 1 || *got.CategoryID != 4 {
		t.Errorf("unexpected repo filter %+v", got)
	}
	if repo.limits[0] != 100 {
		t.Errorf("expected configured limit, got %d", repo.limits[0])
	}

	if list.Truncated {
		t.Errorf("list under the limit is not truncated")
	}
	if list.Count != 3 || len(list.Groups) != 2 {
		t.Fatalf("expected 3 records in 2 groups, got %d/%d", list.Count, len(list.Groups))
	}
	if list.Groups[0].Month != "Feb 2024" || !list.Groups[0].Total.Equal(decimal.NewFromInt(150)) {
		t.Errorf("unexpected first group %s %s", list.Groups[0].Month, list.Groups[0].Total)
	}
	if !list.Groups[1].Total.IsZero() {
		t.Errorf("transfers must not count, got %s", list.Groups[1].Total)
	}
	if len(list.Summaries) != 2 || !list.Summaries[0].Income.Equal(decimal.NewFromInt(50)) {
		t.Errorf("unexpected summaries %+v", list.Summaries)
	}
}

func TestRecordListCountsBeyondLimit(t *testing.T) {
	repo := &fakeRecords{records: []models.RecordItem{
		record(3, models.RecordTypeExpense, "1", time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC)),
		record(2, models.RecordTypeExpense, "2", time.Date(2024, time.March, 2, 10, 0, 0, 0, time.UTC)),
		record(1, models.RecordTypeExpense, "3", time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)),
	}}
	svc := NewRecordService(repo, time.UTC, 2, zap.NewNop())

	list, err := svc.List(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !list.Truncated || list.Count != 3 {
		t.Fatalf("expected truncated list of 3, got truncated=%v count=%d", list.Truncated, list.Count)
	}
	if got := len(list.Groups[0].Records); got != 2 {
		t.Fatalf("expected 2 loaded records, got %d", got)
	}
}

func TestGetRecordListDropsCategoryWithoutType(t *testing.T) {
	repo := &fakeRecords{}
	svc := NewRecordService(repo, nil, 10, zap.NewNop())

	_, err := svc.Fetcher(uuid.New()).GetRecordList(context.Background(), models.FilterForm{CategoryID: models.Int64(4)})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if repo.filters[0].CategoryID != nil {
		t.Fatalf("category without type must not reach the repository")
	}
}

func TestRecordListError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewRecordService(&fakeRecords{err: boom}, nil, 10, zap.NewNop())

	if _, err := svc.List(context.Background(), uuid.New(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestCategoryList(t *testing.T) {
	svc := NewCategoryService(&fakeCategories{all: []models.Category{
		{ID: 1, Name: "Зарплата", RecordType: models.RecordTypeIncome},
		{ID: 2, Name: "Продукты", RecordType: models.RecordTypeExpense},
	}})
	ctx := context.Background()

	all, _ := svc.List(ctx, uuid.New(), nil)
	if len(all) != 2 {
		t.Fatalf("expected all categories, got %d", len(all))
	}

	expense := models.RecordTypeExpense
	got, _ := svc.List(ctx, uuid.New(), &expense)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected categories %+v", got)
	}

	bad := models.RecordType(7)
	if _, err := svc.List(ctx, uuid.New(), &bad); !errors.Is(err, ErrInvalidRecordType) {
		t.Fatalf("expected ErrInvalidRecordType, got %v", err)
	}
}
