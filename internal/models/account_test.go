package models

import (
	"errors"
	"testing"
	"time"
)

func groupOf(ids ...int64) *AccountGroup {
	g := &AccountGroup{ID: 1, Name: "Cards"}
	for i, id := range ids {
		g.Accounts = append(g.Accounts, Account{ID: id, GroupID: 1, SortOrder: i})
	}
	return g
}

func idsOf(g *AccountGroup) []int64 {
	out := make([]int64, 0, len(g.Accounts))
	for _, a := range g.Accounts {
		out = append(out, a.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAccountGroupMoveAccount(t *testing.T) {
	cases := []struct {
		name     string
		active   int64
		over     int64
		expected []int64
	}{
		{"down", 1, 3, []int64{2, 3, 1, 4}},
		{"up", 4, 2, []int64{1, 4, 2, 3}},
		{"neighbour", 2, 3, []int64{1, 3, 2, 4}},
		{"to end", 1, 4, []int64{2, 3, 4, 1}},
		{"same", 3, 3, []int64{1, 2, 3, 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := groupOf(1, 2, 3, 4)
			if err := g.MoveAccount(tc.active, tc.over); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := idsOf(g); !equalIDs(got, tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
			for i, a := range g.Accounts {
				if a.SortOrder != i {
					t.Fatalf("account %d has sort order %d at index %d", a.ID, a.SortOrder, i)
				}
			}
		})
	}
}

func TestAccountGroupMoveUnknownIsNoop(t *testing.T) {
	g := groupOf(1, 2, 3)
	for _, pair := range [][2]int64{{9, 1}, {1, 9}, {9, 9}} {
		err := g.MoveAccount(pair[0], pair[1])
		if !errors.Is(err, ErrAccountNotFound) {
			t.Fatalf("move %v: expected ErrAccountNotFound, got %v", pair, err)
		}
		if got := idsOf(g); !equalIDs(got, []int64{1, 2, 3}) {
			t.Fatalf("move %v mutated group: %v", pair, got)
		}
	}
}

func TestAccountGroupDeleteAccount(t *testing.T) {
	g := groupOf(1, 2, 3)
	if err := g.DeleteAccount(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := idsOf(g); !equalIDs(got, []int64{1, 3}) {
		t.Fatalf("unexpected accounts after delete: %v", got)
	}
	if err := g.DeleteAccount(2); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound on second delete, got %v", err)
	}
}

func TestFilterFormEqual(t *testing.T) {
	a := FilterForm{RecordType: Int64(1), CategoryID: Int64(7)}
	b := FilterForm{RecordType: Int64(1), CategoryID: Int64(7)}
	if !a.Equal(b) {
		t.Fatalf("expected equal forms by value")
	}
	b.AccountID = Int64(2)
	if a.Equal(b) {
		t.Fatalf("expected forms to differ")
	}
	if !(FilterForm{}).IsEmpty() {
		t.Fatalf("zero form must be empty")
	}
}

func TestRecordItemText(t *testing.T) {
	from, to, cat, remark := "Cash", "Card", "Food", "lunch"
	at := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)

	transfer := RecordItem{RecordType: RecordTypeTransfer, AccountName: from, TargetAccountName: &to, RecordTime: at}
	if got := transfer.Title(); got != "Cash → Card" {
		t.Fatalf("unexpected transfer title %q", got)
	}
	if got := transfer.Subtitle(); got != "Mar 5 09:30" {
		t.Fatalf("unexpected subtitle %q", got)
	}

	expense := RecordItem{RecordType: RecordTypeExpense, CategoryName: &cat, Remark: &remark, RecordTime: at}
	if got := expense.Title(); got != "Food" {
		t.Fatalf("unexpected expense title %q", got)
	}
	if got := expense.Subtitle(); got != "Mar 5 09:30 - lunch" {
		t.Fatalf("unexpected subtitle %q", got)
	}
}
