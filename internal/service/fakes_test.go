package service

import (
	"context"
	"sort"

	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/google/uuid"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// fakeAccounts хранит счета в памяти, порядок задается SortOrder
type fakeAccounts struct {
	groups   []models.AccountGroup
	accounts map[int64]models.Account
	writes   int
}

func newFakeAccounts(groups ...models.AccountGroup) *fakeAccounts {
	f := &fakeAccounts{accounts: map[int64]models.Account{}}
	for _, g := range groups {
		for i, a := range g.Accounts {
			a.GroupID = g.ID
			a.SortOrder = i
			f.accounts[a.ID] = a
		}
		g.Accounts = nil
		f.groups = append(f.groups, g)
	}
	return f
}

func (f *fakeAccounts) GetGroups(ctx context.Context, userID uuid.UUID) ([]models.AccountGroup, error) {
	out := []models.AccountGroup{}
	for _, g := range f.groups {
		group, _ := f.GetGroup(ctx, userID, g.ID)
		out = append(out, *group)
	}
	return out, nil
}

func (f *fakeAccounts) GetGroup(_ context.Context, _ uuid.UUID, groupID int64) (*models.AccountGroup, error) {
	for _, g := range f.groups {
		if g.ID != groupID {
			continue
		}
		group := g
		group.Accounts = []models.Account{}
		for _, a := range f.accounts {
			if a.GroupID == groupID {
				group.Accounts = append(group.Accounts, a)
			}
		}
		sort.Slice(group.Accounts, func(i, j int) bool {
			return group.Accounts[i].SortOrder < group.Accounts[j].SortOrder
		})
		return &group, nil
	}
	return nil, models.ErrGroupNotFound
}

func (f *fakeAccounts) GetGroupByAccountID(ctx context.Context, userID uuid.UUID, accountID int64) (*models.AccountGroup, error) {
	a, ok := f.accounts[accountID]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return f.GetGroup(ctx, userID, a.GroupID)
}

func (f *fakeAccounts) UpdateSortOrder(_ context.Context, accounts []models.Account) error {
	f.writes++
	for _, a := range accounts {
		stored := f.accounts[a.ID]
		stored.SortOrder = a.SortOrder
		f.accounts[a.ID] = stored
	}
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, _ uuid.UUID, id int64) error {
	if _, ok := f.accounts[id]; !ok {
		return models.ErrAccountNotFound
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccounts) order(groupID int64) []int64 {
	g, _ := f.GetGroup(context.Background(), uuid.Nil, groupID)
	ids := []int64{}
	for _, a := range g.Accounts {
		ids = append(ids, a.ID)
	}
	return ids
}

type fakeRecords struct {
	records []models.RecordItem
	filters []models.FilterForm
	limits  []int
	err     error
}

func (f *fakeRecords) GetList(_ context.Context, _ uuid.UUID, filter models.FilterForm, limit int) ([]models.RecordItem, error) {
	f.filters = append(f.filters, filter)
	f.limits = append(f.limits, limit)
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.records) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func (f *fakeRecords) Count(_ context.Context, _ uuid.UUID, _ models.FilterForm) (int64, error) {
	return int64(len(f.records)), f.err
}

type fakeCategories struct {
	all []models.Category
}

func (f *fakeCategories) GetByUserID(_ context.Context, _ uuid.UUID) ([]models.Category, error) {
	return f.all, nil
}

func (f *fakeCategories) GetByType(_ context.Context, _ uuid.UUID, recordType models.RecordType) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range f.all {
		if c.RecordType == recordType {
			out = append(out, c)
		}
	}
	return out, nil
}
