package filterquery

import (
	"testing"

	"github.com/alligatorO15/fin-lists/internal/models"
)

func TestStateScenario(t *testing.T) {
	store := NewStore(nil)
	var changes []models.FilterForm
	state := NewState(store, nil, func(f models.FilterForm) { changes = append(changes, f) })
	defer state.Close()

	state.Update(models.FilterForm{RecordType: models.Int64(1)})
	if got := store.Current(); !got.Equal(Params{"record_type": "1"}) {
		t.Fatalf("expected {record_type:1}, got %v", got)
	}

	state.Update(models.FilterForm{CategoryID: models.Int64(7)})
	if got := store.Current(); !got.Equal(Params{}) {
		t.Fatalf("expected empty params, got %v", got)
	}

	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
}

func TestStateIgnoresSuperficialChanges(t *testing.T) {
	store := NewStore(Params{"record_type": "2", "account_id": "3"})
	calls := 0
	state := NewState(store, nil, func(models.FilterForm) { calls++ })
	defer state.Close()

	// тот же смысл, другое внешнее представление
	store.Replace(Params{"account_id": "3", "record_type": "2"})
	store.Replace(Params{"account_id": "3.0", "record_type": "2", "category_id": ""})
	store.Replace(Params{"account_id": "3", "record_type": "2", "utm": "mail"})
	if calls != 0 {
		t.Fatalf("expected no change notifications, got %d", calls)
	}

	store.Replace(Params{"record_type": "2"})
	if calls != 1 {
		t.Fatalf("expected one change notification, got %d", calls)
	}
	if f := state.Form(); f.AccountID != nil {
		t.Fatalf("expected account filter cleared, got %+v", f)
	}
}

func TestStateKeepsUnrecognizedKeys(t *testing.T) {
	store := NewStore(Params{"tab": "records", "account_id": "1"})
	state := NewState(store, nil, nil)
	defer state.Close()

	state.Update(models.FilterForm{RecordType: models.Int64(3)})
	expected := Params{"tab": "records", "record_type": "3"}
	if got := store.Current(); !got.Equal(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}

func TestStateDefaults(t *testing.T) {
	store := NewStore(Params{"account_id": "5"})
	state := NewState(store, Params{"record_type": "1"}, nil)
	defer state.Close()

	f := state.Form()
	if f.RecordType == nil || *f.RecordType != 1 || f.AccountID == nil || *f.AccountID != 5 {
		t.Fatalf("unexpected form %+v", f)
	}
}

func TestStoreUnsubscribe(t *testing.T) {
	store := NewStore(nil)
	calls := 0
	unsub := store.Subscribe(func(Params) { calls++ })
	store.Replace(Params{"a": "1"})
	unsub()
	store.Replace(Params{"a": "2"})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}
