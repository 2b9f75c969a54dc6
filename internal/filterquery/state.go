package filterquery

import (
	"sync"

	"github.com/alligatorO15/fin-lists/internal/models"
)

// Store явное общее состояние "текущей ссылки" вместо глобального URL.
// Replace заменяет значение целиком, истории нет.
type Store struct {
	mu     sync.Mutex
	params Params
	subs   map[int]func(Params)
	nextID int
}

func NewStore(initial Params) *Store {
	if initial == nil {
		initial = Params{}
	}
	return &Store{
		params: initial.Clone(),
		subs:   make(map[int]func(Params)),
	}
}

func (s *Store) Current() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params.Clone()
}

// Replace публикует новое состояние и уведомляет подписчиков.
// Подписчики вызываются вне блокировки и получают свою копию.
func (s *Store) Replace(p Params) {
	s.mu.Lock()
	s.params = p.Clone()
	subs := make([]func(Params), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(p.Clone())
	}
}

func (s *Store) Subscribe(fn func(Params)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// State кэширует декодированный фильтр и сообщает наружу только о реальных изменениях,
// перестановка ключей или повторный переход на ту же ссылку ничего не вызывает.
type State struct {
	store    *Store
	defaults Params
	onChange func(models.FilterForm)

	mu    sync.Mutex
	form  models.FilterForm
	unsub func()
}

// NewState подписывается на store; defaults подкладываются под текущие параметры
func NewState(store *Store, defaults Params, onChange func(models.FilterForm)) *State {
	s := &State{
		store:    store,
		defaults: defaults.Clone(),
		onChange: onChange,
	}
	s.form = Decode(s.merge(store.Current()))
	s.unsub = store.Subscribe(s.sync)
	return s
}

func (s *State) Form() models.FilterForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Params каноничное представление текущего фильтра
func (s *State) Params() Params {
	return Encode(s.Form())
}

// Update публикует новый фильтр. Незнакомые ключи текущего состояния сохраняются.
func (s *State) Update(form models.FilterForm) {
	next := Encode(form)
	for k, v := range s.store.Current() {
		if !IsRecognized(k) {
			next[k] = v
		}
	}
	s.store.Replace(next)
}

func (s *State) Close() {
	if s.unsub != nil {
		s.unsub()
	}
}

func (s *State) sync(p Params) {
	form := Decode(s.merge(p))

	s.mu.Lock()
	if form.Equal(s.form) {
		s.mu.Unlock()
		return
	}
	s.form = form
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(form)
	}
}

func (s *State) merge(p Params) Params {
	merged := s.defaults.Clone()
	for k, v := range p {
		merged[k] = v
	}
	return merged
}
