// Package listview собирает фильтр, загрузку записей и группировку в одно место
// и пробрасывает команды перестановки счетов их владельцу.
package listview

import (
	"context"
	"sync"
	"time"

	"github.com/alligatorO15/fin-lists/internal/filterquery"
	"github.com/alligatorO15/fin-lists/internal/grouping"
	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/alligatorO15/fin-lists/internal/reorder"
	"go.uber.org/zap"
)

// Fetcher граница с сервисом записей
type Fetcher interface {
	GetRecordList(ctx context.Context, filter models.FilterForm) ([]models.RecordItem, error)
}

type FetcherFunc func(ctx context.Context, filter models.FilterForm) ([]models.RecordItem, error)

func (f FetcherFunc) GetRecordList(ctx context.Context, filter models.FilterForm) ([]models.RecordItem, error) {
	return f(ctx, filter)
}

// View то, что нужно для отрисовки списка записей
type View struct {
	Filter  models.FilterForm
	Params  filterquery.Params
	Records []models.RecordItem
	Groups  []models.RecordGroup
	// Err ошибка последней загрузки, Records при этом остаются от последней удачной
	Err     error
	Loading bool
	Seq     uint64
}

type Option func(*Controller)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithLocation зона, в которой считаются месяцы
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) { c.loc = loc }
}

func WithDefaults(defaults filterquery.Params) Option {
	return func(c *Controller) { c.defaults = defaults }
}

type Controller struct {
	store    *filterquery.Store
	state    *filterquery.State
	fetcher  Fetcher
	accounts reorder.CommandSink
	logger   *zap.Logger
	loc      *time.Location
	defaults filterquery.Params

	mu       sync.Mutex
	base     context.Context
	seq      uint64
	cancel   context.CancelFunc
	records  []models.RecordItem
	err      error
	loading  bool
	group    *models.AccountGroup
	onUpdate func()

	wg sync.WaitGroup
}

func New(store *filterquery.Store, fetcher Fetcher, accounts reorder.CommandSink, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		fetcher:  fetcher,
		accounts: accounts,
		logger:   zap.NewNop(),
		base:     context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.state = filterquery.NewState(store, c.defaults, c.fetch)
	return c
}

// OnUpdate вызывается после каждого примененного ответа
func (c *Controller) OnUpdate(fn func()) {
	c.mu.Lock()
	c.onUpdate = fn
	c.mu.Unlock()
}

// Start запоминает базовый контекст и делает первую загрузку
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.base = ctx
	c.mu.Unlock()

	c.fetch(c.state.Form())
}

// Stop отменяет загрузку в полете и отписывается от состояния
func (c *Controller) Stop() {
	c.state.Close()
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
	c.wg.Wait()
}

// Wait ждет завершения всех запущенных загрузок
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) Filter() models.FilterForm {
	return c.state.Form()
}

// SetFilter публикует фильтр в общее состояние. Загрузка начнется,
// только если фильтр действительно изменился.
func (c *Controller) SetFilter(form models.FilterForm) {
	c.state.Update(form)
}

// Refresh повторная загрузка с текущим фильтром, например после ошибки
func (c *Controller) Refresh() {
	c.fetch(c.state.Form())
}

func (c *Controller) Snapshot() View {
	c.mu.Lock()
	records := c.records
	v := View{
		Err:     c.err,
		Loading: c.loading,
		Seq:     c.seq,
	}
	c.mu.Unlock()

	v.Filter = c.state.Form()
	v.Params = c.store.Current()
	v.Records = records
	v.Groups = grouping.Group(records, c.loc)
	return v
}

func (c *Controller) fetch(form models.FilterForm) {
	c.mu.Lock()
	// новый запрос отменяет интерес к предыдущему
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel
	c.loading = true
	c.mu.Unlock()

	c.logger.Debug("fetching records", zap.Uint64("seq", seq), zap.Any("filter", form))

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		records, err := c.fetcher.GetRecordList(ctx, form)
		c.complete(seq, records, err)
	}()
}

func (c *Controller) complete(seq uint64, records []models.RecordItem, err error) {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug("discarding stale records", zap.Uint64("seq", seq))
		return
	}

	c.loading = false
	c.cancel()
	c.cancel = nil
	if err != nil {
		c.err = err
	} else {
		c.records = records
		c.err = nil
	}
	fn := c.onUpdate
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("failed to fetch records", zap.Uint64("seq", seq), zap.Error(err))
	}
	if fn != nil {
		fn()
	}
}

// SetAccountGroup снимок группы, по которому проверяются команды
func (c *Controller) SetAccountGroup(group models.AccountGroup) {
	g := group
	g.Accounts = append([]models.Account(nil), group.Accounts...)

	c.mu.Lock()
	c.group = &g
	c.mu.Unlock()
}

func (c *Controller) AccountGroup() (models.AccountGroup, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.group == nil {
		return models.AccountGroup{}, false
	}
	g := *c.group
	g.Accounts = append([]models.Account(nil), c.group.Accounts...)
	return g, true
}

// MoveAccount пробрасывает перестановку владельцу группы.
// Одинаковые id ничего не делают, незнакомые id возвращают ErrAccountNotFound без вызова владельца.
func (c *Controller) MoveAccount(ctx context.Context, activeID, overID int64) error {
	if activeID == overID {
		return nil
	}

	c.mu.Lock()
	if c.group != nil && (c.group.IndexOf(activeID) < 0 || c.group.IndexOf(overID) < 0) {
		c.mu.Unlock()
		return models.ErrAccountNotFound
	}
	c.mu.Unlock()

	if err := c.accounts.MoveAccount(ctx, activeID, overID); err != nil {
		return err
	}

	c.mu.Lock()
	if c.group != nil {
		// группа могла поменяться, пока шел вызов
		_ = c.group.MoveAccount(activeID, overID)
	}
	c.mu.Unlock()

	c.logger.Debug("account moved", zap.Int64("active_id", activeID), zap.Int64("over_id", overID))
	return nil
}

func (c *Controller) DeleteAccount(ctx context.Context, id int64) error {
	c.mu.Lock()
	if c.group != nil && c.group.IndexOf(id) < 0 {
		c.mu.Unlock()
		return models.ErrAccountNotFound
	}
	c.mu.Unlock()

	if err := c.accounts.DeleteAccount(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	if c.group != nil {
		_ = c.group.DeleteAccount(id)
	}
	c.mu.Unlock()

	c.logger.Debug("account deleted", zap.Int64("id", id))
	return nil
}
