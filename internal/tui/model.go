// Package tui терминальный клиент: перестановка счетов с клавиатуры и список записей с фильтром.
package tui

import (
	"context"
	"errors"
	"slices"

	"github.com/alligatorO15/fin-lists/internal/listview"
	"github.com/alligatorO15/fin-lists/internal/models"
	"github.com/alligatorO15/fin-lists/internal/reorder"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type AccountSource interface {
	GetGroups(ctx context.Context) ([]models.AccountGroup, error)
}

type CategorySource interface {
	Categories(ctx context.Context, recordType models.RecordType) ([]models.Category, error)
}

type pane int

const (
	paneAccounts pane = iota
	paneRecords
)

type groupsMsg struct {
	groups []models.AccountGroup
	err    error
}

type categoriesMsg struct {
	recordType models.RecordType
	categories []models.Category
	err        error
}

type recordsMsg struct{}

// commandMsg результат команды над счетом, focusID куда поставить курсор
type commandMsg struct {
	focusID int64
	err     error
}

// pendingSink запоминает команду сессии; выполняется она отдельной tea.Cmd,
// чтобы Update не ходил в сеть
type pendingSink struct {
	move *[2]int64
}

func (p *pendingSink) MoveAccount(_ context.Context, activeID, overID int64) error {
	p.move = &[2]int64{activeID, overID}
	return nil
}

// удаление идет мимо сессии, через deleteCurrent
func (p *pendingSink) DeleteAccount(context.Context, int64) error {
	return errDeleteViaSession
}

var errDeleteViaSession = errors.New("tui: delete is not routed through a drag session")

// row строка плоского списка счетов
type row struct {
	group   int
	account int
}

type Option func(*Model)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

type Model struct {
	ctx        context.Context
	ctrl       *listview.Controller
	accounts   AccountSource
	categories CategorySource
	logger     *zap.Logger
	styles     Styles
	updates    chan struct{}

	pane       pane
	groups     []models.AccountGroup
	cursor     int
	session    *reorder.Session
	sink       *pendingSink
	categoryOf models.RecordType
	catList    []models.Category
	pickCat    bool // "c" нажата до загрузки категорий
	viewport   viewport.Model
	status     string
	err        error
	width      int
}

func New(ctx context.Context, ctrl *listview.Controller, accounts AccountSource, categories CategorySource, opts ...Option) Model {
	sink := &pendingSink{}
	m := Model{
		ctx:        ctx,
		ctrl:       ctrl,
		accounts:   accounts,
		categories: categories,
		logger:     zap.NewNop(),
		styles:     defaultStyles(),
		updates:    make(chan struct{}, 1),
		session:    reorder.NewSession(sink, nil),
		sink:       sink,
		viewport:   viewport.New(80, 20),
	}
	for _, opt := range opts {
		opt(&m)
	}

	updates := m.updates
	ctrl.OnUpdate(func() {
		select {
		case updates <- struct{}{}:
		default:
		}
	})
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadGroups(), m.startRecords(), m.waitForRecords())
}

func (m Model) loadGroups() tea.Cmd {
	return func() tea.Msg {
		groups, err := m.accounts.GetGroups(m.ctx)
		return groupsMsg{groups: groups, err: err}
	}
}

func (m Model) startRecords() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.Start(m.ctx)
		return nil
	}
}

func (m Model) waitForRecords() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		select {
		case <-ch:
			return recordsMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m Model) loadCategories(t models.RecordType) tea.Cmd {
	return func() tea.Msg {
		categories, err := m.categories.Categories(m.ctx, t)
		return categoriesMsg{recordType: t, categories: categories, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 1)
		m.refreshRecords()
		return m, nil

	case groupsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.groups = cloneGroups(msg.groups)
		m.cursor = min(m.cursor, max(len(m.rows())-1, 0))
		return m, nil

	case categoriesMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.categoryOf = msg.recordType
		m.catList = msg.categories
		if m.pickCat {
			m.pickCat = false
			form := m.ctrl.Filter()
			if t, ok := form.Type(); ok && t == msg.recordType {
				form.CategoryID = nextCategory(m.catList, form.CategoryID)
				m.ctrl.SetFilter(form)
				m.refreshRecords()
			}
		}
		return m, nil

	case recordsMsg:
		m.refreshRecords()
		return m, m.waitForRecords()

	case commandMsg:
		return m.applyCommand(msg), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.session.Cancel()
			return m, tea.Quit
		case "tab":
			m.session.Cancel()
			if m.pane == paneAccounts {
				m.pane = paneRecords
			} else {
				m.pane = paneAccounts
			}
			m.status = ""
			return m, nil
		}

		if m.pane == paneAccounts {
			return m.updateAccounts(msg)
		}
		return m.updateRecords(msg)
	}

	return m, nil
}

func (m Model) rows() []row {
	var rows []row
	for gi, g := range m.groups {
		for ai := range g.Accounts {
			rows = append(rows, row{group: gi, account: ai})
		}
	}
	return rows
}

// rowOf индекс счета в плоском списке или -1
func (m Model) rowOf(accountID int64) int {
	for i, r := range m.rows() {
		if m.groups[r.group].Accounts[r.account].ID == accountID {
			return i
		}
	}
	return -1
}

func (m Model) current() (models.AccountGroup, models.Account, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return models.AccountGroup{}, models.Account{}, false
	}
	r := rows[m.cursor]
	g := m.groups[r.group]
	return g, g.Accounts[r.account], true
}

func cloneGroups(groups []models.AccountGroup) []models.AccountGroup {
	out := slices.Clone(groups)
	for i := range out {
		out[i].Accounts = slices.Clone(out[i].Accounts)
	}
	return out
}

func accountIDs(g models.AccountGroup) []int64 {
	ids := make([]int64, 0, len(g.Accounts))
	for _, a := range g.Accounts {
		ids = append(ids, a.ID)
	}
	return ids
}

func (m Model) updateAccounts(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dragging := m.session.State() == reorder.Dragging

	switch msg.String() {
	case "up", "k":
		if dragging {
			m.step(reorder.Up)
		} else if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if dragging {
			m.step(reorder.Down)
		} else if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
	case " ", "enter":
		if dragging {
			return m.drop()
		}
		m.pickUp()
	case "esc":
		if dragging {
			active, _ := m.session.Active()
			m.session.Cancel()
			if i := m.rowOf(active); i >= 0 {
				m.cursor = i
			}
			m.status = "перестановка отменена"
		}
	case "d", "delete":
		if !dragging {
			return m, m.deleteCurrent()
		}
	}
	return m, nil
}

func (m *Model) pickUp() {
	group, account, ok := m.current()
	if !ok {
		return
	}

	m.ctrl.SetAccountGroup(group)
	m.session.SetSlots(reorder.Rows(accountIDs(group), 1))
	if err := m.session.Start(account.ID); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.status = "перестановка: ↑/↓ место, enter положить, esc отмена"
}

func (m *Model) step(dir reorder.Direction) {
	if err := m.session.Step(dir); err != nil {
		m.err = err
		return
	}
	if over, ok := m.session.Over(); ok {
		if i := m.rowOf(over); i >= 0 {
			m.cursor = i
		}
	}
}

func (m Model) drop() (tea.Model, tea.Cmd) {
	active, _ := m.session.Active()
	m.sink.move = nil

	if _, err := m.session.End(m.ctx); err != nil {
		m.err = err
		return m, nil
	}
	if m.sink.move == nil {
		if i := m.rowOf(active); i >= 0 {
			m.cursor = i
		}
		m.status = "порядок не изменился"
		return m, nil
	}

	activeID, overID := m.sink.move[0], m.sink.move[1]
	m.sink.move = nil
	m.status = "сохраняем порядок..."

	ctrl, ctx := m.ctrl, m.ctx
	return m, func() tea.Msg {
		return commandMsg{focusID: activeID, err: ctrl.MoveAccount(ctx, activeID, overID)}
	}
}

func (m Model) deleteCurrent() tea.Cmd {
	group, account, ok := m.current()
	if !ok {
		return nil
	}
	m.ctrl.SetAccountGroup(group)

	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return commandMsg{err: ctrl.DeleteAccount(ctx, account.ID)}
	}
}

// applyCommand после успешной команды берет группу из контроллера, он уже применил ее у себя
func (m Model) applyCommand(msg commandMsg) Model {
	if msg.err != nil {
		m.err = msg.err
		m.status = ""
		m.logger.Warn("account command failed", zap.Error(msg.err))
		return m
	}

	if group, ok := m.ctrl.AccountGroup(); ok {
		// прежние значения Model держат тот же массив
		m.groups = slices.Clone(m.groups)
		for i := range m.groups {
			if m.groups[i].ID == group.ID {
				m.groups[i] = group
			}
		}
	}
	m.err = nil
	m.status = "сохранено"

	if i := m.rowOf(msg.focusID); msg.focusID != 0 && i >= 0 {
		m.cursor = i
	}
	m.cursor = min(m.cursor, max(len(m.rows())-1, 0))
	return m
}

func (m Model) updateRecords(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form := m.ctrl.Filter()
	var cmd tea.Cmd

	switch msg.String() {
	case "t":
		form.RecordType = nextRecordType(form.RecordType)
		form.CategoryID = nil
		m.catList = nil
		m.pickCat = false
		if form.RecordType != nil {
			cmd = m.loadCategories(models.RecordType(*form.RecordType))
		}
	case "a":
		form.AccountID = m.nextAccount(form.AccountID)
	case "c":
		t, ok := form.Type()
		if !ok {
			m.status = "сначала выберите тип записи"
			return m, nil
		}
		if m.categoryOf != t || len(m.catList) == 0 {
			m.pickCat = true
			return m, m.loadCategories(t)
		}
		form.CategoryID = nextCategory(m.catList, form.CategoryID)
	case "x":
		form = models.FilterForm{}
	case "r":
		m.ctrl.Refresh()
		return m, nil
	default:
		var vcmd tea.Cmd
		m.viewport, vcmd = m.viewport.Update(msg)
		return m, vcmd
	}

	m.status = ""
	m.ctrl.SetFilter(form)
	m.refreshRecords()
	return m, cmd
}

// nextRecordType по кругу: все -> расход -> доход -> перевод -> все
func nextRecordType(cur *int64) *int64 {
	if cur == nil {
		return models.Int64(int64(models.RecordTypeExpense))
	}
	if *cur >= int64(models.RecordTypeTransfer) {
		return nil
	}
	return models.Int64(*cur + 1)
}

func (m Model) nextAccount(cur *int64) *int64 {
	var ids []int64
	for _, g := range m.groups {
		ids = append(ids, accountIDs(g)...)
	}
	return nextID(ids, cur)
}

func nextCategory(categories []models.Category, cur *int64) *int64 {
	ids := make([]int64, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return nextID(ids, cur)
}

// nextID следующий id после cur, после последнего снова "не выбрано"
func nextID(ids []int64, cur *int64) *int64 {
	if len(ids) == 0 {
		return nil
	}
	if cur == nil {
		return models.Int64(ids[0])
	}
	for i, id := range ids {
		if id == *cur && i+1 < len(ids) {
			return models.Int64(ids[i+1])
		}
	}
	return nil
}
