// Package reorder превращает жесты перетаскивания (мышь, тач, клавиатура)
// в одну команду "переставить счет A на место счета B".
package reorder

import (
	"context"
	"errors"
	"math"
)

var (
	ErrNotDragging  = errors.New("no drag in progress")
	ErrUnknownSlot  = errors.New("unknown slot")
	// ErrInvalidEvent записанный жест нельзя проиграть
	ErrInvalidEvent = errors.New("invalid gesture event")
)

// CommandSink владелец списка счетов, сам порядок здесь не меняется
type CommandSink interface {
	MoveAccount(ctx context.Context, activeID, overID int64) error
	DeleteAccount(ctx context.Context, id int64) error
}

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Center() (float64, float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Slot место, на которое можно бросить элемент, в порядке списка
type Slot struct {
	ID   int64 `json:"id"`
	Rect Rect  `json:"rect"`
}

type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// Session одна сессия перетаскивания: Idle -> Dragging -> Idle
type Session struct {
	sink  CommandSink
	slots []Slot

	state    State
	activeID int64
	overID   int64
	hasOver  bool
	// текущее положение перетаскиваемого элемента
	activeRect Rect
}

func NewSession(sink CommandSink, slots []Slot) *Session {
	s := &Session{sink: sink}
	s.SetSlots(slots)
	return s
}

// SetSlots заменяет кандидатов, например после перерисовки списка
func (s *Session) SetSlots(slots []Slot) {
	s.slots = append([]Slot(nil), slots...)
	if s.state == Dragging && s.indexOf(s.activeID) < 0 {
		s.Cancel()
	}
	if s.hasOver && s.indexOf(s.overID) < 0 {
		s.hasOver = false
	}
}

func (s *Session) State() State { return s.state }

// Over текущая цель под элементом, ok=false если цели нет
func (s *Session) Over() (int64, bool) {
	return s.overID, s.state == Dragging && s.hasOver
}

func (s *Session) Active() (int64, bool) {
	return s.activeID, s.state == Dragging
}

// Start начинает перетаскивание конкретного элемента.
// Новый Start поверх незавершенной сессии сбрасывает ее без команды.
func (s *Session) Start(activeID int64) error {
	idx := s.indexOf(activeID)
	if idx < 0 {
		s.Cancel()
		return ErrUnknownSlot
	}

	s.state = Dragging
	s.activeID = activeID
	s.activeRect = s.slots[idx].Rect
	// в начале элемент находится над своим же местом
	s.overID = activeID
	s.hasOver = true
	return nil
}

// Move обновляет цель по ближайшему центру
func (s *Session) Move(rect Rect) error {
	if s.state != Dragging {
		return ErrNotDragging
	}
	s.activeRect = rect
	s.overID, s.hasOver = ClosestCenter(rect, s.slots)
	return nil
}

// Leave указатель ушел за пределы всех мест
func (s *Session) Leave() error {
	if s.state != Dragging {
		return ErrNotDragging
	}
	s.hasOver = false
	return nil
}

// Step клавиатурный шаг: элемент встает на центр соседнего места,
// дальше работает то же правило ближайшего центра, что и для указателя.
func (s *Session) Step(dir Direction) error {
	if s.state != Dragging {
		return ErrNotDragging
	}

	from := s.activeID
	if s.hasOver {
		from = s.overID
	}
	idx := s.indexOf(from)
	next := idx + int(dir)
	if idx < 0 || next < 0 || next >= len(s.slots) {
		return nil
	}
	return s.Move(s.slots[next].Rect)
}

// End завершает сессию. Команда уходит только если цель есть и она не равна самому элементу.
func (s *Session) End(ctx context.Context) (bool, error) {
	if s.state != Dragging {
		return false, ErrNotDragging
	}

	activeID, overID, hasOver := s.activeID, s.overID, s.hasOver
	s.reset()

	if !hasOver || overID == activeID {
		return false, nil
	}
	if err := s.sink.MoveAccount(ctx, activeID, overID); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel возвращает в Idle без команды
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	s.state = Idle
	s.activeID = 0
	s.overID = 0
	s.hasOver = false
	s.activeRect = Rect{}
}

func (s *Session) indexOf(id int64) int {
	for i := range s.slots {
		if s.slots[i].ID == id {
			return i
		}
	}
	return -1
}

// ClosestCenter ищет место, чей центр ближе всего к центру rect.
// При равенстве побеждает место раньше по списку.
func ClosestCenter(rect Rect, slots []Slot) (int64, bool) {
	if len(slots) == 0 {
		return 0, false
	}

	cx, cy := rect.Center()
	best := -1
	bestDist := math.Inf(1)
	for i, slot := range slots {
		sx, sy := slot.Rect.Center()
		d := math.Hypot(sx-cx, sy-cy)
		// строгое < оставляет более ранний индекс при равенстве
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return slots[best].ID, true
}

// Rows раскладывает id сверху вниз строками одной высоты, как в вертикальном списке
func Rows(ids []int64, height float64) []Slot {
	slots := make([]Slot, 0, len(ids))
	for i, id := range ids {
		slots = append(slots, Slot{ID: id, Rect: Rect{Top: float64(i) * height, Width: 1, Height: height}})
	}
	return slots
}
