package reorder

import (
	"context"
	"fmt"
)

type EventType string

const (
	EventStart  EventType = "start"
	EventMove   EventType = "move"
	EventLeave  EventType = "leave"
	EventStep   EventType = "step"
	EventEnd    EventType = "end"
	EventCancel EventType = "cancel"
)

// Event общий формат жеста для всех устройств ввода
type Event struct {
	Type      EventType `json:"type" binding:"required"`
	ActiveID  int64     `json:"active_id,omitempty"`
	Rect      *Rect     `json:"rect,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// Result итог проигранного жеста
type Result struct {
	Moved    bool   `json:"moved"`
	ActiveID int64  `json:"active_id"`
	OverID   *int64 `json:"over_id"`
}

// Replay прогоняет записанный жест через сессию.
// Если жест оборвался без end, сессия отменяется и команды нет.
func Replay(ctx context.Context, s *Session, events []Event) (*Result, error) {
	res := &Result{}

	for i, ev := range events {
		var err error
		switch ev.Type {
		case EventStart:
			err = s.Start(ev.ActiveID)
			res.ActiveID = ev.ActiveID
		case EventMove:
			if ev.Rect == nil {
				err = fmt.Errorf("event %d: move without rect: %w", i, ErrInvalidEvent)
				break
			}
			err = s.Move(*ev.Rect)
		case EventLeave:
			err = s.Leave()
		case EventStep:
			if ev.Direction != Up && ev.Direction != Down {
				err = fmt.Errorf("event %d: direction %d: %w", i, ev.Direction, ErrInvalidEvent)
				break
			}
			err = s.Step(ev.Direction)
		case EventEnd:
			if over, ok := s.Over(); ok {
				res.OverID = &over
			}
			res.Moved, err = s.End(ctx)
			return res, err
		case EventCancel:
			s.Cancel()
			return res, nil
		default:
			err = fmt.Errorf("event %d: type %q: %w", i, ev.Type, ErrInvalidEvent)
		}

		if err != nil {
			s.Cancel()
			return res, err
		}
	}

	s.Cancel()
	return res, nil
}
