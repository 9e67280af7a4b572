package availability

import (
	"fmt"
	"time"
)

// Clock - время суток без даты
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock разбирает строку "15:04"
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// On возвращает момент этого времени суток в указанный день
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Hours - правила рабочего дня
type Hours struct {
	Start  Clock         // начало рабочего дня
	End    Clock         // конец рабочего дня; старт ровно в End допускается
	Step   time.Duration // шаг предлагаемых слотов
	Buffer time.Duration // перерыв между записями
}

// DefaultHours - 08:00–18:00, шаг 15 минут, перерыв 15 минут
func DefaultHours() Hours {
	return Hours{
		Start:  Clock{Hour: 8},
		End:    Clock{Hour: 18},
		Step:   15 * time.Minute,
		Buffer: 15 * time.Minute,
	}
}

// Window возвращает рабочее окно дня. Перерыв добавляется только к началу окна.
func (h Hours) Window(day time.Time) (time.Time, time.Time) {
	return h.Start.On(day).Add(h.Buffer), h.End.On(day)
}
