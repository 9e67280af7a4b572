package availability

import (
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
)

// FreeSlots вычисляет моменты начала, которые можно предложить клиенту в день day.
//
// busy - уже расширенные на перерыв и склеенные интервалы (см. Pad и Merge).
// Кандидат подходит, если он строго позже now и визит помещается в свободный
// промежуток, либо если кандидат совпадает с концом рабочего дня.
func FreeSlots(day time.Time, required time.Duration, busy []model.BusyInterval, now time.Time, h Hours) []time.Time {
	if h.Step <= 0 {
		return nil
	}

	dayStart, dayEnd := h.Window(day)
	if !dayEnd.After(dayStart) {
		return nil
	}

	var slots []time.Time
	for _, free := range freeIntervals(dayStart, dayEnd, busy) {
		for cur := alignUp(free.Start, h.Step); !cur.After(free.End); cur = cur.Add(h.Step) {
			if !cur.After(now) {
				continue
			}
			if cur.Before(free.End) {
				if !cur.Add(required).After(free.End) {
					slots = append(slots, cur)
				}
				continue
			}
			// cur == free.End: допускаем только старт ровно в конце рабочего дня
			if free.End.Equal(dayEnd) {
				slots = append(slots, cur)
			}
		}
	}

	return dedupe(slots)
}

// freeIntervals вычитает занятость из рабочего окна
func freeIntervals(dayStart, dayEnd time.Time, busy []model.BusyInterval) []model.BusyInterval {
	var free []model.BusyInterval
	cursor := dayStart

	for _, iv := range Merge(busy) {
		if !iv.End.After(dayStart) || !iv.Start.Before(dayEnd) {
			continue
		}
		if iv.Start.After(cursor) {
			end := iv.Start
			if end.After(dayEnd) {
				end = dayEnd
			}
			free = append(free, model.BusyInterval{Start: cursor, End: end})
		}
		if iv.End.After(cursor) {
			cursor = iv.End
		}
		if !cursor.Before(dayEnd) {
			break
		}
	}

	if cursor.Before(dayEnd) {
		free = append(free, model.BusyInterval{Start: cursor, End: dayEnd})
	}

	return free
}

// alignUp округляет момент вверх до ближайшей границы шага, отсчитывая от полуночи
func alignUp(t time.Time, step time.Duration) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if rem := t.Sub(midnight) % step; rem != 0 {
		return t.Add(step - rem)
	}
	return t
}

// dedupe убирает повторы из уже отсортированного списка
func dedupe(slots []time.Time) []time.Time {
	if len(slots) == 0 {
		return nil
	}
	out := slots[:1]
	for _, s := range slots[1:] {
		if !s.Equal(out[len(out)-1]) {
			out = append(out, s)
		}
	}
	return out
}
