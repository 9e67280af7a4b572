package availability

import (
	"sort"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
)

// Merge сортирует интервалы по началу и склеивает пересекающиеся и соприкасающиеся.
// Входной срез не изменяется; Merge(Merge(x)) == Merge(x).
func Merge(intervals []model.BusyInterval) []model.BusyInterval {
	sorted := make([]model.BusyInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Valid() {
			sorted = append(sorted, iv)
		}
	}
	if len(sorted) == 0 {
		return nil
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []model.BusyInterval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start.After(last.End) {
			merged = append(merged, iv)
			continue
		}
		if iv.End.After(last.End) {
			last.End = iv.End
		}
	}

	return merged
}

// Pad расширяет каждый интервал на buffer в обе стороны
func Pad(intervals []model.BusyInterval, buffer time.Duration) []model.BusyInterval {
	padded := make([]model.BusyInterval, 0, len(intervals))
	for _, iv := range intervals {
		if !iv.Valid() {
			continue
		}
		padded = append(padded, model.BusyInterval{
			Start: iv.Start.Add(-buffer),
			End:   iv.End.Add(buffer),
		})
	}
	return padded
}

// FirstOverlap возвращает первый интервал, пересекающийся с [start, end)
func FirstOverlap(busy []model.BusyInterval, start, end time.Time) (model.BusyInterval, bool) {
	for _, iv := range busy {
		if iv.Overlaps(start, end) {
			return iv, true
		}
	}
	return model.BusyInterval{}, false
}
