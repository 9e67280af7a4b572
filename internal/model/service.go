package model

import (
	"math"
	"strconv"
	"unicode"
)

// DefaultDurationMinutes используется, если длительность услуги не удалось разобрать
const DefaultDurationMinutes = 60

// Service описывает услугу из прайс-листа
type Service struct {
	Name     string  `toml:"name" json:"name"`
	Price    float64 `toml:"price" json:"price"`
	Currency string  `toml:"currency" json:"currency"`
	Duration string  `toml:"duration" json:"duration"` // в свободной форме: "60–75 мин", "30 мин"
}

// Minutes возвращает расчётную длительность услуги в минутах
func (s Service) Minutes() int {
	return ParseDurationMinutes(s.Duration)
}

// ParseDurationMinutes извлекает длительность из строки вида "60–75 мин".
// Для диапазона берётся среднее первых двух чисел (округление к чётному),
// для одного числа - само число, иначе DefaultDurationMinutes.
func ParseDurationMinutes(spec string) int {
	var nums []int
	digits := make([]rune, 0, 4)

	flush := func() {
		if len(digits) == 0 {
			return
		}
		if n, err := strconv.Atoi(string(digits)); err == nil {
			nums = append(nums, n)
		}
		digits = digits[:0]
	}

	for _, r := range spec {
		if unicode.IsSpace(r) {
			continue
		}
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
			continue
		}
		flush()
	}
	flush()

	var minutes int
	switch len(nums) {
	case 0:
		return DefaultDurationMinutes
	case 1:
		minutes = nums[0]
	default:
		minutes = int(math.RoundToEven(float64(nums[0]+nums[1]) / 2))
	}

	if minutes <= 0 {
		return DefaultDurationMinutes
	}
	return minutes
}
