package dialog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Action - действие пользователя: нажатие кнопки или текст
type Action interface {
	action()
}

type (
	StartBooking struct{}
	StartReview  struct{}
	ShowServices struct{}
	ShowContacts struct{}
	ShowReviews  struct{}
	BackToMenu   struct{}
	Cancel       struct{}
	Send         struct{}
	Noop         struct{}

	PickService struct{ Index int }
	// ShowMonth - календарь на месяц Month (день не важен)
	ShowMonth struct{ Month time.Time }
	PickDay   struct{ Date time.Time }
	// ChangeDate - вернуться из списка времени к календарю
	ChangeDate  struct{ Date time.Time }
	PickTime    struct {
		Date  time.Time
		Clock string
	}
	OtherTime   struct{ Date time.Time }
	NearestDays struct{ Anchor time.Time }

	Text struct{ Text string }
)

func (StartBooking) action() {}
func (StartReview) action()  {}
func (ShowServices) action() {}
func (ShowContacts) action() {}
func (ShowReviews) action()  {}
func (BackToMenu) action()   {}
func (Cancel) action()       {}
func (Send) action()         {}
func (Noop) action()         {}
func (PickService) action()  {}
func (ShowMonth) action()    {}
func (PickDay) action()      {}
func (ChangeDate) action()   {}
func (PickTime) action()     {}
func (OtherTime) action()    {}
func (NearestDays) action()  {}
func (Text) action()         {}

// Префиксы callback data
const (
	PrefixMenu   = "menu:"
	PrefixSvc    = "svc:"
	PrefixCal    = "cal:"
	PrefixTime   = "time:"
	PrefixFree   = "free:"
	PrefixBook   = "book:"
	PrefixReview = "review:"
)

const (
	callbackDate  = "2006-01-02"
	callbackMonth = "2006-01"
)

// Encode превращает действие в callback data для кнопки.
// Для действий без кнопки возвращает пустую строку.
func Encode(a Action) string {
	switch a := a.(type) {
	case StartBooking:
		return PrefixMenu + "book"
	case ShowServices:
		return PrefixMenu + "services"
	case ShowContacts:
		return PrefixMenu + "contacts"
	case ShowReviews:
		return PrefixMenu + "reviews"
	case BackToMenu:
		return PrefixMenu + "back"
	case StartReview:
		return PrefixReview + "add"
	case Cancel:
		return PrefixBook + "cancel"
	case Send:
		return PrefixBook + "send"
	case Noop:
		return PrefixCal + "noop"
	case PickService:
		return PrefixSvc + strconv.Itoa(a.Index)
	case ShowMonth:
		return PrefixCal + "show:" + a.Month.Format(callbackMonth)
	case PickDay:
		return PrefixCal + "day:" + a.Date.Format(callbackDate)
	case ChangeDate:
		return PrefixCal + "change:" + a.Date.Format(callbackDate)
	case PickTime:
		return PrefixTime + a.Date.Format(callbackDate) + ":" + a.Clock
	case OtherTime:
		return PrefixTime + "other:" + a.Date.Format(callbackDate)
	case NearestDays:
		return PrefixFree + "next:" + a.Anchor.Format(callbackDate)
	}
	return ""
}

// ParseCallback разбирает callback data. Даты трактуются в часовом поясе loc.
func ParseCallback(data string, loc *time.Location) (Action, error) {
	switch data {
	case PrefixMenu + "book":
		return StartBooking{}, nil
	case PrefixMenu + "services":
		return ShowServices{}, nil
	case PrefixMenu + "contacts":
		return ShowContacts{}, nil
	case PrefixMenu + "reviews":
		return ShowReviews{}, nil
	case PrefixMenu + "back":
		return BackToMenu{}, nil
	case PrefixReview + "add":
		return StartReview{}, nil
	case PrefixBook + "cancel":
		return Cancel{}, nil
	case PrefixBook + "send":
		return Send{}, nil
	case PrefixCal + "noop":
		return Noop{}, nil
	}

	switch {
	case strings.HasPrefix(data, PrefixSvc):
		i, err := strconv.Atoi(strings.TrimPrefix(data, PrefixSvc))
		if err != nil || i < 0 {
			return nil, fmt.Errorf("bad service index in %q", data)
		}
		return PickService{Index: i}, nil

	case strings.HasPrefix(data, PrefixCal+"show:"):
		m, err := time.ParseInLocation(callbackMonth, strings.TrimPrefix(data, PrefixCal+"show:"), loc)
		if err != nil {
			return nil, fmt.Errorf("bad month in %q: %w", data, err)
		}
		return ShowMonth{Month: m}, nil

	case strings.HasPrefix(data, PrefixCal+"day:"):
		d, err := parseCallbackDate(strings.TrimPrefix(data, PrefixCal+"day:"), loc)
		if err != nil {
			return nil, err
		}
		return PickDay{Date: d}, nil

	case strings.HasPrefix(data, PrefixCal+"change:"):
		d, err := parseCallbackDate(strings.TrimPrefix(data, PrefixCal+"change:"), loc)
		if err != nil {
			return nil, err
		}
		return ChangeDate{Date: d}, nil

	case strings.HasPrefix(data, PrefixTime+"other:"):
		d, err := parseCallbackDate(strings.TrimPrefix(data, PrefixTime+"other:"), loc)
		if err != nil {
			return nil, err
		}
		return OtherTime{Date: d}, nil

	case strings.HasPrefix(data, PrefixTime):
		// time:2025-10-05:10:30 - время само содержит двоеточие
		date, clock, ok := strings.Cut(strings.TrimPrefix(data, PrefixTime), ":")
		if !ok {
			return nil, fmt.Errorf("bad time callback %q", data)
		}
		d, err := parseCallbackDate(date, loc)
		if err != nil {
			return nil, err
		}
		if _, err := parseClock(clock); err != nil {
			return nil, fmt.Errorf("bad clock in %q: %w", data, err)
		}
		return PickTime{Date: d, Clock: clock}, nil

	case strings.HasPrefix(data, PrefixFree+"next:"):
		d, err := parseCallbackDate(strings.TrimPrefix(data, PrefixFree+"next:"), loc)
		if err != nil {
			return nil, err
		}
		return NearestDays{Anchor: d}, nil
	}

	return nil, fmt.Errorf("unknown callback %q", data)
}

func parseCallbackDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(callbackDate, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return d, nil
}
