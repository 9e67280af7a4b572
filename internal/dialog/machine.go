package dialog

import (
	"context"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/catalog"
	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"go.uber.org/zap"
)

// Screen - что показать пользователю после шага
type Screen int

const (
	ScreenNone Screen = iota // ничего не менять

	ScreenMainMenu
	ScreenCancelled
	ScreenServices
	ScreenContacts
	ScreenReviews
	ScreenExpired
	ScreenError
	ScreenInvalidInput // повторить ввод, причина в Reply.Err

	ScreenChooseService
	ScreenCalendar
	ScreenTimes
	ScreenNoSlots
	ScreenNearestDays
	ScreenAskManualTime
	ScreenAskTimeAfterDate
	ScreenAskName
	ScreenAskPhone
	ScreenAskNotes
	ScreenConfirm
	ScreenSlotTaken
	ScreenSubmitted

	ScreenReviewAskName
	ScreenReviewAskText
	ScreenReviewSaved
)

// Reply - результат шага автомата. Заполнены только поля нужного экрана.
type Reply struct {
	Screen Screen
	Err    error

	Today    time.Time
	Month    time.Time // первое число показываемого месяца
	Date     time.Time
	Slots    []time.Time
	FreeDays []model.FreeDay

	Draft      model.BookingDraft
	Submission model.Submission

	Reviews      []model.Review
	ReviewsTotal int
}

// Planner - расчёт свободного времени
type Planner interface {
	FreeSlots(ctx context.Context, day time.Time, minutes int) []time.Time
	NearestFreeDays(ctx context.Context, anchor time.Time, minutes int) []model.FreeDay
}

// Submitter - отправка подтверждённой заявки
type Submitter interface {
	Submit(ctx context.Context, draft model.BookingDraft, requester model.Requester) (model.Submission, error)
}

// Reviews - журнал отзывов
type Reviews interface {
	Add(ctx context.Context, name, text string, author model.Requester) (model.Review, error)
	Recent(ctx context.Context, limit int) ([]model.Review, int, error)
}

// ReviewsLimit - сколько отзывов показывать
const ReviewsLimit = 10

// Machine переводит сессию из шага в шаг
type Machine struct {
	catalog   *catalog.Catalog
	planner   Planner
	submitter Submitter
	reviews   Reviews
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewMachine(
	cat *catalog.Catalog,
	planner Planner,
	submitter Submitter,
	reviews Reviews,
	loc *time.Location,
	logger *zap.Logger,
) *Machine {
	return &Machine{
		catalog:   cat,
		planner:   planner,
		submitter: submitter,
		reviews:   reviews,
		loc:       loc,
		now:       time.Now,
		logger:    logger,
	}
}

// Handle применяет действие к сессии пользователя who
func (m *Machine) Handle(ctx context.Context, sess *Session, who model.Requester, a Action) Reply {
	switch a := a.(type) {
	case Noop:
		return Reply{}

	case Cancel:
		sess.Reset()
		return Reply{Screen: ScreenCancelled}

	case BackToMenu:
		sess.Reset()
		return Reply{Screen: ScreenMainMenu}

	case ShowServices:
		sess.Reset()
		return Reply{Screen: ScreenServices}

	case ShowContacts:
		sess.Reset()
		return Reply{Screen: ScreenContacts}

	case ShowReviews:
		sess.Reset()
		return m.showReviews(ctx)

	case StartBooking:
		sess.Reset()
		sess.State = StateSelectService
		return Reply{Screen: ScreenChooseService}

	case StartReview:
		sess.Reset()
		sess.State = StateReviewName
		return Reply{Screen: ScreenReviewAskName}

	case Text:
		return m.handleText(ctx, sess, who, a.Text)
	}

	// Остальные кнопки имеют смысл только внутри записи
	if !sess.Active() {
		return Reply{Screen: ScreenExpired}
	}
	if !sess.booking() {
		return Reply{}
	}

	switch a := a.(type) {
	case PickService:
		return m.pickService(sess, a.Index)
	case ShowMonth:
		return m.showMonth(sess, a.Month)
	case ChangeDate:
		return m.changeDate(sess, a.Date)
	case PickDay:
		return m.pickDay(ctx, sess, a.Date)
	case PickTime:
		return m.pickTime(sess, a)
	case OtherTime:
		return m.otherTime(sess, a.Date)
	case NearestDays:
		return m.nearestDays(ctx, sess, a.Anchor)
	case Send:
		return m.send(ctx, sess, who)
	}

	return Reply{}
}

func (m *Machine) pickService(sess *Session, index int) Reply {
	if sess.State != StateSelectService {
		return Reply{}
	}

	svc, ok := m.catalog.ByIndex(index)
	if !ok {
		return Reply{}
	}

	sess.Draft = model.BookingDraft{Service: svc}
	sess.State = StateSelectDate

	return m.calendar(m.today())
}

func (m *Machine) showMonth(sess *Session, month time.Time) Reply {
	if !m.choosingDate(sess) {
		return Reply{}
	}
	sess.State = StateSelectDate

	return m.calendar(month)
}

func (m *Machine) changeDate(sess *Session, date time.Time) Reply {
	if !m.choosingDate(sess) {
		return Reply{}
	}
	sess.State = StateSelectDate
	return m.calendar(date)
}

func (m *Machine) pickDay(ctx context.Context, sess *Session, date time.Time) Reply {
	if !m.choosingDate(sess) {
		return Reply{}
	}

	date = m.day(date)
	if date.Before(m.today()) {
		sess.State = StateSelectDate
		return m.calendar(date)
	}

	sess.Draft.Date = date
	minutes := sess.Draft.Service.Minutes()

	slots := m.planner.FreeSlots(ctx, date, minutes)
	if len(slots) == 0 {
		sess.State = StateSelectDate
		return Reply{
			Screen:   ScreenNoSlots,
			Date:     date,
			FreeDays: m.planner.NearestFreeDays(ctx, date, minutes),
		}
	}

	sess.State = StateSelectTime
	return Reply{Screen: ScreenTimes, Date: date, Slots: slots}
}

func (m *Machine) pickTime(sess *Session, a PickTime) Reply {
	if sess.State != StateSelectTime {
		return Reply{}
	}

	sess.Draft.Date = m.day(a.Date)
	sess.Draft.Time = a.Clock
	sess.Draft.AllowOverlap = false
	sess.State = StateCaptureName
	return Reply{Screen: ScreenAskName}
}

func (m *Machine) otherTime(sess *Session, date time.Time) Reply {
	if sess.State != StateSelectTime {
		return Reply{}
	}

	sess.Draft.Date = m.day(date)
	sess.Draft.AllowOverlap = true
	sess.State = StateEnterTime
	return Reply{Screen: ScreenAskManualTime}
}

func (m *Machine) nearestDays(ctx context.Context, sess *Session, anchor time.Time) Reply {
	if sess.State != StateSelectTime {
		return Reply{}
	}

	anchor = m.day(anchor)
	sess.State = StateSelectDate
	return Reply{
		Screen:   ScreenNearestDays,
		Date:     anchor,
		FreeDays: m.planner.NearestFreeDays(ctx, anchor, sess.Draft.Service.Minutes()),
	}
}

func (m *Machine) send(ctx context.Context, sess *Session, who model.Requester) Reply {
	if sess.State != StateConfirm {
		return Reply{}
	}

	sub, err := m.submitter.Submit(ctx, sess.Draft, who)
	if err != nil {
		m.logger.Error("Failed to submit booking",
			zap.Int64("telegram_id", who.TelegramID),
			zap.Error(err),
		)
		return Reply{Screen: ScreenError}
	}

	if sub.Result.Status == model.ReservationConflict {
		date := sess.Draft.Date
		sess.Draft.Time = ""
		sess.State = StateSelectTime
		return Reply{
			Screen:     ScreenSlotTaken,
			Date:       date,
			Slots:      m.planner.FreeSlots(ctx, date, sess.Draft.Service.Minutes()),
			Submission: sub,
		}
	}

	draft := sess.Draft
	sess.Reset()
	return Reply{Screen: ScreenSubmitted, Draft: draft, Submission: sub}
}

func (m *Machine) handleText(ctx context.Context, sess *Session, who model.Requester, text string) Reply {
	switch sess.State {
	case StateSelectService:
		return Reply{Screen: ScreenChooseService}

	case StateSelectDate:
		date, err := parseDate(text, m.loc)
		if err != nil {
			return invalid(err)
		}
		sess.Draft.Date = date
		sess.Draft.AllowOverlap = true
		sess.State = StateEnterTime
		return Reply{Screen: ScreenAskTimeAfterDate, Date: date}

	case StateSelectTime:
		if err := m.setTime(sess, text); err != nil {
			return invalid(err)
		}
		sess.Draft.AllowOverlap = false
		sess.State = StateCaptureName
		return Reply{Screen: ScreenAskName}

	case StateEnterTime:
		if err := m.setTime(sess, text); err != nil {
			return invalid(err)
		}
		sess.State = StateCaptureName
		return Reply{Screen: ScreenAskName}

	case StateCaptureName:
		name, err := requireText(text)
		if err != nil {
			return invalid(err)
		}
		sess.Draft.Name = name
		sess.State = StateCapturePhone
		return Reply{Screen: ScreenAskPhone}

	case StateCapturePhone:
		phone, err := parsePhone(text)
		if err != nil {
			return invalid(err)
		}
		sess.Draft.Phone = phone
		sess.State = StateCaptureNotes
		return Reply{Screen: ScreenAskNotes}

	case StateCaptureNotes:
		sess.Draft.Notes = parseNotes(text)
		sess.State = StateConfirm
		return Reply{Screen: ScreenConfirm, Draft: sess.Draft}

	case StateConfirm:
		return Reply{Screen: ScreenConfirm, Draft: sess.Draft}

	case StateReviewName:
		name, err := requireText(text)
		if err != nil {
			return invalid(err)
		}
		sess.ReviewName = name
		sess.State = StateReviewText
		return Reply{Screen: ScreenReviewAskText}

	case StateReviewText:
		body, err := requireText(text)
		if err != nil {
			return invalid(err)
		}
		if _, err := m.reviews.Add(ctx, sess.ReviewName, body, who); err != nil {
			m.logger.Error("Failed to save review",
				zap.Int64("telegram_id", who.TelegramID),
				zap.Error(err),
			)
			return Reply{Screen: ScreenError}
		}
		sess.Reset()
		return Reply{Screen: ScreenReviewSaved}
	}

	return Reply{}
}

// setTime проверяет время и что визит ещё не прошёл
func (m *Machine) setTime(sess *Session, text string) error {
	clock, err := parseClock(text)
	if err != nil {
		return err
	}

	draft := sess.Draft
	draft.Time = clock
	start, err := draft.Start(m.loc)
	if err != nil {
		return ErrInvalidTime
	}
	if !start.After(m.now()) {
		return ErrTimeInPast
	}

	sess.Draft.Time = clock
	return nil
}

func (m *Machine) showReviews(ctx context.Context) Reply {
	reviews, total, err := m.reviews.Recent(ctx, ReviewsLimit)
	if err != nil {
		m.logger.Error("Failed to load reviews", zap.Error(err))
		return Reply{Screen: ScreenError}
	}
	return Reply{Screen: ScreenReviews, Reviews: reviews, ReviewsTotal: total}
}

func (m *Machine) calendar(month time.Time) Reply {
	month = month.In(m.loc)
	return Reply{
		Screen: ScreenCalendar,
		Today:  m.today(),
		Month:  time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, m.loc),
	}
}

func (m *Machine) choosingDate(sess *Session) bool {
	return sess.State == StateSelectDate || sess.State == StateSelectTime
}

func (m *Machine) today() time.Time {
	return m.day(m.now())
}

func (m *Machine) day(t time.Time) time.Time {
	t = t.In(m.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, m.loc)
}

func invalid(err error) Reply {
	return Reply{Screen: ScreenInvalidInput, Err: err}
}
