// Package dialog - конечный автомат диалогов записи и отзывов.
//
// Транспорт разбирает нажатия кнопок и текст в Action, автомат меняет Session
// и возвращает Reply - какой экран показать пользователю.
package dialog

import "github.com/Freeeeeet/makeup_room_bot/internal/model"

// State - шаг диалога
type State string

const (
	StateIdle State = "" // Нет активного диалога

	// Запись
	StateSelectService State = "select_service"
	StateSelectDate    State = "select_date"
	StateSelectTime    State = "select_time"
	StateEnterTime     State = "enter_time" // ручной ввод времени, пересечения допускаются
	StateCaptureName   State = "capture_name"
	StateCapturePhone  State = "capture_phone"
	StateCaptureNotes  State = "capture_notes"
	StateConfirm       State = "confirm"

	// Отзыв
	StateReviewName State = "review_name"
	StateReviewText State = "review_text"
)

// Session - состояние диалога одного пользователя, живёт только в памяти процесса
type Session struct {
	State      State
	Draft      model.BookingDraft
	ReviewName string
}

// Reset завершает диалог и выбрасывает черновик
func (s *Session) Reset() {
	*s = Session{}
}

// Active сообщает, идёт ли сейчас какой-либо диалог
func (s *Session) Active() bool {
	return s.State != StateIdle
}

func (s *Session) booking() bool {
	switch s.State {
	case StateSelectService, StateSelectDate, StateSelectTime, StateEnterTime,
		StateCaptureName, StateCapturePhone, StateCaptureNotes, StateConfirm:
		return true
	}
	return false
}
