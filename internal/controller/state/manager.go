package state

import (
	"sync"

	"github.com/Freeeeeet/makeup_room_bot/internal/dialog"
)

type entry struct {
	mu      sync.Mutex
	session dialog.Session
}

// Manager хранит сессии диалогов в памяти процесса, по одной на пользователя.
// Апдейты одного пользователя обрабатываются по очереди, разные пользователи не мешают друг другу.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*entry // telegramID -> сессия
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*entry),
	}
}

// With выполняет fn с эксклюзивным доступом к сессии пользователя
func (sm *Manager) With(telegramID int64, fn func(*dialog.Session)) {
	e := sm.entry(telegramID)

	e.mu.Lock()
	defer e.mu.Unlock()

	fn(&e.session)
}

// GetState возвращает текущий шаг диалога пользователя
func (sm *Manager) GetState(telegramID int64) dialog.State {
	var st dialog.State
	sm.With(telegramID, func(s *dialog.Session) {
		st = s.State
	})
	return st
}

// ClearState сбрасывает диалог пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.With(telegramID, func(s *dialog.Session) {
		s.Reset()
	})
}

// Len - количество пользователей с сессией
func (sm *Manager) Len() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.sessions)
}

func (sm *Manager) entry(telegramID int64) *entry {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	e, ok := sm.sessions[telegramID]
	if !ok {
		e = &entry{}
		sm.sessions[telegramID] = e
	}
	return e
}
