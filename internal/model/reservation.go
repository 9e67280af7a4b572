package model

// ReservationStatus - исход попытки создать событие в календаре
type ReservationStatus string

const (
	ReservationCreated     ReservationStatus = "created"
	ReservationConflict    ReservationStatus = "conflict"
	ReservationUnavailable ReservationStatus = "unavailable" // календарь недоступен или не настроен
)

// ReservationResult заполняется только через конструкторы ниже
type ReservationResult struct {
	Status     ReservationStatus
	EventID    string
	Link       string
	Overlapped bool
	Conflicts  []BusyInterval
}

func Created(eventID, link string, overlapped bool) ReservationResult {
	return ReservationResult{
		Status:     ReservationCreated,
		EventID:    eventID,
		Link:       link,
		Overlapped: overlapped,
	}
}

func Conflict(intervals ...BusyInterval) ReservationResult {
	return ReservationResult{
		Status:    ReservationConflict,
		Conflicts: intervals,
	}
}

func Unavailable() ReservationResult {
	return ReservationResult{Status: ReservationUnavailable}
}
