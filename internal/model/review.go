package model

import "time"

// Review - отзыв клиента, после записи не изменяется
type Review struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Text         string    `json:"text"`
	Date         time.Time `json:"date"`
	AuthorID     int64     `json:"author_id"`
	AuthorHandle string    `json:"author_handle"`
	CreatedAt    time.Time `json:"created_at"`
}
