package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/makeup_room_bot/internal/model"
	"github.com/Freeeeeet/makeup_room_bot/internal/repository/base"
	"github.com/Masterminds/squirrel"
)

type ReviewRepository struct {
	*base.Repository
	loc *time.Location
}

func NewReviewRepository(db base.Querier, loc *time.Location) *ReviewRepository {
	return &ReviewRepository{Repository: base.NewRepository(db), loc: loc}
}

// Create добавляет отзыв в конец журнала
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	row, err := r.QueryRow(ctx, insertReview(review))
	if err != nil {
		return fmt.Errorf("build insert review: %w", err)
	}

	if err := row.Scan(&review.ID, &review.CreatedAt); err != nil {
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

// ListRecent возвращает последние отзывы, новые первыми
func (r *ReviewRepository) ListRecent(ctx context.Context, limit int) ([]model.Review, error) {
	rows, err := r.Query(ctx, selectRecentReviews(limit))
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		var date time.Time
		if err := rows.Scan(&rv.ID, &rv.Name, &rv.Text, &date, &rv.AuthorID, &rv.AuthorHandle, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rv.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, r.loc)
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, nil
}

// Count возвращает общее число отзывов
func (r *ReviewRepository) Count(ctx context.Context) (int, error) {
	row, err := r.QueryRow(ctx, base.Psql.Select("COUNT(*)").From("reviews"))
	if err != nil {
		return 0, fmt.Errorf("build count reviews: %w", err)
	}

	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return count, nil
}

func insertReview(review *model.Review) squirrel.InsertBuilder {
	return base.Psql.Insert("reviews").
		Columns("name", "text", "review_date", "author_id", "author_handle").
		Values(review.Name, review.Text, review.Date.Format(model.ISODate), review.AuthorID, review.AuthorHandle).
		Suffix("RETURNING id, created_at")
}

func selectRecentReviews(limit int) squirrel.SelectBuilder {
	return base.Psql.Select("id", "name", "text", "review_date", "author_id", "author_handle", "created_at").
		From("reviews").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
}
