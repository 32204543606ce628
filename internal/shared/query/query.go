package query

import (
	"context"
	"net/http"

	"go-tams/internal/shared/apperror"

	"gorm.io/gorm"
)

var ErrInvalidPageParams = apperror.New(
	apperror.CodeInvalidInput,
	"page and limit must be positive integers",
	http.StatusBadRequest,
)

// Params carries list options through repositories. Page and limit are
// echoed back unchanged in the resulting page; both must be >= 1.
type Params struct {
	Page   int
	Limit  int
	SortBy string
}

func (p Params) Validate() error {
	if p.Page < 1 || p.Limit < 1 {
		return ErrInvalidPageParams
	}
	return nil
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is the paginated result envelope shared by all list operations.
type Page[T any] struct {
	Results      []T   `json:"results"`
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"totalPages"`
	TotalResults int64 `json:"totalResults"`
}

// NewPage assembles the envelope; totalPages = ceil(total / limit).
func NewPage[T any](results []T, total int64, p Params) Page[T] {
	return Page[T]{
		Results:      results,
		Page:         p.Page,
		Limit:        p.Limit,
		TotalPages:   int((total + int64(p.Limit) - 1) / int64(p.Limit)),
		TotalResults: total,
	}
}

// Paginate runs the shared count + offset/limit + order sequence over a
// prepared gorm query. The query must already carry its model and every
// filter condition; this layer never infers predicates. SortBy falls back
// to the collection's recency field passed as defaultOrder.
func Paginate[T any](ctx context.Context, tx *gorm.DB, p Params, defaultOrder string) (Page[T], error) {
	if err := p.Validate(); err != nil {
		return Page[T]{}, err
	}

	var total int64
	if err := tx.WithContext(ctx).Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	order := p.SortBy
	if order == "" {
		order = defaultOrder
	}

	var results []T
	err := tx.WithContext(ctx).
		Order(order).
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&results).Error
	if err != nil {
		return Page[T]{}, err
	}

	return NewPage(results, total, p), nil
}
