package books

import (
	"github.com/shopspring/decimal"

	"github.com/bookhaven/bookhaven-client/internal/api"
)

// CreateInput is the validated payload for publishing a new listing.
type CreateInput struct {
	Title   string          `json:"title" validate:"required,min=1,max=200"`
	Author  string          `json:"author" validate:"required,min=1,max=120"`
	Genre   string          `json:"genre" validate:"required,min=1,max=60"`
	Price   decimal.Decimal `json:"price"`
	Rating  float64         `json:"rating" validate:"gte=0,lte=5"`
	Summary string          `json:"summary" validate:"required,min=1"`
	Image   *api.FileField  `json:"-"`
}

// UpdateInput carries a partial edit of an existing listing. Nil fields
// keep their server-side value.
type UpdateInput struct {
	ID      string           `json:"id" validate:"required"`
	Title   *string          `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Author  *string          `json:"author,omitempty" validate:"omitempty,min=1,max=120"`
	Genre   *string          `json:"genre,omitempty" validate:"omitempty,min=1,max=60"`
	Price   *decimal.Decimal `json:"price,omitempty"`
	Rating  *float64         `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Summary *string          `json:"summary,omitempty" validate:"omitempty,min=1"`
	Image   *api.FileField   `json:"-"`
}
