package types

import (
	"github.com/shopspring/decimal"

	"github.com/bookhaven/bookhaven-client/pkg/enums"
)

// Book is a catalog entity owned by the backend; the client only holds
// read copies and snapshots of it.
type Book struct {
	ID        string          `json:"_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Genre     string          `json:"genre"`
	Price     decimal.Decimal `json:"price"`
	Rating    float64         `json:"rating"`
	Image     string          `json:"image"`
	Summary   string          `json:"summary"`
	CreatorID string          `json:"creator"`
}

// User is the authenticated identity returned by login and register.
type User struct {
	ID       string     `json:"_id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     enums.Role `json:"role"`
	ImageURL string     `json:"user_img"`
}
