package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/bookhaven/bookhaven-client/pkg/errors"
)

// CheckoutItem is one cart line in the shape the payment session endpoint
// expects.
type CheckoutItem struct {
	BookID   string          `json:"_id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// CreateCheckoutSession exchanges the cart for an external payment page URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, items []CheckoutItem) (string, error) {
	spec, err := jsonSpec(http.MethodPost, pathCheckoutSession, map[string]any{
		"cartItems": items,
	})
	if err != nil {
		return "", err
	}
	spec.idempotencyKey = mutationKey()

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, spec, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.URL) == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "payment session returned no redirect url")
	}
	return resp.URL, nil
}
