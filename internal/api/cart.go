package api

import (
	"context"
	"net/http"

	"github.com/bookhaven/bookhaven-client/pkg/types"
)

// CartEntry is one wire-level cart line: the populated book document plus
// its quantity.
type CartEntry struct {
	Book     types.Book `json:"bookId"`
	Quantity int        `json:"quantity"`
}

type cartEnvelope struct {
	Data struct {
		UserID string      `json:"userId"`
		Items  []CartEntry `json:"items"`
	} `json:"data"`
	Message string `json:"message"`
}

// GetCart fetches the server cart for the authenticated user.
func (c *Client) GetCart(ctx context.Context) ([]CartEntry, error) {
	var resp cartEnvelope
	spec := requestSpec{method: http.MethodGet, path: pathCartAll}
	if err := c.do(ctx, spec, &resp); err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

// AddCartItem adds quantity of the book to the server cart.
func (c *Client) AddCartItem(ctx context.Context, bookID string, quantity int) error {
	spec, err := jsonSpec(http.MethodPost, pathCartAdd, map[string]any{
		"bookId":   bookID,
		"quantity": quantity,
	})
	if err != nil {
		return err
	}
	spec.idempotencyKey = mutationKey()
	return c.do(ctx, spec, nil)
}

// UpdateCartItem sets the quantity of a line on the server cart.
func (c *Client) UpdateCartItem(ctx context.Context, bookID string, quantity int) error {
	spec, err := jsonSpec(http.MethodPatch, pathCartUpdate, map[string]any{
		"bookId":   bookID,
		"quantity": quantity,
	})
	if err != nil {
		return err
	}
	spec.idempotencyKey = mutationKey()
	return c.do(ctx, spec, nil)
}

// RemoveCartItem deletes a line from the server cart.
func (c *Client) RemoveCartItem(ctx context.Context, bookID string) error {
	spec, err := jsonSpec(http.MethodDelete, pathCartDelete, map[string]string{"bookId": bookID})
	if err != nil {
		return err
	}
	spec.idempotencyKey = mutationKey()
	return c.do(ctx, spec, nil)
}

// ClearCart empties the server cart.
func (c *Client) ClearCart(ctx context.Context) error {
	spec := requestSpec{method: http.MethodDelete, path: pathCartClear, idempotencyKey: mutationKey()}
	return c.do(ctx, spec, nil)
}
