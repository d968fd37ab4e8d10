package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/bookhaven/bookhaven-client/pkg/types"
)

// BookUpload captures the multipart payload for creating a book listing.
type BookUpload struct {
	Title   string
	Author  string
	Genre   string
	Price   decimal.Decimal
	Rating  float64
	Summary string
	Image   *FileField
}

// BookPatch carries the partial multipart payload for updating a listing.
// Nil fields are omitted from the form.
type BookPatch struct {
	ID      string
	Title   *string
	Author  *string
	Genre   *string
	Price   *decimal.Decimal
	Rating  *float64
	Summary *string
	Image   *FileField
}

// ListBooks returns the full catalog.
func (c *Client) ListBooks(ctx context.Context) ([]types.Book, error) {
	var resp struct {
		Data    []types.Book `json:"data"`
		Message string       `json:"message"`
	}
	spec := requestSpec{method: http.MethodGet, path: pathBookAll}
	if err := c.do(ctx, spec, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// GetBook returns a single catalog entry by id.
func (c *Client) GetBook(ctx context.Context, id string) (types.Book, error) {
	var resp struct {
		Data    types.Book `json:"data"`
		Message string     `json:"message"`
	}
	spec := requestSpec{method: http.MethodGet, path: pathBookView + url.PathEscape(id)}
	if err := c.do(ctx, spec, &resp); err != nil {
		return types.Book{}, err
	}
	return resp.Data, nil
}

// CreateBook uploads a new listing for the authenticated seller.
func (c *Client) CreateBook(ctx context.Context, upload BookUpload) (types.Book, error) {
	fields := map[string]string{
		"title":   upload.Title,
		"author":  upload.Author,
		"genre":   upload.Genre,
		"price":   upload.Price.String(),
		"rating":  strconv.FormatFloat(upload.Rating, 'f', -1, 64),
		"summary": upload.Summary,
	}
	spec, err := multipartSpec(http.MethodPost, pathBookAdd, fields, upload.Image)
	if err != nil {
		return types.Book{}, err
	}
	spec.idempotencyKey = mutationKey()

	var resp struct {
		Data    types.Book `json:"data"`
		Message string     `json:"message"`
	}
	if err := c.do(ctx, spec, &resp); err != nil {
		return types.Book{}, err
	}
	return resp.Data, nil
}

// UpdateBook patches an existing listing; only set fields are sent.
func (c *Client) UpdateBook(ctx context.Context, patch BookPatch) (types.Book, error) {
	fields := map[string]string{"id": patch.ID}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Author != nil {
		fields["author"] = *patch.Author
	}
	if patch.Genre != nil {
		fields["genre"] = *patch.Genre
	}
	if patch.Price != nil {
		fields["price"] = patch.Price.String()
	}
	if patch.Rating != nil {
		fields["rating"] = strconv.FormatFloat(*patch.Rating, 'f', -1, 64)
	}
	if patch.Summary != nil {
		fields["summary"] = *patch.Summary
	}

	spec, err := multipartSpec(http.MethodPatch, pathBookUpdate, fields, patch.Image)
	if err != nil {
		return types.Book{}, err
	}
	spec.idempotencyKey = mutationKey()

	var resp struct {
		Data    types.Book `json:"data"`
		Message string     `json:"message"`
	}
	if err := c.do(ctx, spec, &resp); err != nil {
		return types.Book{}, err
	}
	return resp.Data, nil
}

// DeleteBook removes a listing owned by the authenticated seller.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	spec, err := jsonSpec(http.MethodDelete, pathBookDelete, map[string]string{"id": id})
	if err != nil {
		return err
	}
	spec.idempotencyKey = mutationKey()
	return c.do(ctx, spec, nil)
}
