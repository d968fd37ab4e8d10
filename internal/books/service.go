package books

import (
	"context"

	"github.com/bookhaven/bookhaven-client/internal/api"
	pkgerrors "github.com/bookhaven/bookhaven-client/pkg/errors"
	"github.com/bookhaven/bookhaven-client/pkg/logger"
	"github.com/bookhaven/bookhaven-client/pkg/types"
	"github.com/bookhaven/bookhaven-client/pkg/validate"
)

// CatalogAPI is the slice of the backend client the catalog service needs.
type CatalogAPI interface {
	ListBooks(ctx context.Context) ([]types.Book, error)
	GetBook(ctx context.Context, id string) (types.Book, error)
	CreateBook(ctx context.Context, upload api.BookUpload) (types.Book, error)
	UpdateBook(ctx context.Context, patch api.BookPatch) (types.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	API    CatalogAPI
	Logger *logger.Logger
}

// Service fronts the book catalog. Reads pass straight through; writes
// are validated locally before any request leaves the process.
type Service struct {
	api  CatalogAPI
	logg *logger.Logger
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (*Service, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog api is required")
	}
	return &Service{api: params.API, logg: params.Logger}, nil
}

// List returns every listing in the catalog.
func (s *Service) List(ctx context.Context) ([]types.Book, error) {
	return s.api.ListBooks(ctx)
}

// Get returns a single listing by id.
func (s *Service) Get(ctx context.Context, id string) (types.Book, error) {
	if id == "" {
		return types.Book{}, pkgerrors.New(pkgerrors.CodeValidation, "book id is required")
	}
	return s.api.GetBook(ctx, id)
}

// Create publishes a new listing for the authenticated seller.
func (s *Service) Create(ctx context.Context, input CreateInput) (types.Book, error) {
	if err := validate.Struct(input); err != nil {
		return types.Book{}, err
	}
	if !input.Price.IsPositive() {
		return types.Book{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}

	book, err := s.api.CreateBook(ctx, api.BookUpload{
		Title:   input.Title,
		Author:  input.Author,
		Genre:   input.Genre,
		Price:   input.Price,
		Rating:  input.Rating,
		Summary: input.Summary,
		Image:   input.Image,
	})
	if err != nil {
		return types.Book{}, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "book_id", book.ID), "book created")
	}
	return book, nil
}

// Update edits a listing; only the fields set on input are sent.
func (s *Service) Update(ctx context.Context, input UpdateInput) (types.Book, error) {
	if err := validate.Struct(input); err != nil {
		return types.Book{}, err
	}
	if input.Price != nil && !input.Price.IsPositive() {
		return types.Book{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}

	return s.api.UpdateBook(ctx, api.BookPatch{
		ID:      input.ID,
		Title:   input.Title,
		Author:  input.Author,
		Genre:   input.Genre,
		Price:   input.Price,
		Rating:  input.Rating,
		Summary: input.Summary,
		Image:   input.Image,
	})
}

// Delete removes a listing owned by the authenticated seller.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "book id is required")
	}
	return s.api.DeleteBook(ctx, id)
}
