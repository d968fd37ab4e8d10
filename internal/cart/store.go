package cart

import (
	"context"
	"sync"

	"github.com/bookhaven/bookhaven-client/internal/api"
	pkgerrors "github.com/bookhaven/bookhaven-client/pkg/errors"
	"github.com/bookhaven/bookhaven-client/pkg/logger"
	"github.com/bookhaven/bookhaven-client/pkg/notify"
	"github.com/bookhaven/bookhaven-client/pkg/types"
)

// CartAPI is the slice of the backend client the cart store calls.
type CartAPI interface {
	GetCart(ctx context.Context) ([]api.CartEntry, error)
	AddCartItem(ctx context.Context, bookID string, quantity int) error
	UpdateCartItem(ctx context.Context, bookID string, quantity int) error
	RemoveCartItem(ctx context.Context, bookID string) error
	ClearCart(ctx context.Context) error
}

// SessionSource answers "is someone logged in right now". The store asks
// on every fetch instead of caching the answer; the persisted session is
// externally mutable.
type SessionSource interface {
	CurrentUser() *types.User
	Token(ctx context.Context) (string, bool)
}

// StoreParams groups dependencies for the cart store.
type StoreParams struct {
	API      CartAPI
	Session  SessionSource
	Notifier notify.Notifier
	Logger   *logger.Logger
}

// Store keeps the local cart consistent with the server cart resource.
// Every mutation is server-confirm-then-apply: the reducer transition
// runs only after the backend accepted the change, so local state never
// runs ahead of the server.
type Store struct {
	api      CartAPI
	session  SessionSource
	notifier notify.Notifier
	logg     *logger.Logger

	mu    sync.RWMutex
	state State
}

// NewStore builds a cart store with the required dependencies.
func NewStore(params StoreParams) (*Store, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart api is required")
	}
	if params.Session == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session source is required")
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Store{
		api:      params.API,
		session:  params.Session,
		notifier: notifier,
		logg:     params.Logger,
	}, nil
}

// State returns a copy of the current cart state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]LineItem, len(s.state.Items))
	copy(items, s.state.Items)
	return State{Items: items, Phase: s.state.Phase, Error: s.state.Error}
}

// Totals derives the aggregate view of the current items.
func (s *Store) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeTotals(s.state.Items)
}

// OnUserChange is subscribed to the session store. A present-to-absent
// transition empties the cart locally, with no server round-trip, so a
// logout can never leak the cart into the next anonymous session.
func (s *Store) OnUserChange(user *types.User) {
	if user == nil {
		s.dispatch(Clear{})
	}
}

// Fetch replaces the local items with the server cart. Without a live
// session it resolves immediately to an empty cart and makes no call. A
// permission-denied response also means empty, the session just expired;
// any other failure keeps the current items and records a load error.
func (s *Store) Fetch(ctx context.Context) error {
	if !s.sessionPresent(ctx) {
		s.dispatch(Clear{})
		return nil
	}

	s.dispatch(SetLoading{})
	entries, err := s.api.GetCart(ctx)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeForbidden) || pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
			s.apply(ctx, SetCart{})
			return nil
		}
		if s.logg != nil {
			s.logg.Error(ctx, "fetch cart", err)
		}
		s.apply(ctx, SetError{Message: "failed to load cart"})
		return err
	}

	items := make([]LineItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, LineItem{Book: entry.Book, Quantity: entry.Quantity})
	}
	s.apply(ctx, SetCart{Items: items})
	return nil
}

// Add puts one copy of the book in the cart, server first.
func (s *Store) Add(ctx context.Context, book types.Book) error {
	if err := s.api.AddCartItem(ctx, book.ID, 1); err != nil {
		s.notifier.Error(ctx, "Failed to add to cart")
		return err
	}
	s.apply(ctx, AddItem{Book: book})
	s.notifier.Success(ctx, "Added to cart!")
	return nil
}

// SetQuantity sets an absolute quantity for the line. Zero or below
// delegates to Remove; the server never sees a non-positive quantity.
func (s *Store) SetQuantity(ctx context.Context, bookID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, bookID)
	}
	if err := s.api.UpdateCartItem(ctx, bookID, quantity); err != nil {
		s.notifier.Error(ctx, "Failed to update quantity")
		return err
	}
	s.apply(ctx, SetQuantity{BookID: bookID, Quantity: quantity})
	return nil
}

// AdjustQuantity applies a relative change. The target is re-derived
// from the latest local state at call time, so two overlapping
// adjustments cannot both start from the same stale quantity.
func (s *Store) AdjustQuantity(ctx context.Context, bookID string, delta int) error {
	s.mu.RLock()
	current, ok := s.state.Find(bookID)
	s.mu.RUnlock()
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "book is not in the cart")
	}
	return s.SetQuantity(ctx, bookID, current.Quantity+delta)
}

// Remove deletes the line, server first.
func (s *Store) Remove(ctx context.Context, bookID string) error {
	if err := s.api.RemoveCartItem(ctx, bookID); err != nil {
		s.notifier.Error(ctx, "Failed to remove from cart")
		return err
	}
	s.apply(ctx, RemoveItem{BookID: bookID})
	s.notifier.Success(ctx, "Removed from cart!")
	return nil
}

// Clear empties the cart, server first. It is idempotent: clearing an
// already-empty cart succeeds silently, which the checkout confirmation
// relies on when it is revisited.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.api.ClearCart(ctx); err != nil {
		s.notifier.Error(ctx, "Failed to clear cart")
		return err
	}
	s.apply(ctx, Clear{})
	return nil
}

func (s *Store) sessionPresent(ctx context.Context) bool {
	if s.session.CurrentUser() == nil {
		return false
	}
	_, ok := s.session.Token(ctx)
	return ok
}

// apply commits a transition unless the caller's context died while the
// request was in flight; a gone caller must not see its stale result
// applied.
func (s *Store) apply(ctx context.Context, action Action) {
	if ctx != nil && ctx.Err() != nil {
		return
	}
	s.dispatch(action)
}

func (s *Store) dispatch(action Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, action)
	s.mu.Unlock()
}
