package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bookhaven/bookhaven-client/internal/api"
	"github.com/bookhaven/bookhaven-client/internal/cart"
	"github.com/bookhaven/bookhaven-client/internal/session"
	"github.com/bookhaven/bookhaven-client/pkg/enums"
	pkgerrors "github.com/bookhaven/bookhaven-client/pkg/errors"
	"github.com/bookhaven/bookhaven-client/pkg/types"
)

type stubSessionAPI struct {
	url   string
	err   error
	calls int
	items []api.CheckoutItem
}

func (s *stubSessionAPI) CreateCheckoutSession(ctx context.Context, items []api.CheckoutItem) (string, error) {
	s.calls++
	s.items = items
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type stubCart struct {
	state      cart.State
	clearCalls int
	clearErr   error
}

func (s *stubCart) State() cart.State {
	return s.state
}

func (s *stubCart) Clear(ctx context.Context) error {
	s.clearCalls++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.state = cart.State{Phase: enums.CartPhaseEmpty}
	return nil
}

func cartWith(lines ...cart.LineItem) cart.State {
	return cart.State{Items: lines, Phase: enums.CartPhaseReady}
}

func line(id, price string, qty int) cart.LineItem {
	return cart.LineItem{
		Book: types.Book{
			ID:    id,
			Title: "title-" + id,
			Price: decimal.RequireFromString(price),
			Image: "img-" + id,
		},
		Quantity: qty,
	}
}

func newTestBridge(t *testing.T, sessionAPI SessionAPI, cartStore Cart, nav session.Navigator) *Bridge {
	t.Helper()
	if nav == nil {
		nav = session.NavigatorFunc(func(ctx context.Context, url string) error { return nil })
	}
	bridge, err := NewBridge(BridgeParams{API: sessionAPI, Cart: cartStore, Navigator: nav})
	if err != nil {
		t.Fatalf("NewBridge: %v", err)
	}
	return bridge
}

func TestBeginNavigatesToPaymentURL(t *testing.T) {
	t.Parallel()

	sessionAPI := &stubSessionAPI{url: "https://pay.example/s/123"}
	cartStore := &stubCart{state: cartWith(line("a", "300", 2), line("b", "19.99", 1))}
	var visited string
	nav := session.NavigatorFunc(func(ctx context.Context, url string) error {
		visited = url
		return nil
	})
	bridge := newTestBridge(t, sessionAPI, cartStore, nav)

	if err := bridge.Begin(context.Background()); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if visited != sessionAPI.url {
		t.Fatalf("expected navigation to %q, got %q", sessionAPI.url, visited)
	}
	if len(sessionAPI.items) != 2 || sessionAPI.items[0].BookID != "a" || sessionAPI.items[0].Quantity != 2 {
		t.Fatalf("unexpected payload %+v", sessionAPI.items)
	}
	if cartStore.clearCalls != 0 {
		t.Fatal("starting checkout must not touch the cart")
	}
}

func TestBeginRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	sessionAPI := &stubSessionAPI{url: "https://pay.example/s/123"}
	bridge := newTestBridge(t, sessionAPI, &stubCart{state: cart.State{Phase: enums.CartPhaseEmpty}}, nil)

	err := bridge.Begin(context.Background())
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if sessionAPI.calls != 0 {
		t.Fatal("an empty cart must not create a payment session")
	}
}

func TestBeginSurfacesSessionFailureWithoutNavigating(t *testing.T) {
	t.Parallel()

	sessionAPI := &stubSessionAPI{err: errors.New("boom")}
	cartStore := &stubCart{state: cartWith(line("a", "10", 1))}
	nav := session.NavigatorFunc(func(ctx context.Context, url string) error {
		t.Fatal("must not navigate on failure")
		return nil
	})
	bridge := newTestBridge(t, sessionAPI, cartStore, nav)

	if err := bridge.Begin(context.Background()); err == nil {
		t.Fatal("expected the session failure to surface")
	}
	if cartStore.clearCalls != 0 {
		t.Fatal("a failed checkout must not touch the cart")
	}
}

func TestConfirmSuccessClearsCartIdempotently(t *testing.T) {
	t.Parallel()

	cartStore := &stubCart{state: cartWith(line("a", "10", 1))}
	bridge := newTestBridge(t, &stubSessionAPI{url: "u"}, cartStore, nil)

	if err := bridge.ConfirmSuccess(context.Background()); err != nil {
		t.Fatalf("ConfirmSuccess: %v", err)
	}
	if err := bridge.ConfirmSuccess(context.Background()); err != nil {
		t.Fatalf("second ConfirmSuccess: %v", err)
	}
	if cartStore.clearCalls != 2 || len(cartStore.state.Items) != 0 {
		t.Fatalf("expected an empty cart after confirmation, got %+v", cartStore.state)
	}
}
