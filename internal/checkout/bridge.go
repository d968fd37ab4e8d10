package checkout

import (
	"context"

	"github.com/bookhaven/bookhaven-client/internal/api"
	"github.com/bookhaven/bookhaven-client/internal/cart"
	"github.com/bookhaven/bookhaven-client/internal/session"
	pkgerrors "github.com/bookhaven/bookhaven-client/pkg/errors"
	"github.com/bookhaven/bookhaven-client/pkg/logger"
	"github.com/bookhaven/bookhaven-client/pkg/notify"
)

// SessionAPI is the slice of the backend client the bridge needs.
type SessionAPI interface {
	CreateCheckoutSession(ctx context.Context, items []api.CheckoutItem) (string, error)
}

// Cart is the slice of the cart store the bridge needs.
type Cart interface {
	State() cart.State
	Clear(ctx context.Context) error
}

// BridgeParams groups dependencies for the checkout bridge.
type BridgeParams struct {
	API       SessionAPI
	Cart      Cart
	Navigator session.Navigator
	Notifier  notify.Notifier
	Logger    *logger.Logger
}

// Bridge hands the cart off to the external payment flow. It never
// mutates the cart on the way out; emptying happens only after the
// payment provider reports success.
type Bridge struct {
	api       SessionAPI
	cart      Cart
	navigator session.Navigator
	notifier  notify.Notifier
	logg      *logger.Logger
}

// NewBridge builds a checkout bridge with the required dependencies.
func NewBridge(params BridgeParams) (*Bridge, error) {
	if params.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout api is required")
	}
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	if params.Navigator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "navigator is required")
	}
	notifier := params.Notifier
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Bridge{
		api:       params.API,
		cart:      params.Cart,
		navigator: params.Navigator,
		notifier:  notifier,
		logg:      params.Logger,
	}, nil
}

// Begin exchanges the current cart for a payment page URL and navigates
// to it. The cart itself is left untouched so an abandoned payment
// changes nothing.
func (b *Bridge) Begin(ctx context.Context) error {
	state := b.cart.State()
	if len(state.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]api.CheckoutItem, 0, len(state.Items))
	for _, line := range state.Items {
		items = append(items, api.CheckoutItem{
			BookID:   line.Book.ID,
			Title:    line.Book.Title,
			Price:    line.Book.Price,
			Image:    line.Book.Image,
			Quantity: line.Quantity,
		})
	}

	url, err := b.api.CreateCheckoutSession(ctx, items)
	if err != nil {
		b.notifier.Error(ctx, "Failed to start checkout")
		return err
	}
	if b.logg != nil {
		b.logg.Info(b.logg.WithField(ctx, "item_count", len(items)), "checkout session created")
	}
	return b.navigator.Navigate(ctx, url)
}

// ConfirmSuccess is called once the external payment flow reports
// success. Clearing is idempotent, so a reloaded confirmation page is
// harmless.
func (b *Bridge) ConfirmSuccess(ctx context.Context) error {
	if err := b.cart.Clear(ctx); err != nil {
		return err
	}
	b.notifier.Success(ctx, "Payment successful!")
	return nil
}
