package session

import "context"

// Navigator requests a full-page navigation on the presentation layer.
// Logout and session teardown send the user to the login surface through
// it; checkout hands off to the external payment page the same way.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(ctx context.Context, url string) error

func (fn NavigatorFunc) Navigate(ctx context.Context, url string) error {
	return fn(ctx, url)
}
