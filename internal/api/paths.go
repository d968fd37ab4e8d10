package api

// Backend REST paths. The contract is owned by the bookstore service.
const (
	pathBookAll    = "/book/all"
	pathBookView   = "/book/view/"
	pathBookAdd    = "/book/add"
	pathBookUpdate = "/book/update"
	pathBookDelete = "/book/delete"

	pathLogin    = "/user/login"
	pathRegister = "/user/register"

	pathCartAll    = "/cart/all"
	pathCartAdd    = "/cart/add"
	pathCartUpdate = "/cart/update"
	pathCartDelete = "/cart/delete"
	pathCartClear  = "/cart/clear"

	pathCheckoutSession = "/api/stripe/create-checkout-session"
)
