package enums

// Role identifies what a user can do in the storefront.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller:
		return true
	default:
		return false
	}
}

// CartPhase tracks the cart store lifecycle within a session.
type CartPhase string

const (
	CartPhaseUninitialized CartPhase = "uninitialized"
	CartPhaseLoading       CartPhase = "loading"
	CartPhaseReady         CartPhase = "ready"
	CartPhaseEmpty         CartPhase = "empty"
)
