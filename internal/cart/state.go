package cart

import (
	"github.com/bookhaven/bookhaven-client/pkg/enums"
	"github.com/bookhaven/bookhaven-client/pkg/types"
)

// LineItem is one book entry in the cart plus its quantity. Items are
// unique by book id; a quantity below one never survives a transition.
type LineItem struct {
	Book     types.Book
	Quantity int
}

// State is the local cart: the line items plus lifecycle phase and the
// last load error. Totals are derived on read, never stored.
type State struct {
	Items []LineItem
	Phase enums.CartPhase
	Error string
}

// Loading reports whether a full fetch is in flight.
func (s State) Loading() bool {
	return s.Phase == enums.CartPhaseLoading
}

// Find returns the line for the book id, if present.
func (s State) Find(bookID string) (LineItem, bool) {
	for _, item := range s.Items {
		if item.Book.ID == bookID {
			return item, true
		}
	}
	return LineItem{}, false
}

// Action is a deterministic cart transition input.
type Action interface {
	isAction()
}

// SetCart replaces the whole item list with the server response.
type SetCart struct {
	Items []LineItem
}

// AddItem appends a new line at quantity one, or bumps an existing line.
type AddItem struct {
	Book types.Book
}

// RemoveItem drops the line for the book id.
type RemoveItem struct {
	BookID string
}

// SetQuantity sets an absolute quantity for an existing line. Zero or
// below removes the line instead of keeping a dead entry.
type SetQuantity struct {
	BookID   string
	Quantity int
}

// Clear empties the cart locally.
type Clear struct{}

// SetLoading marks a full fetch in flight.
type SetLoading struct{}

// SetError records a load failure without touching the items.
type SetError struct {
	Message string
}

func (SetCart) isAction()     {}
func (AddItem) isAction()     {}
func (RemoveItem) isAction()  {}
func (SetQuantity) isAction() {}
func (Clear) isAction()       {}
func (SetLoading) isAction()  {}
func (SetError) isAction()    {}

// Reduce applies the action to the state and returns the next state. It
// is a pure function so the transition rules stay testable apart from
// the async orchestration around them.
func Reduce(state State, action Action) State {
	switch act := action.(type) {
	case SetCart:
		items := make([]LineItem, 0, len(act.Items))
		for _, item := range act.Items {
			if item.Quantity < 1 {
				continue
			}
			items = append(items, item)
		}
		return State{Items: items, Phase: enums.CartPhaseReady}

	case AddItem:
		items := make([]LineItem, len(state.Items))
		copy(items, state.Items)
		for i := range items {
			if items[i].Book.ID == act.Book.ID {
				items[i].Quantity++
				return State{Items: items, Phase: enums.CartPhaseReady, Error: state.Error}
			}
		}
		items = append(items, LineItem{Book: act.Book, Quantity: 1})
		return State{Items: items, Phase: enums.CartPhaseReady, Error: state.Error}

	case RemoveItem:
		items := make([]LineItem, 0, len(state.Items))
		for _, item := range state.Items {
			if item.Book.ID != act.BookID {
				items = append(items, item)
			}
		}
		return State{Items: items, Phase: state.Phase, Error: state.Error}

	case SetQuantity:
		if act.Quantity < 1 {
			return Reduce(state, RemoveItem{BookID: act.BookID})
		}
		items := make([]LineItem, len(state.Items))
		copy(items, state.Items)
		for i := range items {
			if items[i].Book.ID == act.BookID {
				items[i].Quantity = act.Quantity
			}
		}
		return State{Items: items, Phase: state.Phase, Error: state.Error}

	case Clear:
		return State{Phase: enums.CartPhaseEmpty}

	case SetLoading:
		return State{Items: state.Items, Phase: enums.CartPhaseLoading, Error: state.Error}

	case SetError:
		phase := state.Phase
		if phase == enums.CartPhaseLoading {
			phase = enums.CartPhaseReady
		}
		return State{Items: state.Items, Phase: phase, Error: act.Message}

	default:
		return state
	}
}
