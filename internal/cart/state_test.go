package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bookhaven/bookhaven-client/pkg/enums"
	"github.com/bookhaven/bookhaven-client/pkg/types"
)

func book(id string, price string) types.Book {
	return types.Book{ID: id, Title: "book-" + id, Price: decimal.RequireFromString(price)}
}

func TestReduceAddKeepsLinesUniqueByBook(t *testing.T) {
	t.Parallel()

	state := State{}
	state = Reduce(state, AddItem{Book: book("a", "100")})
	state = Reduce(state, AddItem{Book: book("b", "50")})
	state = Reduce(state, AddItem{Book: book("a", "100")})

	if len(state.Items) != 2 {
		t.Fatalf("expected 2 unique lines, got %d", len(state.Items))
	}
	line, ok := state.Find("a")
	if !ok || line.Quantity != 2 {
		t.Fatalf("expected quantity 2 for a, got %+v", line)
	}
}

func TestReduceSetQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	state := Reduce(State{}, AddItem{Book: book("a", "100")})
	state = Reduce(state, SetQuantity{BookID: "a", Quantity: 0})

	if len(state.Items) != 0 {
		t.Fatalf("quantity zero must remove the line, got %+v", state.Items)
	}
}

func TestReduceSetCartDropsNonPositiveQuantities(t *testing.T) {
	t.Parallel()

	state := Reduce(State{}, SetCart{Items: []LineItem{
		{Book: book("a", "10"), Quantity: 2},
		{Book: book("b", "10"), Quantity: 0},
	}})

	if len(state.Items) != 1 || state.Items[0].Book.ID != "a" {
		t.Fatalf("expected only the positive line to survive, got %+v", state.Items)
	}
	if state.Phase != enums.CartPhaseReady {
		t.Fatalf("expected ready phase, got %s", state.Phase)
	}
}

func TestReduceIsPure(t *testing.T) {
	t.Parallel()

	original := Reduce(State{}, AddItem{Book: book("a", "10")})
	_ = Reduce(original, SetQuantity{BookID: "a", Quantity: 5})
	_ = Reduce(original, RemoveItem{BookID: "a"})

	if original.Items[0].Quantity != 1 {
		t.Fatalf("input state was mutated: %+v", original.Items)
	}
}

func TestReduceSequenceEquivalence(t *testing.T) {
	t.Parallel()

	actions := []Action{
		AddItem{Book: book("a", "300")},
		AddItem{Book: book("b", "120")},
		AddItem{Book: book("a", "300")},
		SetQuantity{BookID: "b", Quantity: 4},
		RemoveItem{BookID: "a"},
		AddItem{Book: book("c", "99")},
		SetQuantity{BookID: "c", Quantity: 0},
	}

	state := State{}
	for _, action := range actions {
		state = Reduce(state, action)
	}

	if len(state.Items) != 1 {
		t.Fatalf("expected one surviving line, got %+v", state.Items)
	}
	line, ok := state.Find("b")
	if !ok || line.Quantity != 4 {
		t.Fatalf("expected b at quantity 4, got %+v", line)
	}
}

func TestReduceErrorKeepsItems(t *testing.T) {
	t.Parallel()

	state := Reduce(State{}, AddItem{Book: book("a", "10")})
	state = Reduce(state, SetLoading{})
	state = Reduce(state, SetError{Message: "failed to load cart"})

	if len(state.Items) != 1 {
		t.Fatalf("a load error must not clear items, got %+v", state.Items)
	}
	if state.Error != "failed to load cart" {
		t.Fatalf("unexpected error %q", state.Error)
	}
	if state.Loading() {
		t.Fatal("loading must end when the error lands")
	}
}

func TestReduceClearEmptiesEverything(t *testing.T) {
	t.Parallel()

	state := Reduce(State{}, AddItem{Book: book("a", "10")})
	state = Reduce(state, Clear{})

	if len(state.Items) != 0 || state.Phase != enums.CartPhaseEmpty {
		t.Fatalf("unexpected state after clear: %+v", state)
	}
}
