package validate

import (
	"testing"

	pkgerrors "github.com/bookhaven/bookhaven-client/pkg/errors"
)

type sample struct {
	Title  string  `json:"title" validate:"required"`
	Email  string  `json:"email" validate:"omitempty,email"`
	Rating float64 `json:"rating" validate:"gte=0,lte=5"`
}

func TestStructValid(t *testing.T) {
	t.Parallel()

	if err := Struct(sample{Title: "Dune", Rating: 4.5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructCollectsFieldDetails(t *testing.T) {
	t.Parallel()

	err := Struct(sample{Email: "not-an-email", Rating: 9})
	if err == nil {
		t.Fatal("expected validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", typed.Details())
	}
	if details["title"] != "is required" {
		t.Fatalf("unexpected title detail %q", details["title"])
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email detail %q", details["email"])
	}
	if details["rating"] != "must be at most 5" {
		t.Fatalf("unexpected rating detail %q", details["rating"])
	}
}
