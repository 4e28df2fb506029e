package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/value"
)

func TestEmptyDict(t *testing.T) {
	dict := render.EmptyDict()

	if !dict.Empty {
		t.Fatal("empty dict must carry the pristine flag")
	}
	if len(dict.Values) != 0 {
		t.Fatalf("empty dict must echo no values, got %v", dict.Values)
	}
	if len(dict.Errors) != 0 {
		t.Fatalf("empty dict must carry no errors, got %v", dict.Errors)
	}
}

func TestNewDict_EchoesInputVerbatim(t *testing.T) {
	values := map[string][]string{
		"name": {"ada"},
		"tags": {"a", "b"},
	}

	dict := render.NewDict(values, value.NewPlain("ok"))

	if diff := cmp.Diff(values, dict.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if dict.Empty {
		t.Fatal("submitted dict must not be flagged pristine")
	}
	if got := dict.FieldValue("name"); got != "ada" {
		t.Fatalf("field value mismatch: got %q", got)
	}
	if got := dict.FieldValue("missing"); got != "" {
		t.Fatalf("missing field must read empty, got %q", got)
	}
}

func TestNewDict_CollectsErrorsByOrigin(t *testing.T) {
	// Build the shape evaluation leaves behind: a form-level func without
	// an origin combined two settled field values, one of which failed, so
	// the top result is the aggregate error wrapping that func.
	combine := value.NewFunc(2, func(args ...any) (any, error) {
		return nil, nil
	})

	emailErr := value.NewError("email invalid", value.NewPlainAt("not-an-email", "email"))
	age := value.NewPlainAt(30, "age")

	bound, err := combine.Apply(emailErr)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	bound, err = bound.Apply(age)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	settled, err := value.Settle(bound)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if !settled.IsError() {
		t.Fatal("expected evaluation to produce the aggregate error")
	}

	dict := render.NewDict(map[string][]string{"email": {"not-an-email"}}, settled)

	want := map[string][]string{
		"email": {"email invalid"},
	}
	if diff := cmp.Diff(want, dict.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"email invalid"}, dict.FieldErrors("email")); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDict_MultipleErrorsPreserveOrder(t *testing.T) {
	first := value.NewError("too short", value.NewPlainAt("x", "password"))
	second := value.NewError("needs a digit", first)

	dict := render.NewDict(nil, second)

	want := map[string][]string{
		"password": {"needs a digit", "too short"},
	}
	if diff := cmp.Diff(want, dict.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDict_TraversalDoesNotForceEvaluation(t *testing.T) {
	invoked := false
	pending := value.NewFunc(2, func(...any) (any, error) {
		invoked = true
		return nil, nil
	})

	bound, err := pending.Apply(value.NewError("bad", value.NewPlainAt("raw", "field")))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	dict := render.NewDict(nil, bound)

	if invoked {
		t.Fatal("collecting errors must not invoke the underlying operation")
	}
	want := map[string][]string{"field": {"bad"}}
	if diff := cmp.Diff(want, dict.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}
