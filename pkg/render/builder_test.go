package render_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goliatone/go-formval/pkg/fragment"
	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/value"
)

func buildString(t *testing.T, b render.Builder, dict render.Dict) string {
	t.Helper()
	frag, err := b.BuildWith(dict)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return frag.String()
}

func TestConst_IgnoresDict(t *testing.T) {
	b := render.ConstText("hello & goodbye")

	got := buildString(t, b, render.EmptyDict())
	if got != "hello &amp; goodbye" {
		t.Fatalf("const output mismatch: got %q", got)
	}

	withInput := render.NewDict(map[string][]string{"x": {"1"}}, value.NewPlain(nil))
	if again := buildString(t, b, withInput); again != got {
		t.Fatalf("const output must not depend on the dict: got %q", again)
	}
}

func TestCombined_PreservesOrder(t *testing.T) {
	b := render.Combined(
		render.Const(fragment.Trusted("<a>")),
		render.Const(fragment.Trusted("<b>")),
	)

	if got := buildString(t, b, render.EmptyDict()); got != "<a><b>" {
		t.Fatalf("combined output mismatch: got %q", got)
	}
}

func TestCombine_FoldsAssociatively(t *testing.T) {
	parts := []render.Builder{
		render.ConstText("a"),
		render.ConstText("b"),
		render.ConstText("c"),
	}

	flat := render.Combine(parts...)
	nested := render.Combined(parts[0], render.Combined(parts[1], parts[2]))

	left := buildString(t, flat, render.EmptyDict())
	right := buildString(t, nested, render.EmptyDict())
	if left != right || left != "abc" {
		t.Fatalf("associativity broken: %q vs %q", left, right)
	}
}

func attrsProducer(attrs map[string]string) value.Value {
	return value.NewFunc(1, func(...any) (any, error) {
		return attrs, nil
	})
}

func contentProducer(content fragment.Fragment) value.Value {
	return value.NewFunc(1, func(...any) (any, error) {
		return content, nil
	})
}

func TestTagged_AppliesProducersToDict(t *testing.T) {
	var seen render.Dict
	attrs := value.NewFunc(1, func(args ...any) (any, error) {
		seen = args[0].(render.Dict)
		return map[string]string{"name": seen.FieldValue("who"), "type": "text"}, nil
	})

	b := render.Tagged("input", attrs, contentProducer(nil))
	dict := render.NewDict(map[string][]string{"who": {"ada"}}, value.NewPlain(nil))

	got := buildString(t, b, dict)
	if got != `<input name="ada" type="text" />` {
		t.Fatalf("tagged output mismatch: got %q", got)
	}
	if seen.FieldValue("who") != "ada" {
		t.Fatal("producer did not receive the dict")
	}
}

func TestTagged_ProducerMustSettle(t *testing.T) {
	greedy := value.NewFunc(2, func(...any) (any, error) { return nil, nil })

	b := render.Tagged("div", greedy, contentProducer(fragment.Text("x")))
	if _, err := b.BuildWith(render.EmptyDict()); !errors.Is(err, render.ErrBuilderContract) {
		t.Fatalf("want ErrBuilderContract, got %v", err)
	}
}

func TestTagged_ErroringProducerViolatesContract(t *testing.T) {
	failing := value.NewFunc(1, func(...any) (any, error) {
		return nil, fmt.Errorf("%w: boom", errProducer)
	}).CatchKind(errProducer)

	b := render.Tagged("div", failing, contentProducer(nil))
	if _, err := b.BuildWith(render.EmptyDict()); !errors.Is(err, render.ErrBuilderContract) {
		t.Fatalf("want ErrBuilderContract, got %v", err)
	}
}

var errProducer = errors.New("producer failed")

type stubProvider struct {
	frag  fragment.Fragment
	err   error
	dicts []render.Dict
	names []string
}

func (s *stubProvider) Fragment(dict render.Dict, field string) (fragment.Fragment, error) {
	s.dicts = append(s.dicts, dict)
	s.names = append(s.names, field)
	return s.frag, s.err
}

func TestDelegate_ForwardsDictAndField(t *testing.T) {
	provider := &stubProvider{frag: fragment.Text("sub")}
	b := render.Delegate(provider, "address")

	got := buildString(t, b, render.EmptyDict())
	if got != "sub" {
		t.Fatalf("delegate output mismatch: got %q", got)
	}
	if len(provider.names) != 1 || provider.names[0] != "address" {
		t.Fatalf("field name not forwarded: %v", provider.names)
	}
}

func TestDelegate_NilFragmentViolatesContract(t *testing.T) {
	b := render.Delegate(&stubProvider{}, "address")
	if _, err := b.BuildWith(render.EmptyDict()); !errors.Is(err, render.ErrInvalidFragment) {
		t.Fatalf("want ErrInvalidFragment, got %v", err)
	}
}

func TestBuild_EqualsBuildWithEmptyDict(t *testing.T) {
	b := render.Combine(
		render.ConstText("a"),
		render.Tagged("span", attrsProducer(nil), contentProducer(fragment.Text("b"))),
	)

	viaEmpty, err := render.Build(b)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	viaDict := buildString(t, b, render.EmptyDict())
	if viaEmpty.String() != viaDict {
		t.Fatalf("pristine render mismatch: %q vs %q", viaEmpty.String(), viaDict)
	}
}
