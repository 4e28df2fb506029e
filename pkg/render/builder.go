package render

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formval/pkg/fragment"
	"github.com/goliatone/go-formval/pkg/value"
)

var (
	// ErrBuilderContract signals a tagged builder whose attribute or
	// content producer did not settle after receiving the dict. Producers
	// are defined to take exactly one argument, so anything else is a
	// defect in form construction.
	ErrBuilderContract = errors.New("render: producer did not settle after receiving the dict")
	// ErrInvalidFragment signals a delegate that returned no usable
	// fragment.
	ErrInvalidFragment = errors.New("render: delegate returned an invalid fragment")
)

// Builder is a node in the rendering expression tree. Builders are built
// once at form definition time and reused across renders with different
// dicts.
type Builder interface {
	BuildWith(dict Dict) (fragment.Fragment, error)
}

// Build renders the tree along the no-submission path, equivalent to
// BuildWith with the pristine dict.
func Build(b Builder) (fragment.Fragment, error) {
	return b.BuildWith(EmptyDict())
}

// FragmentProvider is the delegate contract: externally composed sub-forms
// render themselves given the dict and the field they were mounted under.
type FragmentProvider interface {
	Fragment(dict Dict, field string) (fragment.Fragment, error)
}

type constBuilder struct {
	content fragment.Fragment
}

// Const returns a builder with fixed output that ignores the dict.
func Const(content fragment.Fragment) Builder {
	return constBuilder{content: content}
}

// ConstText returns a builder rendering the escaped literal.
func ConstText(literal string) Builder {
	return constBuilder{content: fragment.Text(literal)}
}

func (c constBuilder) BuildWith(Dict) (fragment.Fragment, error) {
	if c.content == nil {
		return fragment.Empty(), nil
	}
	return c.content, nil
}

type combined struct {
	left, right Builder
}

// Combined concatenates two sub-builders, left before right.
func Combined(left, right Builder) Builder {
	return combined{left: left, right: right}
}

// Combine folds any number of builders left to right.
func Combine(builders ...Builder) Builder {
	var out Builder = constBuilder{}
	for i, b := range builders {
		if b == nil {
			continue
		}
		if i == 0 {
			out = b
			continue
		}
		out = combined{left: out, right: b}
	}
	return out
}

func (c combined) BuildWith(dict Dict) (fragment.Fragment, error) {
	left, err := c.left.BuildWith(dict)
	if err != nil {
		return nil, err
	}
	right, err := c.right.BuildWith(dict)
	if err != nil {
		return nil, err
	}
	return fragment.Concat(left, right), nil
}

type tagged struct {
	tag     string
	attrs   value.Value
	content value.Value
}

// Tagged applies the attribute and content producers to the dict wrapped as
// a plain value and assembles the resulting tag. Both producers must settle
// after that single application.
func Tagged(tag string, attrs, content value.Value) Builder {
	return tagged{tag: tag, attrs: attrs, content: content}
}

func (t tagged) BuildWith(dict Dict) (fragment.Fragment, error) {
	attrs, err := produce[map[string]string](t.attrs, dict, "attributes")
	if err != nil {
		return nil, err
	}
	content, err := produce[fragment.Fragment](t.content, dict, "content")
	if err != nil {
		return nil, err
	}
	return fragment.Tag(t.tag, attrs, content), nil
}

// produce runs one producer against the dict and narrows the payload.
func produce[T any](producer value.Value, dict Dict, role string) (T, error) {
	var zero T
	applied, err := producer.Apply(value.NewPlain(dict))
	if err != nil {
		return zero, fmt.Errorf("render: apply %s producer: %w", role, err)
	}
	if applied.IsError() {
		reason, _ := applied.ErrorReason()
		return zero, fmt.Errorf("render: %s producer failed: %s: %w", role, reason, ErrBuilderContract)
	}
	if applied.IsApplicable() {
		return zero, fmt.Errorf("render: %s producer: %w", role, ErrBuilderContract)
	}
	payload, err := applied.Get()
	if err != nil {
		return zero, fmt.Errorf("render: read %s producer result: %w", role, err)
	}
	if payload == nil {
		return zero, nil
	}
	out, ok := payload.(T)
	if !ok {
		return zero, fmt.Errorf("render: %s producer returned %T", role, payload)
	}
	return out, nil
}

type delegate struct {
	target FragmentProvider
	field  string
}

// Delegate forwards rendering to an external provider, passing the dict and
// the field the provider was mounted under.
func Delegate(target FragmentProvider, field string) Builder {
	return delegate{target: target, field: field}
}

func (d delegate) BuildWith(dict Dict) (fragment.Fragment, error) {
	if d.target == nil {
		return nil, ErrInvalidFragment
	}
	frag, err := d.target.Fragment(dict, d.field)
	if err != nil {
		return nil, fmt.Errorf("render: delegate %q: %w", d.field, err)
	}
	if frag == nil {
		return nil, fmt.Errorf("render: delegate %q: %w", d.field, ErrInvalidFragment)
	}
	return frag, nil
}
