// Package value implements the applicative value algebra that form
// evaluation is built on. A Value is one of three variants: a Plain payload,
// a curried Func awaiting arguments, or an ErrorValue marking a failed
// computation. Values are immutable; Apply and CatchKind always return new
// instances, so the same partially applied Func can be reused across
// branches safely.
package value

import "errors"

var (
	// ErrNotAValue is returned by Get when the value still expects
	// arguments and therefore has no payload yet.
	ErrNotAValue = errors.New("value: not a value yet, arguments missing")
	// ErrGetOnError is returned by Get on an error value; error values
	// never yield a payload.
	ErrGetOnError = errors.New("value: get called on an error value")
	// ErrNotApplicable is returned by Apply on a plain value; plain values
	// are never callable.
	ErrNotApplicable = errors.New("value: plain value is not applicable")
	// ErrNotAnError is returned by ErrorReason on values that are not
	// error values.
	ErrNotAnError = errors.New("value: value is not an error")
)

// Operation is the callable bound into a Func. Arguments arrive unwrapped,
// in bound order. A returned error that matches one of the Func's reified
// kinds becomes an ErrorValue; any other error surfaces to the caller as a
// hard failure.
type Operation func(args ...any) (any, error)

// Value is the closed interface over the three variants. Implementations
// outside this package are not supported; evaluation and error collection
// rely on the variant set being fixed.
type Value interface {
	// Apply supplies one argument. Plain values fail with
	// ErrNotApplicable, error values absorb the argument and return
	// themselves, and funcs bind the argument into a new instance.
	Apply(arg Value) (Value, error)
	// Get returns the payload of a plain value or of a satisfied func
	// whose result settled to a plain value.
	Get() (any, error)
	// IsApplicable reports whether the value still expects input. Error
	// values report true so a premature Get is blocked.
	IsApplicable() bool
	// IsError reports whether the value settled to an error value.
	IsError() bool
	// ErrorReason returns the failure reason of an error value and
	// ErrNotAnError for everything else.
	ErrorReason() (string, error)
	// Origin is the identifier of the form field this value belongs to,
	// or the empty string when the value is unattributed.
	Origin() string
}

// Plain is the terminal variant wrapping an arbitrary payload.
type Plain struct {
	payload any
	origin  string
}

// NewPlain wraps a payload in a plain value without an origin.
func NewPlain(payload any) *Plain {
	return &Plain{payload: payload}
}

// NewPlainAt wraps a payload in a plain value tagged with the given origin.
func NewPlainAt(payload any, origin string) *Plain {
	return &Plain{payload: payload, origin: origin}
}

// Apply fails: a plain value is never callable.
func (p *Plain) Apply(Value) (Value, error) {
	return nil, ErrNotApplicable
}

// Get returns the wrapped payload.
func (p *Plain) Get() (any, error) {
	return p.payload, nil
}

// IsApplicable reports false; plain values are final.
func (p *Plain) IsApplicable() bool { return false }

// IsError reports false.
func (p *Plain) IsError() bool { return false }

// ErrorReason fails with ErrNotAnError.
func (p *Plain) ErrorReason() (string, error) {
	return "", ErrNotAnError
}

// Origin returns the field identifier the value is tagged with.
func (p *Plain) Origin() string { return p.origin }

// Settle forces a satisfied func down to its result so the settled value can
// be bound as an argument elsewhere. Plain and error values pass through
// unchanged, as do funcs that still expect arguments. A hard failure inside
// the forced evaluation is returned as-is.
func Settle(v Value) (Value, error) {
	fn, ok := v.(*Func)
	if !ok || fn.arity > 0 {
		return v, nil
	}
	res, err := fn.Result()
	if err != nil {
		return nil, err
	}
	return Settle(res)
}
