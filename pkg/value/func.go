package value

import (
	"errors"
	"fmt"
	"sync"
)

// aggregateReason is the generic message attached when a call sees erroring
// arguments. Field-level detail is recovered separately by walking the tree,
// so the aggregate stays deliberately unspecific.
const aggregateReason = "arguments contain errors"

// Func is the curried variant: an operation plus the arguments bound so far.
// The zero arity state is "satisfied"; its result is computed at most once
// and cached on the instance.
type Func struct {
	arity  int
	op     Operation
	args   []Value
	reify  []error
	origin string

	once      sync.Once
	cached    Value
	cachedErr error
}

// FuncOption configures a Func at construction time.
type FuncOption func(*Func)

// WithOrigin tags the func (and the plain results it produces) with a field
// identifier so failures can be routed back to that field.
func WithOrigin(origin string) FuncOption {
	return func(f *Func) {
		f.origin = origin
	}
}

// WithReifiedKind pre-registers an error kind that evaluation converts into
// an error value instead of failing hard. Equivalent to calling CatchKind
// after construction.
func WithReifiedKind(kind error) FuncOption {
	return func(f *Func) {
		if kind != nil {
			f.reify = append(f.reify, kind)
		}
	}
}

// NewFunc builds a curried value around op expecting arity arguments.
// Arity must not be negative and op must not be nil.
func NewFunc(arity int, op Operation, options ...FuncOption) *Func {
	if arity < 0 {
		panic(fmt.Sprintf("value: negative arity %d", arity))
	}
	if op == nil {
		panic("value: nil operation")
	}
	f := &Func{arity: arity, op: op}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// CatchKind returns a copy of the func whose evaluation converts errors
// matching kind (via errors.Is) into error values. The receiver is left
// untouched and the copy starts with an empty result cache.
func (f *Func) CatchKind(kind error) *Func {
	next := f.derive(f.arity, f.args)
	if kind != nil {
		next.reify = append(next.reify, kind)
	}
	return next
}

// Arity reports how many arguments the func still expects.
func (f *Func) Arity() int { return f.arity }

// BoundArgs returns a copy of the arguments bound so far, in bound order.
func (f *Func) BoundArgs() []Value {
	if len(f.args) == 0 {
		return nil
	}
	out := make([]Value, len(f.args))
	copy(out, f.args)
	return out
}

// Apply binds one argument. With arguments still missing the call returns a
// new func with the argument appended; once satisfied the call delegates to
// the result, so results that are themselves callable keep accepting input.
func (f *Func) Apply(arg Value) (Value, error) {
	if f.arity == 0 {
		res, err := f.Result()
		if err != nil {
			return nil, err
		}
		return res.Apply(arg)
	}
	args := make([]Value, len(f.args)+1)
	copy(args, f.args)
	args[len(f.args)] = arg
	return f.derive(f.arity-1, args), nil
}

// Get returns the payload once the func is satisfied and its result settled
// to a plain value. While arguments are missing it fails with ErrNotAValue.
func (f *Func) Get() (any, error) {
	if f.arity > 0 {
		return nil, ErrNotAValue
	}
	res, err := f.Result()
	if err != nil {
		return nil, err
	}
	return res.Get()
}

// IsApplicable reports true while arguments are missing and otherwise
// delegates to the result. A hard evaluation failure also reports true so
// the value is never mistaken for a usable payload.
func (f *Func) IsApplicable() bool {
	if f.arity > 0 {
		return true
	}
	res, err := f.Result()
	if err != nil {
		return true
	}
	return res.IsApplicable()
}

// IsError delegates to the result once satisfied; an unsatisfied func is not
// an error.
func (f *Func) IsError() bool {
	if f.arity > 0 {
		return false
	}
	res, err := f.Result()
	if err != nil {
		return false
	}
	return res.IsError()
}

// ErrorReason delegates to the result once satisfied.
func (f *Func) ErrorReason() (string, error) {
	if f.arity > 0 {
		return "", ErrNotAnError
	}
	res, err := f.Result()
	if err != nil {
		return "", err
	}
	return res.ErrorReason()
}

// Origin returns the field identifier the func is tagged with.
func (f *Func) Origin() string { return f.origin }

// Result evaluates a satisfied func. The result, or the hard failure that
// interrupted it, is computed exactly once per instance; repeated calls
// observe the cached outcome without re-invoking the operation.
func (f *Func) Result() (Value, error) {
	if f.arity > 0 {
		return nil, ErrNotAValue
	}
	f.once.Do(func() {
		f.cached, f.cachedErr = f.eval()
	})
	return f.cached, f.cachedErr
}

func (f *Func) eval() (Value, error) {
	// Scan every argument before deciding: errors must not short-circuit
	// the scan, and an argument that still expects input blocks the call
	// entirely.
	sawError := false
	for _, arg := range f.args {
		if arg.IsError() {
			sawError = true
			continue
		}
		if arg.IsApplicable() {
			return nil, ErrNotAValue
		}
	}
	if sawError {
		return NewError(aggregateReason, f), nil
	}

	payloads := make([]any, len(f.args))
	for i, arg := range f.args {
		payload, err := arg.Get()
		if err != nil {
			return nil, fmt.Errorf("value: unwrap argument %d: %w", i, err)
		}
		payloads[i] = payload
	}

	out, err := f.op(payloads...)
	if err != nil {
		if f.reifies(err) {
			return NewError(err.Error(), f), nil
		}
		return nil, err
	}
	if v, ok := out.(Value); ok {
		return v, nil
	}
	return NewPlainAt(out, f.origin), nil
}

func (f *Func) reifies(err error) bool {
	for _, kind := range f.reify {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// derive copies the structural fields into a fresh instance with an empty
// result cache.
func (f *Func) derive(arity int, args []Value) *Func {
	reify := make([]error, len(f.reify))
	copy(reify, f.reify)
	return &Func{
		arity:  arity,
		op:     f.op,
		args:   args,
		reify:  reify,
		origin: f.origin,
	}
}
