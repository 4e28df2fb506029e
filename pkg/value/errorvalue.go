package value

// ErrorValue marks a failed computation. It keeps a non-owning reference to
// the value it replaced so provenance survives; the reference is only ever
// read during error collection, never mutated, and cannot form a cycle since
// error values are only constructed, never patched in place.
type ErrorValue struct {
	reason   string
	original Value
}

// NewError wraps the value a failure replaced. The reason is the
// user-facing message routed back to the origin field.
func NewError(reason string, original Value) *ErrorValue {
	return &ErrorValue{reason: reason, original: original}
}

// Apply absorbs the argument: the first failure along an evaluation path
// propagates unchanged without invoking further computation.
func (e *ErrorValue) Apply(Value) (Value, error) {
	return e, nil
}

// Get fails with ErrGetOnError; an error value never yields a payload.
func (e *ErrorValue) Get() (any, error) {
	return nil, ErrGetOnError
}

// IsApplicable reports true: an error value is never a final usable value,
// so it stays "pending" to block a premature Get.
func (e *ErrorValue) IsApplicable() bool { return true }

// IsError reports true.
func (e *ErrorValue) IsError() bool { return true }

// ErrorReason returns the failure message.
func (e *ErrorValue) ErrorReason() (string, error) {
	return e.reason, nil
}

// Origin reports the origin of the value the error replaced.
func (e *ErrorValue) Origin() string {
	if e.original == nil {
		return ""
	}
	return e.original.Origin()
}

// Original returns the value the failure replaced.
func (e *ErrorValue) Original() Value { return e.original }
