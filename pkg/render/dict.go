// Package render derives the per-submission view a builder tree consumes: a
// dict echoing the raw input back and mapping field origins to the error
// messages collected from an evaluated value tree.
package render

import "github.com/goliatone/go-formval/pkg/value"

// Dict is the read-only view computed once per submission. Values echoes
// the caller-supplied input verbatim; Errors maps each field origin to its
// messages in discovery order; Empty marks the distinguished pristine
// instance used before anything was submitted.
type Dict struct {
	Values map[string][]string
	Errors map[string][]string
	Empty  bool
}

// NewDict builds the submission view from the raw input mapping and the
// evaluated result. The result tree is walked structurally; nothing is
// forced to evaluate just to collect errors.
func NewDict(values map[string][]string, result value.Value) Dict {
	errs := make(map[string][]string)
	collectErrors(result, errs)
	if values == nil {
		values = map[string][]string{}
	}
	return Dict{Values: values, Errors: errs}
}

// EmptyDict returns the pristine instance: no input, no errors.
func EmptyDict() Dict {
	return Dict{
		Values: map[string][]string{},
		Errors: map[string][]string{},
		Empty:  true,
	}
}

// FieldValue returns the first submitted value for the origin, or the empty
// string when nothing was submitted under that name.
func (d Dict) FieldValue(origin string) string {
	if vs := d.Values[origin]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// FieldErrors returns the collected messages for the origin in discovery
// order.
func (d Dict) FieldErrors(origin string) []string {
	return d.Errors[origin]
}

// collectErrors is a pure structural fold over the value tree. Error values
// contribute their reason under their origin and are then walked into their
// replaced original, since sibling argument failures hide underneath.
// Funcs are walked over their bound arguments regardless of satisfied
// state; plain values are terminal.
func collectErrors(v value.Value, acc map[string][]string) {
	switch node := v.(type) {
	case *value.ErrorValue:
		if origin := node.Origin(); origin != "" {
			if reason, err := node.ErrorReason(); err == nil {
				acc[origin] = append(acc[origin], reason)
			}
		}
		if original := node.Original(); original != nil {
			collectErrors(original, acc)
		}
	case *value.Func:
		for _, arg := range node.BoundArgs() {
			collectErrors(arg, acc)
		}
	}
}
