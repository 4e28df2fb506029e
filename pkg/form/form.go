// Package form is the public facade wiring fields to the value algebra and
// the builder tree: it assigns identifiers, evaluates submissions, and
// renders the result with per-field errors in place.
package form

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-formval/pkg/fragment"
	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/value"
)

// Classes holds the CSS class hooks the built-in field renderer emits.
type Classes struct {
	Form       string
	Field      string
	FieldError string
	Label      string
	Input      string
	Help       string
	Errors     string
}

// DefaultClasses returns the class names used when no theme overrides them.
func DefaultClasses() Classes {
	return Classes{
		Form:       "fv-form",
		Field:      "fv-field",
		FieldError: "fv-field--error",
		Label:      "fv-label",
		Input:      "fv-input",
		Help:       "fv-help",
		Errors:     "fv-errors",
	}
}

// Option customises a form at construction time.
type Option func(*Form)

// WithAction sets the form action URL.
func WithAction(action string) Option {
	return func(f *Form) { f.action = action }
}

// WithMethod overrides the submit method. Defaults to POST.
func WithMethod(method string) Option {
	return func(f *Form) { f.method = method }
}

// WithIDPrefix changes the prefix used when deriving field identifiers.
func WithIDPrefix(prefix string) Option {
	return func(f *Form) { f.idPrefix = prefix }
}

// WithClasses replaces the rendered CSS class hooks.
func WithClasses(classes Classes) Option {
	return func(f *Form) { f.classes = classes }
}

// WithStyleVars attaches CSS custom properties to the form element, the hook
// theme tokens resolve into.
func WithStyleVars(vars map[string]string) Option {
	return func(f *Form) {
		if len(vars) == 0 {
			return
		}
		if f.styleVars == nil {
			f.styleVars = make(map[string]string, len(vars))
		}
		for name, val := range vars {
			f.styleVars[name] = val
		}
	}
}

// WithHiddenFields merges hidden inputs (CSRF tokens and friends) into the
// form. Later fields win on name collisions.
func WithHiddenFields(fields ...HiddenField) Option {
	return func(f *Form) {
		f.hidden = MergeHiddenFields(f.hidden, fields...)
	}
}

type mount struct {
	name     string
	provider render.FragmentProvider
}

// Form combines per-field builder/value pairs structurally. Definitions are
// assembled once and reused across submissions.
type Form struct {
	name      string
	action    string
	method    string
	idPrefix  string
	classes   Classes
	styleVars map[string]string
	hidden    map[string]string
	fields    []Field
	mounts    []mount
}

// New constructs a named form applying any provided options.
func New(name string, options ...Option) *Form {
	f := &Form{
		name:     name,
		method:   "post",
		idPrefix: name,
		classes:  DefaultClasses(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Name returns the form name.
func (f *Form) Name() string { return f.name }

// Fields returns a copy of the field definitions in declaration order.
func (f *Form) Fields() []Field {
	out := make([]Field, len(f.fields))
	copy(out, f.fields)
	return out
}

// Add appends a field definition. Returns the form for chaining.
func (f *Form) Add(field Field) *Form {
	f.fields = append(f.fields, field)
	return f
}

// Mount attaches an external fragment provider under the given field name;
// rendering delegates to it with the current dict.
func (f *Form) Mount(name string, provider render.FragmentProvider) *Form {
	f.mounts = append(f.mounts, mount{name: name, provider: provider})
	return f
}

// FieldID derives the identifier a field's errors are routed by.
func (f *Form) FieldID(name string) string {
	if f.idPrefix == "" {
		return name
	}
	return f.idPrefix + "-" + name
}

// Render produces the pristine markup, before anything was submitted.
func (f *Form) Render() (string, error) {
	return f.RenderWith(render.EmptyDict())
}

// RenderWith produces markup for an already-computed submission view.
func (f *Form) RenderWith(dict render.Dict) (string, error) {
	frag, err := f.builder().BuildWith(dict)
	if err != nil {
		return "", fmt.Errorf("form %q: render: %w", f.name, err)
	}
	return frag.String(), nil
}

// Result is the materialized outcome of one submission.
type Result struct {
	Valid  bool
	Values map[string]any
	Errors map[string][]string
	HTML   string
	Dict   render.Dict
}

// Submit evaluates raw input against the field validators, derives the
// submission view, and re-renders the form with input echoed and errors in
// place. Validation failures are data, not errors; the error return is
// reserved for construction defects and unreified operation failures.
func (f *Form) Submit(values map[string][]string) (*Result, error) {
	result, err := f.evaluate(values)
	if err != nil {
		return nil, fmt.Errorf("form %q: evaluate: %w", f.name, err)
	}

	dict := render.NewDict(values, result)
	html, err := f.RenderWith(dict)
	if err != nil {
		return nil, err
	}

	out := &Result{
		Valid:  !result.IsError(),
		Errors: dict.Errors,
		HTML:   html,
		Dict:   dict,
	}
	if out.Valid {
		payload, err := result.Get()
		if err != nil {
			return nil, fmt.Errorf("form %q: read result: %w", f.name, err)
		}
		if fields, ok := payload.(map[string]any); ok {
			out.Values = fields
		}
	}
	return out, nil
}

// SubmitRequest extracts the POST body from the request and submits it.
func (f *Form) SubmitRequest(r *http.Request) (*Result, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("form %q: parse request: %w", f.name, err)
	}
	return f.Submit(r.PostForm)
}

// evaluate applies the submitted raw values to the per-field validator
// funcs, settles each, and binds the settled values into a form-level
// combining call. The combiner carries no origin, so its aggregate failure
// never shows up in the per-field error map; the walked tree supplies the
// specific messages.
func (f *Form) evaluate(values map[string][]string) (value.Value, error) {
	fields := f.fields
	combine := value.NewFunc(len(fields), f.collectOp())

	var current value.Value = combine
	for _, field := range fields {
		id := f.FieldID(field.Name)
		raw := ""
		if vs := values[field.Name]; len(vs) > 0 {
			raw = vs[0]
		}

		bound, err := field.valueFunc(id).Apply(value.NewPlainAt(raw, id))
		if err != nil {
			return nil, fmt.Errorf("bind field %q: %w", field.Name, err)
		}
		settled, err := value.Settle(bound)
		if err != nil {
			return nil, fmt.Errorf("validate field %q: %w", field.Name, err)
		}

		current, err = current.Apply(settled)
		if err != nil {
			return nil, fmt.Errorf("combine field %q: %w", field.Name, err)
		}
	}
	return value.Settle(current)
}

// collectOp gathers validated payloads into a map keyed by field name,
// matching the bound order of the combining call.
func (f *Form) collectOp() value.Operation {
	names := make([]string, len(f.fields))
	for i, field := range f.fields {
		names[i] = field.Name
	}
	return func(args ...any) (any, error) {
		if len(args) != len(names) {
			return nil, fmt.Errorf("form: expected %d field values, got %d", len(names), len(args))
		}
		out := make(map[string]any, len(args))
		for i, payload := range args {
			out[names[i]] = payload
		}
		return out, nil
	}
}

// builder assembles the rendering tree mirroring the field structure.
func (f *Form) builder() render.Builder {
	parts := make([]render.Builder, 0, len(f.fields)+len(f.mounts)+1)

	if len(f.hidden) > 0 {
		hiddenFrags := make([]fragment.Fragment, 0, len(f.hidden))
		for _, hf := range SortedHiddenFields(f.hidden) {
			hiddenFrags = append(hiddenFrags, fragment.Tag("input", map[string]string{
				"type":  "hidden",
				"name":  hf.Name,
				"value": hf.Value,
			}))
		}
		parts = append(parts, render.Const(fragment.Concat(hiddenFrags...)))
	}

	for _, field := range f.fields {
		parts = append(parts, field.builder(f.FieldID(field.Name), f.classes))
	}
	for _, m := range f.mounts {
		parts = append(parts, render.Delegate(m.provider, m.name))
	}
	inner := render.Combine(parts...)

	attrs := value.NewFunc(1, func(...any) (any, error) {
		out := map[string]string{
			"name":   f.name,
			"method": f.method,
			"class":  f.classes.Form,
		}
		if f.action != "" {
			out["action"] = f.action
		}
		if style := styleVarsAttr(f.styleVars); style != "" {
			out["style"] = style
		}
		return out, nil
	})
	content := value.NewFunc(1, func(args ...any) (any, error) {
		dict, err := dictArg(args)
		if err != nil {
			return nil, err
		}
		return inner.BuildWith(dict)
	})

	return render.Tagged("form", attrs, content)
}
