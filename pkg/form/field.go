package form

import (
	"fmt"

	"github.com/goliatone/go-formval/pkg/form/validators"
	"github.com/goliatone/go-formval/pkg/fragment"
	"github.com/goliatone/go-formval/pkg/render"
	"github.com/goliatone/go-formval/pkg/value"
)

// Widget names understood by the built-in field renderer.
const (
	WidgetInput    = "input"
	WidgetPassword = "password"
	WidgetTextarea = "textarea"
	WidgetSelect   = "select"
	WidgetCheckbox = "checkbox"
	WidgetHidden   = "hidden"
)

// Choice is one option of a select widget.
type Choice struct {
	Value string
	Label string
}

// Field describes one named input: how it renders and how its raw value is
// validated. The zero widget renders as a text input.
type Field struct {
	Name        string
	Label       string
	Widget      string
	Type        string
	Placeholder string
	Help        string
	Required    bool
	Choices     []Choice
	Validators  []validators.Validator
}

func (f Field) widget() string {
	if f.Widget == "" {
		return WidgetInput
	}
	return f.Widget
}

func (f Field) inputType() string {
	if f.Type != "" {
		return f.Type
	}
	switch f.widget() {
	case WidgetPassword:
		return "password"
	case WidgetCheckbox:
		return "checkbox"
	case WidgetHidden:
		return "hidden"
	default:
		return "text"
	}
}

// valueFunc builds the curried validator call for the field, tagged with the
// field id so failures route back to it and reifying validation failures
// into error values. Required fields lead with the required check; optional
// fields let blank input through untouched.
func (f Field) valueFunc(id string) *value.Func {
	var op value.Operation
	if f.Required {
		chain := make([]validators.Validator, 0, len(f.Validators)+1)
		chain = append(chain, validators.Required())
		chain = append(chain, f.Validators...)
		op = validators.Chain(chain...)
	} else {
		op = validators.OptionalChain(f.Validators...)
	}
	return value.NewFunc(1, op,
		value.WithOrigin(id),
		value.WithReifiedKind(validators.ErrValidation),
	)
}

// builder assembles the field's rendering node: a tagged wrapper whose
// content producer derives label, control, and error list from the dict.
func (f Field) builder(id string, classes Classes) render.Builder {
	attrs := value.NewFunc(1, func(args ...any) (any, error) {
		dict, err := dictArg(args)
		if err != nil {
			return nil, err
		}
		wrapper := map[string]string{"class": classes.Field}
		if len(dict.FieldErrors(id)) > 0 {
			wrapper["class"] = joinClasses(classes.Field, classes.FieldError)
		}
		return wrapper, nil
	})

	content := value.NewFunc(1, func(args ...any) (any, error) {
		dict, err := dictArg(args)
		if err != nil {
			return nil, err
		}
		parts := []fragment.Fragment{}
		if f.widget() != WidgetHidden && f.Label != "" {
			parts = append(parts, fragment.Tag("label",
				map[string]string{"for": id, "class": classes.Label},
				fragment.Text(f.Label)))
		}
		parts = append(parts, f.control(id, classes, dict))
		if f.Help != "" {
			parts = append(parts, fragment.Tag("small",
				map[string]string{"class": classes.Help},
				fragment.Text(f.Help)))
		}
		if errs := dict.FieldErrors(id); len(errs) > 0 {
			items := make([]fragment.Fragment, 0, len(errs))
			for _, msg := range errs {
				items = append(items, fragment.Tag("li", nil, fragment.Text(msg)))
			}
			parts = append(parts, fragment.Tag("ul",
				map[string]string{"class": classes.Errors},
				items...))
		}
		return fragment.Concat(parts...), nil
	})

	return render.Tagged("div", attrs, content)
}

// control renders the widget itself, echoing the submitted raw value back.
func (f Field) control(id string, classes Classes, dict render.Dict) fragment.Fragment {
	raw := dict.FieldValue(f.Name)

	switch f.widget() {
	case WidgetTextarea:
		attrs := f.baseAttrs(id, classes)
		delete(attrs, "type")
		delete(attrs, "value")
		return fragment.Tag("textarea", attrs, fragment.Text(raw))

	case WidgetSelect:
		attrs := f.baseAttrs(id, classes)
		delete(attrs, "type")
		delete(attrs, "value")
		delete(attrs, "placeholder")
		options := make([]fragment.Fragment, 0, len(f.Choices))
		for _, choice := range f.Choices {
			optAttrs := map[string]string{"value": choice.Value}
			if !dict.Empty && choice.Value == raw {
				optAttrs["selected"] = "selected"
			}
			options = append(options, fragment.Tag("option", optAttrs, fragment.Text(choice.Label)))
		}
		return fragment.Tag("select", attrs, options...)

	case WidgetCheckbox:
		attrs := f.baseAttrs(id, classes)
		attrs["value"] = "on"
		delete(attrs, "placeholder")
		if raw != "" {
			attrs["checked"] = "checked"
		}
		return fragment.Tag("input", attrs)

	default:
		attrs := f.baseAttrs(id, classes)
		if raw != "" {
			attrs["value"] = raw
		}
		return fragment.Tag("input", attrs)
	}
}

func (f Field) baseAttrs(id string, classes Classes) map[string]string {
	attrs := map[string]string{
		"id":    id,
		"name":  f.Name,
		"type":  f.inputType(),
		"class": classes.Input,
	}
	if f.Placeholder != "" {
		attrs["placeholder"] = f.Placeholder
	}
	if f.Required {
		attrs["required"] = "required"
	}
	return attrs
}

func dictArg(args []any) (render.Dict, error) {
	if len(args) != 1 {
		return render.Dict{}, fmt.Errorf("form: producer expects the dict, got %d arguments", len(args))
	}
	dict, ok := args[0].(render.Dict)
	if !ok {
		return render.Dict{}, fmt.Errorf("form: producer expects the dict, got %T", args[0])
	}
	return dict, nil
}

func joinClasses(classes ...string) string {
	out := ""
	for _, class := range classes {
		if class == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += class
	}
	return out
}
