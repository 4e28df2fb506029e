// Package formval builds HTML forms whose validation and rendering share one
// definition. Field validators run through an applicative value algebra, so
// a failed submission re-renders the same form with its errors in place, and
// the same definition can drive a terminal questionnaire.
package formval

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formval/pkg/form"
	"github.com/goliatone/go-formval/pkg/form/validators"
	"github.com/goliatone/go-formval/pkg/formspec"
	"github.com/goliatone/go-formval/pkg/openapi"
	"github.com/goliatone/go-formval/pkg/prompt"
)

// Form is the central type: fields plus rendering and submission behavior.
type Form = form.Form

// Field describes one input of a form.
type Field = form.Field

// Choice is one option of a select field.
type Choice = form.Choice

// Result carries the outcome of a submission: validity, converted values,
// per-field messages, and the re-rendered HTML.
type Result = form.Result

// Option customises a form at construction time.
type Option = form.Option

// Validator converts or rejects a single raw input.
type Validator = validators.Validator

// New constructs an empty named form.
func New(name string, options ...Option) *Form {
	return form.New(name, options...)
}

// FromSpecFS loads declarative form definitions (YAML or JSON) from the
// filesystem and builds the named one, resolving validator names against the
// default registry.
func FromSpecFS(fsys fs.FS, name string, options ...Option) (*Form, error) {
	set, err := formspec.LoadFS(fsys)
	if err != nil {
		return nil, err
	}
	return set.Build(name, nil, options...)
}

// FromOpenAPI derives a form from an OpenAPI document's request body schema
// for the given operation.
func FromOpenAPI(ctx context.Context, doc []byte, operationID string, options ...Option) (*Form, error) {
	return openapi.FormFromData(ctx, doc, operationID, openapi.Options{}, options...)
}

// Fill runs the form as an interactive terminal questionnaire, re-asking
// fields that fail validation.
func Fill(ctx context.Context, f *Form, options ...prompt.Option) (*Result, error) {
	return prompt.NewFiller(options...).Fill(ctx, f)
}

// Validators returns the shared validator registry so applications can add
// their own named validators before loading specs.
func Validators() *validators.Registry {
	return validators.Default()
}
