// Package openapi derives form definitions from OpenAPI documents: the
// request body schema of an operation maps onto fields, with schema
// constraints resolved into validators.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formval/pkg/form"
	"github.com/goliatone/go-formval/pkg/form/validators"
)

// Options configures document loading.
type Options struct {
	// ResolveReferences validates the document and follows $ref targets.
	ResolveReferences bool
}

// FormFromData loads an OpenAPI document from raw bytes and derives a form
// for the request body of the identified operation.
func FormFromData(ctx context.Context, data []byte, operationID string, opts Options, formOptions ...form.Option) (*form.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: opts.ResolveReferences,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if opts.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	operation, path, err := findOperation(spec, operationID)
	if err != nil {
		return nil, err
	}

	schema := requestSchema(operation)
	if schema == nil {
		return nil, fmt.Errorf("openapi: operation %q has no usable request schema", operationID)
	}

	fields, err := fieldsFromSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}

	options := append([]form.Option{form.WithAction(path)}, formOptions...)
	built := form.New(operationID, options...)
	for _, field := range fields {
		built.Add(field)
	}
	return built, nil
}

func findOperation(spec *openapi3.T, operationID string) (*openapi3.Operation, string, error) {
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, "", errors.New("openapi: document does not contain any paths")
	}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete, item.Patch,
		} {
			if op != nil && op.OperationID == operationID {
				return op, path, nil
			}
		}
	}
	return nil, "", fmt.Errorf("openapi: operation %q not found", operationID)
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{
		"application/x-www-form-urlencoded", "application/json", "multipart/form-data",
	} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldsFromSchema(schema *openapi3.Schema) ([]form.Field, error) {
	if len(schema.Properties) == 0 {
		return nil, errors.New("request schema declares no properties")
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	// Property maps iterate in random order; sort so the derived form is
	// stable across runs.
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]form.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, isRequired := required[name]
		field, err := fieldFromProperty(name, ref.Value, isRequired)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func fieldFromProperty(name string, schema *openapi3.Schema, required bool) (form.Field, error) {
	field := form.Field{
		Name:     name,
		Label:    labelFor(name, schema),
		Help:     schema.Description,
		Required: required,
	}

	switch firstSchemaType(schema.Type) {
	case "integer":
		field.Type = "number"
		field.Validators = append(field.Validators, validators.Int())
	case "number":
		field.Type = "number"
		field.Validators = append(field.Validators, validators.Number())
	case "boolean":
		field.Widget = form.WidgetCheckbox
	default:
		if schema.Format == "email" {
			field.Type = "email"
			field.Validators = append(field.Validators, validators.Email())
		}
		if schema.Format == "password" {
			field.Widget = form.WidgetPassword
		}
	}

	if len(schema.Enum) > 0 {
		field.Widget = form.WidgetSelect
		allowed := make([]string, 0, len(schema.Enum))
		for _, entry := range schema.Enum {
			literal := fmt.Sprint(entry)
			allowed = append(allowed, literal)
			field.Choices = append(field.Choices, form.Choice{Value: literal, Label: literal})
		}
		field.Validators = append(field.Validators, validators.OneOf(allowed...))
	}

	if schema.MinLength != 0 {
		field.Validators = append(field.Validators, validators.MinLength(int(schema.MinLength)))
	}
	if schema.MaxLength != nil {
		field.Validators = append(field.Validators, validators.MaxLength(int(*schema.MaxLength)))
	}
	if schema.Pattern != "" {
		v, err := validators.Pattern(schema.Pattern)
		if err != nil {
			return form.Field{}, err
		}
		field.Validators = append(field.Validators, v)
	}
	if schema.Min != nil {
		field.Validators = append(field.Validators, validators.Min(*schema.Min))
	}
	if schema.Max != nil {
		field.Validators = append(field.Validators, validators.Max(*schema.Max))
	}

	return field, nil
}

func labelFor(name string, schema *openapi3.Schema) string {
	if schema.Title != "" {
		return schema.Title
	}
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	if cleaned == "" {
		return name
	}
	return strings.ToUpper(cleaned[:1]) + cleaned[1:]
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
