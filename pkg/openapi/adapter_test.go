package openapi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formval/pkg/form"
	"github.com/goliatone/go-formval/pkg/openapi"
)

const petstoreDoc = `
openapi: 3.0.0
info:
  title: Members
  version: 1.0.0
paths:
  /members:
    post:
      operationId: createMember
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              required: [name, email]
              properties:
                name:
                  type: string
                  minLength: 2
                  maxLength: 40
                email:
                  type: string
                  format: email
                age:
                  type: integer
                  minimum: 13
                plan:
                  type: string
                  enum: [free, pro]
      responses:
        "201":
          description: created
`

func deriveForm(t *testing.T) *form.Form {
	t.Helper()
	built, err := openapi.FormFromData(context.Background(), []byte(petstoreDoc), "createMember", openapi.Options{})
	if err != nil {
		t.Fatalf("derive form: %v", err)
	}
	return built
}

func TestFormFromData_DerivesFields(t *testing.T) {
	built := deriveForm(t)

	fields := built.Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name
	}
	if diff := cmp.Diff([]string{"age", "email", "name", "plan"}, names); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}

	byName := map[string]form.Field{}
	for _, field := range fields {
		byName[field.Name] = field
	}
	if !byName["name"].Required || byName["age"].Required {
		t.Fatal("required flags not derived from the schema")
	}
	if byName["email"].Type != "email" {
		t.Fatalf("email format not mapped: %+v", byName["email"])
	}
	if byName["plan"].Widget != form.WidgetSelect || len(byName["plan"].Choices) != 2 {
		t.Fatalf("enum not mapped onto a select: %+v", byName["plan"])
	}
}

func TestFormFromData_ConstraintsBecomeValidators(t *testing.T) {
	built := deriveForm(t)

	result, err := built.Submit(map[string][]string{
		"name":  {"a"},
		"email": {"not-an-address"},
		"age":   {"10"},
		"plan":  {"enterprise"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid submission")
	}

	wantErrors := map[string][]string{
		built.FieldID("name"):  {"must be at least 2 characters"},
		built.FieldID("email"): {"not a valid email address"},
		built.FieldID("age"):   {"must be at least 13"},
		built.FieldID("plan"):  {"not one of the allowed choices"},
	}
	if diff := cmp.Diff(wantErrors, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFormFromData_ValidSubmission(t *testing.T) {
	built := deriveForm(t)

	result, err := built.Submit(map[string][]string{
		"name":  {"Ada Lovelace"},
		"email": {"ada@example.com"},
		"age":   {"36"},
		"plan":  {"pro"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid submission, errors: %v", result.Errors)
	}
	if result.Values["age"] != 36 {
		t.Fatalf("age payload mismatch: %v", result.Values["age"])
	}
}

func TestFormFromData_UnknownOperation(t *testing.T) {
	_, err := openapi.FormFromData(context.Background(), []byte(petstoreDoc), "missing", openapi.Options{})
	if err == nil || !strings.Contains(err.Error(), `"missing"`) {
		t.Fatalf("want unknown operation error, got %v", err)
	}
}

func TestFormFromData_EmptyDocument(t *testing.T) {
	if _, err := openapi.FormFromData(context.Background(), nil, "x", openapi.Options{}); err == nil {
		t.Fatal("empty payload must fail")
	}
}
