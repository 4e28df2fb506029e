package formval_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	formval "github.com/goliatone/go-formval"
)

const contactSpec = `
forms:
  contact:
    action: /contact
    fields:
      - name: email
        label: Email
        required: true
        validators: [email]
      - name: message
        label: Message
        widget: textarea
`

func TestFromSpecFS_BuildAndSubmit(t *testing.T) {
	fsys := fstest.MapFS{
		"forms/contact.yaml": &fstest.MapFile{Data: []byte(contactSpec)},
	}

	f, err := formval.FromSpecFS(fsys, "contact")
	if err != nil {
		t.Fatalf("FromSpecFS() error = %v", err)
	}

	result, err := f.Submit(map[string][]string{
		"email":   {"not-an-email"},
		"message": {"hello"},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if result.Valid {
		t.Fatal("Submit() accepted an invalid email")
	}
	if !strings.Contains(result.HTML, "not-an-email") {
		t.Errorf("Submit() HTML does not echo the rejected input:\n%s", result.HTML)
	}

	result, err = f.Submit(map[string][]string{
		"email":   {"ada@example.com"},
		"message": {"hello"},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !result.Valid {
		t.Fatalf("Submit() rejected valid input: %v", result.Errors)
	}
	if got := result.Values["email"]; got != "ada@example.com" {
		t.Errorf("Submit() email = %v", got)
	}
}

func TestFromOpenAPI_DerivesForm(t *testing.T) {
	doc := []byte(`
openapi: 3.0.3
info:
  title: API
  version: 1.0.0
paths:
  /users:
    post:
      operationId: createUser
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              required: [name]
              properties:
                name:
                  type: string
      responses:
        "201":
          description: created
`)

	f, err := formval.FromOpenAPI(context.Background(), doc, "createUser")
	if err != nil {
		t.Fatalf("FromOpenAPI() error = %v", err)
	}

	result, err := f.Submit(map[string][]string{})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if result.Valid {
		t.Fatal("Submit() accepted a missing required field")
	}
}

func TestAssetsFS_ContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(formval.AssetsFS(), "formval.css")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), ".fv-form") {
		t.Error("stylesheet missing .fv-form rules")
	}
}
