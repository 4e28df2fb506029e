package form_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formval/pkg/form"
	"github.com/goliatone/go-formval/pkg/form/validators"
	"github.com/goliatone/go-formval/pkg/testsupport"
)

func TestRender_GoldenPristine(t *testing.T) {
	f := form.New("contact", form.WithAction("/contact"))
	f.Add(form.Field{
		Name:       "name",
		Label:      "Name",
		Required:   true,
		Validators: []validators.Validator{validators.MinLength(2)},
	})
	f.Add(form.Field{
		Name:   "topic",
		Label:  "Topic",
		Widget: form.WidgetSelect,
		Choices: []form.Choice{
			{Value: "support", Label: "Support"},
			{Value: "sales", Label: "Sales"},
		},
	})

	html, err := f.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	goldenPath := filepath.Join("testdata", "contact_pristine.golden.html")
	if testsupport.WriteMaybeGolden(t, goldenPath, []byte(html)) {
		return
	}

	want := string(testsupport.MustReadGolden(t, goldenPath))
	if diff := testsupport.CompareGolden(want, html); diff != "" {
		t.Fatalf("pristine output mismatch (-want +got):\n%s", diff)
	}
}
