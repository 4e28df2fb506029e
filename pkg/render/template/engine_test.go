package template_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formval/pkg/render/template"
)

func TestEngine_RequiresASource(t *testing.T) {
	if _, err := template.New(); err == nil {
		t.Fatal("constructing without a template source must fail")
	}
}

func TestEngine_RenderTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"page.tmpl": &fstest.MapFile{
			Data: []byte("<main>{{ form | safe }}</main>"),
		},
	}
	engine, err := template.New(template.WithFS(fsys))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderTemplate("page", map[string]any{
		"form": "<form></form>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<main><form></form></main>" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestEngine_RenderStringWithGlobals(t *testing.T) {
	engine, err := template.New(
		template.WithFS(fstest.MapFS{}),
		template.WithGlobals(map[string]any{"site": "formval"}),
	)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString("{{ site }}: {{ title }}", map[string]any{
		"title": "Sign up",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "formval: Sign up" {
		t.Fatalf("output mismatch: %q", out)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine, err := template.New(template.WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.RenderTemplate("nope", nil); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("missing template must fail with the path, got %v", err)
	}
}
