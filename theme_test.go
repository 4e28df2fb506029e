package formval_test

import (
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	formval "github.com/goliatone/go-formval"
)

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"forms.checkbox": "themes/acme/dark/checkbox.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"vendor": "vendor.dark.js",
					},
				},
			},
		},
	}
}

func TestResolveTheme_MergesVariantOverBase(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: acmeManifest(),
	}}

	cfg, err := formval.ResolveTheme(selector, "acme", "dark")
	if err != nil {
		t.Fatalf("ResolveTheme() error = %v", err)
	}

	if len(selector.calls) != 1 || selector.calls[0] != (selectorCall{name: "acme", variant: "dark"}) {
		t.Fatalf("unexpected selector calls: %+v", selector.calls)
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("ResolveTheme() identity = %s/%s", cfg.Theme, cfg.Variant)
	}
	if got := cfg.Tokens["brand"]; got != "#654321" {
		t.Errorf("variant token not merged, brand = %s", got)
	}
	if got := cfg.CSSVars["--brand"]; got != "#654321" {
		t.Errorf("css var not derived from merged token, --brand = %s", got)
	}
	if got := cfg.Partials["forms.input"]; got != "themes/acme/input.tmpl" {
		t.Errorf("base template override lost, forms.input = %s", got)
	}
	if got := cfg.Partials["forms.checkbox"]; got != "themes/acme/dark/checkbox.tmpl" {
		t.Errorf("variant template override lost, forms.checkbox = %s", got)
	}
	if got := cfg.Partials["forms.textarea"]; got != formval.ThemeFallbacks()["forms.textarea"] {
		t.Errorf("fallback partial not applied, forms.textarea = %s", got)
	}
	if got := cfg.AssetURL("vendor"); got != "/assets/themes/acme/vendor.dark.js" {
		t.Errorf("variant asset url = %s", got)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Errorf("base asset url = %s", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Errorf("unknown asset key resolved to %s", got)
	}
}

func TestResolveTheme_SelectorError(t *testing.T) {
	selector := &stubThemeSelector{err: errors.New("theme not found")}
	if _, err := formval.ResolveTheme(selector, "ghost", ""); err == nil {
		t.Fatal("ResolveTheme() expected error for unknown theme")
	}
}

func TestThemeOptions_AppliesCSSVarsToForm(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: acmeManifest(),
	}}

	options, err := formval.ThemeOptions(selector, "acme", "dark")
	if err != nil {
		t.Fatalf("ThemeOptions() error = %v", err)
	}

	f := formval.New("contact", options...)
	f.Add(formval.Field{Name: "email"})

	html, err := f.Render()
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(html, "--brand: #654321") {
		t.Errorf("Render() missing themed style var:\n%s", html)
	}
}

func TestCSSVarsStyle_StableOrder(t *testing.T) {
	cfg := &theme.RendererConfig{CSSVars: map[string]string{
		"--b": "2",
		"--a": "1",
	}}
	want := ":root {\n--a: 1;\n--b: 2;\n}"
	if got := formval.CSSVarsStyle(cfg); got != want {
		t.Errorf("CSSVarsStyle() = %q, want %q", got, want)
	}
}
