package formval

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formval/pkg/form"
)

// ThemeFallbacks returns the partial template paths used when a theme
// manifest does not override them.
func ThemeFallbacks() map[string]string {
	return map[string]string{
		"forms.form":     "templates/forms/form.tmpl",
		"forms.input":    "templates/forms/input.tmpl",
		"forms.textarea": "templates/forms/textarea.tmpl",
		"forms.select":   "templates/forms/select.tmpl",
		"forms.checkbox": "templates/forms/checkbox.tmpl",
		"forms.errors":   "templates/forms/errors.tmpl",
	}
}

// ResolveTheme asks the selector for the named theme/variant and flattens the
// selection into a renderer config: variant tokens, templates, and asset
// files override the manifest's base values, partials fall back to the
// built-in templates, and CSS custom properties are derived from the merged
// tokens.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	return ResolveThemeWithFallbacks(selector, name, variant, ThemeFallbacks())
}

// ResolveThemeWithFallbacks is ResolveTheme with caller-provided fallback
// partials.
func ResolveThemeWithFallbacks(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("formval: resolve theme: nil selector")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("formval: resolve theme %q: %w", name, err)
	}
	if selection == nil {
		return nil, fmt.Errorf("formval: resolve theme %q: empty selection", name)
	}

	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}

	tokens := map[string]string{}
	templates := map[string]string{}
	assetFiles := map[string]string{}
	assetPrefix := ""

	if manifest := selection.Manifest; manifest != nil {
		mergeStringMap(tokens, manifest.Tokens)
		mergeStringMap(templates, manifest.Templates)
		mergeStringMap(assetFiles, manifest.Assets.Files)
		assetPrefix = manifest.Assets.Prefix

		if v, ok := manifest.Variants[selection.Variant]; ok {
			mergeStringMap(tokens, v.Tokens)
			mergeStringMap(templates, v.Templates)
			mergeStringMap(assetFiles, v.Assets.Files)
			if v.Assets.Prefix != "" {
				assetPrefix = v.Assets.Prefix
			}
		}
	}

	partials := map[string]string{}
	mergeStringMap(partials, fallbacks)
	mergeStringMap(partials, templates)

	cfg.Tokens = tokens
	cfg.Partials = partials
	cfg.CSSVars = cssVarsFromTokens(tokens)
	cfg.AssetURL = assetResolver(assetPrefix, assetFiles)
	return cfg, nil
}

// ThemeOptions resolves a theme and translates it into form options: the
// merged CSS variables become the form's inline style hooks.
func ThemeOptions(selector theme.ThemeSelector, name, variant string) ([]form.Option, error) {
	cfg, err := ResolveTheme(selector, name, variant)
	if err != nil {
		return nil, err
	}
	return []form.Option{form.WithStyleVars(cfg.CSSVars)}, nil
}

// CSSVarsStyle renders the config's CSS variables as a :root stylesheet
// block, in stable order.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, name := range names {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[name])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func cssVarsFromTokens(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(tokens))
	for name, val := range tokens {
		vars["--"+name] = val
	}
	return vars
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" {
			return file
		}
		return strings.TrimSuffix(prefix, "/") + "/" + file
	}
}

func mergeStringMap(dst map[string]string, src map[string]string) {
	for key, val := range src {
		dst[key] = val
	}
}
