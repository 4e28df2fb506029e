package formspec

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formval/pkg/form"
	"github.com/goliatone/go-formval/pkg/form/validators"
)

// Set holds the form definitions parsed from one or more documents.
type Set struct {
	forms map[string]FormSpec
}

// LoadFS walks the provided filesystem and parses JSON/YAML definition
// files. When fsys is nil or no definition files are present, the returned
// set is empty.
func LoadFS(fsys fs.FS) (*Set, error) {
	set := &Set{forms: make(map[string]FormSpec)}
	if fsys == nil {
		return set, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSpecFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formspec: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for name, spec := range doc.Forms {
			id := strings.TrimSpace(name)
			if id == "" {
				return fmt.Errorf("formspec: file %s defines a form with an empty name", path)
			}
			if _, exists := set.forms[id]; exists {
				return fmt.Errorf("formspec: duplicate form %q (file %s)", id, path)
			}
			if err := validateSpec(id, spec); err != nil {
				return fmt.Errorf("formspec: file %s: %w", path, err)
			}
			set.forms[id] = spec
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Parse reads a single document from raw bytes, used when the definition
// does not come from a filesystem.
func Parse(data []byte) (*Set, error) {
	doc, err := parseDocument(data, "inline")
	if err != nil {
		return nil, err
	}
	set := &Set{forms: make(map[string]FormSpec, len(doc.Forms))}
	for name, spec := range doc.Forms {
		if err := validateSpec(name, spec); err != nil {
			return nil, fmt.Errorf("formspec: %w", err)
		}
		set.forms[name] = spec
	}
	return set, nil
}

// Names returns the sorted form names the set defines.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spec returns the raw definition for the supplied form name.
func (s *Set) Spec(name string) (FormSpec, bool) {
	if s == nil {
		return FormSpec{}, false
	}
	spec, ok := s.forms[name]
	return spec, ok
}

// Build materialises the named definition into a runnable form, resolving
// validators through the registry. A nil registry uses the built-ins.
func (s *Set) Build(name string, registry *validators.Registry, options ...form.Option) (*form.Form, error) {
	spec, ok := s.Spec(name)
	if !ok {
		return nil, fmt.Errorf("formspec: form %q not found", name)
	}
	if registry == nil {
		registry = validators.Default()
	}

	opts := make([]form.Option, 0, len(options)+3)
	if spec.Action != "" {
		opts = append(opts, form.WithAction(spec.Action))
	}
	if spec.Method != "" {
		opts = append(opts, form.WithMethod(spec.Method))
	}
	if spec.IDPrefix != "" {
		opts = append(opts, form.WithIDPrefix(spec.IDPrefix))
	}
	opts = append(opts, options...)

	built := form.New(name, opts...)
	for _, field := range spec.Fields {
		vs := make([]validators.Validator, 0, len(field.Validators))
		for _, entry := range field.Validators {
			v, err := registry.Build(entry.Name, entry.Params)
			if err != nil {
				return nil, fmt.Errorf("formspec: form %q field %q: %w", name, field.Name, err)
			}
			vs = append(vs, v)
		}

		choices := make([]form.Choice, 0, len(field.Choices))
		for _, choice := range field.Choices {
			choices = append(choices, form.Choice{Value: choice.Value, Label: choice.Label})
		}

		built.Add(form.Field{
			Name:        field.Name,
			Label:       field.Label,
			Widget:      field.Widget,
			Type:        field.Type,
			Placeholder: field.Placeholder,
			Help:        field.Help,
			Required:    field.Required,
			Choices:     choices,
			Validators:  vs,
		})
	}
	return built, nil
}

func parseDocument(data []byte, path string) (Document, error) {
	var doc Document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("formspec: parse %s: %w", path, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("formspec: parse %s: %w", path, err)
	}
	return doc, nil
}

func validateSpec(name string, spec FormSpec) error {
	seen := make(map[string]struct{}, len(spec.Fields))
	for _, field := range spec.Fields {
		if strings.TrimSpace(field.Name) == "" {
			return fmt.Errorf("form %q has a field without a name", name)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("form %q declares field %q twice", name, field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}
