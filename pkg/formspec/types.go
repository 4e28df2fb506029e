// Package formspec loads declarative form definitions from YAML or JSON
// documents and builds runnable forms out of them, resolving validators by
// name through a registry.
package formspec

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formval/pkg/form/validators"
)

// Document is the top-level shape of a definition file.
type Document struct {
	Forms map[string]FormSpec `yaml:"forms" json:"forms"`
}

// FormSpec declares one form.
type FormSpec struct {
	Action   string      `yaml:"action" json:"action"`
	Method   string      `yaml:"method" json:"method"`
	IDPrefix string      `yaml:"idPrefix" json:"idPrefix"`
	Fields   []FieldSpec `yaml:"fields" json:"fields"`
}

// FieldSpec declares one field of a form.
type FieldSpec struct {
	Name        string          `yaml:"name" json:"name"`
	Label       string          `yaml:"label" json:"label"`
	Widget      string          `yaml:"widget" json:"widget"`
	Type        string          `yaml:"type" json:"type"`
	Placeholder string          `yaml:"placeholder" json:"placeholder"`
	Help        string          `yaml:"help" json:"help"`
	Required    bool            `yaml:"required" json:"required"`
	Choices     []ChoiceSpec    `yaml:"choices" json:"choices"`
	Validators  []ValidatorSpec `yaml:"validators" json:"validators"`
}

// ChoiceSpec declares one option of a select widget.
type ChoiceSpec struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// ValidatorSpec names a registered validator plus its parameters. In the
// document it is either a bare name or a mapping carrying a "name" key with
// the remaining keys treated as parameters:
//
//	validators:
//	  - required
//	  - name: minLength
//	    min: 3
type ValidatorSpec struct {
	Name   string
	Params validators.Params
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (v *ValidatorSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&v.Name)
	case yaml.MappingNode:
		raw := map[string]any{}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		return v.fromMap(raw)
	default:
		return fmt.Errorf("formspec: validator entry must be a name or a mapping")
	}
}

// UnmarshalJSON accepts both the string and the object form.
func (v *ValidatorSpec) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		v.Name = name
		return nil
	}
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("formspec: validator entry must be a name or an object: %w", err)
	}
	return v.fromMap(raw)
}

func (v *ValidatorSpec) fromMap(raw map[string]any) error {
	name, ok := raw["name"].(string)
	if !ok || name == "" {
		return fmt.Errorf("formspec: validator mapping needs a %q key", "name")
	}
	v.Name = name
	params := make(validators.Params, len(raw))
	for key, val := range raw {
		if key == "name" {
			continue
		}
		params[key] = val
	}
	if len(params) > 0 {
		v.Params = params
	}
	return nil
}
