package validators

import (
	"fmt"
	"sync"
)

// Params carries the declarative configuration a factory reads, as parsed
// from a form definition document.
type Params map[string]any

// Factory builds a configured validator from declarative parameters.
type Factory func(params Params) (Validator, error)

// Registry stores validator factories by name so form definitions can refer
// to validators declaratively.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a registry pre-populated with the built-in validators.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.registerBuiltins()
	return r
}

// Register adds a factory by name. Duplicate names return an error.
func (r *Registry) Register(name string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("validators: factory is required")
	}
	if name == "" {
		return fmt.Errorf("validators: factory name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("validators: factory %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Build resolves a named validator with its parameters.
func (r *Registry) Build(name string, params Params) (Validator, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("validators: validator %q not found", name)
	}
	v, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("validators: build %q: %w", name, err)
	}
	return v, nil
}

func (r *Registry) registerBuiltins() {
	statics := map[string]Validator{
		"required": Required(),
		"int":      Int(),
		"number":   Number(),
		"email":    Email(),
	}
	for name, v := range statics {
		validator := v
		r.factories[name] = func(Params) (Validator, error) {
			return validator, nil
		}
	}

	r.factories["minLength"] = func(p Params) (Validator, error) {
		n, err := intParam(p, "min")
		if err != nil {
			return nil, err
		}
		return MinLength(n), nil
	}
	r.factories["maxLength"] = func(p Params) (Validator, error) {
		n, err := intParam(p, "max")
		if err != nil {
			return nil, err
		}
		return MaxLength(n), nil
	}
	r.factories["min"] = func(p Params) (Validator, error) {
		f, err := floatParam(p, "min")
		if err != nil {
			return nil, err
		}
		return Min(f), nil
	}
	r.factories["max"] = func(p Params) (Validator, error) {
		f, err := floatParam(p, "max")
		if err != nil {
			return nil, err
		}
		return Max(f), nil
	}
	r.factories["pattern"] = func(p Params) (Validator, error) {
		expr, ok := p["pattern"].(string)
		if !ok || expr == "" {
			return nil, fmt.Errorf("parameter %q is required", "pattern")
		}
		return Pattern(expr)
	}
	r.factories["oneOf"] = func(p Params) (Validator, error) {
		raw, ok := p["options"]
		if !ok {
			return nil, fmt.Errorf("parameter %q is required", "options")
		}
		options, err := stringSlice(raw)
		if err != nil {
			return nil, err
		}
		return OneOf(options...), nil
	}
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry holding the built-in validators.
func Default() *Registry { return defaultRegistry }

func intParam(p Params, key string) (int, error) {
	switch v := p[key].(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("parameter %q must be a number", key)
	}
}

func floatParam(p Params, key string) (float64, error) {
	switch v := p[key].(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("parameter %q must be a number", key)
	}
}

func stringSlice(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("options must be strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("options must be a list, got %T", raw)
	}
}
