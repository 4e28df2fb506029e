// Package validators provides the named validation operations bound into a
// field's value chain. Every validator failure matches ErrValidation, the
// kind field funcs reify, so bad input becomes an error value routed back to
// the field instead of aborting evaluation.
package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-formval/pkg/value"
)

// ErrValidation is the error kind all validator failures match via
// errors.Is. Field funcs register it for reification.
var ErrValidation = errors.New("validation failed")

// Error carries a user-facing validation message. Its Error string is the
// bare message so the reified reason reads cleanly in rendered output.
type Error struct {
	msg string
}

// Errorf builds a validation failure with a formatted user-facing message.
func Errorf(format string, args ...any) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string { return e.msg }

// Is matches the shared validation kind.
func (e *Error) Is(target error) bool { return target == ErrValidation }

// Validator transforms one input into the value the next validator in the
// chain receives. Returning an error built with Errorf marks the input
// invalid.
type Validator func(input any) (any, error)

// Chain folds validators into a single unary operation, stopping at the
// first failure.
func Chain(vs ...Validator) value.Operation {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("validators: chain expects one argument, got %d", len(args))
		}
		current := args[0]
		for _, v := range vs {
			if v == nil {
				continue
			}
			next, err := v(current)
			if err != nil {
				return nil, err
			}
			current = next
		}
		return current, nil
	}
}

// OptionalChain behaves like Chain but lets blank input pass untouched, so
// validators on an optional field only run once something was submitted.
func OptionalChain(vs ...Validator) value.Operation {
	chained := Chain(vs...)
	return func(args ...any) (any, error) {
		if len(args) == 1 && strings.TrimSpace(asString(args[0])) == "" {
			return args[0], nil
		}
		return chained(args...)
	}
}

func asString(input any) string {
	switch v := input.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Required rejects empty or whitespace-only input.
func Required() Validator {
	return func(input any) (any, error) {
		if strings.TrimSpace(asString(input)) == "" {
			return nil, Errorf("value is required")
		}
		return input, nil
	}
}

// Int parses the input into an int.
func Int() Validator {
	return func(input any) (any, error) {
		if n, ok := input.(int); ok {
			return n, nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(asString(input)))
		if err != nil {
			return nil, Errorf("not a whole number")
		}
		return n, nil
	}
}

// Number parses the input into a float64.
func Number() Validator {
	return func(input any) (any, error) {
		switch v := input.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(asString(input)), 64)
		if err != nil {
			return nil, Errorf("not a number")
		}
		return f, nil
	}
}

// MinLength rejects strings shorter than n characters.
func MinLength(n int) Validator {
	return func(input any) (any, error) {
		if len([]rune(asString(input))) < n {
			return nil, Errorf("must be at least %d characters", n)
		}
		return input, nil
	}
}

// MaxLength rejects strings longer than n characters.
func MaxLength(n int) Validator {
	return func(input any) (any, error) {
		if len([]rune(asString(input))) > n {
			return nil, Errorf("must be at most %d characters", n)
		}
		return input, nil
	}
}

// Pattern rejects strings that do not match the compiled expression.
func Pattern(expr string) (Validator, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("validators: compile pattern %q: %w", expr, err)
	}
	return func(input any) (any, error) {
		if !re.MatchString(asString(input)) {
			return nil, Errorf("does not match the expected format")
		}
		return input, nil
	}, nil
}

// Min rejects numeric input below the bound. Works on the output of Int or
// Number as well as raw numeric strings.
func Min(bound float64) Validator {
	return func(input any) (any, error) {
		f, err := toFloat(input)
		if err != nil {
			return nil, err
		}
		if f < bound {
			return nil, Errorf("must be at least %v", bound)
		}
		return input, nil
	}
}

// Max rejects numeric input above the bound.
func Max(bound float64) Validator {
	return func(input any) (any, error) {
		f, err := toFloat(input)
		if err != nil {
			return nil, err
		}
		if f > bound {
			return nil, Errorf("must be at most %v", bound)
		}
		return input, nil
	}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email rejects input that does not look like an address.
func Email() Validator {
	return func(input any) (any, error) {
		if !emailPattern.MatchString(strings.TrimSpace(asString(input))) {
			return nil, Errorf("not a valid email address")
		}
		return input, nil
	}
}

// OneOf rejects input outside the allowed set.
func OneOf(allowed ...string) Validator {
	set := make(map[string]struct{}, len(allowed))
	for _, option := range allowed {
		set[option] = struct{}{}
	}
	return func(input any) (any, error) {
		if _, ok := set[asString(input)]; !ok {
			return nil, Errorf("not one of the allowed choices")
		}
		return input, nil
	}
}

func toFloat(input any) (float64, error) {
	switch v := input.(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		f, err := strconv.ParseFloat(strings.TrimSpace(asString(input)), 64)
		if err != nil {
			return 0, Errorf("not a number")
		}
		return f, nil
	}
}
