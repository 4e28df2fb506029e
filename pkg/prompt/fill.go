package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formval/pkg/form"
)

// Option customizes a Filler.
type Option func(*Filler)

// WithDriver swaps the terminal driver.
func WithDriver(d Driver) Option {
	return func(fl *Filler) {
		if d != nil {
			fl.driver = d
		}
	}
}

// WithMaxAttempts caps how many full ask/validate rounds run before giving
// up and returning the last (invalid) result. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(fl *Filler) {
		if n >= 1 {
			fl.maxAttempts = n
		}
	}
}

// Filler runs a form as an interactive questionnaire.
type Filler struct {
	driver      Driver
	maxAttempts int
}

// NewFiller builds a Filler backed by the survey driver unless overridden.
func NewFiller(opts ...Option) *Filler {
	fl := &Filler{
		driver:      NewSurveyDriver(),
		maxAttempts: 3,
	}
	for _, opt := range opts {
		opt(fl)
	}
	return fl
}

// Fill asks for every field, submits the answers, and re-asks the fields
// that failed validation until the form is valid or maxAttempts rounds have
// run. The returned result always carries the final submission; callers
// should still check result.Valid when the error is nil.
func (fl *Filler) Fill(ctx context.Context, f *form.Form) (*form.Result, error) {
	if f == nil {
		return nil, fmt.Errorf("prompt: fill: nil form")
	}

	fields := f.Fields()
	answers := make(map[string][]string, len(fields))
	pending := make([]form.Field, len(fields))
	copy(pending, fields)

	var result *form.Result
	for attempt := 0; attempt < fl.maxAttempts; attempt++ {
		for _, field := range pending {
			raw, err := fl.ask(ctx, field, answers[field.Name])
			if err != nil {
				return nil, err
			}
			answers[field.Name] = []string{raw}
		}

		var err error
		result, err = f.Submit(answers)
		if err != nil {
			return nil, fmt.Errorf("prompt: fill: %w", err)
		}
		if result.Valid {
			return result, nil
		}

		pending = pending[:0]
		for _, field := range fields {
			msgs := result.Dict.FieldErrors(f.FieldID(field.Name))
			if len(msgs) == 0 {
				continue
			}
			pending = append(pending, field)
			if err := fl.driver.Info(ctx, fmt.Sprintf("%s: %s", fieldLabel(field), strings.Join(msgs, "; "))); err != nil {
				return nil, err
			}
		}
		if len(pending) == 0 {
			// Invalid without field-level detail; re-ask everything.
			pending = append(pending, fields...)
		}
	}
	return result, nil
}

func (fl *Filler) ask(ctx context.Context, field form.Field, previous []string) (string, error) {
	message := fieldLabel(field)
	current := ""
	if len(previous) > 0 {
		current = previous[0]
	}

	switch field.Widget {
	case form.WidgetCheckbox:
		ok, err := fl.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: current == "on",
			Help:    field.Help,
		})
		if err != nil {
			return "", err
		}
		if ok {
			return "on", nil
		}
		return "", nil
	case form.WidgetSelect:
		options := make([]string, len(field.Choices))
		defaultIndex := 0
		for i, choice := range field.Choices {
			label := choice.Label
			if label == "" {
				label = choice.Value
			}
			options[i] = label
			if choice.Value == current {
				defaultIndex = i
			}
		}
		idx, err := fl.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: defaultIndex,
			Help:         field.Help,
		})
		if err != nil {
			return "", err
		}
		return field.Choices[idx].Value, nil
	case form.WidgetPassword:
		return fl.driver.Password(ctx, InputConfig{
			Message: message,
			Help:    field.Help,
		})
	default:
		return fl.driver.Input(ctx, InputConfig{
			Message: message,
			Default: current,
			Help:    field.Help,
		})
	}
}

func fieldLabel(field form.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}
