package timezones

import (
	"strings"

	"github.com/goliatone/go-formval/pkg/form"
	"github.com/goliatone/go-formval/pkg/form/validators"
)

// Choices converts zone names into select options; friendly labels swap the
// underscores out ("America/New_York" reads as "America/New York").
func Choices(zones []string) []form.Choice {
	out := make([]form.Choice, 0, len(zones))
	for _, zone := range zones {
		out = append(out, form.Choice{
			Value: zone,
			Label: strings.ReplaceAll(zone, "_", " "),
		})
	}
	return out
}

// Field builds a ready-to-add select field over the given zones, rejecting
// submissions outside the list.
func Field(name, label string, zones []string, required bool) form.Field {
	return form.Field{
		Name:       name,
		Label:      label,
		Widget:     form.WidgetSelect,
		Required:   required,
		Choices:    Choices(zones),
		Validators: []validators.Validator{validators.OneOf(zones...)},
	}
}

// DefaultField is Field over the embedded zone list.
func DefaultField(name, label string, required bool) (form.Field, error) {
	zones, err := DefaultZones()
	if err != nil {
		return form.Field{}, err
	}
	return Field(name, label, zones, required), nil
}
