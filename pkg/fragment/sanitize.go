package fragment

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// Sanitize strips unsafe markup from externally supplied fragments. The
// policy allows common formatting and form-adjacent elements but no script
// or event-handler attributes.
func Sanitize(markup string) string {
	trimmed := strings.TrimSpace(markup)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(sanitizer().Sanitize(trimmed))
}

func sanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("label", "fieldset", "legend", "span", "small")
		policy.AllowAttrs("class", "id", "for").Globally()
		policy.AllowAttrs(
			"type", "name", "value", "placeholder", "checked", "selected",
			"disabled", "readonly", "required", "min", "max", "step",
			"maxlength", "minlength", "pattern", "rows", "cols", "multiple",
		).OnElements("input", "select", "option", "textarea")
		policy.AllowElements("input", "select", "option", "textarea")
		markupPolicy = policy
	})
	return markupPolicy
}
