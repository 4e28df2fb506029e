// Package fragment provides the small HTML assembly surface the builder
// tree renders into: escaped text, sanitized raw markup, tags, and ordered
// concatenation. Fragments are immutable and safe to reuse across renders.
package fragment

import (
	"html"
	"sort"
	"strings"
)

// Fragment is an opaque renderable unit.
type Fragment interface {
	// String renders the fragment to its final markup.
	String() string
}

// voidElements render without a closing tag.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "link": {}, "meta": {}, "source": {},
	"track": {}, "wbr": {},
}

type text struct {
	content string
}

// Text returns a fragment whose content is HTML-escaped on render.
func Text(content string) Fragment {
	return text{content: content}
}

func (t text) String() string {
	return html.EscapeString(t.content)
}

type raw struct {
	markup string
}

// Raw returns a fragment carrying pre-built markup. The markup is passed
// through the shared sanitizer policy so externally supplied fragments
// cannot smuggle scripts into the rendered form.
func Raw(markup string) Fragment {
	return raw{markup: Sanitize(markup)}
}

// Trusted returns a fragment carrying markup verbatim, skipping the
// sanitizer. Reserved for markup this module assembled itself.
func Trusted(markup string) Fragment {
	return raw{markup: markup}
}

func (r raw) String() string { return r.markup }

type element struct {
	name     string
	attrs    map[string]string
	children []Fragment
}

// Tag assembles an element fragment. Attributes render sorted by name so
// output is deterministic; children render in order. Nil children are
// skipped.
func Tag(name string, attrs map[string]string, children ...Fragment) Fragment {
	kept := make([]Fragment, 0, len(children))
	for _, child := range children {
		if child == nil {
			continue
		}
		kept = append(kept, child)
	}
	return element{name: name, attrs: attrs, children: kept}
}

func (e element) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.name)

	names := make([]string, 0, len(e.attrs))
	for name := range e.attrs {
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(e.attrs[name]))
		b.WriteByte('"')
	}

	if _, void := voidElements[e.name]; void && len(e.children) == 0 {
		b.WriteString(" />")
		return b.String()
	}

	b.WriteByte('>')
	for _, child := range e.children {
		b.WriteString(child.String())
	}
	b.WriteString("</")
	b.WriteString(e.name)
	b.WriteByte('>')
	return b.String()
}

type list struct {
	items []Fragment
}

// Concat joins fragments in order. Concatenation is associative, so nesting
// Concat calls does not change the rendered output.
func Concat(fragments ...Fragment) Fragment {
	kept := make([]Fragment, 0, len(fragments))
	for _, f := range fragments {
		if f == nil {
			continue
		}
		kept = append(kept, f)
	}
	return list{items: kept}
}

// Empty returns the neutral fragment.
func Empty() Fragment {
	return list{}
}

func (l list) String() string {
	var b strings.Builder
	for _, item := range l.items {
		b.WriteString(item.String())
	}
	return b.String()
}
