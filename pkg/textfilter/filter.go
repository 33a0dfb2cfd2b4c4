// filter.go defines the Filter contract and the helpers every filter shares.
package textfilter

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Filter is a unit of text transformation. The descriptor and the transform
// belong to the same value: a filter describes itself and runs itself.
type Filter interface {
	Descriptor() Descriptor
	Filtertext(p Params, text string) (string, error)
}

// identityPattern captures the last letters-only segment of a declared identity.
// A separator is required: "textfilter.Markdown", "plugins/textfilters/markdown"
// and "TextFilter::Markdown" are valid, "Markdown" is not.
var identityPattern = regexp.MustCompile(`(?:\.|/|::)([A-Za-z]+)$`)

// componentPrefix is the path under which filter components are addressed.
const componentPrefix = "plugins/textfilters/"

// ShortName derives the registry key of a filter from its declared identity.
func ShortName(f Filter) (string, error) {
	identity := f.Descriptor().Identity
	m := identityPattern.FindStringSubmatch(identity)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownIdentity, identity)
	}
	return strings.ToLower(m[1]), nil
}

// ComponentName returns the component path of a filter, e.g. "plugins/textfilters/markdown".
func ComponentName(f Filter) (string, error) {
	name, err := ShortName(f)
	if err != nil {
		return "", err
	}
	return componentPrefix + name, nil
}

// TypeOf returns the declared type of a filter, TypeOther when undeclared.
func TypeOf(f Filter) Type {
	if t := f.Descriptor().Type; t != "" {
		return t
	}
	return TypeOther
}

// ConfigValue looks up an option, preferring a non-empty value from params and
// falling back to the filter's default config. An option that is neither
// supplied nor declared in the default config yields ErrMissingDefaultConfig.
func ConfigValue(f Filter, p Params, option string) (any, error) {
	if v, ok := p.FilterParams[option]; ok && isSet(v) {
		return v, nil
	}
	opt, ok := f.Descriptor().DefaultConfig[option]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingDefaultConfig, option)
	}
	return opt.Default, nil
}

// MustConfigValue is like ConfigValue but panics when the option cannot be resolved.
func MustConfigValue(f Filter, p Params, option string) any {
	v, err := ConfigValue(f, p, option)
	if err != nil {
		panic(err)
	}
	return v
}

// ConfigString resolves an option and formats it as a string.
func ConfigString(f Filter, p Params, option string) (string, error) {
	v, err := ConfigValue(f, p, option)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return fmt.Sprint(v), nil
}

// isSet reports whether a supplied parameter should win over the default.
func isSet(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	default:
		return true
	}
}

// Func adapts a plain function into a Filter. It serves markup,
// post-process, and other filters.
type Func struct {
	Meta Descriptor
	Fn   func(p Params, text string) (string, error)
}

// Descriptor returns the filter metadata.
func (f *Func) Descriptor() Descriptor { return f.Meta }

// Filtertext runs the wrapped function. A nil function leaves text unchanged.
func (f *Func) Filtertext(p Params, text string) (string, error) {
	if f.Fn == nil {
		return text, nil
	}
	return f.Fn(p, text)
}

// MacroFunc computes the replacement for one macro tag. body is empty for
// self-closing tags.
type MacroFunc func(p Params, attrs Attributes, body string) (string, error)

// Macro is a filter that expands <namespace:shortname .../> tags. Its tag
// name is its own short name.
type Macro struct {
	Meta   Descriptor
	Expand MacroFunc
	// MaxInput bounds the text length the macro scans; zero means unbounded.
	MaxInput int

	expanders sync.Map // namespace -> *Expander
}

// Descriptor returns the filter metadata.
func (m *Macro) Descriptor() Descriptor { return m.Meta }

// Filtertext expands every tag of this macro in text.
func (m *Macro) Filtertext(p Params, text string) (string, error) {
	name, err := ShortName(m)
	if err != nil {
		return "", err
	}
	if m.Expand == nil {
		return text, nil
	}
	e := *m.expander(p.namespace(), name)
	e.MaxInput = m.MaxInput
	return e.Expand(text, func(attrs Attributes, body string) (string, error) {
		return m.Expand(p, attrs, body)
	})
}

// expander returns the compiled patterns for namespace, building them once.
func (m *Macro) expander(namespace, name string) *Expander {
	if e, ok := m.expanders.Load(namespace); ok {
		return e.(*Expander)
	}
	e, _ := m.expanders.LoadOrStore(namespace, NewExpander(namespace, name))
	return e.(*Expander)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
