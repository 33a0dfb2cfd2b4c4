// types.go defines the filter types, metadata, and per-call parameters.
package textfilter

// Type classifies a filter into one of the pipeline stages.
type Type string

const (
	TypeMacroPre    Type = "macropre"    // macro expansion before markup
	TypeMacroPost   Type = "macropost"   // macro expansion after markup
	TypeMarkup      Type = "markup"      // lightweight markup to HTML
	TypePostProcess Type = "postprocess" // cleanup after markup
	TypeOther       Type = "other"       // anything else, including the stage runners
)

// Types lists every filter type in pipeline order.
var Types = []Type{TypeMacroPre, TypeMacroPost, TypeMarkup, TypePostProcess, TypeOther}

// IsMacro reports whether filters of this type expand macro tags.
func (t Type) IsMacro() bool {
	return t == TypeMacroPre || t == TypeMacroPost
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType converts a name like "MacroPre" or "postprocess" into a Type.
func ParseType(s string) (Type, bool) {
	t := Type(normalizeName(s))
	return t, t.Valid()
}

// Option describes one configurable setting of a filter.
type Option struct {
	Default     any    `json:"default" yaml:"default"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Config maps option names to their defaults.
type Config map[string]Option

// Descriptor is the metadata every filter declares about itself.
type Descriptor struct {
	// Identity is the hierarchical declared name, e.g. "textfilter.Markdown".
	// The short name is derived from its last segment.
	Identity      string
	Type          Type
	DisplayName   string
	Description   string
	DefaultConfig Config
	HelpText      string
}

// Params carries the per-call configuration handed to filters.
type Params struct {
	// FilterParams holds user-supplied option values keyed by option name.
	FilterParams map[string]any
	// Namespace is the macro tag namespace; DefaultNamespace when empty.
	Namespace string
}

// namespace returns the configured macro namespace or the default one.
func (p Params) namespace() string {
	if p.Namespace == "" {
		return DefaultNamespace
	}
	return p.Namespace
}

// Attributes maps attribute names to raw values parsed from a macro tag.
type Attributes map[string]string

// Get returns the attribute value or fallback when absent.
func (a Attributes) Get(key, fallback string) string {
	if v, ok := a[key]; ok {
		return v
	}
	return fallback
}
