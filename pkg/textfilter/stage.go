// stage.go implements the meta-filters that run every macro of a stage.
package textfilter

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Stage folds every filter registered under one type over the text, in
// registration order, feeding each filter the previous one's output.
// A Stage is itself a filter of type "other".
type Stage struct {
	// Registry supplies the filters; Default when nil.
	Registry *Registry
	Of       Type
	meta     Descriptor
}

// NewStage builds the runner for filters of type t.
func NewStage(reg *Registry, t Type) *Stage {
	meta := Descriptor{
		Identity:    "textfilter." + string(t),
		Type:        TypeOther,
		DisplayName: string(t),
		Description: fmt.Sprintf("Runs every %s filter in registration order", t),
	}
	switch t {
	case TypeMacroPre:
		meta.Identity = "textfilter.MacroPre"
		meta.DisplayName = "MacroPre"
		meta.Description = "Macro expansion meta-filter (pre-markup)"
	case TypeMacroPost:
		meta.Identity = "textfilter.MacroPost"
		meta.DisplayName = "MacroPost"
		meta.Description = "Macro expansion meta-filter (post-markup)"
	}
	return &Stage{Registry: reg, Of: t, meta: meta}
}

// Descriptor returns the stage metadata.
func (s *Stage) Descriptor() Descriptor { return s.meta }

// Filtertext applies the stage's filters in order. An empty stage returns
// text unchanged; the first failing filter aborts the fold.
func (s *Stage) Filtertext(p Params, text string) (string, error) {
	reg := s.Registry
	if reg == nil {
		reg = Default
	}

	acc := text
	for _, f := range reg.ByType(s.Of) {
		name, _ := ShortName(f)
		out, err := f.Filtertext(p, acc)
		if err != nil {
			return "", fmt.Errorf("%s filter %s: %w", s.Of, name, err)
		}
		Logger().WithFields(logrus.Fields{
			"stage":  string(s.Of),
			"filter": name,
		}).Debug("applied stage filter")
		acc = out
	}
	return acc, nil
}
