package filters

import "github.com/open-cli-collective/textfilter-cli/pkg/textfilter"

// The stage runners are filters too, so they can be looked up by name and
// placed in a chain like any other filter.
var (
	MacroPre  = textfilter.NewStage(textfilter.Default, textfilter.TypeMacroPre)
	MacroPost = textfilter.NewStage(textfilter.Default, textfilter.TypeMacroPost)
)

func init() {
	textfilter.MustRegister(MacroPre)
	textfilter.MustRegister(MacroPost)
}
