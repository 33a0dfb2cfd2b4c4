// Package textfilter provides the building blocks of a pluggable text-filter
// pipeline: a registry that classifies filters into stages, the macro tag
// expander, and the stage runners that fold every macro of a stage over text.
//
// Filters declare themselves from init():
//
//	func init() {
//		textfilter.MustRegister(&textfilter.Macro{
//			Meta:   textfilter.Descriptor{Identity: "textfilter.Shout", Type: textfilter.TypeMacroPost},
//			Expand: shout,
//		})
//	}
//
// after which <macro:shout>text</macro:shout> is expanded by the macropost stage.
package textfilter
