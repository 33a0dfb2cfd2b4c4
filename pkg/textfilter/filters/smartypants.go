package filters

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

// SmartyPants rewrites straight quotes, dashes and ellipses into their
// typographic characters.
var SmartyPants = &textfilter.Func{
	Meta: textfilter.Descriptor{
		Identity:    "textfilter.SmartyPants",
		Type:        textfilter.TypePostProcess,
		DisplayName: "SmartyPants",
		Description: "Typographic quotes, dashes and ellipses",
		HelpText: `Converts "quotes" and 'quotes' to curly quotes, -- to an en dash,
--- to an em dash and ... to an ellipsis. Text inside pre, code, kbd,
script and style elements is left alone.`,
	},
	Fn: smartypants,
}

func init() { textfilter.MustRegister(SmartyPants) }

var smartySkip = skipSet("pre", "code", "kbd", "script", "style", "textarea", "math")

func smartypants(_ textfilter.Params, text string) (string, error) {
	prev := rune(0)
	return rewriteText(text, smartySkip, func(s string) (string, bool) {
		if !strings.ContainsAny(s, `"'`) && !strings.Contains(s, "--") && !strings.Contains(s, "...") {
			if s != "" {
				prev = lastRune(s)
			}
			return s, false
		}
		out, last := smarten(s, prev)
		prev = last
		return out, true
	})
}

// smarten converts one run of text, returning escaped HTML and the last rune
// seen so quotes spanning element boundaries keep their direction.
func smarten(s string, prev rune) (string, rune) {
	var b strings.Builder
	for i := 0; i < len(s); {
		rest := s[i:]
		switch {
		case strings.HasPrefix(rest, "---"):
			b.WriteString("—")
			i += 3
			prev = '-'
			continue
		case strings.HasPrefix(rest, "--"):
			b.WriteString("–")
			i += 2
			prev = '-'
			continue
		case strings.HasPrefix(rest, "..."):
			b.WriteString("…")
			i += 3
			prev = '.'
			continue
		}

		r, size := utf8.DecodeRuneInString(rest)
		switch r {
		case '"':
			if opensQuote(prev) {
				b.WriteString("“")
			} else {
				b.WriteString("”")
			}
		case '\'':
			if opensQuote(prev) {
				b.WriteString("‘")
			} else {
				b.WriteString("’")
			}
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteString(rest[:size])
		}
		prev = r
		i += size
	}
	return b.String(), prev
}

func opensQuote(prev rune) bool {
	return prev == 0 || unicode.IsSpace(prev) || strings.ContainsRune("([{-—–", prev)
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}
