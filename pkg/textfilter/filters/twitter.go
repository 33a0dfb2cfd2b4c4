package filters

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

// TwitterFilter links @user mentions and #hashtags.
var TwitterFilter = &textfilter.Func{
	Meta: textfilter.Descriptor{
		Identity:    "textfilter.TwitterFilter",
		Type:        textfilter.TypePostProcess,
		DisplayName: "Twitter Filter",
		Description: "Links @user mentions and #hashtags",
		DefaultConfig: textfilter.Config{
			"twitter-url": {Default: "https://twitter.com", Description: "Base URL for profile and search links"},
		},
		HelpText: `Turns @name into a profile link and #tag into a search link. Text
inside links and code is not touched.`,
	},
}

func init() {
	TwitterFilter.Fn = twitterFilter
	textfilter.MustRegister(TwitterFilter)
}

var (
	twitterSkip    = skipSet("a", "pre", "code", "script", "style", "textarea")
	twitterPattern = regexp.MustCompile(`(^|[^\w@#&/])([@#])(\w+)`)
)

func twitterFilter(p textfilter.Params, text string) (string, error) {
	if !strings.ContainsAny(text, "@#") {
		return text, nil
	}
	base, err := textfilter.ConfigString(TwitterFilter, p, "twitter-url")
	if err != nil {
		return "", err
	}
	base = strings.TrimRight(base, "/")

	return rewriteText(text, twitterSkip, func(s string) (string, bool) {
		matches := twitterPattern.FindAllStringSubmatchIndex(s, -1)
		if len(matches) == 0 {
			return s, false
		}
		var b strings.Builder
		last := 0
		for _, m := range matches {
			b.WriteString(html.EscapeString(s[last:m[3]]))
			sigil, name := s[m[4]:m[5]], s[m[6]:m[7]]
			href := base + "/" + name
			if sigil == "#" {
				href = base + "/search?q=" + url.QueryEscape("#"+name)
			}
			b.WriteString(`<a href="` + html.EscapeString(href) + `">` + sigil + html.EscapeString(name) + `</a>`)
			last = m[1]
		}
		b.WriteString(html.EscapeString(s[last:]))
		return b.String(), true
	})
}
