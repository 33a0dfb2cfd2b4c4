package filters

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

// HTMLToMarkdown converts HTML back to markdown. It is not part of any
// stage and is applied explicitly, e.g. by tfl import.
var HTMLToMarkdown = &textfilter.Func{
	Meta: textfilter.Descriptor{
		Identity:    "textfilter.HTMLToMarkdown",
		Type:        textfilter.TypeOther,
		DisplayName: "HTML to Markdown",
		Description: "Converts HTML to markdown",
	},
	Fn: func(_ textfilter.Params, text string) (string, error) {
		if text == "" {
			return "", nil
		}
		markdown, err := htmltomarkdown.ConvertString(text)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(markdown), nil
	},
}

func init() { textfilter.MustRegister(HTMLToMarkdown) }
