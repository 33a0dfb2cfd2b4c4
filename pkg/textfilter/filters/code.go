package filters

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

// Code highlights the body of <macro:code> tags before markup runs.
var Code = &textfilter.Macro{
	Meta: textfilter.Descriptor{
		Identity:    "textfilter.Code",
		Type:        textfilter.TypeMacroPre,
		DisplayName: "Code",
		Description: "Syntax highlighting for code blocks",
		DefaultConfig: textfilter.Config{
			"code-style": {Default: "monokai", Description: "Highlighting style name"},
		},
		HelpText: `Wrap source in <macro:code> to highlight it:

    <macro:code lang="go" title="main.go">
    fmt.Println("hi")
    </macro:code>

Attributes: lang (language name, optional), title (caption, optional).`,
	},
}

func init() {
	Code.Expand = expandCode
	textfilter.MustRegister(Code)
}

func expandCode(p textfilter.Params, attrs textfilter.Attributes, body string) (string, error) {
	body = strings.Trim(body, "\r\n")
	if body == "" {
		return "", nil
	}

	style, err := textfilter.ConfigString(Code, p, "code-style")
	if err != nil {
		return "", err
	}

	fence := codeFence(body)
	src := fence + attrs.Get("lang", "") + "\n" + body + "\n" + fence + "\n"

	md := goldmark.New(goldmark.WithExtensions(
		highlighting.NewHighlighting(highlighting.WithStyle(style)),
	))
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("highlight: %w", err)
	}

	var out strings.Builder
	out.WriteString(`<div class="codeblock">`)
	if title := attrs.Get("title", ""); title != "" {
		out.WriteString(`<p class="codetitle">` + html.EscapeString(title) + `</p>`)
	}
	out.WriteString(strings.TrimRight(buf.String(), "\n"))
	out.WriteString(`</div>`)

	// A single line keeps a later markdown pass from splitting the block at
	// blank lines inside the code.
	return strings.ReplaceAll(out.String(), "\n", "&#10;"), nil
}

// codeFence returns a backtick fence longer than any run inside body.
func codeFence(body string) string {
	longest, run := 0, 0
	for _, r := range body {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}
