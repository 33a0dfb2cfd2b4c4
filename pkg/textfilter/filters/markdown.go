package filters

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"

	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

// mdEngine is the shared goldmark instance. Raw HTML is kept so the output of
// pre-markup macros reaches the later stages intact.
var mdEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// Macro tags are swapped for placeholders during conversion. CommonMark does
// not accept ':' in tag names and would escape them, which hides the tags
// from the macropost stage. The placeholder avoids markdown punctuation.
const (
	tagPlaceholderPrefix = "TFLMACRO"
	tagPlaceholderSuffix = "END"
)

// Markdown converts Markdown (GitHub flavored) to HTML.
var Markdown = &textfilter.Func{
	Meta: textfilter.Descriptor{
		Identity:    "textfilter.Markdown",
		Type:        textfilter.TypeMarkup,
		DisplayName: "Markdown",
		Description: "Markdown markup language",
		HelpText: `[Markdown](https://commonmark.org/help/) with GitHub extensions:
tables, strikethrough, autolinks and task lists. Raw HTML is passed through.`,
	},
	Fn: renderMarkdown,
}

// None leaves text untouched.
var None = &textfilter.Func{
	Meta: textfilter.Descriptor{
		Identity:    "textfilter.None",
		Type:        textfilter.TypeMarkup,
		DisplayName: "None",
		Description: "Raw HTML only",
	},
}

func init() {
	textfilter.MustRegister(None)
	textfilter.MustRegister(Markdown)
}

func renderMarkdown(p textfilter.Params, text string) (string, error) {
	if text == "" {
		return "", nil
	}

	protected, tags := protectMacroTags(p.Namespace, text)

	var buf bytes.Buffer
	if err := mdEngine.Convert([]byte(protected), &buf); err != nil {
		return "", fmt.Errorf("markdown: %w", err)
	}

	return restoreMacroTags(buf.String(), tags)
}

// protectMacroTags replaces every opening, closing, or self-closing tag in the
// macro namespace with a numbered placeholder.
func protectMacroTags(namespace, text string) (string, []string) {
	if namespace == "" {
		namespace = textfilter.DefaultNamespace
	}
	if !strings.Contains(text, namespace+":") {
		return text, nil
	}

	pattern := regexp.MustCompile(`</?` + regexp.QuoteMeta(namespace) + `:[A-Za-z0-9_-]+(?:[ \t][^>]*)?/?>`)
	var tags []string
	out := pattern.ReplaceAllStringFunc(text, func(tag string) string {
		tags = append(tags, tag)
		return formatTagPlaceholder(len(tags) - 1)
	})
	return out, tags
}

// codeElements hold literal text; a macro tag quoted there is shown, not run.
var codeElements = skipSet("code", "pre")

var tagPlaceholderPattern = regexp.MustCompile(tagPlaceholderPrefix + `(\d+)` + tagPlaceholderSuffix)

// restoreMacroTags puts the protected tags back. Inside code elements they
// come back escaped so later stages see text, not tags.
func restoreMacroTags(out string, tags []string) (string, error) {
	if len(tags) == 0 {
		return out, nil
	}

	replace := func(s string, escape bool) string {
		return tagPlaceholderPattern.ReplaceAllStringFunc(s, func(ph string) string {
			id, err := strconv.Atoi(tagPlaceholderPattern.FindStringSubmatch(ph)[1])
			if err != nil || id >= len(tags) {
				return ph
			}
			if escape {
				return html.EscapeString(tags[id])
			}
			return tags[id]
		})
	}

	out, err := mapTextTokens(out, codeElements, func(raw string, inCode bool) (string, bool) {
		if !inCode || !strings.Contains(raw, tagPlaceholderPrefix) {
			return raw, false
		}
		return replace(raw, true), true
	})
	if err != nil {
		return "", err
	}
	return replace(out, false), nil
}

func formatTagPlaceholder(id int) string {
	return tagPlaceholderPrefix + strconv.Itoa(id) + tagPlaceholderSuffix
}
