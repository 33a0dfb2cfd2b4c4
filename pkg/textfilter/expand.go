// expand.go implements macro tag expansion for <namespace:name .../> tags.
package textfilter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultNamespace is the macro tag namespace used when none is configured.
const DefaultNamespace = "macro"

// Attribute patterns. The double-quoted pass runs first and the single-quoted
// pass second over the same input, so a key present in both styles ends up
// with its single-quoted value.
var (
	doubleQuotedAttr = regexp.MustCompile(`([^\s=]+)="([^"]*)"`)
	singleQuotedAttr = regexp.MustCompile(`([^\s=]+)='([^']*)'`)
)

// ParseAttributes extracts key="value" and key='value' pairs from a tag's
// attribute list. Unquoted values and escaped quotes are not supported;
// anything that does not match is skipped.
func ParseAttributes(s string) Attributes {
	attrs := Attributes{}
	for _, m := range doubleQuotedAttr.FindAllStringSubmatch(s, -1) {
		attrs[m[1]] = m[2]
	}
	for _, m := range singleQuotedAttr.FindAllStringSubmatch(s, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs
}

// ExpandFunc returns the replacement for one matched tag.
type ExpandFunc func(attrs Attributes, body string) (string, error)

// Expander finds the tags of a single macro and replaces them.
//
// Expansion runs in two passes: self-closing tags first, then paired tags over
// the result of the first pass. Matches never overlap or nest, and replacement
// output is not rescanned within the pass that produced it. The patterns are
// RE2 expressions, so scanning is linear in the input length.
type Expander struct {
	Namespace string
	Name      string
	// MaxInput rejects longer texts with ErrInputTooLarge; zero disables the check.
	MaxInput int

	selfClosing *regexp.Regexp
	paired      *regexp.Regexp
}

// NewExpander builds the tag patterns for namespace:name.
func NewExpander(namespace, name string) *Expander {
	tag := regexp.QuoteMeta(namespace + ":" + name)
	return &Expander{
		Namespace:   namespace,
		Name:        name,
		selfClosing: regexp.MustCompile(`<` + tag + `([ \t][^>]*)?/>`),
		paired:      regexp.MustCompile(`(?s)<` + tag + `([ \t][^>]*)?>(.*?)</` + tag + `>`),
	}
}

// Expand replaces every tag of the macro in text with the output of fn.
// Self-closing tags receive an empty body. The first error from fn aborts
// expansion and is returned as-is.
func (e *Expander) Expand(text string, fn ExpandFunc) (string, error) {
	if e.MaxInput > 0 && len(text) > e.MaxInput {
		return "", fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInputTooLarge, len(text), e.MaxInput)
	}

	out, selfClosing, err := replaceMatches(e.selfClosing, text, func(src string, loc []int) (string, error) {
		return fn(ParseAttributes(submatch(src, loc, 1)), "")
	})
	if err != nil {
		return "", err
	}

	out, paired, err := replaceMatches(e.paired, out, func(src string, loc []int) (string, error) {
		return fn(ParseAttributes(submatch(src, loc, 1)), submatch(src, loc, 2))
	})
	if err != nil {
		return "", err
	}

	if selfClosing+paired > 0 {
		Logger().WithFields(logrus.Fields{
			"macro":        e.Name,
			"self_closing": selfClosing,
			"paired":       paired,
		}).Debug("expanded macro tags")
	}
	return out, nil
}

// replaceMatches substitutes every non-overlapping match of re in src, left to
// right, and reports how many matches were replaced.
func replaceMatches(re *regexp.Regexp, src string, fn func(src string, loc []int) (string, error)) (string, int, error) {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, 0, nil
	}

	var sb strings.Builder
	sb.Grow(len(src))
	last := 0
	for _, loc := range matches {
		sb.WriteString(src[last:loc[0]])
		replacement, err := fn(src, loc)
		if err != nil {
			return "", 0, err
		}
		sb.WriteString(replacement)
		last = loc[1]
	}
	sb.WriteString(src[last:])
	return sb.String(), len(matches), nil
}

// submatch returns capture group i of a match, or "" when it did not participate.
func submatch(src string, loc []int, i int) string {
	if 2*i+1 >= len(loc) || loc[2*i] < 0 {
		return ""
	}
	return src[loc[2*i]:loc[2*i+1]]
}
