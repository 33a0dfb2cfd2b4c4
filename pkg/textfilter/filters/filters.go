// Package filters holds the built-in text filters. Importing it registers
// every filter with textfilter.Default.
package filters

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// mapTextTokens copies an HTML fragment token by token. fn receives the raw
// source of every text token and whether it sits inside one of the skip
// elements; when it reports a change its result replaces the token. Tags,
// comments and untouched text are copied byte for byte, so nothing is
// reordered or dropped. The fragment itself is returned when fn changed
// nothing.
func mapTextTokens(fragment string, skip map[string]bool, fn func(raw string, skipped bool) (string, bool)) (string, error) {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	b.Grow(len(fragment))

	depth := 0
	changed := false
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			break
		}

		// Raw must be copied before TagName, which lower-cases in place.
		raw := string(z.Raw())
		switch tt {
		case html.TextToken:
			if out, ok := fn(raw, depth > 0); ok {
				b.WriteString(out)
				changed = true
				continue
			}
		case html.StartTagToken:
			if name, _ := z.TagName(); skip[string(name)] {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); depth > 0 && skip[string(name)] {
				depth--
			}
		}
		b.WriteString(raw)
	}

	if !changed {
		return fragment, nil
	}
	return b.String(), nil
}

// rewriteText passes the decoded text of every text node outside the skipped
// elements to fn, in document order. fn returns HTML, which is spliced in
// place of the text node when it reports a change.
func rewriteText(fragment string, skip map[string]bool, fn func(text string) (string, bool)) (string, error) {
	return mapTextTokens(fragment, skip, func(raw string, skipped bool) (string, bool) {
		if skipped {
			return raw, false
		}
		return fn(html.UnescapeString(raw))
	})
}

// skipSet builds a lookup of element names whose text must not be rewritten.
func skipSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
