package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

func TestSmartyPants(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "nothing to do",
			input:    "<p>plain</p>",
			expected: "<p>plain</p>",
		},
		{
			name:     "double quotes",
			input:    `<p>say "hi"</p>`,
			expected: "<p>say “hi”</p>",
		},
		{
			name:     "apostrophe and single quotes",
			input:    `<p>it's 'fine'</p>`,
			expected: "<p>it’s ‘fine’</p>",
		},
		{
			name:     "dashes and ellipsis",
			input:    "<p>a---b, 1--2, wait...</p>",
			expected: "<p>a—b, 1–2, wait…</p>",
		},
		{
			name:     "quotes across inline elements",
			input:    `<p>He said "<em>hi</em>"</p>`,
			expected: "<p>He said “<em>hi</em>”</p>",
		},
		{
			name:     "code left alone",
			input:    `<p>"a"</p><code>"b"</code>`,
			expected: `<p>“a”</p><code>"b"</code>`,
		},
		{
			name:     "only code",
			input:    `<pre>"x" -- y</pre>`,
			expected: `<pre>"x" -- y</pre>`,
		},
		{
			name:     "leading style kept",
			input:    `<style>p{color:red}</style><p>"hi"</p>`,
			expected: "<style>p{color:red}</style><p>“hi”</p>",
		},
		{
			name:     "stray table cell kept",
			input:    `<td>"cell"</td>`,
			expected: "<td>“cell”</td>",
		},
		{
			name:     "entity encoded quotes",
			input:    "<p>say &quot;hi&quot;</p>",
			expected: "<p>say “hi”</p>",
		},
		{
			name:     "comments and attributes untouched",
			input:    `<!-- "x" --><p class="a">'b'</p>`,
			expected: `<!-- "x" --><p class="a">‘b’</p>`,
		},
		{
			name:     "ampersand kept escaped",
			input:    `<p>"a" &amp; b</p>`,
			expected: "<p>“a” &amp; b</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := SmartyPants.Filtertext(textfilter.Params{}, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestSmarten(t *testing.T) {
	out, last := smarten(`"x"`, 0)
	assert.Equal(t, "“x”", out)
	assert.Equal(t, '"', last)

	out, _ = smarten(`"`, 'a')
	assert.Equal(t, "”", out)
}

func TestSmartyPants_AfterMarkdown(t *testing.T) {
	html, err := Markdown.Filtertext(textfilter.Params{}, `say "hi" and 'bye'`)
	require.NoError(t, err)

	out, err := SmartyPants.Filtertext(textfilter.Params{}, html)
	require.NoError(t, err)
	assert.Equal(t, "<p>say “hi” and ‘bye’</p>\n", out)
}
