package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		params   textfilter.Params
		input    string
		contains []string
	}{
		{
			name:     "heading",
			input:    "# Title",
			contains: []string{"<h1>Title</h1>"},
		},
		{
			name:     "emphasis",
			input:    "some *em* and **strong**",
			contains: []string{"<em>em</em>", "<strong>strong</strong>"},
		},
		{
			name:     "strikethrough extension",
			input:    "~~gone~~",
			contains: []string{"<del>gone</del>"},
		},
		{
			name:     "raw html kept",
			input:    "<div class=\"x\">kept</div>",
			contains: []string{`<div class="x">kept</div>`},
		},
		{
			name:     "self-closing macro tag survives",
			input:    `Hello <macro:lightbox src="a.png"/> world`,
			contains: []string{`<p>Hello <macro:lightbox src="a.png"/> world</p>`},
		},
		{
			name:     "paired macro tag survives",
			input:    "<macro:lightbox src=\"a.png\">a *fine* caption</macro:lightbox>",
			contains: []string{`<macro:lightbox src="a.png">a <em>fine</em> caption</macro:lightbox>`},
		},
		{
			name:     "macro tag in code span is escaped",
			input:    "Use `<macro:lightbox src=\"a.png\"/>` to embed.",
			contains: []string{`<p>Use <code>&lt;macro:lightbox src=&#34;a.png&#34;/&gt;</code> to embed.</p>`},
		},
		{
			name:     "macro tag in fenced block is escaped",
			input:    "```\n<macro:lightbox src=\"a.png\"/>\n```\n\n<macro:lightbox src=\"b.png\"/>",
			contains: []string{"<code>&lt;macro:lightbox src=&#34;a.png&#34;/&gt;\n</code>", `<macro:lightbox src="b.png"/>`},
		},
		{
			name:     "custom namespace",
			params:   textfilter.Params{Namespace: "tf"},
			input:    `before <tf:lightbox src="a_b_c.png"/> after`,
			contains: []string{`<tf:lightbox src="a_b_c.png"/>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Markdown.Filtertext(tt.params, tt.input)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestMarkdown_Empty(t *testing.T) {
	out, err := Markdown.Filtertext(textfilter.Params{}, "")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestNone_PassesThrough(t *testing.T) {
	in := "# not *converted* <macro:x/>"
	out, err := None.Filtertext(textfilter.Params{}, in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestProtectMacroTags(t *testing.T) {
	text, tags := protectMacroTags("macro", `<macro:a/> x <macro:b k="v">y</macro:b> <other:c/>`)
	assert.Equal(t, "TFLMACRO0END x TFLMACRO1ENDyTFLMACRO2END <other:c/>", text)
	assert.Equal(t, []string{`<macro:a/>`, `<macro:b k="v">`, `</macro:b>`}, tags)

	restored, err := restoreMacroTags(text, tags)
	require.NoError(t, err)
	assert.Equal(t, `<macro:a/> x <macro:b k="v">y</macro:b> <other:c/>`, restored)
}

func TestProtectMacroTags_NoTags(t *testing.T) {
	text, tags := protectMacroTags("", "plain text")
	assert.Equal(t, "plain text", text)
	assert.Nil(t, tags)
}

func TestMarkdown_QuotedMacroNotExpanded(t *testing.T) {
	out, err := Markdown.Filtertext(textfilter.Params{}, "Use `<macro:lightbox src=\"a.png\"/>` to embed.")
	require.NoError(t, err)

	expanded, err := Lightbox.Filtertext(textfilter.Params{}, out)
	require.NoError(t, err)
	assert.Equal(t, out, expanded)
	assert.NotContains(t, expanded, "<img")
}
