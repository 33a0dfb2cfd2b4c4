package filters

import (
	"html"
	"strings"

	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

// Lightbox turns <macro:lightbox src="..."/> into a linked thumbnail with an
// optional caption.
var Lightbox = &textfilter.Macro{
	Meta: textfilter.Descriptor{
		Identity:    "textfilter.Lightbox",
		Type:        textfilter.TypeMacroPost,
		DisplayName: "Lightbox",
		Description: "Linked image thumbnails with captions",
		DefaultConfig: textfilter.Config{
			"lightbox-rel":   {Default: "lightbox", Description: "rel attribute of the image link"},
			"lightbox-class": {Default: "lightbox", Description: "class attribute of the thumbnail"},
		},
		HelpText: `<macro:lightbox src="full.png" thumb="small.png" title="Title" caption="Caption"/>

Attributes: src (required), thumb (defaults to src), title, alt (defaults to
title), caption. A paired tag uses its body as the caption.`,
	},
}

func init() {
	Lightbox.Expand = expandLightbox
	textfilter.MustRegister(Lightbox)
}

func expandLightbox(p textfilter.Params, attrs textfilter.Attributes, body string) (string, error) {
	src := attrs.Get("src", "")
	if src == "" {
		textfilter.Logger().WithField("macro", "lightbox").Warn("lightbox tag without src dropped")
		return "", nil
	}

	rel, err := textfilter.ConfigString(Lightbox, p, "lightbox-rel")
	if err != nil {
		return "", err
	}
	class, err := textfilter.ConfigString(Lightbox, p, "lightbox-class")
	if err != nil {
		return "", err
	}

	title := attrs.Get("title", "")
	thumb := attrs.Get("thumb", src)
	alt := attrs.Get("alt", title)
	caption := attrs.Get("caption", strings.TrimSpace(body))

	var b strings.Builder
	b.WriteString(`<a href="` + html.EscapeString(src) + `" rel="` + html.EscapeString(rel) + `"`)
	if title != "" {
		b.WriteString(` title="` + html.EscapeString(title) + `"`)
	}
	b.WriteString(`><img src="` + html.EscapeString(thumb) + `" class="` + html.EscapeString(class) +
		`" alt="` + html.EscapeString(alt) + `"/></a>`)
	if caption != "" {
		b.WriteString(`<p class="caption">` + textfilter.Sanitize(caption) + `</p>`)
	}
	return b.String(), nil
}
