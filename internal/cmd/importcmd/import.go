// Package importcmd provides the import command, which turns HTML back into
// markdown.
package importcmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/textfilter-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/textfilter-cli/internal/view"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

const converterName = "htmltomarkdown"

type importOptions struct {
	title       string
	frontMatter bool
	noColor     bool
	stdin       io.Reader // For testing; defaults to os.Stdin
	stdout      io.Writer // For testing; defaults to os.Stdout
}

// header is written ahead of the converted markdown with --front-matter.
type header struct {
	Title      string `yaml:"title,omitempty"`
	TextFilter string `yaml:"text_filter"`
}

// NewCmdImport creates the import command.
func NewCmdImport() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Convert HTML to markdown",
		Long: `Convert an HTML document to markdown so it can be edited and rendered again.

Input is read from the file argument, or from stdin when it is omitted or "-".
With --front-matter and no --title, the title is taken from the document's
<title> element, or its first <h1>.`,
		Example: `  # Convert a saved page
  tfl import page.html > page.md

  # Add a front matter header for tfl render
  curl -s https://example.com | tfl import --front-matter --title "Example"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return runImport(path, opts, nil)
		},
	}

	cmd.Flags().BoolVar(&opts.frontMatter, "front-matter", false, "Prepend a front matter header selecting the markdown filter")
	cmd.Flags().StringVar(&opts.title, "title", "", "Title for the front matter header")

	return cmd
}

func runImport(path string, opts *importOptions, reg *textfilter.Registry) error {
	if reg == nil {
		reg = textfilter.Default
	}

	converter, err := reg.Lookup(converterName)
	if err != nil {
		return err
	}

	input, err := cmdutil.ReadInput(path, opts.stdin)
	if err != nil {
		return err
	}

	markdown, err := converter.Filtertext(textfilter.Params{}, input)
	if err != nil {
		return fmt.Errorf("failed to convert HTML: %w", err)
	}

	if opts.frontMatter || opts.title != "" {
		title := opts.title
		if title == "" {
			title = documentTitle(input)
		}
		head, err := yaml.Marshal(header{Title: title, TextFilter: "markdown"})
		if err != nil {
			return fmt.Errorf("failed to build front matter: %w", err)
		}
		markdown = "---\n" + string(head) + "---\n\n" + strings.TrimLeft(markdown, "\n")
	}

	renderer := view.NewRenderer(view.FormatPlain, opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}
	renderer.RenderDocument(markdown)
	return nil
}

// documentTitle returns the text of the <title> element, falling back to the
// first <h1>. It returns "" when neither is present.
func documentTitle(input string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return ""
	}
	for _, sel := range []string{"head > title", "h1"} {
		if title := strings.TrimSpace(doc.Find(sel).First().Text()); title != "" {
			return title
		}
	}
	return ""
}
