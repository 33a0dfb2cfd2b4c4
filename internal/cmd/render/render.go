// Package render provides the render command, which runs text through the
// full filter chain.
package render

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/adrg/frontmatter"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/textfilter-cli/internal/cmd/cmdutil"
	"github.com/open-cli-collective/textfilter-cli/internal/cmd/completion"
	"github.com/open-cli-collective/textfilter-cli/internal/config"
	"github.com/open-cli-collective/textfilter-cli/internal/view"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter/pipeline"
)

type renderOptions struct {
	markup        string
	post          []string
	params        map[string]string
	namespace     string
	sanitize      bool
	noFrontMatter bool
	output        string
	noColor       bool
	configPath    string
	stdin         io.Reader // For testing; defaults to os.Stdin
	stdout        io.Writer // For testing; defaults to os.Stdout
}

// frontMatter holds the per-document settings read from a YAML header.
type frontMatter struct {
	Title        string         `yaml:"title"`
	TextFilter   string         `yaml:"text_filter"`
	PostProcess  []string       `yaml:"post_process"`
	FilterParams map[string]any `yaml:"filter_params"`
}

type renderResult struct {
	Title       string   `json:"title,omitempty"`
	Markup      string   `json:"markup"`
	PostProcess []string `json:"post_process,omitempty"`
	HTML        string   `json:"html"`
}

// NewCmdRender creates the render command.
func NewCmdRender() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render text through the filter chain",
		Long: `Render text through macropre, markup, macropost and the post-process filters.

Input is read from the file argument, or from stdin when it is omitted or "-".
A YAML front matter header may choose the chain for a single document:

  ---
  title: Hello
  text_filter: markdown
  post_process: [smartypants]
  filter_params:
    code-style: github
  ---

Flags take precedence over front matter, which takes precedence over the config file.`,
		Example: `  # Render a markdown file
  tfl render post.md

  # Render stdin with typographic quotes and mention links
  cat post.md | tfl render --post smartypants,twitterfilter

  # Override a filter option
  tfl render post.md --param code-style=github`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.configPath = cmdutil.ConfigPath(cmd)
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return runRender(cmd.Context(), path, opts, nil, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.markup, "markup", "m", "", "Markup filter (default from config)")
	cmd.Flags().StringSliceVarP(&opts.post, "post", "p", nil, "Post-process filters, in order")
	cmd.Flags().StringToStringVar(&opts.params, "param", nil, "Filter option as key=value (repeatable)")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "Macro tag namespace (default \"macro\")")
	cmd.Flags().BoolVar(&opts.sanitize, "sanitize", false, "Sanitize the rendered HTML")
	cmd.Flags().BoolVar(&opts.noFrontMatter, "no-front-matter", false, "Treat a leading front matter block as content")

	_ = cmd.RegisterFlagCompletionFunc("markup", completion.FilterNames(nil, textfilter.TypeMarkup))
	_ = cmd.RegisterFlagCompletionFunc("post", completion.FilterNames(nil, textfilter.TypePostProcess))

	return cmd
}

func runRender(ctx context.Context, path string, opts *renderOptions, cfg *config.Config, reg *textfilter.Registry) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg == nil {
		var err error
		cfg, err = cmdutil.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
	}

	input, err := cmdutil.ReadInput(path, opts.stdin)
	if err != nil {
		return err
	}

	var meta frontMatter
	body := input
	if !opts.noFrontMatter {
		rest, err := frontmatter.Parse(bytes.NewReader([]byte(input)), &meta)
		if err != nil {
			return fmt.Errorf("failed to parse front matter: %w", err)
		}
		body = string(rest)
	}

	chain := cfg.Chain()
	if meta.TextFilter != "" {
		chain.Markup = meta.TextFilter
	}
	if len(meta.PostProcess) > 0 {
		chain.PostProcess = meta.PostProcess
	}
	if opts.markup != "" {
		chain.Markup = opts.markup
	}
	if len(opts.post) > 0 {
		chain.PostProcess = opts.post
	}
	if opts.sanitize {
		chain.Sanitize = true
	}

	params := cmdutil.MergeParams(cfg.Params(), opts.namespace, meta.FilterParams, cmdutil.StringParams(opts.params))

	p := pipeline.New(reg, pipeline.WithCache(cfg.TTL()))
	html, err := p.Render(ctx, chain, params, body)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	if opts.stdout != nil {
		renderer.SetWriter(opts.stdout)
	}

	if opts.output == "json" {
		markup := chain.Markup
		if markup == "" {
			markup = pipeline.DefaultMarkup
		}
		return renderer.RenderJSON(renderResult{
			Title:       meta.Title,
			Markup:      markup,
			PostProcess: chain.PostProcess,
			HTML:        html,
		})
	}

	renderer.RenderDocument(html)
	return nil
}
