// Package pipeline runs text through a full filter chain:
// macropre, markup, macropost, then every post-process filter in order.
package pipeline

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/open-cli-collective/textfilter-cli/pkg/textfilter"
)

// DefaultMarkup is used when a chain names no markup filter.
const DefaultMarkup = "none"

// Chain names the filters a text is rendered with.
type Chain struct {
	Markup      string   `json:"markup"`
	PostProcess []string `json:"post_process,omitempty"`
	// Sanitize runs the result through textfilter.Sanitize as a last step.
	Sanitize bool `json:"sanitize,omitempty"`
}

// Step is one resolved filter of a chain.
type Step struct {
	Name   string
	Filter textfilter.Filter
}

// Pipeline resolves chains against a registry and renders text.
type Pipeline struct {
	registry *textfilter.Registry
	cache    *cache.Cache
	logger   logrus.FieldLogger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCache memoizes rendered output for ttl. A non-positive ttl disables it.
func WithCache(ttl time.Duration) Option {
	return func(p *Pipeline) {
		if ttl <= 0 {
			p.cache = nil
			return
		}
		p.cache = cache.New(ttl, 2*ttl)
	}
}

// WithLogger overrides the logger, which defaults to textfilter.Logger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// New creates a pipeline over reg, or over textfilter.Default when reg is nil.
func New(reg *textfilter.Registry, opts ...Option) *Pipeline {
	if reg == nil {
		reg = textfilter.Default
	}
	p := &Pipeline{registry: reg}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = textfilter.Logger()
	}
	return p
}

// Steps resolves a chain into its ordered filters.
func (p *Pipeline) Steps(chain Chain) ([]Step, error) {
	markupName := chain.Markup
	if markupName == "" {
		markupName = DefaultMarkup
	}
	markup, err := p.registry.Lookup(markupName)
	if err != nil {
		return nil, err
	}
	if t := textfilter.TypeOf(markup); t != textfilter.TypeMarkup {
		return nil, fmt.Errorf("%w: %s is %s, not markup", textfilter.ErrWrongFilterType, markupName, t)
	}

	steps := []Step{
		{Name: string(textfilter.TypeMacroPre), Filter: textfilter.NewStage(p.registry, textfilter.TypeMacroPre)},
		{Name: markupName, Filter: markup},
		{Name: string(textfilter.TypeMacroPost), Filter: textfilter.NewStage(p.registry, textfilter.TypeMacroPost)},
	}

	for _, name := range chain.PostProcess {
		f, err := p.registry.Lookup(name)
		if err != nil {
			return nil, err
		}
		if t := textfilter.TypeOf(f); t != textfilter.TypePostProcess {
			return nil, fmt.Errorf("%w: %s is %s, not postprocess", textfilter.ErrWrongFilterType, name, t)
		}
		steps = append(steps, Step{Name: name, Filter: f})
	}

	if chain.Sanitize {
		steps = append(steps, Step{Name: "sanitize", Filter: sanitizeFilter})
	}
	return steps, nil
}

// Render runs text through every step of chain. Cancellation is checked
// between steps.
func (p *Pipeline) Render(ctx context.Context, chain Chain, params textfilter.Params, text string) (string, error) {
	key, cacheable := p.cacheKey(chain, params, text)
	if cacheable {
		if v, found := p.cache.Get(key); found {
			if out, ok := v.(string); ok {
				p.logger.WithField("key", key).Debug("render cache hit")
				return out, nil
			}
		}
	}

	steps, err := p.Steps(chain)
	if err != nil {
		return "", err
	}

	out := text
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out, err = step.Filter.Filtertext(params, out)
		if err != nil {
			return "", fmt.Errorf("%s: %w", step.Name, err)
		}
	}

	if cacheable {
		p.cache.Set(key, out, cache.DefaultExpiration)
	}
	p.logger.WithFields(logrus.Fields{
		"markup": chain.Markup,
		"steps":  len(steps),
	}).Debug("rendered text")
	return out, nil
}

// Purge empties the render cache.
func (p *Pipeline) Purge() {
	if p.cache != nil {
		p.cache.Flush()
	}
}

func (p *Pipeline) cacheKey(chain Chain, params textfilter.Params, text string) (string, bool) {
	if p.cache == nil {
		return "", false
	}
	raw, err := json.Marshal(struct {
		Chain  Chain             `json:"chain"`
		Params textfilter.Params `json:"params"`
		Text   string            `json:"text"`
	}{chain, params, text})
	if err != nil {
		return "", false
	}
	sum := sha1.Sum(raw)
	return hex.EncodeToString(sum[:]), true
}

var sanitizeFilter = &textfilter.Func{
	Meta: textfilter.Descriptor{
		Identity:    "pipeline.Sanitize",
		Type:        textfilter.TypeOther,
		DisplayName: "Sanitize",
	},
	Fn: func(_ textfilter.Params, text string) (string, error) {
		return textfilter.Sanitize(text), nil
	},
}
