package manifest

import (
	"fmt"

	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssel/selector"
	"cssel/stylesheet"
)

// Option configures a Builder.
type Option func(*Builder)

// WithSlugifiedIdents makes the builder normalize id and class idents
// into URL/CSS friendly slugs ("Main Content" becomes "main-content").
// Attribute and pseudo values are never touched.
func WithSlugifiedIdents() Option {
	return func(b *Builder) {
		b.slugify = true
	}
}

// Builder assembles manifest specs into selectors and stylesheets.
type Builder struct {
	log     *zap.Logger
	slugify bool
}

// NewBuilder creates a manifest builder. Pass nil logger to disable logging.
func NewBuilder(log *zap.Logger, opts ...Option) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Builder{log: log}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) ident(v string) string {
	if b.slugify {
		return slug.Make(v)
	}
	return v
}

// apply adds a single manifest fragment to sel, enforcing that exactly
// one fragment field is set.
func (b *Builder) apply(sel selector.Selector, f Fragment) (selector.Selector, error) {
	var (
		res   selector.Selector
		err   error
		count int
	)
	for _, v := range []string{f.Element, f.ID, f.Class, f.Attr, f.PseudoClass, f.PseudoElement} {
		if v != "" {
			count++
		}
	}
	if count == 0 {
		return sel, fmt.Errorf("selector part is empty")
	}
	if count > 1 {
		return sel, fmt.Errorf("selector part sets more than one fragment")
	}

	switch {
	case f.Element != "":
		res, err = sel.Element(f.Element)
	case f.ID != "":
		res, err = sel.ID(b.ident(f.ID))
	case f.Class != "":
		res, err = sel.Class(b.ident(f.Class))
	case f.Attr != "":
		res, err = sel.Attr(f.Attr)
	case f.PseudoClass != "":
		res, err = sel.PseudoClass(f.PseudoClass)
	case f.PseudoElement != "":
		res, err = sel.PseudoElement(f.PseudoElement)
	}
	if err != nil {
		return sel, err
	}
	return res, nil
}

// Selector assembles a single selector from its manifest spec.
func (b *Builder) Selector(spec Spec) (selector.Selector, error) {
	var sel selector.Selector

	if spec.Combine != nil {
		if len(spec.Parts) > 0 {
			return sel, fmt.Errorf("selector has both parts and combine")
		}

		left, err := b.Selector(spec.Combine.Left)
		if err != nil {
			return sel, fmt.Errorf("left side: %w", err)
		}
		right, err := b.Selector(spec.Combine.Right)
		if err != nil {
			return sel, fmt.Errorf("right side: %w", err)
		}

		comb := spec.Combine.Combinator
		if comb == "" {
			comb = " "
		}
		return selector.Combine(left, comb, right), nil
	}

	if len(spec.Parts) == 0 {
		return sel, fmt.Errorf("selector has no parts")
	}

	var err error
	for i, part := range spec.Parts {
		if sel, err = b.apply(sel, part); err != nil {
			return sel, fmt.Errorf("part %d: %w", i+1, err)
		}
	}
	return sel, nil
}

// Stylesheet assembles every rule in the manifest. Failures do not stop
// processing - errors from all broken rules are collected and returned
// together, so a single pass reports everything that needs fixing.
func (b *Builder) Stylesheet(m *Manifest) (*stylesheet.Stylesheet, error) {
	var errs error

	sheet := &stylesheet.Stylesheet{}
	for i, rule := range m.Rules {
		name := rule.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}

		sel, err := b.Selector(rule.Selector)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("rule %s: %w", name, err))
			continue
		}

		b.log.Debug("Assembled selector", zap.String("rule", name), zap.Stringer("selector", sel))
		sheet.Rules = append(sheet.Rules, stylesheet.Rule{
			Name:       rule.Name,
			Selector:   sel,
			Properties: rule.Properties,
		})
	}
	if errs != nil {
		return nil, errs
	}
	return sheet, nil
}
