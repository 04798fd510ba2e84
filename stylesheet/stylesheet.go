// Package stylesheet renders rules built from assembled selectors as CSS
// text. It is a plain text producer - selectors and property values pass
// through verbatim.
package stylesheet

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"cssel/selector"
)

// Rule is a single CSS rule: an assembled selector plus its property
// declarations. Name, when set, is emitted as a comment above the rule.
type Rule struct {
	Name       string
	Selector   selector.Selector
	Properties map[string]string
}

// GetProperty returns the value for a property, or false if not present.
func (r Rule) GetProperty(name string) (string, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// Stylesheet is an ordered collection of rules.
type Stylesheet struct {
	Rules []Rule
}

// RulesBySelector returns all rules whose selector renders to the given
// string.
func (s *Stylesheet) RulesBySelector(sel string) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		if r.Selector.String() == sel {
			matches = append(matches, r)
		}
	}
	return matches
}

// Selectors returns the rendered selector of every rule in natural sort
// order (so "h2" comes before "h10").
func (s *Stylesheet) Selectors() []string {
	out := make([]string, 0, len(s.Rules))
	for _, r := range s.Rules {
		out = append(out, r.Selector.String())
	}
	sort.Slice(out, func(i, j int) bool {
		return natural.Less(out[i], out[j])
	})
	return out
}

// WriteTo writes the stylesheet to w in source order, implementing
// io.WriterTo. Property order within a rule is sorted alphabetically for
// deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range s.Rules {
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}

		// Blank line between rules (except after last)
		if i < len(s.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w.
func writeRule(w io.Writer, rule *Rule) (int, error) {
	var total int

	if rule.Name != "" {
		n, err := fmt.Fprintf(w, "/* %s */\n", rule.Name)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err := fmt.Fprintf(w, "%s {\n", rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties)
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// writeProperties writes property declarations sorted alphabetically.
func writeProperties(w io.Writer, props map[string]string) (int, error) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int
	for _, name := range names {
		n, err := fmt.Fprintf(w, "  %s: %s;\n", name, props[name])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
