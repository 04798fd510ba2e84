// Package manifest loads YAML selector rule manifests and assembles them
// into stylesheets using the selector builder.
package manifest

import (
	"bytes"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

type (
	// Fragment is a single selector fragment in a manifest. Exactly one
	// field must be set.
	Fragment struct {
		Element       string `yaml:"element,omitempty"`
		ID            string `yaml:"id,omitempty"`
		Class         string `yaml:"class,omitempty"`
		Attr          string `yaml:"attr,omitempty"`
		PseudoClass   string `yaml:"pseudo_class,omitempty"`
		PseudoElement string `yaml:"pseudo_element,omitempty"`
	}

	// Combine joins two selector specs with a combinator token. An empty
	// combinator means descendant combination (" ").
	Combine struct {
		Left       Spec   `yaml:"left"`
		Combinator string `yaml:"combinator,omitempty"`
		Right      Spec   `yaml:"right"`
	}

	// Spec describes one selector: either an ordered list of fragments or
	// a combination of two specs, never both.
	Spec struct {
		Parts   []Fragment `yaml:"parts,omitempty"`
		Combine *Combine   `yaml:"combine,omitempty"`
	}

	// Rule pairs a selector spec with property declarations.
	Rule struct {
		Name       string            `yaml:"name,omitempty"`
		Selector   Spec              `yaml:"selector"`
		Properties map[string]string `yaml:"properties,omitempty"`
	}

	// Manifest is a whole selector rules document.
	Manifest struct {
		Version int    `yaml:"version"`
		Rules   []Rule `yaml:"rules"`
	}
)

// Parse decodes manifest data. Unknown fields are rejected so typos in
// rule documents do not silently disappear.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest data: %w", err)
	}
	return &m, nil
}

// Load reads and decodes the manifest file at the given path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to process manifest file '%s': %w", path, err)
	}
	return m, nil
}
