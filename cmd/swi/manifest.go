package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/swi"
	"gopkg.in/yaml.v3"
)

// Manifest lists the labeled pages of a training run.
type Manifest struct {
	Examples []ManifestExample `yaml:"examples"`
}

// ManifestExample is one labeled page. Page is resolved relative to the
// manifest file.
type ManifestExample struct {
	ID     string                 `yaml:"id"`
	Page   string                 `yaml:"page"`
	Labels map[string]LabelValues `yaml:"labels"`
}

// TrainingSet returns the example's labels as a training set.
func (e ManifestExample) TrainingSet() swi.TrainingSet {
	set := make(swi.TrainingSet, len(e.Labels))
	for label, values := range e.Labels {
		set[label] = values
	}
	return set
}

// LabelValues holds the expected values of a label. A YAML scalar is read
// as a single value, a sequence as a repeated field. A null value is never
// passed to UnmarshalYAML and leaves the label without values, which
// training rejects.
type LabelValues []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *LabelValues) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = LabelValues{node.Value}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*v = values
		return nil
	default:
		return fmt.Errorf("line %d: label value must be a string or a list of strings", node.Line)
	}
}

// ReadManifest reads and validates the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, swi.Errorf(swi.ENOTFOUND, "manifest %q not found", path)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, swi.Errorf(swi.EINVALID, "invalid manifest %q: %v", path, err)
	}
	if len(m.Examples) == 0 {
		return nil, swi.Errorf(swi.EINVALID, "manifest %q has no examples", path)
	}

	dir := filepath.Dir(path)
	for i := range m.Examples {
		ex := &m.Examples[i]
		if ex.Page == "" {
			return nil, swi.Errorf(swi.EINVALID, "example %d has no page", i+1)
		}
		if len(ex.Labels) == 0 {
			return nil, swi.Errorf(swi.EINVALID, "example %d (%s) has no labels", i+1, ex.Page)
		}
		if !filepath.IsAbs(ex.Page) {
			ex.Page = filepath.Join(dir, ex.Page)
		}
	}
	return &m, nil
}
