package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tessera-io/tessera/internal/node"
)

// Scenario defines one decompose/recompose conformance case.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Tree is the object tree to decompose. Mappings become objects,
	// sequences become lists, scalars become primitives.
	Tree yaml.Node `yaml:"tree"`

	// Expect holds the expected decomposition outcome.
	Expect Expectations `yaml:"expect"`
}

// Expectations validates the decomposition outcome.
type Expectations struct {
	// Saved is the number of distinct records the sink must hold after
	// decomposition (detached descendants plus the root).
	Saved int `yaml:"saved"`

	// TotalChildren is the expected total-children hint on the rebuilt
	// root object.
	TotalChildren int `yaml:"total_children"`

	// RootID optionally pins the root record's content hash.
	RootID string `yaml:"root_id,omitempty"`
}

// LoadScenario reads and parses a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if scenario.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml scenario in a directory, sorted by
// file name for stable test ordering.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		scenario, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}
	return scenarios, nil
}

// BuildTree converts the scenario's YAML tree into an object. The
// document root must be a mapping.
func (s *Scenario) BuildTree() (*node.Object, error) {
	root := &s.Tree
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("scenario %s: tree must be a mapping, got %v", s.Name, root.Kind)
	}
	return buildObject(root)
}

func buildObject(n *yaml.Node) (*node.Object, error) {
	obj := node.NewObject()
	for i := 0; i < len(n.Content); i += 2 {
		key := n.Content[i].Value
		value, err := buildValue(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", key, err)
		}
		obj.SetValue(key, value)
	}
	return obj, nil
}

func buildValue(n *yaml.Node) (node.Value, error) {
	switch n.Kind {
	case yaml.MappingNode:
		return buildObject(n)
	case yaml.SequenceNode:
		list := make(node.List, len(n.Content))
		for i, elem := range n.Content {
			value, err := buildValue(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			list[i] = value
		}
		return list, nil
	case yaml.ScalarNode:
		return buildScalar(n)
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %v", n.Kind)
	}
}

func buildScalar(n *yaml.Node) (node.Value, error) {
	switch n.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q: %w", n.Value, err)
		}
		return node.Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid int %q: %w", n.Value, err)
		}
		return node.Int(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q: %w", n.Value, err)
		}
		return node.Float(f), nil
	default:
		return node.String(n.Value), nil
	}
}
