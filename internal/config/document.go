package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse decodes a config document. The variables and aliases mappings are
// walked node by node so their order survives decoding.
func Parse(data []byte) (Config, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Config{}, fmt.Errorf("unmarshal yaml: %w", err)
	}

	cfg := Config{Tracker: TrackerYouTrack}
	if len(root.Content) == 0 {
		return cfg, nil
	}
	if root.Content[0].Kind != yaml.MappingNode {
		return Config{}, NewValidationError("document", "top level must be a mapping")
	}

	if node := FindKey(&root, "tracker"); node != nil && node.Value != "" {
		cfg.Tracker = node.Value
	}
	if node := FindKey(&root, "youtrack"); node != nil {
		if err := node.Decode(&cfg.YouTrack); err != nil {
			return Config{}, fmt.Errorf("decode youtrack section: %w", err)
		}
	}
	if node := FindKey(&root, "github"); node != nil {
		if err := node.Decode(&cfg.GitHub); err != nil {
			return Config{}, fmt.Errorf("decode github section: %w", err)
		}
	}

	variables, err := scalarPairs(FindKey(&root, "variables"), "variables")
	if err != nil {
		return Config{}, err
	}
	for _, p := range variables {
		cfg.Variables = append(cfg.Variables, Variable{Name: p.key, Value: p.value})
	}

	aliases, err := scalarPairs(FindKey(&root, "aliases"), "aliases")
	if err != nil {
		return Config{}, err
	}
	for _, p := range aliases {
		cfg.Aliases = append(cfg.Aliases, Alias{Name: p.key, Query: p.value})
	}

	return cfg, nil
}

// FindKey finds the value node for a given key in a YAML mapping node.
// When root is a DocumentNode, it descends into the first content node.
func FindKey(root *yaml.Node, key string) *yaml.Node {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(root.Content)-1; i += 2 {
		if root.Content[i].Value == key {
			return root.Content[i+1]
		}
	}
	return nil
}

type pair struct {
	key   string
	value string
}

// scalarPairs flattens a mapping of scalars. A repeated key keeps its first value.
func scalarPairs(node *yaml.Node, section string) ([]pair, error) {
	if node == nil || isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, NewValidationError(section, "must be a mapping")
	}

	seen := make(map[string]struct{}, len(node.Content)/2)
	out := make([]pair, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content)-1; i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if _, dup := seen[keyNode.Value]; dup {
			continue
		}
		seen[keyNode.Value] = struct{}{}

		if valueNode.Kind == yaml.AliasNode && valueNode.Alias != nil {
			valueNode = valueNode.Alias
		}
		if valueNode.Kind != yaml.ScalarNode {
			return nil, NewValidationError(fmt.Sprintf("%s.%s", section, keyNode.Value), "must be a scalar value")
		}
		value := valueNode.Value
		if isNull(valueNode) {
			value = ""
		}
		out = append(out, pair{key: keyNode.Value, value: value})
	}
	return out, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}
