package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownKey is returned by Get and Set for keys that do not exist.
var ErrUnknownKey = errors.New("unknown configuration key")

// Get returns the value at a dotted key such as "calculator.cost_per_kwh".
func (c *Config) Get(key string) (string, error) {
	tree, err := c.tree()
	if err != nil {
		return "", err
	}
	value, ok := lookup(tree, key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if section, isSection := value.(map[string]interface{}); isSection {
		out, marshalErr := yaml.Marshal(section)
		if marshalErr != nil {
			return "", marshalErr
		}
		return strings.TrimRight(string(out), "\n"), nil
	}
	return fmt.Sprint(value), nil
}

// Set assigns a scalar at a dotted key. The value is decoded with the type of
// the field it replaces.
func (c *Config) Set(key, value string) error {
	tree, err := c.tree()
	if err != nil {
		return err
	}

	parts := strings.Split(key, ".")
	parent := tree
	for _, p := range parts[:len(parts)-1] {
		next, ok := parent[p].(map[string]interface{})
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		parent = next
	}

	leaf := parts[len(parts)-1]
	current, ok := parent[leaf]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if _, isSection := current.(map[string]interface{}); isSection {
		return fmt.Errorf("%s is a section, set one of its keys instead", key)
	}

	if _, isString := current.(string); isString {
		parent[leaf] = value
	} else {
		var decoded interface{}
		if err = yaml.Unmarshal([]byte(value), &decoded); err != nil {
			return fmt.Errorf("parsing value for %s: %w", key, err)
		}
		parent[leaf] = decoded
	}

	data, err := yaml.Marshal(tree)
	if err != nil {
		return err
	}
	updated := Config{configPath: c.configPath}
	if err = yaml.Unmarshal(data, &updated); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*c = updated
	return nil
}

// List returns every leaf as "key=value", sorted by key.
func (c *Config) List() ([]string, error) {
	tree, err := c.tree()
	if err != nil {
		return nil, err
	}
	var out []string
	flatten("", tree, &out)
	sort.Strings(out)
	return out, nil
}

func (c *Config) tree() (map[string]interface{}, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	var tree map[string]interface{}
	if err = yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return tree, nil
}

func lookup(tree map[string]interface{}, key string) (interface{}, bool) {
	var node interface{} = tree
	for _, p := range strings.Split(key, ".") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if node, ok = m[p]; !ok {
			return nil, false
		}
	}
	return node, true
}

func flatten(prefix string, node map[string]interface{}, out *[]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if child, ok := v.(map[string]interface{}); ok {
			flatten(key, child, out)
			continue
		}
		*out = append(*out, fmt.Sprintf("%s=%v", key, v))
	}
}
