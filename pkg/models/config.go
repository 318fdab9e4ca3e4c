package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ConfigEntry is a single key/value pair of a node config.
type ConfigEntry struct {
	Key   string
	Value any
}

// Config is a node config mapping that remembers insertion order. JSON and YAML
// documents decode in document order; a repeated key keeps its first position and
// takes the last value.
type Config []ConfigEntry

// NewConfig builds a config from entries, applying Set semantics in order.
func NewConfig(entries ...ConfigEntry) Config {
	var c Config
	for _, e := range entries {
		c.Set(e.Key, e.Value)
	}

	return c
}

// Get returns the value stored under key.
func (c Config) Get(key string) (any, bool) {
	for _, e := range c {
		if e.Key == key {
			return e.Value, true
		}
	}

	return nil, false
}

// String returns the value under key when it is a string.
func (c Config) String(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// Set stores value under key, keeping the key's position when it already exists.
func (c *Config) Set(key string, value any) {
	for i := range *c {
		if (*c)[i].Key == key {
			(*c)[i].Value = value

			return
		}
	}

	*c = append(*c, ConfigEntry{Key: key, Value: value})
}

// Keys returns the keys in insertion order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for _, e := range c {
		keys = append(keys, e.Key)
	}

	return keys
}

// Map returns an unordered copy, for consumers that only need lookups.
func (c Config) Map() map[string]any {
	m := make(map[string]any, len(c))
	for _, e := range c {
		m[e.Key] = e.Value
	}

	return m
}

// MarshalJSON encodes the config as a JSON object in insertion order.
func (c Config) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config value %q: %w", e.Key, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping document key order.
func (c *Config) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = nil

		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("config must be a JSON object")
	}

	var out Config

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected config key token %v", tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode config value %q: %w", key, err)
		}

		out.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out

	return nil
}

// UnmarshalYAML decodes a YAML mapping, keeping document key order.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*c = nil

		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("config must be a mapping, line %d", node.Line)
	}

	var out Config

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var value any
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode config value %q: %w", keyNode.Value, err)
		}

		out.Set(keyNode.Value, value)
	}

	*c = out

	return nil
}

// MarshalYAML encodes the config as a YAML mapping in insertion order.
func (c Config) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, e := range c {
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("failed to encode config value %q: %w", e.Key, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			valueNode,
		)
	}

	return node, nil
}
