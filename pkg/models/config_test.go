package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_UnmarshalJSON_KeepsDocumentOrder(t *testing.T) {
	var c Config

	err := json.Unmarshal([]byte(`{"zeta": 1, "alpha": "a", "mid": {"x": true}}`), &c)
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, c.Keys())

	v, ok := c.Get("zeta")
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 0)

	s, ok := c.String("alpha")
	require.True(t, ok)
	assert.Equal(t, "a", s)
}

func TestConfig_UnmarshalJSON_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	var c Config

	err := json.Unmarshal([]byte(`{"a": 1, "b": 2, "a": 3}`), &c)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, c.Keys())

	v, _ := c.Get("a")
	assert.InDelta(t, 3.0, v, 0)
}

func TestConfig_UnmarshalJSON_RejectsNonObject(t *testing.T) {
	var c Config

	err := json.Unmarshal([]byte(`[1, 2]`), &c)
	require.Error(t, err)
}

func TestConfig_MarshalJSON_InsertionOrder(t *testing.T) {
	c := NewConfig(
		ConfigEntry{Key: "url", Value: "https://example.com"},
		ConfigEntry{Key: "method", Value: "POST"},
		ConfigEntry{Key: "retries", Value: 3},
	)

	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"url":"https://example.com","method":"POST","retries":3}`, string(data))
	assert.Equal(t, `{"url":"https://example.com","method":"POST","retries":3}`, string(data))
}

func TestConfig_NullDecodesToEmpty(t *testing.T) {
	var node struct {
		Config Config `json:"config"`
	}

	err := json.Unmarshal([]byte(`{"config": null}`), &node)
	require.NoError(t, err)
	assert.Empty(t, node.Config)
}

func TestConfig_YAMLRoundTripKeepsOrder(t *testing.T) {
	doc := "config:\n  subject: hello\n  to: ops@example.com\n  cc: []\n"

	var node struct {
		Config Config `yaml:"config"`
	}

	require.NoError(t, yaml.Unmarshal([]byte(doc), &node))
	assert.Equal(t, []string{"subject", "to", "cc"}, node.Config.Keys())

	out, err := yaml.Marshal(node)
	require.NoError(t, err)
	assert.Contains(t, string(out), "subject: hello\n    to: ops@example.com")
}

func TestConfig_Set(t *testing.T) {
	var c Config

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 10)

	assert.Equal(t, []string{"a", "b"}, c.Keys())
	assert.Equal(t, map[string]any{"a": 10, "b": 2}, c.Map())
}
