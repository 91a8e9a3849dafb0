package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	data, err := generate()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))
	defs, ok := schema["$defs"].(map[string]interface{})
	require.True(t, ok)
	cfg, ok := defs["Config"].(map[string]interface{})
	require.True(t, ok)
	props, ok := cfg["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, section := range []string{"server", "database", "remote", "llm", "extraction", "sync", "network", "download"} {
		assert.Contains(t, props, section)
	}
}

func TestCompare(t *testing.T) {
	data, err := generate()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, append(data, '\n'), 0o600))
	require.NoError(t, compare(path, data))

	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))
	err = compare(path, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is stale")

	err = compare(filepath.Join(t.TempDir(), "missing.json"), data)
	require.Error(t, err)
}
