package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/cmdbot"
	"github.com/aretw0/cmdbot/pkg/trigger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "none.yaml")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cmdbot version "+cmdbot.Version+"\n", out)
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "validate", "--config", missingConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "12 bindings")

	bad := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(bad, []byte("buttons {\n  black_1 = 40\n}\n"), 0o644))
	_, err = execute(t, "validate", "--config", bad)
	assert.ErrorContains(t, err, "validation failed")
}

func TestBindingsJSON(t *testing.T) {
	out, err := execute(t, "bindings", "--json", "--config", missingConfig(t))
	require.NoError(t, err)

	var doc struct {
		Bindings []trigger.BindingInfo `json:"bindings"`
		Hazards  []trigger.Hazard      `json:"hazards"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc.Bindings, 12)
	assert.NotEmpty(t, doc.Hazards)
}

func TestAuto(t *testing.T) {
	out, err := execute(t, "auto", "--config", missingConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "autonomous")
	assert.Contains(t, out, "Autonomous finished")
}

func TestToken(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "auth.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("http:\n  auth_secret: s3cret\n"), 0o644))
	out, err := execute(t, "token", "alice", "--config", cfg)
	require.NoError(t, err)
	assert.Regexp(t, `^[\w-]+\.[\w-]+\.[\w-]+\n$`, out)

	_, err = execute(t, "token", "--config", missingConfig(t))
	assert.ErrorContains(t, err, "auth_secret")
}

func TestBindingsMermaid(t *testing.T) {
	out, err := execute(t, "bindings", "--mermaid", "--json=false", "--config", missingConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")
	assert.Contains(t, out, "s_grabber")
}
