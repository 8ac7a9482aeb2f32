package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/assetmap/internal/snapshot"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestExportSampleSVG(t *testing.T) {
	base := filepath.Join(t.TempDir(), "inventory")
	_, err := run(t, "export", "--format", "svg", "--out", base, "--select", "1")
	require.NoError(t, err)

	f, err := os.Open(base + ".svg")
	require.NoError(t, err)
	defer f.Close()
	counts, err := snapshot.Inspect(f)
	require.NoError(t, err)
	assert.Equal(t, 12, counts.Nodes)
	assert.Equal(t, 12, counts.Links)
}

func TestExportFilteredJSON(t *testing.T) {
	base := filepath.Join(t.TempDir(), "network")
	_, err := run(t, "export", "-f", "json", "-o", base, "-t", "network")
	require.NoError(t, err)

	data, err := os.ReadFile(base + ".json")
	require.NoError(t, err)
	var adj map[string][]string
	require.NoError(t, json.Unmarshal(data, &adj))
	assert.Equal(t, map[string][]string{"3": {}, "6": {"3"}, "10": {"6"}}, adj)
}

func TestExportRejectsBadInput(t *testing.T) {
	_, err := run(t, "export", "--format", "png")
	assert.Error(t, err)
	_, err = run(t, "export", "--type", "printer")
	assert.Error(t, err)
}

func TestLayoutJSON(t *testing.T) {
	out, err := run(t, "layout", "--json", "--impact", "8", "--depth", "2")
	require.NoError(t, err)

	var got struct {
		Ticks     int         `json:"ticks"`
		State     string      `json:"state"`
		Positions []layoutRow `json:"positions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Positions, 3)
	assert.Equal(t, "1", got.Positions[0].ID)
	assert.Positive(t, got.Ticks)
	assert.LessOrEqual(t, got.Ticks, 300)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "assetmap")
}
