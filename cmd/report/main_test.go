package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const revenueCSV = `user_id,timestamp,value,is_activation
A,2023-01-10,10,true
A,2023-02-10,10,false
A,2023-03-10,10,false
B,2023-01-05,5,true
B,2023-02-05,20,false
C,2023-01-20,1,true
C,2023-03-20,30,false
D,2023-01-15,8,true
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "revenue.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-file", "x.csv", "-short", "2", "-long", "6", "-horizons", "1,2,6", "-cutoff", "2023-02-01"}, io.Discard)
	require.NoError(t, err)

	params, err := opts.params()
	require.NoError(t, err)
	assert.Equal(t, 2, params.ShortHorizon)
	assert.Equal(t, 6, params.LongHorizon)
	assert.Equal(t, []int{1, 2, 6}, params.Horizons)
	assert.Equal(t, 2023, params.Cutoff.Year())
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no source", args: []string{}},
		{name: "unknown format", args: []string{"-file", "x.csv", "-format", "xml"}},
		{name: "bad horizons", args: []string{"-file", "x.csv", "-horizons", "1,a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REVENUE_DSN", "")
			_, err := parseFlags(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestRun_JSON(t *testing.T) {
	path := writeFile(t, revenueCSV)

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-file", path, "-quiet", "-cutoff", "2023-02-01"}, &stdout, io.Discard)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))

	dataset := out["dataset"].(map[string]any)
	assert.Equal(t, float64(4), dataset["customers"])

	report := out["report"].(map[string]any)
	assert.Equal(t, "ok", report["correlation"].(map[string]any)["status"])
	assert.Equal(t, "ok", report["conversion"].(map[string]any)["status"])
	assert.NotContains(t, out, "lift")
}

func TestRun_YAMLWithLift(t *testing.T) {
	path := writeFile(t, revenueCSV)
	outPath := filepath.Join(t.TempDir(), "report.yaml")

	err := run(context.Background(), []string{
		"-file", path, "-format", "yaml", "-out", outPath,
		"-lift-spend", "$100k - $300k", "-lift-roas", "2",
	}, io.Discard, io.Discard)
	require.NoError(t, err)

	content, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, yaml.Unmarshal(content, &out))
	assert.Contains(t, out, "lift")
	assert.Equal(t, "invalid_parameter", out["report"].(map[string]any)["conversion"].(map[string]any)["status"])
}

func TestRun_MissingFile(t *testing.T) {
	err := run(context.Background(), []string{"-file", filepath.Join(t.TempDir(), "missing.csv"), "-quiet"}, io.Discard, io.Discard)
	assert.Error(t, err)
}
