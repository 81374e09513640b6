// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"code.hybscloud.com/chain/internal/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func decodeRows(t *testing.T, out string) []result {
	t.Helper()
	var rows []result
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	return rows
}

func TestRunJSON(t *testing.T) {
	out, err := execute(t, "run", "--output", "json")
	require.NoError(t, err)

	rows := decodeRows(t, out)
	require.Len(t, rows, 5)
	for i, r := range rows {
		require.NotNil(t, r.Output, "input %d", r.Input)
		assert.Equal(t, i+1, r.Input)
		assert.Equal(t, 2*r.Input-1, *r.Output)
		assert.Empty(t, r.Error)
	}
}

func TestRunStrictReportsFailure(t *testing.T) {
	out, err := execute(t, "run", "--strict", "--input", "2,3", "--output", "json")
	require.NoError(t, err)

	rows := decodeRows(t, out)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].Output)
	assert.Contains(t, rows[0].Error, "odd input")
	require.NotNil(t, rows[1].Output)
	assert.Equal(t, 5, *rows[1].Output)
}

func TestRunTraceDoesNotChangeResults(t *testing.T) {
	plain, err := execute(t, "run", "--strict", "--input", "1,2,3,4", "--output", "json")
	require.NoError(t, err)
	traced, err := execute(t, "run", "--strict", "--input", "1,2,3,4", "--output", "json", "--trace")
	require.NoError(t, err)

	assert.Equal(t, decodeRows(t, plain), decodeRows(t, traced))
}

func TestRunYAML(t *testing.T) {
	out, err := execute(t, "run", "--input", "5", "--output", "yaml")
	require.NoError(t, err)

	var rows []result
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Output)
	assert.Equal(t, 9, *rows[0].Output)
}

func TestRunTable(t *testing.T) {
	out, err := execute(t, "run", "--input", "4")
	require.NoError(t, err)
	assert.Contains(t, strings.ToUpper(out), "INPUT")
	assert.Contains(t, out, "7")
}

func TestRunMetrics(t *testing.T) {
	out, err := execute(t, "run", "--input", "1,2", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, `chain_step_total{outcome="ok",step="sample.AddOne"} 2`)
	assert.Contains(t, out, "chain_step_duration_seconds_bucket")
}

func TestRunRejectsInvalidOutput(t *testing.T) {
	_, err := execute(t, "run", "--output", "xml")
	require.ErrorIs(t, err, config.ErrInvalidOutput)
}

func TestConfigShow(t *testing.T) {
	out, err := execute(t, "config", "show", "--output", "json")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, config.OutputJSON, cfg.Output)
	assert.False(t, cfg.Trace)
	assert.Equal(t, "error", cfg.LogLevel)
}
