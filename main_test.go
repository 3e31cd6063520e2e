package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCircuit(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRunHeadless(t *testing.T) {
	dir := t.TempDir()
	path := writeCircuit(t, dir, "ghz.qasm",
		"OPENQASM 2.0;\nqreg q[3];\nh q[0];\ncx q[0], q[1];\ncx q[1], q[2];\ny q[2];\n")

	cfg := NewConfig()
	cfg.Headless = true
	cfg.Circuit = path
	cfg.LogFile = filepath.Join(dir, "qfield.log")

	var out bytes.Buffer
	require.NoError(t, run(cfg, &out))
	assert.Contains(t, out.String(), "|000⟩")
	assert.Contains(t, out.String(), "|111⟩")

	logged, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(logged), "skipping gate", "the y gate should be reported")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	cfg := NewConfig()
	cfg.Headless = true
	cfg.LogFile = filepath.Join(dir, "qfield.log")

	cfg.Circuit = filepath.Join(dir, "missing.qasm")
	assert.Error(t, run(cfg, &bytes.Buffer{}))

	cfg.Circuit = writeCircuit(t, dir, "big.qasm", "qreg q[12];\nh q[11];\n")
	assert.Error(t, run(cfg, &bytes.Buffer{}))

	cfg.Circuit = ""
	cfg.LogLevel = "chatty"
	assert.Error(t, run(cfg, &bytes.Buffer{}))
}

func TestRunRestoresDefaultLogger(t *testing.T) {
	prev := log.Default()

	cfg := NewConfig()
	cfg.Headless = true
	cfg.LogFile = filepath.Join(t.TempDir(), "qfield.log")
	require.NoError(t, run(cfg, &bytes.Buffer{}))

	assert.Same(t, prev, log.Default())
}

func TestExecuteReportsFailures(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "qfield.log")
	big := writeCircuit(t, dir, "big.qasm", "qreg q[12];\nh q[11];\n")

	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"missing circuit in the viewer", []string{"--log-file", logFile, "--circuit", filepath.Join(dir, "missing.qasm")}, 1, "missing.qasm"},
		{"register above the limit in the viewer", []string{"--log-file", logFile, "--circuit", big}, 1, "exceeds"},
		{"register above the limit headless", []string{"--headless", "--circuit", big}, 1, "exceeds"},
		{"bad flag", []string{"--qubits", "many"}, 2, "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, execute(tt.args, &stdout, &stderr))
			assert.Contains(t, stderr.String(), tt.want)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestExecuteHeadless(t *testing.T) {
	path := writeCircuit(t, t.TempDir(), "x.qasm", "qreg q[2];\nx q[1];\n")

	var stdout, stderr bytes.Buffer
	code := execute([]string{"--headless", "--log-file", filepath.Join(t.TempDir(), "qfield.log"), "--circuit", path}, &stdout, &stderr)
	assert.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "|10⟩")
}
