package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootRefinesDirectory(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "refined")
	require.NoError(t, os.WriteFile(filepath.Join(in, "u.lab"),
		[]byte("0 500000 pau\n500000 1000000 sil\n1000000 1100000 a\n1150000 1300000 e\n"), 0o644))

	stdout, stderr, err := execute(t, in, "-o", out, "-g", "0.1", "--report")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "1 processed, 0 empty, 0 failed")
	assert.Contains(t, stderr, "refined")

	raw, err := os.ReadFile(filepath.Join(out, "u.lab"))
	require.NoError(t, err)
	assert.Equal(t, "0 1000000 SP\n1000000 1300000 a\n", string(raw))
	assert.FileExists(t, filepath.Join(out, "report.json"))
}

func TestRootGapFlag(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "u.lab"), []byte("0 10 a\n200000 300000 e\n"), 0o644))

	_, stderr, err := execute(t, in, "--gap", "0.01", "--json-logs")
	require.NoError(t, err, stderr)
	assert.Contains(t, stderr, `"msg":"refined"`)

	raw, err := os.ReadFile(filepath.Join(in, "refined_labels", "u.lab"))
	require.NoError(t, err)
	assert.Equal(t, "0 10 a\n200000 300000 e\n", string(raw))
}

func TestRootStrict(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.lab"), []byte("x 1 a\n"), 0o644))

	stdout, _, err := execute(t, in)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 failed")

	_, _, err = execute(t, in, "--strict")
	assert.ErrorContains(t, err, "1 file(s) failed")
}

func TestRootErrors(t *testing.T) {
	_, _, err := execute(t)
	assert.Error(t, err)

	_, _, err = execute(t, filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "does not exist")

	_, _, err = execute(t, t.TempDir(), "--gap", "-1")
	assert.ErrorContains(t, err, "max_gap_seconds")

	_, _, err = execute(t, t.TempDir(), "--log-level", "loud")
	assert.Error(t, err)
}

func TestClassifyCmd(t *testing.T) {
	stdout, _, err := execute(t, "classify", "pau", "s", "N", "ng", "y")
	require.NoError(t, err)
	assert.Equal(t, "pau\tsilence\ns\tsibilants\nN\tconsonants\nng\tnasals\ny\tunknown\n", stdout)

	table := filepath.Join(t.TempDir(), "t.yaml")
	require.NoError(t, os.WriteFile(table, []byte("groups:\n  - name: stops\n    members: [k]\n"), 0o644))
	stdout, _, err = execute(t, "classify", "--table", table, "k", "a")
	require.NoError(t, err)
	assert.Equal(t, "k\tstops\na\tunknown\n", stdout)
}
