package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/reorder/pkg/infrastructure/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_SyncDecideItems(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	dataDir := filepath.Join(dir, "data")
	require.NoError(t, os.MkdirAll(dataDir, 0o755))
	testutil.WriteWorkbook(t, dataDir, "ro_items.xlsx",
		[]string{"Item Code", "Avg Consume"}, testutil.ScenarioRows())

	// godotenv sets the process environment; undo it for later tests
	t.Cleanup(func() { os.Unsetenv("DATABASE_URL") })
	env := "DATABASE_URL=sqlite://" + filepath.Join(dir, "reorder.db") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))

	out, err := run(t, "sync", "--strategy", "replace")
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully processed 2 rows")

	out, err = run(t, "decide", "--item", "A1", "--stock", "10", "--requested", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "NO")

	out, err = run(t, "items", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "item_code,avg_consume\nA1,5\nC3,-12.5\n", out)
}

func TestRoot_MissingEnvFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := run(t, "--env-file", "missing.env", "items")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.env")
}

func TestRoot_RejectsArgs(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := run(t, "items", "extra")
	assert.Error(t, err)
}

// chdir changes the working directory for the test and restores it on cleanup
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
