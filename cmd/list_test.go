package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd(t *testing.T) {
	t.Setenv("STITCH_LOG_FILENAME", filepath.Join(t.TempDir(), "stitch.log"))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{"list", "--catalog", writeTestCatalog(t)})

	require.NoError(t, rootCmd.Execute())

	output := out.String()
	assert.Contains(t, output, "Catalog for counter")
	assert.Contains(t, output, "Counter.Increment")
	assert.Contains(t, output, "Counter.Value")
	assert.Contains(t, output, "Reset")
	assert.Contains(t, output, "TOTAL 4")
}

func TestListCmdPositionalCatalog(t *testing.T) {
	t.Setenv("STITCH_LOG_FILENAME", filepath.Join(t.TempDir(), "stitch.log"))

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs([]string{"list", writeTestCatalog(t)})

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Catalog for counter")
}
