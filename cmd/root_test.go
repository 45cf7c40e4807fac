package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdHasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	assert.True(t, names["generate"])
	assert.True(t, names["list"])
	assert.True(t, names["version"])
}

func TestRootFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	require.NotNil(t, flags.Lookup(outputFlagName))
	require.NotNil(t, flags.Lookup(catalogFlagName))
	require.NotNil(t, flags.Lookup("verbose"))

	generate := rootCmd
	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "generate" {
			generate = sub
		}
	}
	require.NotNil(t, generate.Flags().Lookup(countFlagName))
	require.NotNil(t, generate.Flags().Lookup(lengthFlagName))
	require.NotNil(t, generate.Flags().Lookup(seedFlagName))
	require.NotNil(t, generate.Flags().Lookup(generateParallelFlagName))
	require.NotNil(t, generate.Flags().Lookup("tui"))
}

func TestSharedDependenciesInitialized(t *testing.T) {
	assert.NotNil(t, ui)
	assert.NotNil(t, corpusStore)
	assert.NotNil(t, workflow)
}
