package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirex-tools/jku2jams/internal/conf"
)

func TestRootCommand(t *testing.T) {
	settings := &conf.Settings{}
	rootCmd := RootCommand(settings)

	require.NotNil(t, rootCmd)
	assert.Equal(t, "jku2jams", rootCmd.Use)

	convertCmd, _, err := rootCmd.Find([]string{"convert"})
	require.NoError(t, err)
	assert.Equal(t, "convert [dataset-dir] [output-dir]", convertCmd.Use)

	// convert requires exactly the dataset root and the output directory
	assert.Error(t, convertCmd.Args(convertCmd, []string{"only-one"}))
	assert.NoError(t, convertCmd.Args(convertCmd, []string{"in", "out"}))
}

func TestDebugFlag(t *testing.T) {
	settings := &conf.Settings{}
	rootCmd := RootCommand(settings)

	require.NoError(t, rootCmd.PersistentFlags().Parse([]string{"--debug"}))
	assert.True(t, settings.Debug)
}
