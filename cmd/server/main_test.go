package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelops/reelsweep/internal/server"
)

func TestRootCmdFlags(t *testing.T) {
	bind := rootCmd.Flags().Lookup("bind")
	require.NotNil(t, bind)
	assert.Equal(t, server.DefaultAddr, bind.DefValue)

	db := rootCmd.Flags().Lookup("db")
	require.NotNil(t, db)
	assert.Equal(t, server.DefaultDBPath, db.DefValue)

	envFile := rootCmd.Flags().Lookup("env-file")
	require.NotNil(t, envFile)
	assert.Equal(t, ".env", envFile.DefValue)
}

func TestRootCmdMetadata(t *testing.T) {
	assert.Equal(t, "reelsweep", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Version)
}
