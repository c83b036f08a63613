package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numcheck/internal/platform/config"
)

func TestDisplayTimezoneLoadsFromEmbeddedDatabase(t *testing.T) {
	t.Setenv("NUMCHECK_CONFIG", "")
	t.Setenv("ZONEINFO", filepath.Join(t.TempDir(), "missing.zip"))

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	loc, err := time.LoadLocation(cfg.Display.Timezone)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}
