package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate 避免读取开发机上的真实配置
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	flagConfig, flagEffects, flagSeed, flagVerbose = "", "", 0, false
	t.Cleanup(func() {
		flagConfig, flagEffects, flagSeed, flagVerbose = "", "", 0, false
	})
}

func TestSetupBuiltinEffects(t *testing.T) {
	isolate(t)

	cfg, lib, logger, err := setup()
	require.NoError(t, err)
	assert.Equal(t, "embedded", cfg.Source)
	assert.GreaterOrEqual(t, lib.Len(), 7)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
}

func TestSetupFlagOverrides(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "mine.yaml"), []byte(`
effects:
  - name: puff
    emitters: [{}]
`), 0o644)
	require.NoError(t, err)

	flagEffects = dir
	flagSeed = 77
	flagVerbose = true

	cfg, lib, logger, err := setup()
	require.NoError(t, err)
	assert.Equal(t, uint64(77), cfg.Seed)
	assert.Equal(t, []string{"puff"}, lib.Names())
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}

func TestSetupMissingEffectsDir(t *testing.T) {
	isolate(t)
	flagEffects = filepath.Join(t.TempDir(), "nope")

	_, _, _, err := setup()
	assert.Error(t, err)
}

func TestSimulateArgs(t *testing.T) {
	isolate(t)
	flagAll = false
	assert.Error(t, runSimulate(simulateCmd, nil), "neither effect nor --all")

	flagAll = true
	t.Cleanup(func() { flagAll = false })
	assert.Error(t, runSimulate(simulateCmd, []string{"firework"}), "both effect and --all")
}
