package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-sim/inventory-sim/sim/sweep"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRunConfig_StrictYAML(t *testing.T) {
	path := writeTempFile(t, "run.yaml", `
horizon: 180
replications: 25
seed: 7
workers: 2
logging: full
`)
	opts, err := LoadRunConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 180, opts.HorizonDays)
	assert.Equal(t, 25, opts.Replications)
	require.NotNil(t, opts.Seed)
	assert.Equal(t, int64(7), *opts.Seed)
	assert.Equal(t, 2, opts.Workers)
	assert.Equal(t, trace.LogLevelFull, opts.Logging)
}

func TestLoadRunConfig_RejectsUnknownKeys(t *testing.T) {
	path := writeTempFile(t, "run.yaml", "horizn: 180\n")
	_, err := LoadRunConfig(path)
	assert.Error(t, err)
}

func TestLoadRunConfig_EmptyFile(t *testing.T) {
	opts, err := LoadRunConfig(writeTempFile(t, "run.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, sweep.Options{}, opts)
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestApplyRunFlags_OnlyChangedFlagsOverride(t *testing.T) {
	// GIVEN a config with horizon 180 and 25 replications
	seed7 := int64(7)
	opts := sweep.Options{HorizonDays: 180, Replications: 25, Seed: &seed7}

	// WHEN only --replications is set on the command line
	require.NoError(t, runCmd.Flags().Set("replications", "3"))
	t.Cleanup(func() {
		f := runCmd.Flags().Lookup("replications")
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	applyRunFlags(runCmd, &opts)

	// THEN replications change and every other config value survives
	assert.Equal(t, 3, opts.Replications)
	assert.Equal(t, 180, opts.HorizonDays)
	assert.Equal(t, int64(7), *opts.Seed)
	assert.Equal(t, trace.LogLevel(""), opts.Logging)
}

func TestValidateOptions_MatchesAPIBounds(t *testing.T) {
	v := newValidator()
	seed := int64(3)

	// GIVEN options inside every bound
	assert.NoError(t, validateOptions(v, sweep.Options{HorizonDays: 365, Replications: 10, Workers: 4, Seed: &seed}))
	assert.NoError(t, validateOptions(v, sweep.Options{}))

	// WHEN the horizon and worker count exceed their limits
	err := validateOptions(v, sweep.Options{HorizonDays: 100000, Workers: 1000})

	// THEN both fields are named with the rule they broke
	require.Error(t, err)
	assert.Contains(t, err.Error(), "horizon_days: lte=3650")
	assert.Contains(t, err.Error(), "workers: lte=256")

	err = validateOptions(v, sweep.Options{Logging: trace.LogLevel("partial")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging: oneof=none full")
}
