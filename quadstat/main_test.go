package main

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/zeebo/assert"
	"github.com/zodiac-hash/quadhash/statz"
)

func TestSetFlagsFromEnv(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	trials := fs.Int("trials", 1, "")
	lengths := fs.IntSlice("lengths", nil, "")
	level := fs.String("log-level", "info", "")
	assert.NoError(t, fs.Parse([]string{"--log-level=warn"}))

	t.Setenv("QUADSTAT_TRIALS", "25")
	t.Setenv("QUADSTAT_LENGTHS", "10,20")
	t.Setenv("QUADSTAT_LOG_LEVEL", "debug")
	assert.NoError(t, setFlagsFromEnv(fs, envPrefix))

	assert.Equal(t, *trials, 25)
	assert.DeepEqual(t, *lengths, []int{10, 20})
	assert.Equal(t, *level, "warn")
	assert.True(t, fs.Changed("trials"))

	t.Setenv("QUADSTAT_TRIALS", "many")
	fs = pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("trials", 1, "")
	assert.Error(t, setFlagsFromEnv(fs, envPrefix))
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger("debug", true)
	assert.NoError(t, err)
	entry := logger.(*log.Entry)
	assert.Equal(t, entry.Logger.Level, log.DebugLevel)
	assert.Equal(t, entry.Data["app"], "quadstat")

	_, err = newLogger("loud", false)
	assert.Error(t, err)
}

func TestApplyFlags(t *testing.T) {
	fs := monobitCmd.Flags()
	assert.NoError(t, fs.Set("count", "7"))
	assert.NoError(t, fs.Set("size", "3"))

	plan := statz.DefaultPlan()
	applyFlags(monobitCmd, plan)
	assert.Equal(t, plan.Monobit, statz.MonobitPlan{Count: 7, Size: 3})
	assert.DeepEqual(t, plan.Pairs, statz.DefaultPlan().Pairs)
	assert.DeepEqual(t, plan.Avalanche, statz.DefaultPlan().Avalanche)
	assert.Equal(t, plan.Seed, uint64(0))

	plan = statz.DefaultPlan()
	applyFlags(collisionsCmd, plan)
	assert.DeepEqual(t, plan.Pairs, statz.DefaultPlan().Pairs)
}

func TestExecute(t *testing.T) {
	t.Setenv("QUADSTAT_WORKERS", "2")
	t.Setenv("QUADSTAT_TRIALS", "9999")
	rootCmd.SetArgs([]string{"avalanche", "--lengths", "3,4", "--trials", "5", "--seed", "1",
		"--log-level", "error"})
	assert.NoError(t, rootCmd.Execute())

	assert.DeepEqual(t, lengths, []int{3, 4})
	plan := statz.DefaultPlan()
	applyFlags(avalancheCmd, plan)
	assert.DeepEqual(t, plan.Avalanche, statz.AvalanchePlan{Lengths: []int{3, 4}, Trials: 5})
	assert.Equal(t, plan.Workers, 2)
	assert.Equal(t, plan.Seed, uint64(1))
}
