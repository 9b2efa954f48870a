package main

import (
	"context"
	. "fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/zodiac-hash/quadhash/statz"
	"os"
	"runtime"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var (
	planPath            string
	seed                uint64
	workers             int
	logLevelStr         string
	logDisableTimestamp bool

	lengths       []int
	trials, count int
	dir           string
	monobitSize   int
	benchSizes    []int
)

var rootCmd = &cobra.Command{
	Use:   "quadstat",
	Short: "statistical checks and benchmarks for quadhash",
	Long: "quadstat measures how quadhash behaves: avalanche, collisions, monobit bias, and " +
		"speed.\nEvery flag may also be set through QUADSTAT_<FLAG> environment variables.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setFlagsFromEnv(cmd.Flags(), envPrefix); err != nil {
			return Errorf("error setting flags from environment variables: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "write files of random tab-separated string pairs, one file per length",
	Args:  cobra.NoArgs,
	RunE:  runPairs,
}

var collisionsCmd = &cobra.Command{
	Use:   "collisions",
	Short: "count pairs sharing a digest in the files written by pairs",
	Args:  cobra.NoArgs,
	RunE:  runCollisions,
}

var avalancheCmd = &cobra.Command{
	Use:   "avalanche",
	Short: "measure digest bits flipped by one-character changes",
	Args:  cobra.NoArgs,
	RunE:  runAvalanche,
}

var monobitCmd = &cobra.Command{
	Use:   "monobit",
	Short: "measure how far each digest bit strays from being set half the time",
	Args:  cobra.NoArgs,
	RunE:  runMonobit,
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "compare quadhash's speed with other digests",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&planPath, "plan", "", "YAML file describing lengths, counts, and seed")
	pf.Uint64Var(&seed, "seed", 0, "seed for every random source; 0 picks one and logs it")
	pf.IntVar(&workers, "workers", runtime.NumCPU(), "goroutines analyses may spread over")
	pf.StringVar(&logLevelStr, "log-level", log.InfoLevel.String(), "log level")
	pf.BoolVar(&logDisableTimestamp, "disable-timestamp", false, "disable timestamp logging")

	pairsCmd.Flags().IntSliceVar(&lengths, "lengths", nil, "string lengths, one file each")
	pairsCmd.Flags().IntVar(&count, "count", 0, "pairs per file")
	pairsCmd.Flags().StringVar(&dir, "dir", "", "directory pair files are written to")

	collisionsCmd.Flags().IntSliceVar(&lengths, "lengths", nil, "string lengths, one file each")
	collisionsCmd.Flags().StringVar(&dir, "dir", "", "directory pair files are read from")

	avalancheCmd.Flags().IntSliceVar(&lengths, "lengths", nil, "string lengths to test")
	avalancheCmd.Flags().IntVar(&trials, "trials", 0, "pairs per length")

	monobitCmd.Flags().IntVar(&count, "count", 0, "digests per input kind")
	monobitCmd.Flags().IntVar(&monobitSize, "size", 0, "bytes per random message")

	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", statz.Sizes, "message sizes in bytes")

	rootCmd.AddCommand(pairsCmd, collisionsCmd, avalancheCmd, monobitCmd, benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup resolves the plan and logger shared by every subcommand. Flags given explicitly win over
// the plan file, which wins over the defaults.
func setup(cmd *cobra.Command) (*statz.Plan, log.FieldLogger, context.Context, error) {
	logger, err := newLogger(logLevelStr, logDisableTimestamp)
	if err != nil {
		return nil, nil, nil, err
	}

	plan := statz.DefaultPlan()
	if planPath != "" {
		if plan, err = statz.LoadPlan(planPath); err != nil {
			return nil, nil, nil, err
		}
	}
	applyFlags(cmd, plan)
	if err = plan.Validate(); err != nil {
		return nil, nil, nil, err
	}

	if plan.Seed == 0 {
		plan.Seed = uint64(time.Now().UnixNano())
	}
	logger = logger.WithField("seed", plan.Seed)
	logger.Debugf("running with %d workers", plan.Workers)
	return plan, logger, setupSignals(logger), nil
}

func applyFlags(cmd *cobra.Command, plan *statz.Plan) {
	fs := cmd.Flags()
	if fs.Changed("seed") {
		plan.Seed = seed
	}
	if fs.Changed("workers") {
		plan.Workers = workers
	}
	switch cmd.Name() {
	case "pairs", "collisions":
		if fs.Changed("lengths") {
			plan.Pairs.Lengths = lengths
		}
		if fs.Changed("count") {
			plan.Pairs.Count = count
		}
		if fs.Changed("dir") {
			plan.Pairs.Dir = dir
		}
	case "avalanche":
		if fs.Changed("lengths") {
			plan.Avalanche.Lengths = lengths
		}
		if fs.Changed("trials") {
			plan.Avalanche.Trials = trials
		}
	case "monobit":
		if fs.Changed("count") {
			plan.Monobit.Count = count
		}
		if fs.Changed("size") {
			plan.Monobit.Size = monobitSize
		}
	}
}

func runPairs(cmd *cobra.Command, _ []string) error {
	plan, logger, ctx, err := setup(cmd)
	if err != nil {
		return err
	}
	t := time.Now()
	err = statz.GeneratePairFiles(ctx, plan.Pairs.Dir, plan.Pairs.Lengths, plan.Pairs.Count,
		plan.Seed, logger)
	if err != nil {
		return err
	}
	logger.Infof("finished in %s", time.Since(t).Truncate(time.Millisecond))
	return nil
}

func runCollisions(cmd *cobra.Command, _ []string) error {
	plan, logger, ctx, err := setup(cmd)
	if err != nil {
		return err
	}
	reports, err := statz.ScanFiles(ctx, plan.Pairs.Dir, plan.Pairs.Lengths, logger)
	if err != nil {
		return err
	}
	for _, r := range reports {
		if r.Collisions > 0 {
			logger.WithField("length", r.Length).Warnf("%d collisions among %d pairs",
				r.Collisions, r.Pairs)
		}
		Println(r)
	}
	return nil
}

func runAvalanche(cmd *cobra.Command, _ []string) error {
	plan, logger, ctx, err := setup(cmd)
	if err != nil {
		return err
	}
	seeds := statz.SplitSeed(plan.Seed, len(plan.Avalanche.Lengths))
	for i, l := range plan.Avalanche.Lengths {
		r, err := statz.AvalancheParallel(ctx, l, plan.Avalanche.Trials, plan.Workers, seeds[i],
			logger)
		if err != nil {
			return err
		}
		Println(r)
	}
	return nil
}

func runMonobit(cmd *cobra.Command, _ []string) error {
	plan, _, _, err := setup(cmd)
	if err != nil {
		return err
	}
	integers := statz.IntegerDigests(plan.Monobit.Count)
	random := statz.RandomDigests(plan.Monobit.Count, plan.Monobit.Size, statz.NewSource(plan.Seed))
	Printf("Integer input Monobit test:  %5.3f%%\n", statz.MonobitBias(integers))
	Printf("Random input Monobit test:   %5.3f%%\n", statz.MonobitBias(random))
	Printf("Integer input flate ratio:   %5.3f\n", statz.CompressionRatio(integers))
	return nil
}

func runBench(cmd *cobra.Command, _ []string) error {
	_, logger, ctx, err := setup(cmd)
	if err != nil {
		return err
	}
	Printf("Benchmarking on %d CPUs!\n%s/%s\n\n%s\n",
		runtime.NumCPU(), runtime.GOOS, runtime.GOARCH, statz.SizeHeader(benchSizes))
	t := time.Now()
	for _, alg := range statz.Algorithms() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		statz.Bench(alg, benchSizes).WriteTo(os.Stdout)
	}
	logger.Infof("finished in %s", time.Since(t).Truncate(time.Millisecond))
	return nil
}
