package main

import (
	"context"
	. "fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const envPrefix = "QUADSTAT"

var disableColors bool

// setFlagsFromEnv fills every flag of fs the command line left unset from the environment. A
// flag named some-flag is read from PREFIX_SOME_FLAG.
func setFlagsFromEnv(fs *pflag.FlagSet, prefix string) (err error) {
	alreadySet := make(map[string]bool)
	fs.Visit(func(f *pflag.Flag) {
		alreadySet[f.Name] = true
	})
	fs.VisitAll(func(f *pflag.Flag) {
		if alreadySet[f.Name] {
			return
		}
		key := prefix + "_" + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if val := os.Getenv(key); val != "" {
			if serr := fs.Set(f.Name, val); serr != nil {
				err = Errorf("invalid value %q for %s: %v", val, key, serr)
			}
		}
	})
	return err
}

// newLogger builds the logger every subcommand reports progress through. Results themselves go
// to standard output; logs go to standard error.
func newLogger(level string, disableTimestamp bool) (log.FieldLogger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, Errorf("invalid log level %q: %w", level, err)
	}
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp:    !disableTimestamp,
		DisableTimestamp: disableTimestamp,
		DisableColors:    disableColors,
		TimestampFormat:  "01-02-2006 15:04:05",
	})
	return logger.WithField("app", "quadstat"), nil
}

// setupSignals returns a context canceled on the first SIGINT or SIGTERM.
func setupSignals(logger log.FieldLogger) context.Context {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-sigs
		logger.Infof("got signal %s, stopping", sig)
		cancel()
	}()
	return ctx
}
