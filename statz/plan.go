package statz

import (
	"errors"
	. "fmt"
	"gopkg.in/yaml.v3"
	"os"
	"runtime"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Plan describes one full analysis run. Its zero Seed asks the caller to pick a seed and report
// it, so that the run can be repeated.
type Plan struct {
	Seed      uint64        `yaml:"seed"`
	Workers   int           `yaml:"workers"`
	Avalanche AvalanchePlan `yaml:"avalanche"`
	Pairs     PairPlan      `yaml:"pairs"`
	Monobit   MonobitPlan   `yaml:"monobit"`
}

type AvalanchePlan struct {
	Lengths []int `yaml:"lengths"`
	Trials  int   `yaml:"trials"`
}

type PairPlan struct {
	Dir     string `yaml:"dir"`
	Lengths []int  `yaml:"lengths"`
	Count   int    `yaml:"count"`
}

type MonobitPlan struct {
	Count int `yaml:"count"`
	Size  int `yaml:"size"` /* bytes per random message */
}

// DefaultPlan returns the lengths and counts the analyses are usually run with.
func DefaultPlan() *Plan {
	return &Plan{
		Workers:   runtime.NumCPU(),
		Avalanche: AvalanchePlan{Lengths: []int{10, 20, 50, 100}, Trials: 25000},
		Pairs:     PairPlan{Dir: ".", Lengths: []int{10, 100, 500, 1000}, Count: 100000},
		Monobit:   MonobitPlan{Count: 50000, Size: 1024},
	}
}

// LoadPlan reads a YAML plan from path. Keys the file leaves out keep their DefaultPlan values.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Errorf("statz: failed to read plan %s: %w", path, err)
	}
	p := DefaultPlan()
	if err = yaml.Unmarshal(data, p); err != nil {
		return nil, Errorf("statz: failed to parse plan %s: %w", path, err)
	}
	if err = p.Validate(); err != nil {
		return nil, Errorf("statz: invalid plan %s: %w", path, err)
	}
	return p, nil
}

// Validate reports every setting that would make an analysis meaningless or panic.
func (p *Plan) Validate() error {
	var errs []error
	if p.Workers < 1 {
		errs = append(errs, Errorf("workers: %d is less than one", p.Workers))
	}
	if p.Avalanche.Trials < 1 {
		errs = append(errs, Errorf("avalanche.trials: %d is less than one", p.Avalanche.Trials))
	}
	for _, l := range p.Avalanche.Lengths {
		if l < 1 {
			errs = append(errs, Errorf("avalanche.lengths: %d is less than one", l))
		}
	}
	if p.Pairs.Count < 0 {
		errs = append(errs, Errorf("pairs.count: %d is negative", p.Pairs.Count))
	}
	seen := map[int]bool{}
	for _, l := range p.Pairs.Lengths {
		if l < 0 {
			errs = append(errs, Errorf("pairs.lengths: %d is negative", l))
		}
		if seen[l] {
			errs = append(errs, Errorf("pairs.lengths: %d appears more than once", l))
		}
		seen[l] = true
	}
	if p.Monobit.Count < 2 {
		errs = append(errs, Errorf("monobit.count: %d is less than two", p.Monobit.Count))
	}
	if p.Monobit.Size < 0 {
		errs = append(errs, Errorf("monobit.size: %d is negative", p.Monobit.Size))
	}
	return errors.Join(errs...)
}
