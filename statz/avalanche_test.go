package statz

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/zeebo/assert"
)

func checkReport(t *testing.T, r AvalancheReport, length, trials int) {
	t.Helper()
	assert.Equal(t, r.Length, length)
	assert.Equal(t, r.Trials, trials)
	assert.That(t, r.Min > 0)
	assert.That(t, float64(r.Min) <= r.Average() && r.Average() <= float64(r.Max))
	assert.That(t, r.Max <= 128)
	assert.That(t, r.Average() > 40 && r.Average() < 90)
}

func TestAvalanche(t *testing.T) {
	for _, l := range []int{1, 10, 20, 50} {
		r := Avalanche(l, 2000, NewSource(uint64(l)))
		checkReport(t, r, l, 2000)
		t.Log(r)
	}
	assert.Equal(t, Avalanche(10, 500, NewSource(9)), Avalanche(10, 500, NewSource(9)))

	t.Run("Preconditions", func(t *testing.T) {
		for _, args := range [][2]int{{0, 10}, {-1, 10}, {10, 0}} {
			func() {
				defer func() { assert.NotNil(t, recover()) }()
				Avalanche(args[0], args[1], NewSource(1))
			}()
		}
	})
}

func TestAvalanche_Long(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping in short mode")
	}
	for _, l := range []int{100, 1000} {
		r := Avalanche(l, 25000, NewSource(1))
		checkReport(t, r, l, 25000)
		assert.That(t, math.Abs(r.Average()-IdealDistance) < 1)
		t.Log(r)
	}
}

func TestAvalancheParallel(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx := context.Background()

	r1, err := AvalancheParallel(ctx, 20, 3001, 4, 5, log)
	assert.NoError(t, err)
	checkReport(t, r1, 20, 3001)

	r2, err := AvalancheParallel(ctx, 20, 3001, 4, 5, log)
	assert.NoError(t, err)
	assert.Equal(t, r1, r2)

	one, err := AvalancheParallel(ctx, 20, 500, 1, 5, log)
	assert.NoError(t, err)
	assert.Equal(t, one, Avalanche(20, 500, NewSource(SplitSeed(5, 1)[0])))

	few, err := AvalancheParallel(ctx, 10, 3, 16, 5, log)
	assert.NoError(t, err)
	assert.Equal(t, few.Trials, 3)

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := AvalancheParallel(ctx, 10, 100, 2, 1, log)
		assert.That(t, errors.Is(err, context.Canceled))
	})
}

func TestAvalancheReport(t *testing.T) {
	var r AvalancheReport
	assert.That(t, math.IsNaN(r.Average()))

	r.Merge(AvalancheReport{Length: 10, Trials: 2, Min: 60, Max: 70, Total: 130})
	r.Merge(AvalancheReport{})
	r.Merge(AvalancheReport{Length: 10, Trials: 2, Min: 50, Max: 66, Total: 116})
	assert.Equal(t, r, AvalancheReport{Length: 10, Trials: 4, Min: 50, Max: 70, Total: 246})
	assert.Equal(t, r.Average(), 61.5)

	s := r.String()
	assert.That(t, strings.Contains(s, "min=50, avg=61.50, max=70"))
	assert.That(t, strings.HasSuffix(s, "ideal avg = 64"))
}
