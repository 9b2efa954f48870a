package statz

import (
	"strings"
	"testing"

	"github.com/zeebo/assert"
)

func TestSource_String(t *testing.T) {
	a, b := NewSource(7), NewSource(7)
	for _, n := range []int{0, 1, 10, 1000} {
		s := a.String(n)
		assert.Equal(t, len(s), n)
		assert.Equal(t, s, b.String(n))
		for i := range s {
			assert.That(t, strings.IndexByte(Alphabet, s[i]) >= 0)
		}
	}
	assert.That(t, NewSource(1).String(32) != NewSource(2).String(32))
}

func TestSource_Perturb(t *testing.T) {
	src := NewSource(1)
	for _, n := range []int{1, 2, 10, 100} {
		for i := 0; i < 200; i++ {
			a := src.String(n)
			b, pos := src.Perturb(a)
			assert.Equal(t, len(b), n)
			assert.That(t, pos >= 0 && pos < n)

			diff := 0
			for j := range a {
				if a[j] != b[j] {
					diff++
					assert.Equal(t, j, pos)
				}
			}
			assert.Equal(t, diff, 1)
		}
	}

	t.Run("Empty", func(t *testing.T) {
		defer func() { assert.NotNil(t, recover()) }()
		src.Perturb("")
	})
}

func TestSource_Read(t *testing.T) {
	a, b := make([]byte, 37), make([]byte, 37)
	n, err := NewSource(3).Read(a)
	assert.NoError(t, err)
	assert.Equal(t, n, len(a))
	NewSource(3).Read(b)
	assert.DeepEqual(t, a, b)
	assert.That(t, string(a) != string(make([]byte, 37)))
}

func TestSplitSeed(t *testing.T) {
	s8 := SplitSeed(42, 8)
	assert.Equal(t, len(s8), 8)
	assert.DeepEqual(t, SplitSeed(42, 8), s8)
	assert.DeepEqual(t, SplitSeed(42, 3), s8[:3])
	assert.That(t, SplitSeed(43, 1)[0] != s8[0])

	seen := map[uint64]bool{}
	for _, s := range s8 {
		assert.False(t, seen[s])
		seen[s] = true
	}
	assert.Equal(t, len(SplitSeed(0, 0)), 0)
}
