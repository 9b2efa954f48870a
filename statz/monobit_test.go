package statz

import (
	"math"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zodiac-hash/quadhash"
)

func TestMonobitBias(t *testing.T) {
	ones := quadhash.Digest{^uint32(0), ^uint32(0), ^uint32(0), ^uint32(0)}

	assert.Equal(t, MonobitBias(make([]quadhash.Digest, 4)), 100.0)
	assert.Equal(t, MonobitBias([]quadhash.Digest{{}, ones}), 0.0)
	assert.Equal(t, MonobitBias([]quadhash.Digest{{}, ones, {}, ones}), 0.0)
	assert.Equal(t, MonobitBias([]quadhash.Digest{{}, {1, 0, 0, 0}}), 127.0/128*100)
	assert.That(t, math.IsNaN(MonobitBias(nil)))
	assert.That(t, math.IsNaN(MonobitBias(make([]quadhash.Digest, 1))))
}

func TestMonobit(t *testing.T) {
	integers := IntegerDigests(10000)
	assert.Equal(t, integers[0], quadhash.Sum([]byte{0, 0, 0, 0}))
	assert.Equal(t, integers[258], quadhash.Sum([]byte{0, 0, 1, 2}))

	random := RandomDigests(10000, 64, NewSource(1))
	assert.Equal(t, len(random), 10000)

	for _, d := range [][]quadhash.Digest{integers, random} {
		bias := MonobitBias(d)
		t.Logf("%5.3f%%", bias)
		assert.That(t, bias < 2)
	}
}

func TestCompressionRatio(t *testing.T) {
	r := CompressionRatio(IntegerDigests(10000))
	t.Logf("ratio: %v", r)
	assert.That(t, r < 1.01)
	assert.That(t, CompressionRatio(make([]quadhash.Digest, 10000)) > 10)
}
