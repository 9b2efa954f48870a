package statz

import (
	"strings"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zodiac-hash/quadhash"
)

func TestPrefixSums(t *testing.T) {
	lines := func(p []Prefix) (n []int) {
		for _, v := range p {
			n = append(n, v.Lines)
		}
		return n
	}

	p, err := PrefixSums(strings.NewReader("a\nb\nc\nd\ne"))
	assert.NoError(t, err)
	assert.DeepEqual(t, lines(p), []int{1, 2, 4, 5})
	assert.Equal(t, p[0].Digest, quadhash.SumString("a\n"))
	assert.Equal(t, p[1].Digest, quadhash.SumString("a\nb\n"))
	assert.Equal(t, p[3].Digest, quadhash.SumString("a\nb\nc\nd\ne\n"))

	p, err = PrefixSums(strings.NewReader("a\nb\nc\nd\n"))
	assert.NoError(t, err)
	assert.DeepEqual(t, lines(p), []int{1, 2, 4})

	p, err = PrefixSums(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Equal(t, len(p), 1)
	assert.Equal(t, p[0].Digest, quadhash.Sum(nil))
}
