package quadhash

import (
	"encoding/binary"
	"testing"

	"github.com/zeebo/assert"
)

func TestPad(t *testing.T) {
	for n := 0; n <= 300; n++ {
		msg := make([]byte, n)
		for i := range msg {
			msg[i] = byte(i+1) % 251
		}
		p := pad(msg)

		assert.Equal(t, len(p)%bytesPerBlock, 0)
		assert.That(t, len(p) >= n+1+lenBytes)
		assert.That(t, len(p) < n+1+lenBytes+bytesPerBlock)

		assert.DeepEqual(t, p[:n], msg)
		assert.Equal(t, p[n], byte(marker))
		for _, v := range p[n+1 : len(p)-lenBytes] {
			assert.Equal(t, v, byte(0))
		}
		assert.Equal(t, binary.BigEndian.Uint64(p[len(p)-lenBytes:]), uint64(n)*8)
	}
}

func TestPadLengths(t *testing.T) {
	cases := []struct{ in, out int }{
		{0, 64}, {1, 64}, {55, 64}, {56, 128}, {63, 128},
		{64, 128}, {119, 128}, {120, 192},
	}
	for _, c := range cases {
		assert.Equal(t, len(pad(make([]byte, c.in))), c.out)
	}
}

func TestSegment(t *testing.T) {
	buf := make([]byte, 3*bytesPerBlock)
	for i := range buf {
		buf[i] = byte(i / bytesPerBlock)
	}

	blocks := segment(buf)
	assert.Equal(t, len(blocks), 3)
	for i, b := range blocks {
		for _, v := range b {
			assert.Equal(t, v, byte(i))
		}
	}

	t.Run("Misaligned", func(t *testing.T) {
		for _, n := range []int{1, 63, 65, 127} {
			func() {
				defer func() { assert.NotNil(t, recover()) }()
				segment(make([]byte, n))
			}()
		}
	})
}

func TestWords(t *testing.T) {
	var b block
	for i := range b {
		b[i] = byte(i)
	}
	w := words(b)
	assert.Equal(t, w[0], uint32(0x00010203))
	assert.Equal(t, w[1], uint32(0x04050607))
	assert.Equal(t, w[15], uint32(0x3c3d3e3f))
}
