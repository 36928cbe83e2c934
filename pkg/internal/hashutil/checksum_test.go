package hashutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksum(t *testing.T) {
	data := []byte("Hello, World!")

	sum := Checksum(data)
	assert.Len(t, sum, 64)

	// Same input, same digest
	assert.Equal(t, sum, Checksum(data))

	// Different input, different digest
	assert.NotEqual(t, sum, Checksum([]byte("Hello, world!")))
}

func TestChecksum_Empty(t *testing.T) {
	sum := Checksum(nil)
	assert.Len(t, sum, 64)
	assert.Equal(t, sum, Checksum([]byte{}))
}

func TestVerify(t *testing.T) {
	data := []byte("field payload")
	sum := Checksum(data)

	assert.True(t, Verify(data, sum))
	assert.False(t, Verify([]byte("other payload"), sum))
	assert.False(t, Verify(data, "not-a-digest"))
}
