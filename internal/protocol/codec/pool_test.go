package codec

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPool_GetPut(t *testing.T) {
	t.Parallel()

	buf := GetBuffer()
	assert.NotNil(t, buf)

	buf.WriteString("test data")
	PutBuffer(buf)

	// Get again - should be reset
	buf2 := GetBuffer()
	assert.NotNil(t, buf2)
	assert.Equal(t, 0, buf2.Len())
}

func TestBufferPool_PutNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		PutBuffer(nil)
	})
}

func TestEncode_ConcurrentPoolUse(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			env, err := NewTyping("user", n%2 == 0)
			assert.NoError(t, err)
			_, err = Encode(env)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}
