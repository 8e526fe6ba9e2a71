package sequence

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequencer(t *testing.T) {
	s := New(0)
	require.Equal(t, uint64(1), s.Next())
	require.Equal(t, uint64(2), s.Next())
	require.Equal(t, uint64(2), s.Current())

	s.Advance(10)
	require.Equal(t, uint64(11), s.Next())

	s.Advance(3)
	require.Equal(t, uint64(11), s.Current())
}

func TestSequencerConcurrent(t *testing.T) {
	s := New(5)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.Next()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, uint64(8005), s.Current())
}
