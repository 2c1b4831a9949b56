package handle

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contextkit/nativebridge/internal/infrastructure/monitoring"
)

// fakeAllocator hands out fake pointers and records frees, standing in for
// the C allocator at the export layer.
type fakeAllocator struct {
	mu    sync.Mutex
	next  uintptr
	freed []uintptr
}

func (f *fakeAllocator) alloc() uintptr {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next
}

func (f *fakeAllocator) free(p uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.freed = append(f.freed, p)
}

func (f *fakeAllocator) freeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.freed)
}

func TestReleaseExactlyOnce(t *testing.T) {
	alloc := &fakeAllocator{}
	r := NewRegistry(FamilyOCR, alloc.free, nil)

	p := alloc.alloc()
	r.Track(p)
	assert.Equal(t, 1, r.Live())

	require.NoError(t, r.Release(p))
	assert.Equal(t, 0, r.Live(), "release must not leak")
	assert.Equal(t, 1, alloc.freeCount())

	// Second release is rejected, destructor not invoked again
	assert.ErrorIs(t, r.Release(p), ErrNotOwned)
	assert.Equal(t, 1, alloc.freeCount())
}

func TestReleaseZeroHandleIsNoop(t *testing.T) {
	appReg := NewRegistry(FamilyApp, nil, nil)
	ocrReg := NewRegistry(FamilyOCR, nil, nil)

	assert.NoError(t, appReg.Release(0))
	assert.NoError(t, ocrReg.Release(0))
}

func TestCrossFamilyRelease(t *testing.T) {
	alloc := &fakeAllocator{}
	appReg := NewRegistry(FamilyApp, alloc.free, nil)
	ocrReg := NewRegistry(FamilyOCR, alloc.free, nil)

	p := alloc.alloc()
	appReg.Track(p)

	// A handle from the app family handed to the OCR release is not owned
	assert.ErrorIs(t, ocrReg.Release(p), ErrNotOwned)
	assert.Equal(t, 0, alloc.freeCount())

	// The rightful family can still release it
	assert.NoError(t, appReg.Release(p))
	assert.Equal(t, 1, alloc.freeCount())
}

func TestTrackZeroIgnored(t *testing.T) {
	r := NewRegistry(FamilyApp, nil, nil)
	r.Track(0)
	assert.Equal(t, 0, r.Live())
}

func TestReleaseAll(t *testing.T) {
	alloc := &fakeAllocator{}
	r := NewRegistry(FamilyApp, alloc.free, nil)

	for i := 0; i < 5; i++ {
		r.Track(alloc.alloc())
	}
	assert.Equal(t, 5, r.Live())

	assert.Equal(t, 5, r.ReleaseAll())
	assert.Equal(t, 0, r.Live())
	assert.Equal(t, 5, alloc.freeCount())
}

func TestMetricsRecorded(t *testing.T) {
	alloc := &fakeAllocator{}
	m := monitoring.NewMetrics(prometheus.NewRegistry())
	r := NewRegistry(FamilyOCR, alloc.free, m)

	p := alloc.alloc()
	r.Track(p)
	require.NoError(t, r.Release(p))
	assert.ErrorIs(t, r.Release(p), ErrNotOwned)
}

func TestConcurrentTrackRelease(t *testing.T) {
	alloc := &fakeAllocator{}
	r := NewRegistry(FamilyApp, alloc.free, nil)

	const n = 64
	handles := make([]uintptr, n)
	for i := range handles {
		handles[i] = alloc.alloc()
	}

	var wg sync.WaitGroup
	for _, p := range handles {
		wg.Add(1)
		go func(p uintptr) {
			defer wg.Done()
			r.Track(p)
			if err := r.Release(p); err != nil {
				t.Errorf("release failed: %v", err)
			}
		}(p)
	}
	wg.Wait()

	assert.Equal(t, 0, r.Live())
	assert.Equal(t, n, alloc.freeCount())
}
