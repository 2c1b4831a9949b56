package handle

import (
	"errors"
	"sync"

	"github.com/contextkit/nativebridge/internal/infrastructure/monitoring"
)

// Family names for the two provider families. The C boundary carries no
// family tag, so separate registries stand in for the distinct allocators.
const (
	FamilyApp = "app"
	FamilyOCR = "ocr"
)

// ErrNotOwned is returned when releasing a handle the registry does not hold:
// either it was never allocated by this family or it was already released.
var ErrNotOwned = errors.New("handle not owned by this family or already released")

// Registry tracks owned string handles for one provider family. A handle is
// live from Track until exactly one successful Release; releasing the zero
// handle is a no-op.
type Registry struct {
	family  string
	free    func(uintptr)
	metrics *monitoring.Metrics

	mu   sync.Mutex
	live map[uintptr]struct{}
}

// NewRegistry creates a registry for a family. free is the destructor invoked
// on successful release (C.free at the export layer); nil means the backing
// memory is managed elsewhere. metrics may be nil.
func NewRegistry(family string, free func(uintptr), metrics *monitoring.Metrics) *Registry {
	return &Registry{
		family:  family,
		free:    free,
		metrics: metrics,
		live:    make(map[uintptr]struct{}),
	}
}

// Family returns the registry's family name.
func (r *Registry) Family() string {
	return r.family
}

// Track registers a newly allocated handle as live. The zero handle is
// ignored.
func (r *Registry) Track(p uintptr) {
	if p == 0 {
		return
	}

	r.mu.Lock()
	r.live[p] = struct{}{}
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.RecordAlloc(r.family)
	}
}

// Release destroys a live handle. The zero handle is a safe no-op. Releasing
// a handle that is not live (double release, or a handle from the other
// family) returns ErrNotOwned and leaves the registry untouched.
func (r *Registry) Release(p uintptr) error {
	if p == 0 {
		return nil
	}

	r.mu.Lock()
	_, ok := r.live[p]
	if ok {
		delete(r.live, p)
	}
	r.mu.Unlock()

	if !ok {
		if r.metrics != nil {
			r.metrics.RecordReleaseError(r.family, "not_owned")
		}
		return ErrNotOwned
	}

	if r.free != nil {
		r.free(p)
	}
	if r.metrics != nil {
		r.metrics.RecordFree(r.family)
	}
	return nil
}

// Live returns the number of currently live handles. Tests use this to
// assert leak freedom.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// ReleaseAll destroys every live handle and returns how many were released.
// Intended for teardown; a nonzero return at shutdown means the host leaked.
func (r *Registry) ReleaseAll() int {
	r.mu.Lock()
	handles := make([]uintptr, 0, len(r.live))
	for p := range r.live {
		handles = append(handles, p)
	}
	r.live = make(map[uintptr]struct{})
	r.mu.Unlock()

	for _, p := range handles {
		if r.free != nil {
			r.free(p)
		}
		if r.metrics != nil {
			r.metrics.RecordFree(r.family)
		}
	}
	return len(handles)
}
