package shell

import (
	"sort"
	"sync"
)

// Registry maps window labels to live windows. A label holds at most one
// window; a label may also be reserved while its window is being created.
type Registry struct {
	mu      sync.Mutex
	windows map[Label]Window
	pending map[Label]bool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		windows: make(map[Label]Window),
		pending: make(map[Label]bool),
	}
}

// Get returns the live window for label
func (r *Registry) Get(label Label) (Window, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.windows[label]
	return w, ok
}

// Reserve claims label for a window about to be created. It fails when the
// label already has a window or another creation is in progress.
func (r *Registry) Reserve(label Label) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.windows[label]; ok {
		return false
	}
	if r.pending[label] {
		return false
	}
	r.pending[label] = true
	return true
}

// Cancel drops a reservation made by Reserve
func (r *Registry) Cancel(label Label) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, label)
}

// Put registers w under its label, replacing any reservation, and releases
// the label when the window reports that it closed.
func (r *Registry) Put(w Window) {
	label := w.Label()

	r.mu.Lock()
	delete(r.pending, label)
	r.windows[label] = w
	r.mu.Unlock()

	w.OnClosed(func() {
		r.Remove(label, w)
	})
}

// Remove unregisters w. It is a no-op if label now holds a different window.
func (r *Registry) Remove(label Label, w Window) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.windows[label]; ok && cur == w {
		delete(r.windows, label)
	}
}

// Pending reports whether label is reserved
func (r *Registry) Pending(label Label) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending[label]
}

// Labels returns the labels of live windows, sorted
func (r *Registry) Labels() []Label {
	r.mu.Lock()
	defer r.mu.Unlock()
	labels := make([]Label, 0, len(r.windows))
	for l := range r.windows {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}
