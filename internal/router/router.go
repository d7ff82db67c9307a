// Package router tracks the active view path and notifies subscribers when
// it changes.
package router

import "sync"

// Listener receives the new path after a navigation.
type Listener func(path string)

// Router owns the current path and its subscribers.
type Router struct {
	mu        sync.Mutex
	path      string
	nextID    int
	listeners map[int]Listener
	order     []int
}

// New returns a router positioned at initial.
func New(initial string) *Router {
	return &Router{
		path:      initial,
		listeners: make(map[int]Listener),
	}
}

// Path returns the current path.
func (r *Router) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Navigate moves to path. Subscribers are called synchronously, in
// subscription order, only when the path actually changes. Listeners may
// call back into the router.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	if path == r.path {
		r.mu.Unlock()
		return
	}
	r.path = path
	listeners := make([]Listener, 0, len(r.order))
	for _, id := range r.order {
		listeners = append(listeners, r.listeners[id])
	}
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(path)
	}
}

// Subscribe registers fn and returns a function that removes it. Calling
// the returned function more than once has no further effect.
func (r *Router) Subscribe(fn Listener) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.order = append(r.order, id)
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.listeners, id)
			for i, existing := range r.order {
				if existing == id {
					r.order = append(r.order[:i], r.order[i+1:]...)
					break
				}
			}
		})
	}
}
