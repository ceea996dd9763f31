package qn

import "sync"

// HookPoint names a lifecycle event around which hooks fire.
type HookPoint int32

const (
	HookTokenCreate HookPoint = iota
	HookTokenDestroy
	HookGroupInsert
	HookGroupUpdate
	HookGroupDelete
)

// FilterFunc is a pre-action hook. Returning false vetoes the operation
// before any store write.
type FilterFunc func(point HookPoint, data any) bool

// ActFunc is a post-action fire-and-forget notification.
type ActFunc func(point HookPoint, data any)

// HookRegistry dispatches lifecycle notifications to registered observers.
// Registration normally happens during startup; dispatch is safe for
// concurrent use.
type HookRegistry struct {
	mu      sync.RWMutex
	filters map[HookPoint][]FilterFunc
	acts    map[HookPoint][]ActFunc
}

func NewHookRegistry() *HookRegistry {
	return &HookRegistry{
		filters: make(map[HookPoint][]FilterFunc),
		acts:    make(map[HookPoint][]ActFunc),
	}
}

func (h *HookRegistry) RegisterFilter(point HookPoint, f FilterFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.filters[point] = append(h.filters[point], f)
}

func (h *HookRegistry) RegisterAct(point HookPoint, f ActFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.acts[point] = append(h.acts[point], f)
}

// Filter runs every filter for point. Any observer returning false flips
// the result to false; later filters still run.
func (h *HookRegistry) Filter(point HookPoint, data any) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ret := true
	for _, f := range h.filters[point] {
		if !f(point, data) {
			ret = false
		}
	}
	return ret
}

// Act notifies every act observer for point.
func (h *HookRegistry) Act(point HookPoint, data any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, f := range h.acts[point] {
		f(point, data)
	}
}
