package render

import (
	"strconv"
	"strings"
	"sync"
)

// Stabilizer keeps resource blocks from flickering while a message streams.
// Partial text can transiently lose a path the model has already written, so
// per message slot it keeps the latest value of every resource seen so far.
// A block, once shown, never disappears for that slot; it is only replaced
// when the same reference later arrives in a longer, completed form.
type Stabilizer struct {
	t *Transformer

	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	resources []Resource
}

func NewStabilizer(t *Transformer) *Stabilizer {
	return &Stabilizer{t: t, slots: make(map[string]*slot)}
}

// SlotKey names the cache slot of the message at index within scope,
// usually a session id.
func SlotKey(scope string, index int) string {
	return scope + "#" + strconv.Itoa(index)
}

// Transformer returns the transformer the stabilizer renders with.
func (s *Stabilizer) Transformer() *Transformer { return s.t }

// Render transforms raw and merges its resources into the cache for key.
// Text and Markdown always reflect raw; the block fields reflect the cache.
func (s *Stabilizer) Render(key, raw string) Output {
	out := s.t.Transform(raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[key]
	if !ok {
		sl = &slot{}
		s.slots[key] = sl
	}
	sl.resources = mergeResources(sl.resources, out.Resources)

	out.Resources = append([]Resource(nil), sl.resources...)
	out.Images = blocks(sl.resources, KindImage)
	out.Charts = blocks(sl.resources, KindChart)
	out.Downloads = blocks(sl.resources, KindDownload)
	return out
}

// mergeResources folds the resources of the latest transform into the cached
// list. Cached entries keep their position; an entry is replaced by the latest
// resource of the same kind whose URL equals it or extends it (a reference
// that was still streaming). Entries the latest text no longer mentions are
// kept, and new resources are appended in render order.
func mergeResources(cached, latest []Resource) []Resource {
	if len(cached) == 0 {
		return append([]Resource(nil), latest...)
	}

	used := make([]bool, len(latest))
	exact := make(map[string]int, len(latest))
	for i, r := range latest {
		exact[resourceKey(r)] = i
	}
	known := make(map[string]bool, len(cached))
	for _, r := range cached {
		known[resourceKey(r)] = true
	}

	merged := make([]Resource, 0, len(cached)+len(latest))
	for _, r := range cached {
		if i, ok := exact[resourceKey(r)]; ok && !used[i] {
			used[i] = true
			merged = append(merged, latest[i])
			continue
		}
		if i := grownFrom(r, latest, used, known); i >= 0 {
			used[i] = true
			merged = append(merged, latest[i])
			continue
		}
		merged = append(merged, r)
	}
	for i, r := range latest {
		if !used[i] {
			merged = append(merged, r)
		}
	}
	return merged
}

// grownFrom finds an unused latest resource that completes the partial
// reference r. Resources already cached under their own URL are skipped.
func grownFrom(r Resource, latest []Resource, used []bool, known map[string]bool) int {
	for i, n := range latest {
		if used[i] || n.Kind != r.Kind || known[resourceKey(n)] {
			continue
		}
		if len(n.URL) > len(r.URL) && strings.HasPrefix(n.URL, r.URL) {
			return i
		}
	}
	return -1
}

func resourceKey(r Resource) string {
	return r.Kind.String() + " " + r.URL
}

// Forget drops the cache for one message slot.
func (s *Stabilizer) Forget(key string) {
	s.mu.Lock()
	delete(s.slots, key)
	s.mu.Unlock()
}

// Reset drops every cached slot, e.g. when switching sessions.
func (s *Stabilizer) Reset() {
	s.mu.Lock()
	s.slots = make(map[string]*slot)
	s.mu.Unlock()
}
