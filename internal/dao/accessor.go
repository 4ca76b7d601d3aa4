package dao

import (
	"fmt"
	"sort"
	"sync"
)

// AccessorFunc builds a fresh accessor.
type AccessorFunc func() Accessor

var registry = struct {
	sync.RWMutex
	rids  map[string]ResourceID
	ctors map[string]AccessorFunc
}{
	rids:  make(map[string]ResourceID),
	ctors: make(map[string]AccessorFunc),
}

// RegisterAccessor makes rid known to AccessorFor.
func RegisterAccessor(rid *ResourceID, fn AccessorFunc) {
	registry.Lock()
	defer registry.Unlock()

	registry.rids[rid.String()] = *rid
	registry.ctors[rid.String()] = fn
}

// AccessorFor returns an initialized accessor for rid.
func AccessorFor(f Factory, rid *ResourceID) (Accessor, error) {
	registry.RLock()
	fn, ok := registry.ctors[rid.String()]
	registry.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no accessor for: %s", rid)
	}
	acc := fn()
	acc.Init(f, rid)

	return acc, nil
}

// ListAccessors returns the registered resources in name order.
func ListAccessors() []*ResourceID {
	registry.RLock()
	defer registry.RUnlock()

	keys := make([]string, 0, len(registry.rids))
	for k := range registry.rids {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*ResourceID, 0, len(keys))
	for _, k := range keys {
		rid := registry.rids[k]
		out = append(out, &rid)
	}
	return out
}

// AccessorAs returns the accessor for rid as its concrete type.
func AccessorAs[T Accessor](f Factory, rid *ResourceID) (T, error) {
	var zero T
	acc, err := AccessorFor(f, rid)
	if err != nil {
		return zero, err
	}
	t, ok := acc.(T)
	if !ok {
		return zero, fmt.Errorf("accessor for %s is a %T", rid, acc)
	}

	return t, nil
}
