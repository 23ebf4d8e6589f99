package store

import "reflect"

type identityKey struct {
	kind reflect.Type
	id   int64
}

// IdentityMap tracks shared reference entities by type and id for one unit of work.
type IdentityMap struct {
	m map[identityKey]any
}

func NewIdentityMap() *IdentityMap {
	return &IdentityMap{m: make(map[identityKey]any)}
}

// AttachOrGetLocal returns the tracked entity of type T with the id, or tracks the one
// built by create. Repeated calls with the same id return the same pointer.
func AttachOrGetLocal[T any](im *IdentityMap, id int64, create func() *T) *T {
	key := identityKey{kind: reflect.TypeFor[T](), id: id}

	if v, ok := im.m[key]; ok {
		return v.(*T)
	}

	v := create()
	im.m[key] = v
	return v
}

func (im *IdentityMap) Len() int {
	return len(im.m)
}
