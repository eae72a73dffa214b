package ecs

import (
	"reflect"
	"sync"
)

// TypeKey identifies a concrete component or resource type for the lifetime of the process.
// Keys are handed out on first use, starting at 1. The zero TypeKey never names a type.
type TypeKey uint32

type typeRegistry struct {
	mu    sync.RWMutex
	keys  map[reflect.Type]TypeKey
	types []reflect.Type
}

// types are shared by every World in the process
var registry = &typeRegistry{
	keys:  make(map[reflect.Type]TypeKey),
	types: []reflect.Type{nil},
}

func (r *typeRegistry) keyFor(t reflect.Type) TypeKey {
	r.mu.RLock()
	key, ok := r.keys[t]
	r.mu.RUnlock()
	if ok {
		return key
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if key, ok := r.keys[t]; ok {
		return key
	}

	key = TypeKey(len(r.types))
	r.keys[t] = key
	r.types = append(r.types, t)
	return key
}

func (r *typeRegistry) typeOf(key TypeKey) reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if int(key) >= len(r.types) {
		return nil
	}
	return r.types[key]
}

// KeyOf returns the TypeKey for T.
func KeyOf[T any]() TypeKey {
	return registry.keyFor(reflect.TypeFor[T]())
}

// KeyFor returns the TypeKey for the given reflect.Type.
func KeyFor(t reflect.Type) TypeKey {
	if t == nil {
		panic("ecs: KeyFor called with a nil type")
	}
	return registry.keyFor(t)
}

// Type returns the reflect.Type registered under this key, or nil for an unknown key.
func (k TypeKey) Type() reflect.Type {
	return registry.typeOf(k)
}

// Name returns the human-readable name of the type, e.g. "game.Position".
func (k TypeKey) Name() string {
	t := k.Type()
	if t == nil {
		return "<invalid>"
	}
	return t.String()
}

// String implements fmt.Stringer.
func (k TypeKey) String() string {
	return k.Name()
}
