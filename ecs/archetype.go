package ecs

import (
	"strings"
)

// Archetype represents a unique combination of component types.
// Keys are kept sorted and unique; names[i] is the display name of keys[i].
// Two archetypes built from the same types in any order are Equal and share a Hash.
type Archetype struct {
	keys  []TypeKey
	names []string
}

// ArchetypeOf builds an archetype from the given keys. Duplicates are ignored.
func ArchetypeOf(keys ...TypeKey) Archetype {
	var a Archetype
	for _, key := range keys {
		a.Add(key)
	}
	return a
}

// AddType adds T to the archetype.
func AddType[T any](a *Archetype) *Archetype {
	return a.Add(KeyOf[T]())
}

// Add inserts key into the sorted set, doing nothing if it is already present.
// Add never writes into storage shared with a previously copied Archetype value.
func (a *Archetype) Add(key TypeKey) *Archetype {
	idx := 0
	for idx < len(a.keys) {
		if a.keys[idx] == key {
			return a
		}
		if a.keys[idx] > key {
			break
		}
		idx++
	}

	keys := make([]TypeKey, 0, len(a.keys)+1)
	keys = append(keys, a.keys[:idx]...)
	keys = append(keys, key)
	keys = append(keys, a.keys[idx:]...)

	names := make([]string, 0, len(a.names)+1)
	names = append(names, a.names[:idx]...)
	names = append(names, key.Name())
	names = append(names, a.names[idx:]...)

	a.keys = keys
	a.names = names
	return a
}

// Len returns the number of distinct types.
func (a Archetype) Len() int {
	return len(a.keys)
}

// Has reports whether key is part of the archetype.
func (a Archetype) Has(key TypeKey) bool {
	for _, other := range a.keys {
		if other == key {
			return true
		}
		if other > key {
			return false
		}
	}
	return false
}

// Contains reports whether every type of other is also in a.
// Both key lists are sorted, so this is a single merge pass.
func (a Archetype) Contains(other Archetype) bool {
	i := 0
	for _, want := range other.keys {
		for i < len(a.keys) && a.keys[i] < want {
			i++
		}
		if i == len(a.keys) || a.keys[i] != want {
			return false
		}
		i++
	}
	return true
}

// Equal reports whether both archetypes hold the same set of types.
func (a Archetype) Equal(other Archetype) bool {
	if len(a.keys) != len(other.keys) {
		return false
	}
	for i := range a.keys {
		if a.keys[i] != other.keys[i] {
			return false
		}
	}
	return true
}

// Hash returns an FNV-1a hash of the sorted type keys.
func (a Archetype) Hash() uint64 {
	var h uint64 = 14695981039346656037 // FNV-1a 64-bit offset basis
	const prime uint64 = 1099511628211  // FNV-1a 64-bit prime

	for _, key := range a.keys {
		for shift := 0; shift < 32; shift += 8 {
			h ^= uint64(byte(key >> shift))
			h *= prime
		}
	}
	return h
}

// Keys returns a copy of the sorted type keys.
func (a Archetype) Keys() []TypeKey {
	return append([]TypeKey(nil), a.keys...)
}

// Names returns a copy of the type names, aligned with Keys.
func (a Archetype) Names() []string {
	return append([]string(nil), a.names...)
}

func (a Archetype) String() string {
	return "[" + strings.Join(a.names, ", ") + "]"
}
