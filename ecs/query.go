package ecs

import "strings"

// Query selects archetypes by the types they must include and the types they must not include.
// A query with no includes matches every archetype, the empty one included.
// A type listed both as include and exclude makes the query match nothing.
type Query struct {
	includes []TypeKey
	excludes []TypeKey
}

// NewQuery creates a query that matches everything.
func NewQuery() Query {
	return Query{}
}

// QueryFor is shorthand for a query including the given types, e.g. QueryFor(KeyOf[Position]()).
func QueryFor(keys ...TypeKey) Query {
	return NewQuery().Include(keys...)
}

// Include returns a copy of q that additionally requires keys.
func (q Query) Include(keys ...TypeKey) Query {
	q.includes = append(q.includes[:len(q.includes):len(q.includes)], keys...)
	return q
}

// Exclude returns a copy of q that additionally rejects keys.
func (q Query) Exclude(keys ...TypeKey) Query {
	q.excludes = append(q.excludes[:len(q.excludes):len(q.excludes)], keys...)
	return q
}

// Join returns a query whose include and exclude lists are the unions of both queries.
func (q Query) Join(other Query) Query {
	return q.Include(other.includes...).Exclude(other.excludes...)
}

// Includes returns the required keys.
func (q Query) Includes() []TypeKey {
	return append([]TypeKey(nil), q.includes...)
}

// Excludes returns the rejected keys.
func (q Query) Excludes() []TypeKey {
	return append([]TypeKey(nil), q.excludes...)
}

// Matches reports whether an entity of the given archetype satisfies the query.
func (q Query) Matches(archetype Archetype) bool {
	for _, key := range q.includes {
		if !archetype.Has(key) {
			return false
		}
	}
	for _, key := range q.excludes {
		if archetype.Has(key) {
			return false
		}
	}
	return true
}

// MatchesEntity checks the query against an entity's own components.
func (q Query) MatchesEntity(e *Entity) bool {
	for _, key := range q.includes {
		if !e.components.HasKey(key) {
			return false
		}
	}
	for _, key := range q.excludes {
		if e.components.HasKey(key) {
			return false
		}
	}
	return true
}

func (q Query) String() string {
	var sb strings.Builder
	sb.WriteString("Query{include: [")
	for i, key := range q.includes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(key.Name())
	}
	sb.WriteString("], exclude: [")
	for i, key := range q.excludes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(key.Name())
	}
	sb.WriteString("]}")
	return sb.String()
}
