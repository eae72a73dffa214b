package ecs

// System represents a behavior that runs once per World.Tick.
// Systems read and mutate the World through queries and the borrow-checked accessors,
// and must release every access they take before Execute returns.
type System interface {
	Execute(w *World) error
}

// Initializer is implemented by systems that need a one-time setup when added to a World.
type Initializer interface {
	Initialize(w *World) error
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(w *World) error

// Execute calls f(w).
func (f SystemFunc) Execute(w *World) error {
	return f(w)
}
