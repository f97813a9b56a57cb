package reactorx

// Pulse marks a state field as emit-once. Every Set bumps the version, so
// observers can tell a fresh assignment from a stale value carried over by an
// unrelated reduction, even when the assigned value is identical.
//
// Pulse is a value type; Set returns a new Pulse and never mutates the receiver.
type Pulse[T any] struct {
	value   T
	valid   bool
	version uint64
}

// NewPulse returns a Pulse already holding v at version 1.
func NewPulse[T any](v T) Pulse[T] {
	return Pulse[T]{value: v, valid: true, version: 1}
}

// Set returns a copy of p carrying v and the next version.
func (p Pulse[T]) Set(v T) Pulse[T] {
	return Pulse[T]{value: v, valid: true, version: p.version + 1}
}

// Value returns the last assigned value and whether one was ever assigned.
func (p Pulse[T]) Value() (T, bool) {
	return p.value, p.valid
}

// Version counts assignments. Zero means never assigned.
func (p Pulse[T]) Version() uint64 {
	return p.version
}
