// Package input defines the canonical gamepad vocabulary shared by every
// capture backend, and the contract those backends implement.
package input

// Reader is a capture backend. Implementations translate their native
// device events into canonical Events and drop anything without a canonical
// counterpart.
type Reader interface {
	// Name is a short identifier used in logs.
	Name() string
	// Read returns every event buffered since the previous call, in order.
	// It must not block; an empty batch is normal.
	Read() ([]Event, error)
	// IsConnected reports whether the device with the given id is still
	// present in this backend's session.
	IsConnected(id SourceID) bool
	Close() error
}
