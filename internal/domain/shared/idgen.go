package shared

// IDGenerator produces identifiers for newly created aggregates.
// Implementations must be safe for concurrent use.
type IDGenerator interface {
	NextID() string
}

// IDGeneratorFunc adapts a plain function to IDGenerator
type IDGeneratorFunc func() string

// NextID calls f()
func (f IDGeneratorFunc) NextID() string {
	return f()
}
