// Package kernel provides core domain primitives for the tasking system.
// It implements the fundamental value objects that are used throughout the
// domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - ResourceName: a validated "type:identifier" name for a serialized resource
//   - QueueName: a validated broker queue name with worker-queue derivation
//
// These primitives enforce domain invariants at construction time, are
// immutable, and are safe for concurrent use.
package kernel
