// Package services provides domain services that orchestrate business
// operations across multiple aggregates in the tasking system.
//
// The package includes:
//   - TaskRouter: selects the worker a task is dispatched to while
//     preserving one-worker-at-a-time execution per named resource
//
// Domain services coordinate between aggregates, implementing logic that
// does not naturally belong to a single aggregate root.
package services
