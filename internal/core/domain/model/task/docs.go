// Package task contains the Task aggregate: a unit of work dispatched
// through the broker and executed by exactly one worker at a time.
//
// The aggregate enforces the dispatch state machine (see Status), an
// optional resource-serialization constraint, and a bounded retry budget.
// State transitions are deliberately strict: broker redeliveries of a task
// that already moved on surface as transition errors, which lets consumers
// acknowledge duplicates instead of looping on them.
package task
