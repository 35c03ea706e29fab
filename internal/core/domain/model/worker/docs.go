// Package worker contains the Worker aggregate: a registered task-executing
// process replica with a dedicated broker queue and a heartbeat-based
// liveness contract.
package worker
