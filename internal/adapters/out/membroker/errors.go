package membroker

import "errors"

// ErrQueueFull is returned by Nack when the queue has no room left for
// the redelivered message.
var ErrQueueFull = errors.New("queue is full")
